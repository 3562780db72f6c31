package sframe

import "errors"

// Sentinel errors surfaced by Context and MLSContext. Callers should
// compare against these with errors.Is; wrapped instances add positional
// context (the offending KeyID or EpochID, ...).
var (
	// ErrShortBuffer is returned when a caller-supplied output buffer is too
	// small to hold the result of Protect or Unprotect.
	ErrShortBuffer = errors.New("sframe: output buffer too small")

	// ErrShortCiphertext is returned when an input to Unprotect is shorter
	// than the minimum possible header plus tag length.
	ErrShortCiphertext = errors.New("sframe: ciphertext shorter than minimum frame size")

	// ErrReservedBitSet is returned when the reserved bit (bit 7) of the
	// header's first byte is set.
	ErrReservedBitSet = errors.New("sframe: reserved header bit is set")

	// ErrHeaderOverflow is returned when a KeyID or Counter needs more than
	// 7 bytes to encode — the header's 3-bit length fields cannot
	// represent a length of 8, so such a value can never be framed.
	ErrHeaderOverflow = errors.New("sframe: key id or counter too large to encode in header")

	// ErrUnknownKey is returned when a KeyID has no registered KeyState.
	ErrUnknownKey = errors.New("sframe: unknown key id")

	// ErrUnknownEpoch is returned when a decoded KeyID's epoch bits do not
	// match any epoch currently live in an MLSContext.
	ErrUnknownEpoch = errors.New("sframe: unknown or aged-out epoch")

	// ErrAuthenticationFailed is returned when AEAD or truncated-HMAC
	// verification fails.
	ErrAuthenticationFailed = errors.New("sframe: authentication failed")

	// ErrCounterOverflow is returned when a key's send counter would wrap
	// past its 64-bit range.
	ErrCounterOverflow = errors.New("sframe: send counter exhausted")

	// ErrInvalidConfig is returned by constructors given out-of-range
	// configuration, such as an epochBits value outside [1, 8].
	ErrInvalidConfig = errors.New("sframe: invalid configuration")
)
