package sframe

import "fmt"

// Context implements raw SFrame mode: explicit registration of (KeyID,
// base key) pairs, and per-key protect/unprotect.
//
// A Context is not safe for concurrent use on the same KeyID without
// external synchronization.
type Context struct {
	suite CipherSuite
	keys  map[uint64]*keyState
}

// NewContext constructs a Context for suite. suite must be one of the four
// defined CipherSuite values.
func NewContext(suite CipherSuite) (*Context, error) {
	if !suite.valid() {
		return nil, fmt.Errorf("%w: invalid cipher suite %d", ErrInvalidConfig, uint16(suite))
	}
	return &Context{suite: suite, keys: make(map[uint64]*keyState)}, nil
}

// AddKey derives and stores key material for kid from baseKey. If kid is
// already registered, its previous state is zeroized and replaced, and its
// send counter resets to 0 — callers must not AddKey an in-flight kid
// mid-session.
func (c *Context) AddKey(kid uint64, baseKey []byte) {
	if old, ok := c.keys[kid]; ok {
		old.zeroize()
	}
	ks := deriveKeyState(c.suite, baseKey)
	c.keys[kid] = &ks
}

// removeKey zeroizes and drops kid's state, if present.
func (c *Context) removeKey(kid uint64) {
	if old, ok := c.keys[kid]; ok {
		old.zeroize()
		delete(c.keys, kid)
	}
}

// Protect encrypts and authenticates plaintext under kid, writing
// header || ciphertext || tag into out starting at out[0] and returning
// out sliced to the written length. out must hold the encoded header,
// the plaintext and the suite's tag (len(plaintext) + MaxOverhead bytes
// always suffice); ErrShortBuffer is returned otherwise, before the send
// counter is touched. The send counter for kid then
// advances by one on every successful call.
func (c *Context) Protect(out []byte, kid uint64, plaintext []byte) ([]byte, error) {
	ks, ok := c.keys[kid]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKey, kid)
	}
	if ks.counter == ^uint64(0) {
		return nil, fmt.Errorf("%w: key %d", ErrCounterOverflow, kid)
	}
	ctr := ks.counter

	hdrBytes, err := encodeHeader(nil, header{kid: kid, ctr: ctr})
	if err != nil {
		return nil, err
	}
	needed := len(hdrBytes) + len(plaintext) + ks.suite.params().tagLen
	if len(out) < needed {
		return nil, ErrShortBuffer
	}
	ks.counter++

	sealed, err := seal(ks, hdrBytes, ctr, plaintext)
	if err != nil {
		return nil, err
	}

	n := copy(out, hdrBytes)
	n += copy(out[n:], sealed)
	return out[:n], nil
}

// Unprotect parses a frame produced by Protect, verifies and decrypts it,
// writing the plaintext into out starting at out[0] and returning out
// sliced to the written length. Unprotect does not track any receive-side
// state: it is pure with respect to Context beyond looking up the decoded
// KeyID's state.
func (c *Context) Unprotect(out []byte, frame []byte) ([]byte, error) {
	hdr, rest, err := decodeHeader(frame)
	if err != nil {
		return nil, err
	}
	ks, ok := c.keys[hdr.kid]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKey, hdr.kid)
	}

	hdrLen := len(frame) - len(rest)
	hdrBytes := frame[:hdrLen]

	tagLen := ks.suite.params().tagLen
	if len(rest) < tagLen {
		return nil, ErrShortCiphertext
	}
	if len(out) < len(rest)-tagLen {
		return nil, ErrShortBuffer
	}

	plaintext, err := open(ks, hdrBytes, hdr.ctr, rest)
	if err != nil {
		return nil, err
	}
	return out[:copy(out, plaintext)], nil
}
