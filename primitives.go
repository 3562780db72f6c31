package sframe

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/subtle"
	"hash"
	"io"

	"golang.org/x/crypto/hkdf"
)

// hkdfExtract runs HKDF-Extract(salt, ikm) with the given hash, per RFC
// 5869 §2.2. Extract is called separately from Expand (rather than through
// x/crypto's combined Extract+Expand reader) so the key schedule can re-use the
// same PRK across multiple Expand calls, and so that the two-stage AES-CM
// schedule can Extract a second time from an already-derived key.
func hkdfExtract(h func() hash.Hash, ikm, salt []byte) []byte {
	return hkdf.Extract(h, ikm, salt)
}

// hkdfExpand runs HKDF-Expand(prk, info, length) per RFC 5869 §2.3.
func hkdfExpand(h func() hash.Hash, prk, info []byte, length int) []byte {
	out := make([]byte, length)
	r := hkdf.Expand(h, prk, info)
	if _, err := io.ReadFull(r, out); err != nil {
		panic(err) // only fails if length exceeds 255*hashSize, never true here
	}
	return out
}

// aesCTRXOR encrypts (or, symmetrically, decrypts) in by XORing it with
// an AES-CTR keystream, returning the result in a new slice. The 12-byte nonce is right-padded with a 4-byte
// zero counter to form the 16-byte CTR IV, matching the construction
// pinned by the known-answer vectors.
func aesCTRXOR(key, nonce12, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	iv := make([]byte, 16)
	copy(iv, nonce12)
	out := make([]byte, len(in))
	cipher.NewCTR(block, iv).XORKeyStream(out, in)
	return out, nil
}

// aesGCMSeal seals plaintext under key/nonce12 with aad as associated data,
// returning ciphertext||tag.
func aesGCMSeal(key, nonce12, aad, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return gcm.Seal(nil, nonce12, plaintext, aad), nil
}

// aesGCMOpen verifies and decrypts ciphertext||tag under key/nonce12 with
// aad as associated data.
func aesGCMOpen(key, nonce12, aad, ciphertextAndTag []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	pt, err := gcm.Open(nil, nonce12, ciphertextAndTag, aad)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return pt, nil
}

// hmacSum computes HMAC(key, data) with the given hash constructor.
func hmacSum(h func() hash.Hash, key, data []byte) []byte {
	mac := hmac.New(h, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// constantTimeEqual reports whether a and b are equal, in time independent
// of where they first differ. Used for all tag comparisons.
func constantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// formNonce encodes counter as a 12-byte big-endian, zero-padded value and XORs
// it into the low 8 bytes of salt, yielding the per-frame nonce. salt is
// not modified; the result is a new 12-byte slice.
func formNonce(salt []byte, counter uint64) []byte {
	nonce := make([]byte, 12)
	copy(nonce, salt)
	for i := 0; i < 8; i++ {
		nonce[11-i] ^= byte(counter >> (8 * i))
	}
	return nonce
}
