package sframe

import (
	"bytes"
	"errors"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	for _, suite := range []CipherSuite{
		AES_CM_128_HMAC_SHA256_4,
		AES_CM_128_HMAC_SHA256_8,
		AES_GCM_128_SHA256,
		AES_GCM_256_SHA512,
	} {
		sender, err := NewContext(suite)
		if err != nil {
			t.Fatal(err)
		}
		receiver, err := NewContext(suite)
		if err != nil {
			t.Fatal(err)
		}
		baseKey := make([]byte, suite.params().keyLen)
		for i := range baseKey {
			baseKey[i] = byte(i)
		}
		sender.AddKey(42, baseKey)
		receiver.AddKey(42, baseKey)

		for i := 0; i < 512; i++ {
			plaintext := []byte{byte(i), byte(i >> 8)}
			frame, err := sender.Protect(protectBuf(len(plaintext)), 42, plaintext)
			if err != nil {
				t.Fatalf("suite=%v i=%d: protect: %v", suite, i, err)
			}
			got, err := receiver.Unprotect(unprotectBuf(len(frame)), frame)
			if err != nil {
				t.Fatalf("suite=%v i=%d: unprotect: %v", suite, i, err)
			}
			if !bytes.Equal(got, plaintext) {
				t.Fatalf("suite=%v i=%d: got %x want %x", suite, i, got, plaintext)
			}
		}
	}
}

func TestContextUnknownKey(t *testing.T) {
	ctx, _ := NewContext(AES_GCM_128_SHA256)
	if _, err := ctx.Protect(protectBuf(2), 1, []byte("hi")); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("got %v, want ErrUnknownKey", err)
	}
	if _, err := ctx.Unprotect(unprotectBuf(2), []byte{0x17, 0x00}); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("got %v, want ErrUnknownKey", err)
	}
}

func TestContextTagForgery(t *testing.T) {
	ctx, _ := NewContext(AES_CM_128_HMAC_SHA256_4)
	ctx.AddKey(1, make([]byte, 16))
	plaintext := []byte("frame payload")
	frame, err := ctx.Protect(protectBuf(len(plaintext)), 1, plaintext)
	if err != nil {
		t.Fatal(err)
	}
	for i := range frame {
		corrupt := append([]byte(nil), frame...)
		corrupt[i] ^= 0x01
		if corrupt[0]&0x80 != 0 {
			// Flipping the reserved bit fails differently (ErrReservedBitSet),
			// not a forgery; skip it here.
			continue
		}
		if _, err := ctx.Unprotect(unprotectBuf(len(corrupt)), corrupt); err == nil {
			t.Fatalf("byte %d: corrupted frame decrypted without error", i)
		}
	}
}

func TestContextCounterMonotonic(t *testing.T) {
	ctx, _ := NewContext(AES_GCM_128_SHA256)
	ctx.AddKey(1, make([]byte, 16))
	for want := uint64(0); want < 5; want++ {
		frame, err := ctx.Protect(protectBuf(1), 1, []byte("x"))
		if err != nil {
			t.Fatal(err)
		}
		hdr, _, err := decodeHeader(frame)
		if err != nil {
			t.Fatal(err)
		}
		if hdr.ctr != want {
			t.Fatalf("frame %d: counter %d, want %d", want, hdr.ctr, want)
		}
	}
}

func TestContextShortBuffer(t *testing.T) {
	ctx, _ := NewContext(AES_GCM_128_SHA256)
	ctx.AddKey(1, make([]byte, 16))
	out := make([]byte, 1)
	if _, err := ctx.Protect(out, 1, []byte("too long for this buffer")); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("got %v, want ErrShortBuffer", err)
	}
}

func TestContextReAddResetsCounter(t *testing.T) {
	ctx, _ := NewContext(AES_GCM_128_SHA256)
	key := make([]byte, 16)
	ctx.AddKey(1, key)
	for i := 0; i < 3; i++ {
		if _, err := ctx.Protect(protectBuf(1), 1, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}
	ctx.AddKey(1, key)
	frame, err := ctx.Protect(protectBuf(1), 1, []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	hdr, _, err := decodeHeader(frame)
	if err != nil {
		t.Fatal(err)
	}
	if hdr.ctr != 0 {
		t.Fatalf("counter after re-add = %d, want 0", hdr.ctr)
	}
}
