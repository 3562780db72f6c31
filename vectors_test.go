package sframe

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"testing"
)

// testBytes hex-decodes JSON string fields directly into a []byte,
// matching the teacher's testdata-fixture idiom.
type testBytes []byte

func (b *testBytes) UnmarshalText(text []byte) error {
	decoded, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// protectBuf sizes a destination buffer large enough for Protect to write
// a plaintext of length n into, for any suite.
func protectBuf(n int) []byte {
	return make([]byte, n+MaxOverhead)
}

// unprotectBuf sizes a destination buffer large enough for Unprotect to
// write the plaintext recovered from a frame of length n into.
func unprotectBuf(n int) []byte {
	return make([]byte, n)
}

func loadTestVector(t *testing.T, filename string, v interface{}) {
	t.Helper()
	f, err := os.Open(filename)
	if err != nil {
		t.Fatalf("open %s: %v", filename, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", filename, err)
	}
}
