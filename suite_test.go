package sframe

import "testing"

func TestCipherSuiteParams(t *testing.T) {
	cases := []struct {
		suite     CipherSuite
		keyLen    int
		tagLen    int
		secretLen int
		native    bool
	}{
		{AES_CM_128_HMAC_SHA256_4, 16, 4, 32, false},
		{AES_CM_128_HMAC_SHA256_8, 16, 8, 32, false},
		{AES_GCM_128_SHA256, 16, 16, 32, true},
		{AES_GCM_256_SHA512, 32, 16, 64, true},
	}
	for _, c := range cases {
		p := c.suite.params()
		if p.keyLen != c.keyLen || p.tagLen != c.tagLen || p.secretLen != c.secretLen || p.native != c.native {
			t.Errorf("%v: got %+v", c.suite, p)
		}
		if p.nonceLen != 12 {
			t.Errorf("%v: nonce length %d, want 12", c.suite, p.nonceLen)
		}
	}
}

func TestCipherSuiteInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid cipher suite")
		}
	}()
	CipherSuite(0).params()
}

func TestCipherSuiteValid(t *testing.T) {
	if CipherSuite(0).valid() {
		t.Fatal("suite 0 should be invalid")
	}
	if CipherSuite(5).valid() {
		t.Fatal("suite 5 should be invalid")
	}
	if !AES_GCM_256_SHA512.valid() {
		t.Fatal("suite 4 should be valid")
	}
}
