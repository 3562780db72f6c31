package sframe

// keyState holds the key material derived for one KeyID (raw mode) or one
// (epoch, sender) pair (MLS mode), plus that key's monotonic send counter.
type keyState struct {
	suite      CipherSuite
	sframeKey  []byte
	sframeSalt []byte
	authKey    []byte // nil for the native-AEAD (GCM) suites
	counter    uint64
}

// deriveKeyState runs the key schedule over baseSecret for suite, producing
// sframe_key, sframe_salt and (for the AES-CM suites) auth_key.
//
// PRK = HKDF-Extract(salt = "SFrame10", ikm = baseSecret)
// sframe_key  = HKDF-Expand(PRK, info = "key",  key_len)
// sframe_salt = HKDF-Expand(PRK, info = "salt", 12)
//
// For the AES-CM+HMAC suites, sframe_key above is itself treated as an
// intermediate secret and re-expanded:
//
// PRK2     = HKDF-Extract(salt = "SFrame10 AES CM AEAD", ikm = sframe_key)
// enc_key  = HKDF-Expand(PRK2, info = "enc",  key_len)
// auth_key = HKDF-Expand(PRK2, info = "auth", hash_size)
//
// No suite-identifier byte is mixed into any of the above; see DESIGN.md
// for how this was resolved against the known-answer vectors.
func deriveKeyState(suite CipherSuite, baseSecret []byte) keyState {
	p := suite.params()

	prk := hkdfExtract(p.hashNew, baseSecret, []byte("SFrame10"))
	key := hkdfExpand(p.hashNew, prk, []byte("key"), p.keyLen)
	salt := hkdfExpand(p.hashNew, prk, []byte("salt"), 12)

	ks := keyState{suite: suite, sframeSalt: salt}

	if p.native {
		ks.sframeKey = key
		return ks
	}

	prk2 := hkdfExtract(p.hashNew, key, []byte("SFrame10 AES CM AEAD"))
	ks.sframeKey = hkdfExpand(p.hashNew, prk2, []byte("enc"), p.keyLen)
	ks.authKey = hkdfExpand(p.hashNew, prk2, []byte("auth"), p.hashNew().Size())
	return ks
}

// zeroize overwrites the derived secret material in place, best effort,
// before a keyState is released.
func (ks *keyState) zeroize() {
	for _, b := range [][]byte{ks.sframeKey, ks.sframeSalt, ks.authKey} {
		for i := range b {
			b[i] = 0
		}
	}
}
