package sframe

// seal authenticates and encrypts plaintext for the given keyState at
// counter, with header as associated data, returning ciphertext||tag.
func seal(ks *keyState, header []byte, counter uint64, plaintext []byte) ([]byte, error) {
	p := ks.suite.params()
	nonce := formNonce(ks.sframeSalt, counter)

	if p.native {
		return aesGCMSeal(ks.sframeKey, nonce, header, plaintext)
	}

	ct, err := aesCTRXOR(ks.sframeKey, nonce, plaintext)
	if err != nil {
		return nil, err
	}
	full := hmacSum(p.hashNew, ks.authKey, append(append([]byte{}, header...), ct...))
	return append(ct, full[:p.tagLen]...), nil
}

// open verifies and decrypts ciphertextAndTag for the given keyState at
// counter, with header as associated data.
func open(ks *keyState, header []byte, counter uint64, ciphertextAndTag []byte) ([]byte, error) {
	p := ks.suite.params()
	nonce := formNonce(ks.sframeSalt, counter)

	if p.native {
		return aesGCMOpen(ks.sframeKey, nonce, header, ciphertextAndTag)
	}

	if len(ciphertextAndTag) < p.tagLen {
		return nil, ErrShortCiphertext
	}
	split := len(ciphertextAndTag) - p.tagLen
	ct, gotTag := ciphertextAndTag[:split], ciphertextAndTag[split:]

	full := hmacSum(p.hashNew, ks.authKey, append(append([]byte{}, header...), ct...))
	if !constantTimeEqual(full[:p.tagLen], gotTag) {
		return nil, ErrAuthenticationFailed
	}
	return aesCTRXOR(ks.sframeKey, nonce, ct)
}
