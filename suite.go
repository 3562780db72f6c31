package sframe

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
)

// CipherSuite identifies one of the four SFrame cipher-suite parameter sets.
type CipherSuite uint16

const (
	AES_CM_128_HMAC_SHA256_4 CipherSuite = 1
	AES_CM_128_HMAC_SHA256_8 CipherSuite = 2
	AES_GCM_128_SHA256       CipherSuite = 3
	AES_GCM_256_SHA512       CipherSuite = 4
)

func (cs CipherSuite) String() string {
	switch cs {
	case AES_CM_128_HMAC_SHA256_4:
		return "AES_CM_128_HMAC_SHA256_4"
	case AES_CM_128_HMAC_SHA256_8:
		return "AES_CM_128_HMAC_SHA256_8"
	case AES_GCM_128_SHA256:
		return "AES_GCM_128_SHA256"
	case AES_GCM_256_SHA512:
		return "AES_GCM_256_SHA512"
	default:
		return fmt.Sprintf("CipherSuite(%d)", uint16(cs))
	}
}

// suiteParams holds the fixed parameters for a cipher suite, per the table
// in the external-interfaces section of the spec this package implements.
type suiteParams struct {
	keyLen    int
	nonceLen  int
	tagLen    int
	secretLen int
	hashNew   func() hash.Hash
	native    bool // true for the two AES-GCM suites, false for AES-CM+HMAC
}

func (cs CipherSuite) params() suiteParams {
	switch cs {
	case AES_CM_128_HMAC_SHA256_4:
		return suiteParams{keyLen: 16, nonceLen: 12, tagLen: 4, secretLen: 32, hashNew: sha256.New, native: false}
	case AES_CM_128_HMAC_SHA256_8:
		return suiteParams{keyLen: 16, nonceLen: 12, tagLen: 8, secretLen: 32, hashNew: sha256.New, native: false}
	case AES_GCM_128_SHA256:
		return suiteParams{keyLen: 16, nonceLen: 12, tagLen: 16, secretLen: 32, hashNew: sha256.New, native: true}
	case AES_GCM_256_SHA512:
		return suiteParams{keyLen: 32, nonceLen: 12, tagLen: 16, secretLen: 64, hashNew: sha512.New, native: true}
	default:
		panic(fmt.Errorf("sframe: invalid cipher suite %d", uint16(cs)))
	}
}

func (cs CipherSuite) valid() bool {
	switch cs {
	case AES_CM_128_HMAC_SHA256_4, AES_CM_128_HMAC_SHA256_8, AES_GCM_128_SHA256, AES_GCM_256_SHA512:
		return true
	default:
		return false
	}
}

// MaxOverhead is the maximum number of bytes Protect ever adds to a
// plaintext: 17 bytes of header plus 16 bytes of tag. The header's own
// encoded length is actually bounded by maxHeaderSize (15); 17 is carried
// over unchanged from the reference implementation's own published
// constant.
const MaxOverhead = 17 + 16

// maxHeaderSize bounds the header's actual encoded length (1 byte plus up
// to 7 KeyID bytes plus up to 7 Counter bytes). No code in the package
// currently reads it.
const maxHeaderSize = 1 + 7 + 7
