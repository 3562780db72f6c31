package sframe

import "golang.org/x/crypto/cryptobyte"

// header is the decoded form of an SFrame frame's leading bytes: the
// big-endian KeyID and Counter values carried before the ciphertext.
//
// Wire layout of the first byte:
//
//	 7 6 5 4 3 2 1 0
//	+-+-+-+-+-+-+-+-+
//	|R|LLL|X|KKKK  |
//	+-+-+-+-+-+-+-+-+
//
// R (bit 7) is reserved and must be 0. LLL (bits 6..4) is the Counter's
// encoded byte length, 1..7, stored directly (not length-minus-one). X
// (bit 3) selects short or long KeyID form. When X == 0, KKKK (bits 2..0)
// is the KeyID itself, 0..7. When X == 1, KKKK is the KeyID's encoded byte
// length, 1..7, and that many KeyID bytes follow; the Counter bytes follow
// after those.
type header struct {
	kid uint64
	ctr uint64
}

// minimalLen returns the number of big-endian bytes needed to represent v,
// with the rule that v == 0 still takes one byte.
func minimalLen(v uint64) int {
	n := 0
	for t := v; t != 0; t >>= 8 {
		n++
	}
	if n == 0 {
		n = 1
	}
	return n
}

func appendBigEndian(b *cryptobyte.Builder, v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		shift := uint(i) * 8
		byteVal := byte(v >> shift)
		b.AddUint8(byteVal)
	}
}

func readBigEndian(s *cryptobyte.String, n int) (uint64, bool) {
	var v uint64
	for i := 0; i < n; i++ {
		var b uint8
		if !s.ReadUint8(&b) {
			return 0, false
		}
		v = v<<8 | uint64(b)
	}
	return v, true
}

// encodeHeader appends the wire encoding of h to buf and returns the
// extended slice. Both the KeyID's and the Counter's encoded byte length
// are carried in a 3-bit field (1..7); a KeyID or Counter in [2^56, 2^64)
// needs 8 bytes and cannot be represented, mirroring the reference
// implementation's own "Header overflow" guard in encode_header. Such
// values return ErrHeaderOverflow rather than silently emitting a
// corrupted, non-round-trippable frame.
func encodeHeader(buf []byte, h header) ([]byte, error) {
	ctrLen := minimalLen(h.ctr)
	if ctrLen > 7 {
		return nil, ErrHeaderOverflow
	}

	b := cryptobyte.NewBuilder(buf)
	if h.kid <= 7 {
		first := byte(ctrLen<<4) | byte(h.kid)
		b.AddUint8(first)
	} else {
		kidLen := minimalLen(h.kid)
		if kidLen > 7 {
			return nil, ErrHeaderOverflow
		}
		first := byte(ctrLen<<4) | 0x08 | byte(kidLen)
		b.AddUint8(first)
		appendBigEndian(b, h.kid, kidLen)
	}
	appendBigEndian(b, h.ctr, ctrLen)
	return b.BytesOrPanic(), nil
}

// headerLen reports the encoded length of h without allocating. It returns
// the same ErrHeaderOverflow as encodeHeader for KeyID/Counter values that
// cannot be represented in the 3-bit length field.
func headerLen(h header) (int, error) {
	ctrLen := minimalLen(h.ctr)
	if ctrLen > 7 {
		return 0, ErrHeaderOverflow
	}
	n := 1 + ctrLen
	if h.kid > 7 {
		kidLen := minimalLen(h.kid)
		if kidLen > 7 {
			return 0, ErrHeaderOverflow
		}
		n += kidLen
	}
	return n, nil
}

// decodeHeader parses a header from the front of data, returning the
// decoded header and the remaining bytes after it.
func decodeHeader(data []byte) (header, []byte, error) {
	if len(data) < 1 {
		return header{}, nil, ErrShortCiphertext
	}
	first := data[0]
	if first&0x80 != 0 {
		return header{}, nil, ErrReservedBitSet
	}
	ctrLen := int((first >> 4) & 0x07)
	extended := first&0x08 != 0
	kkkk := int(first & 0x07)

	s := cryptobyte.String(data[1:])

	var kid uint64
	if extended {
		kidLen := kkkk
		v, ok := readBigEndian(&s, kidLen)
		if !ok {
			return header{}, nil, ErrShortCiphertext
		}
		kid = v
	} else {
		kid = uint64(kkkk)
	}

	ctr, ok := readBigEndian(&s, ctrLen)
	if !ok {
		return header{}, nil, ErrShortCiphertext
	}

	return header{kid: kid, ctr: ctr}, []byte(s), nil
}
