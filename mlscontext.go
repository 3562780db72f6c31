package sframe

import "fmt"

// mlsEpoch tracks one live MLS epoch: its full EpochID, its epoch secret,
// and the set of synthesized KeyIDs materialized against it so they can be
// zeroized together when the epoch is evicted.
type mlsEpoch struct {
	id      uint64
	secret  []byte
	kidsUse map[uint64]struct{}
}

// MLSContext implements MLS-integrated SFrame mode: a bounded ring of
// epochs, each lazily materializing per-sender subkeys derived from its
// epoch secret, delegating the actual framing and AEAD work to an inner
// Context keyed by a synthesized KeyID.
type MLSContext struct {
	suite     CipherSuite
	epochBits uint
	epochMask uint64
	capacity  int

	byLowBits map[uint64]*mlsEpoch
	inner     *Context
}

// NewMLSContext constructs an MLSContext for suite with epochBits bits of
// the synthesized KeyID reserved for the epoch identifier. epochBits must
// be in [1, 8].
func NewMLSContext(suite CipherSuite, epochBits uint) (*MLSContext, error) {
	if !suite.valid() {
		return nil, fmt.Errorf("%w: invalid cipher suite %d", ErrInvalidConfig, uint16(suite))
	}
	if epochBits < 1 || epochBits > 8 {
		return nil, fmt.Errorf("%w: epoch_bits %d outside [1, 8]", ErrInvalidConfig, epochBits)
	}
	inner, err := NewContext(suite)
	if err != nil {
		return nil, err
	}
	return &MLSContext{
		suite:     suite,
		epochBits: epochBits,
		epochMask: (uint64(1) << epochBits) - 1,
		capacity:  1 << epochBits,
		byLowBits: make(map[uint64]*mlsEpoch),
		inner:     inner,
	}, nil
}

// AddEpoch records epochID with sframeEpochSecret as the group's current
// epoch secret. If another live epoch shares epochID's low epoch_bits
// bits, it is evicted first. If the ring would then exceed capacity, the
// epoch with the smallest EpochID is evicted to make room.
func (m *MLSContext) AddEpoch(epochID uint64, sframeEpochSecret []byte) {
	low := epochID & m.epochMask
	if existing, ok := m.byLowBits[low]; ok {
		m.evict(existing)
	}
	if len(m.byLowBits) >= m.capacity {
		m.evictSmallest()
	}
	secret := append([]byte(nil), sframeEpochSecret...)
	m.byLowBits[low] = &mlsEpoch{id: epochID, secret: secret, kidsUse: make(map[uint64]struct{})}
}

// PurgeBefore drops every live epoch with EpochID < epochID.
func (m *MLSContext) PurgeBefore(epochID uint64) {
	for _, ep := range m.byLowBits {
		if ep.id < epochID {
			m.evict(ep)
		}
	}
}

func (m *MLSContext) evictSmallest() {
	var smallest *mlsEpoch
	for _, ep := range m.byLowBits {
		if smallest == nil || ep.id < smallest.id {
			smallest = ep
		}
	}
	if smallest != nil {
		m.evict(smallest)
	}
}

func (m *MLSContext) evict(ep *mlsEpoch) {
	for kid := range ep.kidsUse {
		m.inner.removeKey(kid)
	}
	for i := range ep.secret {
		ep.secret[i] = 0
	}
	delete(m.byLowBits, ep.id&m.epochMask)
}

// deriveSubkeyBase derives the per-sender base secret fed into the key
// schedule: base = HKDF-Expand(sframe_epoch_secret, info = "SFrame10
// sender " || be_u64(sender_id), L = secret_len). The epoch secret is used
// directly as the HKDF PRK, per the spec's literal description of this
// derivation (see DESIGN.md: no known-answer vector pins this step).
func deriveSubkeyBase(suite CipherSuite, epochSecret []byte, senderID uint64) []byte {
	p := suite.params()
	info := make([]byte, 0, len("SFrame10 sender ")+8)
	info = append(info, []byte("SFrame10 sender ")...)
	for i := 7; i >= 0; i-- {
		info = append(info, byte(senderID>>(uint(i)*8)))
	}
	return hkdfExpand(p.hashNew, epochSecret, info, p.secretLen)
}

func synthesizeKid(senderID, lowBits uint64, epochBits uint) uint64 {
	return (senderID << epochBits) | lowBits
}

func (m *MLSContext) materialize(ep *mlsEpoch, senderID uint64) uint64 {
	low := ep.id & m.epochMask
	kid := synthesizeKid(senderID, low, m.epochBits)
	if _, ok := ep.kidsUse[kid]; !ok {
		base := deriveSubkeyBase(m.suite, ep.secret, senderID)
		m.inner.AddKey(kid, base)
		ep.kidsUse[kid] = struct{}{}
	}
	return kid
}

// Protect encrypts and authenticates plaintext on behalf of senderID under
// epochID's current key schedule, materializing the subkey on first use.
func (m *MLSContext) Protect(out []byte, epochID, senderID uint64, plaintext []byte) ([]byte, error) {
	low := epochID & m.epochMask
	ep, ok := m.byLowBits[low]
	if !ok || ep.id != epochID {
		return nil, fmt.Errorf("%w: epoch %d", ErrUnknownEpoch, epochID)
	}
	kid := m.materialize(ep, senderID)
	return m.inner.Protect(out, kid, plaintext)
}

// Unprotect parses frame's header to recover the sending epoch and sender,
// materializes the subkey if needed, and verifies and decrypts the frame.
func (m *MLSContext) Unprotect(out []byte, frame []byte) ([]byte, error) {
	hdr, _, err := decodeHeader(frame)
	if err != nil {
		return nil, err
	}
	low := hdr.kid & m.epochMask
	senderID := hdr.kid >> m.epochBits

	ep, ok := m.byLowBits[low]
	if !ok {
		return nil, fmt.Errorf("%w: key id %d", ErrUnknownEpoch, hdr.kid)
	}
	m.materialize(ep, senderID)
	return m.inner.Unprotect(out, frame)
}
