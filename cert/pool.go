package cert

import (
	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
)

// PoolMetadata is the optional off-chain metadata pointer a pool
// registration certificate may carry: a URL plus the blake2b-256 hash of
// the document it resolves to.
type PoolMetadata struct {
	URL  string
	Hash [32]byte
}

func poolMetadataFromCBOR(r *cbor.CborReader) (*PoolMetadata, error) {
	if err := cbor.ValidateArrayOfNElements("pool_metadata", r, 2); err != nil {
		return nil, err
	}
	url, err := r.ReadTextString()
	if err != nil {
		return nil, err
	}
	hash, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	if len(hash) != 32 {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "pool_metadata", "hash must be 32 bytes")
	}
	pm := &PoolMetadata{URL: url}
	copy(pm.Hash[:], hash)
	if err := cbor.ValidateEndArray("pool_metadata", r); err != nil {
		return nil, err
	}
	return pm, nil
}

func (pm *PoolMetadata) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteTextString(pm.URL); err != nil {
		return err
	}
	if err := w.WriteByteString(pm.Hash[:]); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// PoolParams is the full parameter set a pool registration certificate
// carries.
type PoolParams struct {
	Operator      [PoolKeyHashLen]byte
	VRFKeyHash    [32]byte
	Pledge        uint64
	Cost          uint64
	Margin        *common.UnitInterval
	RewardAccount []byte // bech32-decoded reward address bytes
	PoolOwners    [][PoolKeyHashLen]byte
	Relays        []*common.Relay
	Metadata      *PoolMetadata // nil when absent
}

func poolParamsFromCBOR(r *cbor.CborReader) (*PoolParams, error) {
	pp := &PoolParams{}

	operator, err := readPoolKeyHash(r)
	if err != nil {
		return nil, err
	}
	pp.Operator = operator

	vrf, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	if len(vrf) != 32 {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "pool_params", "vrf_keyhash must be 32 bytes")
	}
	copy(pp.VRFKeyHash[:], vrf)

	if pp.Pledge, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if pp.Cost, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if pp.Margin, err = common.UnitIntervalFromCBOR(r); err != nil {
		return nil, err
	}
	if pp.RewardAccount, err = r.ReadByteString(); err != nil {
		return nil, err
	}

	ownerCount, err := r.ReadStartArray()
	if err != nil {
		return nil, err
	}
	for i := 0; ownerCount < 0 || i < ownerCount; i++ {
		if ownerCount < 0 {
			state, err := r.PeekState()
			if err != nil {
				return nil, err
			}
			if state == cbor.StateEndArray {
				break
			}
		}
		owner, err := readPoolKeyHash(r)
		if err != nil {
			return nil, err
		}
		pp.PoolOwners = append(pp.PoolOwners, owner)
	}
	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}

	relayCount, err := r.ReadStartArray()
	if err != nil {
		return nil, err
	}
	for i := 0; relayCount < 0 || i < relayCount; i++ {
		if relayCount < 0 {
			state, err := r.PeekState()
			if err != nil {
				return nil, err
			}
			if state == cbor.StateEndArray {
				break
			}
		}
		relay, err := common.RelayFromCBOR(r)
		if err != nil {
			return nil, err
		}
		pp.Relays = append(pp.Relays, relay)
	}
	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}

	isNull, err := r.TryReadNull()
	if err != nil {
		return nil, err
	}
	if !isNull {
		pp.Metadata, err = poolMetadataFromCBOR(r)
		if err != nil {
			return nil, err
		}
	}
	return pp, nil
}

func (pp *PoolParams) toCBOR(w *cbor.CborWriter) error {
	if err := w.WriteByteString(pp.Operator[:]); err != nil {
		return err
	}
	if err := w.WriteByteString(pp.VRFKeyHash[:]); err != nil {
		return err
	}
	if err := w.WriteUint64(pp.Pledge); err != nil {
		return err
	}
	if err := w.WriteUint64(pp.Cost); err != nil {
		return err
	}
	if err := pp.Margin.ToCBOR(w); err != nil {
		return err
	}
	if err := w.WriteByteString(pp.RewardAccount); err != nil {
		return err
	}

	if err := w.WriteStartArray(len(pp.PoolOwners)); err != nil {
		return err
	}
	for _, owner := range pp.PoolOwners {
		if err := w.WriteByteString(owner[:]); err != nil {
			return err
		}
	}
	if err := w.WriteEndArray(); err != nil {
		return err
	}

	if err := w.WriteStartArray(len(pp.Relays)); err != nil {
		return err
	}
	for _, relay := range pp.Relays {
		if err := relay.ToCBOR(w); err != nil {
			return err
		}
	}
	if err := w.WriteEndArray(); err != nil {
		return err
	}

	if pp.Metadata == nil {
		return w.WriteNull()
	}
	return pp.Metadata.ToCBOR(w)
}

// PoolRegistration registers a stake pool and its parameters.
type PoolRegistration struct {
	Params *PoolParams
}

func (c *PoolRegistration) Kind() Kind { return KindPoolRegistration }

func poolRegistrationFromCBOR(r *cbor.CborReader) (*PoolRegistration, error) {
	if err := cbor.ValidateArrayOfNElements("pool_registration", r, 10); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("pool_registration", "type", r, uint64(KindPoolRegistration), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	params, err := poolParamsFromCBOR(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("pool_registration", r); err != nil {
		return nil, err
	}
	return &PoolRegistration{Params: params}, nil
}

func (c *PoolRegistration) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(10); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindPoolRegistration)); err != nil {
		return err
	}
	if err := c.Params.toCBOR(w); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// PoolRetirement announces a stake pool's retirement at a future epoch.
type PoolRetirement struct {
	PoolKeyHash [PoolKeyHashLen]byte
	Epoch       uint64
}

func (c *PoolRetirement) Kind() Kind { return KindPoolRetirement }

func poolRetirementFromCBOR(r *cbor.CborReader) (*PoolRetirement, error) {
	if err := cbor.ValidateArrayOfNElements("pool_retirement", r, 3); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("pool_retirement", "type", r, uint64(KindPoolRetirement), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	hash, err := readPoolKeyHash(r)
	if err != nil {
		return nil, err
	}
	epoch, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("pool_retirement", r); err != nil {
		return nil, err
	}
	return &PoolRetirement{PoolKeyHash: hash, Epoch: epoch}, nil
}

func (c *PoolRetirement) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(3); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindPoolRetirement)); err != nil {
		return err
	}
	if err := w.WriteByteString(c.PoolKeyHash[:]); err != nil {
		return err
	}
	if err := w.WriteUint64(c.Epoch); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// GenesisKeyDelegation delegates a genesis key's block-signing duty to a
// genesis delegate (the Byron-to-Shelify bootstrap mechanism, still part
// of the certificate union for historical-chain compatibility).
type GenesisKeyDelegation struct {
	GenesisHash         [28]byte
	GenesisDelegateHash [28]byte
	VRFKeyHash          [32]byte
}

func (c *GenesisKeyDelegation) Kind() Kind { return KindGenesisKeyDelegation }

func genesisKeyDelegationFromCBOR(r *cbor.CborReader) (*GenesisKeyDelegation, error) {
	if err := cbor.ValidateArrayOfNElements("genesis_key_delegation", r, 4); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("genesis_key_delegation", "type", r, uint64(KindGenesisKeyDelegation), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	g := &GenesisKeyDelegation{}
	gh, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	if len(gh) != 28 {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "genesis_key_delegation", "genesis_hash must be 28 bytes")
	}
	copy(g.GenesisHash[:], gh)

	gdh, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	if len(gdh) != 28 {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "genesis_key_delegation", "genesis_delegate_hash must be 28 bytes")
	}
	copy(g.GenesisDelegateHash[:], gdh)

	vrf, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	if len(vrf) != 32 {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "genesis_key_delegation", "vrf_keyhash must be 32 bytes")
	}
	copy(g.VRFKeyHash[:], vrf)

	if err := cbor.ValidateEndArray("genesis_key_delegation", r); err != nil {
		return nil, err
	}
	return g, nil
}

func (c *GenesisKeyDelegation) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(4); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindGenesisKeyDelegation)); err != nil {
		return err
	}
	if err := w.WriteByteString(c.GenesisHash[:]); err != nil {
		return err
	}
	if err := w.WriteByteString(c.GenesisDelegateHash[:]); err != nil {
		return err
	}
	if err := w.WriteByteString(c.VRFKeyHash[:]); err != nil {
		return err
	}
	return w.WriteEndArray()
}
