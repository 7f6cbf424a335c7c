package gov

import (
	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
)

// ProtocolParamUpdate is the sparse keyed map (spec.md §4.4) of protocol
// parameter deltas a parameter-change governance action or a genesis-era
// update proposal carries. Every field is a pointer: nil means "not
// present in this update". Keys 0..33 follow the Conway-era field table;
// unknown keys are rejected with invalid_cbor_map_key.
type ProtocolParamUpdate struct {
	MinFeeA                     *uint64
	MinFeeB                     *uint64
	MaxBlockBodySize             *uint64
	MaxTxSize                    *uint64
	MaxBlockHeaderSize           *uint64
	KeyDeposit                   *uint64
	PoolDeposit                  *uint64
	MaxEpoch                     *uint64
	NOpt                         *uint64
	PoolPledgeInfluence          *common.UnitInterval
	ExpansionRate                *common.UnitInterval
	TreasuryGrowthRate           *common.UnitInterval
	ProtocolVersion              *ProtocolVersion
	MinPoolCost                  *uint64
	AdaPerUTxOByte               *uint64
	CostModels                   *CostModels
	ExecutionCosts                *ExUnitPrices
	MaxTxExUnits                 *ExUnits
	MaxBlockExUnits              *ExUnits
	MaxValueSize                 *uint64
	CollateralPercentage         *uint64
	MaxCollateralInputs          *uint64
	PoolVotingThresholds          *PoolVotingThresholds
	DRepVotingThresholds          *DRepVotingThresholds
	MinCommitteeSize              *uint64
	CommitteeTermLimit            *uint64
	GovernanceActionValidityPeriod *uint64
	GovernanceActionDeposit        *uint64
	DRepDeposit                    *uint64
	DRepInactivityPeriod           *uint64
	MinFeeRefScriptCostPerByte     *common.UnitInterval
}

const (
	keyMinFeeA                     = 0
	keyMinFeeB                     = 1
	keyMaxBlockBodySize             = 2
	keyMaxTxSize                    = 3
	keyMaxBlockHeaderSize           = 4
	keyKeyDeposit                   = 5
	keyPoolDeposit                  = 6
	keyMaxEpoch                     = 7
	keyNOpt                         = 8
	keyPoolPledgeInfluence          = 9
	keyExpansionRate                = 10
	keyTreasuryGrowthRate           = 11
	keyProtocolVersion              = 14
	keyMinPoolCost                  = 16
	keyAdaPerUTxOByte               = 17
	keyCostModels                   = 18
	keyExecutionCosts               = 19
	keyMaxTxExUnits                 = 20
	keyMaxBlockExUnits              = 21
	keyMaxValueSize                 = 22
	keyCollateralPercentage         = 23
	keyMaxCollateralInputs          = 24
	keyPoolVotingThresholds         = 25
	keyDRepVotingThresholds         = 26
	keyMinCommitteeSize             = 27
	keyCommitteeTermLimit           = 28
	keyGovernanceActionValidityPeriod = 29
	keyGovernanceActionDeposit      = 30
	keyDRepDeposit                  = 31
	keyDRepInactivityPeriod         = 32
	keyMinFeeRefScriptCostPerByte   = 33
)

// ProtocolParamUpdateFromCBOR decodes the sparse update map, rejecting
// unknown keys and duplicate keys.
func ProtocolParamUpdateFromCBOR(r *cbor.CborReader) (*ProtocolParamUpdate, error) {
	p := &ProtocolParamUpdate{}
	seen := make(map[uint64]bool)

	count, err := r.ReadStartMap()
	if err != nil {
		return nil, err
	}
	for i := 0; count < 0 || i < count; i++ {
		if count < 0 {
			state, err := r.PeekState()
			if err != nil {
				return nil, err
			}
			if state == cbor.StateEndMap {
				break
			}
		}
		key, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		if seen[key] {
			return nil, cbor.NewDomainError(cbor.ErrDuplicatedCborMapKey, "protocol_param_update", "duplicate key")
		}
		seen[key] = true

		if err := p.readField(r, key); err != nil {
			return nil, err
		}
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *ProtocolParamUpdate) readField(r *cbor.CborReader, key uint64) error {
	readUint := func() (*uint64, error) {
		v, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		return &v, nil
	}

	var err error
	switch key {
	case keyMinFeeA:
		p.MinFeeA, err = readUint()
	case keyMinFeeB:
		p.MinFeeB, err = readUint()
	case keyMaxBlockBodySize:
		p.MaxBlockBodySize, err = readUint()
	case keyMaxTxSize:
		p.MaxTxSize, err = readUint()
	case keyMaxBlockHeaderSize:
		p.MaxBlockHeaderSize, err = readUint()
	case keyKeyDeposit:
		p.KeyDeposit, err = readUint()
	case keyPoolDeposit:
		p.PoolDeposit, err = readUint()
	case keyMaxEpoch:
		p.MaxEpoch, err = readUint()
	case keyNOpt:
		p.NOpt, err = readUint()
	case keyPoolPledgeInfluence:
		p.PoolPledgeInfluence, err = common.UnitIntervalFromCBOR(r)
	case keyExpansionRate:
		p.ExpansionRate, err = common.UnitIntervalFromCBOR(r)
	case keyTreasuryGrowthRate:
		p.TreasuryGrowthRate, err = common.UnitIntervalFromCBOR(r)
	case keyProtocolVersion:
		p.ProtocolVersion, err = ProtocolVersionFromCBOR(r)
	case keyMinPoolCost:
		p.MinPoolCost, err = readUint()
	case keyAdaPerUTxOByte:
		p.AdaPerUTxOByte, err = readUint()
	case keyCostModels:
		p.CostModels, err = CostModelsFromCBOR(r)
	case keyExecutionCosts:
		p.ExecutionCosts, err = ExUnitPricesFromCBOR(r)
	case keyMaxTxExUnits:
		p.MaxTxExUnits, err = ExUnitsFromCBOR(r)
	case keyMaxBlockExUnits:
		p.MaxBlockExUnits, err = ExUnitsFromCBOR(r)
	case keyMaxValueSize:
		p.MaxValueSize, err = readUint()
	case keyCollateralPercentage:
		p.CollateralPercentage, err = readUint()
	case keyMaxCollateralInputs:
		p.MaxCollateralInputs, err = readUint()
	case keyPoolVotingThresholds:
		p.PoolVotingThresholds, err = poolVotingThresholdsFromCBOR(r)
	case keyDRepVotingThresholds:
		p.DRepVotingThresholds, err = drepVotingThresholdsFromCBOR(r)
	case keyMinCommitteeSize:
		p.MinCommitteeSize, err = readUint()
	case keyCommitteeTermLimit:
		p.CommitteeTermLimit, err = readUint()
	case keyGovernanceActionValidityPeriod:
		p.GovernanceActionValidityPeriod, err = readUint()
	case keyGovernanceActionDeposit:
		p.GovernanceActionDeposit, err = readUint()
	case keyDRepDeposit:
		p.DRepDeposit, err = readUint()
	case keyDRepInactivityPeriod:
		p.DRepInactivityPeriod, err = readUint()
	case keyMinFeeRefScriptCostPerByte:
		p.MinFeeRefScriptCostPerByte, err = common.UnitIntervalFromCBOR(r)
	default:
		return cbor.NewDomainError(cbor.ErrInvalidCborMapKey, "protocol_param_update", "unknown key")
	}
	return err
}

// ToCBOR encodes the sparse update map, emitting only the fields present,
// in ascending key order.
func (p *ProtocolParamUpdate) ToCBOR(w *cbor.CborWriter) error {
	entries := p.entries()
	if err := w.WriteStartMap(len(entries)); err != nil {
		return err
	}
	for _, e := range entries {
		if err := w.WriteUint64(e.key); err != nil {
			return err
		}
		if err := e.write(w); err != nil {
			return err
		}
	}
	return w.WriteEndMap()
}

type paramEntry struct {
	key   uint64
	write func(w *cbor.CborWriter) error
}

func (p *ProtocolParamUpdate) entries() []paramEntry {
	var out []paramEntry
	add := func(key uint64, present bool, write func(w *cbor.CborWriter) error) {
		if present {
			out = append(out, paramEntry{key: key, write: write})
		}
	}

	add(keyMinFeeA, p.MinFeeA != nil, writeUintPtr(p.MinFeeA))
	add(keyMinFeeB, p.MinFeeB != nil, writeUintPtr(p.MinFeeB))
	add(keyMaxBlockBodySize, p.MaxBlockBodySize != nil, writeUintPtr(p.MaxBlockBodySize))
	add(keyMaxTxSize, p.MaxTxSize != nil, writeUintPtr(p.MaxTxSize))
	add(keyMaxBlockHeaderSize, p.MaxBlockHeaderSize != nil, writeUintPtr(p.MaxBlockHeaderSize))
	add(keyKeyDeposit, p.KeyDeposit != nil, writeUintPtr(p.KeyDeposit))
	add(keyPoolDeposit, p.PoolDeposit != nil, writeUintPtr(p.PoolDeposit))
	add(keyMaxEpoch, p.MaxEpoch != nil, writeUintPtr(p.MaxEpoch))
	add(keyNOpt, p.NOpt != nil, writeUintPtr(p.NOpt))
	add(keyPoolPledgeInfluence, p.PoolPledgeInfluence != nil, p.PoolPledgeInfluence.ToCBOR)
	add(keyExpansionRate, p.ExpansionRate != nil, p.ExpansionRate.ToCBOR)
	add(keyTreasuryGrowthRate, p.TreasuryGrowthRate != nil, p.TreasuryGrowthRate.ToCBOR)
	add(keyProtocolVersion, p.ProtocolVersion != nil, p.ProtocolVersion.ToCBOR)
	add(keyMinPoolCost, p.MinPoolCost != nil, writeUintPtr(p.MinPoolCost))
	add(keyAdaPerUTxOByte, p.AdaPerUTxOByte != nil, writeUintPtr(p.AdaPerUTxOByte))
	add(keyCostModels, p.CostModels != nil, p.CostModels.ToCBOR)
	add(keyExecutionCosts, p.ExecutionCosts != nil, p.ExecutionCosts.ToCBOR)
	add(keyMaxTxExUnits, p.MaxTxExUnits != nil, p.MaxTxExUnits.ToCBOR)
	add(keyMaxBlockExUnits, p.MaxBlockExUnits != nil, p.MaxBlockExUnits.ToCBOR)
	add(keyMaxValueSize, p.MaxValueSize != nil, writeUintPtr(p.MaxValueSize))
	add(keyCollateralPercentage, p.CollateralPercentage != nil, writeUintPtr(p.CollateralPercentage))
	add(keyMaxCollateralInputs, p.MaxCollateralInputs != nil, writeUintPtr(p.MaxCollateralInputs))
	add(keyPoolVotingThresholds, p.PoolVotingThresholds != nil, p.PoolVotingThresholds.toCBOR)
	add(keyDRepVotingThresholds, p.DRepVotingThresholds != nil, p.DRepVotingThresholds.toCBOR)
	add(keyMinCommitteeSize, p.MinCommitteeSize != nil, writeUintPtr(p.MinCommitteeSize))
	add(keyCommitteeTermLimit, p.CommitteeTermLimit != nil, writeUintPtr(p.CommitteeTermLimit))
	add(keyGovernanceActionValidityPeriod, p.GovernanceActionValidityPeriod != nil, writeUintPtr(p.GovernanceActionValidityPeriod))
	add(keyGovernanceActionDeposit, p.GovernanceActionDeposit != nil, writeUintPtr(p.GovernanceActionDeposit))
	add(keyDRepDeposit, p.DRepDeposit != nil, writeUintPtr(p.DRepDeposit))
	add(keyDRepInactivityPeriod, p.DRepInactivityPeriod != nil, writeUintPtr(p.DRepInactivityPeriod))
	add(keyMinFeeRefScriptCostPerByte, p.MinFeeRefScriptCostPerByte != nil, p.MinFeeRefScriptCostPerByte.ToCBOR)

	return out
}

func writeUintPtr(v *uint64) func(w *cbor.CborWriter) error {
	return func(w *cbor.CborWriter) error { return w.WriteUint64(*v) }
}
