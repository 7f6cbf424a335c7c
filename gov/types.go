// Package gov implements Conway-era governance: the seven governance
// action variants, the protocol parameter update sparse map, and the
// supporting cost-model / voting-threshold types a governance action or
// parameter update can carry.
package gov

import (
	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
)

// ActionID identifies a governance action by the transaction that
// proposed it plus its index within that transaction's proposal
// procedures, forming the parent-pointer chain Conway actions use to
// supersede one another.
type ActionID struct {
	TransactionID [32]byte
	Index         uint64
}

// ActionIDFromCBOR decodes the 2-element [transaction_id, index] array.
func ActionIDFromCBOR(r *cbor.CborReader) (*ActionID, error) {
	if err := cbor.ValidateArrayOfNElements("gov_action_id", r, 2); err != nil {
		return nil, err
	}
	txID, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	if len(txID) != 32 {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "gov_action_id", "transaction_id must be 32 bytes")
	}
	index, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	id := &ActionID{Index: index}
	copy(id.TransactionID[:], txID)
	if err := cbor.ValidateEndArray("gov_action_id", r); err != nil {
		return nil, err
	}
	return id, nil
}

// ToCBOR encodes the action ID.
func (id *ActionID) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteByteString(id.TransactionID[:]); err != nil {
		return err
	}
	if err := w.WriteUint64(id.Index); err != nil {
		return err
	}
	return w.WriteEndArray()
}

func readOptionalActionID(r *cbor.CborReader) (*ActionID, error) {
	isNull, err := r.TryReadNull()
	if err != nil {
		return nil, err
	}
	if isNull {
		return nil, nil
	}
	return ActionIDFromCBOR(r)
}

func writeOptionalActionID(w *cbor.CborWriter, id *ActionID) error {
	if id == nil {
		return w.WriteNull()
	}
	return id.ToCBOR(w)
}

// ExUnits is a Plutus script execution budget: memory units and CPU step
// units, encoded as the 2-element [mem, steps] array.
type ExUnits struct {
	Memory uint64
	Steps  uint64
}

// ExUnitsFromCBOR decodes a [mem, steps] array.
func ExUnitsFromCBOR(r *cbor.CborReader) (*ExUnits, error) {
	if err := cbor.ValidateArrayOfNElements("ex_units", r, 2); err != nil {
		return nil, err
	}
	mem, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	steps, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("ex_units", r); err != nil {
		return nil, err
	}
	return &ExUnits{Memory: mem, Steps: steps}, nil
}

// ToCBOR encodes the execution budget.
func (u *ExUnits) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(u.Memory); err != nil {
		return err
	}
	if err := w.WriteUint64(u.Steps); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// ExUnitPrices prices a single execution-budget unit in lovelace,
// expressed as the [mem_price, step_price] pair of rationals.
type ExUnitPrices struct {
	MemoryPrice *common.UnitInterval
	StepPrice   *common.UnitInterval
}

// ExUnitPricesFromCBOR decodes the [mem_price, step_price] array.
func ExUnitPricesFromCBOR(r *cbor.CborReader) (*ExUnitPrices, error) {
	if err := cbor.ValidateArrayOfNElements("ex_unit_prices", r, 2); err != nil {
		return nil, err
	}
	mem, err := common.UnitIntervalFromCBOR(r)
	if err != nil {
		return nil, err
	}
	step, err := common.UnitIntervalFromCBOR(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("ex_unit_prices", r); err != nil {
		return nil, err
	}
	return &ExUnitPrices{MemoryPrice: mem, StepPrice: step}, nil
}

// ToCBOR encodes the execution unit prices.
func (p *ExUnitPrices) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := p.MemoryPrice.ToCBOR(w); err != nil {
		return err
	}
	if err := p.StepPrice.ToCBOR(w); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// ProtocolVersion is the [major, minor] protocol version pair a hard fork
// action proposes moving the chain to.
type ProtocolVersion struct {
	Major uint64
	Minor uint64
}

// ProtocolVersionFromCBOR decodes a [major, minor] array.
func ProtocolVersionFromCBOR(r *cbor.CborReader) (*ProtocolVersion, error) {
	if err := cbor.ValidateArrayOfNElements("protocol_version", r, 2); err != nil {
		return nil, err
	}
	major, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	minor, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("protocol_version", r); err != nil {
		return nil, err
	}
	return &ProtocolVersion{Major: major, Minor: minor}, nil
}

// ToCBOR encodes the protocol version.
func (v *ProtocolVersion) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(v.Major); err != nil {
		return err
	}
	if err := w.WriteUint64(v.Minor); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// Language identifies a Plutus script language version for cost-model
// purposes.
type Language uint64

const (
	LanguagePlutusV1 Language = 0
	LanguagePlutusV2 Language = 1
	LanguagePlutusV3 Language = 2
)

// CostModels is the language-indexed map of Plutus cost-model parameter
// vectors, one flat []int64 per supported language version.
type CostModels struct {
	byLanguage map[Language][]int64
}

// NewCostModels constructs an empty cost-model map.
func NewCostModels() *CostModels {
	return &CostModels{byLanguage: make(map[Language][]int64)}
}

// Set records the cost-model parameter vector for a language.
func (c *CostModels) Set(lang Language, params []int64) {
	c.byLanguage[lang] = params
}

// Get returns the cost-model parameter vector for a language.
func (c *CostModels) Get(lang Language) ([]int64, bool) {
	v, ok := c.byLanguage[lang]
	return v, ok
}

// CostModelsFromCBOR decodes the {language => [* int]} map. Languages are
// emitted/read in ascending numeric order.
func CostModelsFromCBOR(r *cbor.CborReader) (*CostModels, error) {
	cm := NewCostModels()
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
		lang, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		paramsLen, err := r.ReadStartArray()
		if err != nil {
			return nil, err
		}
		var params []int64
		for j := 0; paramsLen < 0 || j < paramsLen; j++ {
			if paramsLen < 0 {
				state, err := r.PeekState()
				if err != nil {
					return nil, err
				}
				if state == cbor.StateEndArray {
					break
				}
			}
			v, err := r.ReadInt64()
			if err != nil {
				return nil, err
			}
			params = append(params, v)
		}
		if err := r.ReadEndArray(); err != nil {
			return nil, err
		}
		cm.Set(Language(lang), params)
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}
	return cm, nil
}

// ToCBOR encodes the cost-model map in ascending language order.
func (c *CostModels) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartMap(len(c.byLanguage)); err != nil {
		return err
	}
	for _, lang := range []Language{LanguagePlutusV1, LanguagePlutusV2, LanguagePlutusV3} {
		params, ok := c.byLanguage[lang]
		if !ok {
			continue
		}
		if err := w.WriteUint64(uint64(lang)); err != nil {
			return err
		}
		if err := w.WriteStartArray(len(params)); err != nil {
			return err
		}
		for _, v := range params {
			if err := w.WriteInt64(v); err != nil {
				return err
			}
		}
		if err := w.WriteEndArray(); err != nil {
			return err
		}
	}
	return w.WriteEndMap()
}

// PoolVotingThresholds is the set of stake-pool-operator approval
// thresholds for the five action categories pools vote on.
type PoolVotingThresholds struct {
	MotionNoConfidence       *common.UnitInterval
	CommitteeNormal          *common.UnitInterval
	CommitteeNoConfidence    *common.UnitInterval
	HardForkInitiation       *common.UnitInterval
	SecurityRelevantVoting   *common.UnitInterval
}

func poolVotingThresholdsFromCBOR(r *cbor.CborReader) (*PoolVotingThresholds, error) {
	if err := cbor.ValidateArrayOfNElements("pool_voting_thresholds", r, 5); err != nil {
		return nil, err
	}
	values := [5]*common.UnitInterval{}
	for i := range values {
		v, err := common.UnitIntervalFromCBOR(r)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	if err := cbor.ValidateEndArray("pool_voting_thresholds", r); err != nil {
		return nil, err
	}
	return &PoolVotingThresholds{
		MotionNoConfidence:     values[0],
		CommitteeNormal:        values[1],
		CommitteeNoConfidence:  values[2],
		HardForkInitiation:     values[3],
		SecurityRelevantVoting: values[4],
	}, nil
}

func (t *PoolVotingThresholds) toCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(5); err != nil {
		return err
	}
	for _, v := range []*common.UnitInterval{
		t.MotionNoConfidence, t.CommitteeNormal, t.CommitteeNoConfidence,
		t.HardForkInitiation, t.SecurityRelevantVoting,
	} {
		if err := v.ToCBOR(w); err != nil {
			return err
		}
	}
	return w.WriteEndArray()
}

// DRepVotingThresholds is the set of DRep approval thresholds for the ten
// action categories DReps vote on.
type DRepVotingThresholds struct {
	MotionNoConfidence      *common.UnitInterval
	CommitteeNormal         *common.UnitInterval
	CommitteeNoConfidence   *common.UnitInterval
	UpdateConstitution      *common.UnitInterval
	HardForkInitiation      *common.UnitInterval
	PPNetworkGroup          *common.UnitInterval
	PPEconomicGroup         *common.UnitInterval
	PPTechnicalGroup        *common.UnitInterval
	PPGovernanceGroup       *common.UnitInterval
	TreasuryWithdrawal      *common.UnitInterval
}

func drepVotingThresholdsFromCBOR(r *cbor.CborReader) (*DRepVotingThresholds, error) {
	if err := cbor.ValidateArrayOfNElements("drep_voting_thresholds", r, 10); err != nil {
		return nil, err
	}
	values := [10]*common.UnitInterval{}
	for i := range values {
		v, err := common.UnitIntervalFromCBOR(r)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	if err := cbor.ValidateEndArray("drep_voting_thresholds", r); err != nil {
		return nil, err
	}
	return &DRepVotingThresholds{
		MotionNoConfidence:    values[0],
		CommitteeNormal:       values[1],
		CommitteeNoConfidence: values[2],
		UpdateConstitution:    values[3],
		HardForkInitiation:    values[4],
		PPNetworkGroup:        values[5],
		PPEconomicGroup:       values[6],
		PPTechnicalGroup:      values[7],
		PPGovernanceGroup:     values[8],
		TreasuryWithdrawal:    values[9],
	}, nil
}

func (t *DRepVotingThresholds) toCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(10); err != nil {
		return err
	}
	for _, v := range []*common.UnitInterval{
		t.MotionNoConfidence, t.CommitteeNormal, t.CommitteeNoConfidence, t.UpdateConstitution,
		t.HardForkInitiation, t.PPNetworkGroup, t.PPEconomicGroup, t.PPTechnicalGroup,
		t.PPGovernanceGroup, t.TreasuryWithdrawal,
	} {
		if err := v.ToCBOR(w); err != nil {
			return err
		}
	}
	return w.WriteEndArray()
}
