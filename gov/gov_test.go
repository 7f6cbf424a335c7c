package gov

import (
	"testing"

	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
	"github.com/stretchr/testify/require"
)

func credFixture(b byte) *common.Credential {
	hash := make([]byte, common.CredentialHashLen)
	hash[0] = b
	cred, err := common.NewCredential(common.CredentialTypeKeyHash, hash)
	if err != nil {
		panic(err)
	}
	return cred
}

func TestActionIDRoundTrip(t *testing.T) {
	id := &ActionID{Index: 3}
	id.TransactionID[0] = 0xAB

	w := cbor.NewCborWriter()
	require.NoError(t, id.ToCBOR(w))
	r := cbor.NewCborReader(w.Bytes())
	got, err := ActionIDFromCBOR(r)
	require.NoError(t, err)
	require.Equal(t, id.TransactionID, got.TransactionID)
	require.Equal(t, id.Index, got.Index)
}

func TestProtocolParamUpdateSparseRoundTrip(t *testing.T) {
	minFeeA := uint64(44)
	nOpt := uint64(500)
	p := &ProtocolParamUpdate{
		MinFeeA: &minFeeA,
		NOpt:    &nOpt,
		ProtocolVersion: &ProtocolVersion{Major: 9, Minor: 0},
		ExecutionCosts: &ExUnitPrices{
			MemoryPrice: &common.UnitInterval{Numerator: 577, Denominator: 10000},
			StepPrice:   &common.UnitInterval{Numerator: 721, Denominator: 10000000},
		},
	}

	w := cbor.NewCborWriter()
	require.NoError(t, p.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := ProtocolParamUpdateFromCBOR(r)
	require.NoError(t, err)
	require.NotNil(t, got.MinFeeA)
	require.Equal(t, minFeeA, *got.MinFeeA)
	require.NotNil(t, got.NOpt)
	require.Equal(t, nOpt, *got.NOpt)
	require.Nil(t, got.PoolDeposit)
	require.Equal(t, uint64(9), got.ProtocolVersion.Major)
	require.Equal(t, uint64(577), got.ExecutionCosts.MemoryPrice.Numerator)
}

func TestProtocolParamUpdateUnknownKeyRejected(t *testing.T) {
	w := cbor.NewCborWriter()
	require.NoError(t, w.WriteStartMap(1))
	require.NoError(t, w.WriteUint64(999))
	require.NoError(t, w.WriteUint64(1))
	require.NoError(t, w.WriteEndMap())

	r := cbor.NewCborReader(w.Bytes())
	_, err := ProtocolParamUpdateFromCBOR(r)
	require.Error(t, err)
}

func TestCostModelsRoundTrip(t *testing.T) {
	cm := NewCostModels()
	cm.Set(LanguagePlutusV1, []int64{1, 2, 3})
	cm.Set(LanguagePlutusV3, []int64{9, 8, 7, 6})

	w := cbor.NewCborWriter()
	require.NoError(t, cm.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := CostModelsFromCBOR(r)
	require.NoError(t, err)
	v1, ok := got.Get(LanguagePlutusV1)
	require.True(t, ok)
	require.Equal(t, []int64{1, 2, 3}, v1)
	v3, ok := got.Get(LanguagePlutusV3)
	require.True(t, ok)
	require.Equal(t, []int64{9, 8, 7, 6}, v3)
}

func TestInfoActionRoundTrip(t *testing.T) {
	a := &InfoAction{}
	w := cbor.NewCborWriter()
	require.NoError(t, a.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := ActionFromCBOR(r)
	require.NoError(t, err)
	require.Equal(t, ActionKindInfo, got.Kind())
}

func TestNoConfidenceActionRoundTrip(t *testing.T) {
	parent := &ActionID{Index: 1}
	a := &NoConfidenceAction{Parent: parent}
	w := cbor.NewCborWriter()
	require.NoError(t, a.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := ActionFromCBOR(r)
	require.NoError(t, err)
	nca := got.(*NoConfidenceAction)
	require.NotNil(t, nca.Parent)
	require.Equal(t, uint64(1), nca.Parent.Index)
}

func TestTreasuryWithdrawalsActionRoundTrip(t *testing.T) {
	a := &TreasuryWithdrawalsAction{
		Withdrawals: []Withdrawal{
			{RewardAccount: []byte{0xe1, 1, 2}, Amount: 100},
		},
	}
	w := cbor.NewCborWriter()
	require.NoError(t, a.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := ActionFromCBOR(r)
	require.NoError(t, err)
	twa := got.(*TreasuryWithdrawalsAction)
	require.Len(t, twa.Withdrawals, 1)
	require.Equal(t, uint64(100), twa.Withdrawals[0].Amount)
	require.Nil(t, twa.Policy)
}

func TestUpdateCommitteeActionRoundTrip(t *testing.T) {
	toAdd := common.NewOrderedMap[committeeKey, uint64](committeeKeyCmp)
	toAdd.Insert(committeeKeyOf(credFixture(1)), 400)

	a := &UpdateCommitteeAction{
		MembersToRemove: []*common.Credential{credFixture(2)},
		MembersToAdd:    toAdd,
		Quorum:          &common.UnitInterval{Numerator: 2, Denominator: 3},
	}
	w := cbor.NewCborWriter()
	require.NoError(t, a.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := ActionFromCBOR(r)
	require.NoError(t, err)
	uca := got.(*UpdateCommitteeAction)
	require.Len(t, uca.MembersToRemove, 1)
	require.Equal(t, 1, uca.MembersToAdd.Len())
	require.Equal(t, uint64(2), uca.Quorum.Numerator)
}

func TestNewConstitutionActionRoundTrip(t *testing.T) {
	a := &NewConstitutionAction{
		Constitution: &Constitution{
			Anchor: &common.Anchor{URL: "https://example.com/constitution.json"},
		},
	}
	w := cbor.NewCborWriter()
	require.NoError(t, a.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := ActionFromCBOR(r)
	require.NoError(t, err)
	nca := got.(*NewConstitutionAction)
	require.Equal(t, a.Constitution.Anchor.URL, nca.Constitution.Anchor.URL)
	require.Nil(t, nca.Constitution.ScriptHash)
}

func TestVotingProcedureRoundTrip(t *testing.T) {
	p := &VotingProcedure{Vote: VoteYes}
	w := cbor.NewCborWriter()
	require.NoError(t, p.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := VotingProcedureFromCBOR(r)
	require.NoError(t, err)
	require.Equal(t, VoteYes, got.Vote)
	require.Nil(t, got.Anchor)
}
