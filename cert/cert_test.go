package cert

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

func roundTrip(t *testing.T, c Certificate) Certificate {
	t.Helper()
	w := cbor.NewCborWriter()
	require.NoError(t, c.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := FromCBOR(r)
	require.NoError(t, err)
	require.Equal(t, c.Kind(), got.Kind())
	return got
}

func TestStakeRegistrationRoundTrip(t *testing.T) {
	c := &StakeRegistration{Credential: credFixture(1)}
	got := roundTrip(t, c).(*StakeRegistration)
	require.Equal(t, 0, c.Credential.Compare(got.Credential))
}

func TestStakeDeregistrationRoundTrip(t *testing.T) {
	c := &StakeDeregistration{Credential: credFixture(2)}
	got := roundTrip(t, c).(*StakeDeregistration)
	require.Equal(t, 0, c.Credential.Compare(got.Credential))
}

func TestStakeDelegationRoundTrip(t *testing.T) {
	var pool [PoolKeyHashLen]byte
	pool[0] = 9
	c := &StakeDelegation{Credential: credFixture(3), PoolKeyHash: pool}
	got := roundTrip(t, c).(*StakeDelegation)
	require.Equal(t, pool, got.PoolKeyHash)
}

func TestPoolRetirementRoundTrip(t *testing.T) {
	var pool [PoolKeyHashLen]byte
	pool[1] = 7
	c := &PoolRetirement{PoolKeyHash: pool, Epoch: 450}
	got := roundTrip(t, c).(*PoolRetirement)
	require.Equal(t, uint64(450), got.Epoch)
	require.Equal(t, pool, got.PoolKeyHash)
}

func TestPoolRegistrationRoundTrip(t *testing.T) {
	var vrf [32]byte
	operator28 := [PoolKeyHashLen]byte{}
	operator28[0] = 1
	vrf[0] = 2

	params := &PoolParams{
		Operator:      operator28,
		VRFKeyHash:    vrf,
		Pledge:        1_000_000,
		Cost:          340_000,
		Margin:        &common.UnitInterval{Numerator: 3, Denominator: 100},
		RewardAccount: []byte{0xe1, 1, 2, 3},
		PoolOwners:    [][PoolKeyHashLen]byte{operator28},
		Relays: []*common.Relay{
			{Type: common.RelayTypeMultiHostName, DNSName: "relay.example.com"},
		},
		Metadata: &PoolMetadata{URL: "https://example.com/meta.json", Hash: vrf},
	}
	c := &PoolRegistration{Params: params}
	got := roundTrip(t, c).(*PoolRegistration)
	require.Equal(t, params.Pledge, got.Params.Pledge)
	require.Equal(t, params.Margin.Numerator, got.Params.Margin.Numerator)
	require.Equal(t, params.Metadata.URL, got.Params.Metadata.URL)
	require.Len(t, got.Params.Relays, 1)
}

func TestMoveInstantaneousRewardsToStakeCredentials(t *testing.T) {
	m := common.NewOrderedMap[credentialKey, int64](credentialKeyCmp)
	m.Insert(credentialKeyOf(credFixture(5)), 1000)
	c := &MoveInstantaneousRewards{Pot: MIRPotTreasury, ToStakeCredentials: m}
	got := roundTrip(t, c).(*MoveInstantaneousRewards)
	require.Equal(t, MIRPotTreasury, got.Pot)
	require.Nil(t, got.ToOtherPot)
	require.Equal(t, 1, got.ToStakeCredentials.Len())
}

func TestMoveInstantaneousRewardsToOtherPot(t *testing.T) {
	amount := uint64(5_000_000)
	c := &MoveInstantaneousRewards{Pot: MIRPotReserves, ToOtherPot: &amount}
	got := roundTrip(t, c).(*MoveInstantaneousRewards)
	require.NotNil(t, got.ToOtherPot)
	require.Equal(t, amount, *got.ToOtherPot)
}

func TestVoteDelegCertRoundTrip(t *testing.T) {
	drep := &common.DRep{Type: common.DRepTypeAlwaysAbstain}
	c := &VoteDelegCert{Credential: credFixture(6), DRep: drep}
	got := roundTrip(t, c).(*VoteDelegCert)
	require.Equal(t, common.DRepTypeAlwaysAbstain, got.DRep.Type)
}

func TestStakeVoteRegDelegCertRoundTrip(t *testing.T) {
	var pool [PoolKeyHashLen]byte
	pool[2] = 4
	drepHash := make([]byte, common.CredentialHashLen)
	drepCred, err := common.NewCredential(common.CredentialTypeScriptHash, drepHash)
	require.NoError(t, err)
	drep := &common.DRep{Type: common.DRepTypeScriptHash, Credential: drepCred}

	c := &StakeVoteRegDelegCert{
		Credential:  credFixture(7),
		PoolKeyHash: pool,
		DRep:        drep,
		Deposit:     2_000_000,
	}
	got := roundTrip(t, c).(*StakeVoteRegDelegCert)
	require.Equal(t, uint64(2_000_000), got.Deposit)
	require.Equal(t, pool, got.PoolKeyHash)
	require.Equal(t, common.DRepTypeScriptHash, got.DRep.Type)
}

func TestRegDrepCertRoundTripWithAnchor(t *testing.T) {
	anchor := &common.Anchor{URL: "https://example.com/drep.json"}
	c := &RegDrepCert{Credential: credFixture(8), Deposit: 500_000_000, Anchor: anchor}
	got := roundTrip(t, c).(*RegDrepCert)
	require.NotNil(t, got.Anchor)
	require.Equal(t, anchor.URL, got.Anchor.URL)
}

func TestResignCommitteeColdCertRoundTripNoAnchor(t *testing.T) {
	c := &ResignCommitteeColdCert{ColdCredential: credFixture(9)}
	got := roundTrip(t, c).(*ResignCommitteeColdCert)
	require.Nil(t, got.Anchor)
}

func TestUnknownCertificateTypeRejected(t *testing.T) {
	w := cbor.NewCborWriter()
	require.NoError(t, w.WriteStartArray(2))
	require.NoError(t, w.WriteUint64(99))
	require.NoError(t, w.WriteUint64(0))
	require.NoError(t, w.WriteEndArray())

	r := cbor.NewCborReader(w.Bytes())
	_, err := FromCBOR(r)
	require.Error(t, err)
}
