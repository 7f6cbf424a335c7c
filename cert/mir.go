package cert

import (
	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
)

// MIRPot selects which pot a MoveInstantaneousRewards certificate draws
// from.
type MIRPot uint64

const (
	// MIRPotReserves draws from the reserves pot.
	MIRPotReserves MIRPot = 0
	// MIRPotTreasury draws from the treasury pot.
	MIRPotTreasury MIRPot = 1
)

// MoveInstantaneousRewards is a genesis-era emergency payout certificate.
// It carries exactly one of two payout shapes, selected by which field is
// non-nil: ToStakeCredentials pays individual credentials out of Pot;
// ToOtherPot moves a lump sum from Pot to the other pot.
type MoveInstantaneousRewards struct {
	Pot                 MIRPot
	ToStakeCredentials  *common.OrderedMap[credentialKey, int64]
	ToOtherPot          *uint64
}

// credentialKey is a comparable stand-in for *common.Credential so it can
// key an OrderedMap (pointers are not orderable by value).
type credentialKey struct {
	kind common.CredentialType
	hash [common.CredentialHashLen]byte
}

func credentialKeyOf(c *common.Credential) credentialKey {
	var k credentialKey
	k.kind = c.Type()
	copy(k.hash[:], c.Hash())
	return k
}

func credentialKeyCmp(a, b credentialKey) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	for i := range a.hash {
		if a.hash[i] != b.hash[i] {
			if a.hash[i] < b.hash[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (c *MoveInstantaneousRewards) Kind() Kind { return KindMoveInstantaneousReward }

func mirFromCBOR(r *cbor.CborReader) (*MoveInstantaneousRewards, error) {
	if err := cbor.ValidateArrayOfNElements("move_instantaneous_rewards", r, 2); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("move_instantaneous_rewards", "type", r, uint64(KindMoveInstantaneousReward), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}

	mir, err := moveInstantaneousRewardFromCBOR(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("move_instantaneous_rewards", r); err != nil {
		return nil, err
	}
	return mir, nil
}

// moveInstantaneousRewardFromCBOR decodes the embedded
// move_instantaneous_reward = [pot, { credential => delta } / other_pot_coin]
// 2-element structure, distinguishing its two shapes by peeking whether
// the second element is a map or a bare integer.
func moveInstantaneousRewardFromCBOR(r *cbor.CborReader) (*MoveInstantaneousRewards, error) {
	if err := cbor.ValidateArrayOfNElements("move_instantaneous_reward", r, 2); err != nil {
		return nil, err
	}
	potValue, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	pot := MIRPot(potValue)
	if pot != MIRPotReserves && pot != MIRPotTreasury {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "move_instantaneous_reward", "unknown pot")
	}

	state, err := r.PeekState()
	if err != nil {
		return nil, err
	}

	if state == cbor.StateUnsignedInteger {
		amount, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		if err := cbor.ValidateEndArray("move_instantaneous_reward", r); err != nil {
			return nil, err
		}
		return &MoveInstantaneousRewards{Pot: pot, ToOtherPot: &amount}, nil
	}

	byCredential := common.NewOrderedMap[credentialKey, int64](credentialKeyCmp)
	count, err := r.ReadStartMap()
	if err != nil {
		return nil, err
	}
	for i := 0; count < 0 || i < count; i++ {
		if count < 0 {
			st, err := r.PeekState()
			if err != nil {
				return nil, err
			}
			if st == cbor.StateEndMap {
				break
			}
		}
		cred, err := common.CredentialFromCBOR(r)
		if err != nil {
			return nil, err
		}
		delta, err := r.ReadInt64()
		if err != nil {
			return nil, err
		}
		byCredential.Insert(credentialKeyOf(cred), delta)
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("move_instantaneous_reward", r); err != nil {
		return nil, err
	}
	return &MoveInstantaneousRewards{Pot: pot, ToStakeCredentials: byCredential}, nil
}

func (c *MoveInstantaneousRewards) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindMoveInstantaneousReward)); err != nil {
		return err
	}

	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(c.Pot)); err != nil {
		return err
	}

	if c.ToOtherPot != nil {
		if err := w.WriteUint64(*c.ToOtherPot); err != nil {
			return err
		}
		if err := w.WriteEndArray(); err != nil {
			return err
		}
		return w.WriteEndArray()
	}

	if err := w.WriteStartMap(c.ToStakeCredentials.Len()); err != nil {
		return err
	}
	var innerErr error
	c.ToStakeCredentials.Each(func(key credentialKey, delta int64) {
		if innerErr != nil {
			return
		}
		cred, err := common.NewCredential(key.kind, key.hash[:])
		if err != nil {
			innerErr = err
			return
		}
		if innerErr = cred.ToCBOR(w); innerErr != nil {
			return
		}
		innerErr = w.WriteInt64(delta)
	})
	if innerErr != nil {
		return innerErr
	}
	if err := w.WriteEndMap(); err != nil {
		return err
	}
	if err := w.WriteEndArray(); err != nil {
		return err
	}
	return w.WriteEndArray()
}
