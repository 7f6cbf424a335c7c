package tx

import (
	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
)

func rewardAccountCmp(a, b string) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Withdrawals maps a reward account address to the lovelace amount being
// withdrawn from its accumulated rewards.
type Withdrawals struct {
	*common.OrderedMap[string, uint64]
}

// NewWithdrawals constructs an empty withdrawals map.
func NewWithdrawals() *Withdrawals {
	return &Withdrawals{common.NewOrderedMap[string, uint64](rewardAccountCmp)}
}

// WithdrawalsFromCBOR decodes the reward-account-keyed map.
func WithdrawalsFromCBOR(r *cbor.CborReader) (*Withdrawals, error) {
	count, err := r.ReadStartMap()
	if err != nil {
		return nil, err
	}
	w := NewWithdrawals()
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
		account, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		amount, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		w.InsertDeferred(string(account), amount)
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}
	w.Freeze()
	return w, nil
}

// ToCBOR encodes the withdrawals map in sorted key order.
func (w *Withdrawals) ToCBOR(cw *cbor.CborWriter) error {
	if err := cw.WriteStartMap(w.Len()); err != nil {
		return err
	}
	var innerErr error
	w.Each(func(account string, amount uint64) {
		if innerErr != nil {
			return
		}
		if innerErr = cw.WriteByteString([]byte(account)); innerErr != nil {
			return
		}
		innerErr = cw.WriteUint64(amount)
	})
	if innerErr != nil {
		return innerErr
	}
	return cw.WriteEndMap()
}
