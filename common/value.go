package common

import (
	"bytes"

	"github.com/biglup-go/cardano-serialization/cbor"
)

// PolicyIDLen is the fixed length of a minting policy ID (a script hash).
const PolicyIDLen = 28

// PolicyID identifies a native or Plutus minting policy by its script
// hash.
type PolicyID [PolicyIDLen]byte

// AssetName is an arbitrary, ledger-defined (<=32 byte) token name.
type AssetName []byte

// assetCmp orders asset names lexicographically, matching the canonical
// byte-string ordering CBOR canonical maps require.
func assetCmp(a, b AssetName) int {
	return bytes.Compare(a, b)
}

// policyCmp orders policy IDs lexicographically.
func policyCmp(a, b PolicyID) int {
	return bytes.Compare(a[:], b[:])
}

// MultiAsset is Cardano's nested sorted map of policy ID -> asset name ->
// quantity, used both for minted-value and output-value multi-asset
// bundles. Both levels preserve canonical (ascending) key order on
// emission (spec.md §5 ordering guarantees).
type MultiAsset struct {
	byPolicy *OrderedMap[PolicyID, *OrderedMap[AssetName, int64]]
}

// NewMultiAsset constructs an empty multi-asset bundle.
func NewMultiAsset() *MultiAsset {
	return &MultiAsset{byPolicy: NewOrderedMap[PolicyID, *OrderedMap[AssetName, int64]](policyCmp)}
}

// Set records the quantity of a single (policy, asset) pair, creating the
// inner map if this is the bundle's first asset under that policy.
func (m *MultiAsset) Set(policy PolicyID, asset AssetName, quantity int64) {
	inner, ok := m.byPolicy.Get(policy)
	if !ok {
		inner = NewOrderedMap[AssetName, int64](assetCmp)
		m.byPolicy.Insert(policy, inner)
	}
	inner.Insert(asset, quantity)
}

// Get returns the quantity recorded for (policy, asset).
func (m *MultiAsset) Get(policy PolicyID, asset AssetName) (int64, bool) {
	inner, ok := m.byPolicy.Get(policy)
	if !ok {
		return 0, false
	}
	return inner.Get(asset)
}

// Each iterates (policy, asset, quantity) triples in canonical order.
func (m *MultiAsset) Each(f func(policy PolicyID, asset AssetName, quantity int64)) {
	m.byPolicy.Each(func(policy PolicyID, inner *OrderedMap[AssetName, int64]) {
		inner.Each(func(asset AssetName, qty int64) {
			f(policy, asset, qty)
		})
	})
}

// PolicyCount returns the number of distinct policies in the bundle.
func (m *MultiAsset) PolicyCount() int {
	return m.byPolicy.Len()
}

// MultiAssetFromCBOR decodes the nested policy -> asset -> quantity map.
func MultiAssetFromCBOR(r *cbor.CborReader, signed bool) (*MultiAsset, error) {
	ma := NewMultiAsset()
	outerLen, err := r.ReadStartMap()
	if err != nil {
		return nil, err
	}
	seenPolicies := make(map[PolicyID]bool)
	for i := 0; outerLen < 0 || i < outerLen; i++ {
		if outerLen < 0 {
			state, err := r.PeekState()
			if err != nil {
				return nil, err
			}
			if state == cbor.StateEndMap {
				break
			}
		}
		policyBytes, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		if len(policyBytes) != PolicyIDLen {
			return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "multi_asset", "policy id must be 28 bytes")
		}
		var policy PolicyID
		copy(policy[:], policyBytes)
		if seenPolicies[policy] {
			return nil, cbor.NewDomainError(cbor.ErrDuplicatedCborMapKey, "multi_asset", "duplicate policy id")
		}
		seenPolicies[policy] = true

		innerLen, err := r.ReadStartMap()
		if err != nil {
			return nil, err
		}
		seenAssets := make(map[string]bool)
		for j := 0; innerLen < 0 || j < innerLen; j++ {
			if innerLen < 0 {
				state, err := r.PeekState()
				if err != nil {
					return nil, err
				}
				if state == cbor.StateEndMap {
					break
				}
			}
			assetBytes, err := r.ReadByteString()
			if err != nil {
				return nil, err
			}
			if seenAssets[string(assetBytes)] {
				return nil, cbor.NewDomainError(cbor.ErrDuplicatedCborMapKey, "multi_asset", "duplicate asset name")
			}
			seenAssets[string(assetBytes)] = true

			var qty int64
			if signed {
				qty, err = r.ReadInt64()
			} else {
				var u uint64
				u, err = r.ReadUint64()
				qty = int64(u)
			}
			if err != nil {
				return nil, err
			}
			ma.Set(policy, AssetName(assetBytes), qty)
		}
		if err := r.ReadEndMap(); err != nil {
			return nil, err
		}
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}
	return ma, nil
}

// ToCBOR encodes the bundle as the nested policy -> asset -> quantity map,
// in canonical ascending key order at both levels.
func (m *MultiAsset) ToCBOR(w *cbor.CborWriter, signed bool) error {
	if err := w.WriteStartMap(m.byPolicy.Len()); err != nil {
		return err
	}
	var outerErr error
	m.byPolicy.Each(func(policy PolicyID, inner *OrderedMap[AssetName, int64]) {
		if outerErr != nil {
			return
		}
		if outerErr = w.WriteByteString(policy[:]); outerErr != nil {
			return
		}
		if outerErr = w.WriteStartMap(inner.Len()); outerErr != nil {
			return
		}
		inner.Each(func(asset AssetName, qty int64) {
			if outerErr != nil {
				return
			}
			if outerErr = w.WriteByteString(asset); outerErr != nil {
				return
			}
			if signed {
				outerErr = w.WriteInt64(qty)
			} else {
				outerErr = w.WriteUint64(uint64(qty))
			}
		})
		if outerErr != nil {
			return
		}
		outerErr = w.WriteEndMap()
	})
	if outerErr != nil {
		return outerErr
	}
	return w.WriteEndMap()
}

// Value is a transaction output's (or withdrawal's) total worth: a
// lovelace quantity plus an optional multi-asset bundle. The two-element
// array form is only used when assets are present; a bare integer encodes
// ada-only value (Mary-era "Value" union).
type Value struct {
	Coin   uint64
	Assets *MultiAsset // nil for ada-only value
}

// ValueFromCBOR decodes either the bare-integer ada-only form or the
// [coin, multiasset] array form.
func ValueFromCBOR(r *cbor.CborReader) (*Value, error) {
	state, err := r.PeekState()
	if err != nil {
		return nil, err
	}
	if state == cbor.StateUnsignedInteger {
		coin, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		return &Value{Coin: coin}, nil
	}

	if err := cbor.ValidateArrayOfNElements("value", r, 2); err != nil {
		return nil, err
	}
	coin, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	assets, err := MultiAssetFromCBOR(r, false)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("value", r); err != nil {
		return nil, err
	}
	return &Value{Coin: coin, Assets: assets}, nil
}

// ToCBOR encodes the value, using the bare-integer form when no assets are
// present and the 2-element array form otherwise.
func (v *Value) ToCBOR(w *cbor.CborWriter) error {
	if v.Assets == nil || v.Assets.PolicyCount() == 0 {
		return w.WriteUint64(v.Coin)
	}
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(v.Coin); err != nil {
		return err
	}
	if err := v.Assets.ToCBOR(w, false); err != nil {
		return err
	}
	return w.WriteEndArray()
}
