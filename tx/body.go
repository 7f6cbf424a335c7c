package tx

import (
	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/cert"
	"github.com/biglup-go/cardano-serialization/common"
)

const (
	bodyKeyInputs                 = 0
	bodyKeyOutputs                = 1
	bodyKeyFee                    = 2
	bodyKeyTTL                    = 3
	bodyKeyCertificates           = 4
	bodyKeyWithdrawals            = 5
	bodyKeyUpdate                 = 6
	bodyKeyAuxiliaryDataHash      = 7
	bodyKeyValidityIntervalStart  = 8
	bodyKeyMint                   = 9
	bodyKeyScriptDataHash         = 11
	bodyKeyCollateralInputs       = 13
	bodyKeyRequiredSigners        = 14
	bodyKeyNetworkID              = 15
	bodyKeyCollateralReturn       = 16
	bodyKeyTotalCollateral        = 17
	bodyKeyReferenceInputs        = 18
	bodyKeyVotingProcedures       = 19
	bodyKeyProposalProcedures     = 20
	bodyKeyCurrentTreasuryValue   = 21
	bodyKeyDonation               = 22
)

// TransactionBody is the signed portion of a transaction: a sparse keyed
// map over keys 0..22, most fields optional beyond the mandatory inputs,
// outputs, and fee.
type TransactionBody struct {
	common.CBORCache

	Inputs  []*TransactionInput
	Outputs []*TransactionOutput
	Fee     uint64

	TTL                    *uint64
	Certificates           []cert.Certificate
	Withdrawals            *Withdrawals
	Update                 *Update
	AuxiliaryDataHash      *[32]byte
	ValidityIntervalStart  *uint64
	Mint                   *common.MultiAsset
	ScriptDataHash         *[32]byte
	CollateralInputs       []*TransactionInput
	RequiredSigners        [][28]byte
	NetworkID              *uint64
	CollateralReturn       *TransactionOutput
	TotalCollateral        *uint64
	ReferenceInputs        []*TransactionInput
	VotingProcedures       []VoterBallot
	ProposalProcedures     []*ProposalProcedure
	CurrentTreasuryValue   *uint64
	Donation               *uint64
}

// TransactionBodyFromCBOR decodes the sparse body map.
func TransactionBodyFromCBOR(r *cbor.CborReader) (*TransactionBody, error) {
	raw, err := r.ReadEncodedValue()
	if err != nil {
		return nil, err
	}
	inner := cbor.NewCborReader(raw)

	body := &TransactionBody{}
	count, err := inner.ReadStartMap()
	if err != nil {
		return nil, err
	}
	seen := make(map[uint64]bool)
	haveInputs, haveOutputs, haveFee := false, false, false
	for i := 0; count < 0 || i < count; i++ {
		if count < 0 {
			state, err := inner.PeekState()
			if err != nil {
				return nil, err
			}
			if state == cbor.StateEndMap {
				break
			}
		}
		key, err := inner.ReadUint64()
		if err != nil {
			return nil, err
		}
		if seen[key] {
			return nil, cbor.NewDomainError(cbor.ErrDuplicatedCborMapKey, "transaction_body", "duplicate key")
		}
		seen[key] = true

		switch key {
		case bodyKeyInputs:
			haveInputs = true
		case bodyKeyOutputs:
			haveOutputs = true
		case bodyKeyFee:
			haveFee = true
		}
		if err := body.readField(inner, key); err != nil {
			return nil, err
		}
	}
	if err := inner.ReadEndMap(); err != nil {
		return nil, err
	}
	if !haveInputs || !haveOutputs || !haveFee {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "transaction_body", "inputs, outputs, and fee are mandatory")
	}
	body.SetCached(raw)
	return body, nil
}

func (body *TransactionBody) readField(r *cbor.CborReader, key uint64) error {
	readUint := func() (*uint64, error) {
		v, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	readHash32 := func(name string) (*[32]byte, error) {
		b, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		if len(b) != 32 {
			return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, name, "hash must be 32 bytes")
		}
		var h [32]byte
		copy(h[:], b)
		return &h, nil
	}
	readInputList := func() ([]*TransactionInput, error) {
		count, err := r.ReadStartArray()
		if err != nil {
			return nil, err
		}
		var items []*TransactionInput
		for i := 0; count < 0 || i < count; i++ {
			if count < 0 {
				state, err := r.PeekState()
				if err != nil {
					return nil, err
				}
				if state == cbor.StateEndArray {
					break
				}
			}
			item, err := TransactionInputFromCBOR(r)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, r.ReadEndArray()
	}

	switch key {
	case bodyKeyInputs:
		items, err := readInputList()
		if err != nil {
			return err
		}
		body.Inputs = items
	case bodyKeyOutputs:
		count, err := r.ReadStartArray()
		if err != nil {
			return err
		}
		for i := 0; count < 0 || i < count; i++ {
			if count < 0 {
				state, err := r.PeekState()
				if err != nil {
					return err
				}
				if state == cbor.StateEndArray {
					break
				}
			}
			out, err := TransactionOutputFromCBOR(r)
			if err != nil {
				return err
			}
			body.Outputs = append(body.Outputs, out)
		}
		if err := r.ReadEndArray(); err != nil {
			return err
		}
	case bodyKeyFee:
		fee, err := r.ReadUint64()
		if err != nil {
			return err
		}
		body.Fee = fee
	case bodyKeyTTL:
		v, err := readUint()
		if err != nil {
			return err
		}
		body.TTL = v
	case bodyKeyCertificates:
		count, err := r.ReadStartArray()
		if err != nil {
			return err
		}
		for i := 0; count < 0 || i < count; i++ {
			if count < 0 {
				state, err := r.PeekState()
				if err != nil {
					return err
				}
				if state == cbor.StateEndArray {
					break
				}
			}
			c, err := cert.FromCBOR(r)
			if err != nil {
				return err
			}
			body.Certificates = append(body.Certificates, c)
		}
		if err := r.ReadEndArray(); err != nil {
			return err
		}
	case bodyKeyWithdrawals:
		w, err := WithdrawalsFromCBOR(r)
		if err != nil {
			return err
		}
		body.Withdrawals = w
	case bodyKeyUpdate:
		u, err := UpdateFromCBOR(r)
		if err != nil {
			return err
		}
		body.Update = u
	case bodyKeyAuxiliaryDataHash:
		h, err := readHash32("auxiliary_data_hash")
		if err != nil {
			return err
		}
		body.AuxiliaryDataHash = h
	case bodyKeyValidityIntervalStart:
		v, err := readUint()
		if err != nil {
			return err
		}
		body.ValidityIntervalStart = v
	case bodyKeyMint:
		m, err := common.MultiAssetFromCBOR(r, true)
		if err != nil {
			return err
		}
		body.Mint = m
	case bodyKeyScriptDataHash:
		h, err := readHash32("script_data_hash")
		if err != nil {
			return err
		}
		body.ScriptDataHash = h
	case bodyKeyCollateralInputs:
		items, err := readInputList()
		if err != nil {
			return err
		}
		body.CollateralInputs = items
	case bodyKeyRequiredSigners:
		count, err := r.ReadStartArray()
		if err != nil {
			return err
		}
		for i := 0; count < 0 || i < count; i++ {
			if count < 0 {
				state, err := r.PeekState()
				if err != nil {
					return err
				}
				if state == cbor.StateEndArray {
					break
				}
			}
			b, err := r.ReadByteString()
			if err != nil {
				return err
			}
			if len(b) != 28 {
				return cbor.NewDomainError(cbor.ErrInvalidArgument, "required_signers", "hash must be 28 bytes")
			}
			var h [28]byte
			copy(h[:], b)
			body.RequiredSigners = append(body.RequiredSigners, h)
		}
		if err := r.ReadEndArray(); err != nil {
			return err
		}
	case bodyKeyNetworkID:
		v, err := readUint()
		if err != nil {
			return err
		}
		body.NetworkID = v
	case bodyKeyCollateralReturn:
		out, err := TransactionOutputFromCBOR(r)
		if err != nil {
			return err
		}
		body.CollateralReturn = out
	case bodyKeyTotalCollateral:
		v, err := readUint()
		if err != nil {
			return err
		}
		body.TotalCollateral = v
	case bodyKeyReferenceInputs:
		items, err := readInputList()
		if err != nil {
			return err
		}
		body.ReferenceInputs = items
	case bodyKeyVotingProcedures:
		ballots, err := votingProceduresFromCBOR(r)
		if err != nil {
			return err
		}
		body.VotingProcedures = ballots
	case bodyKeyProposalProcedures:
		procedures, err := proposalProceduresFromCBOR(r)
		if err != nil {
			return err
		}
		body.ProposalProcedures = procedures
	case bodyKeyCurrentTreasuryValue:
		v, err := readUint()
		if err != nil {
			return err
		}
		body.CurrentTreasuryValue = v
	case bodyKeyDonation:
		v, err := readUint()
		if err != nil {
			return err
		}
		body.Donation = v
	default:
		return cbor.NewDomainError(cbor.ErrInvalidCborMapKey, "transaction_body", "unrecognized key")
	}
	return nil
}

// ToCBOR encodes the sparse body map, re-emitting cached bytes verbatim
// when present.
func (body *TransactionBody) ToCBOR(w *cbor.CborWriter) error {
	if body.HasCache() {
		return w.WriteRaw(body.Cached())
	}

	type entry struct {
		key   uint64
		write func(*cbor.CborWriter) error
	}
	var entries []entry
	add := func(key uint64, present bool, fn func(*cbor.CborWriter) error) {
		if present {
			entries = append(entries, entry{key: key, write: fn})
		}
	}
	writeInputs := func(items []*TransactionInput) func(*cbor.CborWriter) error {
		return func(w *cbor.CborWriter) error {
			return writeArrayOf(w, len(items), func(i int) error { return items[i].ToCBOR(w) })
		}
	}

	add(bodyKeyInputs, true, writeInputs(body.Inputs))
	add(bodyKeyOutputs, true, func(w *cbor.CborWriter) error {
		return writeArrayOf(w, len(body.Outputs), func(i int) error { return body.Outputs[i].ToCBOR(w) })
	})
	add(bodyKeyFee, true, func(w *cbor.CborWriter) error { return w.WriteUint64(body.Fee) })
	add(bodyKeyTTL, body.TTL != nil, func(w *cbor.CborWriter) error { return w.WriteUint64(*body.TTL) })
	add(bodyKeyCertificates, len(body.Certificates) > 0, func(w *cbor.CborWriter) error {
		return writeArrayOf(w, len(body.Certificates), func(i int) error { return body.Certificates[i].ToCBOR(w) })
	})
	add(bodyKeyWithdrawals, body.Withdrawals != nil, func(w *cbor.CborWriter) error { return body.Withdrawals.ToCBOR(w) })
	add(bodyKeyUpdate, body.Update != nil, func(w *cbor.CborWriter) error { return body.Update.ToCBOR(w) })
	add(bodyKeyAuxiliaryDataHash, body.AuxiliaryDataHash != nil, func(w *cbor.CborWriter) error {
		return w.WriteByteString(body.AuxiliaryDataHash[:])
	})
	add(bodyKeyValidityIntervalStart, body.ValidityIntervalStart != nil, func(w *cbor.CborWriter) error {
		return w.WriteUint64(*body.ValidityIntervalStart)
	})
	add(bodyKeyMint, body.Mint != nil, func(w *cbor.CborWriter) error { return body.Mint.ToCBOR(w, true) })
	add(bodyKeyScriptDataHash, body.ScriptDataHash != nil, func(w *cbor.CborWriter) error {
		return w.WriteByteString(body.ScriptDataHash[:])
	})
	add(bodyKeyCollateralInputs, len(body.CollateralInputs) > 0, writeInputs(body.CollateralInputs))
	add(bodyKeyRequiredSigners, len(body.RequiredSigners) > 0, func(w *cbor.CborWriter) error {
		return writeArrayOf(w, len(body.RequiredSigners), func(i int) error {
			return w.WriteByteString(body.RequiredSigners[i][:])
		})
	})
	add(bodyKeyNetworkID, body.NetworkID != nil, func(w *cbor.CborWriter) error { return w.WriteUint64(*body.NetworkID) })
	add(bodyKeyCollateralReturn, body.CollateralReturn != nil, func(w *cbor.CborWriter) error {
		return body.CollateralReturn.ToCBOR(w)
	})
	add(bodyKeyTotalCollateral, body.TotalCollateral != nil, func(w *cbor.CborWriter) error {
		return w.WriteUint64(*body.TotalCollateral)
	})
	add(bodyKeyReferenceInputs, len(body.ReferenceInputs) > 0, writeInputs(body.ReferenceInputs))
	add(bodyKeyVotingProcedures, len(body.VotingProcedures) > 0, func(w *cbor.CborWriter) error {
		return votingProceduresToCBOR(w, body.VotingProcedures)
	})
	add(bodyKeyProposalProcedures, len(body.ProposalProcedures) > 0, func(w *cbor.CborWriter) error {
		return proposalProceduresToCBOR(w, body.ProposalProcedures)
	})
	add(bodyKeyCurrentTreasuryValue, body.CurrentTreasuryValue != nil, func(w *cbor.CborWriter) error {
		return w.WriteUint64(*body.CurrentTreasuryValue)
	})
	add(bodyKeyDonation, body.Donation != nil, func(w *cbor.CborWriter) error { return w.WriteUint64(*body.Donation) })

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
