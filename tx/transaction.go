package tx

import (
	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/ccrypto"
	"github.com/biglup-go/cardano-serialization/witness"
)

// transactionIDHashLen is the blake2b-256 digest length Cardano uses for
// transaction identifiers.
const transactionIDHashLen = 32

// Transaction is the full on-chain envelope: the signed body, its
// witnesses, a validity flag (false marks a Plutus phase-2 failure whose
// collateral was collected instead of its outputs), and optional
// auxiliary data. Legacy pre-Alonzo transactions omit the validity flag
// (a bare 3-element array); that shape is accepted on decode with
// IsValid defaulted to true.
type Transaction struct {
	Body          *TransactionBody
	WitnessSet    *witness.TransactionWitnessSet
	IsValid       bool
	AuxiliaryData *AuxiliaryData // nil when absent
}

// TransactionFromCBOR decodes either the legacy 3-element or current
// 4-element transaction frame. Indefinite-length transaction arrays are
// rejected.
func TransactionFromCBOR(r *cbor.CborReader) (*Transaction, error) {
	sp := r.Savepoint()
	length, err := r.ReadStartArray()
	r.Restore(sp)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, cbor.NewDomainError(cbor.ErrInvalidCborArraySize, "transaction", "indefinite-length transaction frames are rejected")
	}
	if length != 3 && length != 4 {
		return nil, cbor.NewDomainError(cbor.ErrInvalidCborArraySize, "transaction", "expected 3 or 4 elements")
	}

	if err := cbor.ValidateArrayOfNElements("transaction", r, length); err != nil {
		return nil, err
	}
	body, err := TransactionBodyFromCBOR(r)
	if err != nil {
		return nil, err
	}
	witnessSet, err := witness.TransactionWitnessSetFromCBOR(r)
	if err != nil {
		return nil, err
	}

	tx := &Transaction{Body: body, WitnessSet: witnessSet, IsValid: true}
	if length == 4 {
		isValid, err := r.ReadBoolean()
		if err != nil {
			return nil, err
		}
		tx.IsValid = isValid
	}

	isNull, err := r.TryReadNull()
	if err != nil {
		return nil, err
	}
	if !isNull {
		aux, err := AuxiliaryDataFromCBOR(r)
		if err != nil {
			return nil, err
		}
		tx.AuxiliaryData = aux
	}

	if err := cbor.ValidateEndArray("transaction", r); err != nil {
		return nil, err
	}
	return tx, nil
}

// ToCBOR always emits the current 4-element frame.
func (tx *Transaction) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(4); err != nil {
		return err
	}
	if err := tx.Body.ToCBOR(w); err != nil {
		return err
	}
	if err := tx.WitnessSet.ToCBOR(w); err != nil {
		return err
	}
	if err := w.WriteBoolean(tx.IsValid); err != nil {
		return err
	}
	if tx.AuxiliaryData == nil {
		if err := w.WriteNull(); err != nil {
			return err
		}
	} else if err := tx.AuxiliaryData.ToCBOR(w); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// ID computes the transaction identifier: the blake2b-256 digest of the
// body's canonical CBOR encoding (the cached bytes when present, so an
// unmutated decoded body hashes to the exact id it arrived with).
func (tx *Transaction) ID(hasher ccrypto.Hasher) ([32]byte, error) {
	var id [32]byte
	w := cbor.NewCborWriter()
	if err := tx.Body.ToCBOR(w); err != nil {
		return id, err
	}
	digest, err := hasher.Hash(w.Bytes(), transactionIDHashLen)
	if err != nil {
		return id, err
	}
	copy(id[:], digest)
	return id, nil
}
