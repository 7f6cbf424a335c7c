// Package witness implements the transaction witness set: vkey
// witnesses, bootstrap witnesses, the dual-shape redeemer list, and the
// sparse-map witness set container gathering them with native scripts,
// Plutus script refs, and Plutus data.
package witness

import (
	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/ccrypto"
)

// VKeyWitness pairs a verification key with its Ed25519 signature over
// the transaction body hash.
type VKeyWitness struct {
	VKey      ccrypto.Ed25519PublicKey
	Signature ccrypto.Ed25519Signature
}

// VKeyWitnessFromCBOR decodes the 2-element [vkey, signature] array.
func VKeyWitnessFromCBOR(r *cbor.CborReader) (*VKeyWitness, error) {
	if err := cbor.ValidateArrayOfNElements("vkey_witness", r, 2); err != nil {
		return nil, err
	}
	vkeyBytes, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	vkey, err := ccrypto.NewEd25519PublicKey(vkeyBytes)
	if err != nil {
		return nil, err
	}
	sigBytes, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	sig, err := ccrypto.NewEd25519Signature(sigBytes)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("vkey_witness", r); err != nil {
		return nil, err
	}
	return &VKeyWitness{VKey: vkey, Signature: sig}, nil
}

// ToCBOR encodes the witness.
func (v *VKeyWitness) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteByteString(v.VKey.Bytes()); err != nil {
		return err
	}
	if err := w.WriteByteString(v.Signature.Bytes()); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// BootstrapWitness authenticates a Byron-era (pre-Shelley) address:
// signature plus the chain-code/attributes needed to rebuild the address.
type BootstrapWitness struct {
	VKey      ccrypto.Ed25519PublicKey
	Signature ccrypto.Ed25519Signature
	ChainCode []byte
	Attributes []byte
}

// BootstrapWitnessFromCBOR decodes the 4-element
// [vkey, signature, chain_code, attributes] array.
func BootstrapWitnessFromCBOR(r *cbor.CborReader) (*BootstrapWitness, error) {
	if err := cbor.ValidateArrayOfNElements("bootstrap_witness", r, 4); err != nil {
		return nil, err
	}
	vkeyBytes, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	vkey, err := ccrypto.NewEd25519PublicKey(vkeyBytes)
	if err != nil {
		return nil, err
	}
	sigBytes, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	sig, err := ccrypto.NewEd25519Signature(sigBytes)
	if err != nil {
		return nil, err
	}
	chainCode, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	attrs, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("bootstrap_witness", r); err != nil {
		return nil, err
	}
	return &BootstrapWitness{
		VKey:       vkey,
		Signature:  sig,
		ChainCode:  chainCode,
		Attributes: attrs,
	}, nil
}

// ToCBOR encodes the witness.
func (b *BootstrapWitness) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(4); err != nil {
		return err
	}
	if err := w.WriteByteString(b.VKey.Bytes()); err != nil {
		return err
	}
	if err := w.WriteByteString(b.Signature.Bytes()); err != nil {
		return err
	}
	if err := w.WriteByteString(b.ChainCode); err != nil {
		return err
	}
	if err := w.WriteByteString(b.Attributes); err != nil {
		return err
	}
	return w.WriteEndArray()
}
