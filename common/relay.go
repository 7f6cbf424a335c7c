package common

import "github.com/biglup-go/cardano-serialization/cbor"

// RelayType discriminates the three relay-address shapes a stake pool
// registration certificate can list.
type RelayType uint64

const (
	// RelayTypeSingleHostAddr is a relay identified by IPv4/IPv6 + port.
	RelayTypeSingleHostAddr RelayType = 0
	// RelayTypeSingleHostName is a relay identified by a DNS name + port.
	RelayTypeSingleHostName RelayType = 1
	// RelayTypeMultiHostName is a relay identified by a DNS name whose SRV
	// records list the actual hosts.
	RelayTypeMultiHostName RelayType = 2
)

// Relay is a tagged-variant entity (spec.md §3): exactly one of the
// payload fields below is meaningful, selected by Type.
type Relay struct {
	Type RelayType

	// SingleHostAddr fields.
	Port *uint16
	IPv4 []byte // 4 bytes, or nil
	IPv6 []byte // 16 bytes, or nil

	// SingleHostName / MultiHostName field.
	DNSName string
}

// RelayFromCBOR peeks the discriminant at array index 0 via a savepoint,
// then dispatches to the matching variant decode (spec.md §4.4
// "peek-by-clone" pattern, amortized as a savepoint restore rather than a
// full buffer clone per §9 Design Notes).
func RelayFromCBOR(r *cbor.CborReader) (*Relay, error) {
	discriminant, err := r.PeekArrayDiscriminant()
	if err != nil {
		return nil, err
	}

	switch RelayType(discriminant) {
	case RelayTypeSingleHostAddr:
		return relaySingleHostAddrFromCBOR(r)
	case RelayTypeSingleHostName:
		return relaySingleHostNameFromCBOR(r)
	case RelayTypeMultiHostName:
		return relayMultiHostNameFromCBOR(r)
	default:
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "relay", "unknown relay type")
	}
}

func relaySingleHostAddrFromCBOR(r *cbor.CborReader) (*Relay, error) {
	if err := cbor.ValidateArrayOfNElements("relay.single_host_addr", r, 4); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("relay.single_host_addr", "type", r, uint64(RelayTypeSingleHostAddr), relayTypeName, cbor.ErrInvalidRelayType); err != nil {
		return nil, err
	}

	port, err := readOptionalUint16(r)
	if err != nil {
		return nil, err
	}
	ipv4, err := readOptionalBytes(r)
	if err != nil {
		return nil, err
	}
	ipv6, err := readOptionalBytes(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("relay.single_host_addr", r); err != nil {
		return nil, err
	}
	return &Relay{Type: RelayTypeSingleHostAddr, Port: port, IPv4: ipv4, IPv6: ipv6}, nil
}

func relaySingleHostNameFromCBOR(r *cbor.CborReader) (*Relay, error) {
	if err := cbor.ValidateArrayOfNElements("relay.single_host_name", r, 3); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("relay.single_host_name", "type", r, uint64(RelayTypeSingleHostName), relayTypeName, cbor.ErrInvalidRelayType); err != nil {
		return nil, err
	}
	port, err := readOptionalUint16(r)
	if err != nil {
		return nil, err
	}
	name, err := r.ReadTextString()
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("relay.single_host_name", r); err != nil {
		return nil, err
	}
	return &Relay{Type: RelayTypeSingleHostName, Port: port, DNSName: name}, nil
}

func relayMultiHostNameFromCBOR(r *cbor.CborReader) (*Relay, error) {
	if err := cbor.ValidateArrayOfNElements("relay.multi_host_name", r, 2); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("relay.multi_host_name", "type", r, uint64(RelayTypeMultiHostName), relayTypeName, cbor.ErrInvalidRelayType); err != nil {
		return nil, err
	}
	name, err := r.ReadTextString()
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("relay.multi_host_name", r); err != nil {
		return nil, err
	}
	return &Relay{Type: RelayTypeMultiHostName, DNSName: name}, nil
}

// ToCBOR dispatches to the matching variant's encoding based on Type.
func (r *Relay) ToCBOR(w *cbor.CborWriter) error {
	switch r.Type {
	case RelayTypeSingleHostAddr:
		if err := w.WriteStartArray(4); err != nil {
			return err
		}
		if err := w.WriteUint64(uint64(RelayTypeSingleHostAddr)); err != nil {
			return err
		}
		if err := writeOptionalUint16(w, r.Port); err != nil {
			return err
		}
		if err := writeOptionalBytes(w, r.IPv4); err != nil {
			return err
		}
		if err := writeOptionalBytes(w, r.IPv6); err != nil {
			return err
		}
		return w.WriteEndArray()

	case RelayTypeSingleHostName:
		if err := w.WriteStartArray(3); err != nil {
			return err
		}
		if err := w.WriteUint64(uint64(RelayTypeSingleHostName)); err != nil {
			return err
		}
		if err := writeOptionalUint16(w, r.Port); err != nil {
			return err
		}
		if err := w.WriteTextString(r.DNSName); err != nil {
			return err
		}
		return w.WriteEndArray()

	case RelayTypeMultiHostName:
		if err := w.WriteStartArray(2); err != nil {
			return err
		}
		if err := w.WriteUint64(uint64(RelayTypeMultiHostName)); err != nil {
			return err
		}
		if err := w.WriteTextString(r.DNSName); err != nil {
			return err
		}
		return w.WriteEndArray()

	default:
		return cbor.NewDomainError(cbor.ErrInvalidArgument, "relay", "unknown relay type")
	}
}

func relayTypeName(v uint64) string {
	return RelayType(v).String()
}

func (t RelayType) String() string {
	switch t {
	case RelayTypeSingleHostAddr:
		return "single_host_addr"
	case RelayTypeSingleHostName:
		return "single_host_name"
	case RelayTypeMultiHostName:
		return "multi_host_name"
	default:
		return "unknown"
	}
}

// readOptionalUint16 reads a nullable port number.
func readOptionalUint16(r *cbor.CborReader) (*uint16, error) {
	isNull, err := r.TryReadNull()
	if err != nil {
		return nil, err
	}
	if isNull {
		return nil, nil
	}
	v, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func writeOptionalUint16(w *cbor.CborWriter, v *uint16) error {
	if v == nil {
		return w.WriteNull()
	}
	return w.WriteUint16(*v)
}

// readOptionalBytes reads a nullable byte string.
func readOptionalBytes(r *cbor.CborReader) ([]byte, error) {
	isNull, err := r.TryReadNull()
	if err != nil {
		return nil, err
	}
	if isNull {
		return nil, nil
	}
	return r.ReadByteString()
}

func writeOptionalBytes(w *cbor.CborWriter, b []byte) error {
	if b == nil {
		return w.WriteNull()
	}
	return w.WriteByteString(b)
}
