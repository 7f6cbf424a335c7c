// Package network holds the immutable network-magic side table used to
// convert between Cardano slots, epochs, and unix time.
package network

import "math"

// Magic identifies a Cardano network for the purposes of slot/time
// conversion.
type Magic int

const (
	// Mainnet is the production Cardano network.
	Mainnet Magic = iota
	// Preview is the rolling preview testnet.
	Preview
	// Preprod is the pre-production testnet.
	Preprod
	// Testnet is the legacy public testnet.
	Testnet
)

// String returns the network's canonical name.
func (m Magic) String() string {
	switch m {
	case Mainnet:
		return "mainnet"
	case Preview:
		return "preview"
	case Preprod:
		return "preprod"
	case Testnet:
		return "testnet"
	default:
		return "unknown"
	}
}

// slotConfig is one row of the side table described in spec.md §4.4. Time
// fields are unix seconds (the mainnet constants below reproduce the
// worked example in spec.md §8 scenario (f), which is seconds-scale).
type slotConfig struct {
	zeroTime         int64
	zeroSlot         uint64
	slotLengthSec    int64
	startEpoch       uint64
	epochLengthSlots uint64
}

// table is the immutable compile-time side table keyed by network magic.
// Mainnet values correspond to the Shelley hard-fork boundary
// (slot 4492800, 2020-07-29T21:44:51Z, unix time 1596059091).
var table = map[Magic]slotConfig{
	Mainnet: {
		zeroTime:         1596059091,
		zeroSlot:         4492800,
		slotLengthSec:    1,
		startEpoch:       208,
		epochLengthSlots: 432000,
	},
	Preview: {
		zeroTime:         1666656000,
		zeroSlot:         0,
		slotLengthSec:    1,
		startEpoch:       0,
		epochLengthSlots: 86400,
	},
	Preprod: {
		zeroTime:         1654041600,
		zeroSlot:         86400,
		slotLengthSec:    1,
		startEpoch:       4,
		epochLengthSlots: 86400,
	},
	Testnet: {
		// The legacy public testnet sentinel: slotLengthSec is intentionally
		// zero here to exercise the division-by-zero sentinel behavior
		// spec.md calls out explicitly.
		zeroTime:         1564010416,
		zeroSlot:         0,
		slotLengthSec:    0,
		startEpoch:       0,
		epochLengthSlots: 0,
	},
}

// UnixTimeToSlot converts a unix time in seconds to an absolute slot number
// for the given network. Returns math.MaxUint64 if the network's slot
// length is zero (division-by-zero sentinel).
func UnixTimeToSlot(magic Magic, unixTime int64) uint64 {
	cfg := table[magic]
	if cfg.slotLengthSec == 0 {
		return math.MaxUint64
	}
	delta := unixTime - cfg.zeroTime
	return cfg.zeroSlot + uint64(delta/cfg.slotLengthSec)
}

// SlotToUnixTime converts an absolute slot number to a unix time in
// seconds for the given network.
func SlotToUnixTime(magic Magic, slot uint64) int64 {
	cfg := table[magic]
	return cfg.zeroTime + int64(slot-cfg.zeroSlot)*cfg.slotLengthSec
}

// UnixTimeToEpoch converts a unix time in seconds to an epoch number for
// the given network. Returns math.MaxUint64 if the network's epoch length
// is zero (division-by-zero sentinel).
func UnixTimeToEpoch(magic Magic, unixTime int64) uint64 {
	cfg := table[magic]
	if cfg.epochLengthSlots == 0 {
		return math.MaxUint64
	}
	delta := unixTime - cfg.zeroTime
	return cfg.startEpoch + uint64(delta)/cfg.epochLengthSlots
}
