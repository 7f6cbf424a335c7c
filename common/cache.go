// Package common holds Cardano domain types shared across certificates,
// governance actions, scripts, witnesses, and transactions: credentials,
// the generic sorted key-value container, the CBOR-cache mixin, and relay
// addresses.
package common

// CBORCache is embedded by domain entities that retain the exact bytes
// they were decoded from, so re-serializing an unmutated entity emits the
// original encoding byte-for-byte (spec.md §3 invariant 5, §9 "Cached
// encoding"). Every setter that mutates a cache-bearing entity's semantic
// fields must call Clear(); container entities must propagate Clear to
// their children via their own ClearCBORCache method.
type CBORCache struct {
	raw []byte
}

// SetCached records the raw bytes an entity was decoded from.
func (c *CBORCache) SetCached(raw []byte) {
	c.raw = raw
}

// Cached returns the retained raw bytes, or nil if the entity was
// constructed in memory or has had its cache cleared.
func (c *CBORCache) Cached() []byte {
	return c.raw
}

// HasCache reports whether raw bytes are currently retained.
func (c *CBORCache) HasCache() bool {
	return c.raw != nil
}

// Clear drops the retained raw bytes, forcing the next serialization to
// re-derive the encoding from the entity's fields.
func (c *CBORCache) Clear() {
	c.raw = nil
}
