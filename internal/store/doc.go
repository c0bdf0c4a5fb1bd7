// Package store provides SQLite-backed snapshots of the attribute registry.
//
// A snapshot is the full registry table at one point in time, written in a
// single transaction so external tooling can consume the catalog as data:
//   - Snapshots: one row per distinct catalog, keyed by a random UUID
//   - Attributes: one row per entry, keyed by (snapshot_id, ordinal)
//
// # Invariants
//
// Content identity:
//   - snapshots.digest is UNIQUE; writing an identical catalog twice returns
//     the existing snapshot instead of inserting a duplicate
//   - The digest is attr.DigestOf over the entries, so a snapshot can be
//     re-verified against its rows at any time
//
// Deterministic ordering:
//   - Snapshots are ordered by seq, a logical counter, never by wall time
//   - Attribute rows are always read ORDER BY ordinal ASC
//
// Optional values:
//   - attributes.value_shape is NULL for attributes that take no value,
//     never an empty or placeholder string
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
