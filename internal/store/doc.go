// Package store persists normalized dataset snapshots in SQLite.
//
// One snapshot is the product of one successful source fetch: its row
// index, column index, and cell values, plus fetch metadata (source URL
// and fetch time) used for the freshness check. Snapshots are written
// atomically in a single transaction; a failed fetch therefore never
// disturbs the previous snapshot, which is what allows a later invocation
// to fall back to stale cache.
//
// Reads use explicit ORDER BY on the stored ordinals so a snapshot always
// round-trips with its original row and column order.
package store
