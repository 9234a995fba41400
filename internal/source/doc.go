// Package source fetches the retail electricity workbook and maintains
// the local snapshot cache.
//
// One Cache owns the refresh policy: load the stored snapshot when it is
// younger than the refresh interval, otherwise refetch, reparse, and
// replace it. A fetch or parse failure never disturbs the stored
// snapshot: the invocation falls back to stale cache when one exists and
// fails with a source-unavailable error only when there is nothing to
// fall back to. Load is idempotent within a process: the first successful
// load pins the canonical snapshot for the invocation.
package source
