// Package reporting folds read-only snapshots of persisted records into the
// derived figures shown on the blood inventory page and the admin dashboard.
//
// Everything here is a pure function of its input: callers fetch the
// snapshot, reporting reduces it. Nothing is cached between calls.
package reporting
