// Package storage provides durable backends for the audit chain.
//
// Two implementations exist:
//
//   - MemoryStorage: in-memory slice, for tests.
//   - SQLiteStorage: WAL-mode SQLite with single-transaction appends,
//     for production use.
//
// Both keep events strictly in insertion order and never update or
// delete a persisted row. Append atomicity matters: a cancelled request
// must either leave a complete row or no row, never a torn one, which
// SQLite gives us by wrapping the append in one transaction.
package storage
