// Package repositories implements SQL persistence for domain entities.
//
// Key Implementations:
//   - [IdentityRepository] : the identity store, one row per logical user with two nullable token columns
//
// Repositories run on SQLite (mattn/go-sqlite3) or Postgres (pgx stdlib driver). Queries are written with
// "?" placeholders and rebound for the active dialect.
//
// Every mutation touches a single row, and token updates write a single column, so concurrent requests on
// different identities never contend and racing writes to one identity rely on the database's row-level atomicity.
// Driver failures are wrapped with shared.ErrStoreUnavailable; missing rows are reported as shared.ErrIdentityNotFound.
package repositories
