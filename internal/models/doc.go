// Package models defines domain entities and persistence interfaces for the board sync service.
//
// The package contains two categories of types:
//
// 1. Ephemeral values built per request from provider responses
//   - [Board] : a normalized collection reference from either provider
//   - [SourceItem] : a transferable image-board item with ordered [ImageCandidate] values
//   - [Outcome] and [SyncSummary] : per-item results of a sync run
//
// 2. Persistent entities
//   - [Identity] : one logical user holding zero, one or two provider tokens
//
// [IdentityStore] is the persistence contract for identities: single-record lookups and single-field updates,
// no multi-record transactions.
package models
