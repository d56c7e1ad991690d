// Package tasks holds the board sync core: linking provider tokens to an identity,
// listing boards on both providers and copying a source board onto a destination board.
//
// # Reconciliation
//
// [Reconciler.Reconcile] places a newly issued token into the right identity record. The
// two OAuth round-trips happen independently, so the token from the first provider is passed
// back as a fallback lookup when the second one completes without a known identity.
//
// # Board Listing
//
// [BoardLister.ListBoards] queries both providers concurrently with an errgroup. A missing
// token is reported before any request is made.
//
// # Sync
//
// [Pipeline.Sync] fetches every source item, then folds over them in order:
//   - [SelectImage] picks the best of the documented variants; none means skipped_no_image
//   - [ItemTitle] falls back to "Untitled"
//   - the destination write either yields created or failed, and the run continues
//
// # Progress Reporting
//
// Sync emits [ProgressUpdate] values on an optional channel. Sends never block; updates
// are dropped when the channel is full.
package tasks
