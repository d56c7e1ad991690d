// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI walks through one board sync:
//  1. [SourceListView] : Browse and select a Pinterest board
//  2. [DestinationListView] : Pick the Miro board that receives the images
//  3. [ConfirmView] : Confirm the sync
//  4. [TransferView] : Monitor per-item progress
//  5. [ResultView] : Display created, skipped and failed counts
//
// Boards for both providers are fetched once at startup through a [BoardLister]. Progress updates flow through a
// channel from the [Syncer], so rendering never blocks on provider calls.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
