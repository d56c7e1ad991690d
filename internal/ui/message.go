package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgBoardsFetched MsgKind = iota
	MsgProgressUpdate
	MsgSyncComplete
)

type boardsFetched struct {
	listing *models.BoardListing
	err     error
}

type syncComplete struct {
	summary *models.SyncSummary
	err     error
}

// boardsFetchedMsg is the constructor for [MsgBoardsFetched]
func boardsFetchedMsg(listing *models.BoardListing, err error) Msg {
	return Msg{kind: MsgBoardsFetched, data: boardsFetched{listing, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// syncCompleteMsg is the constructor for [MsgSyncComplete]
func syncCompleteMsg(summary *models.SyncSummary, err error) Msg {
	return Msg{kind: MsgSyncComplete, data: syncComplete{summary, err}}
}
