package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/boardsync/internal/models"
)

var _ list.Item = boardItem{}

// boardItem wraps [models.Board] to implement [list.Item].
type boardItem struct {
	board models.Board
}

func (i boardItem) FilterValue() string { return i.board.Name }
func (i boardItem) Title() string       { return i.board.Name }
func (i boardItem) Description() string {
	if i.board.Description != "" {
		return i.board.Description
	}
	return i.board.ID
}

func newBoardList(title string, boards []models.Board, width, height int) list.Model {
	items := make([]list.Item, len(boards))
	for i, b := range boards {
		items[i] = boardItem{board: b}
	}
	l := list.New(items, list.NewDefaultDelegate(), max(width, 0), max(height, 0))
	l.Title = title
	return l
}
