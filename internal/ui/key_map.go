package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	filter  key.Binding
	pick    key.Binding
	back    key.Binding
	confirm key.Binding
	cancel  key.Binding
	again   key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		pick:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick board")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "sync")),
		cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
		again:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "sync another board")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// forView returns the bindings shown in the help line of view.
func (k keyMap) forView(view ViewState) []key.Binding {
	switch view {
	case SourceListView:
		return []key.Binding{k.up, k.down, k.filter, k.pick, k.quit}
	case DestinationListView:
		return []key.Binding{k.up, k.down, k.filter, k.pick, k.back, k.quit}
	case ConfirmView:
		return []key.Binding{k.confirm, k.cancel}
	case ResultView:
		return []key.Binding{k.again, k.quit}
	default:
		return nil
	}
}
