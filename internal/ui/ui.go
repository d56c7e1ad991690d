package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SourceListView ViewState = iota
	DestinationListView
	ConfirmView
	TransferView
	ResultView
)

// BoardLister fetches the boards of both providers.
type BoardLister interface {
	ListBoards(ctx context.Context, sourceToken, destinationToken string) (*models.BoardListing, error)
}

// Syncer runs one board sync.
type Syncer interface {
	Sync(ctx context.Context, req tasks.SyncRequest, progress chan<- tasks.ProgressUpdate) (*models.SyncSummary, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx              context.Context
	view             ViewState
	lister           BoardLister
	syncer           Syncer
	sourceToken      string
	destinationToken string
	width            int
	height           int
	loaded           bool
	sourceList       list.Model
	destinationList  list.Model
	source           *models.Board
	destination      *models.Board
	progressChan     chan tasks.ProgressUpdate
	done             chan syncComplete
	progress         tasks.ProgressUpdate
	summary          *models.SyncSummary
	err              error
	help             help.Model
	keys             keyMap
}

// NewModel creates a new TUI model for the identity holding sourceToken and destinationToken.
func NewModel(ctx context.Context, lister BoardLister, syncer Syncer, sourceToken, destinationToken string) *Model {
	return &Model{
		ctx:              ctx,
		view:             SourceListView,
		lister:           lister,
		syncer:           syncer,
		sourceToken:      sourceToken,
		destinationToken: destinationToken,
		help:             help.New(),
		keys:             newKeyMap(),
	}
}

// Init fetches boards from both providers.
func (m *Model) Init() tea.Cmd {
	return m.fetchBoards()
}

// Summary returns the result of the last completed sync, if any.
func (m *Model) Summary() *models.SyncSummary {
	return m.summary
}

// Err returns the error that ended the session, if any.
func (m *Model) Err() error {
	return m.err
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.loaded {
			m.sourceList.SetSize(msg.Width-4, msg.Height-8)
			m.destinationList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SourceListView, DestinationListView:
			return m.handleListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case TransferView:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgBoardsFetched:
		data := msg.data.(boardsFetched)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.sourceList = newBoardList("Pinterest Boards", data.listing.Source, m.width-4, m.height-8)
		m.destinationList = newBoardList("Miro Boards", data.listing.Destination, m.width-4, m.height-8)
		m.loaded = true
		return m, nil

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgSyncComplete:
		data := msg.data.(syncComplete)
		m.summary = data.summary
		m.err = data.err
		m.view = ResultView
		m.progressChan = nil
		m.done = nil
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case SourceListView:
		if !m.loaded {
			return "Loading boards..."
		}
		return m.renderList(m.sourceList)
	case DestinationListView:
		return m.renderList(m.destinationList)
	case ConfirmView:
		return m.renderConfirm()
	case TransferView:
		return m.renderTransfer()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) current() *list.Model {
	if m.view == DestinationListView {
		return &m.destinationList
	}
	return &m.sourceList
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.loaded {
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	l := m.current()
	if l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		*l, cmd = l.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case m.err != nil:
		return m, nil
	case key.Matches(msg, m.keys.back) && m.view == DestinationListView:
		m.view = SourceListView
		return m, nil
	case key.Matches(msg, m.keys.pick):
		item, ok := l.SelectedItem().(boardItem)
		if !ok {
			return m, nil
		}
		board := item.board
		if m.view == SourceListView {
			m.source = &board
			m.view = DestinationListView
		} else {
			m.destination = &board
			m.view = ConfirmView
		}
		return m, nil
	}

	var cmd tea.Cmd
	*l, cmd = l.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit), key.Matches(msg, m.keys.cancel):
		m.view = DestinationListView
		return m, nil
	case key.Matches(msg, m.keys.confirm):
		m.view = TransferView
		return m, m.startSync()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.again):
		m.view = SourceListView
		m.source = nil
		m.destination = nil
		m.summary = nil
		m.progress = tasks.ProgressUpdate{}
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if !m.loaded {
		return m, nil
	}
	switch m.view {
	case SourceListView:
		m.sourceList, cmd = m.sourceList.Update(msg)
	case DestinationListView:
		m.destinationList, cmd = m.destinationList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchBoards() tea.Cmd {
	return func() tea.Msg {
		listing, err := m.lister.ListBoards(m.ctx, m.sourceToken, m.destinationToken)
		return boardsFetchedMsg(listing, err)
	}
}

func (m *Model) startSync() tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan syncComplete, 1)
	m.progressChan = progress
	m.done = done

	req := tasks.SyncRequest{
		SourceToken:        m.sourceToken,
		DestinationToken:   m.destinationToken,
		SourceBoardID:      m.source.ID,
		DestinationBoardID: m.destination.ID,
	}

	go func() {
		summary, err := m.syncer.Sync(m.ctx, req, progress)
		done <- syncComplete{summary, err}
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.done
	return func() tea.Msg {
		if progress == nil {
			return nil
		}

		update, ok := <-progress
		if !ok {
			result := <-done
			return syncCompleteMsg(result.summary, result.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) helpView() string {
	return styles.help.Render(m.help.ShortHelpView(m.keys.forView(m.view)))
}

func (m *Model) renderList(l list.Model) string {
	return fmt.Sprintf("%s\n\n%s", l.View(), m.helpView())
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render("Copy board images to Miro?")
	info := fmt.Sprintf("\nFrom: %s (%s)\nTo:   %s (%s)\n", m.source.Name, m.source.ID, m.destination.Name, m.destination.ID)

	return fmt.Sprintf("%s\n%s\n%s", title, info, m.helpView())
}

func (m *Model) renderTransfer() string {
	title := styles.title.Render("Syncing Board")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchItems:
		phase = "Fetching Pinterest pins..."
	case tasks.TransferItems:
		phase = fmt.Sprintf("Copying items (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.Complete:
		phase = "Finishing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	helpView := m.helpView()

	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Sync failed: %v", m.err)) + "\n\n" + helpView
	}
	if m.summary == nil {
		return styles.err.Render("No result available") + "\n\n" + helpView
	}

	s := m.summary
	title := styles.ok.Render("✓ Sync Complete!")
	info := fmt.Sprintf("\nCreated: %d\nSkipped: %d\nFailed:  %d\nTotal:   %d", s.Created, s.Skipped, s.Failed, s.Total())

	var b strings.Builder
	if s.Failed > 0 {
		b.WriteString("\n\n")
		b.WriteString(styles.warn.Render(fmt.Sprintf("Failed to copy %d items:", s.Failed)))
		for _, o := range s.Outcomes {
			if o.Status == models.OutcomeFailed {
				fmt.Fprintf(&b, "\n  • %s", styles.Outcome(o.Status, fmt.Sprintf("%s (%s): %s", o.Title, o.ItemID, o.Reason)))
			}
		}
	}

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, b.String(), helpView)
}
