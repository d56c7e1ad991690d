package tasks

import (
	"fmt"

	"github.com/desertthunder/boardsync/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchItems Phase = iota
	TransferItems
	Complete
)

func (p Phase) String() string {
	switch p {
	case FetchItems:
		return "fetch_items"
	case TransferItems:
		return "transfer_items"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func fetchItemsUpdate(boardID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchItems,
		Step:    0,
		Total:   1,
		Message: fmt.Sprintf("Fetching pins from board %s...", boardID),
	}
}

func foundItemsUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchItems,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d pins", total),
	}
}

func transferUpdate(step, total int, o models.Outcome) ProgressUpdate {
	var mark string
	switch o.Status {
	case models.OutcomeCreated:
		mark = "✓"
	case models.OutcomeSkippedNoImage:
		mark = "-"
	default:
		mark = "✗"
	}

	msg := fmt.Sprintf("[%d/%d] %s %s", step, total, mark, o.Title)
	if o.Reason != "" {
		msg += ": " + o.Reason
	}

	return ProgressUpdate{
		Phase:   TransferItems,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    o,
	}
}

func completeUpdate(s *models.SyncSummary) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    s.Total(),
		Total:   s.Total(),
		Message: fmt.Sprintf("Created %d, skipped %d, failed %d", s.Created, s.Skipped, s.Failed),
		Data:    s,
	}
}
