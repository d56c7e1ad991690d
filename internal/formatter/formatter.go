// package formatter renders sync summaries and board listings as CSV, Markdown or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/shared"
)

// Format names an output format accepted by [Render].
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts text, csv, markdown or md.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text", "txt":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
	}
}

// Render converts summary using format.
func Render(summary *models.SyncSummary, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return SummaryToCSV(summary)
	case FormatMarkdown:
		return SummaryToMarkdown(summary)
	default:
		return SummaryToText(summary)
	}
}

// SummaryToCSV converts a SyncSummary to CSV with columns: Item, Title, Status, Image URL, Destination Item, Reason
func SummaryToCSV(summary *models.SyncSummary) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Item", "Title", "Status", "Image URL", "Destination Item", "Reason"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, o := range summary.Outcomes {
		record := []string{o.ItemID, o.Title, o.Status.String(), o.ImageURL, o.DestinationItemID, o.Reason}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// SummaryToMarkdown converts a SyncSummary to a Markdown report with a results table
func SummaryToMarkdown(summary *models.SyncSummary) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Sync %s → %s\n\n", summary.SourceBoardID, summary.DestinationBoardID)
	fmt.Fprintf(&buf, "**Created**: %d\n", summary.Created)
	fmt.Fprintf(&buf, "**Skipped**: %d\n", summary.Skipped)
	fmt.Fprintf(&buf, "**Failed**: %d\n", summary.Failed)
	if !summary.StartedAt.IsZero() && !summary.FinishedAt.IsZero() {
		fmt.Fprintf(&buf, "**Duration**: %s\n", summary.FinishedAt.Sub(summary.StartedAt).Round(1e6))
	}

	buf.WriteString("\n## Items\n\n")
	buf.WriteString("| # | Item | Title | Status | Detail |\n")
	buf.WriteString("|---|------|-------|--------|--------|\n")
	for i, o := range summary.Outcomes {
		detail := o.Reason
		if o.Status == models.OutcomeCreated {
			detail = o.DestinationItemID
		}
		fmt.Fprintf(&buf, "| %d | %s | %s | %s | %s |\n", i+1, mdCell(o.ItemID), mdCell(o.Title), o.Status, mdCell(detail))
	}

	return buf.Bytes(), nil
}

func mdCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}

// SummaryToText converts a SyncSummary to plain text
func SummaryToText(summary *models.SyncSummary) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Source board: %s\n", summary.SourceBoardID)
	fmt.Fprintf(&buf, "Destination board: %s\n", summary.DestinationBoardID)
	fmt.Fprintf(&buf, "Created %d, skipped %d, failed %d of %d\n\n", summary.Created, summary.Skipped, summary.Failed, summary.Total())

	for i, o := range summary.Outcomes {
		switch o.Status {
		case models.OutcomeCreated:
			fmt.Fprintf(&buf, "%d. ✓ %s (%s → %s)\n", i+1, o.Title, o.ItemID, o.DestinationItemID)
		case models.OutcomeSkippedNoImage:
			fmt.Fprintf(&buf, "%d. - %s (%s) skipped: %s\n", i+1, o.Title, o.ItemID, o.Reason)
		default:
			fmt.Fprintf(&buf, "%d. ✗ %s (%s) failed: %s\n", i+1, o.Title, o.ItemID, o.Reason)
		}
	}

	return buf.Bytes(), nil
}

// BoardsToText lists both sides of a BoardListing as plain text
func BoardsToText(listing *models.BoardListing) []byte {
	var buf bytes.Buffer

	section := func(title string, boards []models.Board) {
		fmt.Fprintf(&buf, "%s (%d)\n", title, len(boards))
		for i, b := range boards {
			fmt.Fprintf(&buf, "  %d. %s [%s]\n", i+1, b.Name, b.ID)
		}
	}

	section("Pinterest boards", listing.Source)
	buf.WriteString("\n")
	section("Miro boards", listing.Destination)

	return buf.Bytes()
}

// Fprint renders summary in format to w.
func Fprint(w io.Writer, summary *models.SyncSummary, format Format) error {
	data, err := Render(summary, format)
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// WriteSummary renders summary in format and writes it to path.
func WriteSummary(summary *models.SyncSummary, format Format, path string) error {
	if path == "" {
		return fmt.Errorf("%w: output path", shared.ErrMissingArgument)
	}

	data, err := Render(summary, format)
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}
