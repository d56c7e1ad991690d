package formatter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/shared"
	th "github.com/desertthunder/boardsync/internal/testing"
)

func testSummary() *models.SyncSummary {
	s := &models.SyncSummary{SourceBoardID: "pin-board", DestinationBoardID: "miro-board"}
	s.Add(models.Outcome{ItemID: "a", Title: "Tile | Floor", Status: models.OutcomeCreated, ImageURL: "https://i/a.jpg", DestinationItemID: "m1"})
	s.Add(models.Outcome{ItemID: "b", Title: "Untitled", Status: models.OutcomeSkippedNoImage, Reason: "no usable image"})
	s.Add(models.Outcome{ItemID: "c", Title: "Stairs", Status: models.OutcomeFailed, ImageURL: "https://i/c.jpg", Reason: "malformed_request: HTTP 400"})
	return s
}

func TestExporters(t *testing.T) {
	t.Run("SummaryToCSV", func(t *testing.T) {
		data, err := SummaryToCSV(testSummary())
		if err != nil {
			t.Fatalf("SummaryToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(records) != 4 {
			t.Fatalf("expected header and 3 rows, got %d", len(records))
		}
		if strings.Join(records[0], ",") != "Item,Title,Status,Image URL,Destination Item,Reason" {
			t.Errorf("unexpected headers %v", records[0])
		}
		if records[1][2] != "created" || records[2][2] != "skipped_no_image" || records[3][2] != "failed" {
			t.Errorf("unexpected statuses %v", records)
		}
		if records[1][4] != "m1" {
			t.Errorf("expected destination item m1, got %s", records[1][4])
		}
	})

	t.Run("SummaryToMarkdown", func(t *testing.T) {
		data, err := SummaryToMarkdown(testSummary())
		if err != nil {
			t.Fatalf("SummaryToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "# Sync pin-board → miro-board") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "**Created**: 1") {
			t.Errorf("Markdown missing counts")
		}
		if !strings.Contains(output, `Tile \| Floor`) {
			t.Errorf("Markdown should escape pipes in cells")
		}
		if !strings.Contains(output, "| 3 | c | Stairs | failed | malformed_request: HTTP 400 |") {
			t.Errorf("Markdown missing failed row, got: %s", output)
		}
	})

	t.Run("SummaryToText", func(t *testing.T) {
		data, err := SummaryToText(testSummary())
		if err != nil {
			t.Fatalf("SummaryToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Created 1, skipped 1, failed 1 of 3") {
			t.Errorf("text missing totals, got: %s", output)
		}
		if !strings.Contains(output, "2. - Untitled (b) skipped: no usable image") {
			t.Errorf("text missing skipped line, got: %s", output)
		}
	})

	t.Run("BoardsToText", func(t *testing.T) {
		output := string(BoardsToText(&models.BoardListing{
			Source:      []models.Board{{ID: "p1", Name: "Kitchens"}},
			Destination: []models.Board{{ID: "m1", Name: "Moodboard"}, {ID: "m2", Name: "Plans"}},
		}))

		if !strings.Contains(output, "Pinterest boards (1)") || !strings.Contains(output, "Miro boards (2)") {
			t.Errorf("unexpected listing: %s", output)
		}
		if !strings.Contains(output, "2. Plans [m2]") {
			t.Errorf("missing board line: %s", output)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tt := []struct {
		in   string
		want Format
	}{
		{"", FormatText},
		{"CSV", FormatCSV},
		{"md", FormatMarkdown},
		{"markdown", FormatMarkdown},
	}
	for _, tc := range tt {
		got, err := ParseFormat(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestWriteSummary(t *testing.T) {
	t.Run("writes file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "summary.csv")
		if err := WriteSummary(testSummary(), FormatCSV, path); err != nil {
			t.Fatalf("WriteSummary failed: %v", err)
		}

		th.AssertFileExists(t, path)
		if !strings.HasPrefix(th.MustReadFile(t, path), "Item,Title") {
			t.Error("expected CSV content")
		}
	})

	t.Run("missing path", func(t *testing.T) {
		if err := WriteSummary(testSummary(), FormatText, ""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("unwritable path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "summary.txt")
		if err := WriteSummary(testSummary(), FormatText, path); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}

func TestFprint(t *testing.T) {
	t.Run("writes rendered output", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Fprint(&buf, testSummary(), FormatMarkdown); err != nil {
			t.Fatalf("Fprint failed: %v", err)
		}
		if !strings.HasPrefix(buf.String(), "# Sync") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})

	t.Run("write failure", func(t *testing.T) {
		if err := Fprint(&th.FWriter{}, testSummary(), FormatText); err == nil {
			t.Error("expected write error")
		}
	})

	t.Run("limited writer", func(t *testing.T) {
		var buf bytes.Buffer
		w := th.NewLimitedWriter(0, 0, &buf)
		if err := Fprint(&w, testSummary(), FormatCSV); err == nil {
			t.Error("expected write limit error")
		}
		if buf.Len() != 0 {
			t.Errorf("expected nothing written, got %q", buf.String())
		}
	})
}
