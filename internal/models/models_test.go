package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIdentity(t *testing.T) {
	t.Run("SetToken ignores empty values", func(t *testing.T) {
		identity := &Identity{ID: "id-1", SourceToken: "pin-token"}
		identity.SetToken(SourceSlot, "")

		if identity.SourceToken != "pin-token" {
			t.Errorf("expected source token to be kept, got %q", identity.SourceToken)
		}
	})

	t.Run("Linked", func(t *testing.T) {
		identity := &Identity{ID: "id-1"}
		identity.SetToken(SourceSlot, "pin-token")
		if identity.Linked() {
			t.Error("identity with one token should not be linked")
		}

		identity.SetToken(DestinationSlot, "miro-token")
		if !identity.Linked() {
			t.Error("identity with both tokens should be linked")
		}
		if identity.Token(DestinationSlot) != "miro-token" {
			t.Errorf("unexpected destination token %q", identity.Token(DestinationSlot))
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := (&Identity{SourceToken: "x"}).Validate(); err == nil {
			t.Error("expected error for missing id")
		}
		if err := (&Identity{ID: "id"}).Validate(); err == nil {
			t.Error("expected error for identity without tokens")
		}
		if err := (&Identity{ID: "id", DestinationToken: "x"}).Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestTokenSlot(t *testing.T) {
	if SourceSlot.Other() != DestinationSlot || DestinationSlot.Other() != SourceSlot {
		t.Error("Other() should swap slots")
	}
	if TokenSlot(7).Valid() {
		t.Error("unknown slot should not be valid")
	}
	if SourceSlot.String() != "source" || DestinationSlot.String() != "destination" {
		t.Error("unexpected slot names")
	}
}

func TestSyncSummary(t *testing.T) {
	summary := &SyncSummary{}
	summary.Add(Outcome{ItemID: "a", Status: OutcomeCreated, DestinationItemID: "m-1"})
	summary.Add(Outcome{ItemID: "b", Status: OutcomeSkippedNoImage})
	summary.Add(Outcome{ItemID: "c", Status: OutcomeFailed, Reason: "malformed request"})

	if summary.Created != 1 || summary.Skipped != 1 || summary.Failed != 1 {
		t.Errorf("unexpected counts: %+v", summary)
	}
	if summary.Total() != 3 {
		t.Errorf("expected 3 outcomes, got %d", summary.Total())
	}

	data, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("failed to marshal summary: %v", err)
	}
	if !strings.Contains(string(data), `"status":"skipped_no_image"`) {
		t.Errorf("expected status to be encoded by name, got %s", data)
	}
}
