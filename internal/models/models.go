// package models defines the data model for the board sync service
package models

import (
	"context"
	"fmt"
	"time"
)

// TokenSlot selects which credential field of an [Identity] an operation targets.
type TokenSlot int

const (
	SourceSlot TokenSlot = iota
	DestinationSlot
)

func (s TokenSlot) String() string {
	switch s {
	case SourceSlot:
		return "source"
	case DestinationSlot:
		return "destination"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Other returns the opposite slot.
func (s TokenSlot) Other() TokenSlot {
	if s == SourceSlot {
		return DestinationSlot
	}
	return SourceSlot
}

// Valid reports whether s names a known slot.
func (s TokenSlot) Valid() bool {
	return s == SourceSlot || s == DestinationSlot
}

// Identity links one logical user to up to two provider tokens.
type Identity struct {
	ID               string
	SourceToken      string
	DestinationToken string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Token returns the credential held in slot, or "" when unset.
func (i *Identity) Token(slot TokenSlot) string {
	if slot == SourceSlot {
		return i.SourceToken
	}
	return i.DestinationToken
}

// SetToken stores token in slot. Empty tokens are ignored so a present credential is never cleared.
func (i *Identity) SetToken(slot TokenSlot, token string) {
	if token == "" {
		return
	}
	if slot == SourceSlot {
		i.SourceToken = token
	} else {
		i.DestinationToken = token
	}
}

// Linked reports whether both provider tokens are present.
func (i *Identity) Linked() bool {
	return i.SourceToken != "" && i.DestinationToken != ""
}

// Validate checks that the identity has an id and at least one token.
func (i *Identity) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("identity id is required")
	}
	if i.SourceToken == "" && i.DestinationToken == "" {
		return fmt.Errorf("identity %s has no tokens", i.ID)
	}
	return nil
}

// IdentityStore persists [Identity] records.
//
// Lookups that match nothing return an error wrapping shared.ErrIdentityNotFound.
type IdentityStore interface {
	FindByID(ctx context.Context, id string) (*Identity, error)                       // FindByID loads the identity with the internal id
	FindByToken(ctx context.Context, slot TokenSlot, token string) (*Identity, error) // FindByToken loads the identity whose slot holds token
	Insert(ctx context.Context, identity *Identity) error                             // Insert creates a new identity, assigning its id
	UpdateToken(ctx context.Context, id string, slot TokenSlot, token string) error   // UpdateToken replaces a single token field
}

// Board is a normalized collection reference from either provider.
type Board struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// BoardListing holds the boards of both providers for one identity.
type BoardListing struct {
	Source      []Board `json:"source"`
	Destination []Board `json:"destination"`
}

// ImageCandidate is one rendition of a source item's image.
type ImageCandidate struct {
	Variant string `json:"variant"`
	URL     string `json:"url"`
}

// SourceItem is a transferable unit fetched from the source board.
type SourceItem struct {
	ExternalID string           `json:"external_id"`
	Title      string           `json:"title,omitempty"`
	Images     []ImageCandidate `json:"images"`
}

// OutcomeStatus classifies the result of transferring one item.
type OutcomeStatus int

const (
	OutcomeCreated OutcomeStatus = iota
	OutcomeSkippedNoImage
	OutcomeFailed
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeCreated:
		return "created"
	case OutcomeSkippedNoImage:
		return "skipped_no_image"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s OutcomeStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome is the per-item result of a sync run.
type Outcome struct {
	ItemID            string        `json:"item_id"`
	Title             string        `json:"title,omitempty"`
	Status            OutcomeStatus `json:"status"`
	ImageURL          string        `json:"image_url,omitempty"`
	DestinationItemID string        `json:"destination_item_id,omitempty"`
	Reason            string        `json:"reason,omitempty"`
	Err               error         `json:"-"`
}

// SyncSummary aggregates the ordered outcomes of one sync run.
type SyncSummary struct {
	SourceBoardID      string    `json:"source_board_id"`
	DestinationBoardID string    `json:"destination_board_id"`
	Outcomes           []Outcome `json:"outcomes"`
	Created            int       `json:"created"`
	Skipped            int       `json:"skipped"`
	Failed             int       `json:"failed"`
	StartedAt          time.Time `json:"started_at"`
	FinishedAt         time.Time `json:"finished_at"`
}

// Add appends an outcome and updates the aggregate counts.
func (s *SyncSummary) Add(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch o.Status {
	case OutcomeCreated:
		s.Created++
	case OutcomeSkippedNoImage:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}

// Total returns the number of processed items.
func (s *SyncSummary) Total() int {
	return len(s.Outcomes)
}
