package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/shared"
)

// Match reports which rule placed an incoming token.
type Match int

const (
	MatchCurrent Match = iota
	MatchFallback
	MatchNew
)

func (m Match) String() string {
	switch m {
	case MatchCurrent:
		return "current"
	case MatchFallback:
		return "fallback"
	case MatchNew:
		return "new"
	default:
		return "unknown"
	}
}

// Reconciler merges freshly issued provider tokens into identity records. It is the
// only writer of the identity store.
type Reconciler struct {
	store  models.IdentityStore
	logger *log.Logger
}

func NewReconciler(store models.IdentityStore, logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reconciler{store: store, logger: logger}
}

// Reconcile stores incomingToken in slot of the right identity. First match wins:
//
//  1. currentID resolves to a record: update that record.
//  2. fallbackToken is held in the opposite slot of a record: update that record.
//  3. otherwise insert a new record holding only slot.
//
// Store failures are returned wrapping [shared.ErrStoreUnavailable].
func (r *Reconciler) Reconcile(ctx context.Context, currentID, incomingToken string, slot models.TokenSlot, fallbackToken string) (*models.Identity, Match, error) {
	if incomingToken == "" {
		return nil, MatchNew, fmt.Errorf("%w: incoming %s token", shared.ErrMissingArgument, slot)
	}
	if !slot.Valid() {
		return nil, MatchNew, fmt.Errorf("%w: token slot %v", shared.ErrInvalidArgument, slot)
	}

	if currentID != "" {
		identity, err := r.store.FindByID(ctx, currentID)
		switch {
		case err == nil:
			return r.update(ctx, identity, slot, incomingToken, MatchCurrent)
		case !errors.Is(err, shared.ErrIdentityNotFound):
			return nil, MatchCurrent, storeError(err)
		}
		r.logger.Debug("current identity not found", "identity", currentID)
	}

	if fallbackToken != "" {
		identity, err := r.store.FindByToken(ctx, slot.Other(), fallbackToken)
		switch {
		case err == nil:
			return r.update(ctx, identity, slot, incomingToken, MatchFallback)
		case !errors.Is(err, shared.ErrIdentityNotFound):
			return nil, MatchFallback, storeError(err)
		}
	}

	identity := &models.Identity{}
	identity.SetToken(slot, incomingToken)
	if err := r.store.Insert(ctx, identity); err != nil {
		return nil, MatchNew, storeError(err)
	}

	r.logger.Info("created identity", "identity", identity.ID, "slot", slot)
	return identity, MatchNew, nil
}

func (r *Reconciler) update(ctx context.Context, identity *models.Identity, slot models.TokenSlot, token string, m Match) (*models.Identity, Match, error) {
	if err := r.store.UpdateToken(ctx, identity.ID, slot, token); err != nil {
		return nil, m, storeError(err)
	}
	identity.SetToken(slot, token)

	r.logger.Info("linked token", "identity", identity.ID, "slot", slot, "match", m, "linked", identity.Linked())
	return identity, m, nil
}

func storeError(err error) error {
	if errors.Is(err, shared.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", shared.ErrStoreUnavailable, err)
}
