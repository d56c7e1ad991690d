package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/shared"
)

var _ models.IdentityStore = (*IdentityRepository)(nil)

// IdentityRepository implements [models.IdentityStore] for [models.Identity] persistence.
type IdentityRepository struct {
	db     *sql.DB
	driver string
}

// NewIdentityRepository creates a new [IdentityRepository] with the given database connection.
//
// driver is the name the connection was opened with and selects the placeholder style.
func NewIdentityRepository(db *sql.DB, driver string) *IdentityRepository {
	if driver == "" {
		driver = shared.DriverSQLite
	}
	return &IdentityRepository{db: db, driver: driver}
}

func (r *IdentityRepository) query(q string) string {
	return Rebind(r.driver, q)
}

// tokenColumn maps a slot to its column name. Only these two literals ever reach SQL text.
func tokenColumn(slot models.TokenSlot) (string, error) {
	switch slot {
	case models.SourceSlot:
		return "source_token", nil
	case models.DestinationSlot:
		return "destination_token", nil
	default:
		return "", fmt.Errorf("%w: unknown token slot %v", shared.ErrInvalidArgument, slot)
	}
}

// Insert stores a new identity with a generated ID.
func (r *IdentityRepository) Insert(ctx context.Context, identity *models.Identity) error {
	now := time.Now().UTC()
	identity.ID = shared.GenerateID()
	identity.CreatedAt = now
	identity.UpdatedAt = now

	if err := identity.Validate(); err != nil {
		return fmt.Errorf("%w: validation failed: %v", shared.ErrInvalidArgument, err)
	}

	q := r.query(`
		INSERT INTO identities (id, source_token, destination_token, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, q, identity.ID, nullable(identity.SourceToken), nullable(identity.DestinationToken), now, now)
	if err != nil {
		return fmt.Errorf("%w: failed to insert identity: %v", shared.ErrStoreUnavailable, err)
	}

	return nil
}

// FindByID retrieves an identity by its internal ID.
func (r *IdentityRepository) FindByID(ctx context.Context, id string) (*models.Identity, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", shared.ErrIdentityNotFound)
	}

	q := r.query(`
		SELECT id, source_token, destination_token, created_at, updated_at
		FROM identities
		WHERE id = ?
	`)

	identity, err := scanIdentity(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrIdentityNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query identity: %v", shared.ErrStoreUnavailable, err)
	}

	return identity, nil
}

// FindByToken retrieves the identity whose slot column equals token.
//
// When several rows share the token the most recently updated one wins.
func (r *IdentityRepository) FindByToken(ctx context.Context, slot models.TokenSlot, token string) (*models.Identity, error) {
	column, err := tokenColumn(slot)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, fmt.Errorf("%w: empty %s token", shared.ErrIdentityNotFound, slot)
	}

	q := r.query(fmt.Sprintf(`
		SELECT id, source_token, destination_token, created_at, updated_at
		FROM identities
		WHERE %s = ?
		ORDER BY updated_at DESC
		LIMIT 1
	`, column))

	identity, err := scanIdentity(r.db.QueryRowContext(ctx, q, token))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no identity holds that %s token", shared.ErrIdentityNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query identity: %v", shared.ErrStoreUnavailable, err)
	}

	return identity, nil
}

// UpdateToken replaces a single token column on one identity.
//
// Empty tokens are rejected so a present credential is never overwritten with nothing.
func (r *IdentityRepository) UpdateToken(ctx context.Context, id string, slot models.TokenSlot, token string) error {
	column, err := tokenColumn(slot)
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("%w: refusing to clear %s token", shared.ErrInvalidArgument, slot)
	}

	q := r.query(fmt.Sprintf(`
		UPDATE identities
		SET %s = ?, updated_at = ?
		WHERE id = ?
	`, column))

	result, err := r.db.ExecContext(ctx, q, token, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%w: failed to update identity: %v", shared.ErrStoreUnavailable, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get affected rows: %v", shared.ErrStoreUnavailable, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrIdentityNotFound, id)
	}

	return nil
}

// Delete removes an identity and both of its tokens.
func (r *IdentityRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, r.query(`DELETE FROM identities WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete identity: %v", shared.ErrStoreUnavailable, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get affected rows: %v", shared.ErrStoreUnavailable, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrIdentityNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdentity(row rowScanner) (*models.Identity, error) {
	var (
		identity         models.Identity
		sourceToken      sql.NullString
		destinationToken sql.NullString
	)

	if err := row.Scan(&identity.ID, &sourceToken, &destinationToken, &identity.CreatedAt, &identity.UpdatedAt); err != nil {
		return nil, err
	}

	identity.SourceToken = sourceToken.String
	identity.DestinationToken = destinationToken.String
	return &identity, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
