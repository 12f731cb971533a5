package store

import (
	"context"
	"errors"

	"github.com/kotoed/denizen/internal/denizen/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Sub-repositories are reached
// through methods so a Tx-scoped store hands out Tx-scoped repositories.
type Store interface {
	Denizens() Denizens
	Profiles() Profiles
	OAuthProfiles() OAuthProfiles

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Denizens interface {
	GetDenizenByID(ctx context.Context, id string) (domain.Denizen, error)

	GetDenizenByUsername(ctx context.Context, username string) (domain.Denizen, error)

	// CreateDenizen inserts a new denizen (id is provided by the caller via ULID).
	// Returns ErrAlreadyExists when the username is taken.
	CreateDenizen(ctx context.Context, d domain.Denizen) error

	// UpdateEmail sets or clears the email and bumps updated_at.
	UpdateEmail(ctx context.Context, id string, email *string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, id string, newHash string) error
}

type Profiles interface {
	// GetProfileByDenizenID returns ErrNotFound when the denizen has no profile row yet.
	GetProfileByDenizenID(ctx context.Context, denizenID string) (domain.Profile, error)

	// UpsertProfile writes every field of p, creating the row on first use.
	UpsertProfile(ctx context.Context, p domain.Profile) error
}

type OAuthProfiles interface {
	CreateProvider(ctx context.Context, p domain.OAuthProvider) error

	GetProviderByName(ctx context.Context, name string) (domain.OAuthProvider, error)

	// LinkProfile records the denizen's id at a provider.
	LinkProfile(ctx context.Context, p domain.OAuthProfile) error

	// ListLinksByDenizen returns the (provider name, user id) pairs ordered by provider name.
	ListLinksByDenizen(ctx context.Context, denizenID string) ([]domain.OAuthLink, error)
}
