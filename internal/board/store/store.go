package store

import (
	"context"
	"errors"

	"github.com/hollyburn/noteboard/internal/board/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Notes() Notes
	Reactions() Reactions
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step mutations that must be atomic
	// (e.g. the reaction toggle or an admin role change).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
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

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// FindByUsernameOrEmail is the registration pre-flight lookup: it
	// returns whichever existing user already holds the username OR the
	// email, or ErrNotFound when both are free.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (domain.User, error)

	// UsernameTakenByOther reports whether a user other than excludeID
	// already holds the username.
	UsernameTakenByOther(ctx context.Context, username, excludeID string) (bool, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUsername mutates only the username.
	UpdateUsername(ctx context.Context, userID, username string) error

	// UpdatePasswordHash sets the password_hash (argon2).
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// UpdateRole sets the role tier.
	UpdateRole(ctx context.Context, userID string, role domain.Role) error

	// DeleteUser removes the row; notes, reactions and sessions cascade
	// per schema.
	DeleteUser(ctx context.Context, userID string) error

	// ListUsers returns all users, newest first.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type Notes interface {
	// GetNoteByID returns a note by id (no author join).
	GetNoteByID(ctx context.Context, id string) (domain.Note, error)

	// CreateNote inserts a note (top-level or reply; the service decides).
	CreateNote(ctx context.Context, n domain.Note) error

	// ListTopLevel returns notes without a parent, newest first, with
	// AuthorUsername populated. A non-positive limit returns all.
	ListTopLevel(ctx context.Context, limit int) ([]domain.Note, error)

	// ListReplies returns the direct children of parentID, oldest first,
	// with AuthorUsername populated.
	ListReplies(ctx context.Context, parentID string) ([]domain.Note, error)
}

type Reactions interface {
	// GetReaction returns the reaction for the exact triple.
	GetReaction(ctx context.Context, noteID, userID, emoji string) (domain.Reaction, error)

	// CreateReaction inserts a reaction; a duplicate triple yields
	// ErrAlreadyExists.
	CreateReaction(ctx context.Context, r domain.Reaction) error

	// DeleteReaction removes the reaction for the exact triple.
	DeleteReaction(ctx context.Context, noteID, userID, emoji string) error

	// CountByEmoji aggregates a note's reactions, highest count first,
	// ties broken by insertion order.
	CountByEmoji(ctx context.Context, noteID string) ([]domain.ReactionCount, error)

	// ListUserEmojis returns the distinct emoji the user applied to the note.
	ListUserEmojis(ctx context.Context, noteID, userID string) ([]string, error)
}

type Sessions interface {
	// CreateSession stores a new login session row.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByID returns the session row, revoked or not.
	GetSessionByID(ctx context.Context, id string) (domain.Session, error)

	// RevokeSession flips revoked=1.
	RevokeSession(ctx context.Context, id string) error

	// DeleteExpiredSessions is housekeeping, run opportunistically at login.
	DeleteExpiredSessions(ctx context.Context) error
}
