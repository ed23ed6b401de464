package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hollyburn/noteboard/internal/board/domain"
	"github.com/hollyburn/noteboard/internal/board/store"
	"github.com/hollyburn/noteboard/internal/board/store/drivers/sqlite"
	"github.com/hollyburn/noteboard/pkg/cryptox"
	"github.com/hollyburn/noteboard/pkg/idx"
)

// newTestStore opens a fresh database under the test's temp dir. A file
// database rather than :memory: because the sql pool may hand the same
// logical database to multiple connections.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "board.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st store.Store, username string, role domain.Role) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword("password123")
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func seedNote(t *testing.T, st store.Store, authorID string, parentID *string, content string, at time.Time) domain.Note {
	t.Helper()

	n := domain.Note{
		ID:        idx.NewAt(at).String(),
		AuthorID:  authorID,
		ParentID:  parentID,
		Content:   content,
		CreatedAt: at,
	}
	require.NoError(t, st.Notes().CreateNote(context.Background(), n))
	return n
}
