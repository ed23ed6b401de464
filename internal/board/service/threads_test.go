package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hollyburn/noteboard/internal/board/domain"
)

func TestCreateTopLevel(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ThreadService{Store: st}
	alice := seedUser(t, st, "alice", domain.RoleNone)

	t.Run("accepts one rune", func(t *testing.T) {
		_, err := svc.CreateTopLevel(ctx, alice.ID, "x")
		require.NoError(t, err)
	})

	t.Run("accepts exactly the max length", func(t *testing.T) {
		_, err := svc.CreateTopLevel(ctx, alice.ID, strings.Repeat("a", 500))
		require.NoError(t, err)
	})

	t.Run("length is counted in runes not bytes", func(t *testing.T) {
		_, err := svc.CreateTopLevel(ctx, alice.ID, strings.Repeat("é", 500))
		require.NoError(t, err)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := svc.CreateTopLevel(ctx, alice.ID, "")
		require.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("rejects content over the max", func(t *testing.T) {
		_, err := svc.CreateTopLevel(ctx, alice.ID, strings.Repeat("a", 501))
		require.ErrorIs(t, err, ErrValidationFailed)
	})
}

func TestCreateReply(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ThreadService{Store: st}
	alice := seedUser(t, st, "alice", domain.RoleNone)

	parent, err := svc.CreateTopLevel(ctx, alice.ID, "parent")
	require.NoError(t, err)

	t.Run("attaches reply to parent", func(t *testing.T) {
		reply, err := svc.CreateReply(ctx, alice.ID, parent.ID, "hi")
		require.NoError(t, err)
		require.NotNil(t, reply.ParentID)
		require.Equal(t, parent.ID, *reply.ParentID)
	})

	t.Run("missing parent inserts nothing", func(t *testing.T) {
		_, err := svc.CreateReply(ctx, alice.ID, "no-such-note", "hi")
		require.ErrorIs(t, err, ErrParentNotFound)

		replies, err := st.Notes().ListReplies(ctx, "no-such-note")
		require.NoError(t, err)
		require.Empty(t, replies)
	})
}

func TestListOrdering(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ThreadService{Store: st}
	alice := seedUser(t, st, "alice", domain.RoleNone)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	n1 := seedNote(t, st, alice.ID, nil, "first", base)
	n2 := seedNote(t, st, alice.ID, nil, "second", base.Add(time.Minute))
	n3 := seedNote(t, st, alice.ID, nil, "third", base.Add(2*time.Minute))

	// Replies arrive out of timestamp order: r1 is newer than r2.
	r1 := seedNote(t, st, alice.ID, &n1.ID, "late reply", base.Add(10*time.Second))
	r2 := seedNote(t, st, alice.ID, &n1.ID, "early reply", base.Add(5*time.Second))

	t.Run("top level is newest first", func(t *testing.T) {
		notes, err := svc.ListTopLevel(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 3)
		require.Equal(t, []string{n3.ID, n2.ID, n1.ID},
			[]string{notes[0].ID, notes[1].ID, notes[2].ID})
		require.Equal(t, "alice", notes[0].AuthorUsername)
	})

	t.Run("replies are oldest first by timestamp", func(t *testing.T) {
		replies, err := svc.ListReplies(ctx, n1.ID)
		require.NoError(t, err)
		require.Len(t, replies, 2)
		require.Equal(t, r2.ID, replies[0].ID)
		require.Equal(t, r1.ID, replies[1].ID)
	})

	t.Run("replies are excluded from the top level list", func(t *testing.T) {
		notes, err := svc.ListTopLevel(ctx)
		require.NoError(t, err)
		for _, n := range notes {
			require.Nil(t, n.ParentID)
		}
	})

	t.Run("preview caps the list", func(t *testing.T) {
		notes, err := svc.Preview(ctx, 2)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		require.Equal(t, n3.ID, notes[0].ID)
	})

	t.Run("replies of a missing note", func(t *testing.T) {
		_, err := svc.ListReplies(ctx, "no-such-note")
		require.ErrorIs(t, err, ErrNoteNotFound)
	})
}
