package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hollyburn/noteboard/internal/board/domain"
	"github.com/hollyburn/noteboard/internal/board/store"
	"github.com/hollyburn/noteboard/pkg/idx"
)

const (
	minEmojiLen = 1
	maxEmojiLen = 10
)

// ToggleResult reports which way a reaction toggle went.
type ToggleResult int

const (
	ReactionAdded ToggleResult = iota
	ReactionRemoved
)

func (t ToggleResult) String() string {
	if t == ReactionRemoved {
		return "removed"
	}
	return "added"
}

// ReactionService owns emoji reactions on notes.
type ReactionService struct {
	Store store.Store
}

// Toggle adds the reaction when absent and removes it when present. The
// check and the write run in one store transaction, so concurrent toggles
// of the same (note, user, emoji) triple serialize instead of racing. If
// the unique constraint still fires (another process won between commits),
// the reaction is reported as added rather than erroring: the user's intent
// "I reacted" holds either way.
func (s *ReactionService) Toggle(ctx context.Context, noteID, userID, emoji string) (ToggleResult, error) {
	emoji = strings.TrimSpace(emoji)
	if l := utf8.RuneCountInString(emoji); l < minEmojiLen || l > maxEmojiLen {
		return 0, ErrValidationFailed
	}

	var result ToggleResult
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Notes().GetNoteByID(ctx, noteID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNoteNotFound
			}
			return err
		}

		_, err := tx.Reactions().GetReaction(ctx, noteID, userID, emoji)
		switch {
		case err == nil:
			result = ReactionRemoved
			return tx.Reactions().DeleteReaction(ctx, noteID, userID, emoji)
		case errors.Is(err, store.ErrNotFound):
			result = ReactionAdded
			err := tx.Reactions().CreateReaction(ctx, domain.Reaction{
				ID:        idx.New().String(),
				NoteID:    noteID,
				UserID:    userID,
				Emoji:     emoji,
				CreatedAt: time.Now().UTC(),
			})
			if errors.Is(err, store.ErrAlreadyExists) {
				return nil
			}
			return err
		default:
			return err
		}
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}

// Aggregate returns the note's reaction counts, highest first, ties broken
// by insertion order.
func (s *ReactionService) Aggregate(ctx context.Context, noteID string) ([]domain.ReactionCount, error) {
	return s.Store.Reactions().CountByEmoji(ctx, noteID)
}

// ReactedBy returns the set of emoji the user has applied to the note.
func (s *ReactionService) ReactedBy(ctx context.Context, noteID, userID string) ([]string, error) {
	return s.Store.Reactions().ListUserEmojis(ctx, noteID, userID)
}
