package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/hollyburn/noteboard/internal/board/domain"
	"github.com/hollyburn/noteboard/internal/board/store"
	"github.com/hollyburn/noteboard/pkg/idx"
)

const (
	minContentLen = 1
	maxContentLen = 500
)

// ThreadService owns the notes board: top-level notes newest first, flat
// replies oldest first.
type ThreadService struct {
	Store store.Store
}

// ListTopLevel returns every top-level note, newest first.
func (s *ThreadService) ListTopLevel(ctx context.Context) ([]domain.Note, error) {
	return s.Store.Notes().ListTopLevel(ctx, 0)
}

// Preview returns the newest top-level notes for the home page.
func (s *ThreadService) Preview(ctx context.Context, limit int) ([]domain.Note, error) {
	return s.Store.Notes().ListTopLevel(ctx, limit)
}

// ListReplies returns the direct children of noteID, oldest first.
func (s *ThreadService) ListReplies(ctx context.Context, noteID string) ([]domain.Note, error) {
	if _, err := s.Store.Notes().GetNoteByID(ctx, noteID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return s.Store.Notes().ListReplies(ctx, noteID)
}

// CreateTopLevel posts a new top-level note.
func (s *ThreadService) CreateTopLevel(ctx context.Context, authorID, content string) (domain.Note, error) {
	if !validContent(content) {
		return domain.Note{}, ErrValidationFailed
	}

	n := domain.Note{
		ID:        idx.New().String(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Notes().CreateNote(ctx, n); err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

// CreateReply posts a reply under parentID. The parent's existence is
// checked explicitly before the insert; the schema's foreign key is treated
// as advisory only.
func (s *ThreadService) CreateReply(ctx context.Context, authorID, parentID, content string) (domain.Note, error) {
	if !validContent(content) {
		return domain.Note{}, ErrValidationFailed
	}

	if _, err := s.Store.Notes().GetNoteByID(ctx, parentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Note{}, ErrParentNotFound
		}
		return domain.Note{}, err
	}

	n := domain.Note{
		ID:        idx.New().String(),
		AuthorID:  authorID,
		ParentID:  &parentID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Notes().CreateNote(ctx, n); err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

func validContent(content string) bool {
	l := utf8.RuneCountInString(content)
	return l >= minContentLen && l <= maxContentLen
}
