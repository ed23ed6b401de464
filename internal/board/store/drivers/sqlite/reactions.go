package sqlite

import (
	"context"

	"github.com/hollyburn/noteboard/internal/board/domain"
)

type reactionsRepo struct {
	db dbtx
}

func (r *reactionsRepo) GetReaction(ctx context.Context, noteID, userID, emoji string) (domain.Reaction, error) {
	var rx domain.Reaction
	err := r.db.QueryRowContext(ctx,
		`SELECT id, note_id, user_id, emoji, created_at
		 FROM reactions WHERE note_id = ? AND user_id = ? AND emoji = ?`,
		noteID, userID, emoji).
		Scan(&rx.ID, &rx.NoteID, &rx.UserID, &rx.Emoji, &rx.CreatedAt)
	if err != nil {
		return domain.Reaction{}, mapNotFound(err)
	}
	return rx, nil
}

func (r *reactionsRepo) CreateReaction(ctx context.Context, rx domain.Reaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reactions (id, note_id, user_id, emoji, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rx.ID, rx.NoteID, rx.UserID, rx.Emoji, rx.CreatedAt)
	return mapConstraint(err)
}

func (r *reactionsRepo) DeleteReaction(ctx context.Context, noteID, userID, emoji string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM reactions WHERE note_id = ? AND user_id = ? AND emoji = ?`,
		noteID, userID, emoji)
	return err
}

func (r *reactionsRepo) CountByEmoji(ctx context.Context, noteID string) ([]domain.ReactionCount, error) {
	// MIN(id) is the first insertion of each emoji (ids are monotonic
	// ULIDs), which breaks count ties by insertion order.
	rows, err := r.db.QueryContext(ctx,
		`SELECT emoji, COUNT(*) AS n
		 FROM reactions
		 WHERE note_id = ?
		 GROUP BY emoji
		 ORDER BY n DESC, MIN(id) ASC`, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReactionCount
	for rows.Next() {
		var rc domain.ReactionCount
		if err := rows.Scan(&rc.Emoji, &rc.Count); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func (r *reactionsRepo) ListUserEmojis(ctx context.Context, noteID, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT emoji FROM reactions WHERE note_id = ? AND user_id = ? ORDER BY emoji`,
		noteID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
