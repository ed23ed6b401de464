package sqlite

import (
	"context"
	"database/sql"

	"github.com/hollyburn/noteboard/internal/board/domain"
)

type notesRepo struct {
	db dbtx
}

func (r *notesRepo) GetNoteByID(ctx context.Context, id string) (domain.Note, error) {
	var n domain.Note
	var parent sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, author_id, parent_id, content, created_at FROM notes WHERE id = ?`,
		id).Scan(&n.ID, &n.AuthorID, &parent, &n.Content, &n.CreatedAt)
	if err != nil {
		return domain.Note{}, mapNotFound(err)
	}
	n.ParentID = mapNullString(parent)
	return n, nil
}

func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (id, author_id, parent_id, content, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.AuthorID, mapOptionalString(n.ParentID), n.Content, n.CreatedAt)
	return mapConstraint(err)
}

func (r *notesRepo) ListTopLevel(ctx context.Context, limit int) ([]domain.Note, error) {
	// Ordering ties on created_at break on id; ids are monotonic ULIDs so
	// the result is deterministic under rapid insertion.
	q := `SELECT n.id, n.author_id, n.parent_id, n.content, n.created_at, u.username
	      FROM notes n
	      JOIN users u ON n.author_id = u.id
	      WHERE n.parent_id IS NULL
	      ORDER BY n.created_at DESC, n.id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotes(rows)
}

func (r *notesRepo) ListReplies(ctx context.Context, parentID string) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT n.id, n.author_id, n.parent_id, n.content, n.created_at, u.username
		 FROM notes n
		 JOIN users u ON n.author_id = u.id
		 WHERE n.parent_id = ?
		 ORDER BY n.created_at ASC, n.id ASC`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotes(rows)
}

func collectNotes(rows *sql.Rows) ([]domain.Note, error) {
	var out []domain.Note
	for rows.Next() {
		var n domain.Note
		var parent sql.NullString
		if err := rows.Scan(&n.ID, &n.AuthorID, &parent, &n.Content, &n.CreatedAt, &n.AuthorUsername); err != nil {
			return nil, err
		}
		n.ParentID = mapNullString(parent)
		out = append(out, n)
	}
	return out, rows.Err()
}
