package domain

import "time"

// Note is a board post. A nil ParentID marks a top-level note; a set
// ParentID marks a reply. The model supports a single level of nesting:
// replies are stored flat and never threaded further.
type Note struct {
	ID        string
	AuthorID  string
	ParentID  *string
	Content   string
	CreatedAt time.Time

	// AuthorUsername is populated by list queries (joined from users);
	// it is empty on plain lookups.
	AuthorUsername string
}

// IsReply reports whether the note has a parent.
func (n Note) IsReply() bool { return n.ParentID != nil }
