package domain

import "time"

// Reaction is a single emoji applied by a user to a note. The triple
// (NoteID, UserID, Emoji) is unique.
type Reaction struct {
	ID        string
	NoteID    string
	UserID    string
	Emoji     string
	CreatedAt time.Time
}

// ReactionCount is an aggregate row: how many users applied Emoji to a note.
type ReactionCount struct {
	Emoji string
	Count int
}
