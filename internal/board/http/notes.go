package http

import (
	"context"
	"net/http"
	"time"

	"github.com/hollyburn/noteboard/internal/board/domain"
	"github.com/hollyburn/noteboard/internal/board/service"
	"github.com/hollyburn/noteboard/pkg/httpx"
)

// previewLimit is how many notes the public home preview shows.
const previewLimit = 5

type NotesHandler struct {
	Threads   *service.ThreadService
	Reactions *service.ReactionService
}

type ReactionCountResponse struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

type NoteResponse struct {
	ID          string                  `json:"id"`
	Author      string                  `json:"author"`
	Content     string                  `json:"content"`
	CreatedAt   time.Time               `json:"created_at"`
	Reactions   []ReactionCountResponse `json:"reactions,omitempty"`
	MyReactions []string                `json:"my_reactions,omitempty"`
	Replies     []NoteResponse          `json:"replies,omitempty"`
}

func noteResponse(n domain.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Author:    n.AuthorUsername,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
	}
}

// List renders the whole board for a logged-in viewer: top-level notes
// newest first, each with its flat replies, reaction tallies and the
// viewer's own emoji.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserID(ctx)
	if userID == "" {
		writeServiceError(w, r, service.ErrUnauthenticated)
		return
	}

	notes, err := h.Threads.ListTopLevel(ctx)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		view, err := h.noteWithReactions(ctx, n, userID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		replies, err := h.Threads.ListReplies(ctx, n.ID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		for _, reply := range replies {
			rv, err := h.noteWithReactions(ctx, reply, userID)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			view.Replies = append(view.Replies, rv)
		}
		out = append(out, view)
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"notes": out})
}

// Preview is the public home page teaser: the newest few top-level notes,
// no reactions, no replies.
func (h *NotesHandler) Preview(w http.ResponseWriter, r *http.Request) {
	notes, err := h.Threads.Preview(r.Context(), previewLimit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, noteResponse(n))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"notes": out})
}

func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserID(ctx)
	if userID == "" {
		writeServiceError(w, r, service.ErrUnauthenticated)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	n, err := h.Threads.CreateTopLevel(ctx, userID, req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, noteResponse(n))
}

func (h *NotesHandler) ListReplies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if httpx.UserID(ctx) == "" {
		writeServiceError(w, r, service.ErrUnauthenticated)
		return
	}

	replies, err := h.Threads.ListReplies(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]NoteResponse, 0, len(replies))
	for _, n := range replies {
		out = append(out, noteResponse(n))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"replies": out})
}

func (h *NotesHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserID(ctx)
	if userID == "" {
		writeServiceError(w, r, service.ErrUnauthenticated)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	n, err := h.Threads.CreateReply(ctx, userID, r.PathValue("id"), req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, noteResponse(n))
}

func (h *NotesHandler) ListReactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserID(ctx)
	if userID == "" {
		writeServiceError(w, r, service.ErrUnauthenticated)
		return
	}

	noteID := r.PathValue("id")
	counts, err := h.Reactions.Aggregate(ctx, noteID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	mine, err := h.Reactions.ReactedBy(ctx, noteID, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"reactions":    reactionCounts(counts),
		"my_reactions": mine,
	})
}

func (h *NotesHandler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserID(ctx)
	if userID == "" {
		writeServiceError(w, r, service.ErrUnauthenticated)
		return
	}

	var req struct {
		Emoji string `json:"emoji"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	result, err := h.Reactions.Toggle(ctx, r.PathValue("id"), userID, req.Emoji)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"result": result.String()})
}

func (h *NotesHandler) noteWithReactions(ctx context.Context, n domain.Note, userID string) (NoteResponse, error) {
	view := noteResponse(n)

	counts, err := h.Reactions.Aggregate(ctx, n.ID)
	if err != nil {
		return NoteResponse{}, err
	}
	view.Reactions = reactionCounts(counts)

	mine, err := h.Reactions.ReactedBy(ctx, n.ID, userID)
	if err != nil {
		return NoteResponse{}, err
	}
	view.MyReactions = mine
	return view, nil
}

func reactionCounts(counts []domain.ReactionCount) []ReactionCountResponse {
	out := make([]ReactionCountResponse, 0, len(counts))
	for _, c := range counts {
		out = append(out, ReactionCountResponse{Emoji: c.Emoji, Count: c.Count})
	}
	return out
}
