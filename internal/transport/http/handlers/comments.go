package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/transport/http/apierrors"
)

type commentCreateRequest struct {
	TargetKind models.CommentTarget `json:"target_kind"`
	TargetIdx  int64                `json:"target_idx"`
	ParentID   string               `json:"parent_id,omitempty"`
	Content    string               `json:"content"`
}

type commentUpdateRequest struct {
	Content string `json:"content"`
}

// CreateComment обрабатывает POST /comments: корневой комментарий либо
// ответ (если задан parent_id).
func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req commentCreateRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Comments.Create(r.Context(), p, models.Comment{
		TargetKind: req.TargetKind,
		TargetIdx:  req.TargetIdx,
		ParentID:   req.ParentID,
		Content:    req.Content,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, commentToView(created))
}

// ListComments обрабатывает GET /comments?target_kind=&target_idx=:
// страница корневых комментариев цели, новые сверху.
func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	targetIdx, err := strconv.ParseInt(q.Get("target_idx"), 10, 64)
	if err != nil || targetIdx <= 0 {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid target_idx")
		return
	}

	page, err := h.Comments.ListRoots(r.Context(),
		models.CommentTarget(q.Get("target_kind")), targetIdx, commentListParams(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commentPageToView(page))
}

// ListReplies обрабатывает GET /comments/{id}/replies: страница ответов
// ветки, старые сверху.
func (h *Handlers) ListReplies(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	page, err := h.Comments.ListReplies(r.Context(), id, commentListParams(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commentPageToView(page))
}

// UpdateComment обрабатывает PUT /comments/{id}.
func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	var req commentUpdateRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Comments.Update(r.Context(), p, id, req.Content); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteComment обрабатывает DELETE /comments/{id}.
func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.Comments.Delete(r.Context(), p, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
