package handlers

import (
	"net/http"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/transport/http/apierrors"
)

type boardRequest struct {
	Type    models.BoardType `json:"board_type"`
	Title   string           `json:"title"`
	Content string           `json:"content"`
}

type boardUpdateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type boardBatchDeleteRequest struct {
	Idxs []int64 `json:"idxs"`
}

type toggleResponse struct {
	Active bool `json:"active"`
}

// CreateBoard обрабатывает POST /boards.
func (h *Handlers) CreateBoard(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req boardRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.Boards.Create(r.Context(), p, req.Type, req.Title, req.Content)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, boardToView(b, true))
}

// GetBoard обрабатывает GET /boards/{idx}.
func (h *Handlers) GetBoard(w http.ResponseWriter, r *http.Request) {
	idx, ok := idxParam(r, "idx")
	if !ok {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid board idx")
		return
	}

	b, err := h.Boards.Get(r.Context(), idx)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, boardToView(b, true))
}

// ListBoards обрабатывает GET /boards?type=free&page=0&size=20.
func (h *Handlers) ListBoards(w http.ResponseWriter, r *http.Request) {
	t := models.BoardType(r.URL.Query().Get("type"))

	page, err := h.Boards.List(r.Context(), t, listParams(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, boardPageToView(page))
}

// UpdateBoard обрабатывает PUT /boards/{idx}.
func (h *Handlers) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	idx, ok := idxParam(r, "idx")
	if !ok {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid board idx")
		return
	}

	var req boardUpdateRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Boards.Update(r.Context(), p, idx, req.Title, req.Content); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteBoard обрабатывает DELETE /boards/{idx}.
func (h *Handlers) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	idx, ok := idxParam(r, "idx")
	if !ok {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid board idx")
		return
	}

	if err := h.Boards.Delete(r.Context(), p, idx); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteBoardsBatch обрабатывает POST /admin/boards/delete.
func (h *Handlers) DeleteBoardsBatch(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req boardBatchDeleteRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Boards.DeleteBatch(r.Context(), p, req.Idxs); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecommendBoard обрабатывает POST /boards/{idx}/recommend (toggle).
func (h *Handlers) RecommendBoard(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	idx, ok := idxParam(r, "idx")
	if !ok {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid board idx")
		return
	}

	recommended, err := h.Boards.Recommend(r.Context(), p, idx)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toggleResponse{Active: recommended})
}
