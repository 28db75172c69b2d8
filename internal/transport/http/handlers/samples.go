package handlers

import (
	"net/http"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/transport/http/apierrors"
	"github.com/mclhub/poke-board/internal/transport/http/authctx"
)

type sampleRequest struct {
	PokemonIdx  int32                   `json:"pokemon_idx"`
	PokemonName string                  `json:"pokemon_name"`
	TeraType    string                  `json:"tera_type"`
	Item        string                  `json:"item"`
	Nature      string                  `json:"nature"`
	Ability     string                  `json:"ability"`
	IVs         string                  `json:"ivs"`
	EVs         string                  `json:"evs"`
	Moves       [4]string               `json:"moves"`
	Description string                  `json:"description"`
	Visibility  models.SampleVisibility `json:"visibility"`
}

func (req *sampleRequest) toModel() *models.PokeSample {
	return &models.PokeSample{
		PokemonIdx:  req.PokemonIdx,
		PokemonName: req.PokemonName,
		TeraType:    req.TeraType,
		Item:        req.Item,
		Nature:      req.Nature,
		Ability:     req.Ability,
		IVs:         req.IVs,
		EVs:         req.EVs,
		Moves:       req.Moves,
		Description: req.Description,
		Visibility:  req.Visibility,
	}
}

// CreateSample обрабатывает POST /samples.
func (h *Handlers) CreateSample(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req sampleRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sm, err := h.Samples.Create(r.Context(), p, req.toModel())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sampleToView(sm))
}

// GetSample обрабатывает GET /samples/{idx}. Доступен анонимно,
// приватные сборки видит только владелец.
func (h *Handlers) GetSample(w http.ResponseWriter, r *http.Request) {
	idx, ok := idxParam(r, "idx")
	if !ok {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid sample idx")
		return
	}

	p, _ := authctx.From(r.Context())

	sm, err := h.Samples.Get(r.Context(), p, idx)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sampleToView(sm))
}

// ListSamples обрабатывает GET /samples?name=&page=0&size=20.
func (h *Handlers) ListSamples(w http.ResponseWriter, r *http.Request) {
	page, err := h.Samples.List(r.Context(), r.URL.Query().Get("name"), listParams(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, samplePageToView(page))
}

// MySamples обрабатывает GET /samples/my.
func (h *Handlers) MySamples(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	page, err := h.Samples.Mine(r.Context(), p, listParams(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, samplePageToView(page))
}

// LikedSamples обрабатывает GET /samples/liked.
func (h *Handlers) LikedSamples(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	page, err := h.Samples.Liked(r.Context(), p, listParams(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, samplePageToView(page))
}

// BestSamples обрабатывает GET /samples/best.
func (h *Handlers) BestSamples(w http.ResponseWriter, r *http.Request) {
	items, err := h.Samples.Best(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	views := make([]sampleView, 0, len(items))
	for i := range items {
		views = append(views, sampleToView(&items[i]))
	}

	writeJSON(w, http.StatusOK, views)
}

// UpdateSample обрабатывает PUT /samples/{idx}.
func (h *Handlers) UpdateSample(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	idx, ok := idxParam(r, "idx")
	if !ok {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid sample idx")
		return
	}

	var req sampleRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sm := req.toModel()
	sm.Idx = idx

	if err := h.Samples.Update(r.Context(), p, sm); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteSample обрабатывает DELETE /samples/{idx}.
func (h *Handlers) DeleteSample(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	idx, ok := idxParam(r, "idx")
	if !ok {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid sample idx")
		return
	}

	if err := h.Samples.Delete(r.Context(), p, idx); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LikeSample обрабатывает POST /samples/{idx}/like (toggle).
func (h *Handlers) LikeSample(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	idx, ok := idxParam(r, "idx")
	if !ok {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid sample idx")
		return
	}

	liked, err := h.Samples.Like(r.Context(), p, idx)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toggleResponse{Active: liked})
}
