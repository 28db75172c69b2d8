package handlers

import (
	"net/http"
	"time"

	"github.com/mclhub/poke-board/internal/storage"
	"github.com/mclhub/poke-board/internal/transport/http/apierrors"
)

type nicknameUpdateRequest struct {
	Nickname string `json:"nickname"`
}

type birthUpdateRequest struct {
	Birth string `json:"birth"`
}

type passwordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type avatarUploadRequest struct {
	ContentType   string `json:"content_type"`
	ContentLength int64  `json:"content_length"`
}

type avatarUploadResponse struct {
	UploadURL      string            `json:"upload_url"`
	Key            string            `json:"key"`
	ExpiresSec     int64             `json:"expires_sec"`
	RequiredHeader map[string]string `json:"required_header"`
}

type avatarConfirmRequest struct {
	Key string `json:"key"`
}

type avatarConfirmResponse struct {
	AvatarURL string `json:"avatar_url"`
}

func uploadInfoToView(info *storage.UploadInfo) avatarUploadResponse {
	return avatarUploadResponse{
		UploadURL:      info.UploadURL,
		Key:            info.Key,
		ExpiresSec:     int64(info.Expires.Seconds()),
		RequiredHeader: info.RequiredHeader,
	}
}

// Profile обрабатывает GET /members/me.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	m, err := h.Members.Profile(r.Context(), p)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, memberToView(m))
}

// UpdateNickname обрабатывает PATCH /members/me/nickname.
func (h *Handlers) UpdateNickname(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req nicknameUpdateRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Members.UpdateNickname(r.Context(), p, req.Nickname); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateBirth обрабатывает PATCH /members/me/birth.
func (h *Handlers) UpdateBirth(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req birthUpdateRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	birth, err := time.Parse("2006-01-02", req.Birth)
	if err != nil {
		apierrors.WriteStatus(w, http.StatusBadRequest, "birth must be YYYY-MM-DD")
		return
	}

	if err := h.Members.UpdateBirth(r.Context(), p, birth); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword обрабатывает PUT /members/me/password.
func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req passwordChangeRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Members.ChangePassword(r.Context(), p, req.CurrentPassword, req.NewPassword); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AvatarUploadURL обрабатывает POST /members/me/avatar/upload-url:
// выдаёт presigned PUT URL, файл клиент загружает в хранилище напрямую.
func (h *Handlers) AvatarUploadURL(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req avatarUploadRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	info, err := h.Members.AvatarUploadURL(r.Context(), p, req.ContentType, req.ContentLength)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadInfoToView(info))
}

// ConfirmAvatar обрабатывает POST /members/me/avatar/confirm:
// подтверждает загрузку и фиксирует новую ссылку в профиле.
func (h *Handlers) ConfirmAvatar(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req avatarConfirmRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	avatarURL, err := h.Members.ConfirmAvatar(r.Context(), p, req.Key)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, avatarConfirmResponse{AvatarURL: avatarURL})
}
