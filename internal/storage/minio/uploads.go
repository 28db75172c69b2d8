package minio

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"

	"github.com/mclhub/poke-board/internal/storage"
)

// allowedContentTypes — допустимые типы изображений для загрузок.
var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadURL генерирует presigned PUT URL.
// Валидирует contentType и contentLength, формирует ключ вида
// "<kind>/<ownerIdx>/<uuid>.<ext>" и возвращает заголовки, которые клиент
// обязан передать при PUT (проверяются при подтверждении).
func (s *UploadsStorage) UploadURL(ctx context.Context, kind string, ownerIdx int64, contentType string, contentLength int64) (*storage.UploadInfo, error) {
	const op = "storage.minio.UploadURL"

	if kind == "" || ownerIdx <= 0 {
		return nil, storage.ErrInvalidArgument
	}

	if contentLength <= 0 || contentLength > s.cfg.MaxSizeBytes {
		return nil, storage.ErrInvalidArgument
	}

	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, storage.ErrInvalidArgument
	}

	key := path.Join(kind, strconv.FormatInt(ownerIdx, 10), uuid.NewString()+ext)

	u, err := s.client.PresignedPutObject(ctx, s.cfg.Bucket, key, s.cfg.PresignTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &storage.UploadInfo{
		UploadURL: u.String(),
		Key:       key,
		Expires:   s.cfg.PresignTTL,
		RequiredHeader: map[string]string{
			"Content-Type":   contentType,
			"Content-Length": fmt.Sprintf("%d", contentLength),
		},
	}, nil
}

// CheckUpload подтверждает факт загрузки по key: объект существует,
// принадлежит владельцу и удовлетворяет ограничениям размера/типа.
// Возвращает публичный URL (если PublicBaseURL задан), иначе пустую строку.
func (s *UploadsStorage) CheckUpload(ctx context.Context, kind string, ownerIdx int64, key string) (string, error) {
	const op = "storage.minio.CheckUpload"

	prefix := kind + "/" + strconv.FormatInt(ownerIdx, 10) + "/"
	if !strings.HasPrefix(key, prefix) {
		return "", storage.ErrInvalidArgument
	}

	objInfo, err := s.client.StatObject(ctx, s.cfg.Bucket, key, mclient.StatObjectOptions{})
	if err != nil {
		errResp := mclient.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.StatusCode == 404 {
			return "", storage.ErrNotFoundUpload
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if objInfo.Size <= 0 || objInfo.Size > s.cfg.MaxSizeBytes {
		return "", storage.ErrInvalidArgument
	}

	if ct := objInfo.ContentType; ct != "" {
		if _, ok := allowedContentTypes[ct]; !ok {
			return "", storage.ErrInvalidArgument
		}
	}

	if s.cfg.PublicBaseURL == "" {
		return "", nil
	}

	return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key, nil
}
