// Package storage задаёт контракты хранилищ и их сентинельные ошибки.
// Реализации: postgres (участники/доски/сборки), mongo (деревья комментариев),
// minio (загрузки файлов).
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mclhub/poke-board/internal/models"
)

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (userid/nickname/provider_id).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidArgument — некорректный вход на границе хранилища.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidCursor — битый/чужой page_token.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrParentNotFound — указан parent_id, но родитель не найден.
	ErrParentNotFound = errors.New("parent not found")
	// ErrMaxDepthExceeded — превышена максимальная глубина дерева комментариев.
	ErrMaxDepthExceeded = errors.New("max depth exceeded")
	// ErrNotFoundUpload — объект в бакете не найден при подтверждении загрузки.
	ErrNotFoundUpload = errors.New("upload not found")
)

// MemberStorage выполняет операции над аккаунтами участников.
type MemberStorage interface {
	// SaveMember создаёт нового участника.
	SaveMember(ctx context.Context, m *models.Member) (int64, error)
	// MemberByIdx находит участника по первичному ключу.
	MemberByIdx(ctx context.Context, idx int64) (*models.Member, error)
	// MemberByUserid находит участника по локальному логину.
	MemberByUserid(ctx context.Context, userid string) (*models.Member, error)
	// MemberByNickname находит участника по нику.
	MemberByNickname(ctx context.Context, nickname string) (*models.Member, error)
	// MemberBySubject находит участника по subject токена (provider_id).
	MemberBySubject(ctx context.Context, subject string) (*models.Member, error)
	// MemberByProvider находит участника по паре (provider, provider_id).
	MemberByProvider(ctx context.Context, provider, providerID string) (*models.Member, error)
	// UpdateOAuthProfile обновляет изменяемые поля профиля при повторном
	// федеративном входе (nickname при смене на стороне провайдера не трогаем,
	// обновляется только аватар).
	UpdateOAuthProfile(ctx context.Context, idx int64, avatarURL string) error
	// UpdateNickname меняет ник (ErrAlreadyExists при занятом).
	UpdateNickname(ctx context.Context, idx int64, nickname string) error
	// UpdateBirth меняет дату рождения.
	UpdateBirth(ctx context.Context, idx int64, birth time.Time) error
	// UpdatePasswordHash меняет bcrypt-хэш пароля.
	UpdatePasswordHash(ctx context.Context, idx int64, hash string) error
	// UpdateAvatar меняет ссылку на изображение профиля.
	UpdateAvatar(ctx context.Context, idx int64, avatarURL string) error
}

// SessionStorage поддерживает инвариант «один refresh-токен на аккаунт».
type SessionStorage interface {
	// MemberByRefreshHash находит участника по точному значению хэша
	// действующего refresh-токена.
	MemberByRefreshHash(ctx context.Context, hash string) (*models.Member, error)
	// SetRefreshToken безусловно перезаписывает хэш (вход/OAuth-успех).
	SetRefreshToken(ctx context.Context, memberIdx int64, hash string) error
	// RotateRefreshToken атомарно заменяет oldHash на newHash
	// (compare-and-swap одним UPDATE). ErrNotFound, если точного совпадения
	// уже нет — токен чужой либо успел ротироваться конкурентно.
	RotateRefreshToken(ctx context.Context, oldHash, newHash string) error
	// ClearRefreshToken обнуляет хэш по subject (logout).
	// ErrNotFound, если subject не существует.
	ClearRefreshToken(ctx context.Context, subject string) error
}

// BoardStorage выполняет операции над постами доски.
type BoardStorage interface {
	SaveBoard(ctx context.Context, b *models.Board) (int64, error)
	// BoardByIdx возвращает пост с ником автора; ErrNotFound для удалённых.
	BoardByIdx(ctx context.Context, idx int64) (*models.Board, error)
	ListBoards(ctx context.Context, t models.BoardType, p models.ListParams) (*models.BoardPage, error)
	UpdateBoard(ctx context.Context, idx int64, title, content string) error
	SoftDeleteBoard(ctx context.Context, idx int64) error
	SoftDeleteBoards(ctx context.Context, idxs []int64) error
	IncrementBoardHit(ctx context.Context, idx int64) error
	// ToggleRecommend переключает рекомендацию участника и корректирует счётчик.
	// Возвращает итоговое состояние (true — рекомендация поставлена).
	ToggleRecommend(ctx context.Context, boardIdx, memberIdx int64) (bool, error)
}

// SampleStorage выполняет операции над сборками покемонов.
type SampleStorage interface {
	SaveSample(ctx context.Context, s *models.PokeSample) (int64, error)
	SampleByIdx(ctx context.Context, idx int64) (*models.PokeSample, error)
	// ListSamples — публичные сборки, опциональный поиск по имени покемона.
	ListSamples(ctx context.Context, nameQuery string, p models.ListParams) (*models.SamplePage, error)
	// ListSamplesByMember — сборки автора (включая приватные).
	ListSamplesByMember(ctx context.Context, memberIdx int64, p models.ListParams) (*models.SamplePage, error)
	// ListLikedSamples — публичные сборки, отмеченные участником.
	ListLikedSamples(ctx context.Context, memberIdx int64, p models.ListParams) (*models.SamplePage, error)
	// BestSamples — топ публичных сборок по лайкам.
	BestSamples(ctx context.Context, limit int32) ([]models.PokeSample, error)
	UpdateSample(ctx context.Context, s *models.PokeSample) error
	SoftDeleteSample(ctx context.Context, idx int64) error
	IncrementSampleHit(ctx context.Context, idx int64) error
	// ToggleLike переключает лайк участника и корректирует кэш-счётчик.
	ToggleLike(ctx context.Context, sampleIdx, memberIdx int64) (bool, error)
}

// Storage — составной контракт реляционного хранилища.
type Storage interface {
	MemberStorage
	SessionStorage
	BoardStorage
	SampleStorage
	Close()
}

// CommentStorage описывает операции над деревьями комментариев.
type CommentStorage interface {
	// CreateComment создаёт корневой комментарий или ответ.
	// Возможные ошибки: ErrParentNotFound, ErrMaxDepthExceeded.
	CreateComment(ctx context.Context, c models.Comment) (*models.Comment, error)
	// CommentByID возвращает комментарий по hex ObjectID; ErrNotFound иначе.
	CommentByID(ctx context.Context, id string) (*models.Comment, error)
	// UpdateContent меняет текст комментария.
	UpdateContent(ctx context.Context, id, content string) error
	// DeleteComment выполняет мягкое удаление (is_deleted=true).
	DeleteComment(ctx context.Context, id string) error
	// ListRoots — страница корневых комментариев цели (created_at DESC).
	ListRoots(ctx context.Context, kind models.CommentTarget, targetIdx int64, p models.CommentListParams) (*models.CommentPage, error)
	// ListReplies — страница ответов ветки (created_at ASC).
	ListReplies(ctx context.Context, parentID string, p models.CommentListParams) (*models.CommentPage, error)
	Close()
}

// UploadInfo — данные presigned-загрузки.
type UploadInfo struct {
	UploadURL string
	Key       string
	Expires   time.Duration
	// RequiredHeader — заголовки, которые клиент обязан передать при PUT.
	RequiredHeader map[string]string
}

// UploadStorage описывает presigned-загрузки файлов (аватары, изображения постов).
type UploadStorage interface {
	// UploadURL генерирует presigned PUT URL; ключ "<kind>/<ownerIdx>/<uuid>.<ext>".
	UploadURL(ctx context.Context, kind string, ownerIdx int64, contentType string, contentLength int64) (*UploadInfo, error)
	// CheckUpload подтверждает факт загрузки и возвращает публичный URL.
	CheckUpload(ctx context.Context, kind string, ownerIdx int64, key string) (string, error)
}
