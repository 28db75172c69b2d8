// Package comments содержит бизнес-логику деревьев комментариев
// под постами досок и сборками: создание корней и ответов, правку и
// мягкое удаление, курсорные выдачи корней и веток.
package comments

import (
	"errors"

	"github.com/mclhub/poke-board/internal/storage"
)

var (
	// ErrNotFound — комментарий или цель не найдены. Транспорт: HTTP 404.
	ErrNotFound = errors.New("comment not found")

	// ErrPermissionDenied — операция доступна автору либо администратору.
	// Транспорт: HTTP 403.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidArgument — некорректные входные данные. Транспорт: HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidCursor — битый page_token. Транспорт: HTTP 400.
	ErrInvalidCursor = errors.New("invalid page token")

	// ErrMaxDepthExceeded — превышена глубина дерева. Транспорт: HTTP 400.
	ErrMaxDepthExceeded = errors.New("max depth exceeded")

	// ErrMemberNotFound — subject токена не разрешился в аккаунт.
	// Транспорт: HTTP 401.
	ErrMemberNotFound = errors.New("member not found")
)

// Service описывает бизнес-логику комментариев.
// Деревья живут в MongoDB (comments), цели и аккаунты — в PostgreSQL (rel).
type Service struct {
	comments storage.CommentStorage
	rel      storage.Storage
}

// New создаёт новый экземпляр Service.
func New(comments storage.CommentStorage, rel storage.Storage) *Service {
	return &Service{
		comments: comments,
		rel:      rel,
	}
}
