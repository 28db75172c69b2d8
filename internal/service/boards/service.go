// Package boards содержит бизнес-логику досок (notice/free):
// создание, чтение со счётчиком просмотров, правка и удаление владельцем,
// пакетное удаление администратором и переключение рекомендаций.
package boards

import (
	"errors"

	"github.com/mclhub/poke-board/internal/config"
	"github.com/mclhub/poke-board/internal/storage"
)

var (
	// ErrNotFound — пост не найден или удалён. Транспорт: HTTP 404.
	ErrNotFound = errors.New("board not found")

	// ErrPermissionDenied — операция доступна владельцу либо администратору.
	// Транспорт: HTTP 403.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidArgument — некорректные входные данные. Транспорт: HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMemberNotFound — subject токена не разрешился в аккаунт.
	// Транспорт: HTTP 401.
	ErrMemberNotFound = errors.New("member not found")
)

// Service описывает бизнес-логику досок.
type Service struct {
	storage storage.Storage
	limits  config.LimitsConfig
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, limits config.LimitsConfig) *Service {
	return &Service{
		storage: storage,
		limits:  limits,
	}
}
