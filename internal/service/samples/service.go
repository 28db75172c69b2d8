// Package samples содержит бизнес-логику сборок покемонов:
// публикацию, поиск, списки автора и избранного, топ по лайкам,
// правку и удаление владельцем, переключение лайков.
package samples

import (
	"errors"

	"github.com/mclhub/poke-board/internal/config"
	"github.com/mclhub/poke-board/internal/storage"
)

var (
	// ErrNotFound — сборка не найдена, удалена либо скрыта видимостью.
	// Транспорт: HTTP 404.
	ErrNotFound = errors.New("sample not found")

	// ErrPermissionDenied — операция доступна владельцу либо администратору.
	// Транспорт: HTTP 403.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidArgument — некорректные входные данные. Транспорт: HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMemberNotFound — subject токена не разрешился в аккаунт.
	// Транспорт: HTTP 401.
	ErrMemberNotFound = errors.New("member not found")
)

// bestLimit — размер топа публичных сборок.
const bestLimit = 10

// Service описывает бизнес-логику сборок.
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
