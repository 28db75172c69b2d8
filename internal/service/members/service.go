// Package members содержит бизнес-логику профилей участников:
// просмотр и частичную правку профиля, смену пароля и загрузку аватара
// по presigned-ссылкам.
package members

import (
	"errors"

	"github.com/mclhub/poke-board/internal/storage"
)

var (
	// ErrMemberNotFound — subject токена не разрешился в аккаунт.
	// Транспорт: HTTP 401.
	ErrMemberNotFound = errors.New("member not found")

	// ErrNicknameTaken — ник уже занят. Транспорт: HTTP 409.
	ErrNicknameTaken = errors.New("nickname already taken")

	// ErrInvalidCredentials — текущий пароль не подошёл. Транспорт: HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrLocalOnly — операция доступна только локальным аккаунтам.
	// Транспорт: HTTP 400.
	ErrLocalOnly = errors.New("operation requires local account")

	// ErrInvalidArgument — некорректные входные данные. Транспорт: HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUploadNotFound — объект не найден при подтверждении загрузки.
	// Транспорт: HTTP 404.
	ErrUploadNotFound = errors.New("upload not found")
)

// avatarKind — раздел бакета для аватаров.
const avatarKind = "avatars"

// Service описывает бизнес-логику профилей.
type Service struct {
	storage storage.Storage
	uploads storage.UploadStorage // может быть nil, если S3 не сконфигурирован
}

// New создаёт новый экземпляр Service.
func New(st storage.Storage, uploads storage.UploadStorage) *Service {
	return &Service{
		storage: st,
		uploads: uploads,
	}
}
