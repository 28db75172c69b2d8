// Package auth содержит бизнес-логику аутентификации:
// регистрацию и вход (локальный и федеративный), выпуск/проверку/ротацию
// токенов и работу с хранилищем через интерфейсы из пакета storage.
//
// Основные аспекты:
//   - Service не хранит состояние запроса; экземпляр безопасен для
//     конкурентного использования при потокобезопасном хранилище.
//   - Ошибки возвращаются сентинелами и далее маппятся транспортом
//     на HTTP-статусы (см. комментарии к переменным ниже).
package auth

import (
	"errors"
	"strconv"

	"github.com/mclhub/poke-board/internal/cache"
	"github.com/mclhub/poke-board/internal/config"
	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/storage"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или участник не найден.
	// Транспорт: HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — токен (access/refresh) некорректен по формату/подписи.
	// Транспорт: HTTP 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк. Транспорт: HTTP 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrSessionMismatch — предъявленный refresh-токен не совпадает с хранимым:
	// сессия отозвана либо токен уже успел ротироваться конкурентно.
	// Транспорт: HTTP 401.
	ErrSessionMismatch = errors.New("session mismatch")

	// ErrUseridTaken — локальный логин уже занят. Транспорт: HTTP 409.
	ErrUseridTaken = errors.New("userid already taken")

	// ErrNicknameTaken — ник уже занят. Транспорт: HTTP 409.
	ErrNicknameTaken = errors.New("nickname already taken")

	// ErrMemberNotFound — аккаунт не найден. Транспорт: HTTP 404.
	ErrMemberNotFound = errors.New("member not found")

	// ErrWeakPassword — пароль не удовлетворяет политике сложности.
	// Транспорт: HTTP 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrInvalidArgument — некорректные входные данные. Транспорт: HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")
)

// RolePolicy переводит grade аккаунта в набор ролей.
// Роли не хранятся в БД: источник истины — grade, политика применяется
// в момент выпуска токена.
type RolePolicy func(grade int64) []string

// DefaultRolePolicy — пороговая политика: grade >= adminGrade даёт ROLE_ADMIN
// вдобавок к ROLE_USER.
func DefaultRolePolicy(adminGrade int64) RolePolicy {
	return func(grade int64) []string {
		if grade >= adminGrade {
			return []string{models.RoleAdmin, models.RoleUser}
		}

		return []string{models.RoleUser}
	}
}

// Service описывает бизнес-логику аутентификации.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig
	roles   RolePolicy
	rcache  cache.RefreshCache // может быть nil, если кэш не сконфигурирован
}

// New создаёт новый экземпляр Service с пороговой политикой ролей из конфига.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
		roles:   DefaultRolePolicy(cfg.AdminGrade),
	}
}

// SetRolePolicy заменяет политику вычисления ролей (опционально).
func (s *Service) SetRolePolicy(p RolePolicy) {
	if p != nil {
		s.roles = p
	}
}

// SetRefreshCache устанавливает кэш refresh-токенов (опционально).
func (s *Service) SetRefreshCache(c cache.RefreshCache) {
	s.rcache = c
}

// gradeLabel — строковое представление grade для логов.
func gradeLabel(grade int64) string {
	return strconv.FormatInt(grade, 10)
}
