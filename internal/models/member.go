// Package models содержит доменные сущности бэкенда:
// участников (members), пары токенов, доски, комментарии и сборки покемонов.
package models

import (
	"strings"
	"time"
)

// ProviderLocal — тег провайдера для аккаунтов с локальной парой логин/пароль.
// Для таких аккаунтов provider_id совпадает с userid, благодаря чему subject
// токена разрешается единообразно для обоих путей входа.
const ProviderLocal = "LOCAL"

// subjectSep разделяет provider и provider_id внутри subject токена.
const subjectSep = ":"

// Member — аккаунт участника.
//
// Инварианты:
//   - пара (Provider, ProviderID) уникальна;
//   - Grade монотонен по привилегиям (больше = выше);
//   - на аккаунт приходится не более одного действующего refresh-токена
//     (RefreshTokenHash); ротация перезаписывает значение, а не добавляет новое.
type Member struct {
	// Idx — первичный ключ.
	Idx int64
	// Userid — локальный логин; для социальных аккаунтов "<provider>_<provider_id>".
	Userid string
	// PasswordHash — bcrypt-хэш пароля; для социальных аккаунтов пустой.
	PasswordHash string
	// Nickname — отображаемое имя, уникально.
	Nickname string
	// Birth — дата рождения (опционально).
	Birth *time.Time
	// AvatarURL — ссылка на изображение профиля.
	AvatarURL string
	// Grade — целочисленный уровень привилегий, источник истины для ролей.
	Grade int64
	// Provider — "LOCAL", "kakao", "naver".
	Provider string
	// ProviderID — идентификатор на стороне провайдера; уникален только
	// в паре с Provider.
	ProviderID string
	// RefreshTokenHash — sha256-хэш действующего refresh-токена (nil, если нет).
	RefreshTokenHash *string
	// CreatedAt/UpdatedAt — моменты создания/изменения (UTC).
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subject возвращает строку, помещаемую в sub токена:
// "<provider>:<provider_id>". Уникальность гарантирует пара
// (Provider, ProviderID), голый ProviderID для этого недостаточен —
// kakao и naver могут выдать одинаковый идентификатор.
func (m *Member) Subject() string {
	return m.Provider + subjectSep + m.ProviderID
}

// SplitSubject разбирает subject токена обратно в пару
// (provider, provider_id). ok=false — строка не является subject.
func SplitSubject(subject string) (provider, providerID string, ok bool) {
	provider, providerID, ok = strings.Cut(subject, subjectSep)
	if !ok || provider == "" || providerID == "" {
		return "", "", false
	}

	return provider, providerID, true
}
