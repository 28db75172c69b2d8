package models

import "time"

// TokenPair — пара токенов, выдаваемая при входе/регистрации/переиздании.
//
//   - AccessToken — короткоживущий JWT (subject + роль) для авторизации запросов;
//   - RefreshToken — долгоживущий JWT (только subject); на сервере хранится
//     его sha256-хэш, ровно один на аккаунт;
//   - AccessExpiresAt/RefreshExpiresAt — моменты истечения (UTC), используются
//     транспортом для Max-Age cookie.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// Роли, производные от grade аккаунта. В claim "role" access-токена
// склеиваются через запятую.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Principal — результат успешной проверки access-токена: идентичность и роли,
// прикрепляемые к запросу. Передаётся явно через context, без глобального
// состояния.
type Principal struct {
	// Subject — идентификатор аккаунта из sub токена.
	Subject string
	// Roles — роли из claim "role" (например, ROLE_USER, ROLE_ADMIN).
	Roles []string
}

// HasRole сообщает, содержит ли principal указанную роль.
func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}

	return false
}
