package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/pkg/log"
)

// accessClaims — полезная нагрузка access-токена: роли в claim "role"
// (через запятую) плюс стандартные зарегистрированные поля.
type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// issueAccessToken выпускает access-токен (HS512) для subject с ролями
// из политики. Возвращает подписанную строку и момент истечения.
func (s *Service) issueAccessToken(subject string, roles []string, now time.Time) (string, time.Time, error) {
	const op = "service.auth.issueAccessToken"

	expiresAt := now.Add(s.cfg.AccessTokenTTL)

	claims := accessClaims{
		Role: strings.Join(roles, ","),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	return signed, expiresAt, nil
}

// issueRefreshToken выпускает refresh-токен (HS512): только subject и срок,
// без ролей — роли перечитываются из БД при переиздании.
func (s *Service) issueRefreshToken(subject string, now time.Time) (string, time.Time, error) {
	const op = "service.auth.issueRefreshToken"

	expiresAt := now.Add(s.cfg.RefreshTokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	return signed, expiresAt, nil
}

// parseToken — общий парсер с проверкой подписи, алгоритма и срока.
func (s *Service) parseToken(tokenStr string, claims jwt.Claims) error {
	const op = "service.auth.parseToken"

	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS512 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.cfg.Issuer),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		// Исходная ошибка jwt сохраняется в цепочке ради классификации
		// причины отказа в логах.
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}

	return nil
}

// ExtractPrincipal проверяет access-токен и возвращает идентичность запроса.
// Каждый отклонённый токен оставляет в логе классифицированную причину
// (подпись/срок/формат); наружу уходит только ошибка-сентинел.
func (s *Service) ExtractPrincipal(ctx context.Context, accessToken string) (*models.Principal, error) {
	const op = "service.auth.ExtractPrincipal"

	var claims accessClaims
	if err := s.parseToken(accessToken, &claims); err != nil {
		s.logRejected(ctx, op, err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if claims.Subject == "" {
		s.logRejected(ctx, op, ErrInvalidToken)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	var roles []string
	if claims.Role != "" {
		roles = strings.Split(claims.Role, ",")
	}

	return &models.Principal{
		Subject: claims.Subject,
		Roles:   roles,
	}, nil
}

// Verify сообщает, действителен ли access-токен. Наружу уходит только
// булев ответ; причина отказа уже записана в логе ExtractPrincipal.
func (s *Service) Verify(ctx context.Context, accessToken string) bool {
	_, err := s.ExtractPrincipal(ctx, accessToken)

	return err == nil
}

// logRejected пишет классифицированную причину отказа по access-токену.
func (s *Service) logRejected(ctx context.Context, op string, err error) {
	reason := "malformed"
	switch {
	case errors.Is(err, ErrTokenExpired):
		reason = "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		reason = "bad_signature"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		reason = "unsupported"
	}

	log.From(ctx).Warn("access_token_rejected",
		slog.String("op", op),
		slog.String("reason", reason),
	)
}

// RefreshSubject проверяет refresh-токен и возвращает его subject.
// Нужен транспорту для logout без действующего access-токена.
func (s *Service) RefreshSubject(ctx context.Context, refreshToken string) (string, error) {
	const op = "service.auth.RefreshSubject"

	subject, err := s.parseRefreshSubject(refreshToken)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return subject, nil
}

// parseRefreshSubject проверяет refresh-токен и возвращает его subject.
func (s *Service) parseRefreshSubject(refreshToken string) (string, error) {
	const op = "service.auth.parseRefreshSubject"

	var claims jwt.RegisteredClaims
	if err := s.parseToken(refreshToken, &claims); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return claims.Subject, nil
}

// hashToken — sha256-хэш токена в base64url; в таком виде refresh-токены
// хранятся в БД и кэше.
func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))

	return base64.RawURLEncoding.EncodeToString(sum[:])
}
