package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mclhub/poke-board/internal/cache"
	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/pkg/log"
	"github.com/mclhub/poke-board/internal/storage"
)

// Инвариант сессий: на аккаунт приходится не более одного действующего
// refresh-токена. Выпуск новой пары перезаписывает хранимый хэш, ротация
// заменяет его атомарным compare-and-swap.

// IssueSession выпускает пару токенов для участника и фиксирует хэш
// refresh-токена в БД (вход/регистрация/OAuth-успех).
func (s *Service) IssueSession(ctx context.Context, m *models.Member) (*models.TokenPair, error) {
	const op = "service.auth.IssueSession"

	lg := log.From(ctx)

	now := time.Now().UTC()
	subject := m.Subject()

	access, accessExp, err := s.issueAccessToken(subject, s.roles(m.Grade), now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refresh, refreshExp, err := s.issueRefreshToken(subject, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash := hashToken(refresh)
	if err := s.storage.SetRefreshToken(ctx, m.Idx, hash); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}

		lg.Error("set_refresh_token_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cacheRefresh(ctx, hash, subject, refreshExp)

	return &models.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Reissue обновляет пару токенов по refresh-токену.
//
// Порядок проверок:
//  1. подпись и срок самого токена (ErrInvalidToken/ErrTokenExpired);
//  2. точное совпадение хэша с хранимым значением (ErrSessionMismatch);
//  3. роли перечитываются из найденной строки, не из старого токена.
//
// Ротация — одним UPDATE по старому хэшу: из двух конкурентных переизданий
// одного токена успешным окажется ровно одно.
func (s *Service) Reissue(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "service.auth.Reissue"

	lg := log.From(ctx)

	subject, err := s.parseRefreshSubject(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	oldHash := hashToken(refreshToken)

	// Быстрый путь: метка отзыва в кэше избавляет от похода в БД.
	if entry, ok := s.cachedRefresh(ctx, oldHash); ok && entry.Revoked {
		lg.Warn("refresh_revoked",
			slog.String("op", op),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrSessionMismatch)
	}

	m, err := s.storage.MemberByRefreshHash(ctx, oldHash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("refresh_lookup_not_found",
				slog.String("op", op),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrSessionMismatch)
		}

		lg.Error("refresh_lookup_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Subject токена обязан совпадать с владельцем хранимого хэша.
	if m.Subject() != subject {
		lg.Warn("refresh_subject_mismatch",
			slog.String("op", op),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrSessionMismatch)
	}

	now := time.Now().UTC()

	access, accessExp, err := s.issueAccessToken(subject, s.roles(m.Grade), now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refresh, refreshExp, err := s.issueRefreshToken(subject, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	newHash := hashToken(refresh)
	if err := s.storage.RotateRefreshToken(ctx, oldHash, newHash); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Конкурентная ротация успела первой.
			lg.Warn("refresh_rotation_lost",
				slog.String("op", op),
				slog.String("grade", gradeLabel(m.Grade)),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrSessionMismatch)
		}

		lg.Error("refresh_rotation_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.revokeCached(ctx, oldHash)
	s.cacheRefresh(ctx, newHash, subject, refreshExp)

	return &models.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Revoke отзывает действующий refresh-токен участника (logout).
func (s *Service) Revoke(ctx context.Context, subject string) error {
	const op = "service.auth.Revoke"

	lg := log.From(ctx)

	m, err := s.storage.MemberBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if m.RefreshTokenHash != nil {
		s.revokeCached(ctx, *m.RefreshTokenHash)
	}

	if err := s.storage.ClearRefreshToken(ctx, subject); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}

		lg.Error("clear_refresh_token_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Me возвращает аккаунт по subject access-токена.
func (s *Service) Me(ctx context.Context, subject string) (*models.Member, error) {
	const op = "service.auth.Me"

	m, err := s.storage.MemberBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// cacheRefresh кладёт запись о новом refresh-токене в кэш (best-effort).
func (s *Service) cacheRefresh(ctx context.Context, hash, subject string, expiresAt time.Time) {
	if s.rcache == nil {
		return
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}

	entry := &cache.RefreshEntry{
		Subject:   subject,
		Revoked:   false,
		ExpiresAt: expiresAt,
	}

	if err := s.rcache.Set(ctx, hash, entry, ttl); err != nil {
		log.From(ctx).Warn("refresh_cache_set_failed",
			slog.String("err", err.Error()),
		)
	}
}

// cachedRefresh читает запись из кэша (best-effort).
func (s *Service) cachedRefresh(ctx context.Context, hash string) (*cache.RefreshEntry, bool) {
	if s.rcache == nil {
		return nil, false
	}

	entry, ok, err := s.rcache.Get(ctx, hash)
	if err != nil {
		log.From(ctx).Warn("refresh_cache_get_failed",
			slog.String("err", err.Error()),
		)
		return nil, false
	}

	return entry, ok
}

// revokeCached помечает хэш отозванным в кэше (best-effort).
func (s *Service) revokeCached(ctx context.Context, hash string) {
	if s.rcache == nil {
		return
	}

	if err := s.rcache.MarkRevoked(ctx, hash); err != nil {
		log.From(ctx).Warn("refresh_cache_revoke_failed",
			slog.String("err", err.Error()),
		)
	}
}
