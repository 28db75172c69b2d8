package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/storage"
)

// Инвариант: на аккаунт приходится не более одного действующего refresh-токена;
// колонка refresh_token_hash хранит sha256-хэш текущего значения (NULL — нет сессии).

// MemberByRefreshHash находит участника по точному значению хэша
// действующего refresh-токена.
func (s *Storage) MemberByRefreshHash(ctx context.Context, hash string) (*models.Member, error) {
	const op = "storage.postgres.MemberByRefreshHash"

	query := `SELECT ` + memberColumns + ` FROM members WHERE refresh_token_hash = $1`

	m, err := scanMember(s.db.QueryRow(ctx, query, hash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// SetRefreshToken безусловно перезаписывает хэш refresh-токена участника.
func (s *Storage) SetRefreshToken(ctx context.Context, memberIdx int64, hash string) error {
	const op = "storage.postgres.SetRefreshToken"

	query := `
		UPDATE members
		SET refresh_token_hash = $2, updated_at = now()
		WHERE idx = $1
	`

	cmdTag, err := s.db.Exec(ctx, query, memberIdx, hash)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// RotateRefreshToken атомарно заменяет oldHash на newHash одним UPDATE
// (compare-and-swap). Из двух конкурентных ротаций одного токена успешной
// окажется ровно одна: вторая не найдёт точного совпадения и получит
// ErrNotFound.
func (s *Storage) RotateRefreshToken(ctx context.Context, oldHash, newHash string) error {
	const op = "storage.postgres.RotateRefreshToken"

	query := `
		UPDATE members
		SET refresh_token_hash = $2, updated_at = now()
		WHERE refresh_token_hash = $1
	`

	cmdTag, err := s.db.Exec(ctx, query, oldHash, newHash)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ClearRefreshToken обнуляет хэш refresh-токена по subject (logout).
// Subject адресует строку парой (provider, provider_id).
func (s *Storage) ClearRefreshToken(ctx context.Context, subject string) error {
	const op = "storage.postgres.ClearRefreshToken"

	provider, providerID, ok := models.SplitSubject(subject)
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	query := `
		UPDATE members
		SET refresh_token_hash = NULL, updated_at = now()
		WHERE provider = $1 AND provider_id = $2
	`

	cmdTag, err := s.db.Exec(ctx, query, provider, providerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
