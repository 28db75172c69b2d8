package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/storage"
)

const memberColumns = `
	idx, userid, password_hash, nickname, birth, avatar_url,
	grade, provider, provider_id, refresh_token_hash, created_at, updated_at
`

func scanMember(row pgx.Row) (*models.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.Idx,
		&m.Userid,
		&m.PasswordHash,
		&m.Nickname,
		&m.Birth,
		&m.AvatarURL,
		&m.Grade,
		&m.Provider,
		&m.ProviderID,
		&m.RefreshTokenHash,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// SaveMember создаёт нового участника.
func (s *Storage) SaveMember(ctx context.Context, m *models.Member) (int64, error) {
	const op = "storage.postgres.SaveMember"

	query := `
		INSERT INTO members(userid, password_hash, nickname, birth, avatar_url,
			grade, provider, provider_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING idx
	`

	var idx int64
	err := s.db.QueryRow(ctx, query,
		m.Userid,
		m.PasswordHash,
		m.Nickname,
		m.Birth,
		m.AvatarURL,
		m.Grade,
		m.Provider,
		m.ProviderID,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&idx)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return idx, nil
}

// MemberByIdx находит участника по первичному ключу.
func (s *Storage) MemberByIdx(ctx context.Context, idx int64) (*models.Member, error) {
	const op = "storage.postgres.MemberByIdx"

	query := `SELECT ` + memberColumns + ` FROM members WHERE idx = $1`

	m, err := scanMember(s.db.QueryRow(ctx, query, idx))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// MemberByUserid находит участника по локальному логину.
func (s *Storage) MemberByUserid(ctx context.Context, userid string) (*models.Member, error) {
	const op = "storage.postgres.MemberByUserid"

	query := `SELECT ` + memberColumns + ` FROM members WHERE userid = $1`

	m, err := scanMember(s.db.QueryRow(ctx, query, userid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// MemberByNickname находит участника по нику.
func (s *Storage) MemberByNickname(ctx context.Context, nickname string) (*models.Member, error) {
	const op = "storage.postgres.MemberByNickname"

	query := `SELECT ` + memberColumns + ` FROM members WHERE nickname = $1`

	m, err := scanMember(s.db.QueryRow(ctx, query, nickname))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// MemberBySubject находит участника по subject токена
// ("<provider>:<provider_id>"). Поиск идёт по паре (provider, provider_id):
// одинаковые provider_id у разных провайдеров не смешиваются.
func (s *Storage) MemberBySubject(ctx context.Context, subject string) (*models.Member, error) {
	const op = "storage.postgres.MemberBySubject"

	provider, providerID, ok := models.SplitSubject(subject)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	query := `SELECT ` + memberColumns + ` FROM members WHERE provider = $1 AND provider_id = $2`

	m, err := scanMember(s.db.QueryRow(ctx, query, provider, providerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// MemberByProvider находит участника по паре (provider, provider_id).
func (s *Storage) MemberByProvider(ctx context.Context, provider, providerID string) (*models.Member, error) {
	const op = "storage.postgres.MemberByProvider"

	query := `SELECT ` + memberColumns + ` FROM members WHERE provider = $1 AND provider_id = $2`

	m, err := scanMember(s.db.QueryRow(ctx, query, provider, providerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// UpdateOAuthProfile обновляет изменяемые поля профиля при повторном
// федеративном входе.
func (s *Storage) UpdateOAuthProfile(ctx context.Context, idx int64, avatarURL string) error {
	const op = "storage.postgres.UpdateOAuthProfile"

	query := `
		UPDATE members
		SET avatar_url = $2, updated_at = now()
		WHERE idx = $1
	`

	cmdTag, err := s.db.Exec(ctx, query, idx, avatarURL)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// UpdateNickname меняет ник.
func (s *Storage) UpdateNickname(ctx context.Context, idx int64, nickname string) error {
	const op = "storage.postgres.UpdateNickname"

	query := `
		UPDATE members
		SET nickname = $2, updated_at = now()
		WHERE idx = $1
	`

	cmdTag, err := s.db.Exec(ctx, query, idx, nickname)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// UpdateBirth меняет дату рождения.
func (s *Storage) UpdateBirth(ctx context.Context, idx int64, birth time.Time) error {
	const op = "storage.postgres.UpdateBirth"

	query := `
		UPDATE members
		SET birth = $2, updated_at = now()
		WHERE idx = $1
	`

	cmdTag, err := s.db.Exec(ctx, query, idx, birth)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// UpdatePasswordHash меняет bcrypt-хэш пароля.
func (s *Storage) UpdatePasswordHash(ctx context.Context, idx int64, hash string) error {
	const op = "storage.postgres.UpdatePasswordHash"

	query := `
		UPDATE members
		SET password_hash = $2, updated_at = now()
		WHERE idx = $1
	`

	cmdTag, err := s.db.Exec(ctx, query, idx, hash)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// UpdateAvatar меняет ссылку на изображение профиля.
func (s *Storage) UpdateAvatar(ctx context.Context, idx int64, avatarURL string) error {
	const op = "storage.postgres.UpdateAvatar"

	query := `
		UPDATE members
		SET avatar_url = $2, updated_at = now()
		WHERE idx = $1
	`

	cmdTag, err := s.db.Exec(ctx, query, idx, avatarURL)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
