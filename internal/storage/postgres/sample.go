package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/storage"
)

const sampleColumns = `
	s.idx, s.member_idx, m.nickname, s.pokemon_idx, s.pokemon_name,
	s.tera_type, s.item, s.nature, s.ability, s.ivs, s.evs,
	s.move1, s.move2, s.move3, s.move4, s.description, s.visibility,
	s.like_count, s.hit, s.is_deleted, s.created_at, s.updated_at
`

func scanSample(row pgx.Row) (*models.PokeSample, error) {
	var sm models.PokeSample
	err := row.Scan(
		&sm.Idx,
		&sm.MemberIdx,
		&sm.AuthorNickname,
		&sm.PokemonIdx,
		&sm.PokemonName,
		&sm.TeraType,
		&sm.Item,
		&sm.Nature,
		&sm.Ability,
		&sm.IVs,
		&sm.EVs,
		&sm.Moves[0],
		&sm.Moves[1],
		&sm.Moves[2],
		&sm.Moves[3],
		&sm.Description,
		&sm.Visibility,
		&sm.LikeCount,
		&sm.Hit,
		&sm.IsDeleted,
		&sm.CreatedAt,
		&sm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &sm, nil
}

// SaveSample создаёт сборку и возвращает её idx.
func (s *Storage) SaveSample(ctx context.Context, sm *models.PokeSample) (int64, error) {
	const op = "storage.postgres.SaveSample"

	query := `
		INSERT INTO poke_samples(member_idx, pokemon_idx, pokemon_name,
			tera_type, item, nature, ability, ivs, evs,
			move1, move2, move3, move4, description, visibility,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING idx
	`

	var idx int64
	err := s.db.QueryRow(ctx, query,
		sm.MemberIdx,
		sm.PokemonIdx,
		sm.PokemonName,
		sm.TeraType,
		sm.Item,
		sm.Nature,
		sm.Ability,
		sm.IVs,
		sm.EVs,
		sm.Moves[0],
		sm.Moves[1],
		sm.Moves[2],
		sm.Moves[3],
		sm.Description,
		sm.Visibility,
		sm.CreatedAt,
		sm.UpdatedAt,
	).Scan(&idx)

	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return idx, nil
}

// SampleByIdx возвращает сборку с ником автора. Удалённые не видны.
func (s *Storage) SampleByIdx(ctx context.Context, idx int64) (*models.PokeSample, error) {
	const op = "storage.postgres.SampleByIdx"

	query := `
		SELECT ` + sampleColumns + `
		FROM poke_samples s
		JOIN members m ON m.idx = s.member_idx
		WHERE s.idx = $1 AND NOT s.is_deleted
	`

	sm, err := scanSample(s.db.QueryRow(ctx, query, idx))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sm, nil
}

// listSamples — общий исполнитель страничных выборок сборок.
func (s *Storage) listSamples(ctx context.Context, op, query string, args ...any) (*models.SamplePage, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	page := &models.SamplePage{}
	for rows.Next() {
		var sm models.PokeSample
		if err := rows.Scan(
			&sm.Idx,
			&sm.MemberIdx,
			&sm.AuthorNickname,
			&sm.PokemonIdx,
			&sm.PokemonName,
			&sm.TeraType,
			&sm.Item,
			&sm.Nature,
			&sm.Ability,
			&sm.IVs,
			&sm.EVs,
			&sm.Moves[0],
			&sm.Moves[1],
			&sm.Moves[2],
			&sm.Moves[3],
			&sm.Description,
			&sm.Visibility,
			&sm.LikeCount,
			&sm.Hit,
			&sm.IsDeleted,
			&sm.CreatedAt,
			&sm.UpdatedAt,
			&page.TotalCount,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		page.Items = append(page.Items, sm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// ListSamples — публичные сборки, опциональный поиск по имени покемона.
func (s *Storage) ListSamples(ctx context.Context, nameQuery string, p models.ListParams) (*models.SamplePage, error) {
	const op = "storage.postgres.ListSamples"

	query := `
		SELECT ` + sampleColumns + `, count(*) OVER() AS total
		FROM poke_samples s
		JOIN members m ON m.idx = s.member_idx
		WHERE NOT s.is_deleted AND s.visibility = 'PUBLIC'
			AND ($1 = '' OR s.pokemon_name ILIKE '%' || $1 || '%')
		ORDER BY s.idx DESC
		LIMIT $2 OFFSET $3
	`

	return s.listSamples(ctx, op, query, nameQuery, p.Size, int64(p.Page)*int64(p.Size))
}

// ListSamplesByMember — сборки автора, включая приватные.
func (s *Storage) ListSamplesByMember(ctx context.Context, memberIdx int64, p models.ListParams) (*models.SamplePage, error) {
	const op = "storage.postgres.ListSamplesByMember"

	query := `
		SELECT ` + sampleColumns + `, count(*) OVER() AS total
		FROM poke_samples s
		JOIN members m ON m.idx = s.member_idx
		WHERE NOT s.is_deleted AND s.member_idx = $1
		ORDER BY s.idx DESC
		LIMIT $2 OFFSET $3
	`

	return s.listSamples(ctx, op, query, memberIdx, p.Size, int64(p.Page)*int64(p.Size))
}

// ListLikedSamples — публичные сборки, отмеченные участником.
func (s *Storage) ListLikedSamples(ctx context.Context, memberIdx int64, p models.ListParams) (*models.SamplePage, error) {
	const op = "storage.postgres.ListLikedSamples"

	query := `
		SELECT ` + sampleColumns + `, count(*) OVER() AS total
		FROM poke_samples s
		JOIN members m ON m.idx = s.member_idx
		JOIN sample_likes l ON l.sample_idx = s.idx AND l.member_idx = $1
		WHERE NOT s.is_deleted AND s.visibility = 'PUBLIC'
		ORDER BY l.created_at DESC
		LIMIT $2 OFFSET $3
	`

	return s.listSamples(ctx, op, query, memberIdx, p.Size, int64(p.Page)*int64(p.Size))
}

// BestSamples — топ публичных сборок по лайкам.
func (s *Storage) BestSamples(ctx context.Context, limit int32) ([]models.PokeSample, error) {
	const op = "storage.postgres.BestSamples"

	query := `
		SELECT ` + sampleColumns + `, count(*) OVER() AS total
		FROM poke_samples s
		JOIN members m ON m.idx = s.member_idx
		WHERE NOT s.is_deleted AND s.visibility = 'PUBLIC'
		ORDER BY s.like_count DESC, s.idx DESC
		LIMIT $1
	`

	page, err := s.listSamples(ctx, op, query, limit)
	if err != nil {
		return nil, err
	}

	return page.Items, nil
}

// UpdateSample меняет изменяемые поля сборки.
func (s *Storage) UpdateSample(ctx context.Context, sm *models.PokeSample) error {
	const op = "storage.postgres.UpdateSample"

	query := `
		UPDATE poke_samples
		SET tera_type = $2, item = $3, nature = $4, ability = $5,
			ivs = $6, evs = $7, move1 = $8, move2 = $9, move3 = $10, move4 = $11,
			description = $12, visibility = $13, updated_at = now()
		WHERE idx = $1 AND NOT is_deleted
	`

	cmdTag, err := s.db.Exec(ctx, query,
		sm.Idx,
		sm.TeraType,
		sm.Item,
		sm.Nature,
		sm.Ability,
		sm.IVs,
		sm.EVs,
		sm.Moves[0],
		sm.Moves[1],
		sm.Moves[2],
		sm.Moves[3],
		sm.Description,
		sm.Visibility,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// SoftDeleteSample помечает сборку удалённой.
func (s *Storage) SoftDeleteSample(ctx context.Context, idx int64) error {
	const op = "storage.postgres.SoftDeleteSample"

	query := `
		UPDATE poke_samples
		SET is_deleted = TRUE, updated_at = now()
		WHERE idx = $1 AND NOT is_deleted
	`

	cmdTag, err := s.db.Exec(ctx, query, idx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// IncrementSampleHit увеличивает счётчик просмотров сборки.
func (s *Storage) IncrementSampleHit(ctx context.Context, idx int64) error {
	const op = "storage.postgres.IncrementSampleHit"

	query := `UPDATE poke_samples SET hit = hit + 1 WHERE idx = $1`

	if _, err := s.db.Exec(ctx, query, idx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ToggleLike переключает лайк участника в транзакции и правит кэш-счётчик.
func (s *Storage) ToggleLike(ctx context.Context, sampleIdx, memberIdx int64) (bool, error) {
	const op = "storage.postgres.ToggleLike"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const del = `
		DELETE FROM sample_likes
		WHERE sample_idx = $1 AND member_idx = $2
	`

	cmdTag, err := tx.Exec(ctx, del, sampleIdx, memberIdx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	liked := false
	if cmdTag.RowsAffected() == 0 {
		const ins = `
			INSERT INTO sample_likes(sample_idx, member_idx, created_at)
			VALUES ($1, $2, now())
		`
		if _, err := tx.Exec(ctx, ins, sampleIdx, memberIdx); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		liked = true
	}

	const upd = `
		UPDATE poke_samples
		SET like_count = GREATEST(like_count + $2, 0)
		WHERE idx = $1 AND NOT is_deleted
	`

	delta := int64(-1)
	if liked {
		delta = 1
	}

	updTag, err := tx.Exec(ctx, upd, sampleIdx, delta)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if updTag.RowsAffected() == 0 {
		return false, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return liked, nil
}
