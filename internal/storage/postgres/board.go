package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/storage"
)

// SaveBoard создаёт пост и возвращает его idx.
func (s *Storage) SaveBoard(ctx context.Context, b *models.Board) (int64, error) {
	const op = "storage.postgres.SaveBoard"

	query := `
		INSERT INTO boards(member_idx, board_type, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING idx
	`

	var idx int64
	err := s.db.QueryRow(ctx, query,
		b.MemberIdx,
		b.Type,
		b.Title,
		b.Content,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&idx)

	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return idx, nil
}

// BoardByIdx возвращает пост с ником автора. Удалённые посты не видны.
func (s *Storage) BoardByIdx(ctx context.Context, idx int64) (*models.Board, error) {
	const op = "storage.postgres.BoardByIdx"

	query := `
		SELECT b.idx, b.member_idx, m.nickname, b.board_type, b.title, b.content,
			b.hit, b.recommend, b.is_deleted, b.created_at, b.updated_at
		FROM boards b
		JOIN members m ON m.idx = b.member_idx
		WHERE b.idx = $1 AND NOT b.is_deleted
	`

	var b models.Board
	err := s.db.QueryRow(ctx, query, idx).Scan(
		&b.Idx,
		&b.MemberIdx,
		&b.AuthorNickname,
		&b.Type,
		&b.Title,
		&b.Content,
		&b.Hit,
		&b.Recommend,
		&b.IsDeleted,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &b, nil
}

// ListBoards возвращает страницу постов раздела, новые первыми.
func (s *Storage) ListBoards(ctx context.Context, t models.BoardType, p models.ListParams) (*models.BoardPage, error) {
	const op = "storage.postgres.ListBoards"

	query := `
		SELECT b.idx, b.member_idx, m.nickname, b.board_type, b.title, b.content,
			b.hit, b.recommend, b.is_deleted, b.created_at, b.updated_at,
			count(*) OVER() AS total
		FROM boards b
		JOIN members m ON m.idx = b.member_idx
		WHERE b.board_type = $1 AND NOT b.is_deleted
		ORDER BY b.idx DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.Query(ctx, query, t, p.Size, int64(p.Page)*int64(p.Size))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	page := &models.BoardPage{}
	for rows.Next() {
		var b models.Board
		if err := rows.Scan(
			&b.Idx,
			&b.MemberIdx,
			&b.AuthorNickname,
			&b.Type,
			&b.Title,
			&b.Content,
			&b.Hit,
			&b.Recommend,
			&b.IsDeleted,
			&b.CreatedAt,
			&b.UpdatedAt,
			&page.TotalCount,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		page.Items = append(page.Items, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// UpdateBoard меняет заголовок и текст поста.
func (s *Storage) UpdateBoard(ctx context.Context, idx int64, title, content string) error {
	const op = "storage.postgres.UpdateBoard"

	query := `
		UPDATE boards
		SET title = $2, content = $3, updated_at = now()
		WHERE idx = $1 AND NOT is_deleted
	`

	cmdTag, err := s.db.Exec(ctx, query, idx, title, content)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// SoftDeleteBoard помечает пост удалённым.
func (s *Storage) SoftDeleteBoard(ctx context.Context, idx int64) error {
	const op = "storage.postgres.SoftDeleteBoard"

	query := `
		UPDATE boards
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

// SoftDeleteBoards помечает удалёнными сразу несколько постов (админ-операция).
func (s *Storage) SoftDeleteBoards(ctx context.Context, idxs []int64) error {
	const op = "storage.postgres.SoftDeleteBoards"

	query := `
		UPDATE boards
		SET is_deleted = TRUE, updated_at = now()
		WHERE idx = ANY($1) AND NOT is_deleted
	`

	if _, err := s.db.Exec(ctx, query, idxs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// IncrementBoardHit увеличивает счётчик просмотров.
func (s *Storage) IncrementBoardHit(ctx context.Context, idx int64) error {
	const op = "storage.postgres.IncrementBoardHit"

	query := `UPDATE boards SET hit = hit + 1 WHERE idx = $1`

	if _, err := s.db.Exec(ctx, query, idx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ToggleRecommend переключает рекомендацию участника в транзакции:
// вставка/удаление строки в board_recommends и согласованная правка счётчика.
func (s *Storage) ToggleRecommend(ctx context.Context, boardIdx, memberIdx int64) (bool, error) {
	const op = "storage.postgres.ToggleRecommend"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const del = `
		DELETE FROM board_recommends
		WHERE board_idx = $1 AND member_idx = $2
	`

	cmdTag, err := tx.Exec(ctx, del, boardIdx, memberIdx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	recommended := false
	if cmdTag.RowsAffected() == 0 {
		const ins = `
			INSERT INTO board_recommends(board_idx, member_idx, created_at)
			VALUES ($1, $2, now())
		`
		if _, err := tx.Exec(ctx, ins, boardIdx, memberIdx); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		recommended = true
	}

	const upd = `
		UPDATE boards
		SET recommend = GREATEST(recommend + $2, 0)
		WHERE idx = $1 AND NOT is_deleted
	`

	delta := int64(-1)
	if recommended {
		delta = 1
	}

	updTag, err := tx.Exec(ctx, upd, boardIdx, delta)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if updTag.RowsAffected() == 0 {
		return false, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return recommended, nil
}
