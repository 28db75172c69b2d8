package boards

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/pkg/log"
	"github.com/mclhub/poke-board/internal/storage"
)

// maxTitleLen — ограничение длины заголовка поста.
const maxTitleLen = 200

// memberBySubject разрешает subject токена в аккаунт.
func (s *Service) memberBySubject(ctx context.Context, subject string) (*models.Member, error) {
	m, err := s.storage.MemberBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMemberNotFound
		}

		return nil, err
	}

	return m, nil
}

// clampParams приводит параметры страницы к допустимым границам.
func (s *Service) clampParams(p models.ListParams) models.ListParams {
	if p.Page < 0 {
		p.Page = 0
	}

	if p.Size <= 0 {
		p.Size = s.limits.DefaultPageSize
	}

	if p.Size > s.limits.MaxPageSize {
		p.Size = s.limits.MaxPageSize
	}

	return p
}

// Create создаёт пост. Раздел notice доступен только администратору.
func (s *Service) Create(ctx context.Context, p *models.Principal, t models.BoardType, title, content string) (*models.Board, error) {
	const op = "service.boards.Create"

	lg := log.From(ctx)

	title = strings.TrimSpace(title)
	if !t.Valid() || title == "" || len([]rune(title)) > maxTitleLen || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if t == models.BoardNotice && !p.HasRole(models.RoleAdmin) {
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	m, err := s.memberBySubject(ctx, p.Subject)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	b := &models.Board{
		MemberIdx:      m.Idx,
		AuthorNickname: m.Nickname,
		Type:           t,
		Title:          title,
		Content:        content,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	idx, err := s.storage.SaveBoard(ctx, b)
	if err != nil {
		lg.Error("save_board_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	b.Idx = idx

	return b, nil
}

// Get возвращает пост и увеличивает счётчик просмотров.
func (s *Service) Get(ctx context.Context, idx int64) (*models.Board, error) {
	const op = "service.boards.Get"

	b, err := s.storage.BoardByIdx(ctx, idx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Счётчик просмотров правится best-effort, ошибка не роняет чтение.
	if err := s.storage.IncrementBoardHit(ctx, idx); err != nil {
		log.From(ctx).Warn("board_hit_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	} else {
		b.Hit++
	}

	return b, nil
}

// List возвращает страницу постов раздела.
func (s *Service) List(ctx context.Context, t models.BoardType, p models.ListParams) (*models.BoardPage, error) {
	const op = "service.boards.List"

	if !t.Valid() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	page, err := s.storage.ListBoards(ctx, t, s.clampParams(p))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// Update правит заголовок и текст поста. Доступно владельцу.
func (s *Service) Update(ctx context.Context, p *models.Principal, idx int64, title, content string) error {
	const op = "service.boards.Update"

	title = strings.TrimSpace(title)
	if title == "" || len([]rune(title)) > maxTitleLen || strings.TrimSpace(content) == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.requireOwnership(ctx, p, idx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateBoard(ctx, idx, title, content); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Delete помечает пост удалённым. Доступно владельцу и администратору.
func (s *Service) Delete(ctx context.Context, p *models.Principal, idx int64) error {
	const op = "service.boards.Delete"

	if !p.HasRole(models.RoleAdmin) {
		if err := s.requireOwnership(ctx, p, idx); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := s.storage.SoftDeleteBoard(ctx, idx); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteBatch помечает удалёнными несколько постов. Только администратор.
func (s *Service) DeleteBatch(ctx context.Context, p *models.Principal, idxs []int64) error {
	const op = "service.boards.DeleteBatch"

	if !p.HasRole(models.RoleAdmin) {
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	if len(idxs) == 0 {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.SoftDeleteBoards(ctx, idxs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Recommend переключает рекомендацию участника.
// Возвращает итоговое состояние (true — рекомендация поставлена).
func (s *Service) Recommend(ctx context.Context, p *models.Principal, idx int64) (bool, error) {
	const op = "service.boards.Recommend"

	m, err := s.memberBySubject(ctx, p.Subject)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	recommended, err := s.storage.ToggleRecommend(ctx, idx, m.Idx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return recommended, nil
}

// requireOwnership проверяет, что пост принадлежит участнику.
func (s *Service) requireOwnership(ctx context.Context, p *models.Principal, idx int64) error {
	b, err := s.storage.BoardByIdx(ctx, idx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}

		return err
	}

	m, err := s.memberBySubject(ctx, p.Subject)
	if err != nil {
		return err
	}

	if b.MemberIdx != m.Idx {
		return ErrPermissionDenied
	}

	return nil
}
