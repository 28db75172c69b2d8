package comments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/pkg/log"
	"github.com/mclhub/poke-board/internal/storage"
)

// maxContentLen — ограничение длины текста комментария.
const maxContentLen = 2000

// memberBySubject разрешает subject токена в аккаунт.
func (s *Service) memberBySubject(ctx context.Context, subject string) (*models.Member, error) {
	m, err := s.rel.MemberBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMemberNotFound
		}

		return nil, err
	}

	return m, nil
}

// targetExists проверяет, что цель комментария существует и не удалена.
func (s *Service) targetExists(ctx context.Context, kind models.CommentTarget, targetIdx int64) error {
	var err error
	switch kind {
	case models.CommentTargetBoard:
		_, err = s.rel.BoardByIdx(ctx, targetIdx)
	case models.CommentTargetSample:
		_, err = s.rel.SampleByIdx(ctx, targetIdx)
	default:
		return ErrInvalidArgument
	}

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}

		return err
	}

	return nil
}

// Create создаёт корневой комментарий или ответ.
// У корня проверяется существование цели; у ответа цель перенимается
// от родителя в хранилище.
func (s *Service) Create(ctx context.Context, p *models.Principal, c models.Comment) (*models.Comment, error) {
	const op = "service.comments.Create"

	lg := log.From(ctx)

	c.Content = strings.TrimSpace(c.Content)
	if c.Content == "" || len([]rune(c.Content)) > maxContentLen {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if strings.TrimSpace(c.ParentID) == "" {
		if err := s.targetExists(ctx, c.TargetKind, c.TargetIdx); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	m, err := s.memberBySubject(ctx, p.Subject)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.MemberIdx = m.Idx
	c.Nickname = m.Nickname

	created, err := s.comments.CreateComment(ctx, c)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrParentNotFound):
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrMaxDepthExceeded):
			return nil, fmt.Errorf("%s: %w", op, ErrMaxDepthExceeded)
		}

		lg.Error("create_comment_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// Update правит текст комментария. Доступно автору.
func (s *Service) Update(ctx context.Context, p *models.Principal, id, content string) error {
	const op = "service.comments.Update"

	content = strings.TrimSpace(content)
	if content == "" || len([]rune(content)) > maxContentLen {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.requireAuthorship(ctx, p, id, false); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.comments.UpdateContent(ctx, id, content); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Delete выполняет мягкое удаление. Доступно автору и администратору.
func (s *Service) Delete(ctx context.Context, p *models.Principal, id string) error {
	const op = "service.comments.Delete"

	if err := s.requireAuthorship(ctx, p, id, p.HasRole(models.RoleAdmin)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.comments.DeleteComment(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListRoots возвращает страницу корневых комментариев цели.
// Удалённые комментарии остаются в выдаче с замаскированным текстом,
// чтобы ветки ответов не осиротели.
func (s *Service) ListRoots(ctx context.Context, kind models.CommentTarget, targetIdx int64, params models.CommentListParams) (*models.CommentPage, error) {
	const op = "service.comments.ListRoots"

	if kind != models.CommentTargetBoard && kind != models.CommentTargetSample {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	page, err := s.comments.ListRoots(ctx, kind, targetIdx, params)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidCursor) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// ListReplies возвращает страницу ответов ветки.
func (s *Service) ListReplies(ctx context.Context, parentID string, params models.CommentListParams) (*models.CommentPage, error) {
	const op = "service.comments.ListReplies"

	page, err := s.comments.ListReplies(ctx, parentID, params)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrInvalidCursor):
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// requireAuthorship проверяет, что комментарий написан участником.
// skipOwner=true пропускает проверку владения (администратор), но
// по-прежнему требует существования комментария.
func (s *Service) requireAuthorship(ctx context.Context, p *models.Principal, id string, skipOwner bool) error {
	c, err := s.comments.CommentByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}

		return err
	}

	if c.IsDeleted {
		return ErrNotFound
	}

	if skipOwner {
		return nil
	}

	m, err := s.memberBySubject(ctx, p.Subject)
	if err != nil {
		return err
	}

	if c.MemberIdx != m.Idx {
		return ErrPermissionDenied
	}

	return nil
}
