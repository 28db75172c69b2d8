package samples

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

// validateSample проверяет обязательные поля сборки.
func validateSample(sm *models.PokeSample) error {
	if sm.PokemonIdx <= 0 || strings.TrimSpace(sm.PokemonName) == "" {
		return ErrInvalidArgument
	}

	if sm.Visibility != models.SamplePublic && sm.Visibility != models.SamplePrivate {
		return ErrInvalidArgument
	}

	return nil
}

// Create публикует сборку от имени участника.
func (s *Service) Create(ctx context.Context, p *models.Principal, sm *models.PokeSample) (*models.PokeSample, error) {
	const op = "service.samples.Create"

	lg := log.From(ctx)

	if err := validateSample(sm); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m, err := s.memberBySubject(ctx, p.Subject)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	sm.MemberIdx = m.Idx
	sm.AuthorNickname = m.Nickname
	sm.CreatedAt = now
	sm.UpdatedAt = now

	idx, err := s.storage.SaveSample(ctx, sm)
	if err != nil {
		lg.Error("save_sample_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sm.Idx = idx

	return sm, nil
}

// Get возвращает сборку и увеличивает счётчик просмотров.
// Приватная сборка видна только владельцу; p может быть nil (аноним).
func (s *Service) Get(ctx context.Context, p *models.Principal, idx int64) (*models.PokeSample, error) {
	const op = "service.samples.Get"

	sm, err := s.storage.SampleByIdx(ctx, idx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if sm.Visibility == models.SamplePrivate {
		if p == nil {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		m, err := s.memberBySubject(ctx, p.Subject)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		// Чужая приватная сборка неотличима от несуществующей.
		if sm.MemberIdx != m.Idx {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
	}

	// Счётчик просмотров правится best-effort, ошибка не роняет чтение.
	if err := s.storage.IncrementSampleHit(ctx, idx); err != nil {
		log.From(ctx).Warn("sample_hit_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	} else {
		sm.Hit++
	}

	return sm, nil
}

// List возвращает страницу публичных сборок; nameQuery фильтрует по имени
// покемона (подстрока, без учёта регистра).
func (s *Service) List(ctx context.Context, nameQuery string, p models.ListParams) (*models.SamplePage, error) {
	const op = "service.samples.List"

	page, err := s.storage.ListSamples(ctx, strings.TrimSpace(nameQuery), s.clampParams(p))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// Mine возвращает страницу сборок участника, включая приватные.
func (s *Service) Mine(ctx context.Context, p *models.Principal, params models.ListParams) (*models.SamplePage, error) {
	const op = "service.samples.Mine"

	m, err := s.memberBySubject(ctx, p.Subject)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page, err := s.storage.ListSamplesByMember(ctx, m.Idx, s.clampParams(params))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// Liked возвращает страницу публичных сборок, отмеченных участником.
func (s *Service) Liked(ctx context.Context, p *models.Principal, params models.ListParams) (*models.SamplePage, error) {
	const op = "service.samples.Liked"

	m, err := s.memberBySubject(ctx, p.Subject)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page, err := s.storage.ListLikedSamples(ctx, m.Idx, s.clampParams(params))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// Best возвращает топ публичных сборок по лайкам.
func (s *Service) Best(ctx context.Context) ([]models.PokeSample, error) {
	const op = "service.samples.Best"

	items, err := s.storage.BestSamples(ctx, bestLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// Update правит изменяемые поля сборки. Доступно владельцу.
func (s *Service) Update(ctx context.Context, p *models.Principal, sm *models.PokeSample) error {
	const op = "service.samples.Update"

	if sm.Visibility != models.SamplePublic && sm.Visibility != models.SamplePrivate {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.requireOwnership(ctx, p, sm.Idx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateSample(ctx, sm); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Delete помечает сборку удалённой. Доступно владельцу и администратору.
func (s *Service) Delete(ctx context.Context, p *models.Principal, idx int64) error {
	const op = "service.samples.Delete"

	if !p.HasRole(models.RoleAdmin) {
		if err := s.requireOwnership(ctx, p, idx); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := s.storage.SoftDeleteSample(ctx, idx); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Like переключает лайк участника.
// Возвращает итоговое состояние (true — лайк поставлен).
func (s *Service) Like(ctx context.Context, p *models.Principal, idx int64) (bool, error) {
	const op = "service.samples.Like"

	m, err := s.memberBySubject(ctx, p.Subject)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	liked, err := s.storage.ToggleLike(ctx, idx, m.Idx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return liked, nil
}

// requireOwnership проверяет, что сборка принадлежит участнику.
func (s *Service) requireOwnership(ctx context.Context, p *models.Principal, idx int64) error {
	sm, err := s.storage.SampleByIdx(ctx, idx)
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

	if sm.MemberIdx != m.Idx {
		return ErrPermissionDenied
	}

	return nil
}
