package members

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/pkg/log"
	"github.com/mclhub/poke-board/internal/service/auth"
	"github.com/mclhub/poke-board/internal/storage"
)

// maxNicknameLen — ограничение длины ника.
const maxNicknameLen = 30

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

// Profile возвращает профиль участника.
func (s *Service) Profile(ctx context.Context, p *models.Principal) (*models.Member, error) {
	const op = "service.members.Profile"

	m, err := s.memberBySubject(ctx, p.Subject)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// UpdateNickname меняет отображаемое имя.
func (s *Service) UpdateNickname(ctx context.Context, p *models.Principal, nickname string) error {
	const op = "service.members.UpdateNickname"

	nickname = strings.TrimSpace(nickname)
	if nickname == "" || len([]rune(nickname)) > maxNicknameLen {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	m, err := s.memberBySubject(ctx, p.Subject)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateNickname(ctx, m.Idx, nickname); err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			return fmt.Errorf("%s: %w", op, ErrNicknameTaken)
		case errors.Is(err, storage.ErrNotFound):
			return fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdateBirth меняет дату рождения.
func (s *Service) UpdateBirth(ctx context.Context, p *models.Principal, birth time.Time) error {
	const op = "service.members.UpdateBirth"

	if birth.IsZero() || birth.After(time.Now().UTC()) {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	m, err := s.memberBySubject(ctx, p.Subject)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateBirth(ctx, m.Idx, birth); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ChangePassword меняет пароль локального аккаунта после проверки текущего.
func (s *Service) ChangePassword(ctx context.Context, p *models.Principal, current, next string) error {
	const op = "service.members.ChangePassword"

	lg := log.From(ctx)

	m, err := s.memberBySubject(ctx, p.Subject)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if m.Provider != models.ProviderLocal {
		return fmt.Errorf("%s: %w", op, ErrLocalOnly)
	}

	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(current)) != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := auth.ValidatePassword(next); err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdatePasswordHash(ctx, m.Idx, string(hash)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}

		lg.Error("update_password_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// AvatarUploadURL генерирует presigned PUT URL для загрузки аватара.
func (s *Service) AvatarUploadURL(ctx context.Context, p *models.Principal, contentType string, contentLength int64) (*storage.UploadInfo, error) {
	const op = "service.members.AvatarUploadURL"

	if s.uploads == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	m, err := s.memberBySubject(ctx, p.Subject)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	info, err := s.uploads.UploadURL(ctx, avatarKind, m.Idx, contentType, contentLength)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidArgument) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return info, nil
}

// ConfirmAvatar подтверждает загрузку по key и фиксирует публичный URL
// в профиле. Возвращает итоговую ссылку.
func (s *Service) ConfirmAvatar(ctx context.Context, p *models.Principal, key string) (string, error) {
	const op = "service.members.ConfirmAvatar"

	if s.uploads == nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	m, err := s.memberBySubject(ctx, p.Subject)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	publicURL, err := s.uploads.CheckUpload(ctx, avatarKind, m.Idx, key)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundUpload):
			return "", fmt.Errorf("%s: %w", op, ErrUploadNotFound)
		case errors.Is(err, storage.ErrInvalidArgument):
			return "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if publicURL == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.UpdateAvatar(ctx, m.Idx, publicURL); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return publicURL, nil
}
