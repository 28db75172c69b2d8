package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/pkg/log"
	"github.com/mclhub/poke-board/internal/storage"
)

// defaultGrade — стартовый уровень привилегий нового аккаунта.
const defaultGrade = 1

// ExternalIdentity — профиль, полученный от OAuth2-провайдера.
type ExternalIdentity struct {
	// Provider — тег провайдера ("kakao", "naver").
	Provider string
	// ProviderID — идентификатор аккаунта на стороне провайдера.
	ProviderID string
	// Nickname — отображаемое имя из профиля провайдера.
	Nickname string
	// AvatarURL — ссылка на изображение профиля (может быть пустой).
	AvatarURL string
}

// SignUp регистрирует локальный аккаунт. ProviderID совпадает с userid,
// поэтому subject токена разрешается единообразно для обоих путей входа.
func (s *Service) SignUp(ctx context.Context, userid, password, nickname string, birth *time.Time) (*models.Member, error) {
	const op = "service.auth.SignUp"

	lg := log.From(ctx)

	userid = strings.TrimSpace(userid)
	nickname = strings.TrimSpace(nickname)

	if userid == "" || nickname == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Предварительные проверки ради точного сентинела; гонка закрывается
	// уникальными индексами при вставке.
	if _, err := s.storage.MemberByUserid(ctx, userid); err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUseridTaken)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.storage.MemberByNickname(ctx, nickname); err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNicknameTaken)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	m := &models.Member{
		Userid:       userid,
		PasswordHash: hash,
		Nickname:     nickname,
		Birth:        birth,
		Grade:        defaultGrade,
		Provider:     models.ProviderLocal,
		ProviderID:   userid,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	idx, err := s.storage.SaveMember(ctx, m)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrUseridTaken)
		}

		lg.Error("save_member_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	m.Idx = idx

	return m, nil
}

// Login выполняет вход по локальной паре userid+пароль.
func (s *Service) Login(ctx context.Context, userid, password string) (*models.Member, error) {
	const op = "service.auth.Login"

	userid = strings.TrimSpace(userid)
	if userid == "" || password == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	m, err := s.storage.MemberByUserid(ctx, userid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Социальные аккаунты не имеют пароля и не входят локально.
	if m.Provider != models.ProviderLocal || !checkPassword(m.PasswordHash, password) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return m, nil
}

// UseridAvailable сообщает, свободен ли локальный логин.
func (s *Service) UseridAvailable(ctx context.Context, userid string) (bool, error) {
	const op = "service.auth.UseridAvailable"

	userid = strings.TrimSpace(userid)
	if userid == "" {
		return false, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	_, err := s.storage.MemberByUserid(ctx, userid)
	if err == nil {
		return false, nil
	}

	if errors.Is(err, storage.ErrNotFound) {
		return true, nil
	}

	return false, fmt.Errorf("%s: %w", op, err)
}

// NicknameAvailable сообщает, свободен ли ник.
func (s *Service) NicknameAvailable(ctx context.Context, nickname string) (bool, error) {
	const op = "service.auth.NicknameAvailable"

	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return false, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	_, err := s.storage.MemberByNickname(ctx, nickname)
	if err == nil {
		return false, nil
	}

	if errors.Is(err, storage.ErrNotFound) {
		return true, nil
	}

	return false, fmt.Errorf("%s: %w", op, err)
}

// ResolveOrCreate находит аккаунт по паре (provider, provider_id) либо
// создаёт новый. Повторный вход обновляет изменяемые поля профиля.
// Операция идемпотентна: конкурентное создание закрывается уникальным
// индексом с повторным чтением после конфликта.
func (s *Service) ResolveOrCreate(ctx context.Context, ident ExternalIdentity) (*models.Member, error) {
	const op = "service.auth.ResolveOrCreate"

	lg := log.From(ctx)

	if ident.Provider == "" || ident.ProviderID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	m, err := s.storage.MemberByProvider(ctx, ident.Provider, ident.ProviderID)
	if err == nil {
		if ident.AvatarURL != "" && ident.AvatarURL != m.AvatarURL {
			if err := s.storage.UpdateOAuthProfile(ctx, m.Idx, ident.AvatarURL); err != nil {
				lg.Warn("oauth_profile_update_failed",
					slog.String("op", op),
					slog.String("err", err.Error()),
				)
			} else {
				m.AvatarURL = ident.AvatarURL
			}
		}

		return m, nil
	}

	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	const maxAttempts = 5

	nickname := strings.TrimSpace(ident.Nickname)
	if nickname == "" {
		nickname = ident.Provider
	}

	now := time.Now().UTC()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := nickname
		if attempt > 0 {
			suffix, err := randomSuffix()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			candidate = nickname + "-" + suffix
		}

		m := &models.Member{
			Userid:     ident.Provider + "_" + ident.ProviderID,
			Nickname:   candidate,
			AvatarURL:  ident.AvatarURL,
			Grade:      defaultGrade,
			Provider:   ident.Provider,
			ProviderID: ident.ProviderID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		idx, err := s.storage.SaveMember(ctx, m)
		if err == nil {
			m.Idx = idx
			return m, nil
		}

		if !errors.Is(err, storage.ErrAlreadyExists) {
			lg.Error("save_member_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		// Конфликт: либо аккаунт создан конкурентно, либо занят ник.
		if existing, err := s.storage.MemberByProvider(ctx, ident.Provider, ident.ProviderID); err == nil {
			return existing, nil
		} else if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil, fmt.Errorf("%s: %w", op, ErrNicknameTaken)
}

// randomSuffix — короткий случайный суффикс для разрешения конфликтов ника.
func randomSuffix() (string, error) {
	b := make([]byte, 7)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "service.auth.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword проверяет минимальные требования к паролю:
// длина >= 8, хотя бы одна буква и одна цифра.
func ValidatePassword(pw string) error {
	const op = "service.auth.ValidatePassword"

	if len([]rune(pw)) < 8 {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	var hasLetter, hasDigit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	return nil
}
