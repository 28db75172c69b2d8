// Package oauth реализует федеративный вход через OAuth2-провайдеров
// (kakao, naver): code flow поверх golang.org/x/oauth2 и разбор профилей
// в единый вид ExternalIdentity.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/mclhub/poke-board/internal/config"
	"github.com/mclhub/poke-board/internal/service/auth"
)

var (
	// ErrUnknownProvider — провайдер не зарегистрирован. Транспорт: HTTP 404.
	ErrUnknownProvider = errors.New("unknown oauth provider")

	// ErrExchangeFailed — обмен кода на токен отклонён провайдером.
	// Транспорт: HTTP 401.
	ErrExchangeFailed = errors.New("oauth exchange failed")

	// ErrProfileFetchFailed — профиль не получен или не разобран.
	// Транспорт: HTTP 502.
	ErrProfileFetchFailed = errors.New("oauth profile fetch failed")
)

// maxProfileBody — ограничение на размер ответа userinfo.
const maxProfileBody = 1 << 20

// Provider — один настроенный OAuth2-провайдер.
type Provider struct {
	// Name — тег провайдера в URL и в колонке provider ("kakao", "naver").
	Name string

	cfg         *oauth2.Config
	userInfoURL string
	parse       func([]byte) (auth.ExternalIdentity, error)
}

// Registry — реестр провайдеров по тегу.
type Registry struct {
	providers map[string]*Provider
}

// NewRegistry собирает реестр из конфигурации. Провайдер без client_id
// не регистрируется.
func NewRegistry(cfg config.OAuthConfig) *Registry {
	r := &Registry{providers: make(map[string]*Provider)}

	if cfg.Kakao.ClientID != "" {
		r.providers[ProviderKakao] = newKakao(cfg.Kakao)
	}

	if cfg.Naver.ClientID != "" {
		r.providers[ProviderNaver] = newNaver(cfg.Naver)
	}

	return r
}

// Provider возвращает провайдера по тегу.
func (r *Registry) Provider(name string) (*Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("oauth: %w: %q", ErrUnknownProvider, name)
	}

	return p, nil
}

// AuthCodeURL строит URL авторизации провайдера для redirect.
func (p *Provider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

// Exchange меняет authorization code на токен провайдера.
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	const op = "oauth.Exchange"

	token, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrExchangeFailed, err)
	}

	return token, nil
}

// FetchIdentity запрашивает профиль у провайдера и приводит его к
// единому виду.
func (p *Provider) FetchIdentity(ctx context.Context, token *oauth2.Token) (auth.ExternalIdentity, error) {
	const op = "oauth.FetchIdentity"

	client := p.cfg.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return auth.ExternalIdentity{}, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return auth.ExternalIdentity{}, fmt.Errorf("%s: %w: %w", op, ErrProfileFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return auth.ExternalIdentity{}, fmt.Errorf("%s: %w: status %d", op, ErrProfileFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileBody))
	if err != nil {
		return auth.ExternalIdentity{}, fmt.Errorf("%s: %w: %w", op, ErrProfileFetchFailed, err)
	}

	ident, err := p.parse(body)
	if err != nil {
		return auth.ExternalIdentity{}, fmt.Errorf("%s: %w: %w", op, ErrProfileFetchFailed, err)
	}

	return ident, nil
}

// GenerateState — случайное значение для защиты от CSRF в code flow.
func GenerateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
