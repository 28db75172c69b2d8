package oauth

import (
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/oauth2"

	"github.com/mclhub/poke-board/internal/config"
	"github.com/mclhub/poke-board/internal/service/auth"
)

// Теги провайдеров; совпадают со значениями колонки provider.
const (
	ProviderKakao = "kakao"
	ProviderNaver = "naver"
)

func newKakao(cfg config.OAuthProviderConfig) *Provider {
	return &Provider{
		Name: ProviderKakao,
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://kauth.kakao.com/oauth/authorize",
				TokenURL: "https://kauth.kakao.com/oauth/token",
			},
			Scopes: []string{"profile_nickname", "profile_image"},
		},
		userInfoURL: "https://kapi.kakao.com/v2/user/me",
		parse:       parseKakao,
	}
}

func newNaver(cfg config.OAuthProviderConfig) *Provider {
	return &Provider{
		Name: ProviderNaver,
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://nid.naver.com/oauth2.0/authorize",
				TokenURL: "https://nid.naver.com/oauth2.0/token",
			},
		},
		userInfoURL: "https://openapi.naver.com/v1/nid/me",
		parse:       parseNaver,
	}
}

// parseKakao разбирает ответ kapi.kakao.com/v2/user/me:
// id — число на верхнем уровне, профиль в kakao_account.profile.
func parseKakao(body []byte) (auth.ExternalIdentity, error) {
	var payload struct {
		ID           int64 `json:"id"`
		KakaoAccount struct {
			Profile struct {
				Nickname        string `json:"nickname"`
				ProfileImageURL string `json:"profile_image_url"`
			} `json:"profile"`
		} `json:"kakao_account"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return auth.ExternalIdentity{}, err
	}

	if payload.ID == 0 {
		return auth.ExternalIdentity{}, fmt.Errorf("kakao profile: missing id")
	}

	return auth.ExternalIdentity{
		Provider:   ProviderKakao,
		ProviderID: strconv.FormatInt(payload.ID, 10),
		Nickname:   payload.KakaoAccount.Profile.Nickname,
		AvatarURL:  payload.KakaoAccount.Profile.ProfileImageURL,
	}, nil
}

// parseNaver разбирает ответ openapi.naver.com/v1/nid/me:
// фактические поля лежат внутри объекта response.
func parseNaver(body []byte) (auth.ExternalIdentity, error) {
	var payload struct {
		Response struct {
			ID           string `json:"id"`
			Nickname     string `json:"nickname"`
			ProfileImage string `json:"profile_image"`
		} `json:"response"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return auth.ExternalIdentity{}, err
	}

	if payload.Response.ID == "" {
		return auth.ExternalIdentity{}, fmt.Errorf("naver profile: missing id")
	}

	return auth.ExternalIdentity{
		Provider:   ProviderNaver,
		ProviderID: payload.Response.ID,
		Nickname:   payload.Response.Nickname,
		AvatarURL:  payload.Response.ProfileImage,
	}, nil
}
