package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/mclhub/poke-board/internal/config"
	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/service/auth"
	"github.com/mclhub/poke-board/internal/transport/http/handlers"
	"github.com/mclhub/poke-board/mocks"
)

func testRouterAuthCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "router-test-secret",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 168 * time.Hour,
		Issuer:          "poke-board",
		AdminGrade:      9,
	}
}

func newAuthEnv(t *testing.T) (http.Handler, *auth.Service, *mocks.MockStorage) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockSt := mocks.NewMockStorage(ctrl)
	svc := auth.New(mockSt, testRouterAuthCfg())

	h := handlers.New(handlers.Deps{Auth: svc})
	router := NewRouter(h, svc, Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return router, svc, mockSt
}

func routerMember() *models.Member {
	now := time.Now().UTC()
	return &models.Member{
		Idx:        7,
		Userid:     "trainer1",
		Nickname:   "trainer",
		Grade:      1,
		Provider:   models.ProviderLocal,
		ProviderID: "trainer1",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func responseCookie(t *testing.T, res *http.Response, name string) *http.Cookie {
	t.Helper()

	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}

	t.Fatalf("cookie %q not set in response", name)
	return nil
}

// Logout обязан проходить и без действующего access-токена: cookie
// затираются, а сессия отзывается по subject из refresh-cookie.
func TestLogout_RejectedAccessToken_StillClearsSession(t *testing.T) {
	router, svc, mockSt := newAuthEnv(t)

	m := routerMember()

	var storedHash string
	mockSt.EXPECT().
		SetRefreshToken(gomock.Any(), m.Idx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, hash string) error {
			storedHash = hash
			return nil
		})

	pair, err := svc.IssueSession(context.Background(), m)
	require.NoError(t, err)

	gomock.InOrder(
		mockSt.EXPECT().
			MemberBySubject(gomock.Any(), m.Subject()).
			DoAndReturn(func(context.Context, string) (*models.Member, error) {
				cp := *m
				cp.RefreshTokenHash = &storedHash
				return &cp, nil
			}),
		mockSt.EXPECT().
			ClearRefreshToken(gomock.Any(), m.Subject()).
			Return(nil),
	)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "not-a-valid-token"})
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: pair.RefreshToken})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	res := rec.Result()
	require.Negative(t, responseCookie(t, res, "accessToken").MaxAge)
	require.Negative(t, responseCookie(t, res, "refreshToken").MaxAge)
}

// Logout без единой cookie остаётся успешным и не трогает хранилище.
func TestLogout_Anonymous_ClearsCookies(t *testing.T) {
	router, _, _ := newAuthEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	res := rec.Result()
	require.Negative(t, responseCookie(t, res, "accessToken").MaxAge)
	require.Negative(t, responseCookie(t, res, "refreshToken").MaxAge)
}

// Успешное переиздание отвечает 200 с JSON-подтверждением и свежей
// парой cookie.
func TestReissue_ReturnsConfirmationBody(t *testing.T) {
	router, svc, mockSt := newAuthEnv(t)

	m := routerMember()

	var storedHash string
	mockSt.EXPECT().
		SetRefreshToken(gomock.Any(), m.Idx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, hash string) error {
			storedHash = hash
			return nil
		})

	pair, err := svc.IssueSession(context.Background(), m)
	require.NoError(t, err)

	gomock.InOrder(
		mockSt.EXPECT().
			MemberByRefreshHash(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, hash string) (*models.Member, error) {
				require.Equal(t, storedHash, hash)
				cp := *m
				cp.RefreshTokenHash = &storedHash
				return &cp, nil
			}),
		mockSt.EXPECT().
			RotateRefreshToken(gomock.Any(), storedHash, gomock.Any()).
			Return(nil),
	)

	req := httptest.NewRequest(http.MethodPost, "/auth/reissue", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: pair.RefreshToken})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotEmpty(t, body.Message)

	res := rec.Result()
	access := responseCookie(t, res, "accessToken")
	refresh := responseCookie(t, res, "refreshToken")
	require.NotEmpty(t, access.Value)
	require.NotEmpty(t, refresh.Value)
	require.Positive(t, access.MaxAge)
	require.Positive(t, refresh.MaxAge)
	require.NotEqual(t, pair.RefreshToken, refresh.Value)
}
