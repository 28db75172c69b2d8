package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mclhub/poke-board/internal/config"
	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/transport/http/authctx"
)

// capHandler — тестовый slog.Handler, который:
//   - аккумулирует базовые attrs, приходящие через Logger.With(...);
//   - собирает attrs из каждой записи в map[string]any;
//   - не создаёт реальных I/O, чтобы не паниковать в тестах.
type capHandler struct {
	base    []slog.Attr
	lastMsg string
	attrs   map[string]any
	count   int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)

	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.count++
	h.lastMsg = r.Message
	h.attrs = out

	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) > 0 {
		h.base = append(h.base, attrs...)
	}

	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func makeReq(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = (&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 12345}).String()
	return req
}

// verifierFunc — TokenVerifier из функции, для табличных сценариев.
type verifierFunc func(ctx context.Context, token string) (*models.Principal, error)

func (f verifierFunc) ExtractPrincipal(ctx context.Context, token string) (*models.Principal, error) {
	return f(ctx, token)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestChain_Order(t *testing.T) {
	order := []string{}

	m1 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m1-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m1-end")
		})
	}

	m2 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m2-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m2-end")
		})
	}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusTeapot)
	})

	chain := Chain(final, m1, m2)
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/chain"))

	require.Equal(t, []string{"m1-begin", "m2-begin", "handler", "m2-end", "m1-end"}, order)
	require.Equal(t, http.StatusTeapot, rr.Code)
}

func TestAuthenticate_ValidCookie_PutsPrincipalInContext(t *testing.T) {
	want := &models.Principal{Subject: "trainer1", Roles: []string{models.RoleUser}}

	v := verifierFunc(func(_ context.Context, token string) (*models.Principal, error) {
		require.Equal(t, "good-token", token)
		return want, nil
	})

	var got *models.Principal
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = authctx.From(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(final, Authenticate(v))
	rr := httptest.NewRecorder()
	req := makeReq("/me")
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "good-token"})
	chain.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, want, got)
}

func TestAuthenticate_BearerHeader_Fallback(t *testing.T) {
	v := verifierFunc(func(_ context.Context, token string) (*models.Principal, error) {
		require.Equal(t, "bearer-token", token)
		return &models.Principal{Subject: "trainer1", Roles: []string{models.RoleUser}}, nil
	})

	var ok bool
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = authctx.From(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(final, Authenticate(v))
	rr := httptest.NewRecorder()
	req := makeReq("/me")
	req.Header.Set("Authorization", "Bearer bearer-token")
	chain.ServeHTTP(rr, req)

	require.True(t, ok)
}

func TestAuthenticate_CookieBeatsBearer(t *testing.T) {
	var seen string
	v := verifierFunc(func(_ context.Context, token string) (*models.Principal, error) {
		seen = token
		return &models.Principal{Subject: "s"}, nil
	})

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(final, Authenticate(v))
	rr := httptest.NewRecorder()
	req := makeReq("/me")
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "from-cookie"})
	req.Header.Set("Authorization", "Bearer from-header")
	chain.ServeHTTP(rr, req)

	require.Equal(t, "from-cookie", seen)
}

func TestAuthenticate_NoToken_AnonymousPassThrough(t *testing.T) {
	v := verifierFunc(func(context.Context, string) (*models.Principal, error) {
		t.Fatal("verifier must not be called without a token")
		return nil, nil
	})

	var found bool
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = authctx.From(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(final, Authenticate(v))
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/public"))

	// Запрос проходит дальше, но без principal в контексте.
	require.Equal(t, http.StatusOK, rr.Code)
	require.False(t, found)
}

func TestAuthenticate_InvalidToken_AnonymousPassThrough(t *testing.T) {
	v := verifierFunc(func(context.Context, string) (*models.Principal, error) {
		return nil, errors.New("token is expired")
	})

	var found bool
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = authctx.From(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(final, Authenticate(v))
	rr := httptest.NewRecorder()
	req := makeReq("/public")
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "expired"})
	chain.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.False(t, found)
}

func TestRequireAuth_Anonymous_401(t *testing.T) {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	chain := Chain(final, RequireAuth())
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/protected"))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	require.Equal(t, "authentication required", decodeError(t, rr).Message)
}

func TestRequireAuth_WithPrincipal_Passes(t *testing.T) {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(final, RequireAuth())
	rr := httptest.NewRecorder()
	req := makeReq("/protected")
	ctx := authctx.Into(req.Context(), &models.Principal{Subject: "s", Roles: []string{models.RoleUser}})
	chain.ServeHTTP(rr, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireRole_MissingRole_403(t *testing.T) {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	chain := Chain(final, RequireRole(models.RoleAdmin))
	rr := httptest.NewRecorder()
	req := makeReq("/admin")
	ctx := authctx.Into(req.Context(), &models.Principal{Subject: "s", Roles: []string{models.RoleUser}})
	chain.ServeHTTP(rr, req.WithContext(ctx))

	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Contains(t, decodeError(t, rr).Message, models.RoleAdmin)
}

func TestRequireRole_Anonymous_401(t *testing.T) {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	chain := Chain(final, RequireRole(models.RoleAdmin))
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/admin"))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireRole_WithRole_Passes(t *testing.T) {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(final, RequireRole(models.RoleAdmin))
	rr := httptest.NewRecorder()
	req := makeReq("/admin")
	ctx := authctx.Into(req.Context(),
		&models.Principal{Subject: "s", Roles: []string{models.RoleAdmin, models.RoleUser}})
	chain.ServeHTTP(rr, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, rr.Code)
}

func testCORSCfg() config.CORSConfig {
	return config.CORSConfig{
		AllowedOrigin:    "https://front.example.com",
		AllowCredentials: true,
	}
}

func TestCORS_TrustedOrigin_HeadersSet(t *testing.T) {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(final, CORS(testCORSCfg()))
	rr := httptest.NewRecorder()
	req := makeReq("/api")
	req.Header.Set("Origin", "https://front.example.com")
	chain.ServeHTTP(rr, req)

	require.Equal(t, "https://front.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	require.Equal(t, "Origin", rr.Header().Get("Vary"))
}

func TestCORS_UnknownOrigin_NoHeaders(t *testing.T) {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(final, CORS(testCORSCfg()))
	rr := httptest.NewRecorder()
	req := makeReq("/api")
	req.Header.Set("Origin", "https://evil.example.com")
	chain.ServeHTTP(rr, req)

	require.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	require.Empty(t, rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_Preflight_204(t *testing.T) {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	})

	chain := Chain(final, CORS(testCORSCfg()))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api", nil)
	req.Header.Set("Origin", "https://front.example.com")
	chain.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
	require.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORS_HeadersPresentOn401(t *testing.T) {
	// CORS стоит раньше гейта: отказ обязан эхо-нести заголовки,
	// иначе браузер скроет тело ответа от SPA.
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	chain := Chain(final, CORS(testCORSCfg()), RequireAuth())
	rr := httptest.NewRecorder()
	req := makeReq("/protected")
	req.Header.Set("Origin", "https://front.example.com")
	chain.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "https://front.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRequestID_GenerateAndPropagate(t *testing.T) {
	var seenID string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = r.Header.Get("X-Request-Id")
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(h, RequestID())
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/rid"))

	respID := rr.Header().Get("X-Request-Id")
	require.NotEmpty(t, respID)
	require.Len(t, respID, 32) // 16 байт → 32 hex-символа
	require.Equal(t, respID, seenID)
}

func TestRequestID_UseExisting(t *testing.T) {
	const given = "abc123-existing-id"

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(h, RequestID())
	rr := httptest.NewRecorder()
	req := makeReq("/rid2")
	req.Header.Set("X-Request-Id", given)
	chain.ServeHTTP(rr, req)

	require.Equal(t, given, rr.Header().Get("X-Request-Id"))
}

func TestTimeout_SetsDeadline_WhenAbsent(t *testing.T) {
	var hasDeadline bool
	var left time.Duration

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dl, ok := r.Context().Deadline()
		hasDeadline = ok
		if ok {
			left = time.Until(dl)
		}
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(h, Timeout(50*time.Millisecond))
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/timeout"))

	require.True(t, hasDeadline)
	require.Greater(t, left, time.Duration(0))
}

func TestTimeout_DoesNotOverrideExistingDeadline(t *testing.T) {
	var childDL time.Time

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dl, _ := r.Context().Deadline()
		childDL = dl
		w.WriteHeader(http.StatusOK)
	})

	parent, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req := makeReq("/timeout2").WithContext(parent)

	chain := Chain(h, Timeout(1*time.Second)) // больше, чем у родителя
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, req)

	parentDL, _ := parent.Deadline()
	require.WithinDuration(t, parentDL, childDL, time.Millisecond)
}

func TestTimeout_NonPositive_NoOp(t *testing.T) {
	var hasDeadline bool

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(h, Timeout(0))
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/timeout3"))

	require.False(t, hasDeadline)
}

func TestRecover_ConvertsPanicTo500(t *testing.T) {
	panicHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	chain := Chain(panicHandler, Recover())
	rr := httptest.NewRecorder()

	chain.ServeHTTP(rr, makeReq("/panic"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	body := decodeError(t, rr)
	require.Equal(t, http.StatusText(http.StatusInternalServerError), body.Error)
	require.Equal(t, "internal error", body.Message)
}

func TestLogging_WritesRecord_WithStatusDurBytesAndRequestID(t *testing.T) {
	h := &capHandler{}
	logger := slog.New(h)

	const rid = "rid-456"
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Не вызываем WriteHeader — статус должен стать 200 после Write.
		_, _ = w.Write([]byte("0123456789")) // 10 байт
	})

	// Порядок важен: RequestID до Logging, чтобы id попал в attrs лога.
	handler := Chain(final, RequestID(), Logging(logger))

	rr := httptest.NewRecorder()
	req := makeReq("/log")
	req.Header.Set("X-Request-Id", rid)

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, h.count)
	require.Equal(t, "http", h.lastMsg)

	// Проверяем ключевые атрибуты.
	method, _ := h.attrs["method"].(string)
	path, _ := h.attrs["path"].(string)
	status, _ := h.attrs["status"].(int64) // slog хранит числа как int64
	bytes, _ := h.attrs["bytes"].(int64)
	ridAttr, _ := h.attrs["request_id"].(string)

	require.Equal(t, http.MethodGet, method)
	require.Equal(t, "/log", path)
	require.EqualValues(t, http.StatusOK, status)
	require.EqualValues(t, 10, bytes)
	require.Equal(t, rid, ridAttr)

	_, hasDur := h.attrs["dur"]
	require.True(t, hasDur)
}

func TestStatusWriter_CountsBytes_AndDefaultStatus200(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := newStatusWriter(rr)

	_, _ = sw.Write([]byte("abcd")) // 4 байта

	require.Equal(t, http.StatusOK, sw.status) // статус умолчаний — 200
	require.Equal(t, 4, sw.count)
}
