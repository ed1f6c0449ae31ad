package http_handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/baechuer/flatfile-auth/internal/application/auth"
	"github.com/baechuer/flatfile-auth/internal/domain"
	"github.com/baechuer/flatfile-auth/internal/infrastructure/memory"
	"github.com/baechuer/flatfile-auth/internal/infrastructure/security"
	"github.com/baechuer/flatfile-auth/internal/transport/http/middleware"
	"github.com/baechuer/flatfile-auth/internal/transport/http/response"
	"github.com/baechuer/flatfile-auth/internal/transport/http/router"
)

type testApp struct {
	store   *memory.UserStore
	handler http.Handler
}

func newTestApp(t *testing.T, users ...domain.UserRecord) *testApp {
	t.Helper()

	store := memory.NewUserStore()
	if len(users) > 0 {
		if err := store.Save(context.Background(), users); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	svc := auth.NewService(store)

	h, err := router.New(router.Deps{
		Health:         NewHealthHandler(svc),
		Auth:           NewAuthHandler(svc),
		ModMW:          middleware.RequireRole(svc, domain.RoleModerator, response.WriteError),
		AdminMW:        middleware.RequireRole(svc, domain.RoleAdmin, response.WriteError),
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return &testApp{store: store, handler: h}
}

// form sends an url-encoded request, optionally with a session cookie.
func (a *testApp) form(t *testing.T, method, path, session string, fields url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body string
	if fields != nil {
		body = fields.Encode()
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if session != "" {
		req.AddCookie(&http.Cookie{Name: security.SessionCookieName, Value: session})
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func (a *testApp) json(t *testing.T, method, path, session, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.AddCookie(&http.Cookie{Name: security.SessionCookieName, Value: session})
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func (a *testApp) users(t *testing.T) []domain.UserRecord {
	t.Helper()
	users, err := a.store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return users
}

func requireResponse(t *testing.T, rr *httptest.ResponseRecorder, status int, body string) {
	t.Helper()
	if rr.Code != status || rr.Body.String() != body {
		t.Fatalf("expected %d %q, got %d %q", status, body, rr.Code, rr.Body.String())
	}
}

// readCookie finds cookie by name from response headers.
func readCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	res := rr.Result()
	defer res.Body.Close()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func vals(kv ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v
}
