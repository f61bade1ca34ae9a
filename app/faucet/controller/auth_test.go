package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternoa-network/faucetx/app/faucet/types"
	"github.com/ternoa-network/faucetx/pkg/utils"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	hash, err := utils.HashOrRead("hunter2")
	require.NoError(t, err)
	return &Controller{
		AdminToken: "test-token",
		AuthUser:   "admin",
		Users:      map[string]types.User{"admin": {Username: "admin", Hash: hash, Role: "admin"}},
		JWTSecret:  []byte("test-secret"),
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	c := newTestController(t)
	protected := c.RequireAuth(okHandler())

	t.Run("no credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/claims/pending", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/claims/pending", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/claims/pending", nil)
		req.Header.Set("Authorization", "Bearer test-token")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("session cookie from login", func(t *testing.T) {
		login := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"admin","password":"hunter2"}`))
		loginRec := httptest.NewRecorder()
		c.HandleAdminLogin(loginRec, login)
		require.Equal(t, http.StatusOK, loginRec.Code)

		cookies := loginRec.Result().Cookies()
		require.NotEmpty(t, cookies)

		req := httptest.NewRequest(http.MethodGet, "/api/claims/pending", nil)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("garbage session cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/claims/pending", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "not-a-jwt"})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandleAdminLogin(t *testing.T) {
	c := newTestController(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid credentials", `{"username":"admin","password":"hunter2"}`, http.StatusOK},
		{"wrong password", `{"username":"admin","password":"wrong"}`, http.StatusUnauthorized},
		{"unknown user", `{"username":"ghost","password":"hunter2"}`, http.StatusUnauthorized},
		{"malformed body", `{"username":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			c.HandleAdminLogin(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandleAdminLogout(t *testing.T) {
	c := newTestController(t)

	rec := httptest.NewRecorder()
	c.HandleAdminLogout(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
