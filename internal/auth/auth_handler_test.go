package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/auth"
	autherrors "github.com/gmi-gj-dev-krushna/employcentric/internal/auth/errors"
)

type fakeAuthService struct {
	loginFn    func(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error)
	refreshFn  func(ctx context.Context, refreshToken string) (string, string, auth.AuthResponse, error)
	getMeFn    func(ctx context.Context, userID string) (*auth.AuthResponse, error)
	registerFn func(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, string, auth.AuthResponse, error) {
	return f.refreshFn(ctx, refreshToken)
}

func (f *fakeAuthService) GetMe(ctx context.Context, userID string) (*auth.AuthResponse, error) {
	return f.getMeFn(ctx, userID)
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	return f.registerFn(ctx, req)
}

func newAuthTestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	c.Request = req
	return c, rec
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success sets session cookies", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error) {
				return "access-token", "refresh-token", auth.AuthResponse{Email: email}, nil
			},
		}
		handler := auth.NewHandler(svc)

		c, rec := newAuthTestContext(t, http.MethodPost, "/api/v1/auth/login",
			`{"email":"person@acme.test","password":"hunter22"}`)

		handler.Login(c)

		assert.Equal(t, http.StatusOK, rec.Code)

		cookies := rec.Result().Cookies()
		names := make([]string, 0, len(cookies))
		for _, ck := range cookies {
			names = append(names, ck.Name)
			assert.True(t, ck.HttpOnly)
		}
		assert.Contains(t, names, "access_token")
		assert.Contains(t, names, "refresh_token")
	})

	t.Run("negative bad credentials map to 401", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error) {
				return "", "", auth.AuthResponse{}, autherrors.ErrInvalidCredentials
			},
		}
		handler := auth.NewHandler(svc)

		c, rec := newAuthTestContext(t, http.MethodPost, "/api/v1/auth/login",
			`{"email":"person@acme.test","password":"wrong"}`)

		handler.Login(c)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("negative malformed body fails binding", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error) {
				t.Fatal("service must not be called on binding failure")
				return "", "", auth.AuthResponse{}, nil
			},
		}
		handler := auth.NewHandler(svc)

		c, rec := newAuthTestContext(t, http.MethodPost, "/api/v1/auth/login",
			`{"email":"not-an-email"}`)

		handler.Login(c)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("negative missing auth context", func(t *testing.T) {
		svc := &fakeAuthService{
			getMeFn: func(ctx context.Context, userID string) (*auth.AuthResponse, error) {
				t.Fatal("service must not be called without a user id")
				return nil, nil
			},
		}
		handler := auth.NewHandler(svc)

		c, rec := newAuthTestContext(t, http.MethodGet, "/api/v1/auth/me", "")

		handler.Me(c)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("clears session cookies", func(t *testing.T) {
		handler := auth.NewHandler(&fakeAuthService{})

		c, rec := newAuthTestContext(t, http.MethodPost, "/api/v1/auth/logout", "")

		handler.Logout(c)

		assert.Equal(t, http.StatusOK, rec.Code)
		for _, ck := range rec.Result().Cookies() {
			assert.Equal(t, -1, ck.MaxAge)
			assert.Empty(t, ck.Value)
		}
	})
}
