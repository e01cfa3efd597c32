package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/classforge-auth/internal/auth"
	"github.com/spec-kit/classforge-auth/internal/domain"
	apperrors "github.com/spec-kit/classforge-auth/pkg/util/errorutil"
)

type stubResolver struct {
	principal *auth.Principal
	err       error
	gotToken  string
	calls     int
}

func (s *stubResolver) Authenticate(_ context.Context, token string) (*auth.Principal, error) {
	s.calls++
	s.gotToken = token
	return s.principal, s.err
}

func newGateApp(resolver auth.IdentityResolver, guards ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code}})
		},
	})
	handlers := []fiber.Handler{auth.NewAuthMiddleware(resolver).Handle}
	handlers = append(handlers, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			return errors.New("principal missing")
		}
		return c.SendString(principal.Account.ID)
	})
	app.Get("/protected", handlers...)
	return app
}

func TestAuthMiddlewareRejectsMissingCredentials(t *testing.T) {
	resolver := &stubResolver{}
	app := newGateApp(resolver)

	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic abc", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
	assert.Zero(t, resolver.calls, "resolver must not run without a bearer token")
}

func TestAuthMiddlewareAttachesPrincipal(t *testing.T) {
	resolver := &stubResolver{principal: &auth.Principal{
		Account: &domain.Account{ID: "acc-7", Role: domain.RoleStudent},
	}}
	app := newGateApp(resolver)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer tok-123")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "tok-123", resolver.gotToken)
}

func TestAuthMiddlewarePropagatesResolverErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "unauthorized", err: apperrors.NewUnauthorized("unauthorized"), status: http.StatusUnauthorized},
		{name: "store unavailable", err: apperrors.NewStoreUnavailable(errors.New("timeout")), status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newGateApp(&stubResolver{err: tt.err})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer tok")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		role    domain.Role
		allowed []domain.Role
		status  int
	}{
		{name: "faculty may grade", role: domain.RoleFaculty, allowed: []domain.Role{domain.RoleFaculty, domain.RoleAdmin}, status: http.StatusOK},
		{name: "admin may grade", role: domain.RoleAdmin, allowed: []domain.Role{domain.RoleFaculty, domain.RoleAdmin}, status: http.StatusOK},
		{name: "student may not grade", role: domain.RoleStudent, allowed: []domain.Role{domain.RoleFaculty, domain.RoleAdmin}, status: http.StatusForbidden},
		{name: "no roles means any account", role: domain.RoleStudent, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &stubResolver{principal: &auth.Principal{
				Account: &domain.Account{ID: "acc-1", Role: tt.role},
			}}
			app := newGateApp(resolver, auth.RequireRole(tt.allowed...))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer tok")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRequireRoleWithoutPrincipal(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
		},
	})
	app.Get("/admin", auth.RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBearerToken(t *testing.T) {
	token, ok := auth.BearerToken("Bearer abc.def.ghi")
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	_, ok = auth.BearerToken("Bearer ")
	assert.False(t, ok)
}
