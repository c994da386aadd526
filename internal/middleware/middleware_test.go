package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/music_catalog/internal/models"
	"github.com/Skotchmaster/music_catalog/internal/service"
)

type stubAuth struct {
	p   *service.Principal
	err error
	got string
}

func (s *stubAuth) Authenticate(_ context.Context, raw string) (*service.Principal, error) {
	s.got = raw
	return s.p, s.err
}

func run(t *testing.T, mw echo.MiddlewareFunc, header string, pre func(echo.Context)) (echo.Context, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	if pre != nil {
		pre(c)
	}
	called := false
	err := mw(func(echo.Context) error {
		called = true
		return nil
	})(c)
	return c, called, err
}

func statusOf(t *testing.T, err error) (int, any) {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	return he.Code, he.Message
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer abc"))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken("Bearer"))
	assert.Equal(t, "", BearerToken(""))
}

func TestRequireAuth_MissingToken(t *testing.T) {
	auth := &stubAuth{}
	_, called, err := run(t, RequireAuth(auth), "", nil)
	assert.False(t, called)
	code, msg := statusOf(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized Access", msg)
	assert.Empty(t, auth.got)
}

func TestRequireAuth_RejectedToken(t *testing.T) {
	auth := &stubAuth{err: &service.Error{Kind: service.ErrUnauthorized, Message: service.MsgInvalidToken}}
	_, called, err := run(t, RequireAuth(auth), "Bearer tok", nil)
	assert.False(t, called)
	code, msg := statusOf(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid token", msg)
	assert.Equal(t, "tok", auth.got)
}

func TestRequireAuth_StoreFailure(t *testing.T) {
	auth := &stubAuth{err: errors.New("db down")}
	_, called, err := run(t, RequireAuth(auth), "Bearer tok", nil)
	assert.False(t, called)
	code, _ := statusOf(t, err)
	assert.Equal(t, http.StatusInternalServerError, code)
}

func TestRequireAuth_AttachesCaller(t *testing.T) {
	p := &service.Principal{UserID: "u1", Email: "a@b.c", Role: models.RoleEditor, Token: "tok"}
	c, called, err := run(t, RequireAuth(&stubAuth{p: p}), "Bearer tok", nil)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "u1", c.Get(CtxUserID))
	assert.Equal(t, "a@b.c", c.Get(CtxEmail))
	assert.Equal(t, "Editor", c.Get(CtxRole))
	assert.Equal(t, "tok", c.Get(CtxToken))

	got, ok := PrincipalFrom(c)
	require.True(t, ok)
	assert.Same(t, p, got)

	fromCtx, ok := service.PrincipalFromContext(c.Request().Context())
	require.True(t, ok)
	assert.Same(t, p, fromCtx)
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole(models.RoleAdmin, models.RoleEditor)

	_, called, err := run(t, mw, "", func(c echo.Context) { c.Set(CtxRole, "Editor") })
	require.NoError(t, err)
	assert.True(t, called)

	_, called, err = run(t, mw, "", func(c echo.Context) { c.Set(CtxRole, "Viewer") })
	assert.False(t, called)
	code, msg := statusOf(t, err)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Forbidden Access.", msg)

	_, _, err = run(t, mw, "", nil)
	code, _ = statusOf(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)
}
