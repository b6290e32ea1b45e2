package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	mDomain "github.com/x-xyz/goauction/domain/mocks"
)

func serve(m *AuthMiddleware, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, domain.Address) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("ctx", ctx.Background())

	var caller domain.Address
	h := mw(func(c echo.Context) error {
		caller = Caller(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, caller
}

func TestAuth(t *testing.T) {
	auth := mDomain.NewAuthUsecase(t)
	auth.On("ParseToken", mock.Anything, "good").Return("0xabc", nil)
	auth.On("ParseToken", mock.Anything, "bad").Return("", errors.New("token is expired"))
	m := New(auth)

	rec, caller := serve(m, m.Auth(), "Bearer good")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Address("0xabc"), caller)

	rec, _ = serve(m, m.Auth(), "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, caller = serve(m, m.Auth(), "")
	assert.GreaterOrEqual(t, rec.Code, http.StatusBadRequest)
	assert.Empty(t, caller)
}

func TestOptionalAuth(t *testing.T) {
	m := New(mDomain.NewAuthUsecase(t))

	rec, caller := serve(m, m.OptionalAuth(), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, caller)
}
