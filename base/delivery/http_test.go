package delivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/domain"
)

func TestMakeJsonRespMapsDomainErrors(t *testing.T) {
	tests := []struct {
		desc      string
		err       error
		expStatus int
	}{
		{"unauthorized", domain.ErrUnauthorized, http.StatusForbidden},
		{"wrapped wrong phase", xerrors.Errorf("bid: %w", domain.ErrWrongPhase), http.StatusConflict},
		{"deadline in past", domain.ErrDeadlineInPast, http.StatusBadRequest},
		{"below minimum", domain.ErrBelowMinimumBid, http.StatusUnprocessableEntity},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"unfunded bid", xerrors.Errorf("bid 5 over balance 1: %w", domain.ErrInsufficientFunds), http.StatusPaymentRequired},
		{"unknown", xerrors.New("boom"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, MakeJsonResp(c, http.StatusInternalServerError, tt.err), tt.desc)
		assert.Equal(t, tt.expStatus, rec.Code, tt.desc)

		res := JsonResponse{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), tt.desc)
		assert.Equal(t, JsonResponseStatusFail, res.Status, tt.desc)
		assert.Equal(t, tt.err.Error(), res.Data, tt.desc)
	}
}

func TestMakeJsonRespSuccess(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, MakeJsonResp(c, http.StatusOK, map[string]string{"phase": "active"}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"phase":"active"},"status":"success"}`, rec.Body.String())
}
