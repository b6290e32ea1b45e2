package http

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/ledger"
	mLedger "github.com/x-xyz/goauction/domain/ledger/mocks"
)

const addr = "0x939ae6a4c8dfdbb1f7085189574f0a938013952a"

type handlerSuite struct {
	suite.Suite

	e      *echo.Echo
	ledger *mLedger.Usecase
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	s.e = echo.New()
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	s.ledger = mLedger.NewUsecase(s.T())
	New(s.e, s.ledger)
}

func (s *handlerSuite) do(method, target string) (*httptest.ResponseRecorder, delivery.JsonResponse) {
	return s.doBody(method, target, "")
}

func (s *handlerSuite) doBody(method, target, body string) (*httptest.ResponseRecorder, delivery.JsonResponse) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	s.e.ServeHTTP(rec, req)
	res := delivery.JsonResponse{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	return rec, res
}

func (s *handlerSuite) TestGetBalance() {
	wei, _ := new(big.Int).SetString("2040000000000000000", 10)
	s.ledger.On("BalanceOf", mock.Anything, domain.Address(addr)).Return(wei, nil).Once()

	rec, res := s.do(http.MethodGet, "/ledger/"+addr)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(map[string]interface{}{
		"account":      addr,
		"balance":      "2040000000000000000",
		"balanceEther": "2.04",
	}, res.Data)
}

func (s *handlerSuite) TestGetBalanceInvalidAddress() {
	rec, _ := s.do(http.MethodGet, "/ledger/0x01")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestWithdraw() {
	s.ledger.On("Withdraw", mock.Anything, domain.Address(addr)).Return(big.NewInt(0), nil).Once()

	rec, res := s.do(http.MethodPost, "/ledger/"+addr+"/withdraw")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("0", res.Data.(map[string]interface{})["balance"])
}

func (s *handlerSuite) TestWithdrawFails() {
	s.ledger.On("Withdraw", mock.Anything, domain.Address(addr)).Return(nil, errors.New("rpc down")).Once()

	rec, res := s.do(http.MethodPost, "/ledger/"+addr+"/withdraw")
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("rpc down", res.Data)
}

func (s *handlerSuite) TestDeposit() {
	s.ledger.On("Deposit", mock.Anything, domain.TxHash("0xaa")).Return(&ledger.Deposit{
		TxHash:  "0xaa",
		Account: addr,
		Amount:  "2040000000000000000",
	}, nil).Once()

	rec, res := s.doBody(http.MethodPost, "/ledger/deposit", `{"txHash":"0xaa"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(map[string]interface{}{
		"txHash":      "0xaa",
		"account":     addr,
		"amount":      "2040000000000000000",
		"amountEther": "2.04",
	}, res.Data)
}

func (s *handlerSuite) TestDepositReplayed() {
	s.ledger.On("Deposit", mock.Anything, domain.TxHash("0xaa")).Return(nil, domain.ErrConflict).Once()

	rec, _ := s.doBody(http.MethodPost, "/ledger/deposit", `{"txHash":"0xaa"}`)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *handlerSuite) TestDepositNotConfirmed() {
	s.ledger.On("Deposit", mock.Anything, domain.TxHash("0xaa")).Return(nil, domain.ErrTxNotConfirmed).Once()

	rec, _ := s.doBody(http.MethodPost, "/ledger/deposit", `{"txHash":"0xaa"}`)
	s.Equal(http.StatusConflict, rec.Code)
}
