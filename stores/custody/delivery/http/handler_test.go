package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	bValidator "github.com/x-xyz/goauction/base/validator"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/custody"
	mCustody "github.com/x-xyz/goauction/domain/custody/mocks"
)

const (
	caller   = "0x939ae6a4c8dfdbb1f7085189574f0a938013952a"
	contract = "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"
)

type handlerSuite struct {
	suite.Suite

	e       *echo.Echo
	custody *mCustody.Usecase
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func signedIn(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set("address", domain.Address(caller))
		return next(c)
	}
}

func (s *handlerSuite) SetupTest() {
	s.e = echo.New()
	s.e.Validator = bValidator.NewCustomValidator(validator.New())
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	s.custody = mCustody.NewUsecase(s.T())
	New(s.e, s.custody, signedIn)
}

func (s *handlerSuite) do(method, target, body string) (*httptest.ResponseRecorder, delivery.JsonResponse) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	res := delivery.JsonResponse{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	return rec, res
}

func (s *handlerSuite) TestGetItems() {
	s.custody.On("Holdings", mock.Anything).Return([]*custody.Holding{
		{Item: custody.Item{ChainId: 1, Contract: contract, TokenId: "7"}, Depositor: caller},
	}, nil).Once()

	rec, res := s.do(http.MethodGet, "/custody/items", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Len(res.Data, 1)
}

func (s *handlerSuite) TestReceive() {
	item := custody.Item{ChainId: 1, Contract: contract, TokenId: "7"}
	s.custody.On("Receive", mock.Anything, domain.Address(caller), item).Return(nil).Once()

	rec, res := s.do(http.MethodPost, "/custody/items", `{"chainId":1,"contract":"`+contract+`","tokenId":"7"}`)
	s.Equal(http.StatusCreated, rec.Code)
	s.Equal(delivery.JsonResponseStatusSuccess, res.Status)
}

func (s *handlerSuite) TestReceiveConflict() {
	s.custody.On("Receive", mock.Anything, domain.Address(caller), mock.Anything).Return(domain.ErrConflict).Once()

	rec, _ := s.do(http.MethodPost, "/custody/items", `{"chainId":1,"contract":"`+contract+`","tokenId":"7"}`)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *handlerSuite) TestReceiveInvalidBody() {
	rec, res := s.do(http.MethodPost, "/custody/items", `{"chainId":1,"contract":"0x12","tokenId":"7"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(delivery.JsonResponseStatusFail, res.Status)

	rec, _ = s.do(http.MethodPost, "/custody/items", `{"chainId":1,"contract":"`+contract+`","tokenId":"abc"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}
