package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/amount"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/ledger"
	"github.com/x-xyz/goauction/middleware"
)

type handler struct {
	ledger ledger.Usecase
}

type depositResp struct {
	TxHash      domain.TxHash  `json:"txHash"`
	Account     domain.Address `json:"account"`
	Amount      string         `json:"amount"`
	AmountEther string         `json:"amountEther"`
}

type balanceResp struct {
	Account      domain.Address `json:"account"`
	Balance      string         `json:"balance"`
	BalanceEther string         `json:"balanceEther"`
}

func New(e *echo.Echo, ledger ledger.Usecase) {
	h := &handler{ledger}

	g := e.Group("/ledger")
	// the sender of the transfer is credited, whoever reports it
	g.POST("/deposit", h.deposit)
	g.GET("/:address", h.getBalance, middleware.IsValidAddress("address"))
	// anyone may push the balance of any account out
	g.POST("/:address/withdraw", h.withdraw, middleware.IsValidAddress("address"))
}

// getBalance
//
//	@Summary		Get balance
//	@Description	Deposits and refunds credited to an account, not yet bid or withdrawn, in wei and ether
//	@Tags			ledger
//	@Produce		json
//	@Param			address	path		string	true	"account address"
//	@Success		200		{object}	object{data=http.balanceResp}
//	@Router			/ledger/{address} [get]
func (h *handler) getBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	account := domain.Address(c.Param("address"))

	if bal, err := h.ledger.BalanceOf(ctx, account); err != nil {
		ctx.WithField("err", err).Error("ledger.BalanceOf failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, balanceResp{
			Account:      account,
			Balance:      bal.String(),
			BalanceEther: amount.ToEther(bal).String(),
		})
	}
}

// withdraw
//
//	@Summary		Withdraw balance
//	@Description	Pays the whole balance out to the account, an empty balance pays nothing
//	@Tags			ledger
//	@Produce		json
//	@Param			address	path		string	true	"account address"
//	@Success		200		{object}	object{data=http.balanceResp}
//	@Router			/ledger/{address}/withdraw [post]
func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	account := domain.Address(c.Param("address"))

	if paid, err := h.ledger.Withdraw(ctx, account); err != nil {
		ctx.WithField("err", err).Error("ledger.Withdraw failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, balanceResp{
			Account:      account,
			Balance:      paid.String(),
			BalanceEther: amount.ToEther(paid).String(),
		})
	}
}

// deposit
//
//	@Summary		Credit a deposit
//	@Description	Credits the sender of a confirmed value transfer into the engine wallet. Bids spend this balance. Every tx hash credits once.
//	@Tags			ledger
//	@Accept			json
//	@Produce		json
//	@Param			params	body		http.deposit.params	true	"params"
//	@Success		200		{object}	object{data=http.depositResp}
//	@Failure		400
//	@Failure		409
//	@Router			/ledger/deposit [post]
func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		TxHash domain.TxHash `json:"txHash" example:"0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	if d, err := h.ledger.Deposit(ctx, p.TxHash); err != nil {
		ctx.WithField("err", err).Warn("ledger.Deposit failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		wei, _ := amount.ParseWei(d.Amount)
		return delivery.MakeJsonResp(c, http.StatusOK, depositResp{
			TxHash:      d.TxHash,
			Account:     d.Account,
			Amount:      d.Amount,
			AmountEther: amount.ToEther(wei).String(),
		})
	}
}
