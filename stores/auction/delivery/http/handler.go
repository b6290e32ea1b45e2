package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/amount"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/custody"
	"github.com/x-xyz/goauction/middleware"
	"github.com/x-xyz/goauction/service/ens"
	authMiddleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type handler struct {
	auction auction.Usecase
	ens     ens.ENS
}

type statusResp struct {
	*auction.Status
	TopBid          string `json:"topBid,omitempty"`
	TopBidEther     string `json:"topBidEther,omitempty"`
	MinimumBid      string `json:"minimumBid"`
	MinimumBidEther string `json:"minimumBidEther"`
}

type minimumBidResp struct {
	MinimumBid      string `json:"minimumBid"`
	MinimumBidEther string `json:"minimumBidEther"`
}

// New mounts the auction routes, every mutation needs a signed in caller
func New(e *echo.Echo, auction auction.Usecase, ens ens.ENS, auth echo.MiddlewareFunc) {
	h := &handler{auction, ens}

	g := e.Group("/auction")
	g.GET("", h.getStatus)
	g.GET("/minimumBid", h.getMinimumBid)
	g.GET("/events", h.getEvents, middleware.CacheHttp(5*time.Second))
	g.GET("/events/recent", h.getRecentEvents)

	g.POST("/configure", h.configure, auth)
	g.POST("/beneficiary", h.setBeneficiary, auth)
	g.POST("/start", h.start, auth)
	g.POST("/bid", h.bid, auth)
	g.POST("/cancel", h.cancel, auth)
	g.POST("/settle", h.settle, auth)
	g.POST("/items/withdraw", h.withdrawItem, auth)
}

func toStatusResp(s *auction.Status) statusResp {
	res := statusResp{
		Status:          s,
		MinimumBid:      s.MinimumBid.String(),
		MinimumBidEther: amount.ToEther(s.MinimumBid).String(),
	}
	if s.TopBid != nil {
		res.TopBid = s.TopBid.String()
		res.TopBidEther = amount.ToEther(s.TopBid).String()
	}
	return res
}

func parsePaging(c echo.Context) (offset, limit int, err error) {
	limit = defaultLimit
	if v := c.QueryParam("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			return 0, 0, domain.ErrBadParamInput
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit <= 0 {
			return 0, 0, domain.ErrBadParamInput
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return offset, limit, nil
}

// bind decodes and validates the body into p
func bind(c echo.Context, p interface{}) error {
	if err := c.Bind(p); err != nil {
		c.Get("ctx").(ctx.Ctx).WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	return nil
}

// getStatus
//
//	@Summary		Get auction status
//	@Description	Config, phase, deadline, leader and the minimum acceptable bid in wei and ether
//	@Tags			auction
//	@Produce		json
//	@Success		200	{object}	object{data=http.statusResp}
//	@Router			/auction [get]
func (h *handler) getStatus(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if s, err := h.auction.Status(ctx); err != nil {
		ctx.WithField("err", err).Error("auction.Status failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, toStatusResp(s))
	}
}

// getMinimumBid
//
//	@Summary		Get minimum bid
//	@Tags			auction
//	@Produce		json
//	@Success		200	{object}	object{data=http.minimumBidResp}
//	@Router			/auction/minimumBid [get]
func (h *handler) getMinimumBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if min, err := h.auction.MinimumBid(ctx); err != nil {
		ctx.WithField("err", err).Error("auction.MinimumBid failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, minimumBidResp{
			MinimumBid:      min.String(),
			MinimumBidEther: amount.ToEther(min).String(),
		})
	}
}

// getEvents
//
//	@Summary		List auction events
//	@Description	Journal of committed events, newest first
//	@Tags			auction
//	@Produce		json
//	@Param			offset	query		int	false	"offset"
//	@Param			limit	query		int	false	"limit, at most 100"
//	@Success		200		{object}	object{data=[]auction.Event}
//	@Router			/auction/events [get]
func (h *handler) getEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	offset, limit, err := parsePaging(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.auction.Events(ctx, offset, limit); err != nil {
		ctx.WithField("err", err).Error("auction.Events failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// getRecentEvents
//
//	@Summary		List recent auction events
//	@Tags			auction
//	@Produce		json
//	@Param			limit	query		int	false	"limit, at most 100"
//	@Success		200		{object}	object{data=[]auction.Event}
//	@Router			/auction/events/recent [get]
func (h *handler) getRecentEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	_, limit, err := parsePaging(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.auction.RecentEvents(ctx, limit); err != nil {
		ctx.WithField("err", err).Error("auction.RecentEvents failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// configure
//
//	@Summary		Set minimum bid increase
//	@Tags			auction
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	http.configure.params	true	"params"
//	@Success		200
//	@Failure		400
//	@Failure		403
//	@Failure		409
//	@Router			/auction/configure [post]
func (h *handler) configure(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		MinBidIncreaseBps int64 `json:"minBidIncreaseBps" validate:"required" example:"200"` // basis points, at least 200
	}

	p := &params{}
	if err := bind(c, p); err != nil || c.Response().Committed {
		return err
	}

	if err := h.auction.Configure(ctx, authMiddleware.Caller(c), p.MinBidIncreaseBps); err != nil {
		ctx.WithField("err", err).Warn("auction.Configure failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, p)
}

// setBeneficiary
//
//	@Summary		Set beneficiary
//	@Description	The beneficiary is a hex address or an ens name
//	@Tags			auction
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	http.setBeneficiary.params	true	"params"
//	@Success		200
//	@Failure		400
//	@Failure		403
//	@Router			/auction/beneficiary [post]
func (h *handler) setBeneficiary(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Beneficiary string `json:"beneficiary" validate:"required" example:"vitalik.eth"`
	}

	p := &params{}
	if err := bind(c, p); err != nil || c.Response().Committed {
		return err
	}

	beneficiary, err := ens.ResolveTarget(ctx, h.ens, p.Beneficiary)
	if err != nil {
		ctx.WithField("err", err).WithField("beneficiary", p.Beneficiary).Warn("ens.ResolveTarget failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.auction.SetBeneficiary(ctx, authMiddleware.Caller(c), beneficiary); err != nil {
		ctx.WithField("err", err).Warn("auction.SetBeneficiary failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]domain.Address{"beneficiary": beneficiary})
}

// start
//
//	@Summary		Start auction
//	@Description	Either deadline (RFC3339) or duration (Go duration, e.g. 24h) sets the end. Amounts are wei unless unit is ether.
//	@Tags			auction
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	http.start.params	true	"params"
//	@Success		200
//	@Failure		400
//	@Failure		403
//	@Failure		409
//	@Router			/auction/start [post]
func (h *handler) start(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		StartingBid string     `json:"startingBid" validate:"required" example:"2"`
		Unit        string     `json:"unit" validate:"omitempty,oneof=wei ether" example:"ether"`
		Deadline    *time.Time `json:"deadline" validate:"required_without=Duration"`
		Duration    string     `json:"duration" validate:"required_without=Deadline" example:"24h"`
	}

	p := &params{}
	if err := bind(c, p); err != nil || c.Response().Committed {
		return err
	}

	startingBid, err := amount.ParseAmount(p.StartingBid, p.Unit)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	var deadline time.Time
	if p.Deadline != nil {
		deadline = *p.Deadline
	} else if d, err := time.ParseDuration(p.Duration); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	} else {
		deadline = time.Now().Add(d)
	}

	if err := h.auction.StartAuction(ctx, authMiddleware.Caller(c), startingBid, deadline); err != nil {
		ctx.WithField("err", err).Warn("auction.StartAuction failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return h.getStatus(c)
}

// bid
//
//	@Summary		Place a bid
//	@Description	Amounts are wei unless unit is ether. The bid is spent from the ledger balance of the caller, fund it with /ledger/deposit first. An outbid leader is credited in the ledger.
//	@Tags			auction
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	http.bid.params	true	"params"
//	@Success		200		{object}	object{data=http.statusResp}
//	@Failure		400
//	@Failure		402
//	@Failure		409
//	@Failure		422
//	@Router			/auction/bid [post]
func (h *handler) bid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Amount string `json:"amount" validate:"required" example:"2.04"`
		Unit   string `json:"unit" validate:"omitempty,oneof=wei ether" example:"ether"`
	}

	p := &params{}
	if err := bind(c, p); err != nil || c.Response().Committed {
		return err
	}

	value, err := amount.ParseAmount(p.Amount, p.Unit)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.auction.Bid(ctx, authMiddleware.Caller(c), value); err != nil {
		ctx.WithField("err", err).Warn("auction.Bid failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return h.getStatus(c)
}

// cancel
//
//	@Summary		Cancel auction
//	@Tags			auction
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200
//	@Failure		403
//	@Failure		409
//	@Router			/auction/cancel [post]
func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if err := h.auction.CancelAuction(ctx, authMiddleware.Caller(c)); err != nil {
		ctx.WithField("err", err).Warn("auction.CancelAuction failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return h.getStatus(c)
}

// settle
//
//	@Summary		Settle auction
//	@Description	Anyone signed in may settle an expired auction
//	@Tags			auction
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200
//	@Failure		409
//	@Router			/auction/settle [post]
func (h *handler) settle(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if err := h.auction.SettleAuction(ctx, authMiddleware.Caller(c)); err != nil {
		ctx.WithField("err", err).Warn("auction.SettleAuction failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return h.getStatus(c)
}

// withdrawItem
//
//	@Summary		Withdraw a held item
//	@Description	Only while no auction runs. The recipient is a hex address or an ens name.
//	@Tags			auction
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	http.withdrawItem.params	true	"params"
//	@Success		200
//	@Failure		400
//	@Failure		403
//	@Failure		404
//	@Failure		409
//	@Router			/auction/items/withdraw [post]
func (h *handler) withdrawItem(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Item      custody.Item `json:"item"`
		Recipient string       `json:"recipient" validate:"required" example:"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"`
	}

	p := &params{}
	if err := bind(c, p); err != nil || c.Response().Committed {
		return err
	}

	recipient, err := ens.ResolveTarget(ctx, h.ens, p.Recipient)
	if err != nil {
		ctx.WithField("err", err).WithField("recipient", p.Recipient).Warn("ens.ResolveTarget failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.auction.WithdrawItem(ctx, authMiddleware.Caller(c), p.Item, recipient); err != nil {
		ctx.WithField("err", err).Warn("auction.WithdrawItem failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, p.Item.Normalize())
}
