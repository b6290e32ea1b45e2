package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/access"
	"github.com/x-xyz/goauction/service/ens"
	"github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
)

type handler struct {
	access access.Usecase
	ens    ens.ENS
}

type holderResp struct {
	Holder domain.Address `json:"holder"`
	Held   bool           `json:"held"`
}

// New mounts the access routes, ens may be nil when names are not resolved
func New(e *echo.Echo, access access.Usecase, ens ens.ENS, auth echo.MiddlewareFunc) {
	h := &handler{access, ens}

	g := e.Group("/access")
	g.GET("/holder", h.getHolder)
	g.POST("/transfer", h.transfer, auth)
	g.POST("/renounce", h.renounce, auth)
}

// getHolder
//
//	@Summary		Get privileged holder
//	@Tags			access
//	@Produce		json
//	@Success		200	{object}	object{data=http.holderResp}
//	@Router			/access/holder [get]
func (h *handler) getHolder(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if holder, held, err := h.access.CurrentHolder(ctx); err != nil {
		ctx.WithField("err", err).Error("access.CurrentHolder failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, holderResp{holder, held})
	}
}

// transfer
//
//	@Summary		Transfer the privileged role
//	@Description	The target is a hex address or an ens name
//	@Tags			access
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	http.transfer.params	true	"params"
//	@Success		200
//	@Failure		400
//	@Failure		403
//	@Router			/access/transfer [post]
func (h *handler) transfer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		To string `json:"to" validate:"required" example:"vitalik.eth"` // new holder
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	to, err := ens.ResolveTarget(ctx, h.ens, p.To)
	if err != nil {
		ctx.WithField("err", err).WithField("to", p.To).Warn("ens.ResolveTarget failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.access.Transfer(ctx, middleware.Caller(c), to); err != nil {
		ctx.WithField("err", err).Error("access.Transfer failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, holderResp{to, true})
}

// renounce
//
//	@Summary		Renounce the privileged role
//	@Description	Leaves the role unheld, nobody can take it back
//	@Tags			access
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200
//	@Failure		403
//	@Router			/access/renounce [post]
func (h *handler) renounce(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if err := h.access.Renounce(ctx, middleware.Caller(c)); err != nil {
		ctx.WithField("err", err).Error("access.Renounce failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, holderResp{})
}
