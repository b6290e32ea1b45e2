package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain/custody"
	"github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
)

type handler struct {
	custody custody.Usecase
}

// New mounts the custody routes, auth guards the deposit
func New(e *echo.Echo, custody custody.Usecase, auth echo.MiddlewareFunc) {
	h := &handler{custody}

	g := e.Group("/custody")
	g.GET("/items", h.getItems)
	g.POST("/items", h.receive, auth)
}

// getItems
//
//	@Summary		List held items
//	@Tags			custody
//	@Produce		json
//	@Success		200	{object}	object{data=[]custody.Holding}
//	@Router			/custody/items [get]
func (h *handler) getItems(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if res, err := h.custody.Holdings(ctx); err != nil {
		ctx.WithField("err", err).Error("custody.Holdings failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// receive
//
//	@Summary		Record a deposit
//	@Description	Registers an item the caller sent to the vault. The vault must already own it when on-chain checks are on.
//	@Tags			custody
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			item	body	custody.Item	true	"item"
//	@Success		201
//	@Failure		400
//	@Failure		403
//	@Failure		409
//	@Router			/custody/items [post]
func (h *handler) receive(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	item := custody.Item{}
	if err := c.Bind(&item); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&item); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	if err := h.custody.Receive(ctx, middleware.Caller(c), item); err != nil {
		ctx.WithField("err", err).Error("custody.Receive failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, item.Normalize())
}
