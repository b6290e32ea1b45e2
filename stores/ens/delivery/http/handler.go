package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/middleware"
	"github.com/x-xyz/goauction/service/ens"
)

type handler struct {
	ens ens.ENS
}

// New mounts the name lookups. Without an ens resolver both routes answer 501.
func New(e *echo.Echo, ens ens.ENS) {
	h := &handler{
		ens,
	}

	g := e.Group("/ens")

	g.GET("/resolve/:name", h.resolve)

	g.GET("/reverse-resolve/:address", h.reverseResolve, middleware.IsValidAddress("address"))
}

// resolve
//
//	@Summary	Resolve an ens name
//	@Tags		ens
//	@Produce	json
//	@Param		name	path		string	true	"ens name, e.g. vitalik.eth"
//	@Success	200		{object}	object{data=string}
//	@Failure	400
//	@Failure	404
//	@Router		/ens/resolve/{name} [get]
func (h *handler) resolve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if h.ens == nil {
		return delivery.MakeJsonResp(c, http.StatusNotImplemented, domain.ErrNotImplemented)
	}

	name := c.Param("name")
	if !ens.IsName(name) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	address, err := h.ens.Resolve(ctx, name)
	if err != nil {
		ctx.WithField("err", err).WithField("name", name).Warn("ens.Resolve failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	if address.IsEmpty() {
		return delivery.MakeJsonResp(c, http.StatusNotFound, domain.ErrNotFound)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, address)
}

// reverseResolve
//
//	@Summary	Reverse resolve an address
//	@Tags		ens
//	@Produce	json
//	@Param		address	path		string	true	"address"
//	@Success	200		{object}	object{data=string}
//	@Router		/ens/reverse-resolve/{address} [get]
func (h *handler) reverseResolve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if h.ens == nil {
		return delivery.MakeJsonResp(c, http.StatusNotImplemented, domain.ErrNotImplemented)
	}

	address := domain.Address(c.Param("address")).ToLower()
	name, err := h.ens.ReverseResolve(ctx, address)
	if err != nil {
		ctx.WithField("err", err).WithField("address", address).Warn("ens.ReverseResolve failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, name)
}
