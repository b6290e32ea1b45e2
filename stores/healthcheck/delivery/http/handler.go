package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	hcdomain "github.com/x-xyz/goauction/domain/healthcheck"
)

type healthResp struct {
	Healthy   string    `json:"healthy"`
	CheckedAt time.Time `json:"checkedAt"`
}

type handler struct {
	hc  hcdomain.HealthCheckUsecase
	now func() time.Time
}

func New(e *echo.Echo, us hcdomain.HealthCheckUsecase) {
	h := &handler{hc: us, now: time.Now}
	e.GET("/health", h.check)
}

// check
//
//	@Summary	Liveness of storage and cache
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	object{data=http.healthResp}
//	@Failure	503	{object}	object{data=string}
//	@Router		/health [get]
func (h *handler) check(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	if err := h.hc.Check(ctx); err != nil {
		ctx.WithField("err", err).Warn("health check failed")
		return delivery.MakeJsonResp(c, http.StatusServiceUnavailable, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, healthResp{Healthy: "ok", CheckedAt: h.now().UTC()})
}
