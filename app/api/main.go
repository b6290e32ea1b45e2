package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/x-xyz/goauction/app/bootstrap"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	bValidator "github.com/x-xyz/goauction/base/validator"
	"github.com/x-xyz/goauction/domain"
	mmiddleware "github.com/x-xyz/goauction/middleware"
	access_delivery "github.com/x-xyz/goauction/stores/access/delivery/http"
	auction_delivery "github.com/x-xyz/goauction/stores/auction/delivery/http"
	"github.com/x-xyz/goauction/stores/auction/keeper"
	auth_delivery "github.com/x-xyz/goauction/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
	auth_redis "github.com/x-xyz/goauction/stores/auth/repository/redis"
	auth_usecase "github.com/x-xyz/goauction/stores/auth/usecase"
	custody_delivery "github.com/x-xyz/goauction/stores/custody/delivery/http"
	ens_delivery "github.com/x-xyz/goauction/stores/ens/delivery/http"
	hc_delivery "github.com/x-xyz/goauction/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/goauction/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/goauction/stores/healthcheck/usecase"
	ledger_delivery "github.com/x-xyz/goauction/stores/ledger/delivery/http"

	_ "github.com/x-xyz/goauction/app/api/docs"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	log.SetDebug(viper.GetBool(`debug`))
	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

//	@title			Auction API
//	@version		1.0
//	@description	English auction with pull-based refunds.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				retrive token from #/auth/post_auth_sign and apply with `bearer {token}`
func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	app, err := bootstrap.New(context)
	if err != nil {
		context.WithField("err", err).Panic("bootstrap.New failed")
	}
	defer app.Close(context)

	if err := app.Init(context); err != nil {
		context.WithField("err", err).Panic("app.Init failed")
	}

	mmiddleware.SetupCache(app.Redis)

	signatureMsg := viper.GetString("auth.signatureMsg")
	auth := auth_usecase.New(&auth_usecase.AuthUseCaseCfg{
		JwtSecret:    viper.GetString("auth.jwtSecret"),
		SignatureMsg: signatureMsg,
		NonceRepo:    auth_redis.New(app.Redis, viper.GetDuration("auth.nonceTtl")),
		Erc1271:      app.Erc1271,
		ChainId:      app.ChainId,
	})
	authMiddleware := auth_middleware.New(auth).Auth()

	hc := hc_usecase.New(hc_repo.New(app.Mongo, app.Redis))

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, signatureMsg)
	auction_delivery.New(e, app.Auction, app.ENS, authMiddleware)
	access_delivery.New(e, app.Access, app.ENS, authMiddleware)
	ledger_delivery.New(e, app.Ledger)
	custody_delivery.New(e, app.Custody, authMiddleware)
	ens_delivery.New(e, app.ENS)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	var k *keeper.Keeper
	if viper.GetBool("keeper.enabled") {
		k, err = keeper.New(keeper.KeeperCfg{
			Auction:  app.Auction,
			Address:  domain.Address(viper.GetString("keeper.address")),
			Schedule: viper.GetString("keeper.schedule"),
			Timeout:  viper.GetDuration("context.timeout"),
		})
		if err != nil {
			context.WithField("err", err).Panic("keeper.New failed")
		}
		k.Start()
	}

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")

	if k != nil {
		k.Stop()
	}

	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
