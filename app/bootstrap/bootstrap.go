// Package bootstrap builds the auction engine and its collaborators from viper config.
// The api and keeper binaries share it so both talk to the same storage the same way.
package bootstrap

import (
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/database/mongoclient"
	"github.com/x-xyz/goauction/base/database/redisclient"
	"github.com/x-xyz/goauction/base/ethereum"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/access"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/custody"
	"github.com/x-xyz/goauction/domain/ledger"
	"github.com/x-xyz/goauction/service/chain"
	"github.com/x-xyz/goauction/service/chain/contract"
	"github.com/x-xyz/goauction/service/ens"
	"github.com/x-xyz/goauction/service/query"
	"github.com/x-xyz/goauction/service/redis"
	access_memory "github.com/x-xyz/goauction/stores/access/repository/memory"
	access_mongo "github.com/x-xyz/goauction/stores/access/repository/mongo"
	access_usecase "github.com/x-xyz/goauction/stores/access/usecase"
	auction_memory "github.com/x-xyz/goauction/stores/auction/repository/memory"
	auction_mongo "github.com/x-xyz/goauction/stores/auction/repository/mongo"
	auction_redis "github.com/x-xyz/goauction/stores/auction/repository/redis"
	"github.com/x-xyz/goauction/stores/auction/notifier"
	auction_usecase "github.com/x-xyz/goauction/stores/auction/usecase"
	custody_chain "github.com/x-xyz/goauction/stores/custody/chain"
	custody_memory "github.com/x-xyz/goauction/stores/custody/repository/memory"
	custody_mongo "github.com/x-xyz/goauction/stores/custody/repository/mongo"
	custody_usecase "github.com/x-xyz/goauction/stores/custody/usecase"
	"github.com/x-xyz/goauction/stores/ledger/payer"
	ledger_memory "github.com/x-xyz/goauction/stores/ledger/repository/memory"
	ledger_mongo "github.com/x-xyz/goauction/stores/ledger/repository/mongo"
	ledger_usecase "github.com/x-xyz/goauction/stores/ledger/usecase"
)

const (
	payerChain  = "chain"
	payerLedger = "ledger"
)

// App holds everything a binary needs, Close releases the background workers
type App struct {
	Mongo *mongoclient.Client
	Redis redis.Service
	Chain chain.Client
	ENS   ens.ENS

	ChainId int32
	Erc1271 contract.Erc1271Contract

	Access  access.Usecase
	Ledger  ledger.Usecase
	Custody custody.Usecase
	Auction auction.Usecase

	fanOut *notifier.FanOut
}

func (a *App) Close(c ctx.Ctx) {
	if a.fanOut != nil {
		a.fanOut.Close()
	}
	if a.Mongo != nil {
		if err := a.Mongo.Close(c); err != nil {
			c.WithField("err", err).Warn("mongo.Close failed")
		}
	}
}

// New connects storage and wires the usecases. An empty mongo.uri keeps all state in
// memory, which only makes sense for a single dev process.
func New(c ctx.Ctx) (*App, error) {
	app := &App{ChainId: viper.GetInt32("chain.chainId")}

	c.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCachePool := redisclient.MustConnectRedis(redisclient.Config{
		URI:            viper.GetString("redis_cache.uri"),
		Password:       viper.GetString("redis_cache.password"),
		PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
		Retry:          true,
	})
	app.Redis = redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	var (
		transactor  domain.Transactor = domain.NoTransaction{}
		accessRepo  access.Repo
		ledgerRepo  ledger.Repo
		custodyRepo custody.Repo
		auctionRepo auction.Repo
		eventRepo   auction.EventRepo
	)
	if uri := viper.GetString("mongo.uri"); uri != "" {
		c.Info("init mongo")
		app.Mongo = mongoclient.MustConnectMongoClient(mongoclient.Config{
			URI:            uri,
			AuthDBName:     viper.GetString("mongo.authDBName"),
			DBName:         viper.GetString("mongo.dbName"),
			SSL:            viper.GetBool("mongo.enableSSL"),
			Majority:       true,
			PoolMultiplier: 2,
		})
		q := query.New(app.Mongo, viper.GetBool("mongo.checkIndex"))
		if err := auction_mongo.EnsureIndexes(c, q); err != nil {
			return nil, err
		}
		if err := custody_mongo.EnsureIndexes(c, q); err != nil {
			return nil, err
		}
		transactor = q
		accessRepo = access_mongo.New(q)
		ledgerRepo = ledger_mongo.New(q)
		custodyRepo = custody_mongo.New(q)
		auctionRepo = auction_mongo.New(q)
		eventRepo = auction_mongo.NewEventRepo(q)
	} else {
		c.Warn("mongo.uri is empty, state is kept in memory")
		accessRepo = access_memory.New()
		ledgerRepo = ledger_memory.New()
		custodyRepo = custody_memory.New()
		auctionRepo = auction_memory.New()
		eventRepo = auction_memory.NewEventRepo()
	}

	var hotWallet *ecdsa.PrivateKey
	var depositTo common.Address
	if hex := viper.GetString("chain.hotWalletKey"); hex != "" {
		key, addr, err := ethereum.LoadKey(hex)
		if err != nil {
			return nil, fmt.Errorf("invalid chain.hotWalletKey: %w", err)
		}
		hotWallet = key
		depositTo = addr
		c.WithField("address", addr.Hex()).Info("hot wallet loaded")
	}
	if addr := viper.GetString("ledger.depositAddress"); addr != "" {
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("invalid ledger.depositAddress %q", addr)
		}
		depositTo = common.HexToAddress(addr)
	}

	var erc721 contract.Erc721Contract
	if rpc := viper.GetString("chain.rpcUrl"); rpc != "" {
		client, err := chain.NewClient(c, &chain.ClientCfg{
			RpcUrls: map[int32]string{app.ChainId: rpc},
		})
		if err != nil {
			c.WithField("err", err).Warn("chain client started with error")
		}
		app.Chain = client
		app.Erc1271 = contract.NewErc1271(client)
		erc721 = contract.NewErc721(client, viper.GetUint64("chain.gasLimit"))
	}

	if rpc := viper.GetString("ens.rpcUrl"); rpc != "" {
		e, err := ens.New(rpc, app.Redis)
		if err != nil {
			c.WithField("err", err).Warn("ens disabled")
		} else {
			app.ENS = e
		}
	}

	var pay ledger.Payer
	switch mode := viper.GetString("ledger.payer"); mode {
	case payerChain:
		if app.Chain == nil || hotWallet == nil {
			return nil, fmt.Errorf("ledger.payer %q needs chain.rpcUrl and chain.hotWalletKey", mode)
		}
		pay = payer.NewChainPayer(app.Chain, app.ChainId, hotWallet)
	case payerLedger, "":
		pay = payer.NewLedgerPayer()
	default:
		return nil, fmt.Errorf("unknown ledger.payer %q", mode)
	}

	custodyCfg := &custody_usecase.CustodyUseCaseCfg{
		Repo:       custodyRepo,
		Vault:      domain.Address(viper.GetString("custody.vault")),
		Transactor: transactor,
	}
	if erc721 != nil {
		if viper.GetBool("custody.verifyOnChain") {
			custodyCfg.Verifier = custody_chain.NewOwnershipVerifier(erc721, app.Redis)
		}
		if hotWallet != nil {
			custodyCfg.Transferer = custody_chain.NewTransferer(erc721, hotWallet)
		}
	}

	app.Access = access_usecase.New(accessRepo)
	ledgerCfg := &ledger_usecase.LedgerUseCaseCfg{
		Repo:       ledgerRepo,
		Payer:      pay,
		Transactor: transactor,
	}
	if app.Chain != nil && depositTo != (common.Address{}) {
		ledgerCfg.Verifier = payer.NewDepositVerifier(app.Chain, app.ChainId, depositTo)
		c.WithField("address", depositTo.Hex()).Info("deposits accepted")
	} else {
		c.Warn("deposits disabled, bids can not be funded")
	}
	app.Ledger = ledger_usecase.New(ledgerCfg)
	app.Custody = custody_usecase.New(custodyCfg)

	feed := auction_redis.NewFeed(app.Redis, viper.GetInt("events.feedSize"))
	app.fanOut = notifier.NewFanOut(
		viper.GetInt("events.queue"),
		notifier.NewLog(),
		notifier.NewJournal(eventRepo),
		feed,
	)

	auctionCfg := &auction_usecase.AuctionUseCaseCfg{
		Repo:       auctionRepo,
		Events:     eventRepo,
		Feed:       feed,
		Notifier:   app.fanOut,
		Access:     app.Access,
		Ledger:     app.Ledger,
		Custody:    app.Custody,
		Transactor: transactor,
	}
	if viper.GetBool("auction.distributedLock") {
		ttl := viper.GetDuration("auction.lockTtl")
		if ttl <= 0 {
			ttl = 10 * time.Second
		}
		auctionCfg.Locker = auction_redis.NewLocker(app.Redis, ttl)
	}
	app.Auction = auction_usecase.New(auctionCfg)

	return app, nil
}

// Init assigns the owner role and persists the first auction record. Both are no-ops
// once done, so every start may call it.
func (a *App) Init(c ctx.Ctx) error {
	owner := domain.Address(viper.GetString("auction.initialOwner"))
	if owner.IsEmpty() {
		return fmt.Errorf("auction.initialOwner is required")
	}
	if err := a.Access.Init(c, owner.ToLower()); err != nil {
		c.WithField("err", err).Error("access.Init failed")
		return err
	}

	cfg := auction.Config{
		MinBidIncreaseBps: viper.GetInt64("auction.minBidIncreaseBps"),
		Beneficiary:       domain.Address(viper.GetString("auction.beneficiary")),
	}
	if cfg.MinBidIncreaseBps == 0 {
		cfg.MinBidIncreaseBps = auction.MinBidIncreaseFloorBps
	}
	if err := a.Auction.Init(c, cfg); err != nil {
		c.WithFields(log.Fields{"err": err, "config": cfg}).Error("auction.Init failed")
		return err
	}
	return nil
}
