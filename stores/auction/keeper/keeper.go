package keeper

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/x-xyz/goauction/base/backoff"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/goroutine"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
)

const (
	DefaultSchedule = "*/30 * * * * *"

	defaultTimeout  = 30 * time.Second
	defaultAttempts = 3
)

type KeeperCfg struct {
	Auction auction.Usecase
	// Address is the caller recorded for keeper settlements
	Address  domain.Address
	Schedule string
	Timeout  time.Duration
	Attempts int
	// Backoff spaces retries of a failed tick, exponential from one second when nil
	Backoff func() *backoff.Backoff
}

// Keeper settles expired auctions on a cron schedule
type Keeper struct {
	cron     *cron.Cron
	auction  auction.Usecase
	address  domain.Address
	timeout  time.Duration
	attempts int
	backoff  func() *backoff.Backoff
	met      metrics.Service
}

func New(cfg KeeperCfg) (*Keeper, error) {
	if cfg.Address.IsEmpty() {
		return nil, domain.ErrInvalidAddress
	}
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultSchedule
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = defaultAttempts
	}
	if cfg.Backoff == nil {
		cfg.Backoff = func() *backoff.Backoff { return backoff.NewExponential(time.Second, 10*time.Second) }
	}

	k := &Keeper{
		auction:  cfg.Auction,
		address:  cfg.Address.ToLower(),
		timeout:  cfg.Timeout,
		attempts: cfg.Attempts,
		backoff:  cfg.Backoff,
		met:      metrics.New("keeper"),
	}

	logger := cronLogger{log.Log().WithField("worker", "keeper")}
	k.cron = cron.New(
		cron.WithSeconds(),
		cron.WithLogger(logger),
		cron.WithChain(cron.SkipIfStillRunning(logger)),
	)
	if _, err := k.cron.AddFunc(cfg.Schedule, k.run); err != nil {
		return nil, fmt.Errorf("invalid keeper schedule %q: %w", cfg.Schedule, err)
	}
	return k, nil
}

func (k *Keeper) Start() {
	k.cron.Start()
	log.Log().WithFields(log.Fields{"address": k.address, "entries": len(k.cron.Entries())}).Info("keeper started")
}

// Stop waits for a running tick to return
func (k *Keeper) Stop() {
	<-k.cron.Stop().Done()
	log.Log().Info("keeper stopped")
}

// Next is when the next tick is scheduled, zero before Start
func (k *Keeper) Next() time.Time {
	entries := k.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Tick settles the auction when it has expired. A settlement that lost the race
// to another caller is not an error.
func (k *Keeper) Tick(c ctx.Ctx) (bool, error) {
	status, err := k.auction.Status(c)
	if err != nil {
		c.WithField("err", err).Error("auction.Status failed")
		return false, err
	}
	if status.Phase != auction.PhaseExpired {
		return false, nil
	}

	if err := k.auction.SettleAuction(c, k.address); errors.Is(err, domain.ErrWrongPhase) {
		c.WithField("round", status.Round).Info("auction already settled")
		return false, nil
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "round": status.Round}).Error("auction.SettleAuction failed")
		return false, err
	}

	c.WithFields(log.Fields{"round": status.Round, "keeper": k.address}).Info("auction settled")
	return true, nil
}

func (k *Keeper) run() {
	c, cancel := ctx.WithTimeout(ctx.Background(), k.timeout)
	defer cancel()
	defer k.met.BumpTime("tick.time").End()

	<-goroutine.RecoverableGo(func() {
		settled := false
		err := k.backoff().Retry(c, k.attempts, func() error {
			var err error
			settled, err = k.Tick(c)
			return err
		})
		if err != nil {
			k.met.BumpSum("tick.err", 1)
			return
		}
		if settled {
			k.met.BumpSum("settled", 1)
		}
	}, goroutine.WithAfterRecovered(func(p interface{}, _ []byte) {
		k.met.BumpSum("tick.panic", 1)
		c.WithField("panic", p).Error("keeper tick panicked")
	}))
}

// cronLogger routes cron's own logs through zap
type cronLogger struct {
	log.Logger
}

func (l cronLogger) fields(keysAndValues []interface{}) log.Logger {
	logger := l.Logger
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		logger = logger.WithField(fmt.Sprint(keysAndValues[i]), keysAndValues[i+1])
	}
	return logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).WithField("err", err).Error(msg)
}
