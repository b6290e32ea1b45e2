package notifier

import (
	"time"

	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain/auction"
)

const scheduleTimeout = 3 * time.Second

type logNotifier struct{}

// NewLog writes every event to the ctx logger
func NewLog() auction.Notifier {
	return logNotifier{}
}

func (logNotifier) Notify(c ctx.Ctx, e *auction.Event) error {
	fields := log.Fields{
		"id":    e.ID,
		"seq":   e.Seq,
		"round": e.Round,
		"type":  e.Type,
	}
	if e.Bidder != "" {
		fields["bidder"] = e.Bidder
	}
	if e.Beneficiary != "" {
		fields["beneficiary"] = e.Beneficiary
	}
	if e.Amount != "" {
		fields["amount"] = e.Amount
	}
	if e.Deadline != nil {
		fields["deadline"] = e.Deadline.UTC()
	}
	c.WithFields(fields).Info("auction event")
	return nil
}

type journal struct {
	repo auction.EventRepo
}

// NewJournal appends every event to repo
func NewJournal(repo auction.EventRepo) auction.Notifier {
	return &journal{repo}
}

func (j *journal) Notify(c ctx.Ctx, e *auction.Event) error {
	return j.repo.Insert(c, e)
}

// FanOut hands each event to every notifier. Each notifier has its own single worker lane
// and sees events in the order Notify was called. Notify returns once the deliveries are
// queued, failures are logged and counted only.
type FanOut struct {
	notifiers []auction.Notifier
	lanes     []*goroutines.Pool
	met       metrics.Service
}

// NewFanOut queues up to queue events per notifier before Notify blocks
func NewFanOut(queue int, notifiers ...auction.Notifier) *FanOut {
	if queue <= 0 {
		queue = 1024
	}
	lanes := make([]*goroutines.Pool, 0, len(notifiers))
	for range notifiers {
		lanes = append(lanes, goroutines.NewPool(1, goroutines.WithTaskQueueLength(queue), goroutines.WithPreAllocWorkers(1)))
	}
	return &FanOut{
		notifiers: notifiers,
		lanes:     lanes,
		met:       metrics.New("auction.events"),
	}
}

func (f *FanOut) Notify(c ctx.Ctx, e *auction.Event) error {
	c = ctx.Detach(c)
	for i, n := range f.notifiers {
		n := n
		err := f.lanes[i].ScheduleWithTimeout(scheduleTimeout, func() {
			if err := n.Notify(c, e); err != nil {
				f.met.BumpSum("notify.err", 1, "type", string(e.Type))
				c.WithFields(log.Fields{
					"err":   err,
					"id":    e.ID,
					"seq":   e.Seq,
					"event": e.Type,
				}).Error("notifier.Notify failed")
			}
		})
		if err != nil {
			f.met.BumpSum("schedule.err", 1, "type", string(e.Type))
			c.WithFields(log.Fields{
				"err":   err,
				"id":    e.ID,
				"seq":   e.Seq,
				"event": e.Type,
			}).Error("failed to ScheduleWithTimeout")
		}
	}
	return nil
}

// Close releases the lanes
func (f *FanOut) Close() {
	for _, lane := range f.lanes {
		lane.Release()
	}
}
