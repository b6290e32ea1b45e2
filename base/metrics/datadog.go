package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/goauction/base/log"
)

const (
	ddClientsSize    = 16 // needs to be 2^n
	ddClientsIdxMask = ddClientsSize - 1

	// buffer 10 metrics before sending to statsd
	bufferMetrics = 10
)

var (
	initOnce sync.Once

	// DdPort is the statsd port of the agent on datadog_host
	DdPort = 8125

	// ddClientsIdx picks the next client round robin
	ddClientsIdx = int32(0)
	ddClients    []statsCli
)

// statsCli is the part of statsd.ClientInterface the sink uses
type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

func initDDClient() {
	ddClients = make([]statsCli, ddClientsSize)

	host := viper.GetString("datadog_host")
	if host == "" {
		log.Log().Info("datadog_host not set, metrics fall back to log client")
		for i := range ddClients {
			ddClients[i] = &LogClient{}
		}
		return
	}

	addr := fmt.Sprintf("%s:%d", host, DdPort)
	for i := range ddClients {
		client, err := statsd.NewBuffered(addr, bufferMetrics)
		if err != nil {
			log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
		}
		ddClients[i] = client
	}
	log.Log().WithFields(log.Fields{"addr": addr, "clients": ddClientsSize}).Info("connected to datadog agent")
}

func nextClient() statsCli {
	initOnce.Do(initDDClient)
	return ddClients[atomic.AddInt32(&ddClientsIdx, 1)&ddClientsIdxMask]
}

// ddSink sends to the pooled statsd clients with the tags every metric of a Service carries
type ddSink struct {
	tags []string
}

func (s *ddSink) with(tags []string) []string {
	all := make([]string, 0, len(s.tags)+len(tags))
	return append(append(all, s.tags...), tags...)
}

func (s *ddSink) report(fn, key string, val float64, err error) {
	if err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": fn}).Error("Bump fail")
	}
}

func (s *ddSink) gauge(key string, val, rate float64, tags []string) {
	s.report("gauge", key, val, nextClient().Gauge(key, val, s.with(tags), rate))
}

func (s *ddSink) count(key string, val, rate float64, tags []string) {
	s.report("count", key, val, nextClient().Count(key, int64(val), s.with(tags), rate))
}

func (s *ddSink) histogram(key string, val, rate float64, tags []string) {
	s.report("histogram", key, val, nextClient().Histogram(key, val, s.with(tags), rate))
}

func (s *ddSink) timing(key string, ms, rate float64, tags []string) {
	s.report("timing", key, ms, nextClient().TimeInMilliseconds(key, ms, s.with(tags), rate))
}
