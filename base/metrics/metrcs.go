/*Package metrics wraps datadog-go to facilitate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/x-xyz/goauction/base/env"
)

const (
	// TagValueNA is used for tags whose values are not available.
	TagValueNA = "n/a"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// Option is functional parameter for metrics option
type Option func(*opt)

type opt struct {
	withPodName bool
}

// WithoutPodName drops the pod tag. Pod names multiply custom metrics, skip them when
// grouping by pod is not needed.
func WithoutPodName() Option {
	return func(o *opt) {
		o.withPodName = false
	}
}

// New creates a Service whose keys are prefixed with pkgName. Bumps of a package listed in
// metrics.disabled are dropped and metrics.sampleRate.<pkgName> sets its firing rate.
func New(pkgName string, options ...Option) Service {
	o := opt{withPodName: true}
	for _, option := range options {
		option(&o)
	}

	// an empty host tag removes the tags datadog attaches per host
	tags := []string{"host:", "env:" + envName(), "app:" + appName()}
	if o.withPodName {
		tags = append(tags, "pod:"+env.PodName())
	}
	return &Metrics{pkgName: pkgName, sink: &ddSink{tags: tags}}
}

func envName() string {
	if name := viper.GetString("env_name"); name != "" {
		return name
	}
	return env.EnvName()
}

func appName() string {
	if name := viper.GetString("app_name"); name != "" {
		return name
	}
	return env.AppName()
}

// sink is where a bump ends up, datadog in production
type sink interface {
	gauge(key string, val, rate float64, tags []string)
	count(key string, val, rate float64, tags []string)
	histogram(key string, val, rate float64, tags []string)
	timing(key string, ms, rate float64, tags []string)
}

type Metrics struct {
	pkgName string
	sink    sink
}

func (mt *Metrics) disabled() bool {
	for _, pkg := range viper.GetStringSlice("metrics.disabled") {
		if pkg == mt.pkgName {
			return true
		}
	}
	return false
}

// sampleRate ranges from 0 to 1, 1 means always send
func (mt *Metrics) sampleRate() float64 {
	key := "metrics.sampleRate." + mt.pkgName
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	return 1.0
}

// bump sends one value unless the package is disabled. A panic while sending is counted
// under <kind>.panic instead of reaching the caller.
func (mt *Metrics) bump(kind, key string, tags []string, send func(key string, rate float64)) {
	if mt.disabled() {
		return
	}
	defer func() {
		if err := recover(); err != nil {
			mt.sink.count(kind+".panic", 1, 1, parseTag([]string{"tag", mt.pkgName + "." + key + "#" + strings.Join(tags, "#")}))
		}
	}()
	send(mt.pkgName+"."+key, mt.sampleRate())
}

// BumpAvg bumps the average for the given key. Datadog has no average type, a gauge is
// the closest.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	mt.bump("bumpavg", key, tags, func(key string, rate float64) {
		mt.sink.gauge(key, val, rate, parseTag(tags))
	})
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	mt.bump("bumpsum", key, tags, func(key string, rate float64) {
		mt.sink.count(key, val, rate, parseTag(tags))
	})
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	mt.bump("bumphistogram", key, tags, func(key string, rate float64) {
		mt.sink.histogram(key, val, rate, parseTag(tags))
	})
}

// BumpTime starts a timer that is recorded when End is called:
//
//	defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	if mt.disabled() {
		return noopEnder{}
	}
	return &timer{mt: mt, key: key, tags: tags, start: time.Now()}
}

type noopEnder struct{}

func (noopEnder) End() {}

type timer struct {
	mt    *Metrics
	key   string
	tags  []string
	start time.Time
}

func (t *timer) End() {
	ms := float64(time.Since(t.start)) / float64(time.Millisecond)
	t.mt.bump("bumptime", t.key, t.tags, func(key string, rate float64) {
		t.mt.sink.timing(key, ms, rate, parseTag(t.tags))
	})
}

// parseTag turns alternating keys and values into datadog's key:value tags
func parseTag(tags []string) []string {
	if tags == nil {
		return nil
	}
	if len(tags)%2 != 0 {
		panic("tag length needs to be multiple of 2: " + strings.Join(tags, ","))
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}
