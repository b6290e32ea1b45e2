package goroutine

import (
	"runtime/debug"

	"github.com/x-xyz/goauction/base/log"
)

var (
	logger = log.Log()
)

type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

type RecoverableGoOptions struct {
	afterRecovered func(panic interface{}, stack []byte)
}

type RecoverableGoOptionsFunc = func(*RecoverableGoOptions)

// WithAfterRecovered runs f on the goroutine that panicked, after the panic was logged
func WithAfterRecovered(f func(panic interface{}, stack []byte)) RecoverableGoOptionsFunc {
	return func(opts *RecoverableGoOptions) {
		opts.afterRecovered = f
	}
}

// RecoverableGo runs f on a new goroutine. The returned channel receives the panic if f
// panicked, otherwise it is closed once f returns.
func RecoverableGo(f func(), fns ...RecoverableGoOptionsFunc) chan *PanicEvent {
	opts := RecoverableGoOptions{}
	for _, fn := range fns {
		fn(&opts)
	}

	panicChan := make(chan *PanicEvent, 1)

	go func() {
		defer func() {
			p := recover()
			if p == nil {
				close(panicChan)
				return
			}

			stack := debug.Stack()
			logger.WithFields(log.Fields{
				"err":   p,
				"stack": string(stack),
			}).Error("panic")

			if opts.afterRecovered != nil {
				opts.afterRecovered(p, stack)
			}
			panicChan <- &PanicEvent{p, stack}
		}()

		f()
	}()

	return panicChan
}
