// Package schedule runs periodic callbacks on an injectable clock and
// guarantees that a cancelled loop never fires again.
package schedule

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Func is invoked once per period. Returning false ends the loop.
type Func func() bool

// Loop is a handle to one periodic registration. The owner must call
// Cancel (or let Func return false) to release it.
type Loop struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Every starts calling fn once per period on clock until fn returns false or
// the loop is cancelled. The ticker is created before Every returns, so a
// fake clock sees it immediately.
func Every(clock clockwork.Clock, period time.Duration, fn Func) *Loop {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	l := &Loop{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	ticker := clock.NewTicker(period)
	go l.run(ticker, fn)
	return l
}

func (l *Loop) run(ticker clockwork.Ticker, fn Func) {
	defer close(l.done)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.Chan():
			// A tick and a cancel can be ready together; cancel wins.
			select {
			case <-l.stop:
				return
			default:
			}
			if !fn() {
				return
			}
		}
	}
}

// Cancel stops the loop and blocks until its goroutine has exited. Any
// callback already in progress finishes first; none starts afterwards.
// Cancel is idempotent. It must not be called from inside the loop's Func.
func (l *Loop) Cancel() {
	l.once.Do(func() { close(l.stop) })
	<-l.done
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
