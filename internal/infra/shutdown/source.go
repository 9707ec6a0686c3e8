package shutdown

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Source delivers termination events to a handler.
type Source interface {
	// Start begins delivering events to handle. It must not block.
	Start(handle func(Event))
	// Stop ends delivery. It is safe to call more than once.
	Stop()
}

// SignalSource turns OS signals into Interrupted events.
type SignalSource struct {
	signals []os.Signal
	ch      chan os.Signal
	quit    chan struct{}
	once    sync.Once
}

// NewSignalSource listens for the given signals, SIGINT and SIGTERM by default.
func NewSignalSource(signals ...os.Signal) *SignalSource {
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	return &SignalSource{
		signals: signals,
		ch:      make(chan os.Signal, 2),
		quit:    make(chan struct{}),
	}
}

// Start implements Source. Each signal is handled on its own goroutine so a
// second Ctrl+C is still observed while the first one tears down.
func (s *SignalSource) Start(handle func(Event)) {
	signal.Notify(s.ch, s.signals...)
	go func() {
		for {
			select {
			case sig := <-s.ch:
				go handle(Event{Kind: Interrupted, Signal: sig})
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop implements Source.
func (s *SignalSource) Stop() {
	s.once.Do(func() {
		signal.Stop(s.ch)
		close(s.quit)
	})
}
