package recurrence

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

var ErrInvalidInterval = errors.New("recurrence: check interval must be at least one second")

// Ticker delivers a wall-clock tick on C every interval. The owner runs Check
// when a tick arrives; ticks that find the channel full are dropped.
type Ticker struct {
	cron     *cron.Cron
	interval time.Duration
	ticks    chan time.Time
	logger   *log.Logger
	started  bool
}

func NewTicker(interval time.Duration, logger *log.Logger) (*Ticker, error) {
	if interval < time.Second {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Ticker{
		cron:     cron.New(),
		interval: interval,
		ticks:    make(chan time.Time, 1),
		logger:   logger.WithPrefix("recurrence"),
	}
	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	if _, err := t.cron.AddFunc(spec, t.fire); err != nil {
		return nil, fmt.Errorf("schedule recurrence check: %w", err)
	}
	return t, nil
}

func (t *Ticker) C() <-chan time.Time {
	return t.ticks
}

func (t *Ticker) Interval() time.Duration {
	return t.interval
}

func (t *Ticker) Start() {
	if t.started {
		return
	}
	t.started = true
	t.cron.Start()
	t.logger.Debug("ticker started", "interval", t.interval)
}

// Stop halts the schedule and waits for a running tick to finish.
func (t *Ticker) Stop() {
	if !t.started {
		return
	}
	t.started = false
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.logger.Debug("ticker stopped")
}

func (t *Ticker) fire() {
	now := time.Now().UTC()
	select {
	case t.ticks <- now:
	default:
		t.logger.Debug("tick dropped, previous check still pending")
	}
}
