// Package reminder fires periodic hydration reminders.
package reminder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/realbLanK993/water/internal/model"
	"github.com/realbLanK993/water/internal/notify"
	"github.com/realbLanK993/water/internal/service"
	"go.uber.org/zap"
)

// DevelopmentInterval is the interval Initialize uses in development mode,
// counted in seconds there.
const DevelopmentInterval = 2

// Scheduler owns at most one running ticker. The zero value is not usable;
// construct with New.
type Scheduler struct {
	gw   notify.Gateway
	log  *zap.Logger
	dev  bool
	unit time.Duration

	mu       sync.Mutex
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

type Option func(*Scheduler)

// WithDevelopment counts intervals in seconds instead of minutes.
func WithDevelopment(dev bool) Option {
	return func(s *Scheduler) {
		s.dev = dev
		if dev {
			s.unit = time.Second
		}
	}
}

// WithIntervalUnit overrides the duration of one interval unit.
func WithIntervalUnit(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.unit = d
		}
	}
}

func New(gw notify.Gateway, log *zap.Logger, opts ...Option) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scheduler{gw: gw, log: log, unit: time.Minute}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start replaces any running ticker with one firing every interval units.
func (s *Scheduler) Start(interval int) error {
	if interval <= 0 {
		return fmt.Errorf("%w: reminder interval must be > 0", service.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	period := time.Duration(interval) * s.unit
	stop := make(chan struct{})
	done := make(chan struct{})
	s.interval = period
	s.stop = stop
	s.done = done

	go s.run(period, stop, done)
	s.log.Info("reminder scheduler started", zap.Duration("interval", period))
	return nil
}

// Stop cancels the running ticker, if any, and waits for it to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopLocked() {
		s.log.Info("reminder scheduler stopped")
	}
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

// Interval is the period of the running ticker, or 0 when stopped.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Initialize starts the scheduler from stored settings. When reminders are
// disabled it leaves the scheduler as it is. A settings read failure falls
// back to the default interval.
func (s *Scheduler) Initialize(db *sql.DB) error {
	settings, err := service.GetSettings(db)
	if err != nil {
		s.log.Warn("load settings for reminders failed, using default interval", zap.Error(err))
		return s.Start(s.intervalFor(model.DefaultReminderIntervalMinutes))
	}
	if !settings.NotificationsEnabled {
		s.log.Info("reminders disabled in settings")
		return nil
	}
	return s.Start(s.intervalFor(settings.ReminderIntervalMinutes))
}

func (s *Scheduler) intervalFor(minutes int) int {
	if s.dev {
		return DevelopmentInterval
	}
	return minutes
}

func (s *Scheduler) stopLocked() bool {
	if s.stop == nil {
		return false
	}
	close(s.stop)
	<-s.done
	s.stop = nil
	s.done = nil
	s.interval = 0
	return true
}

func (s *Scheduler) run(period time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if notify.Send(s.gw, notify.Reminder()) {
				s.log.Debug("reminder fired")
			} else {
				s.log.Debug("reminder skipped, permission denied")
			}
		}
	}
}
