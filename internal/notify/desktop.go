package notify

import (
	"sync"

	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

// Desktop shows notifications through the OS notification daemon. Dismissal
// timing is left to the daemon.
type Desktop struct {
	log   *zap.Logger
	muted bool
	wg    sync.WaitGroup
}

type DesktopOption func(*Desktop)

// WithMuted denies permission, so nothing is shown.
func WithMuted(muted bool) DesktopOption {
	return func(d *Desktop) { d.muted = muted }
}

func NewDesktop(log *zap.Logger, opts ...DesktopOption) *Desktop {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Desktop{log: log}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Desktop) RequestPermission() bool {
	return !d.muted
}

func (d *Desktop) Show(n Notification) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if n.Sound {
			if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
				d.log.Debug("notification sound failed", zap.String("tag", n.Tag), zap.Error(err))
			}
		}
		if err := beeep.Notify(n.Title, n.Body, ""); err != nil {
			d.log.Warn("show notification failed", zap.String("tag", n.Tag), zap.Error(err))
			return
		}
		d.log.Debug("notification shown", zap.String("tag", n.Tag))
	}()
}

// Wait blocks until every notification handed to Show has been delivered or
// has failed. Short-lived hosts call it before exiting.
func (d *Desktop) Wait() {
	d.wg.Wait()
}
