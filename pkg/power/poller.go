package power

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// poller turns a charge level reader into a change notification source
// for platforms that only offer synchronous reads.
type poller struct {
	name     string
	interval time.Duration
	read     func() (int, error)

	mu   sync.Mutex
	stop chan struct{}
}

func newPoller(name string, interval time.Duration, read func() (int, error)) *poller {
	return &poller{
		name:     name,
		interval: interval,
		read:     read,
	}
}

// Start begins sampling. The first reading is taken synchronously so an
// unreadable battery fails the activation instead of the loop.
func (p *poller) Start(notify func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop != nil {
		return nil
	}

	last, err := p.read()
	if err != nil {
		return err
	}

	stop := make(chan struct{})
	p.stop = stop
	go p.loop(stop, last, notify)

	logrus.WithFields(logrus.Fields{
		"backend":  p.name,
		"interval": p.interval,
	}).Debug("battery monitoring started")

	return nil
}

// Stop signals the loop to exit and returns immediately.
func (p *poller) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop == nil {
		return nil
	}
	close(p.stop)
	p.stop = nil

	logrus.WithField("backend", p.name).Debug("battery monitoring stopped")

	return nil
}

func (p *poller) running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}

func (p *poller) loop(stop <-chan struct{}, last int, notify func()) {
	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
		}

		cur, err := p.read()
		if err != nil {
			logrus.WithField("backend", p.name).Debugf("failed to sample charge level: %v", err)
			continue
		}
		if cur == last {
			continue
		}
		logrus.WithFields(logrus.Fields{
			"backend": p.name,
			"from":    last,
			"to":      cur,
		}).Trace("charge level changed")
		last = cur

		select {
		case <-stop:
			return
		default:
		}
		notify()
	}
}
