// Package poll runs the fixed-period fetch loops that keep the desk
// views current. Each poller owns one endpoint and publishes snapshots;
// consumers never call the API directly from render paths.
package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bitdesk/bitdesk/pkg/logger"
	"github.com/bitdesk/bitdesk/pkg/sigchan"
)

// Fetch produces one value per poll cycle.
type Fetch[T any] func(ctx context.Context) (T, error)

// Snapshot is the outcome of one poll cycle. On error Value is the zero
// value; views show the empty state plus the message rather than stale
// data.
type Snapshot[T any] struct {
	Seq     uint64
	Value   T
	Err     error
	Elapsed time.Duration
}

// Poller fetches on a fixed period measured from cycle start, not from
// completion of the previous request. Cycles carry increasing sequence
// numbers and a completion whose sequence is below the last applied one
// is discarded, so a slow response can never overwrite a newer one.
type Poller[T any] struct {
	name   string
	period time.Duration
	fetch  Fetch[T]

	out    chan Snapshot[T]
	kick   *sigchan.Chan
	cancel context.CancelFunc
	done   chan struct{}

	seq atomic.Uint64

	mu      sync.Mutex
	applied uint64

	log *logrus.Entry
}

func New[T any](name string, period time.Duration, fetch Fetch[T]) *Poller[T] {
	return &Poller[T]{
		name:   name,
		period: period,
		fetch:  fetch,
		out:    make(chan Snapshot[T], 1),
		kick:   sigchan.New(1),
		done:   make(chan struct{}),
		log:    logger.WithField("poller", name),
	}
}

// Updates yields the latest snapshot. The channel holds one element and
// newer snapshots displace undelivered ones.
func (p *Poller[T]) Updates() <-chan Snapshot[T] {
	return p.out
}

// Start launches the loop: one fetch immediately, then one per period.
func (p *Poller[T]) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.run(loopCtx, ctx)
}

// Refresh requests an extra cycle now without disturbing the ticker.
func (p *Poller[T]) Refresh() {
	p.kick.Emit()
}

// Stop halts the ticker loop. In-flight requests are left to finish;
// their results still pass the sequence check and are published if
// nothing newer landed first.
func (p *Poller[T]) Stop() {
	if p.cancel != nil {
		p.cancel()
		<-p.done
	}
}

func (p *Poller[T]) run(loopCtx, fetchCtx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.period)
	defer ticker.Stop()

	p.launch(fetchCtx)
	for {
		select {
		case <-loopCtx.Done():
			return
		case <-fetchCtx.Done():
			return
		case <-p.kick.C():
			p.launch(fetchCtx)
		case <-ticker.C:
			p.launch(fetchCtx)
		}
	}
}

func (p *Poller[T]) launch(ctx context.Context) {
	seq := p.seq.Add(1)
	go func() {
		start := time.Now()
		value, err := p.fetch(ctx)
		elapsed := time.Since(start)

		if err != nil {
			p.log.Warnf("cycle %d failed after %s: %v", seq, elapsed, err)
			var zero T
			value = zero
		}
		if !p.publish(Snapshot[T]{Seq: seq, Value: value, Err: err, Elapsed: elapsed}) {
			p.log.Debugf("cycle %d superseded, dropping", seq)
		}
	}()
}

// publish installs snap unless a later cycle already published. The
// sequence check and the channel hand-off happen under one lock so two
// completions cannot interleave and leave the stale one delivered.
func (p *Poller[T]) publish(snap Snapshot[T]) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if snap.Seq <= p.applied {
		return false
	}
	p.applied = snap.Seq

	// Displace the undelivered older snapshot. Only publish sends on
	// out and the lock serializes it, so after the drain the buffered
	// send cannot block.
	select {
	case <-p.out:
	default:
	}
	p.out <- snap
	return true
}
