package ordsearch

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/sys/cpu"
	"golang.org/x/time/rate"
)

// BuildFunc produces a replacement collection for Live.Reload.
type BuildFunc[T any] func(ctx context.Context) (*Collection[T], error)

// Live publishes an immutable Collection to concurrent readers and swaps it
// for a rebuilt one without blocking them.
//
// Readers always see either the previous or the next collection in full.
type Live[T any] struct {
	_       cpu.CacheLinePad
	current atomic.Pointer[Collection[T]]
	_       cpu.CacheLinePad

	group   singleflight.Group
	limiter *rate.Limiter

	mu        sync.Mutex
	flight    *reloadFlight
	seq       uint64
	published uint64

	logger  *Logger
	metrics MetricsCollector
}

// NewLive creates a Live serving initial, which may be nil.
// It honors WithLogger, WithMetricsCollector and WithReloadLimit.
func NewLive[T any](initial *Collection[T], opts ...Option) *Live[T] {
	o := applyOptions(opts)

	l := &Live[T]{
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
	if o.reloadLimit != rate.Inf {
		l.limiter = rate.NewLimiter(o.reloadLimit, max(o.reloadBurst, 1))
	}
	l.current.Store(initial)

	return l
}

// Load returns the current collection. It may be nil.
func (l *Live[T]) Load() *Collection[T] {
	return l.current.Load()
}

// Store replaces the current collection.
func (l *Live[T]) Store(c *Collection[T]) {
	l.current.Store(c)
}

// FindGTE queries the current collection.
func (l *Live[T]) FindGTE(x T) (T, bool) {
	return l.current.Load().FindGTE(x)
}

// Reload runs build and publishes its result.
//
// Concurrent callers share one build and all receive its outcome. Each
// caller waits only as long as its own ctx allows: a caller that gives up
// gets ctx.Err() while the build carries on for the others. The build runs
// under a context that keeps the values of the caller that started it and
// is canceled once every waiting caller has given up.
//
// When a reload limit is configured the build first waits for a token.
// On error the current collection stays in place.
func (l *Live[T]) Reload(ctx context.Context, build BuildFunc[T]) (*Collection[T], error) {
	if build == nil {
		return nil, ErrNilBuild
	}

	f := l.join(ctx)
	defer l.leave(f)

	ch := l.group.DoChan(f.key, func() (any, error) {
		return l.reload(f, build)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Collection[T]), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Live[T]) reload(f *reloadFlight, build BuildFunc[T]) (*Collection[T], error) {
	if l.limiter != nil {
		if err := l.limiter.Wait(f.ctx); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	c, err := build(f.ctx)
	if err == nil && c == nil {
		err = ErrNilBuild
	}
	elapsed := time.Since(start)

	l.logger.LogReload(f.ctx, c.Len(), elapsed, err)
	l.metrics.RecordReload(elapsed, err)

	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	// An abandoned build that ignored cancellation must not replace the
	// result of a newer one.
	if f.seq >= l.published {
		l.published = f.seq
		l.current.Store(c)
	}
	l.mu.Unlock()

	return c, nil
}

// reloadFlight is one shared build and the callers waiting on it.
type reloadFlight struct {
	key     string
	seq     uint64
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// join attaches a caller to the pending build, opening a new one if there
// is none.
func (l *Live[T]) join(ctx context.Context) *reloadFlight {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.flight == nil {
		l.seq++
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		l.flight = &reloadFlight{
			key:    strconv.FormatUint(l.seq, 10),
			seq:    l.seq,
			ctx:    fctx,
			cancel: cancel,
		}
	}
	l.flight.waiters++

	return l.flight
}

// leave detaches a caller. The last one out cancels the build's context and
// the next Reload opens a fresh build.
func (l *Live[T]) leave(f *reloadFlight) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f.waiters--
	if f.waiters == 0 {
		f.cancel()
		if l.flight == f {
			l.flight = nil
		}
	}
}
