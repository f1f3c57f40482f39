// Package looper provides the single execution contexts that providers
// dispatch their commands on.
package looper

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

var (
	ErrRunning = errors.New("looper: already running")
	ErrStopped = errors.New("looper: stopped")
)

// Loop runs posted tasks on the goroutine that called Run. Posting is safe
// from any goroutine. With a capacity of zero the queue is unbounded,
// otherwise tasks posted while it is full are rejected.
type Loop struct {
	mu       sync.Mutex
	tasks    []func()
	capacity int

	wake    chan struct{}
	quit    chan struct{}
	stop    sync.Once
	running atomic.Bool
}

type Option func(*Loop)

func WithCapacity(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.capacity = n
		}
	}
}

func New(opts ...Option) *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) Post(task func()) bool {
	if task == nil {
		return false
	}
	select {
	case <-l.quit:
		return false
	default:
	}

	l.mu.Lock()
	if l.capacity > 0 && len(l.tasks) >= l.capacity {
		l.mu.Unlock()
		return false
	}
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Len returns the number of tasks waiting to run.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Run blocks until ctx is done or Stop is called. Tasks still queued at
// that point are abandoned.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer l.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quit:
			return nil
		case <-l.wake:
		}

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.quit:
				return nil
			default:
			}
			task := l.next()
			if task == nil {
				break
			}
			l.exec(task)
		}
	}
}

func (l *Loop) Stop() {
	l.stop.Do(func() {
		close(l.quit)
		l.mu.Lock()
		abandoned := len(l.tasks)
		l.tasks = nil
		l.mu.Unlock()
		log.Debug().Int("abandoned", abandoned).Msg("Looper stopped")
	})
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.tasks) == 0 {
		return nil
	}
	task := l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	return task
}

func (l *Loop) exec(task func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Looper task panicked")
		}
	}()
	task()
}
