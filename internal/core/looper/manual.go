package looper

import "sync"

// Manual queues tasks until the owner drains them on its own goroutine.
// It lets tests decide exactly when posted work runs.
type Manual struct {
	mu       sync.Mutex
	tasks    []func()
	draining bool
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Post(task func()) bool {
	if task == nil {
		return false
	}
	m.mu.Lock()
	m.tasks = append(m.tasks, task)
	m.mu.Unlock()
	return true
}

func (m *Manual) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Step runs the oldest queued task, if any.
func (m *Manual) Step() bool {
	m.mu.Lock()
	if len(m.tasks) == 0 {
		m.mu.Unlock()
		return false
	}
	task := m.tasks[0]
	m.tasks = m.tasks[1:]
	m.draining = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.draining = false
		m.mu.Unlock()
	}()
	task()
	return true
}

// Drain runs queued tasks, including ones posted while draining, until
// the queue is empty. It returns how many ran.
func (m *Manual) Drain() int {
	n := 0
	for m.Step() {
		n++
	}
	return n
}

// Draining reports whether a task is currently running via Step or Drain.
func (m *Manual) Draining() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draining
}
