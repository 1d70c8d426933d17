package scheduler

import (
	"sync"
	"time"
)

// Task is a single-owner periodic callback. At most one cycle is ever armed: starting a
// running task does nothing, and stopping it invalidates every callback still in flight.
type Task struct {
	clock Clock

	mu      sync.Mutex
	gen     uint64
	running bool
	timer   Timer
}

// Tick is handed to every callback. Owners check Valid under their own lock before
// mutating anything, so a callback racing with Stop becomes a no-op.
type Tick struct {
	task *Task
	gen  uint64
}

// Valid reports whether the cycle that produced this tick is still the current one
func (t Tick) Valid() bool {
	t.task.mu.Lock()
	defer t.task.mu.Unlock()
	return t.task.running && t.task.gen == t.gen
}

// NewTask creates a stopped task
func NewTask(clock Clock) *Task {
	return &Task{clock: clock}
}

// Start arms the first callback after delay. fn returns the delay until the next callback;
// a non-positive delay ends the cycle. Start returns false when the task is already running.
func (t *Task) Start(delay time.Duration, fn func(Tick) time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return false
	}
	t.running = true
	t.gen++
	t.arm(t.gen, delay, fn)
	return true
}

// Stop cancels the armed callback. It is safe to call on a stopped task.
func (t *Task) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Running reports whether a cycle is armed
func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// arm must be called with t.mu held
func (t *Task) arm(gen uint64, delay time.Duration, fn func(Tick) time.Duration) {
	t.timer = t.clock.AfterFunc(delay, func() { t.fire(gen, fn) })
}

func (t *Task) fire(gen uint64, fn func(Tick) time.Duration) {
	t.mu.Lock()
	if !t.running || t.gen != gen {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	next := fn(Tick{task: t, gen: gen})

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running || t.gen != gen {
		return
	}
	if next <= 0 {
		t.running = false
		t.gen++
		t.timer = nil
		return
	}
	t.arm(gen, next, fn)
}
