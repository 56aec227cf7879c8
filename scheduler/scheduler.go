// Package scheduler provides an explicit frame scheduler. The host loop
// calls Tick once per frame; registered tasks are polled once per tick until
// they report completion or are canceled. This replaces implicit coupling to
// a host engine's coroutine stepping with an explicit tick callback.
package scheduler

import "sync"

// Scheduler steps cooperative tasks. It never blocks: a task that is not
// finished simply runs again on the next Tick.
type Scheduler struct {
	mu    sync.Mutex
	tasks []*Task
}

// Task is a polled unit of work. Its function returns true when the task is
// complete and should not run again.
type Task struct {
	mu   sync.Mutex
	fn   func() bool
	done bool
}

// New constructs an empty Scheduler.
func New() *Scheduler { return &Scheduler{} }

// Poll registers fn to run once per Tick until it returns true. The returned
// Task can be canceled before completion.
func (s *Scheduler) Poll(fn func() bool) *Task {
	t := &Task{fn: fn}

	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()

	return t
}

// Tick runs every pending task once. Tasks registered during a tick run on
// the next tick, not the current one; the tick operates on a snapshot of the
// task list, mirroring the aggregator's dispatch rule.
func (s *Scheduler) Tick() {
	s.mu.Lock()
	snapshot := append([]*Task(nil), s.tasks...)
	s.mu.Unlock()

	for _, t := range snapshot {
		t.step()
	}

	s.mu.Lock()
	remaining := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Done() {
			remaining = append(remaining, t)
		}
	}
	s.tasks = remaining
	s.mu.Unlock()
}

// Pending reports the number of tasks that have not completed.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.tasks)
}

func (t *Task) step() {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	fn := t.fn
	t.mu.Unlock()

	if fn() {
		t.mu.Lock()
		t.done = true
		t.mu.Unlock()
	}
}

// Cancel marks the task complete without running it again.
func (t *Task) Cancel() {
	t.mu.Lock()
	t.done = true
	t.mu.Unlock()
}

// Done reports whether the task has completed or been canceled.
func (t *Task) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.done
}
