package mocks

import (
	"time"

	"github.com/pduel/puzzleduel/internal/dependencies/scheduler"
)

// MockScheduler is a mock implementation of Scheduler for testing.
// Tasks never fire on their own; tests trigger them with Fire.
type MockScheduler struct {
	tasks  []*mockTask
	nextID int
}

type mockTask struct {
	id        int
	delay     time.Duration
	f         func()
	cancelled bool
}

// Ensure MockScheduler implements Scheduler
var _ scheduler.Scheduler = (*MockScheduler)(nil)

// NewMockScheduler creates a new MockScheduler
func NewMockScheduler() *MockScheduler {
	return &MockScheduler{}
}

// AfterFunc records the task without starting any timer
func (s *MockScheduler) AfterFunc(d time.Duration, f func()) scheduler.CancelFunc {
	task := &mockTask{id: s.nextID, delay: d, f: f}
	s.nextID++
	s.tasks = append(s.tasks, task)
	return func() { task.cancelled = true }
}

// StopAll cancels every recorded task
func (s *MockScheduler) StopAll() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
}

// Fire runs all pending tasks that have not been cancelled
func (s *MockScheduler) Fire() {
	pending := s.tasks
	s.tasks = nil
	for _, t := range pending {
		if !t.cancelled {
			t.f()
		}
	}
}

// PendingCount returns the number of scheduled, uncancelled tasks
func (s *MockScheduler) PendingCount() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// LastDelay returns the delay of the most recently scheduled task,
// or zero if none
func (s *MockScheduler) LastDelay() time.Duration {
	if len(s.tasks) == 0 {
		return 0
	}
	return s.tasks[len(s.tasks)-1].delay
}
