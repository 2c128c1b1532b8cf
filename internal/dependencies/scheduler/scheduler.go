package scheduler

import (
	"sync"
	"time"
)

// CancelFunc cancels a scheduled task. Calling it after the task has
// fired is a no-op.
type CancelFunc func()

// Scheduler runs tasks after a delay. It exists so the session reap
// timer can be driven deterministically in tests and flushed on
// shutdown instead of being a fire-and-forget time.AfterFunc.
type Scheduler interface {
	// AfterFunc schedules f to run once after d
	AfterFunc(d time.Duration, f func()) CancelFunc

	// StopAll cancels every task that has not yet fired
	StopAll()
}

// TimerScheduler implements Scheduler with real timers
type TimerScheduler struct {
	mu     sync.Mutex
	timers map[int]*time.Timer
	nextID int
}

// New creates a new TimerScheduler
func New() *TimerScheduler {
	return &TimerScheduler{
		timers: make(map[int]*time.Timer),
	}
}

var _ Scheduler = (*TimerScheduler)(nil)

// AfterFunc schedules f to run once after d
func (s *TimerScheduler) AfterFunc(d time.Duration, f func()) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	s.timers[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		f()
	})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if t, ok := s.timers[id]; ok {
			t.Stop()
			delete(s.timers, id)
		}
	}
}

// StopAll cancels every pending task
func (s *TimerScheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
