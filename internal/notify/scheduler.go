// Package notify arms local reminders for due-dated tasks.
package notify

import (
	"sync"
	"time"
)

type Reminder struct {
	TaskID string
	Title  string
	Body   string
	At     time.Time
}

// Scheduler fires a reminder at approximately the requested time.
// Scheduling for a past time is a no-op. Scheduling twice for the same
// task id replaces the pending reminder so a task never notifies twice.
type Scheduler interface {
	Schedule(r Reminder)
	Cancel(taskID string)
}

// TimerScheduler backs the Scheduler contract with in-process timers and a
// delivery callback, standing in for the platform notification service.
type TimerScheduler struct {
	deliver func(Reminder)
	now     func() time.Time

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewTimerScheduler(deliver func(Reminder)) *TimerScheduler {
	return &TimerScheduler{
		deliver: deliver,
		now:     time.Now,
		timers:  make(map[string]*time.Timer),
	}
}

func (s *TimerScheduler) Schedule(r Reminder) {
	delay := r.At.Sub(s.now())
	if delay <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[r.TaskID]; ok {
		t.Stop()
	}
	s.timers[r.TaskID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, r.TaskID)
		s.mu.Unlock()
		s.deliver(r)
	})
}

func (s *TimerScheduler) Cancel(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[taskID]; ok {
		t.Stop()
		delete(s.timers, taskID)
	}
}

// Stop cancels every pending reminder, for shutdown.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// Pending reports how many reminders are armed.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

var _ Scheduler = (*TimerScheduler)(nil)
