package fetch

import (
	"sync"
	"time"
)

// DefaultDebounce is the trailing window for coalescing refetch requests.
const DefaultDebounce = 300 * time.Millisecond

// Scheduler collapses bursts of refetch requests (filter toggles,
// multi-select changes) into a single trailing forced fetch. N calls inside
// the window run the cycle exactly once.
type Scheduler struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	run   func()
}

// NewScheduler builds a scheduler that invokes run once per burst. run
// should force one fetch cycle (e.g. ForceNext + RequestRefetch).
func NewScheduler(delay time.Duration, run func()) *Scheduler {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Scheduler{delay: delay, run: run}
}

// ScheduleRefetch resets the trailing timer. Only the last call in a burst
// fires.
func (s *Scheduler) ScheduleRefetch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		s.timer = nil
		s.mu.Unlock()
		s.run()
	})
}

// Stop cancels any pending refetch.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
