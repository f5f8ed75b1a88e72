package typing

import (
	"sync"
	"time"
)

const (
	defaultTick      = 30 * time.Millisecond
	defaultPerChar   = 50 * time.Millisecond
	defaultMinSafety = 3 * time.Second
	defaultMaxSafety = 10 * time.Second
)

// Config controls typing pacing. Zero values fall back to defaults.
type Config struct {
	Tick      time.Duration
	PerChar   time.Duration
	MinSafety time.Duration
	MaxSafety time.Duration
}

// Scheduler paces the delivery of assistant replies.
type Scheduler struct {
	tick      time.Duration
	perChar   time.Duration
	minSafety time.Duration
	maxSafety time.Duration
}

// NewScheduler builds a Scheduler from cfg.
func NewScheduler(cfg Config) *Scheduler {
	s := &Scheduler{
		tick:      cfg.Tick,
		perChar:   cfg.PerChar,
		minSafety: cfg.MinSafety,
		maxSafety: cfg.MaxSafety,
	}
	if s.tick <= 0 {
		s.tick = defaultTick
	}
	if s.perChar <= 0 {
		s.perChar = defaultPerChar
	}
	if s.minSafety <= 0 {
		s.minSafety = defaultMinSafety
	}
	if s.maxSafety < s.minSafety {
		s.maxSafety = defaultMaxSafety
		if s.maxSafety < s.minSafety {
			s.maxSafety = s.minSafety
		}
	}
	return s
}

// SafetyTimeout returns the upper bound after which a reply of length n is
// delivered regardless of the tick path.
func (s *Scheduler) SafetyTimeout(n int) time.Duration {
	d := time.Duration(n) * s.perChar
	if d < s.minSafety {
		return s.minSafety
	}
	if d > s.maxSafety {
		return s.maxSafety
	}
	return d
}

// Typing is a single in-flight reply.
type Typing struct {
	mu       sync.Mutex
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
	safety   *time.Timer
	fired    bool
	stopped  bool
}

// Simulate starts typing text and calls onComplete exactly once with the full
// text, unless the returned Typing is stopped first.
func (s *Scheduler) Simulate(text string, onComplete func(string)) *Typing {
	t := &Typing{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	finish := func() {
		t.mu.Lock()
		if t.fired || t.stopped {
			t.mu.Unlock()
			return
		}
		t.fired = true
		if t.safety != nil {
			t.safety.Stop()
		}
		t.mu.Unlock()

		t.closeStop()
		if onComplete != nil {
			onComplete(text)
		}
		close(t.done)
	}

	length := len([]rune(text))

	t.mu.Lock()
	t.safety = time.AfterFunc(s.SafetyTimeout(length), finish)
	t.mu.Unlock()

	go func() {
		ticker := time.NewTicker(s.tick)
		defer ticker.Stop()

		count := 0
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				count++
				if count > length {
					finish()
					return
				}
			}
		}
	}()

	return t
}

// Stop cancels both timers without delivering the reply. It never waits for
// a completion that is already running. Safe to call more than once and
// after completion.
func (t *Typing) Stop() {
	t.mu.Lock()
	if t.stopped || t.fired {
		t.stopped = true
		t.mu.Unlock()
		return
	}
	t.stopped = true
	if t.safety != nil {
		t.safety.Stop()
	}
	t.mu.Unlock()

	t.closeStop()
	close(t.done)
}

func (t *Typing) closeStop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

// Done is closed once the reply was delivered or cancelled.
func (t *Typing) Done() <-chan struct{} {
	return t.done
}
