package focus

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTimerService() (*Service, *fakeClock) {
	c := &fakeClock{now: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
	return NewService(c.Now), c
}

func TestDefaultState(t *testing.T) {
	svc, _ := newTimerService()
	st := svc.State("u1")
	if st.Mode != ModeFocus || st.Status != StatusIdle || st.RemainingSeconds != 25*60 {
		t.Fatalf("unexpected default state: %+v", st)
	}
}

func TestPauseKeepsRemaining(t *testing.T) {
	svc, clock := newTimerService()
	svc.Start("u1")
	clock.advance(10 * time.Minute)

	st := svc.Pause("u1")
	if st.Status != StatusPaused || st.RemainingSeconds != 15*60 {
		t.Fatalf("unexpected paused state: %+v", st)
	}
	clock.advance(time.Hour)
	if st := svc.State("u1"); st.RemainingSeconds != 15*60 {
		t.Fatalf("paused timer must not advance: %+v", st)
	}

	svc.Start("u1")
	clock.advance(5 * time.Minute)
	if st := svc.State("u1"); st.RemainingSeconds != 10*60 || st.Status != StatusRunning {
		t.Fatalf("unexpected resumed state: %+v", st)
	}
}

func TestLongBreakEveryFourthSession(t *testing.T) {
	svc, clock := newTimerService()
	for i := 1; i <= 4; i++ {
		svc.Start("u1")
		clock.advance(25 * time.Minute)
		st := svc.State("u1")
		if st.CompletedFocusSessions != i || st.Status != StatusIdle {
			t.Fatalf("session %d: unexpected state %+v", i, st)
		}
		want := ModeShortBreak
		if i == 4 {
			want = ModeLongBreak
		}
		if st.Mode != want {
			t.Fatalf("session %d: expected %s, got %s", i, want, st.Mode)
		}

		svc.Start("u1")
		clock.advance(time.Duration(st.RemainingSeconds) * time.Second)
		if st := svc.State("u1"); st.Mode != ModeFocus {
			t.Fatalf("break %d should return to focus, got %s", i, st.Mode)
		}
	}
}

func TestSwitchAndReset(t *testing.T) {
	svc, clock := newTimerService()
	st, err := svc.Switch("u1", ModeLongBreak)
	if err != nil || st.RemainingSeconds != 15*60 {
		t.Fatalf("unexpected switch result: %+v err=%v", st, err)
	}
	if _, err := svc.Switch("u1", Mode("nap")); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}

	svc.Start("u1")
	clock.advance(time.Minute)
	if st := svc.Reset("u1"); st.Status != StatusIdle || st.RemainingSeconds != 15*60 || st.Mode != ModeLongBreak {
		t.Fatalf("unexpected reset state: %+v", st)
	}
}

func TestUpdateSettings(t *testing.T) {
	svc, _ := newTimerService()
	if _, err := svc.UpdateSettings("u1", Settings{Focus: 0, ShortBreak: 5, LongBreak: 15}); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
	if _, err := svc.UpdateSettings("u1", Settings{Focus: 121, ShortBreak: 5, LongBreak: 15}); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
	st, err := svc.UpdateSettings("u1", Settings{Focus: 50, ShortBreak: 10, LongBreak: 30})
	if err != nil || st.RemainingSeconds != 50*60 {
		t.Fatalf("unexpected state after settings update: %+v err=%v", st, err)
	}
}

func TestTimersAreIsolatedPerKey(t *testing.T) {
	svc, _ := newTimerService()
	svc.Start("a")
	if st := svc.State("b"); st.Status != StatusIdle {
		t.Fatalf("timer b should be untouched, got %+v", st)
	}
}

func TestIdleTimersAreEvicted(t *testing.T) {
	svc, clock := newTimerService()
	svc.Start("stale")
	svc.State("kept")

	clock.advance(23 * time.Hour)
	svc.State("kept")
	clock.advance(2 * time.Hour)
	svc.State("fresh")

	if _, ok := svc.timers["stale"]; ok {
		t.Fatal("expected the idle timer to be evicted")
	}
	if _, ok := svc.timers["kept"]; !ok {
		t.Fatal("recently used timer must survive the sweep")
	}
	if st := svc.State("stale"); st.Status != StatusIdle || st.CompletedFocusSessions != 0 {
		t.Fatalf("evicted key should start over, got %+v", st)
	}
}
