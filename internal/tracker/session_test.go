package tracker

import (
	"testing"
	"time"

	"github.com/StkConnects/Game-Tracker/internal/classifier"
	"github.com/StkConnects/Game-Tracker/internal/store"
)

var t0 = time.Date(2024, 3, 10, 14, 0, 0, 0, time.Local)

func newTracker() *Tracker {
	return New(classifier.New(), store.New())
}

func TestIdleNonGameIsNoop(t *testing.T) {
	trk := newTracker()

	if closed := trk.Observe("Mozilla Firefox", true, t0); closed != nil {
		t.Errorf("non-game tick while idle closed a session: %+v", closed)
	}
	if closed := trk.Observe("", false, t0.Add(15*time.Second)); closed != nil {
		t.Errorf("unreadable tick while idle closed a session: %+v", closed)
	}
	if trk.Current() != nil {
		t.Error("tracker should still be idle")
	}
	if total := trk.Store().TotalSeconds(); total != 0 {
		t.Errorf("store total = %v, want 0", total)
	}
}

func TestTickScenario(t *testing.T) {
	trk := newTracker()

	// t=0: unreadable, t=15/30: game, t=45: non-game
	trk.Observe("", false, t0)
	trk.Observe("Steam - CS:GO", true, t0.Add(15*time.Second))
	trk.Observe("Steam - CS:GO", true, t0.Add(30*time.Second))
	closed := trk.Observe("Notepad", true, t0.Add(45*time.Second))

	if closed == nil {
		t.Fatal("switching to a non-game should close the session")
	}
	if closed.Title != "Steam - CS:GO" {
		t.Errorf("closed title = %q, want %q", closed.Title, "Steam - CS:GO")
	}
	if closed.Seconds != 30 {
		t.Errorf("closed seconds = %v, want 30", closed.Seconds)
	}

	date := t0.Add(45 * time.Second).Format(store.DateFormat)
	if got := trk.Store().Seconds(date, "Steam - CS:GO"); got != 30 {
		t.Errorf("recorded seconds = %v, want 30", got)
	}
	if got := trk.Store().Seconds(date, "Notepad"); got != 0 {
		t.Errorf("Notepad recorded %v seconds, should never be tracked", got)
	}
	if trk.Current() != nil {
		t.Error("tracker should be idle after a non-game tick")
	}
}

func TestContinuousSessionSumsIntervals(t *testing.T) {
	trk := newTracker()

	now := t0
	trk.Observe("Dota 2", true, now)
	for i := 0; i < 10; i++ {
		now = now.Add(15 * time.Second)
		if closed := trk.Observe("Dota 2", true, now); closed != nil {
			t.Fatalf("continuing session closed at tick %d", i)
		}
	}

	closed := trk.Finalize(now.Add(5 * time.Second))
	if closed == nil {
		t.Fatal("finalize should close the open session")
	}
	// 10 ticks of 15s plus the 5s tail
	if closed.Seconds != 155 {
		t.Errorf("closed seconds = %v, want 155", closed.Seconds)
	}
}

func TestSwitchBetweenGames(t *testing.T) {
	trk := newTracker()

	trk.Observe("Dota 2", true, t0)
	closed := trk.Observe("VALORANT", true, t0.Add(40*time.Second))

	if closed == nil {
		t.Fatal("switching games should close the first session")
	}
	if closed.Title != "Dota 2" || closed.Seconds != 40 {
		t.Errorf("closed = %q/%vs, want Dota 2/40s", closed.Title, closed.Seconds)
	}

	cur := trk.Current()
	if cur == nil || cur.Title != "VALORANT" {
		t.Fatalf("current session = %+v, want VALORANT", cur)
	}
	// No gap or overlap: the new session starts exactly where the old ended
	if !cur.StartedAt.Equal(t0.Add(40 * time.Second)) {
		t.Errorf("new session start = %v, want %v", cur.StartedAt, t0.Add(40*time.Second))
	}

	second := trk.Finalize(t0.Add(100 * time.Second))
	if second.Seconds != 60 {
		t.Errorf("second session seconds = %v, want 60", second.Seconds)
	}

	date := t0.Add(100 * time.Second).Format(store.DateFormat)
	total := trk.Store().Seconds(date, "Dota 2") + trk.Store().Seconds(date, "VALORANT")
	if total != 100 {
		t.Errorf("combined recorded time = %v, want 100", total)
	}
}

func TestTerminationRecordsOpenSession(t *testing.T) {
	s := store.New()
	date := t0.Add(100 * time.Second).Format(store.DateFormat)
	s.Add(date, "VALORANT", 500)

	trk := New(classifier.New(), s)
	trk.Observe("VALORANT", true, t0)

	closed := trk.Finalize(t0.Add(100 * time.Second))
	if closed == nil || closed.Seconds != 100 {
		t.Fatalf("finalize closed = %+v, want 100s", closed)
	}

	if got := s.Seconds(date, "VALORANT"); got != 600 {
		t.Errorf("store seconds = %v, want 600 (500 prior + 100 new)", got)
	}

	if again := trk.Finalize(t0.Add(200 * time.Second)); again != nil {
		t.Errorf("second finalize closed another session: %+v", again)
	}
	if got := s.Seconds(date, "VALORANT"); got != 600 {
		t.Errorf("store seconds after repeat finalize = %v, want 600", got)
	}
}

func TestMidnightSessionAttributedToCloseDate(t *testing.T) {
	trk := newTracker()

	start := time.Date(2024, 1, 1, 23, 59, 50, 0, time.Local)
	end := time.Date(2024, 1, 2, 0, 0, 10, 0, time.Local)

	trk.Observe("Skyrim", true, start)
	closed := trk.Finalize(end)

	if closed.Date != "2024-01-02" {
		t.Errorf("close date = %s, want 2024-01-02", closed.Date)
	}
	if got := trk.Store().Seconds("2024-01-02", "Skyrim"); got != 20 {
		t.Errorf("seconds on close date = %v, want 20", got)
	}
	if got := trk.Store().Seconds("2024-01-01", "Skyrim"); got != 0 {
		t.Errorf("seconds on start date = %v, want 0 (no date split)", got)
	}
}

func TestUnreadableTickClosesSession(t *testing.T) {
	trk := newTracker()

	trk.Observe("Steam - HL2", true, t0)
	closed := trk.Observe("", false, t0.Add(30*time.Second))

	if closed == nil || closed.Seconds != 30 {
		t.Fatalf("unreadable tick closed = %+v, want 30s", closed)
	}
	if trk.Current() != nil {
		t.Error("tracker should be idle after unreadable tick")
	}
}

func TestTitlesDifferingByOneCharacterAreDistinct(t *testing.T) {
	trk := newTracker()

	trk.Observe("Dota 2", true, t0)
	trk.Observe("Dota 2 ", true, t0.Add(10*time.Second))
	trk.Finalize(t0.Add(25 * time.Second))

	date := t0.Add(25 * time.Second).Format(store.DateFormat)
	if got := trk.Store().Seconds(date, "Dota 2"); got != 10 {
		t.Errorf("first title seconds = %v, want 10", got)
	}
	if got := trk.Store().Seconds(date, "Dota 2 "); got != 15 {
		t.Errorf("second title seconds = %v, want 15", got)
	}
}

func TestClockGoingBackwardsClampsToZero(t *testing.T) {
	trk := newTracker()

	trk.Observe("Dota 2", true, t0)
	closed := trk.Finalize(t0.Add(-10 * time.Second))

	if closed == nil {
		t.Fatal("finalize should still close the session")
	}
	if closed.Seconds != 0 {
		t.Errorf("closed seconds = %v, want 0", closed.Seconds)
	}
}
