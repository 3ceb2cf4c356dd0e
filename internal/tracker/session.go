package tracker

import (
	"time"

	"github.com/StkConnects/Game-Tracker/internal/classifier"
	"github.com/StkConnects/Game-Tracker/internal/store"
)

// Session is the currently open tracked interval. It is transient state and
// is never persisted: a crash loses at most the unflushed tail of one session.
type Session struct {
	Title     string
	StartedAt time.Time
}

// Closed describes a session that has been folded into the usage store.
type Closed struct {
	Title     string
	StartedAt time.Time
	EndedAt   time.Time
	Seconds   float64
	Date      string
}

// Tracker is the session state machine. It has two states: idle (no open
// session) and active (one open session), and exclusively owns both the open
// session and the usage store. It is not safe for concurrent use; the polling
// service drives it from a single goroutine.
type Tracker struct {
	classifier *classifier.Classifier
	store      store.UsageStore
	session    *Session
}

// New creates a tracker over an existing usage store, typically the result
// of store.Load.
func New(c *classifier.Classifier, s store.UsageStore) *Tracker {
	if s == nil {
		s = store.New()
	}
	return &Tracker{classifier: c, store: s}
}

// Observe advances the state machine with one poll sample. ok is false when
// the foreground window could not be read; that counts as "not a game".
// It returns the session closed by this observation, if any.
//
// Transitions:
//   - idle, not a game: no-op
//   - idle, game: open session
//   - active, same game: continue
//   - active, different game: close and reopen at now, no gap or overlap
//   - active, not a game or unreadable: close
func (t *Tracker) Observe(title string, ok bool, now time.Time) *Closed {
	if !ok || !t.classifier.IsGame(title) {
		return t.Finalize(now)
	}

	if t.session == nil {
		t.session = &Session{Title: title, StartedAt: now}
		return nil
	}

	if t.session.Title == title {
		return nil
	}

	closed := t.close(now)
	t.session = &Session{Title: title, StartedAt: now}
	return closed
}

// Finalize closes the open session, if any, recording its elapsed time up to
// now. Used both for the not-a-game transition and for shutdown.
func (t *Tracker) Finalize(now time.Time) *Closed {
	if t.session == nil {
		return nil
	}
	closed := t.close(now)
	t.session = nil
	return closed
}

// close records the open session into the usage store. The day bucket is the
// local date at close time, so a session spanning midnight is attributed
// entirely to the day it ended on.
func (t *Tracker) close(now time.Time) *Closed {
	elapsed := now.Sub(t.session.StartedAt).Seconds()
	if elapsed < 0 {
		elapsed = 0 // clock went backwards
	}
	date := now.Format(store.DateFormat)
	t.store.Add(date, t.session.Title, elapsed)
	return &Closed{
		Title:     t.session.Title,
		StartedAt: t.session.StartedAt,
		EndedAt:   now,
		Seconds:   elapsed,
		Date:      date,
	}
}

// Current returns a copy of the open session, nil when idle.
func (t *Tracker) Current() *Session {
	if t.session == nil {
		return nil
	}
	s := *t.session
	return &s
}

// Store returns the usage store owned by this tracker.
func (t *Tracker) Store() store.UsageStore {
	return t.store
}
