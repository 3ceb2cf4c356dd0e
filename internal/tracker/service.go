package tracker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/StkConnects/Game-Tracker/internal/config"
	"github.com/StkConnects/Game-Tracker/internal/journal"
	"github.com/StkConnects/Game-Tracker/internal/store"
	"github.com/StkConnects/Game-Tracker/pkg/window"
)

// Service runs the polling loop: sample the focused window, advance the
// session state machine, flush the usage store periodically and on shutdown.
// The repo may be nil, in which case closed sessions are not journaled.
type Service struct {
	config   *config.Config
	tracker  *Tracker
	backend  store.Backend
	repo     *journal.Repository
	detector window.Detector
	stopChan chan struct{}
	shutOnce sync.Once
	running  bool
}

func NewService(cfg *config.Config, tracker *Tracker, backend store.Backend, repo *journal.Repository, detector window.Detector) *Service {
	return &Service{
		config:   cfg,
		tracker:  tracker,
		backend:  backend,
		repo:     repo,
		detector: detector,
		stopChan: make(chan struct{}),
		running:  false,
	}
}

// Start runs the loop until the context is cancelled or Stop is called.
// Either way the open session is closed and a final flush happens exactly
// once before Start returns.
func (s *Service) Start(ctx context.Context) error {
	if s.running {
		return fmt.Errorf("tracker is already running")
	}

	s.running = true
	log.Printf("Starting tracker with %v poll interval, %v flush interval",
		s.config.Tracker.PollInterval, s.config.Tracker.FlushInterval)

	poll := time.NewTicker(s.config.Tracker.PollInterval)
	defer poll.Stop()

	flush := time.NewTicker(s.config.Tracker.FlushInterval)
	defer flush.Stop()

	s.trackOnce()

	for {
		select {
		case <-ctx.Done():
			log.Println("Tracker stopped by context")
			s.shutdown()
			s.running = false
			return ctx.Err()

		case <-s.stopChan:
			log.Println("Tracker stopped")
			s.shutdown()
			s.running = false
			return nil

		case <-poll.C:
			s.trackOnce()

		case <-flush.C:
			s.flush()
		}
	}
}

// Stop requests a cooperative shutdown.
func (s *Service) Stop() {
	if s.running {
		close(s.stopChan)
	}
}

func (s *Service) IsRunning() bool {
	return s.running
}

// Store returns the usage store for read-only use after Start has returned.
func (s *Service) Store() store.UsageStore {
	return s.tracker.Store()
}

// trackOnce performs one tick: one observation and one state-machine step.
func (s *Service) trackOnce() {
	title, ok := s.observeTitle()

	prev := s.tracker.Current()
	closed := s.tracker.Observe(title, ok, time.Now())

	if closed != nil {
		log.Printf("Stopped tracking: %s (%.1f mins)", closed.Title, closed.Seconds/60)
		s.journalSession(closed)
	}

	if cur := s.tracker.Current(); cur != nil && (prev == nil || prev.Title != cur.Title) {
		log.Printf("Tracking: %s", cur.Title)
	}
}

// observeTitle samples the foreground window. Any failure or empty title is
// reported as unreadable; the tick then counts as "not a game" and the loop
// keeps running.
func (s *Service) observeTitle() (string, bool) {
	info, err := s.detector.GetActiveWindow()
	if err != nil {
		s.storeError(fmt.Errorf("failed to get active window: %w", err))
		return "", false
	}
	if info == nil || info.Title == "" {
		return "", false
	}
	return info.Title, true
}

// flush persists the full usage store. Only closed sessions are visible in
// the persisted document; the open session's tail is not. Failures are
// logged and the next flush retries.
func (s *Service) flush() {
	if err := store.Save(s.backend, s.tracker.Store()); err != nil {
		log.Printf("Failed to save usage data: %v", err)
	}
}

// shutdown closes the open session at termination time and flushes. Guarded
// so that a stop racing a context cancellation still finalizes only once.
func (s *Service) shutdown() {
	s.shutOnce.Do(func() {
		if closed := s.tracker.Finalize(time.Now()); closed != nil {
			log.Printf("Stopped tracking: %s (%.1f mins)", closed.Title, closed.Seconds/60)
			s.journalSession(closed)
		}
		s.flush()
	})
}

func (s *Service) journalSession(closed *Closed) {
	if s.repo == nil {
		return
	}

	record := &journal.SessionRecord{
		Title:     closed.Title,
		Date:      closed.Date,
		StartedAt: closed.StartedAt,
		EndedAt:   closed.EndedAt,
		Seconds:   closed.Seconds,
	}

	if err := s.repo.Create(record); err != nil {
		log.Printf("Failed to journal session: %v", err)
	}
}

func (s *Service) storeError(err error) {
	if s.repo == nil {
		log.Printf("Tracking error: %v", err)
		return
	}

	errorLog := &journal.ErrorLog{
		Timestamp: time.Now(),
		ErrorMsg:  err.Error(),
	}

	if dbErr := s.repo.CreateErrorLog(errorLog); dbErr != nil {
		log.Printf("Failed to store error in journal: %v (original error: %v)", dbErr, err)
	} else {
		log.Printf("Error logged to journal: %v", err)
	}
}

// CurrentSession returns the open session, nil when idle.
func (s *Service) CurrentSession() *Session {
	return s.tracker.Current()
}
