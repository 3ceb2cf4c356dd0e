package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/StkConnects/Game-Tracker/internal/config"
	"github.com/StkConnects/Game-Tracker/internal/journal"
	"github.com/StkConnects/Game-Tracker/internal/reporter"
	"github.com/StkConnects/Game-Tracker/internal/store"
)

// Handler serves read-only views over the persisted usage document and the
// session journal. It re-reads the flushed document per request instead of
// touching the tracker's in-memory store, so the polling loop stays the
// single writer.
type Handler struct {
	config   *config.Config
	backend  store.Backend
	repo     *journal.Repository
	reporter *reporter.Reporter
}

func NewHandler(cfg *config.Config, backend store.Backend, repo *journal.Repository) *Handler {
	return &Handler{
		config:   cfg,
		backend:  backend,
		repo:     repo,
		reporter: reporter.New(cfg),
	}
}

func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/usage", h.handleUsage)
	mux.HandleFunc("/api/report", h.handleReport)
	mux.HandleFunc("/api/sessions", h.handleSessions)
	mux.HandleFunc("/api/summary", h.handleSummary)
	mux.HandleFunc("/api/status", h.handleStatus)

	mux.HandleFunc("/health", h.handleHealth)

	mux.HandleFunc("/", h.handleIndex)
}

// handleUsage returns the persisted usage document as-is.
func (h *Handler) handleUsage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	respondJSON(w, store.Load(h.backend))
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report := h.reporter.Generate(store.Load(h.backend))
	respondJSON(w, report)
}

// handleSessions lists journaled sessions, by day or since a period start.
func (h *Handler) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.repo == nil {
		http.Error(w, "Session journal not available", http.StatusServiceUnavailable)
		return
	}

	query := r.URL.Query()

	if date := query.Get("date"); date != "" {
		if _, err := time.ParseInLocation(store.DateFormat, date, time.Local); err != nil {
			http.Error(w, "Invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		records, err := h.repo.GetByDate(date)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to fetch sessions: %v", err), http.StatusInternalServerError)
			return
		}
		respondJSON(w, records)
		return
	}

	periodType := query.Get("period")
	if periodType == "" {
		periodType = "day"
	}

	start, err := periodStart(periodType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.repo.GetSince(start)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch sessions: %v", err), http.StatusInternalServerError)
		return
	}

	respondJSON(w, records)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.repo == nil {
		http.Error(w, "Session journal not available", http.StatusServiceUnavailable)
		return
	}

	periodType := r.URL.Query().Get("period")
	if periodType == "" {
		periodType = "day"
	}

	start, err := periodStart(periodType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summaries, err := h.repo.SummaryByTitleSince(start)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get summary: %v", err), http.StatusInternalServerError)
		return
	}

	var totalSeconds float64
	for i := range summaries {
		summaries[i].TotalHours = summaries[i].TotalSeconds / 3600
		totalSeconds += summaries[i].TotalSeconds
	}

	if totalSeconds > 0 {
		for i := range summaries {
			summaries[i].Percentage = summaries[i].TotalSeconds / totalSeconds * 100
		}
	}

	respondJSON(w, map[string]interface{}{
		"period":        periodType,
		"since":         start,
		"total_seconds": totalSeconds,
		"titles":        summaries,
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := map[string]interface{}{
		"time": time.Now(),
	}

	usage := store.Load(h.backend)
	today := time.Now().Format(store.DateFormat)
	status["today_seconds"] = usage.DayTotal(today)
	status["total_seconds"] = usage.TotalSeconds()

	if h.repo != nil {
		if latest, err := h.repo.GetLatest(); err == nil && latest != nil {
			status["last_session"] = latest
		}
	}

	respondJSON(w, status)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	fmt.Fprint(w, `Game-Tracker API

GET /api/usage                    persisted usage document
GET /api/report                   per-day report
GET /api/sessions?date=YYYY-MM-DD journaled sessions for a day
GET /api/sessions?period=day      journaled sessions for a period (day, week, month)
GET /api/summary?period=day       per-title totals for a period
GET /api/status                   tracker status
GET /health                       health check
`)
}

// periodStart returns the local start time of the named report period.
func periodStart(periodType string) (time.Time, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch periodType {
	case "day", "today":
		return midnight, nil

	case "week":
		// Week starts on Monday
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return midnight.AddDate(0, 0, -(weekday - 1)), nil

	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}

	return time.Time{}, fmt.Errorf("invalid period type: %s (valid: day, week, month)", periodType)
}

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}
