package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default values
func LoadFromEnv(cfg *Config) {
	// Storage configuration
	if dataFile := os.Getenv("GAMETRACKER_DATA_FILE"); dataFile != "" {
		cfg.Storage.DataFile = dataFile
	}

	if journalPath := os.Getenv("GAMETRACKER_JOURNAL_PATH"); journalPath != "" {
		cfg.Storage.JournalPath = journalPath
	}

	// Tracker configuration
	if pollInterval := os.Getenv("GAMETRACKER_POLL_INTERVAL"); pollInterval != "" {
		if seconds, err := strconv.Atoi(pollInterval); err == nil && seconds > 0 {
			interval := time.Duration(seconds) * time.Second
			if interval >= cfg.Tracker.MinPollInterval && interval <= cfg.Tracker.MaxPollInterval {
				cfg.Tracker.PollInterval = interval
			}
		}
	}

	if flushInterval := os.Getenv("GAMETRACKER_FLUSH_INTERVAL"); flushInterval != "" {
		if seconds, err := strconv.Atoi(flushInterval); err == nil && seconds > 0 {
			cfg.Tracker.FlushInterval = time.Duration(seconds) * time.Second
		}
	}

	if keywords := os.Getenv("GAMETRACKER_GAME_KEYWORDS"); keywords != "" {
		for _, kw := range strings.Split(keywords, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				cfg.Tracker.ExtraKeywords = append(cfg.Tracker.ExtraKeywords, kw)
			}
		}
	}

	// Daemon configuration
	if pidFile := os.Getenv("GAMETRACKER_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	if logFile := os.Getenv("GAMETRACKER_LOG_FILE"); logFile != "" {
		cfg.Daemon.LogFile = logFile
	}

	// Report configuration
	if maxTitles := os.Getenv("GAMETRACKER_REPORT_MAX_TITLES"); maxTitles != "" {
		if n, err := strconv.Atoi(maxTitles); err == nil && n >= 0 {
			cfg.Report.MaxTitlesPerDay = n
		}
	}

	// Web configuration
	if webHost := os.Getenv("GAMETRACKER_WEB_HOST"); webHost != "" {
		cfg.Web.Host = webHost
	}

	if webPort := os.Getenv("GAMETRACKER_WEB_PORT"); webPort != "" {
		if port, err := strconv.Atoi(webPort); err == nil && port > 0 && port <= 65535 {
			cfg.Web.Port = port
		}
	}
}

// New creates a new Config with default values and loads from environment
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
