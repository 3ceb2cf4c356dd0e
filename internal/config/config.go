package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Storage configuration
	Storage StorageConfig

	// Tracker configuration
	Tracker TrackerConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Report configuration
	Report ReportConfig

	// Web server configuration
	Web WebConfig
}

// StorageConfig holds persistence-related configuration
type StorageConfig struct {
	DataFile    string // Path to the JSON usage document (empty = default)
	JournalPath string // Path to the SQLite session journal (empty = default)
}

// TrackerConfig holds tracking behavior configuration
type TrackerConfig struct {
	PollInterval    time.Duration // How often to sample the focused window
	MinPollInterval time.Duration // Minimum allowed poll interval
	MaxPollInterval time.Duration // Maximum allowed poll interval
	FlushInterval   time.Duration // How often to persist the usage store
	ExtraKeywords   []string      // Additional game keywords beyond the built-in set
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
	LogFile string // Path the daemonized process logs to
}

// ReportConfig holds report generation configuration
type ReportConfig struct {
	MaxTitlesPerDay int // Limit titles listed per day in text reports (0 = all)
}

// WebConfig holds web server configuration
type WebConfig struct {
	Host string // Host to bind web server to
	Port int    // Port for web server
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DataFile:    "", // Empty means use default ~/.config/gametracker/game_time.json
			JournalPath: "", // Empty means use default ~/.config/gametracker/journal.db
		},
		Tracker: TrackerConfig{
			PollInterval:    15 * time.Second,  // Sampling granularity
			MinPollInterval: 5 * time.Second,   // Minimum 5 seconds
			MaxPollInterval: 300 * time.Second, // Maximum allowed poll interval
			FlushInterval:   300 * time.Second, // Auto-save every 5 minutes
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/gametracker-%d.pid", os.Getuid()),
			LogFile: "/tmp/gametracker.log",
		},
		Report: ReportConfig{
			MaxTitlesPerDay: 0, // List every title
		},
		Web: WebConfig{
			Host: "localhost",
			Port: 8080,
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Tracker.PollInterval < c.Tracker.MinPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be less than minimum (%v)",
			c.Tracker.PollInterval, c.Tracker.MinPollInterval)
	}

	if c.Tracker.PollInterval > c.Tracker.MaxPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be greater than maximum (%v)",
			c.Tracker.PollInterval, c.Tracker.MaxPollInterval)
	}

	if c.Tracker.FlushInterval <= 0 {
		return fmt.Errorf("flush interval must be positive, got %v", c.Tracker.FlushInterval)
	}

	if c.Report.MaxTitlesPerDay < 0 {
		return fmt.Errorf("max titles per day cannot be negative")
	}

	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.Web.Host == "" {
		return fmt.Errorf("web host cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// SetPollInterval sets the poll interval with validation
func (c *Config) SetPollInterval(interval time.Duration) error {
	if interval < c.Tracker.MinPollInterval {
		return fmt.Errorf("poll interval cannot be less than %v", c.Tracker.MinPollInterval)
	}
	if interval > c.Tracker.MaxPollInterval {
		return fmt.Errorf("poll interval cannot be greater than %v", c.Tracker.MaxPollInterval)
	}
	c.Tracker.PollInterval = interval
	return nil
}

// SetWebPort sets the web server port with validation
func (c *Config) SetWebPort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	c.Web.Port = port
	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Storage:
    Data File: %s
    Journal: %s
  Tracker:
    Poll Interval: %v
    Flush Interval: %v
    Extra Keywords: %s
  Daemon:
    PID File: %s
    Log File: %s
  Report:
    Max Titles/Day: %d
  Web:
    Host: %s
    Port: %d`,
		c.Storage.DataFile,
		c.Storage.JournalPath,
		c.Tracker.PollInterval,
		c.Tracker.FlushInterval,
		strings.Join(c.Tracker.ExtraKeywords, ","),
		c.Daemon.PIDFile,
		c.Daemon.LogFile,
		c.Report.MaxTitlesPerDay,
		c.Web.Host,
		c.Web.Port,
	)
}
