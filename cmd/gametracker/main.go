package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/StkConnects/Game-Tracker/internal/classifier"
	"github.com/StkConnects/Game-Tracker/internal/config"
	"github.com/StkConnects/Game-Tracker/internal/daemon"
	"github.com/StkConnects/Game-Tracker/internal/journal"
	"github.com/StkConnects/Game-Tracker/internal/reporter"
	"github.com/StkConnects/Game-Tracker/internal/store"
	"github.com/StkConnects/Game-Tracker/internal/tracker"
	"github.com/StkConnects/Game-Tracker/internal/web"
	"github.com/StkConnects/Game-Tracker/pkg/detector"
)

var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "run":
		runForeground()
	case "start":
		startDaemon(false)
	case "serve":
		startDaemon(true)
	case "stop":
		stopDaemon()
	case "status":
		showStatus()
	case "report":
		generateReport()
	case "clear":
		clearData()
	case "version":
		fmt.Printf("gametracker version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`gametracker - Game play time tracker

Usage:
  gametracker <command> [options]

Commands:
  run                Run the tracker in the foreground (Ctrl+C to stop)
  start              Start the tracking daemon
  serve              Start daemon with web API server
  stop               Stop the tracking daemon
  status             Show daemon status and current focused window
  report [--json]    Show accumulated game time per day
  clear              Clear all tracked data
  version            Show version information
  help               Show this help message

Examples:
  gametracker run
  gametracker start
  gametracker status
  gametracker report
  gametracker report --json
  gametracker stop

Environment Variables:
  GAMETRACKER_DATA_FILE        Usage document path (JSON)
  GAMETRACKER_JOURNAL_PATH     Session journal path (SQLite)
  GAMETRACKER_POLL_INTERVAL    Poll interval in seconds (5-300)
  GAMETRACKER_FLUSH_INTERVAL   Auto-save interval in seconds
  GAMETRACKER_GAME_KEYWORDS    Extra game keywords, comma separated
  GAMETRACKER_PID_FILE         PID file path
  GAMETRACKER_LOG_FILE         Daemon log file path
  GAMETRACKER_WEB_HOST         Web API host
  GAMETRACKER_WEB_PORT         Web API port

Version: %s
`, version)
}

// services bundles everything a tracking run needs.
type services struct {
	backend *store.FileBackend
	repo    *journal.Repository
	svc     *tracker.Service
	db      *journal.DB
	close   func()
}

// buildServices wires backend, journal, detector and tracker together. The
// journal is best-effort: if it cannot be opened, tracking proceeds without
// it.
func buildServices(cfg *config.Config) (*services, error) {
	backend, err := store.NewFileBackend(cfg.Storage.DataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to set up usage file: %w", err)
	}

	var repo *journal.Repository
	var db *journal.DB
	db, err = journal.Connect(cfg.Storage.JournalPath)
	if err != nil {
		log.Printf("Session journal unavailable, continuing without it: %v", err)
		db = nil
	} else if err := db.Initialize(); err != nil {
		log.Printf("Session journal unavailable, continuing without it: %v", err)
		db.Close()
		db = nil
	} else {
		repo = journal.NewRepository(db)
	}

	det, err := detector.New()
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("failed to initialize window detector: %w", err)
	}

	log.Printf("Window detector initialized: %s", det.GetDisplayServer())

	cls := classifier.New(cfg.Tracker.ExtraKeywords...)
	trk := tracker.New(cls, store.Load(backend))
	svc := tracker.NewService(cfg, trk, backend, repo, det)

	return &services{
		backend: backend,
		repo:    repo,
		svc:     svc,
		db:      db,
		close: func() {
			det.Close()
			if db != nil {
				db.Close()
			}
		},
	}, nil
}

func runForeground() {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	s, err := buildServices(cfg)
	if err != nil {
		log.Fatalf("Failed to start tracker: %v", err)
	}
	defer s.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
		s.svc.Stop()
	}()

	fmt.Println("Game Tracker started (Ctrl+C to stop)")

	if err := s.svc.Start(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Tracker error: %v", err)
	}

	rep := reporter.New(cfg)
	fmt.Println(rep.FormatText(rep.Generate(s.svc.Store())))
}

func startDaemon(withWeb bool) {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Check if already running
	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if running {
		log.Fatalf("Daemon is already running (PID: %d)", pid)
	}

	// Parent process forks and exits; the child runs the daemon
	if os.Getenv("GAMETRACKER_DAEMON_CHILD") != "1" {
		daemonize(cfg, withWeb)
		return
	}

	runDaemon(cfg, dm, withWeb)
}

func runDaemon(cfg *config.Config, dm *daemon.Daemon, withWeb bool) {
	logFile, err := os.OpenFile(cfg.Daemon.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	s, err := buildServices(cfg)
	if err != nil {
		log.Fatalf("Failed to start tracker: %v", err)
	}
	defer s.close()

	if err := dm.WritePID(); err != nil {
		log.Fatalf("Failed to write PID file: %v", err)
	}
	defer dm.RemovePID()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var webServer *web.Server
	if withWeb {
		webServer = web.NewServer(cfg, s.backend, s.repo)
		go func() {
			if err := webServer.Start(); err != nil && err != http.ErrServerClosed {
				log.Printf("Web server error: %v", err)
			}
		}()
		log.Printf("Web API available at: http://%s", webServer.GetAddress())
	}

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
		s.svc.Stop()
	}()

	log.Println("Starting gametracker daemon...")
	log.Printf("Configuration:\n%s", cfg.String())

	if err := s.svc.Start(ctx); err != nil && err != context.Canceled {
		log.Printf("Tracker error: %v", err)
	}

	if webServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down web server: %v", err)
		}
	}

	rep := reporter.New(cfg)
	log.Printf("Final report:\n%s", rep.FormatText(rep.Generate(s.svc.Store())))
	log.Println("Daemon stopped successfully")
}

func stopDaemon() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}

	if !running {
		fmt.Println("Daemon is not running")
		return
	}

	fmt.Printf("Stopping daemon (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		log.Fatalf("Failed to stop daemon: %v", err)
	}

	fmt.Println("Daemon stopped successfully")
}

func showStatus() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}

	if !running {
		fmt.Println("Status: Not running")
	} else {
		fmt.Printf("Status: Running (PID: %d)\n", pid)
		fmt.Printf("Poll Interval: %v\n", cfg.Tracker.PollInterval)
	}

	backend, err := store.NewFileBackend(cfg.Storage.DataFile)
	if err == nil {
		usage := store.Load(backend)
		today := time.Now().Format(store.DateFormat)
		fmt.Printf("Today: %.1f hours tracked\n", usage.DayTotal(today)/3600)
	}

	// Show the current window even when the daemon is not running
	det, err := detector.New()
	if err != nil {
		fmt.Printf("\nCould not detect current window: %v\n", err)
		return
	}
	defer det.Close()

	info, err := det.GetActiveWindow()
	if err != nil || info == nil {
		fmt.Println("\nNo focused window detected")
		return
	}

	fmt.Printf("\nCurrent Window:\n")
	fmt.Printf("  Title: %s\n", info.Title)
	fmt.Printf("  App: %s\n", info.AppName)
	fmt.Printf("  Display: %s\n", info.DisplayServer)

	cls := classifier.New(cfg.Tracker.ExtraKeywords...)
	fmt.Printf("  Game: %v\n", cls.IsGame(info.Title))
}

func generateReport() {
	cfg := config.New()

	jsonOutput := false
	if len(os.Args) > 2 && os.Args[2] == "--json" {
		jsonOutput = true
	}

	backend, err := store.NewFileBackend(cfg.Storage.DataFile)
	if err != nil {
		log.Fatalf("Failed to open usage file: %v", err)
	}

	rep := reporter.New(cfg)
	report := rep.Generate(store.Load(backend))

	if jsonOutput {
		jsonStr, err := rep.FormatJSON(report)
		if err != nil {
			log.Fatalf("Failed to format JSON: %v", err)
		}
		fmt.Println(jsonStr)
	} else {
		fmt.Println(rep.FormatText(report))
	}
}

func clearData() {
	cfg := config.New()

	fmt.Print("This will delete all tracked game time. Are you sure? (yes/no): ")
	var response string
	fmt.Scanln(&response)

	if response != "yes" && response != "y" {
		fmt.Println("Operation cancelled")
		return
	}

	backend, err := store.NewFileBackend(cfg.Storage.DataFile)
	if err != nil {
		log.Fatalf("Failed to open usage file: %v", err)
	}
	if err := os.Remove(backend.Path()); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove usage file: %v", err)
	}

	if db, err := journal.Connect(cfg.Storage.JournalPath); err == nil {
		defer db.Close()
		if err := db.Initialize(); err == nil {
			if err := journal.NewRepository(db).Clear(); err != nil {
				log.Printf("Failed to clear session journal: %v", err)
			}
		}
	}

	fmt.Println("Tracking data cleared successfully")
}

func daemonize(cfg *config.Config, withWeb bool) {
	env := os.Environ()
	env = append(env, "GAMETRACKER_DAEMON_CHILD=1")

	args := os.Args

	procAttr := &os.ProcAttr{
		Env:   env,
		Files: []*os.File{nil, nil, nil}, // stdin, stdout, stderr to /dev/null
		Sys: &syscall.SysProcAttr{
			Setsid: true, // Create new session
		},
	}

	process, err := os.StartProcess(args[0], args, procAttr)
	if err != nil {
		log.Fatalf("Failed to start daemon process: %v", err)
	}

	fmt.Printf("Daemon started successfully (PID: %d)\n", process.Pid)
	if withWeb {
		fmt.Printf("Web API available at: http://%s:%d\n", cfg.Web.Host, cfg.Web.Port)
	}
	fmt.Printf("Logs: %s\n", cfg.Daemon.LogFile)
}
