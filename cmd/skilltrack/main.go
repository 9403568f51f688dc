// Package main is the entry point for the skilltrack cooldown tracker.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/skilltrack/internal/app"
	"github.com/dshills/skilltrack/internal/capture"
	"github.com/dshills/skilltrack/internal/config"
	"github.com/dshills/skilltrack/internal/countdown"
	"github.com/dshills/skilltrack/internal/router"
	"github.com/dshills/skilltrack/internal/settings"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath   string
	settingsPath string
	logLevel     string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(opts.logLevel),
		Output: os.Stderr,
		Prefix: "skilltrack",
	})

	configPath := opts.configPath
	if configPath == "" {
		if path, err := config.DefaultPath(); err == nil {
			configPath = path
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	settingsPath := opts.settingsPath
	if settingsPath == "" {
		settingsPath = cfg.Settings.Path
	}
	if settingsPath == "" {
		settingsPath, err = settings.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to resolve settings path: %v\n", err)
			return 1
		}
	}

	controller, err := app.New(app.Options{
		Config:   cfg,
		Store:    settings.NewStore(settingsPath),
		Adapters: []router.Adapter{capture.NewTerminal()},
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	cooldownLogger := logger.WithComponent("countdown")
	controller.Service().Subscribe(func(ev countdown.Event) {
		switch ev.Type {
		case countdown.EventRemoved:
			if ev.Completed {
				cooldownLogger.Info("skill %s ready", ev.SkillID)
			} else {
				cooldownLogger.Info("skill %s cleared", ev.SkillID)
			}
		default:
			cooldownLogger.Debug("skill %s: %.1fs remaining", ev.SkillID, ev.Remaining.Seconds())
		}
	})

	if err := controller.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to start tracking: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals

	if err := controller.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.settingsPath, "settings", "", "Path to settings JSON file")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Skilltrack - skill cooldown tracker\n\n")
		fmt.Fprintf(os.Stderr, "Usage: skilltrack [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  skilltrack                        Track with default settings\n")
		fmt.Fprintf(os.Stderr, "  skilltrack -settings ./s.json     Use a specific settings file\n")
		fmt.Fprintf(os.Stderr, "  skilltrack -log-level debug       Log every countdown update\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Skilltrack %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	return opts
}
