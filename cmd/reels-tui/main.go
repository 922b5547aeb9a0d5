package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/handiism/quran-reels/internal/config"
	"github.com/handiism/quran-reels/internal/tui"
)

func main() {
	var (
		configFlag = flag.String("config", config.DefaultPath(), "Path to config file")
		urlFlag    = flag.String("url", "", "Backend base URL (overrides config)")
		langFlag   = flag.String("lang", "", "Interface language: ar or en")
		debugFlag  = flag.Bool("debug", false, "Write debug entries to the log file")
	)
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := settings.ApplyEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}
	if *urlFlag != "" {
		settings.BaseURL = *urlFlag
	}
	if *langFlag != "" {
		settings.Language = *langFlag
	}

	if err := os.MkdirAll(filepath.Dir(settings.LogFile), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log directory: %v\n", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	level := slog.LevelInfo
	if *debugFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := tui.Run(settings, *configFlag, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
