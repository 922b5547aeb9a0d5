package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/quran-reels/internal/config"
	"github.com/handiism/quran-reels/internal/console"
	"github.com/handiism/quran-reels/internal/download"
	"github.com/handiism/quran-reels/internal/http"
	"github.com/handiism/quran-reels/internal/model"
)

func main() {
	// Command line flags
	var (
		configFlag = flag.String("config", "", "Path to config file")
		urlFlag    = flag.String("url", "", "Backend base URL (overrides config)")
		outputFlag = flag.String("output", "", "Directory for saved videos (overrides config)")
		langFlag   = flag.String("lang", "", "Message language: ar or en")

		reciterFlag  = flag.String("reciter", "", "Reciter ID")
		surahFlag    = flag.Int("surah", 1, "Surah number (1-114)")
		startFlag    = flag.Int("start", 1, "First ayah")
		endFlag      = flag.Int("end", 5, "Last ayah")
		qualityFlag  = flag.String("quality", "", "Quality preset (low, medium, high)")
		templateFlag = flag.String("template", "", "Template (ramadan, normal, kids)")
		formatFlag   = flag.String("format", "", "Output format (reels, story, post)")
		fontFlag     = flag.String("font", model.RandomFont, "Font file name, or random")
		nameFlag     = flag.String("name", "", "Person name shown in the video")

		previewFlag      = flag.Bool("preview", false, "Send a single-ayah preview of -start instead of a full job")
		waitFlag         = flag.Bool("wait", false, "Poll until the job finishes, printing the log")
		saveFlag         = flag.Bool("save", false, "Download the finished video (implies -wait)")
		fontsFlag        = flag.Bool("fonts", false, "List available fonts and exit")
		refreshFontsFlag = flag.Bool("refresh-fonts", false, "Ask the backend to rescan its fonts and exit")
		verboseFlag      = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := settings.ApplyEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if *urlFlag != "" {
		settings.BaseURL = *urlFlag
	}
	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if *langFlag != "" {
		settings.Language = *langFlag
	}
	if *saveFlag {
		*waitFlag = true
	}

	level := slog.LevelWarn
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	client := http.NewClient(settings.BaseURL, http.WithTimeout(settings.Timeout()))
	c := console.New(client, console.Options{
		PollInterval:   settings.PollInterval(),
		RequestTimeout: settings.Timeout(),
		Language:       settings.Language,
		Logger:         logger,
	})
	defer c.Close()

	c.Subscribe(func(ev console.Event) {
		switch ev.Type {
		case console.EventLog:
			fmt.Println("> " + ev.Line)
		case console.EventAlert:
			fmt.Fprintln(os.Stderr, "❌ "+ev.Alert.Message)
		}
	})

	if *fontsFlag {
		c.LoadFonts(ctx)
		for _, f := range c.State().Fonts {
			fmt.Printf("%-30s %s\n", f.Value, f.Label)
		}
		return
	}

	if *refreshFontsFlag {
		ok, err := c.RefreshFonts(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error refreshing fonts: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			fmt.Println("No fonts found on the server.")
			return
		}
		fmt.Printf("✅ %s (%d)\n", c.Texts().Text(console.KeyFontsRefreshed), len(c.State().Fonts)-1)
		return
	}

	if *previewFlag {
		req := &model.PreviewRequest{
			Reciter:  valueOr(*reciterFlag, settings.DefaultReciter),
			Surah:    *surahFlag,
			Ayah:     *startFlag,
			Template: valueOr(*templateFlag, settings.DefaultTemplate),
		}
		if err := c.Preview(ctx, req); err != nil {
			fmt.Fprintf(os.Stderr, "Error sending preview: %v\n", err)
			os.Exit(1)
		}
	} else {
		req := &model.GenerationRequest{
			Reciter:      valueOr(*reciterFlag, settings.DefaultReciter),
			Surah:        *surahFlag,
			StartAyah:    *startFlag,
			EndAyah:      *endFlag,
			Quality:      valueOr(*qualityFlag, settings.DefaultQuality),
			Template:     valueOr(*templateFlag, settings.DefaultTemplate),
			PersonName:   *nameFlag,
			Format:       valueOr(*formatFlag, settings.DefaultFormat),
			SelectedFont: *fontFlag,
		}
		if err := c.Generate(ctx, req); err != nil {
			// the alert was already printed
			os.Exit(1)
		}
	}

	if !*waitFlag {
		fmt.Println(c.Texts().Text(console.KeyPreparing))
		return
	}

	st, err := c.Wait(ctx)
	if err != nil {
		fmt.Println("\nCancelled.")
		os.Exit(130)
	}

	if st.JobError != "" {
		fmt.Fprintf(os.Stderr, "%s%s\n", c.Texts().Text(console.KeyJobFailed), st.JobError)
		os.Exit(1)
	}
	if !st.PreviewVisible {
		fmt.Println(st.Status)
		return
	}

	fmt.Printf("✨ %s %s\n", c.Texts().Text(console.KeyVideoReady), st.PreviewURL)

	if !*saveFlag {
		return
	}

	manager := download.NewManager(settings, client, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}
		if event.Message != "" {
			fmt.Println("   " + event.Message)
		}
	})
	path, err := manager.Save(ctx, st.OutputFilename)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("\nDownload cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "%s%v\n", c.Texts().Text(console.KeySaveFailed), err)
		os.Exit(1)
	}
	fmt.Printf("✅ %s%s\n", c.Texts().Text(console.KeySaved), path)
}

func valueOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
