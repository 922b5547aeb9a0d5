package download

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/handiism/quran-reels/internal/config"
	"github.com/handiism/quran-reels/internal/http"
	ioutils "github.com/handiism/quran-reels/internal/io"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel

	// Written and Total are set on byte progress updates.
	Written int64
	Total   int64
}

// Manager saves finished videos from the backend to the output directory.
type Manager struct {
	settings   *config.Settings
	httpClient *http.Client
	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, client *http.Client, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		httpClient: client,
		onProgress: onProgress,
	}
}

// Save downloads the video named filename into the output directory and
// returns the local path. A local file whose size matches the server's is
// kept as is.
func (m *Manager) Save(ctx context.Context, filename string) (string, error) {
	if filename == "" {
		return "", errors.New("no output file to save")
	}

	if err := ioutils.EnsureDir(m.settings.OutputDir); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating directory: %v", err), Level: LevelError})
		return "", err
	}

	url := m.httpClient.OutputURL(filename)
	dest := filepath.Join(m.settings.OutputDir, ioutils.SanitizeFileName(filename))

	if size, ok := ioutils.FileSize(dest); ok {
		expected, err := m.httpClient.GetFileSize(ctx, url)
		if err == nil && expected == size {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", filepath.Base(dest)), Level: LevelVerbose})
			return dest, nil
		}
	}

	var err error
	for tries := 0; tries < m.maxRetries(); tries++ {
		err = m.httpClient.DownloadFile(ctx, url, dest, func(written, total int64) {
			m.progress(ProgressEvent{Level: LevelVerbose, Written: written, Total: total})
		})
		if err == nil || ctx.Err() != nil {
			break
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Retry %d/%d for %s", tries+1, m.maxRetries(), filename), Level: LevelWarning})
		m.waitForRetry(ctx, tries)
	}

	if err != nil {
		os.Remove(dest)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading %s: %v", filename, err), Level: LevelError})
		return "", err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved %s", dest), Level: LevelSuccess})
	return dest, nil
}

func (m *Manager) maxRetries() int {
	if m.settings.DownloadMaxRetries < 1 {
		return 1
	}
	return m.settings.DownloadMaxRetries
}

func (m *Manager) waitForRetry(ctx context.Context, tries int) {
	cooldown := m.settings.DownloadRetryCooldown * math.Pow(m.settings.DownloadRetryExponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
