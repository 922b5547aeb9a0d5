// Package config provides configuration management for the Quran reels
// console.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Overrides from REELS_* environment variables and .env files
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Backend at http://127.0.0.1:5000, polled every second
//	// Finished videos saved to ~/Videos/QuranReels
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//	err = settings.ApplyEnv(".env")
//
// # Configuration Options
//
// Settings includes options for:
//   - Backend URL, poll interval and request timeout
//   - Output directory and download retry behavior
//   - Console language and log file
//   - Form defaults (reciter, quality, template, format)
package config
