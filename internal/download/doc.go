// Package download saves finished videos from the rendering backend.
//
// # Manager
//
// The Manager fetches /outputs/video/<filename> into the configured output
// directory:
//
//	manager := download.NewManager(settings, client, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	path, err := manager.Save(ctx, state.OutputFilename)
//
// # Progress Tracking
//
// Progress is reported via a callback receiving ProgressEvent. Byte progress
// events carry Written and Total; the others carry a Message and a Level
// (Info, Verbose, Warning, Error, Success).
//
// # Retry Logic
//
// Failed downloads are retried with exponential backoff, configurable via
// settings.DownloadMaxRetries, settings.DownloadRetryCooldown and
// settings.DownloadRetryExponent. A file already on disk with the server's
// size is not downloaded again.
package download
