// Package http provides the client for the rendering backend's HTTP API.
//
// The Client in this package handles:
//   - GET /api/config and GET /api/progress
//   - POST /api/generate, /api/preview and /api/refresh-fonts
//   - Downloads of finished videos from /outputs/video/
//   - User-Agent and session headers, timeouts
//
// # Basic Usage
//
//	client := http.NewClient("http://127.0.0.1:5000")
//
//	cfg, err := client.Config(ctx)
//	resp, err := client.Generate(ctx, &model.GenerationRequest{...})
//	if err == nil && !resp.Success {
//	    fmt.Println(resp.Error) // server refused the job
//	}
//
// # Errors
//
// Non-2xx responses surface as *StatusError, which matches ErrStatus:
//
//	if errors.Is(err, http.ErrStatus) { ... }
//
// # Progress Tracking
//
// The ProgressWriter type can wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
