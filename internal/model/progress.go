package model

import (
	"net/url"
	"strings"
)

// OutputsVideoRoute is the route completed videos are served from.
const OutputsVideoRoute = "/outputs/video/"

// ProgressSnapshot is one state of the backend job as reported by
// GET /api/progress.
type ProgressSnapshot struct {
	IsRunning  bool     `json:"is_running"`
	IsComplete bool     `json:"is_complete"`
	Error      *string  `json:"error"`
	Percent    float64  `json:"percent"`
	Status     string   `json:"status"`
	Log        []string `json:"log"`
	OutputPath *string  `json:"output_path"`
}

// ErrorMessage returns the reported error or "".
func (s *ProgressSnapshot) ErrorMessage() string {
	if s.Error == nil {
		return ""
	}
	return *s.Error
}

// Visible reports whether the snapshot describes a job worth showing:
// running, complete or failed.
func (s *ProgressSnapshot) Visible() bool {
	return s.IsRunning || s.IsComplete || s.ErrorMessage() != ""
}

// OutputFilename returns the last segment of the output path, splitting on
// both forward and backward slashes. It returns "" when no output is set.
func (s *ProgressSnapshot) OutputFilename() string {
	if s.OutputPath == nil {
		return ""
	}
	return lastPathSegment(*s.OutputPath)
}

// PreviewPath returns the route of the finished video, e.g.
// "/outputs/video/clip7.mp4", or "" unless the job is complete with an
// output path.
func (s *ProgressSnapshot) PreviewPath() string {
	if !s.IsComplete {
		return ""
	}
	name := s.OutputFilename()
	if name == "" {
		return ""
	}
	return OutputsVideoRoute + url.PathEscape(name)
}

func lastPathSegment(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}
