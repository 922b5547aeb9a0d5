package model

import (
	"errors"
	"fmt"
)

// ErrAyahRange is returned when the end ayah precedes the start ayah.
var ErrAyahRange = errors.New("end ayah must not precede start ayah")

// GenerationRequest is the body of POST /api/generate.
//
// Identifier fields (Reciter, Template, SelectedFont, ...) are passed through
// as entered; the backend decides what it accepts.
type GenerationRequest struct {
	Reciter      string `json:"reciter"`
	Surah        int    `json:"surah"`
	StartAyah    int    `json:"startAyah"`
	EndAyah      int    `json:"endAyah"`
	Quality      string `json:"quality"`
	Template     string `json:"template"`
	PersonName   string `json:"personName"`
	Format       string `json:"format"`
	SelectedFont string `json:"selectedFont"`
}

// Validate checks the ayah range ordering.
func (r *GenerationRequest) Validate() error {
	if r.EndAyah < r.StartAyah {
		return fmt.Errorf("%w: %d < %d", ErrAyahRange, r.EndAyah, r.StartAyah)
	}
	return nil
}

// PreviewRequest is the body of POST /api/preview. It renders a single ayah.
type PreviewRequest struct {
	Reciter  string `json:"reciter"`
	Surah    int    `json:"surah"`
	Ayah     int    `json:"ayah"`
	Template string `json:"template"`
}

// GenerateResponse is the body returned by POST /api/generate.
type GenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
