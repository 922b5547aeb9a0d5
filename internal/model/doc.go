// Package model defines the data exchanged with the rendering backend.
//
// # Requests
//
// GenerationRequest starts a full render of an ayah range, PreviewRequest a
// single-ayah preview:
//
//	req := &model.GenerationRequest{Surah: 2, StartAyah: 1, EndAyah: 5}
//	if err := req.Validate(); err != nil {
//	    // errors.Is(err, model.ErrAyahRange)
//	}
//
// # Progress
//
// ProgressSnapshot mirrors GET /api/progress. PreviewPath derives the
// served location of a finished video from its output path:
//
//	snap.OutputPath = ptr(`C:\out\video\clip7.mp4`)
//	snap.PreviewPath() // "/outputs/video/clip7.mp4"
//
// # Fonts
//
// FontOptions turns the backend's font file list into selector options,
// led by the RandomFont sentinel.
package model
