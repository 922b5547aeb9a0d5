// Package ioutils provides file system helpers for saving finished videos.
//
// This package contains functions for:
//   - Filename sanitization
//   - Directory creation
//   - Existing file checks
package ioutils
