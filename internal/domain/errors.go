package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the tool operations. Lower-level causes are wrapped
// as "<kind>: <cause>" so errors.Is matches while the text keeps the detail.
var (
	ErrUnsupportedPlatform = errors.New("unsupported operating system")
	ErrDirectoryResolution = errors.New("cannot determine install directory")
	ErrNetwork             = errors.New("network error")
	ErrFilesystem          = errors.New("filesystem error")
	ErrNotFound            = errors.New("yt-dlp not found")
	ErrEmptyInput          = errors.New("URL is empty")
	ErrProcessSpawn        = errors.New("failed to start yt-dlp")
)

// ProcessFailureError is returned when yt-dlp ran but exited unsuccessfully
type ProcessFailureError struct {
	ExitCode int
	Stderr   string
}

func (e *ProcessFailureError) Error() string {
	return fmt.Sprintf("Download failed: %s", e.Stderr)
}

// IsProcessFailure reports whether err carries a ProcessFailureError
func IsProcessFailure(err error) bool {
	var pf *ProcessFailureError
	return errors.As(err, &pf)
}
