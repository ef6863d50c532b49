package infrastructure

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yourusername/ytdlp-bridge/internal/domain"
)

// Locator finds a previously acquired yt-dlp binary. It recomputes the path
// exactly as the Provisioner does and never triggers a download.
type Locator struct {
	platform domain.PlatformContext
	logger   *zap.Logger
}

// NewLocator creates a new locator
func NewLocator(platform domain.PlatformContext, logger *zap.Logger) *Locator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Locator{
		platform: platform,
		logger:   logger,
	}
}

// Locate returns the binary path if something exists there.
// Every failure, including an unsupported platform, reads as "absent".
func (l *Locator) Locate() (string, bool) {
	path, err := l.Find()
	if err != nil {
		l.logger.Debug("yt-dlp not located", zap.Error(err))
		return "", false
	}
	return path, true
}

// Find returns the binary path or the reason it could not be located:
// ErrUnsupportedPlatform, ErrDirectoryResolution or ErrNotFound.
func (l *Locator) Find() (string, error) {
	descriptor, err := domain.DescriptorFor(l.platform.OS)
	if err != nil {
		return "", err
	}

	path, err := l.platform.BinaryPath(descriptor)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	return path, nil
}
