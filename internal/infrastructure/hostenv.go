package infrastructure

import (
	"context"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
	"go.uber.org/zap"

	"github.com/yourusername/ytdlp-bridge/internal/domain"
)

// DetectPlatformContext reads the host OS identity and the running executable
// path once.
//
// gopsutil is preferred for the OS identity; runtime.GOOS is the fallback when
// host detection fails. A missing executable path is left empty and surfaces
// later as ErrDirectoryResolution.
func DetectPlatformContext(ctx context.Context, logger *zap.Logger) domain.PlatformContext {
	if logger == nil {
		logger = zap.NewNop()
	}

	osName := runtime.GOOS
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		logger.Debug("Host detection failed, using runtime OS",
			zap.String("os", osName),
			zap.Error(err))
	} else {
		if info.OS != "" {
			osName = info.OS
		}
		logger.Debug("Detected host platform",
			zap.String("os", osName),
			zap.String("platform", info.Platform),
			zap.String("family", info.PlatformFamily),
			zap.String("version", info.PlatformVersion),
			zap.String("arch", info.KernelArch))
	}

	execPath, err := os.Executable()
	if err != nil {
		logger.Warn("Failed to get executable path", zap.Error(err))
		execPath = ""
	}

	return domain.PlatformContext{
		OS:                 osName,
		ExecutablePath:     execPath,
		SupportsPOSIXModes: SupportsPOSIXModes(osName),
	}
}

// SupportsPOSIXModes reports whether files on osName carry POSIX permission bits.
// Windows executables are runnable without an explicit permission step.
func SupportsPOSIXModes(osName string) bool {
	return domain.ParsePlatform(osName) != domain.PlatformWindows
}
