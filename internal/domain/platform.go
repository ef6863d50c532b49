package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultReleaseURL is the fixed download source for yt-dlp release binaries
const DefaultReleaseURL = "https://github.com/yt-dlp/yt-dlp/releases/latest/download"

// Platform represents the host operating system family
type Platform string

const (
	PlatformWindows     Platform = "windows"
	PlatformMacOS       Platform = "macos"
	PlatformLinux       Platform = "linux"
	PlatformUnsupported Platform = "unsupported"
)

// ParsePlatform maps an OS identity (runtime.GOOS style) to a Platform
func ParsePlatform(osName string) Platform {
	switch strings.ToLower(strings.TrimSpace(osName)) {
	case "windows":
		return PlatformWindows
	case "darwin", "macos":
		return PlatformMacOS
	case "linux":
		return PlatformLinux
	default:
		return PlatformUnsupported
	}
}

// BinaryDescriptor is the filename and download source for one platform
type BinaryDescriptor struct {
	Platform  Platform
	Filename  string
	SourceURL string
}

// DescriptorFor resolves the descriptor for osName against DefaultReleaseURL
func DescriptorFor(osName string) (BinaryDescriptor, error) {
	return ResolveDescriptor(osName, DefaultReleaseURL)
}

// ResolveDescriptor maps an OS identity to the yt-dlp build published for it.
// The same inputs always yield the same descriptor.
func ResolveDescriptor(osName, releaseURL string) (BinaryDescriptor, error) {
	base := strings.TrimRight(releaseURL, "/")
	platform := ParsePlatform(osName)

	switch platform {
	case PlatformWindows:
		return BinaryDescriptor{Platform: platform, Filename: "yt-dlp.exe", SourceURL: base + "/yt-dlp.exe"}, nil
	case PlatformMacOS:
		return BinaryDescriptor{Platform: platform, Filename: "yt-dlp", SourceURL: base + "/yt-dlp_macos"}, nil
	case PlatformLinux:
		return BinaryDescriptor{Platform: platform, Filename: "yt-dlp", SourceURL: base + "/yt-dlp"}, nil
	default:
		return BinaryDescriptor{}, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, osName)
	}
}

// PlatformContext carries everything the provisioner and locator would
// otherwise read from the running process.
type PlatformContext struct {
	// OS is the host OS identity, e.g. "linux", "darwin", "windows"
	OS string
	// ExecutablePath is the path of the running host application
	ExecutablePath string
	// SupportsPOSIXModes reports whether the target can set POSIX permission bits
	SupportsPOSIXModes bool
}

// Platform returns the parsed platform of the context
func (c PlatformContext) Platform() Platform {
	return ParsePlatform(c.OS)
}

// InstallDir returns the directory containing the host executable
func (c PlatformContext) InstallDir() (string, error) {
	if c.ExecutablePath == "" {
		return "", fmt.Errorf("%w: executable path is unknown", ErrDirectoryResolution)
	}

	cleaned := filepath.Clean(c.ExecutablePath)
	dir := filepath.Dir(cleaned)
	if dir == cleaned {
		return "", fmt.Errorf("%w: %s has no parent directory", ErrDirectoryResolution, c.ExecutablePath)
	}
	return dir, nil
}

// BinaryPath returns the deterministic install location for the platform's binary
func (c PlatformContext) BinaryPath(descriptor BinaryDescriptor) (string, error) {
	dir, err := c.InstallDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, descriptor.Filename), nil
}
