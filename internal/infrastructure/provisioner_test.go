package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/yourusername/ytdlp-bridge/internal/domain"
)

// newTestPlatform returns a linux context whose host executable lives in a temp dir
func newTestPlatform(t *testing.T) domain.PlatformContext {
	t.Helper()
	return domain.PlatformContext{
		OS:                 "linux",
		ExecutablePath:     filepath.Join(t.TempDir(), "host-app"),
		SupportsPOSIXModes: runtime.GOOS != "windows",
	}
}

// requestLog records the paths a test release server was asked for
type requestLog struct {
	mu    sync.Mutex
	paths []string
}

func (l *requestLog) add(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paths = append(l.paths, path)
}

func (l *requestLog) Paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.paths...)
}

// newReleaseServer serves body for every request and records requested paths
func newReleaseServer(t *testing.T, status int, body string) (*httptest.Server, *requestLog) {
	t.Helper()
	log := &requestLog{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r.URL.Path)
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, log
}

func TestProvisioner_Acquire(t *testing.T) {
	server, requests := newReleaseServer(t, http.StatusOK, "#!/bin/sh\necho yt-dlp\n")
	platform := newTestPlatform(t)
	provisioner := NewProvisioner(platform, nil, WithReleaseURL(server.URL))

	message, err := provisioner.Acquire(context.Background())
	require.NoError(t, err)

	expectedPath := filepath.Join(filepath.Dir(platform.ExecutablePath), "yt-dlp")
	assert.Equal(t, "Successfully downloaded yt-dlp to "+expectedPath, message)
	assert.Equal(t, []string{"/yt-dlp"}, requests.Paths())

	content, err := os.ReadFile(expectedPath)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho yt-dlp\n", string(content))
}

func TestProvisioner_SourcePerPlatform(t *testing.T) {
	tests := []struct {
		os       string
		path     string
		filename string
	}{
		{os: "windows", path: "/yt-dlp.exe", filename: "yt-dlp.exe"},
		{os: "darwin", path: "/yt-dlp_macos", filename: "yt-dlp"},
		{os: "linux", path: "/yt-dlp", filename: "yt-dlp"},
	}

	for _, tt := range tests {
		t.Run(tt.os, func(t *testing.T) {
			server, requests := newReleaseServer(t, http.StatusOK, "binary")
			platform := newTestPlatform(t)
			platform.OS = tt.os
			platform.SupportsPOSIXModes = false

			_, err := NewProvisioner(platform, nil, WithReleaseURL(server.URL)).Acquire(context.Background())
			require.NoError(t, err)

			assert.Equal(t, []string{tt.path}, requests.Paths())
			assert.FileExists(t, filepath.Join(filepath.Dir(platform.ExecutablePath), tt.filename))
		})
	}
}

func TestProvisioner_SetsExecutableMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission bits are not available on Windows")
	}

	server, _ := newReleaseServer(t, http.StatusOK, "binary")
	platform := newTestPlatform(t)

	_, err := NewProvisioner(platform, nil, WithReleaseURL(server.URL)).Acquire(context.Background())
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(filepath.Dir(platform.ExecutablePath), "yt-dlp"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestProvisioner_SkipsPermissionStepWithoutCapability(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission bits are not available on Windows")
	}

	server, _ := newReleaseServer(t, http.StatusOK, "binary")
	platform := newTestPlatform(t)
	platform.SupportsPOSIXModes = false

	_, err := NewProvisioner(platform, nil, WithReleaseURL(server.URL)).Acquire(context.Background())
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(filepath.Dir(platform.ExecutablePath), "yt-dlp"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&0111, "no execute bit expected without the capability")
}

func TestProvisioner_OverwritesExistingBinary(t *testing.T) {
	server, _ := newReleaseServer(t, http.StatusOK, "new build")
	platform := newTestPlatform(t)
	target := filepath.Join(filepath.Dir(platform.ExecutablePath), "yt-dlp")
	require.NoError(t, os.WriteFile(target, []byte("old build that is longer"), 0644))

	provisioner := NewProvisioner(platform, nil, WithReleaseURL(server.URL))
	_, err := provisioner.Acquire(context.Background())
	require.NoError(t, err)
	_, err = provisioner.Acquire(context.Background())
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new build", string(content))
}

func TestProvisioner_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		mutate   func(p *domain.PlatformContext)
		expected error
		contains string
	}{
		{
			name:     "unsupported platform",
			status:   http.StatusOK,
			mutate:   func(p *domain.PlatformContext) { p.OS = "plan9" },
			expected: domain.ErrUnsupportedPlatform,
		},
		{
			name:     "unknown executable path",
			status:   http.StatusOK,
			mutate:   func(p *domain.PlatformContext) { p.ExecutablePath = "" },
			expected: domain.ErrDirectoryResolution,
		},
		{
			name:     "not found response",
			status:   http.StatusNotFound,
			mutate:   func(p *domain.PlatformContext) {},
			expected: domain.ErrNetwork,
			contains: "404",
		},
		{
			name:     "server error response",
			status:   http.StatusInternalServerError,
			mutate:   func(p *domain.PlatformContext) {},
			expected: domain.ErrNetwork,
			contains: "500",
		},
		{
			name:   "install dir missing",
			status: http.StatusOK,
			mutate: func(p *domain.PlatformContext) {
				p.ExecutablePath = filepath.Join(filepath.Dir(p.ExecutablePath), "missing", "host-app")
			},
			expected: domain.ErrFilesystem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newReleaseServer(t, tt.status, "body")
			platform := newTestPlatform(t)
			tt.mutate(&platform)

			_, err := NewProvisioner(platform, nil, WithReleaseURL(server.URL)).Acquire(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestProvisioner_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewProvisioner(newTestPlatform(t), nil, WithReleaseURL(url)).Acquire(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNetwork))
	assert.Contains(t, err.Error(), "network error: ")
}

func TestProvisioner_NothingWrittenOnNetworkFailure(t *testing.T) {
	server, _ := newReleaseServer(t, http.StatusBadGateway, "bad gateway")
	platform := newTestPlatform(t)

	_, err := NewProvisioner(platform, nil, WithReleaseURL(server.URL)).Acquire(context.Background())
	require.Error(t, err)

	_, ok := NewLocator(platform, nil).Locate()
	assert.False(t, ok)
}

func TestProvisioner_LocatorAgreesOnPath(t *testing.T) {
	server, _ := newReleaseServer(t, http.StatusOK, "binary")

	rapid.Check(t, func(rt *rapid.T) {
		osName := rapid.SampledFrom([]string{"windows", "darwin", "macos", "linux"}).Draw(rt, "os")
		appName := rapid.StringMatching(`[a-z][a-z0-9_-]{0,12}`).Draw(rt, "app")

		dir, err := os.MkdirTemp(t.TempDir(), "install")
		if err != nil {
			rt.Fatalf("mkdir: %v", err)
		}
		platform := domain.PlatformContext{OS: osName, ExecutablePath: filepath.Join(dir, appName)}

		if _, ok := NewLocator(platform, nil).Locate(); ok {
			rt.Fatalf("binary located before acquisition")
		}

		message, err := NewProvisioner(platform, nil, WithReleaseURL(server.URL)).Acquire(context.Background())
		if err != nil {
			rt.Fatalf("acquire: %v", err)
		}

		path, ok := NewLocator(platform, nil).Locate()
		if !ok {
			rt.Fatalf("binary not located after acquisition")
		}
		if want := "Successfully downloaded " + filepath.Base(path) + " to " + path; message != want {
			rt.Fatalf("acquire wrote %q, locator found %q", message, path)
		}
	})
}
