package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/yourusername/ytdlp-bridge/internal/domain"
)

const (
	// DefaultUserAgent is the User-Agent header sent when fetching the binary
	DefaultUserAgent = "ytdlp-bridge/1.0"

	executableMode os.FileMode = 0755
)

// Provisioner downloads the platform's yt-dlp build next to the host executable
type Provisioner struct {
	platform   domain.PlatformContext
	client     *http.Client
	releaseURL string
	userAgent  string
	logger     *zap.Logger
}

// ProvisionerOption customises a Provisioner
type ProvisionerOption func(*Provisioner)

// WithReleaseURL overrides the download source base URL
func WithReleaseURL(url string) ProvisionerOption {
	return func(p *Provisioner) {
		p.releaseURL = url
	}
}

// WithHTTPClient overrides the HTTP client used for the download
func WithHTTPClient(client *http.Client) ProvisionerOption {
	return func(p *Provisioner) {
		p.client = client
	}
}

// NewProvisioner creates a new provisioner for the given platform context.
// The default client has no timeout and never retries.
func NewProvisioner(platform domain.PlatformContext, logger *zap.Logger, opts ...ProvisionerOption) *Provisioner {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Provisioner{
		platform:   platform,
		client:     &http.Client{},
		releaseURL: domain.DefaultReleaseURL,
		userAgent:  DefaultUserAgent,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Acquire downloads yt-dlp into the install directory, overwriting any previous
// copy in place, and marks it executable where the platform needs it.
func (p *Provisioner) Acquire(ctx context.Context) (string, error) {
	descriptor, err := domain.ResolveDescriptor(p.platform.OS, p.releaseURL)
	if err != nil {
		return "", err
	}

	savePath, err := p.platform.BinaryPath(descriptor)
	if err != nil {
		return "", err
	}

	p.logger.Info("Downloading yt-dlp",
		zap.String("platform", string(descriptor.Platform)),
		zap.String("url", descriptor.SourceURL),
		zap.String("path", savePath))

	data, err := p.fetch(ctx, descriptor.SourceURL)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(savePath, data, 0644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", domain.ErrFilesystem, savePath, err)
	}

	if p.platform.SupportsPOSIXModes {
		if err := makeExecutable(savePath); err != nil {
			return "", err
		}
	}

	message := fmt.Sprintf("Successfully downloaded %s to %s", descriptor.Filename, savePath)
	p.logger.Info("Downloaded yt-dlp",
		zap.String("path", savePath),
		zap.Int("bytes", len(data)))

	return message, nil
}

// fetch reads the whole response body into memory
func (p *Provisioner) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: unexpected status %s", domain.ErrNetwork, url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrNetwork, err)
	}
	return data, nil
}

// makeExecutable sets rwxr-xr-x on path
func makeExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: stat %s: %v", domain.ErrFilesystem, path, err)
	}

	mode := (info.Mode() &^ os.ModePerm) | executableMode
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", domain.ErrFilesystem, path, err)
	}
	return nil
}
