package domain

import "context"

// BinaryProvisioner downloads the yt-dlp binary into the install directory
type BinaryProvisioner interface {
	// Acquire fetches the binary and returns a human-readable success message
	Acquire(ctx context.Context) (string, error)
}

// BinaryLocator reports where an already-acquired binary lives
type BinaryLocator interface {
	// Locate returns the binary path, or false when it is absent for any reason
	Locate() (string, bool)

	// Find is Locate with the reason for absence preserved
	Find() (string, error)
}

// ToolInvoker runs the located binary against a resource
type ToolInvoker interface {
	// Start spawns yt-dlp and delivers the outcome on the returned channel
	Start(resource string) <-chan *InvocationResult
}
