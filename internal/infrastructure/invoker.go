package infrastructure

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/ytdlp-bridge/internal/domain"
)

// Invoker runs yt-dlp with the fixed audio-extraction argument template
type Invoker struct {
	locator domain.BinaryLocator
	logger  *zap.Logger
}

// NewInvoker creates a new invoker that finds the binary through locator
func NewInvoker(locator domain.BinaryLocator, logger *zap.Logger) *Invoker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invoker{
		locator: locator,
		logger:  logger,
	}
}

// Invoke runs yt-dlp against resource and blocks until it exits
func (i *Invoker) Invoke(resource string) *domain.InvocationResult {
	return <-i.Start(resource)
}

// Start validates the input, spawns yt-dlp and returns immediately. The wait for
// the child runs on its own goroutine; the outcome arrives on the returned
// channel exactly once. Nothing here kills the child.
func (i *Invoker) Start(resource string) <-chan *domain.InvocationResult {
	done := make(chan *domain.InvocationResult, 1)
	result := domain.NewInvocationResult(resource)

	if resource == "" {
		done <- result.Fail(domain.ErrEmptyInput)
		return done
	}

	binary, ok := i.locator.Locate()
	if !ok {
		done <- result.Fail(domain.ErrNotFound)
		return done
	}

	args := domain.InvocationArgs(resource)
	result.Command = FormatCommand(binary, args...)

	i.logger.Info("Starting yt-dlp",
		zap.String("id", result.ID),
		zap.String("url", resource),
		zap.String("command", result.Command))

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		i.logger.Error("Failed to start yt-dlp", zap.String("id", result.ID), zap.Error(err))
		done <- result.Fail(fmt.Errorf("%w: %v", domain.ErrProcessSpawn, err))
		return done
	}

	go func() {
		waitErr := cmd.Wait()
		done <- i.finish(result, waitErr, stdout.Bytes(), stderr.Bytes())
	}()

	return done
}

// finish reduces the child's exit to a success or a ProcessFailureError
func (i *Invoker) finish(result *domain.InvocationResult, waitErr error, stdout, stderr []byte) *domain.InvocationResult {
	result.Stderr = decodeOutput(stderr)
	output := decodeOutput(stdout)

	if waitErr == nil {
		result.Complete(output)
		i.logger.Info("yt-dlp finished",
			zap.String("id", result.ID),
			zap.Duration("duration", result.Duration))
		return result
	}

	result.Output = output
	result.ExitCode = -1
	message := result.Stderr

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	} else if message == "" {
		message = waitErr.Error()
	}

	result.Fail(&domain.ProcessFailureError{ExitCode: result.ExitCode, Stderr: message})
	i.logger.Warn("yt-dlp failed",
		zap.String("id", result.ID),
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("duration", result.Duration),
		zap.String("stderr", message))
	return result
}

// decodeOutput decodes process output, replacing invalid UTF-8 sequences
func decodeOutput(b []byte) string {
	return strings.ToValidUTF8(string(b), "\uFFFD")
}
