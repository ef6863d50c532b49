package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/yourusername/ytdlp-bridge/internal/domain"
	"github.com/yourusername/ytdlp-bridge/internal/infrastructure"
	"github.com/yourusername/ytdlp-bridge/pkg/logger"
)

// ToolService is the boundary the hosts call for acquire, locate and invoke
type ToolService struct {
	provisioner domain.BinaryProvisioner
	locator     domain.BinaryLocator
	invoker     domain.ToolInvoker
	notifier    *infrastructure.NotificationService
	events      *logger.EventLogger
	logger      *zap.Logger
}

// NewToolService creates a new tool service. notifier and events may be nil.
func NewToolService(
	provisioner domain.BinaryProvisioner,
	locator domain.BinaryLocator,
	invoker domain.ToolInvoker,
	notifier *infrastructure.NotificationService,
	events *logger.EventLogger,
	log *zap.Logger,
) *ToolService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ToolService{
		provisioner: provisioner,
		locator:     locator,
		invoker:     invoker,
		notifier:    notifier,
		events:      events,
		logger:      log,
	}
}

// NewHostToolService wires the default provisioner, locator and invoker for platform
func NewHostToolService(
	platform domain.PlatformContext,
	notifier *infrastructure.NotificationService,
	events *logger.EventLogger,
	log *zap.Logger,
) *ToolService {
	locator := infrastructure.NewLocator(platform, log)
	return NewToolService(
		infrastructure.NewProvisioner(platform, log),
		locator,
		infrastructure.NewInvoker(locator, log),
		notifier,
		events,
		log,
	)
}

// Acquire downloads yt-dlp next to the host executable
func (s *ToolService) Acquire(ctx context.Context) (string, error) {
	message, err := s.provisioner.Acquire(ctx)
	if err != nil {
		s.logger.Error("Failed to acquire yt-dlp", zap.Error(err))
		s.events.LogError("acquire_failed", zap.Error(err))
		s.notifier.NotifyAcquireFailed(err)
		return "", err
	}

	s.logger.Info("yt-dlp acquired", zap.String("message", message))
	s.events.LogProvision("acquired", zap.String("message", message))
	s.notifier.NotifyAcquired(message)
	return message, nil
}

// Locate returns the installed binary path, or false when it is absent
func (s *ToolService) Locate() (string, bool) {
	return s.locator.Locate()
}

// Find returns the installed binary path or the reason it is absent
func (s *ToolService) Find() (string, error) {
	return s.locator.Find()
}

// Run starts yt-dlp for resource and waits for the outcome. If ctx ends first
// the caller gets ctx.Err(); the child keeps running and its outcome is
// recorded when it arrives.
func (s *ToolService) Run(ctx context.Context, resource string) (*domain.InvocationResult, error) {
	done := s.invoker.Start(resource)

	select {
	case result := <-done:
		s.record(result)
		return result, nil
	case <-ctx.Done():
		s.logger.Warn("Stopped waiting for yt-dlp",
			zap.String("url", resource),
			zap.Error(ctx.Err()))
		go func() {
			s.record(<-done)
		}()
		return nil, ctx.Err()
	}
}

// Invoke runs yt-dlp for resource and returns the text outcome
func (s *ToolService) Invoke(ctx context.Context, resource string) (string, error) {
	result, err := s.Run(ctx, resource)
	if err != nil {
		return "", err
	}
	if result.Err != nil {
		return "", result.Err
	}
	return result.Message(), nil
}

// record logs, journals and announces a finished invocation
func (s *ToolService) record(result *domain.InvocationResult) {
	fields := []zap.Field{
		zap.String("id", result.ID),
		zap.String("url", result.Resource),
		zap.String("command", result.Command),
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("duration", result.Duration),
	}

	if result.Succeeded() {
		s.events.LogInvocation("invocation_succeeded", fields...)
	} else {
		fields = append(fields, zap.Error(result.Err))
		s.events.LogInvocation("invocation_failed", fields...)
		s.events.LogError("invocation_failed", fields...)
	}

	// a run that never spawned is a caller mistake, not worth a notification
	if result.Command != "" {
		s.notifier.NotifyInvocationFinished(result)
	}
}
