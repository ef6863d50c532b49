package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yourusername/ytdlp-bridge/internal/domain"
	"github.com/yourusername/ytdlp-bridge/internal/infrastructure"
	"github.com/yourusername/ytdlp-bridge/pkg/logger"
)

// Host bundles what a CLI or server process needs to serve tool requests
type Host struct {
	Service  *ToolService
	Platform domain.PlatformContext
	Logger   *zap.Logger
	Events   *logger.EventLogger
}

// NewHost builds the logger, event log, platform context and tool service from config
func NewHost(ctx context.Context, config *domain.Config) (*Host, error) {
	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	var events *logger.EventLogger
	if config.Logging.EventsDir != "" {
		events, err = logger.NewEventLogger(config.Logging.EventsDir, config.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize event log: %w", err)
		}
	}

	platform := infrastructure.DetectPlatformContext(ctx, log)
	notifier := infrastructure.NewNotificationService(&config.Notification, log)

	return &Host{
		Service:  NewHostToolService(platform, notifier, events, log),
		Platform: platform,
		Logger:   log,
		Events:   events,
	}, nil
}

// Close flushes the logger and closes the event log
func (h *Host) Close() {
	_ = h.Logger.Sync()
	_ = h.Events.Close()
}
