package infrastructure

import (
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/ytdlp-bridge/internal/domain"
)

// NotificationService sends desktop notifications when tool operations finish
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
	run    func(name string, args ...string) error
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		config: config,
		logger: logger,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Send sends a notification
func (n *NotificationService) Send(title, message string) error {
	if n == nil || n.config == nil || !n.config.Enabled {
		return nil
	}

	var name string
	var args []string
	switch n.config.Method {
	case "osascript":
		name = "osascript"
		args = []string{"-e", fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(message), escapeAppleScript(title))}
	case "notify-send":
		name = "notify-send"
		args = []string{title, message}
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return nil
	}

	if err := n.run(name, args...); err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("method", n.config.Method),
			zap.Error(err))
		return err
	}

	n.logger.Debug("Notification sent",
		zap.String("title", title),
		zap.String("message", message))
	return nil
}

// NotifyAcquired sends notification when yt-dlp has been downloaded
func (n *NotificationService) NotifyAcquired(message string) {
	n.Send("yt-dlp Installed", message)
}

// NotifyAcquireFailed sends notification when yt-dlp could not be downloaded
func (n *NotificationService) NotifyAcquireFailed(err error) {
	n.Send("yt-dlp Install Failed", truncateString(err.Error(), 80))
}

// NotifyInvocationFinished sends notification when a yt-dlp run ends
func (n *NotificationService) NotifyInvocationFinished(result *domain.InvocationResult) {
	if result.Succeeded() {
		n.Send("Download Completed", fmt.Sprintf("Success: %s", truncateString(result.Resource, 30)))
		return
	}
	n.Send("Download Failed", fmt.Sprintf("Failed: %s", truncateString(result.Resource, 30)))
}

func escapeAppleScript(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
