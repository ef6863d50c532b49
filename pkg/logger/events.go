package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventCategory names one JSON event log file
type EventCategory string

const (
	CategoryProvision EventCategory = "provision" // acquisitions
	CategoryInvoke    EventCategory = "invoke"    // yt-dlp runs
	CategoryError     EventCategory = "error"     // failures of either
)

// EventLogger writes tool lifecycle events as JSON lines, one file per
// category and day: <dir>/<category>-YYYYMMDD.log
type EventLogger struct {
	dir     string
	loggers map[EventCategory]*zap.Logger
	files   []*os.File
	mu      sync.RWMutex
}

// NewEventLogger opens the event files under dir, creating it if needed
func NewEventLogger(dir string, level string) (*EventLogger, error) {
	if dir == "" {
		return nil, fmt.Errorf("events directory must be specified")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create events directory: %w", err)
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}

	el := &EventLogger{
		dir:     dir,
		loggers: make(map[EventCategory]*zap.Logger),
	}

	for _, category := range []EventCategory{CategoryProvision, CategoryInvoke, CategoryError} {
		catLevel := parsed
		if category == CategoryError {
			catLevel = zapcore.ErrorLevel
		}
		l, err := el.open(category, catLevel)
		if err != nil {
			el.Close()
			return nil, fmt.Errorf("failed to create %s logger: %w", category, err)
		}
		el.loggers[category] = l
	}

	return el, nil
}

func (el *EventLogger) open(category EventCategory, level zapcore.Level) (*zap.Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.CallerKey = ""

	file, err := os.OpenFile(el.Path(category, time.Now()), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	el.files = append(el.files, file)

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(file), level)
	return zap.New(core), nil
}

// Path returns the event file for category on the given day
func (el *EventLogger) Path(category EventCategory, day time.Time) string {
	return filepath.Join(el.dir, fmt.Sprintf("%s-%s.log", category, day.Format("20060102")))
}

// Get returns the logger for category, falling back to the error logger
func (el *EventLogger) Get(category EventCategory) *zap.Logger {
	el.mu.RLock()
	defer el.mu.RUnlock()

	if l, ok := el.loggers[category]; ok {
		return l
	}
	return el.loggers[CategoryError]
}

// LogProvision records an acquisition event
func (el *EventLogger) LogProvision(event string, fields ...zap.Field) {
	if el == nil {
		return
	}
	el.Get(CategoryProvision).Info(event, fields...)
}

// LogInvocation records a yt-dlp run event
func (el *EventLogger) LogInvocation(event string, fields ...zap.Field) {
	if el == nil {
		return
	}
	el.Get(CategoryInvoke).Info(event, fields...)
}

// LogError records a failed operation
func (el *EventLogger) LogError(msg string, fields ...zap.Field) {
	if el == nil {
		return
	}
	el.Get(CategoryError).Error(msg, fields...)
}

// Sync flushes all loggers
func (el *EventLogger) Sync() error {
	if el == nil {
		return nil
	}
	el.mu.RLock()
	defer el.mu.RUnlock()

	var lastErr error
	for _, l := range el.loggers {
		if err := l.Sync(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Close flushes all loggers and closes their files
func (el *EventLogger) Close() error {
	if el == nil {
		return nil
	}
	el.mu.Lock()
	defer el.mu.Unlock()

	var lastErr error
	for _, l := range el.loggers {
		if err := l.Sync(); err != nil {
			lastErr = err
		}
	}
	for _, f := range el.files {
		if err := f.Close(); err != nil {
			lastErr = err
		}
	}
	el.files = nil
	return lastErr
}
