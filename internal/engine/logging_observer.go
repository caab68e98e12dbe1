package engine

import (
	"log/slog"
)

// LoggingObserver logs every operation event using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a new logging observer on the default logger
func NewLoggingObserver() *LoggingObserver {
	return &LoggingObserver{
		logger: slog.Default(),
	}
}

// OnEvent implements the Observer interface
// Start events are logged at debug, failures at warn, everything else at info.
func (lo *LoggingObserver) OnEvent(event Event) {
	attrs := []any{
		slog.String("event", string(event.Type)),
		slog.String("tx_id", event.TxID),
		slog.String("table", event.Table),
		slog.String("op", event.Operation),
	}

	switch {
	case event.Type == EventOpStart:
		lo.logger.Debug("operation_lifecycle", attrs...)
	case event.Err != nil:
		attrs = append(attrs, slog.Duration("duration", event.Duration), slog.Any("error", event.Err))
		lo.logger.Warn("operation_lifecycle", attrs...)
	default:
		attrs = append(attrs, slog.Duration("duration", event.Duration), slog.Any("data", event.Data))
		lo.logger.Info("operation_lifecycle", attrs...)
	}
}
