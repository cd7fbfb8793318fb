package downstream

import (
	"context"
	"log/slog"

	"github.com/fomo-ops/fomobot/internal/application"
)

// NoopNotifier drops confirmations. Used when no event bus is
// configured, the usual shape for a single-workspace install.
type NoopNotifier struct {
	logger *slog.Logger
}

func NewNoopNotifier(logger *slog.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

func (n *NoopNotifier) SwapConfirmed(_ context.Context, event application.SwapConfirmedEvent) error {
	n.logger.Debug("no event bus configured, dropping swap confirmation",
		"event_id", event.EventID)
	return nil
}
