// Package services drives the swap-request lifecycle against the
// message store. The service owns no state of its own: every request
// lives inside the message that carries it, so any number of replicas
// can run against the same channel.
package services

import (
	"log/slog"
	"time"

	"github.com/fomo-ops/fomobot/internal/application"
	"github.com/nats-io/nuid"
)

type SwapService struct {
	store          application.MessageStore
	notifier       application.DownstreamNotifier
	acceptReaction string
	logger         *slog.Logger

	// Injectable for tests.
	now        func() time.Time
	newEventID func() string
}

func NewSwapService(
	store application.MessageStore,
	notifier application.DownstreamNotifier,
	acceptReaction string,
	logger *slog.Logger,
) *SwapService {
	return &SwapService{
		store:          store,
		notifier:       notifier,
		acceptReaction: acceptReaction,
		logger:         logger,
		now:            time.Now,
		newEventID:     nuid.Next,
	}
}
