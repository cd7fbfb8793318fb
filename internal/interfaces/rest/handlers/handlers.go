// Package handlers owns the webhook surface: slash commands,
// interactive submissions and the events callback. Every route acks
// fast; anything that talks back to the platform runs on the pump.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fomo-ops/fomobot/internal/application"
	"github.com/fomo-ops/fomobot/internal/application/dispatch"
	"github.com/fomo-ops/fomobot/internal/interfaces/rest/middleware"
	"github.com/fomo-ops/fomobot/internal/modal"
	"github.com/fomo-ops/fomobot/internal/worker"
	"github.com/go-chi/chi/v5"
)

// JobQueue hands webhook work to the background pump.
type JobQueue interface {
	Enqueue(job worker.Job) bool
}

type Handlers struct {
	dispatcher *dispatch.Dispatcher
	modals     *modal.Builder
	opener     application.ModalOpener
	queue      JobQueue
	ready      func(ctx context.Context) error
	logger     *slog.Logger
}

// NewHandlers builds the webhook handlers. ready may be nil when
// there is no downstream dependency to probe.
func NewHandlers(
	dispatcher *dispatch.Dispatcher,
	modals *modal.Builder,
	opener application.ModalOpener,
	queue JobQueue,
	ready func(ctx context.Context) error,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		dispatcher: dispatcher,
		modals:     modals,
		opener:     opener,
		queue:      queue,
		ready:      ready,
		logger:     logger,
	}
}

// Router wires the webhook routes behind the signature guard. Health
// endpoints stay outside it so probes need no signing.
func (h *Handlers) Router(verifier middleware.RequestVerifier) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)

	r.Group(func(guarded chi.Router) {
		guarded.Use(middleware.SignatureGuard(verifier, h.logger))
		guarded.Post("/slack/commands", h.SlashCommand)
		guarded.Post("/slack/interactive", h.Interactive)
		guarded.Post("/slack/events", h.Events)
	})

	return r
}

func (h *Handlers) enqueue(kind string, job worker.Job) {
	if !h.queue.Enqueue(job) {
		h.logger.Warn("event dropped, queue full", "type", kind)
	}
}
