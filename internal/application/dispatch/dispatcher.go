// Package dispatch filters inbound platform events and routes the few
// that matter to the swap lifecycle engine.
package dispatch

import (
	"context"
	"log/slog"

	"github.com/fomo-ops/fomobot/internal/application"
	"github.com/fomo-ops/fomobot/internal/application/services"
	"github.com/fomo-ops/fomobot/internal/domain"
)

// Engine is the slice of the lifecycle service the dispatcher drives.
type Engine interface {
	CreateRequest(ctx context.Context, channel, requestor string, window domain.Window) error
	AttemptResolve(ctx context.Context, channel string, ref application.MessageRef, takingUser string) (services.ResolveOutcome, error)
	WelcomeMember(ctx context.Context, channel, member string) error
}

// Dispatcher decides which inbound events reach the engine. Nearly all
// channel traffic is discarded here: the bot acts only on the accept
// reaction placed on its own messages, on submitted swap modals, and
// on members joining a channel.
type Dispatcher struct {
	engine         Engine
	botUserID      string
	acceptReaction string
	logger         *slog.Logger
}

// NewDispatcher wires the dispatcher to the engine. botUserID is the
// bot's own platform identity, resolved once at startup; it is what
// lets the reaction filter recognize the bot's request messages.
func NewDispatcher(engine Engine, botUserID, acceptReaction string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		engine:         engine,
		botUserID:      botUserID,
		acceptReaction: acceptReaction,
		logger:         logger,
	}
}

// HandleReactionAdded forwards an acceptance to the engine when the
// reaction is the accept emoji, the reacted item is a message, and
// that message was authored by the bot itself. Anything else is
// dropped before any platform call is made.
func (d *Dispatcher) HandleReactionAdded(ctx context.Context, event application.ReactionAddedEvent) {
	if event.ItemAuthor != d.botUserID ||
		event.Reaction != d.acceptReaction ||
		event.ItemType != "message" {
		d.logger.Debug("ignoring reaction",
			"reaction", event.Reaction,
			"item_type", event.ItemType,
			"item_author", event.ItemAuthor,
		)
		return
	}

	outcome, err := d.engine.AttemptResolve(ctx, event.Channel, event.Ref, event.User)
	if err != nil {
		d.logger.Error("resolve attempt failed",
			"channel", event.Channel,
			"ref", event.Ref,
			"outcome", outcome.String(),
			"error", err,
		)
		return
	}
	d.logger.Debug("resolve attempt finished",
		"channel", event.Channel,
		"ref", event.Ref,
		"outcome", outcome.String(),
	)
}

// HandleViewSubmission turns a submitted swap modal into a new
// request. Submissions with missing fields are dropped with a warning;
// the platform has already closed the modal by the time we see them.
func (d *Dispatcher) HandleViewSubmission(ctx context.Context, event application.ViewSubmissionEvent) {
	if event.Channel == "" || event.User == "" {
		d.logger.Warn("view submission missing channel or user")
		return
	}

	window := domain.Window{
		StartDate: event.StartDate,
		StartTime: event.StartTime,
		EndDate:   event.EndDate,
		EndTime:   event.EndTime,
	}
	if err := d.engine.CreateRequest(ctx, event.Channel, event.User, window); err != nil {
		d.logger.Error("create request failed",
			"channel", event.Channel,
			"requestor", event.User,
			"error", err,
		)
	}
}

// HandleMemberJoined greets new channel members.
func (d *Dispatcher) HandleMemberJoined(ctx context.Context, event application.MemberJoinedEvent) {
	if err := d.engine.WelcomeMember(ctx, event.Channel, event.Member); err != nil {
		d.logger.Error("welcome failed",
			"channel", event.Channel,
			"member", event.Member,
			"error", err,
		)
	}
}
