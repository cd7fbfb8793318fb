package application

import (
	"context"
	"encoding/json"
)

// MessageRef identifies a single message inside a channel. On Slack
// this is the message timestamp, which the platform treats as the
// message's unique ID within its channel.
type MessageRef string

// MessageStore is the port for the chat platform's message API. It is
// the bot's only durable medium: a swap request exists exactly as long
// as the message carrying its token does.
type MessageStore interface {
	// PostMessage publishes text to a channel and returns the ref of
	// the created message.
	PostMessage(ctx context.Context, channel, text string) (MessageRef, error)

	// FetchMessage returns the body of exactly the message at ref.
	// Implementations must anchor the lookup at ref and return
	// ErrMessageNotFound when that precise message no longer exists.
	FetchMessage(ctx context.Context, channel string, ref MessageRef) (string, error)

	// DeleteMessage removes the message at ref. Deleting a message
	// that is already gone fails with ErrMessageNotFound, which is how
	// two racing resolvers discover who won.
	DeleteMessage(ctx context.Context, channel string, ref MessageRef) error
}

// ModalOpener is the port for opening interactive views in response to
// a user interaction.
type ModalOpener interface {
	OpenView(ctx context.Context, triggerID string, view json.RawMessage) error
}

// DownstreamNotifier is the port for telling paging and HR systems
// about confirmed swaps. Publishing is best-effort: a confirmed swap
// stays confirmed even when the notifier fails.
type DownstreamNotifier interface {
	SwapConfirmed(ctx context.Context, event SwapConfirmedEvent) error
}
