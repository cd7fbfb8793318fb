package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fomo-ops/fomobot/internal/application"
	"github.com/fomo-ops/fomobot/internal/interfaces/rest"
)

type eventEnvelope struct {
	Type      string          `json:"type"`
	Challenge string          `json:"challenge"`
	Event     json.RawMessage `json:"event"`
}

type innerEvent struct {
	Type     string `json:"type"`
	User     string `json:"user"`
	Reaction string `json:"reaction"`
	ItemUser string `json:"item_user"`
	Channel  string `json:"channel"`
	Item     struct {
		Type    string `json:"type"`
		Channel string `json:"channel"`
		TS      string `json:"ts"`
	} `json:"item"`
}

// Events handles the events callback. The platform redelivers on slow
// acks, so callbacks are queued and the response goes out immediately.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	var envelope eventEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		rest.WriteText(w, http.StatusBadRequest, "bad request")
		return
	}

	switch envelope.Type {
	case "url_verification":
		rest.WriteJSON(w, http.StatusOK, map[string]string{"challenge": envelope.Challenge})

	case "event_callback":
		h.routeEventCallback(envelope.Event)
		w.WriteHeader(http.StatusOK)

	default:
		h.logger.Debug("ignoring event envelope", "type", envelope.Type)
		w.WriteHeader(http.StatusOK)
	}
}

func (h *Handlers) routeEventCallback(raw json.RawMessage) {
	var event innerEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		h.logger.Warn("unparseable event callback", "error", err)
		return
	}

	switch event.Type {
	case "reaction_added":
		added := application.ReactionAddedEvent{
			ItemAuthor: event.ItemUser,
			Reaction:   event.Reaction,
			ItemType:   event.Item.Type,
			Channel:    event.Item.Channel,
			Ref:        application.MessageRef(event.Item.TS),
			User:       event.User,
		}
		h.enqueue("reaction_added", func(ctx context.Context) {
			h.dispatcher.HandleReactionAdded(ctx, added)
		})

	case "member_joined_channel":
		joined := application.MemberJoinedEvent{
			Member:  event.User,
			Channel: event.Channel,
		}
		h.enqueue("member_joined_channel", func(ctx context.Context) {
			h.dispatcher.HandleMemberJoined(ctx, joined)
		})

	default:
		h.logger.Debug("ignoring event", "type", event.Type)
	}
}
