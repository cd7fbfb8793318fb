package handlers

import (
	"net/http"
	"strings"

	"github.com/fomo-ops/fomobot/internal/application/services"
	"github.com/fomo-ops/fomobot/internal/interfaces/rest"
)

const dialogFailedText = "Sorry, I could not open the swap dialog. Try again in a moment."

// SlashCommand answers /fomo. "swap" opens the request dialog,
// "calendar" is a stub, anything else gets the help text. Replies are
// plain text, which the platform shows only to the caller.
func (h *Handlers) SlashCommand(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		rest.WriteText(w, http.StatusBadRequest, "bad request")
		return
	}

	text := r.PostForm.Get("text")
	channel := r.PostForm.Get("channel_id")
	triggerID := r.PostForm.Get("trigger_id")

	switch {
	case strings.Contains(text, "swap"):
		view, err := h.modals.Build(channel)
		if err != nil {
			h.logger.Error("failed to build swap dialog", "error", err)
			rest.WriteText(w, http.StatusOK, dialogFailedText)
			return
		}

		if err := h.opener.OpenView(r.Context(), triggerID, view); err != nil {
			h.logger.Error("failed to open swap dialog", "error", err, "channel", channel)
			rest.WriteText(w, http.StatusOK, dialogFailedText)
			return
		}

		w.WriteHeader(http.StatusOK)

	case strings.Contains(text, "calendar"):
		rest.WriteText(w, http.StatusOK, "this is the calendar")

	default:
		rest.WriteText(w, http.StatusOK, services.HelpText)
	}
}
