package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fomo-ops/fomobot/internal/application"
	"github.com/fomo-ops/fomobot/internal/interfaces/rest"
)

// swapCallbackID matches the callback_id set in the swap modal
// template, like the block ids below.
const swapCallbackID = "swap_request"

// interactionPayload is the slice of the interactivity payload we act
// on. State values are keyed [block_id][action_id], matching the ids
// in the swap modal template.
type interactionPayload struct {
	Type string `json:"type"`
	User struct {
		ID string `json:"id"`
	} `json:"user"`
	View struct {
		CallbackID      string `json:"callback_id"`
		PrivateMetadata string `json:"private_metadata"`
		State           struct {
			Values map[string]map[string]blockValue `json:"values"`
		} `json:"state"`
	} `json:"view"`
}

type blockValue struct {
	SelectedDate   string `json:"selected_date"`
	SelectedOption struct {
		Value string `json:"value"`
	} `json:"selected_option"`
}

func (p interactionPayload) selectedDate(blockID string) string {
	return p.View.State.Values[blockID][blockID].SelectedDate
}

func (p interactionPayload) selectedTime(blockID string) string {
	return p.View.State.Values[blockID][blockID].SelectedOption.Value
}

// Interactive handles interactivity callbacks. Only view submissions
// matter here; an empty 200 tells the platform to close the dialog.
func (h *Handlers) Interactive(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		rest.WriteText(w, http.StatusBadRequest, "bad request")
		return
	}

	var payload interactionPayload
	if err := json.Unmarshal([]byte(r.PostForm.Get("payload")), &payload); err != nil {
		h.logger.Warn("unparseable interaction payload", "error", err)
		rest.WriteText(w, http.StatusBadRequest, "bad request")
		return
	}

	if payload.Type != "view_submission" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if payload.View.CallbackID != swapCallbackID {
		h.logger.Debug("ignoring view submission", "callback_id", payload.View.CallbackID)
		w.WriteHeader(http.StatusOK)
		return
	}

	event := application.ViewSubmissionEvent{
		Channel:   payload.View.PrivateMetadata,
		User:      payload.User.ID,
		StartDate: payload.selectedDate("start_date"),
		StartTime: payload.selectedTime("start_time"),
		EndDate:   payload.selectedDate("end_date"),
		EndTime:   payload.selectedTime("end_time"),
	}

	h.enqueue("view_submission", func(ctx context.Context) {
		h.dispatcher.HandleViewSubmission(ctx, event)
	})

	w.WriteHeader(http.StatusOK)
}
