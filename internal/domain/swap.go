// Package domain encodes an on-call swap request and the token format
// that carries it inside a chat message.
package domain

import (
	"errors"
)

// Window is the coverage period being handed off. Dates and times are
// the opaque strings collected from the requesting user; the bot never
// interprets them.
type Window struct {
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
}

// SwapRequest is a pending ask for on-call coverage. It lives entirely
// inside the token attached to a posted chat message; the bot keeps no
// other record of it. The message existing means the request is open,
// the message being deleted means it was resolved.
type SwapRequest struct {
	Requestor string
	Window    Window
}

func NewSwapRequest(requestor string, window Window) (SwapRequest, error) {
	if requestor == "" {
		return SwapRequest{}, errors.New("requestor is required")
	}
	if window.StartDate == "" || window.StartTime == "" {
		return SwapRequest{}, errors.New("window start is required")
	}
	if window.EndDate == "" || window.EndTime == "" {
		return SwapRequest{}, errors.New("window end is required")
	}
	return SwapRequest{Requestor: requestor, Window: window}, nil
}

// SwapConfirmation pairs a resolved request with the user who took it.
// It exists only long enough to compose the confirmation messages and
// the downstream event; it is never stored.
type SwapConfirmation struct {
	Request    SwapRequest
	TakingUser string
}

// Confirm is the one lifecycle transition a request can make.
func (r SwapRequest) Confirm(takingUser string) (SwapConfirmation, error) {
	if takingUser == "" {
		return SwapConfirmation{}, errors.New("taking user is required")
	}
	return SwapConfirmation{Request: r, TakingUser: takingUser}, nil
}
