package application

import "time"

// Inbound events, already reduced to the fields the bot acts on. The
// HTTP layer parses platform payloads into these; nothing below it
// sees raw webhook JSON.

// ReactionAddedEvent reports an emoji reaction placed on a message.
type ReactionAddedEvent struct {
	// ItemAuthor is the author of the message that was reacted to,
	// not the reacting user.
	ItemAuthor string
	Reaction   string
	ItemType   string
	Channel    string
	Ref        MessageRef
	// User is the person who added the reaction.
	User string
}

// MemberJoinedEvent reports a user joining a channel the bot is in.
type MemberJoinedEvent struct {
	Member  string
	Channel string
}

// ViewSubmissionEvent reports a submitted swap-request modal, with the
// window fields exactly as the user picked them.
type ViewSubmissionEvent struct {
	Channel   string
	User      string
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
}

// SwapConfirmedEvent is the machine-readable record published to
// downstream systems when a swap resolves. EventID is unique per
// confirmation so consumers can deduplicate redeliveries.
type SwapConfirmedEvent struct {
	EventID     string    `json:"event_id"`
	Channel     string    `json:"channel"`
	Requestor   string    `json:"requestor"`
	TakingUser  string    `json:"taking_user"`
	StartDate   string    `json:"start_date"`
	StartTime   string    `json:"start_time"`
	EndDate     string    `json:"end_date"`
	EndTime     string    `json:"end_time"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}
