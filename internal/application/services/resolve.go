package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fomo-ops/fomobot/internal/application"
	"github.com/fomo-ops/fomobot/internal/domain"
)

// ResolveOutcome reports what AttemptResolve did with an acceptance.
type ResolveOutcome int

const (
	// OutcomeNotApplicable means the message was not an open swap
	// request. Nothing was written.
	OutcomeNotApplicable ResolveOutcome = iota
	// OutcomeGone means the message no longer exists: the request was
	// already resolved, usually by a racing acceptance. Nothing was
	// written.
	OutcomeGone
	// OutcomeResolved means this call won the request: the message was
	// deleted and the confirmations were sent.
	OutcomeResolved
)

func (o ResolveOutcome) String() string {
	switch o {
	case OutcomeNotApplicable:
		return "not_applicable"
	case OutcomeGone:
		return "gone"
	case OutcomeResolved:
		return "resolved"
	default:
		return fmt.Sprintf("ResolveOutcome(%d)", int(o))
	}
}

// AttemptResolve tries to resolve the swap request carried by the
// message at ref, with takingUser as the accepting user.
//
// Deleting the request message is the commit point. Two racing
// acceptances may both fetch and decode the same message, but only one
// delete can succeed; the loser sees the message gone and walks away
// without posting anything. Everything after the delete is best-effort
// and cannot un-resolve the request.
func (s *SwapService) AttemptResolve(ctx context.Context, channel string, ref application.MessageRef, takingUser string) (ResolveOutcome, error) {
	body, err := s.store.FetchMessage(ctx, channel, ref)
	if errors.Is(err, application.ErrMessageNotFound) {
		return OutcomeGone, nil
	}
	if err != nil {
		return OutcomeNotApplicable, fmt.Errorf("fetch message %s: %w", ref, err)
	}

	token, ok := domain.ExtractToken(body)
	if !ok {
		return OutcomeNotApplicable, nil
	}

	request, err := domain.DecodeToken(token)
	if err != nil {
		return OutcomeNotApplicable, fmt.Errorf("message %s: %w", ref, err)
	}

	confirmation, err := request.Confirm(takingUser)
	if err != nil {
		return OutcomeNotApplicable, fmt.Errorf("confirm request %s: %w", ref, err)
	}

	err = s.store.DeleteMessage(ctx, channel, ref)
	if errors.Is(err, application.ErrMessageNotFound) {
		s.logger.Info("request already resolved",
			"channel", channel,
			"ref", ref,
			"taking_user", takingUser,
		)
		return OutcomeGone, nil
	}
	if err != nil {
		return OutcomeNotApplicable, fmt.Errorf("delete request message %s: %w", ref, err)
	}

	// The request is resolved from here on. Failures below are
	// reported to the caller but the outcome stays resolved.
	var errs []error
	if _, err := s.store.PostMessage(ctx, channel, coordinationMessage(confirmation)); err != nil {
		errs = append(errs, fmt.Errorf("post coordination message: %w", err))
	}
	if _, err := s.store.PostMessage(ctx, channel, confirmationMessage(confirmation)); err != nil {
		errs = append(errs, fmt.Errorf("post confirmation message: %w", err))
	}
	if err := s.notifier.SwapConfirmed(ctx, s.confirmedEvent(channel, confirmation)); err != nil {
		errs = append(errs, fmt.Errorf("notify downstream: %w", err))
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		s.logger.Error("swap resolved but follow-up incomplete",
			"channel", channel,
			"ref", ref,
			"error", err,
		)
		return OutcomeResolved, err
	}

	s.logger.Info("swap resolved",
		"channel", channel,
		"ref", ref,
		"requestor", confirmation.Request.Requestor,
		"taking_user", takingUser,
	)
	return OutcomeResolved, nil
}

func (s *SwapService) confirmedEvent(channel string, c domain.SwapConfirmation) application.SwapConfirmedEvent {
	return application.SwapConfirmedEvent{
		EventID:     s.newEventID(),
		Channel:     channel,
		Requestor:   c.Request.Requestor,
		TakingUser:  c.TakingUser,
		StartDate:   c.Request.Window.StartDate,
		StartTime:   c.Request.Window.StartTime,
		EndDate:     c.Request.Window.EndDate,
		EndTime:     c.Request.Window.EndTime,
		ConfirmedAt: s.now(),
	}
}
