package services

import (
	"context"
	"fmt"

	"github.com/fomo-ops/fomobot/internal/domain"
)

// CreateRequest opens a swap request: it encodes the window into a
// token and posts the request message that carries it. The posted
// message is the request's only record; nothing is written anywhere
// else.
func (s *SwapService) CreateRequest(ctx context.Context, channel, requestor string, window domain.Window) error {
	request, err := domain.NewSwapRequest(requestor, window)
	if err != nil {
		return fmt.Errorf("create swap request: %w", err)
	}

	token, err := domain.EncodeToken(request)
	if err != nil {
		return fmt.Errorf("create swap request: %w", err)
	}

	ref, err := s.store.PostMessage(ctx, channel, requestMessage(request, s.acceptReaction, token))
	if err != nil {
		return fmt.Errorf("post swap request: %w", err)
	}

	s.logger.Info("swap request posted",
		"channel", channel,
		"ref", ref,
		"requestor", requestor,
	)
	return nil
}
