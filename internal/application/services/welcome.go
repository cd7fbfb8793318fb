package services

import (
	"context"
	"fmt"
)

// WelcomeMember greets a user who joined the channel and shows them the
// help text. No lifecycle state is involved.
func (s *SwapService) WelcomeMember(ctx context.Context, channel, member string) error {
	if _, err := s.store.PostMessage(ctx, channel, welcomeMessage(member)); err != nil {
		return fmt.Errorf("post welcome message: %w", err)
	}

	s.logger.Info("welcomed new member", "channel", channel, "member", member)
	return nil
}
