package services

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/fomo-ops/fomobot/internal/domain"
)

// Two or more acceptances racing on the same request must produce
// exactly one confirmation pair. Deleting the request message is the
// commit point, and only one delete can succeed.
func TestSwapService_ConcurrentAcceptances(t *testing.T) {
	store := NewMockMessageStore()
	notifier := NewMockNotifier()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service := NewSwapService(store, notifier, "+1", logger)

	ctx := context.Background()
	err := service.CreateRequest(ctx, "C1", "U1", domain.Window{
		StartDate: "2024-01-01", StartTime: "09:00",
		EndDate: "2024-01-02", EndTime: "09:00",
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	ref := store.Posted()[0].Ref

	takers := []string{"U2", "U3", "U4", "U5", "U6"}

	type result struct {
		outcome ResolveOutcome
		err     error
	}
	results := make(chan result, len(takers))

	var wg sync.WaitGroup
	for _, taker := range takers {
		wg.Add(1)
		go func(taker string) {
			defer wg.Done()
			outcome, err := service.AttemptResolve(ctx, "C1", ref, taker)
			results <- result{outcome, err}
		}(taker)
	}
	wg.Wait()
	close(results)

	var resolved, gone int
	for res := range results {
		if res.err != nil {
			t.Errorf("unexpected error: %v", res.err)
		}
		switch res.outcome {
		case OutcomeResolved:
			resolved++
		case OutcomeGone:
			gone++
		default:
			t.Errorf("unexpected outcome: %v", res.outcome)
		}
	}

	if resolved != 1 {
		t.Errorf("expected exactly 1 winning acceptance, got %d", resolved)
	}
	if gone != len(takers)-1 {
		t.Errorf("expected %d losing acceptances, got %d", len(takers)-1, gone)
	}

	// Request post plus exactly one coordination/confirmation pair.
	if got := len(store.Posted()); got != 3 {
		t.Errorf("expected 3 posted messages, got %d", got)
	}
	if got := len(notifier.Events()); got != 1 {
		t.Errorf("expected exactly 1 downstream event, got %d", got)
	}
	if store.Contains("C1", ref) {
		t.Error("request message should be deleted")
	}
}
