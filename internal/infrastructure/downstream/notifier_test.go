package downstream_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/fomo-ops/fomobot/internal/application"
	"github.com/fomo-ops/fomobot/internal/config"
	"github.com/fomo-ops/fomobot/internal/infrastructure/downstream"
	"github.com/fomo-ops/fomobot/internal/infrastructure/downstream/testhelpers"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func sampleEvent() application.SwapConfirmedEvent {
	return application.SwapConfirmedEvent{
		EventID:     "EVT1",
		Channel:     "C1",
		Requestor:   "U1",
		TakingUser:  "U2",
		StartDate:   "2024-01-01",
		StartTime:   "09:00",
		EndDate:     "2024-01-02",
		EndTime:     "09:00",
		ConfirmedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNoopNotifier_SwapConfirmed(t *testing.T) {
	notifier := downstream.NewNoopNotifier(testLogger())

	err := notifier.SwapConfirmed(context.Background(), sampleEvent())

	assert.NoError(t, err)
}

func TestNotifier_PublishesConfirmation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	bus := testhelpers.SetupTestBus(t)
	defer bus.Cleanup(t)

	cfg := config.DownstreamConfig{
		NATSURL:        bus.URL,
		Subject:        "oncall.swap.confirmed",
		ConnectTimeout: 20 * time.Second,
	}

	notifier, err := downstream.Connect(cfg, testLogger())
	require.NoError(t, err)
	defer notifier.Close()

	err = notifier.SwapConfirmed(context.Background(), sampleEvent())
	require.NoError(t, err)

	// Read the event back off the stream to prove it was stored.
	conn, err := nats.Connect(bus.URL)
	require.NoError(t, err)
	defer conn.Close()

	js, err := conn.JetStream()
	require.NoError(t, err)

	sub, err := js.SubscribeSync("oncall.swap.confirmed")
	require.NoError(t, err)
	defer sub.Unsubscribe()

	msg, err := sub.NextMsg(5 * time.Second)
	require.NoError(t, err)

	var got application.SwapConfirmedEvent
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, sampleEvent(), got)
}

func TestConnect_TimesOutWhenBusUnreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	cfg := config.DownstreamConfig{
		NATSURL:        "nats://127.0.0.1:1",
		Subject:        "oncall.swap.confirmed",
		ConnectTimeout: 2 * time.Second,
	}

	_, err := downstream.Connect(cfg, testLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}
