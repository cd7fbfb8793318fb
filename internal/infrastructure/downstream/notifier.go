// Package downstream publishes confirmed swaps to the team's event bus
// so schedule automation (calendar sync, paging rotation) can react
// without polling chat history.
package downstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fomo-ops/fomobot/internal/application"
	"github.com/fomo-ops/fomobot/internal/config"
	"github.com/nats-io/nats.go"
)

const streamName = "ONCALL"

// Notifier publishes swap confirmations to a JetStream subject.
type Notifier struct {
	conn    *nats.Conn
	js      nats.JetStreamContext
	subject string
	logger  *slog.Logger
}

// Connect dials the event bus and makes sure the on-call stream
// exists. It keeps retrying until cfg.ConnectTimeout so the bot can
// come up before the bus does during deploys.
func Connect(cfg config.DownstreamConfig, logger *slog.Logger) (*Notifier, error) {
	deadline := time.Now().Add(cfg.ConnectTimeout)
	var lastErr error

	for time.Now().Before(deadline) {
		notifier, err := connect(cfg, logger)
		if err == nil {
			return notifier, nil
		}
		lastErr = err
		time.Sleep(500 * time.Millisecond)
	}

	return nil, fmt.Errorf("connect to event bus timed out after %s: %w", cfg.ConnectTimeout, lastErr)
}

func connect(cfg config.DownstreamConfig, logger *slog.Logger) (*Notifier, error) {
	conn, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, err
	}

	js, err := conn.JetStream()
	if err != nil {
		_ = conn.Drain()
		conn.Close()
		return nil, err
	}

	if err := ensureStream(js); err != nil {
		_ = conn.Drain()
		conn.Close()
		return nil, err
	}

	return &Notifier{
		conn:    conn,
		js:      js,
		subject: cfg.Subject,
		logger:  logger,
	}, nil
}

func ensureStream(js nats.JetStreamContext) error {
	_, err := js.StreamInfo(streamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return err
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:      streamName,
		Subjects:  []string{"oncall.>"},
		Retention: nats.LimitsPolicy,
		Storage:   nats.FileStorage,
		Replicas:  1,
	})
	return err
}

// SwapConfirmed publishes the confirmation event. The broker acks the
// publish, so a nil return means the event is durably stored.
func (n *Notifier) SwapConfirmed(ctx context.Context, event application.SwapConfirmedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal swap confirmation: %w", err)
	}

	if _, err := n.js.Publish(n.subject, payload, nats.Context(ctx)); err != nil {
		return fmt.Errorf("publish swap confirmation: %w", err)
	}

	n.logger.Debug("published swap confirmation",
		"subject", n.subject,
		"event_id", event.EventID)

	return nil
}

// Ready reports whether the bus connection is up. Wired into the
// readiness probe.
func (n *Notifier) Ready(_ context.Context) error {
	if n.conn == nil || n.conn.Status() != nats.CONNECTED {
		return errors.New("event bus connection down")
	}
	return nil
}

func (n *Notifier) Close() {
	if n == nil || n.conn == nil {
		return
	}
	_ = n.conn.Drain()
	n.conn.Close()
}
