package testhelpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type TestBus struct {
	Container testcontainers.Container
	URL       string
}

// SetupTestBus starts a throwaway NATS server with JetStream enabled.
func SetupTestBus(t *testing.T) *TestBus {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "nats:2.10-alpine",
		ExposedPorts: []string{"4222/tcp"},
		Cmd:          []string{"-js"},
		WaitingFor: wait.ForLog("Server is ready").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "4222")
	require.NoError(t, err)

	return &TestBus{
		Container: container,
		URL:       fmt.Sprintf("nats://%s:%d", host, port.Int()),
	}
}

func (tb *TestBus) Cleanup(t *testing.T) {
	require.NoError(t, tb.Container.Terminate(context.Background()))
}
