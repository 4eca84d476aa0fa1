//go:build integration

package integration_test

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

// startKafka launches a single-node Kafka broker in a container and returns
// its bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// stubSolverOutput is a canned two-cell 1D supercritical MacDonald solution,
// matching the case 1/2/1/2 with 2 cells.
const stubSolverOutput = `# Generated by SWASHES version 1.03.00, 2016-01-29
# Dimension: 1
# Type: 2
# Domain: 1
# Choice: 2
# Length of the domain: 1000 meters
# Space step: 500 meters
# Number of cells: 2
#
#(i-0.5)*dx	h[i]	u[i]	q[i]
250	0.770195	2.59675	2
750	0.937035	2.13439	2
`

// writeStubSolver creates a shell script standing in for the SWASHES binary
// that always plays the canned output.
func writeStubSolver(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub binary requires a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "swashes")
	script := fmt.Sprintf("#!/bin/sh\ncat <<'EOF'\n%sEOF\n", stubSolverOutput)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}
