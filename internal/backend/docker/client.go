// Package docker adapts the Docker engine API to the narrow list/delete/prune
// surface the cleanup engine consumes.
package docker

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/client"

	"github.com/bnema/shipshape/internal/backend"
	"github.com/bnema/shipshape/pkg/logger"
)

// Client wraps the Docker SDK client. All operations are best-effort from
// the caller's perspective; errors are returned for the engine to log and
// discard.
type Client struct {
	cli *client.Client
}

// NewClient connects to the engine using the standard environment (DOCKER_HOST
// et al.) with API version negotiation, and pings it once. An unreachable
// daemon surfaces as backend.ErrUnavailable so the docker-backed categories
// skip silently instead of failing the run.
func NewClient(ctx context.Context) (*Client, error) {
	cli, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing Docker client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := cli.Ping(pingCtx); err != nil {
		logger.Debug("Docker daemon not reachable", "error", err)
		_ = cli.Close()
		return nil, backend.ErrUnavailable
	}

	logger.Debug("Docker client initialized")
	return &Client{cli: cli}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.cli.Close()
}
