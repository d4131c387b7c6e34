// Package buildx drives buildx builders through the docker CLI. Builders
// have no engine-API surface, so this adapter shells out, which is also the
// transport the cleanup contract fixes for them.
package buildx

import (
	"context"
	"os/exec"
	"strings"

	"github.com/bnema/shipshape/internal/backend"
	"github.com/bnema/shipshape/internal/policy"
	"github.com/bnema/shipshape/pkg/logger"
)

// Buildx wraps docker buildx subcommands.
type Buildx struct {
	dockerPath string
}

// New locates the docker CLI. A missing binary surfaces as
// backend.ErrUnavailable so the builders category skips silently.
func New() (*Buildx, error) {
	path, err := exec.LookPath("docker")
	if err != nil {
		return nil, backend.ErrUnavailable
	}
	return &Buildx{dockerPath: path}, nil
}

// ListBuilders returns the configured builders. Instance lines (indented
// node rows) and the header are skipped; the active-builder marker is
// stripped.
func (b *Buildx) ListBuilders(ctx context.Context) ([]policy.Resource, error) {
	out, err := exec.CommandContext(ctx, b.dockerPath, "buildx", "ls").Output()
	if err != nil {
		return nil, backend.ErrUnavailable
	}

	var resources []policy.Resource
	for i, line := range strings.Split(string(out), "\n") {
		if i == 0 || line == "" || strings.HasPrefix(line, " ") {
			continue
		}
		name := strings.TrimSuffix(strings.Fields(line)[0], "*")
		if name == "" {
			continue
		}
		resources = append(resources, policy.Resource{
			ID:   name,
			Name: name,
			Kind: policy.KindBuilder,
		})
	}
	return resources, nil
}

// PruneCache clears a builder's cache and returns the bytes buildx reports
// reclaimed. The builder is activated implicitly via --builder.
func (b *Buildx) PruneCache(ctx context.Context, name string) (uint64, error) {
	out, err := exec.CommandContext(ctx, b.dockerPath, "buildx", "prune", "--builder", name, "--force").Output()
	if err != nil {
		return 0, err
	}

	// The last output line is "Total: <size>".
	for _, line := range strings.Split(string(out), "\n") {
		if rest, ok := strings.CutPrefix(line, "Total:"); ok {
			return backend.ParseSize(rest), nil
		}
	}
	return 0, nil
}

// RemoveBuilder deletes a builder object.
func (b *Buildx) RemoveBuilder(ctx context.Context, name string) error {
	return exec.CommandContext(ctx, b.dockerPath, "buildx", "rm", name).Run()
}

// BuildCacheEntryCount reports how many build cache entries exist, from the
// Build Cache row of docker system df. Missing or malformed output counts as
// zero.
func (b *Buildx) BuildCacheEntryCount(ctx context.Context) int {
	out, err := exec.CommandContext(ctx, b.dockerPath, "system", "df",
		"--format", "{{.Type}}\t{{.TotalCount}}").Output()
	if err != nil {
		logger.Debug("Failed to query build cache count", "error", err)
		return 0
	}
	for _, line := range strings.Split(string(out), "\n") {
		if rest, ok := strings.CutPrefix(line, "Build Cache\t"); ok {
			return backend.ParseCount(rest)
		}
	}
	return 0
}
