// Package kind adapts the kind CLI as a cluster backend.
package kind

import (
	"context"
	"os/exec"
	"strings"

	"github.com/bnema/shipshape/internal/backend"
	"github.com/bnema/shipshape/internal/policy"
)

// Kind shells out to the kind binary.
type Kind struct {
	path string
}

// New locates the kind CLI. Absence is backend.ErrUnavailable.
func New() (*Kind, error) {
	path, err := exec.LookPath("kind")
	if err != nil {
		return nil, backend.ErrUnavailable
	}
	return &Kind{path: path}, nil
}

// ListClusters returns the kind clusters, one name per output line. Clusters
// expose no creation time, so they are never age-filtered.
func (k *Kind) ListClusters(ctx context.Context) ([]policy.Resource, error) {
	out, err := exec.CommandContext(ctx, k.path, "get", "clusters").Output()
	if err != nil {
		return nil, backend.ErrUnavailable
	}

	var resources []policy.Resource
	for _, line := range strings.Split(string(out), "\n") {
		name := strings.TrimSpace(line)
		// kind prints a notice line instead of names when nothing exists.
		if name == "" || strings.Contains(name, " ") {
			continue
		}
		resources = append(resources, policy.Resource{
			ID:   name,
			Name: name,
			Kind: policy.KindClusterProfile,
		})
	}
	return resources, nil
}

// DeleteCluster deletes one kind cluster.
func (k *Kind) DeleteCluster(ctx context.Context, name string) error {
	return exec.CommandContext(ctx, k.path, "delete", "cluster", "--name", name).Run()
}
