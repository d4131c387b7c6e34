// Package minikube adapts the minikube CLI as a cluster-profile backend.
package minikube

import (
	"context"
	"encoding/json"
	"os/exec"

	"github.com/bnema/shipshape/internal/backend"
	"github.com/bnema/shipshape/internal/policy"
	"github.com/bnema/shipshape/pkg/logger"
)

// Minikube shells out to the minikube binary.
type Minikube struct {
	path string
}

// New locates the minikube CLI. Absence is backend.ErrUnavailable, which the
// engine treats as "skip this category silently".
func New() (*Minikube, error) {
	path, err := exec.LookPath("minikube")
	if err != nil {
		return nil, backend.ErrUnavailable
	}
	return &Minikube{path: path}, nil
}

// profileList mirrors the JSON shape of `minikube profile list -o json`.
type profileList struct {
	Valid []struct {
		Name string `json:"Name"`
	} `json:"valid"`
	Invalid []struct {
		Name string `json:"Name"`
	} `json:"invalid"`
}

// ListProfiles returns every profile, valid or invalid, as a policy
// resource. Profiles expose no creation time, so they are never
// age-filtered. Unparseable output is treated as "no profiles".
func (m *Minikube) ListProfiles(ctx context.Context) ([]policy.Resource, error) {
	out, err := exec.CommandContext(ctx, m.path, "profile", "list", "-o", "json").Output()
	if err != nil {
		// minikube exits non-zero when no profiles exist at all.
		logger.Debug("minikube profile list failed", "error", err)
		return nil, nil
	}

	var list profileList
	if err := json.Unmarshal(out, &list); err != nil {
		logger.Debug("Unparseable minikube profile list output", "error", err)
		return nil, nil
	}

	var resources []policy.Resource
	for _, p := range append(list.Valid, list.Invalid...) {
		if p.Name == "" {
			continue
		}
		resources = append(resources, policy.Resource{
			ID:   p.Name,
			Name: p.Name,
			Kind: policy.KindClusterProfile,
		})
	}
	return resources, nil
}

// DeleteProfile deletes a profile and its cluster.
func (m *Minikube) DeleteProfile(ctx context.Context, name string) error {
	return exec.CommandContext(ctx, m.path, "delete", "-p", name).Run()
}
