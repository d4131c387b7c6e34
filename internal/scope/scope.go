// Package scope derives extra exclusions from the current working directory:
// when the user asks to protect the project they are standing in, every
// compose container labeled with the directory's project name is shielded,
// along with its image and its volume mounts.
package scope

import (
	"context"
	"path/filepath"

	"github.com/bnema/shipshape/internal/backend/docker"
	"github.com/bnema/shipshape/pkg/logger"
)

// Backend is the slice of the container backend the resolver needs.
type Backend interface {
	ContainersForProject(ctx context.Context, project string) ([]docker.ProjectContainer, error)
}

// Exclusions is what the resolver feeds into the per-kind exclusion sets.
type Exclusions struct {
	Containers []string
	Images     []string
	Volumes    []string
}

// Resolve queries the backend for containers belonging to the compose
// project named after dir's base name. Any failure yields fewer exclusions,
// never an aborted run.
func Resolve(ctx context.Context, b Backend, dir string) Exclusions {
	var out Exclusions
	if b == nil || dir == "" {
		return out
	}

	project := filepath.Base(dir)
	containers, err := b.ContainersForProject(ctx, project)
	if err != nil {
		logger.Debug("Project scope resolution failed", "project", project, "error", err)
		return out
	}

	for _, c := range containers {
		if c.ID != "" {
			out.Containers = append(out.Containers, c.ID)
		}
		if c.Name != "" {
			out.Containers = append(out.Containers, c.Name)
		}
		if c.Image != "" {
			out.Images = append(out.Images, c.Image)
		}
		out.Volumes = append(out.Volumes, c.Volumes...)
	}

	if len(containers) > 0 {
		logger.Debug("Protecting current project",
			"project", project,
			"containers", len(containers))
	}
	return out
}
