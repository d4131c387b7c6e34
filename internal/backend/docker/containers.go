package docker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/mount"

	"github.com/bnema/shipshape/internal/policy"
)

// composeProjectLabel is the label compose stamps on every container it
// manages.
const composeProjectLabel = "com.docker.compose.project"

// ListContainers lists all containers, running or not, as policy resources.
func (c *Client) ListContainers(ctx context.Context) ([]policy.Resource, error) {
	containers, err := c.cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("error listing containers: %w", err)
	}

	resources := make([]policy.Resource, 0, len(containers))
	for _, ctr := range containers {
		resources = append(resources, policy.Resource{
			ID:        ctr.ID,
			Name:      containerName(ctr.Names),
			CreatedAt: time.Unix(ctr.Created, 0),
			Kind:      policy.KindContainer,
		})
	}
	return resources, nil
}

// RemoveContainer force-removes a container.
func (c *Client) RemoveContainer(ctx context.Context, id string) error {
	return c.cli.ContainerRemove(ctx, id, container.RemoveOptions{Force: true})
}

// ProjectContainer is the slice of container metadata the project-scope
// resolver needs to derive exclusions.
type ProjectContainer struct {
	ID      string
	Name    string
	Image   string
	Volumes []string
}

// ContainersForProject returns the containers labeled with the given compose
// project, with their image reference and volume mounts resolved. Per-item
// inspect failures drop the detail for that item, never the whole query.
func (c *Client) ContainersForProject(ctx context.Context, project string) ([]ProjectContainer, error) {
	f := filters.NewArgs()
	f.Add("label", composeProjectLabel+"="+project)

	containers, err := c.cli.ContainerList(ctx, container.ListOptions{All: true, Filters: f})
	if err != nil {
		return nil, fmt.Errorf("error listing project containers: %w", err)
	}

	out := make([]ProjectContainer, 0, len(containers))
	for _, ctr := range containers {
		pc := ProjectContainer{
			ID:    ctr.ID,
			Name:  containerName(ctr.Names),
			Image: ctr.Image,
		}
		if info, err := c.cli.ContainerInspect(ctx, ctr.ID); err == nil {
			if info.Config != nil && info.Config.Image != "" {
				pc.Image = info.Config.Image
			}
			for _, m := range info.Mounts {
				if m.Type == mount.TypeVolume && m.Name != "" {
					pc.Volumes = append(pc.Volumes, m.Name)
				}
			}
		}
		out = append(out, pc)
	}
	return out, nil
}

// Container names in the engine API carry a leading slash.
func containerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}
