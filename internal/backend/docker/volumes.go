package docker

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/api/types/volume"

	"github.com/bnema/shipshape/internal/policy"
)

// ListVolumes lists named volumes as policy resources. CreatedAt is parsed
// when the backend provides it; constrained backends that omit it leave the
// zero value, which the age policy treats as always eligible.
func (c *Client) ListVolumes(ctx context.Context) ([]policy.Resource, error) {
	resp, err := c.cli.VolumeList(ctx, volume.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("error listing volumes: %w", err)
	}

	resources := make([]policy.Resource, 0, len(resp.Volumes))
	for _, vol := range resp.Volumes {
		var createdAt time.Time
		if vol.CreatedAt != "" {
			if t, err := time.Parse(time.RFC3339, vol.CreatedAt); err == nil {
				createdAt = t
			}
		}
		resources = append(resources, policy.Resource{
			ID:        vol.Name,
			Name:      vol.Name,
			CreatedAt: createdAt,
			Kind:      policy.KindVolume,
		})
	}
	return resources, nil
}

// RemoveVolume force-removes a volume.
func (c *Client) RemoveVolume(ctx context.Context, name string) error {
	return c.cli.VolumeRemove(ctx, name, true)
}
