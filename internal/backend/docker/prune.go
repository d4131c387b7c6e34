package docker

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/volume"
)

// The dangling/unused cleanup is a bulk prune per sub-kind, not a per-item
// loop: counts are taken by listing the matching resources before issuing
// the prune, and exclusion sets do not apply at all.

// CountDanglingImages counts untagged images.
func (c *Client) CountDanglingImages(ctx context.Context) (int, error) {
	f := filters.NewArgs()
	f.Add("dangling", "true")
	images, err := c.cli.ImageList(ctx, image.ListOptions{Filters: f})
	if err != nil {
		return 0, fmt.Errorf("error counting dangling images: %w", err)
	}
	return len(images), nil
}

// CountStoppedContainers counts exited containers.
func (c *Client) CountStoppedContainers(ctx context.Context) (int, error) {
	f := filters.NewArgs()
	f.Add("status", "exited")
	containers, err := c.cli.ContainerList(ctx, container.ListOptions{All: true, Filters: f})
	if err != nil {
		return 0, fmt.Errorf("error counting stopped containers: %w", err)
	}
	return len(containers), nil
}

// CountUnusedVolumes counts volumes no container references.
func (c *Client) CountUnusedVolumes(ctx context.Context) (int, error) {
	f := filters.NewArgs()
	f.Add("dangling", "true")
	resp, err := c.cli.VolumeList(ctx, volume.ListOptions{Filters: f})
	if err != nil {
		return 0, fmt.Errorf("error counting unused volumes: %w", err)
	}
	return len(resp.Volumes), nil
}

// PruneDanglingImages removes untagged images and returns reclaimed bytes.
func (c *Client) PruneDanglingImages(ctx context.Context) (uint64, error) {
	f := filters.NewArgs()
	f.Add("dangling", "true")
	report, err := c.cli.ImagesPrune(ctx, f)
	if err != nil {
		return 0, err
	}
	return report.SpaceReclaimed, nil
}

// PruneStoppedContainers removes stopped containers and returns reclaimed
// bytes.
func (c *Client) PruneStoppedContainers(ctx context.Context) (uint64, error) {
	report, err := c.cli.ContainersPrune(ctx, filters.NewArgs())
	if err != nil {
		return 0, err
	}
	return report.SpaceReclaimed, nil
}

// PruneUnusedVolumes removes unreferenced volumes and returns reclaimed
// bytes.
func (c *Client) PruneUnusedVolumes(ctx context.Context) (uint64, error) {
	report, err := c.cli.VolumesPrune(ctx, filters.NewArgs())
	if err != nil {
		return 0, err
	}
	return report.SpaceReclaimed, nil
}

// PruneUnusedNetworks removes unused networks. Networks have no pre-count
// query; the prune report itself says how many went away.
func (c *Client) PruneUnusedNetworks(ctx context.Context) (int, error) {
	report, err := c.cli.NetworksPrune(ctx, filters.NewArgs())
	if err != nil {
		return 0, err
	}
	return len(report.NetworksDeleted), nil
}

// PruneBuildCache clears the builder cache. aggressive also removes cache
// entries still in use by recent builds.
func (c *Client) PruneBuildCache(ctx context.Context, aggressive bool) (int, uint64, error) {
	report, err := c.cli.BuildCachePrune(ctx, types.BuildCachePruneOptions{All: aggressive})
	if err != nil {
		return 0, 0, err
	}
	return len(report.CachesDeleted), report.SpaceReclaimed, nil
}
