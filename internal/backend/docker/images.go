package docker

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/api/types/image"

	"github.com/bnema/shipshape/internal/policy"
)

// ListImages lists top-level images as policy resources. The display name is
// the first repo:tag; untagged images keep the engine's <none> placeholder so
// exclusion patterns cannot accidentally match them.
func (c *Client) ListImages(ctx context.Context) ([]policy.Resource, error) {
	images, err := c.cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("error listing images: %w", err)
	}

	resources := make([]policy.Resource, 0, len(images))
	for _, img := range images {
		name := "<none>:<none>"
		if len(img.RepoTags) > 0 {
			name = img.RepoTags[0]
		}
		resources = append(resources, policy.Resource{
			ID:        img.ID,
			Name:      name,
			CreatedAt: time.Unix(img.Created, 0),
			Kind:      policy.KindImage,
		})
	}
	return resources, nil
}

// RemoveImage force-removes an image and prunes its dangling parents.
func (c *Client) RemoveImage(ctx context.Context, id string) error {
	_, err := c.cli.ImageRemove(ctx, id, image.RemoveOptions{
		Force:         true,
		PruneChildren: true,
	})
	return err
}
