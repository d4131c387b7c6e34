package docker

import (
	"context"
	"fmt"
	"os"
)

// TruncateContainerLogs truncates a container's json log file in place. This
// requires the log file path to be visible from this process, which is the
// case for a local engine; remote daemons return an inspect path that does
// not exist here and fail harmlessly.
func (c *Client) TruncateContainerLogs(ctx context.Context, id string) error {
	info, err := c.cli.ContainerInspect(ctx, id)
	if err != nil {
		return fmt.Errorf("error inspecting container %s: %w", id, err)
	}
	if info.LogPath == "" {
		return fmt.Errorf("container %s has no log path", id)
	}
	return os.Truncate(info.LogPath, 0)
}
