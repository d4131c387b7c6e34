package engine

import (
	"context"

	"github.com/bnema/shipshape/internal/policy"
	"github.com/bnema/shipshape/internal/report"
	"github.com/bnema/shipshape/pkg/logger"
)

// LogTruncator is the slice of the docker adapter the logs category
// consumes.
type LogTruncator interface {
	ListContainers(ctx context.Context) ([]policy.Resource, error)
	TruncateContainerLogs(ctx context.Context, id string) error
}

// RunLogs truncates every container's log artifact in place. There is no
// exclusion counterpart here; each truncation attempt is tallied as cleaned.
func (e *Engine) RunLogs(ctx context.Context, lt LogTruncator) {
	if lt == nil {
		logger.Debug("Log backend unavailable")
		return
	}
	if !e.confirm(report.ContainerLogs) {
		return
	}

	containers, err := lt.ListContainers(ctx)
	if err != nil {
		logger.Debug("Failed to list containers for log cleanup", "error", err)
		return
	}

	for _, c := range containers {
		logger.Debug("Truncating container log", "id", shortID(c.ID), "name", c.Name)
		if !e.Mode.DryRun {
			if err := lt.TruncateContainerLogs(ctx, c.ID); err != nil {
				logger.Debug("Failed to truncate container log", "id", shortID(c.ID), "error", err)
			}
		}
		e.Report.Removed(report.ContainerLogs)
	}
}
