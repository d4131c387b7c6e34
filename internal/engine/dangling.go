package engine

import (
	"context"

	"github.com/bnema/shipshape/internal/report"
	"github.com/bnema/shipshape/pkg/logger"
)

// BulkPruner is the slice of the docker adapter the dangling category
// consumes. Exclusion sets do not apply here: dangling resources are
// unreferenced by definition.
type BulkPruner interface {
	CountDanglingImages(ctx context.Context) (int, error)
	CountStoppedContainers(ctx context.Context) (int, error)
	CountUnusedVolumes(ctx context.Context) (int, error)
	PruneDanglingImages(ctx context.Context) (uint64, error)
	PruneStoppedContainers(ctx context.Context) (uint64, error)
	PruneUnusedVolumes(ctx context.Context) (uint64, error)
	PruneUnusedNetworks(ctx context.Context) (int, error)
	PruneBuildCache(ctx context.Context, aggressive bool) (int, uint64, error)
}

// RunDangling bulk-prunes each dangling sub-kind. Counts are taken by
// listing matching resources before the prune; a failed count query coerces
// to zero. Networks and build cache have no pre-count query, so a dry run
// records the sentinel value 1 for them: "attempted", not an exact count.
func (e *Engine) RunDangling(ctx context.Context, p BulkPruner) {
	if p == nil {
		logger.Debug("Prune backend unavailable")
		return
	}
	if !e.confirm("dangling resources") {
		return
	}

	type subKind struct {
		label string
		count func(ctx context.Context) (int, error)
		prune func(ctx context.Context) (uint64, error)
	}
	for _, sk := range []subKind{
		{report.DanglingImages, p.CountDanglingImages, p.PruneDanglingImages},
		{report.StoppedContainers, p.CountStoppedContainers, p.PruneStoppedContainers},
		{report.UnusedVolumes, p.CountUnusedVolumes, p.PruneUnusedVolumes},
	} {
		n, err := sk.count(ctx)
		if err != nil {
			logger.Debug("Count query failed", "category", sk.label, "error", err)
			n = 0
		}
		e.Report.AddRemoved(sk.label, n)
		logger.Debug("Pruning", "category", sk.label, "count", n)
		if e.Mode.DryRun {
			continue
		}
		if reclaimed, err := sk.prune(ctx); err != nil {
			logger.Debug("Prune failed", "category", sk.label, "error", err)
		} else {
			e.Report.AddReclaimed(reclaimed)
		}
	}

	if e.Mode.DryRun {
		e.Report.AddRemoved(report.UnusedNetworks, 1)
		e.Report.AddRemoved(report.BuildCache, 1)
		return
	}

	if n, err := p.PruneUnusedNetworks(ctx); err != nil {
		logger.Debug("Network prune failed", "error", err)
	} else {
		e.Report.AddRemoved(report.UnusedNetworks, n)
	}

	if n, reclaimed, err := p.PruneBuildCache(ctx, false); err != nil {
		logger.Debug("Build cache prune failed", "error", err)
	} else {
		e.Report.AddRemoved(report.BuildCache, n)
		e.Report.AddReclaimed(reclaimed)
	}
}
