package engine

import (
	"context"
	"errors"

	"github.com/bnema/shipshape/internal/backend"
	"github.com/bnema/shipshape/internal/platform"
	"github.com/bnema/shipshape/internal/policy"
	"github.com/bnema/shipshape/internal/report"
	"github.com/bnema/shipshape/pkg/logger"
)

// reservedBuilderName is the builder every engine installation carries. Its
// caches are pruned like any other builder's, but the builder object itself
// is never removed.
const reservedBuilderName = "default"

// BuilderBackend is the slice of the buildx adapter the builders category
// consumes.
type BuilderBackend interface {
	ListBuilders(ctx context.Context) ([]policy.Resource, error)
	PruneCache(ctx context.Context, name string) (uint64, error)
	RemoveBuilder(ctx context.Context, name string) error
	BuildCacheEntryCount(ctx context.Context) int
}

// RunBuilders is the two-phase builders category: every non-excluded builder
// gets its cache pruned (counted under Builders (pruned)), and every
// non-excluded, non-reserved builder is then removed (counted under Builders
// (removed)). Under WSL the Docker Desktop cache directories are purged as a
// side effect, outside the ledger.
func (e *Engine) RunBuilders(ctx context.Context, b BuilderBackend, exclusions *policy.ExclusionSet, plat platform.Platform) {
	if b == nil {
		logger.Debug("Builders backend unavailable")
		return
	}
	if !e.confirm(report.BuildersPruned) {
		return
	}

	builders, err := b.ListBuilders(ctx)
	if err != nil {
		if errors.Is(err, backend.ErrUnavailable) {
			logger.Debug("buildx not available")
		} else {
			logger.Debug("Failed to list builders", "error", err)
		}
		return
	}

	if entries := b.BuildCacheEntryCount(ctx); entries > 0 {
		logger.Debug("Build cache entries before prune", "entries", entries)
	}

	now := e.now()
	for _, builder := range builders {
		if policy.Decide(builder, exclusions, policy.NoAgeLimit(), now) == policy.SkipExcluded {
			logger.Debug("Excluding builder", "name", builder.Name)
			e.Report.Excluded(report.BuildersPruned)
			continue
		}

		logger.Debug("Pruning builder cache", "name", builder.Name)
		if !e.Mode.DryRun {
			if reclaimed, err := b.PruneCache(ctx, builder.Name); err != nil {
				logger.Debug("Failed to prune builder cache", "name", builder.Name, "error", err)
			} else {
				e.Report.AddReclaimed(reclaimed)
			}
		}
		e.Report.Removed(report.BuildersPruned)

		if builder.Name == reservedBuilderName {
			continue
		}
		logger.Debug("Removing builder", "name", builder.Name)
		if !e.Mode.DryRun {
			if err := b.RemoveBuilder(ctx, builder.Name); err != nil {
				logger.Debug("Failed to remove builder", "name", builder.Name, "error", err)
			}
		}
		e.Report.Removed(report.BuildersRemoved)
	}

	if plat.WSL {
		if purged := plat.PurgeCacheDirs(e.Mode.DryRun); purged > 0 {
			logger.Debug("Purged Docker Desktop cache directories", "count", purged)
		}
	}
}
