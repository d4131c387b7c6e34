package engine

import (
	"context"

	"github.com/bnema/shipshape/internal/platform"
	"github.com/bnema/shipshape/internal/policy"
	"github.com/bnema/shipshape/pkg/logger"
)

// Pipeline wires the configured categories into the fixed run order:
// containers, images, volumes, builders (with the WSL cache purge), the
// optional Docker Desktop reset, minikube, kind, dangling, logs, and a final
// aggressive build-cache pass. Categories are independent; no outcome
// affects another's selection, only the shared report.
type Pipeline struct {
	Engine   *Engine
	Selector Selector
	Platform platform.Platform

	// CleanLogs must be set in addition to the logs category being in
	// scope, otherwise logs are never touched.
	CleanLogs bool
	// ResetDockerDesktop wipes the Docker Desktop data directories after
	// the builder phase.
	ResetDockerDesktop bool

	Containers Category
	Images     Category
	Volumes    Category

	Builders          BuilderBackend
	BuilderExclusions *policy.ExclusionSet

	Minikube Category
	Kind     Category

	Pruner BulkPruner
	Logs   LogTruncator
}

// Run executes the pipeline sequentially. It never returns an error: every
// backend failure is absorbed at the category level, and the report stays
// consistent regardless of partial failures.
func (p *Pipeline) Run(ctx context.Context) {
	e := p.Engine

	if p.Selector.Enabled(ScopeContainers) {
		e.RunCategory(ctx, p.Containers)
	}
	if p.Selector.Enabled(ScopeImages) {
		e.RunCategory(ctx, p.Images)
	}
	if p.Selector.Enabled(ScopeVolumes) {
		e.RunCategory(ctx, p.Volumes)
	}
	if p.Selector.Enabled(ScopeBuilders) {
		e.RunBuilders(ctx, p.Builders, p.BuilderExclusions, p.Platform)
	}

	if p.ResetDockerDesktop {
		if e.confirm("Docker Desktop reset") {
			if wiped := p.Platform.ResetDataDirs(e.Mode.DryRun); wiped > 0 {
				logger.Info("Docker Desktop data reset", "directories", wiped)
			}
		}
	}

	if p.Selector.Enabled(ScopeMinikube) {
		e.RunCategory(ctx, p.Minikube)
	}
	if p.Selector.Enabled(ScopeKind) {
		e.RunCategory(ctx, p.Kind)
	}
	if p.Selector.Enabled(ScopeDangling) {
		e.RunDangling(ctx, p.Pruner)
	}
	if p.Selector.Enabled(ScopeLogs) && p.CleanLogs {
		e.RunLogs(ctx, p.Logs)
	}

	// Full runs finish with an aggressive build-cache pass; its yield is
	// already represented by the build cache row, so only reclaimed bytes
	// are accumulated.
	if p.Selector.All() && p.Pruner != nil && !e.Mode.DryRun {
		if _, reclaimed, err := p.Pruner.PruneBuildCache(ctx, true); err != nil {
			logger.Debug("Final build cache prune failed", "error", err)
		} else {
			e.Report.AddReclaimed(reclaimed)
		}
	}
}
