// Package engine runs cleanup categories: it composes a backend's listing
// with the selection policy and the execution mode, and writes the outcome
// to the shared run report. Backend failures are logged and discarded; the
// only thing that stops a run early is the user.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/shipshape/internal/backend"
	"github.com/bnema/shipshape/internal/policy"
	"github.com/bnema/shipshape/internal/report"
	"github.com/bnema/shipshape/pkg/logger"
)

// Category configures one run of the generic category loop. The seven
// per-kind handlers differ only in this data.
type Category struct {
	// Label is the report row this category writes to.
	Label string
	Kind  policy.Kind
	// List enumerates candidates. A nil List marks the backend unavailable
	// and the category is skipped silently.
	List func(ctx context.Context) ([]policy.Resource, error)
	// Delete removes one resource. Failures are logged and still counted as
	// attempted removals.
	Delete func(ctx context.Context, r policy.Resource) error
	// Exclusions protects resources by id or name.
	Exclusions *policy.ExclusionSet
	// AgeFiltered applies the run's age threshold. Cluster profiles expose
	// no creation time and leave this false.
	AgeFiltered bool
}

// Engine holds the per-run state every category shares.
type Engine struct {
	Mode   Mode
	Age    policy.AgeThreshold
	Report *report.Report
	// Prompt overrides the survey confirmation, for tests.
	Prompt Prompter
	// Now overrides the clock, for tests.
	Now func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// confirm gates entry into a category. Without --confirm it always passes.
func (e *Engine) confirm(category string) bool {
	if !e.Mode.Confirm {
		return true
	}
	prompt := e.Prompt
	if prompt == nil {
		prompt = surveyPrompter
	}
	if !prompt(category) {
		logger.Info("Skipping category", "category", category)
		return false
	}
	return true
}

// RunCategory processes one category end to end: list, decide per resource,
// delete (unless dry-run), tally.
func (e *Engine) RunCategory(ctx context.Context, cat Category) {
	if cat.List == nil {
		logger.Debug("Category backend unavailable", "category", cat.Label)
		return
	}
	if !e.confirm(cat.Label) {
		return
	}

	resources, err := cat.List(ctx)
	if err != nil {
		if errors.Is(err, backend.ErrUnavailable) {
			logger.Debug("Category tool not available", "category", cat.Label)
		} else {
			logger.Debug("Failed to list category", "category", cat.Label, "error", err)
		}
		return
	}

	age := policy.NoAgeLimit()
	if cat.AgeFiltered {
		age = e.Age
	}

	now := e.now()
	for _, r := range resources {
		switch policy.Decide(r, cat.Exclusions, age, now) {
		case policy.Act:
			logger.Debug("Removing "+r.Kind.String(), "id", shortID(r.ID), "name", r.Name)
			if !e.Mode.DryRun && cat.Delete != nil {
				if err := cat.Delete(ctx, r); err != nil {
					// Best-effort: the failure is surfaced here and nowhere
					// else, and the removal still counts as attempted.
					logger.Debug("Failed to remove "+r.Kind.String(), "id", shortID(r.ID), "error", err)
				}
			}
			e.Report.Removed(cat.Label)
		case policy.SkipExcluded:
			logger.Debug("Excluding "+r.Kind.String(), "id", shortID(r.ID), "name", r.Name)
			e.Report.Excluded(cat.Label)
		case policy.SkipTooRecent:
			// Age skips are tallied but not individually logged.
			e.Report.Excluded(cat.Label)
		}
	}
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
