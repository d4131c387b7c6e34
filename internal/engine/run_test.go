package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/shipshape/internal/policy"
	"github.com/bnema/shipshape/internal/report"
)

type fakeLogs struct {
	containers []policy.Resource
	truncated  []string
}

func (f *fakeLogs) ListContainers(context.Context) ([]policy.Resource, error) {
	return f.containers, nil
}

func (f *fakeLogs) TruncateContainerLogs(_ context.Context, id string) error {
	f.truncated = append(f.truncated, id)
	return nil
}

func testPipeline(e *Engine, sel Selector) (*Pipeline, *fakeStore, *fakeStore, *fakeStore) {
	containers := &fakeStore{resources: []policy.Resource{
		{ID: "c1", Name: "api", Kind: policy.KindContainer},
	}}
	images := &fakeStore{resources: []policy.Resource{
		{ID: "sha256:1", Name: "redis:7", Kind: policy.KindImage},
		{ID: "sha256:2", Name: "postgres:16", Kind: policy.KindImage},
	}}
	volumes := &fakeStore{resources: []policy.Resource{
		{ID: "v1", Name: "pgdata", Kind: policy.KindVolume},
	}}

	p := &Pipeline{
		Engine:     e,
		Selector:   sel,
		Containers: containers.category(report.Containers, policy.NewExclusionSet(), true),
		Images:     images.category(report.Images, policy.NewExclusionSet(), true),
		Volumes:    volumes.category(report.Volumes, policy.NewExclusionSet(), true),
	}
	return p, containers, images, volumes
}

func TestPipeline_OnlyImagesNarrowsScope(t *testing.T) {
	e := testEngine(Mode{})
	e.Age = policy.OlderThanDays(5)
	p, containers, _, volumes := testPipeline(e, SelectOnly(ScopeImages))

	p.Run(context.Background())

	assert.Equal(t, 2, e.Report.RemovedCount(report.Images))
	assert.Equal(t, 0, e.Report.RemovedCount(report.Containers), "containers stay untouched")
	assert.Equal(t, 0, e.Report.RemovedCount(report.Volumes))
	assert.Empty(t, containers.deleted)
	assert.Empty(t, volumes.deleted)

	// The report still prints the untouched categories as zeros.
	out := e.Report.Render()
	assert.Contains(t, out, report.Containers)
	assert.Contains(t, out, report.Volumes)
}

func TestPipeline_FullRunCoversEverything(t *testing.T) {
	e := testEngine(Mode{})
	p, containers, images, volumes := testPipeline(e, SelectAll())
	pruner := &fakePruner{danglingImages: 1}
	p.Pruner = pruner

	p.Run(context.Background())

	assert.Len(t, containers.deleted, 1)
	assert.Len(t, images.deleted, 2)
	assert.Len(t, volumes.deleted, 1)
	assert.Equal(t, 1, e.Report.RemovedCount(report.DanglingImages))
	assert.True(t, pruner.aggressiveCache, "full runs end with an aggressive cache pass")
}

func TestPipeline_LogsRequireCleanLogsFlag(t *testing.T) {
	logs := &fakeLogs{containers: []policy.Resource{{ID: "c1", Name: "api"}}}

	e := testEngine(Mode{})
	p, _, _, _ := testPipeline(e, SelectOnly(ScopeLogs))
	p.Logs = logs

	p.Run(context.Background())
	assert.Empty(t, logs.truncated, "logs selected but --clean-logs absent")
	assert.Equal(t, 0, e.Report.RemovedCount(report.ContainerLogs))

	p.CleanLogs = true
	p.Run(context.Background())
	assert.Equal(t, []string{"c1"}, logs.truncated)
	assert.Equal(t, 1, e.Report.RemovedCount(report.ContainerLogs))
}

func TestPipeline_DryRunLogsCountWithoutTruncation(t *testing.T) {
	logs := &fakeLogs{containers: []policy.Resource{{ID: "c1"}, {ID: "c2"}}}
	e := testEngine(Mode{DryRun: true})
	p, _, _, _ := testPipeline(e, SelectOnly(ScopeLogs))
	p.Logs = logs
	p.CleanLogs = true

	p.Run(context.Background())

	assert.Empty(t, logs.truncated)
	assert.Equal(t, 2, e.Report.RemovedCount(report.ContainerLogs))
}

func TestPipeline_NoFinalPruneOnNarrowedRun(t *testing.T) {
	e := testEngine(Mode{})
	p, _, _, _ := testPipeline(e, SelectOnly(ScopeContainers))
	pruner := &fakePruner{}
	p.Pruner = pruner

	p.Run(context.Background())

	assert.False(t, pruner.prunedCache)
}

func TestSelector(t *testing.T) {
	all := SelectAll()
	assert.True(t, all.All())
	assert.True(t, all.Enabled(ScopeContainers))
	assert.True(t, all.Enabled(ScopeLogs))

	only := SelectOnly(ScopeImages, ScopeKind)
	assert.False(t, only.All())
	assert.True(t, only.Enabled(ScopeImages))
	assert.True(t, only.Enabled(ScopeKind))
	assert.False(t, only.Enabled(ScopeContainers))

	assert.True(t, SelectOnly().All(), "empty explicit selection falls back to all")
}
