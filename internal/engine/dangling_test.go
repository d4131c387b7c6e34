package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/shipshape/internal/report"
)

type fakePruner struct {
	danglingImages    int
	stoppedContainers int
	unusedVolumes     int
	countErr          error

	prunedImages     bool
	prunedContainers bool
	prunedVolumes    bool
	prunedNetworks   bool
	prunedCache      bool
	aggressiveCache  bool
}

func (f *fakePruner) CountDanglingImages(context.Context) (int, error) {
	return f.danglingImages, f.countErr
}

func (f *fakePruner) CountStoppedContainers(context.Context) (int, error) {
	return f.stoppedContainers, f.countErr
}

func (f *fakePruner) CountUnusedVolumes(context.Context) (int, error) {
	return f.unusedVolumes, f.countErr
}

func (f *fakePruner) PruneDanglingImages(context.Context) (uint64, error) {
	f.prunedImages = true
	return 100, nil
}

func (f *fakePruner) PruneStoppedContainers(context.Context) (uint64, error) {
	f.prunedContainers = true
	return 100, nil
}

func (f *fakePruner) PruneUnusedVolumes(context.Context) (uint64, error) {
	f.prunedVolumes = true
	return 100, nil
}

func (f *fakePruner) PruneUnusedNetworks(context.Context) (int, error) {
	f.prunedNetworks = true
	return 2, nil
}

func (f *fakePruner) PruneBuildCache(_ context.Context, aggressive bool) (int, uint64, error) {
	f.prunedCache = true
	f.aggressiveCache = aggressive
	return 5, 100, nil
}

func TestRunDangling_CountsBeforePruning(t *testing.T) {
	p := &fakePruner{danglingImages: 3, stoppedContainers: 2, unusedVolumes: 1}
	e := testEngine(Mode{})

	e.RunDangling(context.Background(), p)

	assert.Equal(t, 3, e.Report.RemovedCount(report.DanglingImages))
	assert.Equal(t, 2, e.Report.RemovedCount(report.StoppedContainers))
	assert.Equal(t, 1, e.Report.RemovedCount(report.UnusedVolumes))
	assert.Equal(t, 2, e.Report.RemovedCount(report.UnusedNetworks))
	assert.Equal(t, 5, e.Report.RemovedCount(report.BuildCache))
	assert.True(t, p.prunedImages)
	assert.True(t, p.prunedContainers)
	assert.True(t, p.prunedVolumes)
	assert.True(t, p.prunedNetworks)
	assert.True(t, p.prunedCache)
}

func TestRunDangling_FailedCountCoercesToZero(t *testing.T) {
	p := &fakePruner{countErr: errors.New("df: parse error")}
	e := testEngine(Mode{})

	e.RunDangling(context.Background(), p)

	assert.Equal(t, 0, e.Report.RemovedCount(report.DanglingImages))
	assert.Equal(t, 0, e.Report.RemovedCount(report.StoppedContainers))
	assert.Equal(t, 0, e.Report.RemovedCount(report.UnusedVolumes))
	// Prunes still run; the count query failing is not a reason to skip.
	assert.True(t, p.prunedImages)
}

func TestRunDangling_DryRunUsesSentinelForUncountableKinds(t *testing.T) {
	p := &fakePruner{danglingImages: 4}
	e := testEngine(Mode{DryRun: true})

	e.RunDangling(context.Background(), p)

	assert.Equal(t, 4, e.Report.RemovedCount(report.DanglingImages))
	// Networks and build cache have no pre-count; "attempted" is recorded.
	assert.Equal(t, 1, e.Report.RemovedCount(report.UnusedNetworks))
	assert.Equal(t, 1, e.Report.RemovedCount(report.BuildCache))
	assert.False(t, p.prunedImages)
	assert.False(t, p.prunedNetworks)
	assert.False(t, p.prunedCache)
}

func TestRunDangling_NilPrunerSkips(t *testing.T) {
	e := testEngine(Mode{})

	e.RunDangling(context.Background(), nil)

	assert.Equal(t, 0, e.Report.RemovedCount(report.DanglingImages))
}
