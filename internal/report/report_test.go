package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_CountersAccumulate(t *testing.T) {
	r := New()

	r.Removed(Containers)
	r.Removed(Containers)
	r.Excluded(Containers)
	r.AddRemoved(DanglingImages, 3)

	assert.Equal(t, 2, r.RemovedCount(Containers))
	assert.Equal(t, 1, r.ExcludedCount(Containers))
	assert.Equal(t, 3, r.RemovedCount(DanglingImages))
}

func TestReport_AddRemovedClampsNegative(t *testing.T) {
	r := New()

	r.AddRemoved(BuildCache, -5)

	assert.Equal(t, 0, r.RemovedCount(BuildCache))
}

func TestReport_UnexecutedCategoriesRenderAsZero(t *testing.T) {
	r := New()
	r.Removed(Images)

	out := r.Render()

	// Every category row is present even when nothing ran for it.
	for _, category := range []string{
		Containers, Images, Volumes, BuildersPruned, BuildersRemoved,
		MinikubeProfiles, KindClusters, DanglingImages, StoppedContainers,
		UnusedVolumes, UnusedNetworks, BuildCache, ContainerLogs,
	} {
		assert.Contains(t, out, category)
	}
}

func TestReport_ExcludedNAForBulkCategories(t *testing.T) {
	r := New()
	out := r.Render()

	lines := strings.Split(out, "\n")
	var danglingLine string
	for _, l := range lines {
		if strings.Contains(l, DanglingImages) {
			danglingLine = l
			break
		}
	}
	require.NotEmpty(t, danglingLine)
	assert.Contains(t, danglingLine, "N/A")
}

func TestReport_ReclaimedFooter(t *testing.T) {
	r := New()

	assert.NotContains(t, r.Render(), "Space reclaimed")

	r.AddReclaimed(2 * 1024 * 1024)
	assert.Contains(t, r.Render(), "Space reclaimed: 2.0 MiB")
}

func TestReport_DiskUsageFooter(t *testing.T) {
	r := New()
	r.SetDiskUsage(10*1024*1024*1024, 8*1024*1024*1024)

	out := r.Render()

	assert.Contains(t, out, "freed 2.0 GiB")
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", humanBytes(512))
	assert.Equal(t, "1.0 KiB", humanBytes(1024))
	assert.Equal(t, "1.5 GiB", humanBytes(3*1024*1024*1024/2))
}
