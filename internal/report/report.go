// Package report accumulates per-category removal tallies and renders the
// final summary table. Counters only ever go up and are read once, at the end
// of the run. The removed column reflects *attempted* removals: a delete that
// failed at the backend still counts, because the run is best-effort and the
// failure is only surfaced in verbose logs.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Category keys. The report always prints every row, in this order, even for
// categories that never ran; those show zeros, not gaps.
const (
	Containers        = "Containers"
	Images            = "Images"
	Volumes           = "Volumes"
	BuildersPruned    = "Builders (pruned)"
	BuildersRemoved   = "Builders (removed)"
	MinikubeProfiles  = "Minikube profiles"
	KindClusters      = "Kind clusters"
	DanglingImages    = "Dangling images"
	StoppedContainers = "Stopped containers"
	UnusedVolumes     = "Unused volumes"
	UnusedNetworks    = "Unused networks"
	BuildCache        = "Build cache"
	ContainerLogs     = "Container logs"
)

type row struct {
	category string
	removed  int
	excluded int
	// hasExcluded marks whether "excluded" is a meaningful concept for this
	// category. Bulk prunes, log truncation and builder removal render N/A.
	hasExcluded bool
}

// Report is the single ledger every category runner writes to. It is created
// at run start, threaded by reference, and discarded after rendering.
type Report struct {
	rows           []*row
	index          map[string]*row
	spaceReclaimed uint64
	diskUsedBefore uint64
	diskUsedAfter  uint64
	diskTracked    bool
}

// New returns a report with every category pre-registered at zero.
func New() *Report {
	r := &Report{index: make(map[string]*row)}
	for _, c := range []struct {
		name        string
		hasExcluded bool
	}{
		{Containers, true},
		{Images, true},
		{Volumes, true},
		{BuildersPruned, true},
		{BuildersRemoved, false},
		{MinikubeProfiles, true},
		{KindClusters, true},
		{DanglingImages, false},
		{StoppedContainers, false},
		{UnusedVolumes, false},
		{UnusedNetworks, false},
		{BuildCache, false},
		{ContainerLogs, false},
	} {
		rw := &row{category: c.name, hasExcluded: c.hasExcluded}
		r.rows = append(r.rows, rw)
		r.index[c.name] = rw
	}
	return r
}

func (r *Report) get(category string) *row {
	rw, ok := r.index[category]
	if !ok {
		rw = &row{category: category, hasExcluded: true}
		r.rows = append(r.rows, rw)
		r.index[category] = rw
	}
	return rw
}

// Removed records one attempted removal for the category.
func (r *Report) Removed(category string) {
	r.get(category).removed++
}

// AddRemoved records n attempted removals at once (bulk prunes count the
// matching resources before issuing the prune).
func (r *Report) AddRemoved(category string, n int) {
	if n < 0 {
		n = 0
	}
	r.get(category).removed += n
}

// Excluded records one skipped resource for the category.
func (r *Report) Excluded(category string) {
	r.get(category).excluded++
}

// AddReclaimed accumulates bytes reported reclaimed by prune operations.
func (r *Report) AddReclaimed(bytes uint64) {
	r.spaceReclaimed += bytes
}

// SetDiskUsage records host disk usage measured before and after the run.
func (r *Report) SetDiskUsage(beforeUsed, afterUsed uint64) {
	r.diskUsedBefore = beforeUsed
	r.diskUsedAfter = afterUsed
	r.diskTracked = true
}

// RemovedCount returns the removed tally for a category.
func (r *Report) RemovedCount(category string) int {
	if rw, ok := r.index[category]; ok {
		return rw.removed
	}
	return 0
}

// ExcludedCount returns the excluded tally for a category.
func (r *Report) ExcludedCount(category string) int {
	if rw, ok := r.index[category]; ok {
		return rw.excluded
	}
	return 0
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Render formats the summary table plus the reclaimed-space footer.
func (r *Report) Render() string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("CATEGORY", "REMOVED", "EXCLUDED").
		StyleFunc(func(rowIdx, _ int) lipgloss.Style {
			if rowIdx == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, rw := range r.rows {
		excluded := "N/A"
		if rw.hasExcluded {
			excluded = fmt.Sprintf("%d", rw.excluded)
		}
		t.Row(rw.category, fmt.Sprintf("%d", rw.removed), excluded)
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	if r.spaceReclaimed > 0 {
		fmt.Fprintf(&b, "Space reclaimed: %s\n", humanBytes(r.spaceReclaimed))
	}
	if r.diskTracked && r.diskUsedBefore >= r.diskUsedAfter {
		fmt.Fprintf(&b, "Disk usage: %s -> %s (freed %s)\n",
			humanBytes(r.diskUsedBefore),
			humanBytes(r.diskUsedAfter),
			humanBytes(r.diskUsedBefore-r.diskUsedAfter))
	}
	return b.String()
}

func humanBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
