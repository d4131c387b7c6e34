// Package policy holds the pure selection logic that decides, per resource,
// whether a cleanup run acts on it or skips it. It has no side effects and no
// knowledge of any backend.
package policy

import (
	"strings"
	"time"
)

// Kind identifies the resource family a descriptor belongs to. Matching and
// age semantics vary slightly per kind (image names match by substring,
// volumes carry no creation time, cluster profiles are never age-filtered).
type Kind int

const (
	KindContainer Kind = iota
	KindImage
	KindVolume
	KindBuilder
	KindClusterProfile
	KindNetwork
)

// String returns the human-readable kind label used in log lines.
func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindImage:
		return "image"
	case KindVolume:
		return "volume"
	case KindBuilder:
		return "builder"
	case KindClusterProfile:
		return "cluster profile"
	case KindNetwork:
		return "network"
	default:
		return "resource"
	}
}

// Resource is the descriptor every backend lists. ID is the stable backend
// key; Name is the human-readable display key (container name, repo:tag,
// profile name). A zero CreatedAt means the backend does not expose creation
// time for this resource.
type Resource struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Kind      Kind
}

// Matches reports whether pattern selects this resource. IDs match exactly
// and case-sensitively. Names match exactly, except for images where the
// pattern matches as a substring of the repo:tag so "redis" protects both
// "redis:7" and "redis:latest".
func (r Resource) Matches(pattern string) bool {
	if pattern == "" {
		return false
	}
	if r.ID == pattern {
		return true
	}
	if r.Kind == KindImage {
		return strings.Contains(r.Name, pattern)
	}
	return r.Name == pattern
}

// ExclusionSet is an unordered set of ids or names that a run must not touch.
// It is built once per run (user flags merged with project-scope resolution)
// and never mutated while categories execute.
type ExclusionSet struct {
	entries []string
	seen    map[string]struct{}
}

// NewExclusionSet builds a set from the given entries, dropping empties and
// duplicates.
func NewExclusionSet(entries ...string) *ExclusionSet {
	s := &ExclusionSet{seen: make(map[string]struct{})}
	s.Add(entries...)
	return s
}

// Add inserts entries into the set. Empty strings are ignored.
func (s *ExclusionSet) Add(entries ...string) {
	for _, e := range entries {
		if e == "" {
			continue
		}
		if _, ok := s.seen[e]; ok {
			continue
		}
		s.seen[e] = struct{}{}
		s.entries = append(s.entries, e)
	}
}

// Len returns the number of entries in the set.
func (s *ExclusionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// MatchedBy returns the entry that excludes r, if any.
func (s *ExclusionSet) MatchedBy(r Resource) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, e := range s.entries {
		if r.Matches(e) {
			return e, true
		}
	}
	return "", false
}

// AgeThreshold filters resources by age in whole days. The zero value means
// no filtering: every resource is eligible regardless of creation time.
type AgeThreshold struct {
	days int
	set  bool
}

// OlderThanDays returns a threshold that only lets resources strictly older
// than the given number of days through.
func OlderThanDays(days int) AgeThreshold {
	return AgeThreshold{days: days, set: true}
}

// NoAgeLimit returns the unset sentinel.
func NoAgeLimit() AgeThreshold {
	return AgeThreshold{}
}

// IsSet reports whether age filtering applies at all.
func (t AgeThreshold) IsSet() bool { return t.set }

// Days returns the configured threshold in days. Only meaningful when IsSet.
func (t AgeThreshold) Days() int { return t.days }

// Eligible reports whether a resource created at createdAt is old enough to
// act on. Unknown creation time (zero) is treated as old enough: the policy
// favors cleanup over leaks, and kinds that never expose creation time
// (volumes under some backends) bypass age filtering entirely this way.
// The comparison is strict: a resource exactly t days old is not eligible.
func (t AgeThreshold) Eligible(createdAt, now time.Time) bool {
	if !t.set {
		return true
	}
	if createdAt.IsZero() {
		return true
	}
	ageDays := int(now.Sub(createdAt).Hours() / 24)
	return ageDays > t.days
}

// Decision is the outcome of Decide for a single resource.
type Decision int

const (
	// Act means the resource should be deleted (or would be, under dry-run).
	Act Decision = iota
	// SkipExcluded means an exclusion entry matched; exclusion beats age.
	SkipExcluded
	// SkipTooRecent means the resource is within the age threshold.
	SkipTooRecent
)

// Decide partitions a single resource into act/skip. Exclusion is evaluated
// first and wins regardless of age.
func Decide(r Resource, exclusions *ExclusionSet, age AgeThreshold, now time.Time) Decision {
	if _, excluded := exclusions.MatchedBy(r); excluded {
		return SkipExcluded
	}
	if !age.Eligible(r.CreatedAt, now) {
		return SkipTooRecent
	}
	return Act
}
