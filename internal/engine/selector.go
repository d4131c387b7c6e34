package engine

// Category scope names accepted by the selector. These mirror the --only-*
// flag suffixes.
const (
	ScopeContainers = "containers"
	ScopeImages     = "images"
	ScopeVolumes    = "volumes"
	ScopeBuilders   = "builders"
	ScopeMinikube   = "minikube"
	ScopeKind       = "kind"
	ScopeDangling   = "dangling"
	ScopeLogs       = "logs"
)

// Selector is the run's category scope: all categories by default, or the
// explicit subset the caller picked. Explicit selection always narrows the
// default, never adds to it.
type Selector struct {
	only map[string]bool
}

// SelectAll scopes the run to every category.
func SelectAll() Selector {
	return Selector{}
}

// SelectOnly scopes the run to the named categories. An empty list falls
// back to all categories.
func SelectOnly(names ...string) Selector {
	if len(names) == 0 {
		return SelectAll()
	}
	only := make(map[string]bool, len(names))
	for _, n := range names {
		only[n] = true
	}
	return Selector{only: only}
}

// All reports whether the run covers every category.
func (s Selector) All() bool {
	return len(s.only) == 0
}

// Enabled reports whether the named category is in scope.
func (s Selector) Enabled(name string) bool {
	if s.All() {
		return true
	}
	return s.only[name]
}
