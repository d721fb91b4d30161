package engine

// LoadedSet tracks the resolved paths already processed in the current
// run. It is created empty at engine construction and never persisted.
// Linear membership checks are fine here; the set holds a page's worth of
// assets at most.
type LoadedSet struct {
	paths []string
}

// NewLoadedSet creates an empty loaded set.
func NewLoadedSet() *LoadedSet {
	return &LoadedSet{paths: make([]string, 0)}
}

// MarkAsLoaded records the path. Idempotent.
func (s *LoadedSet) MarkAsLoaded(path string) {
	if s.IsLoaded(path) {
		return
	}
	s.paths = append(s.paths, path)
}

// IsLoaded reports whether the path was already processed this run.
func (s *LoadedSet) IsLoaded(path string) bool {
	for _, p := range s.paths {
		if p == path {
			return true
		}
	}

	return false
}

// Loaded returns all tracked paths in insertion order.
func (s *LoadedSet) Loaded() []string {
	out := make([]string, len(s.paths))
	copy(out, s.paths)

	return out
}
