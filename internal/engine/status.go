package engine

// Status is the terminal outcome of one internalization attempt. The four
// values are closed; every consumer switches over all of them.
type Status int

const (
	// StatusLoaded means the resolved path was already processed earlier
	// in this run; no work was performed.
	StatusLoaded Status = iota
	// StatusInCache means the asset was found via the cache map or an
	// on-disk existence check and was not re-fetched.
	StatusInCache
	// StatusInternalized means the asset was freshly fetched or copied
	// and its mapping persisted.
	StatusInternalized
	// StatusInvalid means the fetch or copy failed, or the source is
	// missing; the caller falls back to the original reference.
	StatusInvalid
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusInCache:
		return "in-cache"
	case StatusInternalized:
		return "internalized"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Result is what every internalization operation returns. URL is empty for
// archive and directory kinds and for invalid outcomes; Output carries the
// emitted markup, or the fallback reference when the outcome is invalid.
type Result struct {
	Status Status
	URL    string
	Output string
}
