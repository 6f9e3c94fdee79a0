package ports

// Warner is a sink for non-fatal, human-readable diagnostics emitted while
// resolving collections (e.g. ambiguous survey tagging). The resolver never
// fails through this interface; it only reports and proceeds.
type Warner interface {
	Warnf(format string, args ...any)
}
