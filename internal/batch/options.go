package batch

// Options contains the batch parameters.
type Options struct {
	Patterns []string // Input files or doublestar globs (empty means stdin)
	Jobs     int      // Maximum concurrent resolutions
}
