package domain

// ReuseKind is the outcome of the graph reuse decision.
type ReuseKind uint8

const (
	// ReuseVerbatim means the cached plan is reused unmodified and
	// specification evaluation is skipped entirely.
	ReuseVerbatim ReuseKind = iota
	// ReuseWithPatch means the cached plan is reused with an incremental
	// patch limited to the affected inputs.
	ReuseWithPatch
	// FullReEvaluation means evaluation must be redone from scratch.
	FullReEvaluation
)

// String returns a readable kind name.
func (k ReuseKind) String() string {
	switch k {
	case ReuseVerbatim:
		return "reuse"
	case ReuseWithPatch:
		return "reuse-with-patch"
	case FullReEvaluation:
		return "full-re-evaluation"
	default:
		return "invalid"
	}
}

// ReuseDecision is the result of comparing the cached construction pass
// against the current one.
type ReuseDecision struct {
	Kind ReuseKind
	// AffectedPaths lists the paths whose observations must be re-evaluated
	// (only for ReuseWithPatch). Sorted, deduplicated.
	AffectedPaths []string
	// AffectedEnv lists the environment variable names whose observations
	// changed (only for ReuseWithPatch). Sorted, deduplicated.
	AffectedEnv []string
	// Reason explains a FullReEvaluation for diagnostics.
	Reason string
}
