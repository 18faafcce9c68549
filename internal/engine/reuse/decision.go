// Package reuse decides whether a previously computed build plan can be
// reused without re-evaluating build specifications.
package reuse

import (
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/journal"
)

// Options tune the reuse decision at the call site.
type Options struct {
	// TreatDirChangesAsUnknown opts into the full conservative fallback when
	// only directory-membership changes (no path content, no environment)
	// were detected under an otherwise clean scan.
	TreatDirChangesAsUnknown bool
}

// DecideReuse combines the previously cached snapshot, the current snapshot
// and the classifier's finalized state into the reuse decision. Correctness
// is never traded for speed: an unreliable change set yields a visibly
// slower full re-evaluation, never a wrong plan.
func DecideReuse(prev, cur *domain.Snapshot, cls journal.Result, opts Options) domain.ReuseDecision {
	if cls.Unreliable() {
		return domain.ReuseDecision{
			Kind:   domain.FullReEvaluation,
			Reason: "change journal scan unreliable",
		}
	}

	stale := prev.Except(cur)
	fresh := cur.Except(prev)

	if cls.HaveNoChanges() && stale.IsEmpty() && fresh.IsEmpty() {
		return domain.ReuseDecision{Kind: domain.ReuseVerbatim}
	}

	// A mount remap changes what every observed path means; no patch can be
	// scoped under it.
	if len(stale.MountInputs) > 0 || len(fresh.MountInputs) > 0 {
		return domain.ReuseDecision{
			Kind:   domain.FullReEvaluation,
			Reason: "mount set changed",
		}
	}

	changedDirs := collectChangedDirs(cls, stale, fresh)
	contentPaths := collectContentPaths(cls, stale, fresh)
	affectedEnv := collectEnvNames(stale, fresh)

	if opts.TreatDirChangesAsUnknown &&
		len(changedDirs) > 0 && len(contentPaths) == 0 && len(affectedEnv) == 0 {
		return domain.ReuseDecision{
			Kind:   domain.FullReEvaluation,
			Reason: "directory membership changed under conservative policy",
		}
	}

	affected := make(map[string]struct{}, len(contentPaths)+len(changedDirs))
	for p := range contentPaths {
		affected[p] = struct{}{}
	}
	// Membership changes force re-enumeration of the directory's observed
	// children, even if no individual child's content changed: enumeration
	// results are part of the fingerprint.
	for d := range changedDirs {
		affected[d] = struct{}{}
		for _, pi := range cur.PathInputs {
			if fold(filepath.Dir(pi.Path)) == d {
				affected[fold(pi.Path)] = struct{}{}
			}
		}
	}

	return domain.ReuseDecision{
		Kind:          domain.ReuseWithPatch,
		AffectedPaths: sortedKeys(affected),
		AffectedEnv:   affectedEnv,
	}
}

func fold(p string) string {
	return strings.ToLower(p)
}

// collectChangedDirs unions the classifier's changed directories with
// membership-kind observations that differ between the snapshots.
func collectChangedDirs(cls journal.Result, diffs ...*domain.Snapshot) map[string]struct{} {
	dirs := make(map[string]struct{})
	for _, d := range cls.ChangedDirs.Paths() {
		dirs[d] = struct{}{}
	}
	for _, diff := range diffs {
		for _, pi := range diff.PathInputs {
			if pi.Kind == domain.KindMembership {
				dirs[fold(pi.Path)] = struct{}{}
			}
		}
	}
	return dirs
}

func collectContentPaths(cls journal.Result, diffs ...*domain.Snapshot) map[string]struct{} {
	paths := make(map[string]struct{})
	for _, p := range cls.PossiblyChanged.Paths() {
		paths[p] = struct{}{}
	}
	for _, diff := range diffs {
		for _, pi := range diff.PathInputs {
			if pi.Kind == domain.KindContent {
				paths[fold(pi.Path)] = struct{}{}
			}
		}
	}
	return paths
}

func collectEnvNames(diffs ...*domain.Snapshot) []string {
	names := make(map[string]struct{})
	for _, diff := range diffs {
		for _, ei := range diff.EnvInputs {
			names[ei.Name] = struct{}{}
		}
	}
	return sortedKeys(names)
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
