// Package guard provides the mutation-rejecting plan builder installed while
// module metadata is still being evaluated. Creating a build step before
// evaluation completes is an ordering bug; the guard turns it into a hard,
// immediately visible diagnostic instead of a silent one.
package guard

import (
	"fmt"

	"go.trai.ch/forge/internal/core/ports"
)

// MutationGuard implements ports.PlanBuilder with every mutation rejected.
// Rejections are logged and reported through the operation's normal invalid
// return value, never as an error: callers of the plan-construction contract
// keep a single code path.
//
// Read-only bookkeeping operations pass, since they carry no execution
// semantics.
type MutationGuard struct {
	logger ports.Logger
}

// New creates a mutation guard.
func New(logger ports.Logger) *MutationGuard {
	return &MutationGuard{logger: logger}
}

func (g *MutationGuard) reject(op, detail string) {
	g.logger.Warn(fmt.Sprintf("plan mutation %q rejected during metadata evaluation: %s", op, detail))
}

// AddStep rejects the mutation and returns the invalid step id.
func (g *MutationGuard) AddStep(spec ports.StepSpec) (ports.StepID, bool) {
	g.reject("AddStep", fmt.Sprintf("module=%s description=%s", spec.Module, spec.Description))
	return 0, false
}

// AddWriteFileStep rejects the mutation and returns the invalid step id.
func (g *MutationGuard) AddWriteFileStep(path string, _ []byte) (ports.StepID, bool) {
	g.reject("AddWriteFileStep", "path="+path)
	return 0, false
}

// AddSealDirectoryStep rejects the mutation and returns the invalid step id.
func (g *MutationGuard) AddSealDirectoryStep(dir string, _ []string) (ports.StepID, bool) {
	g.reject("AddSealDirectoryStep", "dir="+dir)
	return 0, false
}

// AddModule rejects the mutation.
func (g *MutationGuard) AddModule(name string) bool {
	g.reject("AddModule", "module="+name)
	return false
}

// AddModuleDependency rejects the mutation.
func (g *MutationGuard) AddModuleDependency(from, to string) bool {
	g.reject("AddModuleDependency", fmt.Sprintf("from=%s to=%s", from, to))
	return false
}

// DeclareValue is bookkeeping and always permitted.
func (g *MutationGuard) DeclareValue(string) bool { return true }

// DeclareValueDependency is bookkeeping and always permitted.
func (g *MutationGuard) DeclareValueDependency(string, string) bool { return true }

// ReserveSealDirectory is bookkeeping and always permitted.
func (g *MutationGuard) ReserveSealDirectory(string) bool { return true }
