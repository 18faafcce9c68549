package ports

// StepID identifies one build step in the plan. Zero is the invalid value
// returned by rejected mutations.
type StepID uint64

// StepSpec describes a build step to be added to the plan.
type StepSpec struct {
	Module      string
	Description string
	Command     []string
}

// PlanBuilder is the plan-construction contract. The real implementation
// lives in the execution engine; the mutation guard implements the same
// contract with every mutation rejected during metadata evaluation.
//
//go:generate mockgen -source=plan_builder.go -destination=mocks/mock_plan_builder.go -package=mocks
type PlanBuilder interface {
	// AddStep adds a build step. Returns the step id and true on success.
	AddStep(spec StepSpec) (StepID, bool)

	// AddWriteFileStep adds a step producing a derived file.
	AddWriteFileStep(path string, contents []byte) (StepID, bool)

	// AddSealDirectoryStep adds a step sealing a directory's contents.
	AddSealDirectoryStep(dir string, contents []string) (StepID, bool)

	// AddModule registers a module in the plan.
	AddModule(name string) bool

	// AddModuleDependency records a dependency between two modules.
	AddModuleDependency(from, to string) bool

	// DeclareValue declares a named value. Carries no execution semantics.
	DeclareValue(name string) bool

	// DeclareValueDependency declares a value-to-value dependency.
	DeclareValueDependency(from, to string) bool

	// ReserveSealDirectory reserves a directory for later sealing.
	ReserveSealDirectory(dir string) bool
}
