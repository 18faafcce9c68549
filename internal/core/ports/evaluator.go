package ports

import (
	"context"

	"go.trai.ch/forge/internal/core/domain"
)

// Evaluator is the external specification-evaluation collaborator. The
// engine decides whether evaluation can be skipped; the evaluator does the
// actual work when it cannot.
//
//go:generate mockgen -source=evaluator.go -destination=mocks/mock_evaluator.go -package=mocks
type Evaluator interface {
	// EvaluateMetadata evaluates configuration and module metadata. The
	// builder passed here rejects plan mutations; creating a build step
	// during this phase is a protocol violation.
	EvaluateMetadata(ctx context.Context, builder PlanBuilder) error

	// BuildPlan evaluates build specifications into an encoded plan. The
	// decision scopes which inputs must be re-evaluated; untouched inputs
	// retain their cached observations. The returned snapshot holds every
	// observation recorded during the pass; the engine persists it as the
	// baseline for the next reuse decision.
	BuildPlan(ctx context.Context, decision domain.ReuseDecision) ([]byte, *domain.Snapshot, error)
}
