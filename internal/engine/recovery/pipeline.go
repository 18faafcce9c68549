// Package recovery implements the crash-recovery pipeline: an ordered
// registry of named actions run at startup to repair state a previous crash
// left behind, and at failure time to persist markers describing what went
// wrong.
package recovery

import (
	"context"
	"fmt"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Action is one independently-authored recovery concern. "Should I act" is
// decoupled from "act" so each action can be tested on its own and the
// pipeline can apply a uniform ordering policy without knowing what any
// action repairs.
type Action interface {
	// Name identifies the action; unique within a pipeline. Any persisted
	// marker the action reads or writes is scoped by this name.
	Name() string

	// ShouldRecover reports whether a marker from a previous run calls for
	// repair work at startup.
	ShouldRecover(ctx context.Context) (bool, error)

	// Recover repairs the state the marker describes and clears the marker.
	Recover(ctx context.Context) error

	// ShouldMarkFailure reports whether this action wants to record state
	// about the given failure.
	ShouldMarkFailure(cause error, rootCause domain.RootCause) bool

	// MarkFailure persists a marker this action's own future ShouldRecover
	// will find.
	MarkFailure(ctx context.Context, cause error) error
}

// Pipeline runs registered actions in registration order. It does not
// serialize concurrent use; one engine instance owns a pipeline and its
// marker directory.
type Pipeline struct {
	actions []Action
	names   map[string]struct{}
	logger  ports.Logger
}

// NewPipeline creates an empty pipeline.
func NewPipeline(logger ports.Logger) *Pipeline {
	return &Pipeline{
		names:  make(map[string]struct{}),
		logger: logger,
	}
}

// Register appends an action. Duplicate names are rejected.
func (p *Pipeline) Register(a Action) error {
	if _, exists := p.names[a.Name()]; exists {
		return zerr.With(domain.ErrDuplicateAction, "action", a.Name())
	}
	p.names[a.Name()] = struct{}{}
	p.actions = append(p.actions, a)
	return nil
}

// RunStartupRecovery runs every action whose ShouldRecover reports true.
// With stopOnFirstFailure the remaining pipeline is aborted on the first
// failed action; otherwise all actions are attempted and the result is the
// conjunction of their outcomes.
func (p *Pipeline) RunStartupRecovery(ctx context.Context, stopOnFirstFailure bool) bool {
	ok := true
	for _, a := range p.actions {
		should, err := a.ShouldRecover(ctx)
		if err != nil {
			p.logger.Error(zerr.With(zerr.Wrap(err, "recovery check failed"), "action", a.Name()))
			ok = false
			if stopOnFirstFailure {
				return false
			}
			continue
		}
		if !should {
			continue
		}

		if err := a.Recover(ctx); err != nil {
			p.logger.Error(zerr.With(zerr.Wrap(err, "recovery action failed"), "action", a.Name()))
			ok = false
			if stopOnFirstFailure {
				return false
			}
			continue
		}
		p.logger.Info(fmt.Sprintf("recovered: %s", a.Name()))
	}
	return ok
}

// MarkFailure runs every action whose ShouldMarkFailure reports true. This
// pass never stops early: a single crash may require several independent
// actions to record state. The result is the conjunction of all attempted
// markings.
func (p *Pipeline) MarkFailure(ctx context.Context, cause error, rootCause domain.RootCause) bool {
	ok := true
	for _, a := range p.actions {
		if !a.ShouldMarkFailure(cause, rootCause) {
			continue
		}
		if err := a.MarkFailure(ctx, cause); err != nil {
			p.logger.Error(zerr.With(zerr.Wrap(err, "failure marking failed"), "action", a.Name()))
			ok = false
			continue
		}
		p.logger.Info(fmt.Sprintf("failure marked: %s", a.Name()))
	}
	return ok
}
