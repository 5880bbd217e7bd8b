package recommendation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/repositories"
	"github.com/ecostock/ecostock/pkg/infrastructure/events"
)

// Workflow owns recommendation state transitions. Approval executes the
// transfer immediately; a failed execution annotates the recommendation
// and returns it to Pending rather than losing it. Replayed decisions are
// no-ops, and transitions out of a terminal state fail with
// ErrInvalidTransition.
type Workflow struct {
	recs     repositories.RecommendationRepository
	executor *Executor
	audit    events.Store
	logger   *slog.Logger
}

// NewWorkflow creates an approval workflow. A nil audit store disables
// the audit trail.
func NewWorkflow(recs repositories.RecommendationRepository, executor *Executor, audit events.Store, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{recs: recs, executor: executor, audit: audit, logger: logger}
}

// record appends an audit event for the transition that just won its CAS
func (w *Workflow) record(id, eventType string, data map[string]string) {
	if w.audit == nil {
		return
	}
	if err := w.audit.Append(id, eventType, data); err != nil {
		w.logger.Warn("failed to record audit event",
			slog.String("id", id),
			slog.String("type", eventType),
			slog.String("error", err.Error()))
	}
}

// Approve moves a Pending recommendation through Approved to Executed.
// Approving an already Approved or Executed recommendation is a no-op
// returning the current state; approving a Rejected one fails with
// ErrInvalidTransition.
func (w *Workflow) Approve(ctx context.Context, id string) (*entities.Recommendation, error) {
	swapped, current, err := w.recs.CompareAndSwapState(id, entities.Pending, entities.Approved, "")
	if err != nil {
		return nil, err
	}
	if !swapped {
		switch current.State {
		case entities.Approved, entities.Executed:
			return current, nil
		case entities.Rejected:
			return current, fmt.Errorf("cannot approve rejected recommendation %s: %w", id, entities.ErrInvalidTransition)
		default:
			return current, fmt.Errorf("recommendation %s in unexpected state %s: %w", id, current.State, entities.ErrInvalidTransition)
		}
	}

	w.record(id, events.RecommendationApproved, nil)

	if execErr := w.executor.Execute(ctx, current); execErr != nil {
		// Revert so the recommendation can be regenerated or retried
		// instead of being silently lost.
		_, reverted, casErr := w.recs.CompareAndSwapState(id, entities.Approved, entities.Pending, fmt.Sprintf("execution failed: %v", execErr))
		if casErr != nil {
			return nil, casErr
		}
		w.record(id, events.RecommendationReverted, map[string]string{"error": execErr.Error()})
		w.logger.Warn("recommendation execution failed",
			slog.String("id", id),
			slog.String("error", execErr.Error()))
		return reverted, execErr
	}

	_, executed, err := w.recs.CompareAndSwapState(id, entities.Approved, entities.Executed, "")
	if err != nil {
		return nil, err
	}
	w.record(id, events.RecommendationExecuted, nil)
	w.logger.Info("recommendation executed", slog.String("id", id))
	return executed, nil
}

// Reject moves a Pending recommendation to Rejected. Rejecting an already
// Rejected recommendation is a no-op; rejecting an Executed or Approved
// one fails with ErrInvalidTransition.
func (w *Workflow) Reject(ctx context.Context, id string) (*entities.Recommendation, error) {
	swapped, current, err := w.recs.CompareAndSwapState(id, entities.Pending, entities.Rejected, "")
	if err != nil {
		return nil, err
	}
	if swapped {
		w.record(id, events.RecommendationRejected, nil)
		w.logger.Info("recommendation rejected", slog.String("id", id))
		return current, nil
	}
	if current.State == entities.Rejected {
		return current, nil
	}
	return current, fmt.Errorf("cannot reject recommendation %s in state %s: %w", id, current.State, entities.ErrInvalidTransition)
}
