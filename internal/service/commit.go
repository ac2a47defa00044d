package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/billforge/billforge/internal/api/dto"
	"github.com/billforge/billforge/internal/domain/adjustment"
	"github.com/billforge/billforge/internal/domain/auditlog"
	"github.com/billforge/billforge/internal/domain/billing"
	"github.com/billforge/billforge/internal/domain/tenant"
	domainwizard "github.com/billforge/billforge/internal/domain/wizard"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/idempotency"
	"github.com/billforge/billforge/internal/pubsub"
	"github.com/billforge/billforge/internal/sentry"
	"github.com/billforge/billforge/internal/types"
	"github.com/shopspring/decimal"
)

// commitJob is an immutable snapshot of everything a commit attempt needs.
// The in-flight goroutine works exclusively from the snapshot so it never
// races with commands arriving on the wizard.
type commitJob struct {
	flow          types.WizardFlow
	actor         string
	tenant        *tenant.Tenant
	discount      *adjustment.DiscountRequest
	credit        *adjustment.CreditRequest
	priorDiscount string
	priorBalance  decimal.Decimal
	outcome       chan error
}

// Submit gates and launches the commit. It is only reachable from the
// confirmation step with the confirmation checkbox set, and only while no
// other commit is in flight. The returned channel delivers the commit
// outcome exactly once; the immediate error covers synchronous rejections.
//
// The boundary call is detached from the dialog's context: closing the
// dialog does not cancel a commit already sent, and its outcome is still
// fully processed (audit, event, success callback).
func (w *Wizard) Submit(ctx context.Context) (<-chan error, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireEditing(); err != nil {
		return nil, err
	}
	if !domainwizard.IsTerminalStep(w.state.Step) {
		return nil, ierr.NewError("submit is only reachable from the confirmation step").
			WithHint("Complete the previous steps first").
			WithReportableDetails(map[string]interface{}{
				"step": w.state.Step,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	if !w.state.Confirmed() {
		err := ierr.NewError("adjustment is not confirmed").
			WithHint("Please confirm the adjustment before submitting").
			Mark(ierr.ErrValidation)
		w.state.StepErrors[w.state.Step] = ierr.Hint(err)
		return nil, err
	}

	job, err := w.buildCommitJob(ctx)
	if err != nil {
		w.state.StepErrors[w.state.Step] = ierr.Hint(err)
		return nil, err
	}

	delete(w.state.StepErrors, w.state.Step)
	w.state.Phase = types.WizardPhaseSubmitting
	w.params.Logger.Infow("submitting adjustment",
		"wizard_id", w.id,
		"flow", job.flow,
		"tenant_id", job.tenant.ID,
		"actor", job.actor)

	// Detach from the dialog context: "close after submit" means the UI
	// is dismissed, not that the commit is cancelled.
	go w.runCommit(context.WithoutCancel(ctx), job)

	return job.outcome, nil
}

// buildCommitJob runs the final commit-time validation and snapshots the
// request. Caller holds the mutex.
func (w *Wizard) buildCommitJob(ctx context.Context) (*commitJob, error) {
	t := w.state.Tenant
	job := &commitJob{
		flow:    w.state.Flow,
		actor:   types.GetUserID(ctx),
		tenant:  t,
		outcome: make(chan error, 1),
	}

	generator := idempotency.NewGenerator()

	switch w.state.Flow {
	case types.WizardFlowCredit:
		if err := w.state.Credit.Validate(t); err != nil {
			return nil, err
		}
		req := *w.state.Credit
		req.IdempotencyKey = generator.GenerateKey(idempotency.ScopeAdjustmentCommit, map[string]interface{}{
			"request_id": req.ID,
			"tenant_id":  req.TenantID,
		})
		job.credit = &req
		job.priorBalance = t.CreditBalance
	default:
		if err := w.state.Discount.Validate(t); err != nil {
			return nil, err
		}
		req := *w.state.Discount
		req.IdempotencyKey = generator.GenerateKey(idempotency.ScopeAdjustmentCommit, map[string]interface{}{
			"request_id": req.ID,
			"tenant_id":  req.TenantID,
		})
		job.discount = &req
		// A new discount replaces the one in effect; the replaced
		// descriptor becomes the audit entry's previous value.
		job.priorDiscount = t.ActiveDiscount.String()
	}

	return job, nil
}

// runCommit invokes the billing mutation boundary with a bounded wait and
// hands the outcome back to the wizard.
func (w *Wizard) runCommit(ctx context.Context, job *commitJob) {
	cctx, cancel := context.WithTimeout(ctx, w.commitDeadline())
	defer cancel()

	var err error
	switch job.flow {
	case types.WizardFlowCredit:
		err = w.params.AdjustmentRepo.IssueCredit(cctx, job.credit)
	default:
		err = w.params.AdjustmentRepo.ApplyDiscount(cctx, job.discount)
	}

	if err != nil {
		if ierr.Is(err, context.DeadlineExceeded) {
			err = ierr.WithError(err).
				WithHint("The billing service did not respond in time").
				Mark(ierr.ErrTimeout)
		} else if !ierr.IsIntegration(err) && !ierr.IsTimeout(err) {
			err = ierr.WithError(err).
				WithHint("The billing service failed to apply the adjustment").
				Mark(ierr.ErrIntegration)
		}
	}

	w.finishCommit(ctx, job, err)
}

// finishCommit applies the commit outcome to the wizard. On success the
// audit entry is recorded, the committed event is published, and the
// success callback fires, even when the dialog was dismissed while the
// commit was in flight. On failure the entered data is kept intact on the
// confirmation step and Submit is re-enabled for a user-initiated retry.
func (w *Wizard) finishCommit(ctx context.Context, job *commitJob, commitErr error) {
	w.mu.Lock()

	if commitErr != nil {
		w.params.Logger.Errorw("adjustment commit failed",
			"wizard_id", w.id,
			"flow", job.flow,
			"tenant_id", job.tenant.ID,
			"dismissed", w.state.Dismissed,
			"error", commitErr)

		sentrySvc := sentry.NewSentryService(w.params.Config, w.params.Logger)
		sentrySvc.CaptureException(commitErr)

		// Never silently discard user input on failure: stay on the
		// confirmation step with the draft intact and surface the
		// failure for retry.
		w.state.Phase = types.WizardPhaseEditing
		w.state.StepErrors[types.WizardStepLast] = ierr.Hint(commitErr)

		w.mu.Unlock()
		job.outcome <- commitErr
		return
	}

	entry := buildAuditEntry(w, job)
	if err := entry.Validate(); err == nil {
		if err := w.params.AuditRepo.Record(ctx, entry); err != nil {
			// The mutation already succeeded; an audit write failure
			// is reported but cannot undo the commit.
			w.params.Logger.Errorw("failed to record audit entry",
				"wizard_id", w.id,
				"entry_id", entry.ID,
				"error", err)
			sentrySvc := sentry.NewSentryService(w.params.Config, w.params.Logger)
			sentrySvc.CaptureException(err)
		}
	} else {
		w.params.Logger.Errorw("audit entry invalid, not recorded",
			"wizard_id", w.id,
			"error", err)
	}

	if w.params.EventPublisher != nil {
		if payload, err := json.Marshal(dto.NewAuditEntryResponse(entry)); err == nil {
			if err := w.params.EventPublisher.Publish(ctx, pubsub.TopicAdjustmentCommitted, payload); err != nil {
				w.params.Logger.Warnw("failed to publish committed event",
					"wizard_id", w.id,
					"error", err)
			}
		}
	}

	w.params.Logger.Infow("adjustment committed",
		"wizard_id", w.id,
		"flow", job.flow,
		"tenant_id", job.tenant.ID,
		"audit_entry_id", entry.ID,
		"dismissed", w.state.Dismissed)

	// Reset and close: the draft is discarded now that it is applied.
	w.state.Reset()
	w.state.Phase = types.WizardPhaseCommitted

	onSuccess := w.opts.OnSuccess
	w.mu.Unlock()

	// The callback runs outside the lock so the host may immediately
	// query wizard status or open a fresh wizard from it.
	if onSuccess != nil {
		onSuccess()
	}
	job.outcome <- nil
}

// buildAuditEntry assembles the immutable record of the committed change.
func buildAuditEntry(w *Wizard, job *commitJob) *auditlog.Entry {
	entry := &auditlog.Entry{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_AUDIT_ENTRY),
		Timestamp:  time.Now().UTC(),
		ActorID:    job.actor,
		TenantID:   job.tenant.ID,
		TenantName: job.tenant.Name,
		Metadata: types.Metadata{
			"wizard_id": w.id,
		},
	}

	switch job.flow {
	case types.WizardFlowCredit:
		req := job.credit
		proj := billing.ProjectCredit(
			job.priorBalance,
			req.Amount,
			job.tenant.Amount,
			req.UsageRule,
			job.tenant.Currency,
			w.params.Config.LargeCreditThreshold(),
		)
		entry.Action = auditlog.ActionCreditIssued
		entry.PreviousValue = job.priorBalance.String()
		entry.NewValue = proj.NewBalance.String()
		entry.ReasonCode = req.ReasonCode
		entry.ReasonNotes = req.ReasonNotes
		entry.Deltas = map[string]decimal.Decimal{
			"credit_amount": proj.CreditAmount,
			"new_balance":   proj.NewBalance,
			"will_apply":    proj.WillApply,
			"remaining":     proj.Remaining,
		}
		entry.Metadata["request_id"] = req.ID
		entry.Metadata["idempotency_key"] = req.IdempotencyKey
	default:
		req := job.discount
		comp := billing.CalculateDiscount(req, job.tenant)
		entry.Action = auditlog.ActionDiscountApplied
		entry.PreviousValue = job.priorDiscount
		entry.NewValue = req.Descriptor().String()
		entry.ReasonCode = req.ReasonCode
		entry.ReasonNotes = req.ReasonNotes
		entry.Deltas = map[string]decimal.Decimal{
			"original_amount": comp.OriginalAmount,
			"discount_amount": comp.DiscountAmount,
			"final_amount":    comp.FinalAmount,
		}
		entry.Metadata["request_id"] = req.ID
		entry.Metadata["idempotency_key"] = req.IdempotencyKey
	}

	return entry
}
