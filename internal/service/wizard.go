package service

import (
	"context"
	"sync"
	"time"

	"github.com/billforge/billforge/internal/api/dto"
	"github.com/billforge/billforge/internal/cache"
	"github.com/billforge/billforge/internal/domain/billing"
	"github.com/billforge/billforge/internal/domain/tenant"
	domainwizard "github.com/billforge/billforge/internal/domain/wizard"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
)

// WizardService opens adjustment wizard instances and serves the tenant
// read side they select from.
type WizardService interface {
	// NewDiscountWizard opens a wizard for the apply-discount flow.
	NewDiscountWizard(ctx context.Context, opts WizardOptions) *Wizard

	// NewCreditWizard opens a wizard for the issue-credit flow.
	NewCreditWizard(ctx context.Context, opts WizardOptions) *Wizard

	// GetTenant retrieves a tenant billing summary.
	GetTenant(ctx context.Context, id string) (*dto.TenantResponse, error)

	// ListTenants lists tenant billing summaries for the selection step.
	ListTenants(ctx context.Context, filter *types.TenantFilter) ([]*dto.TenantResponse, error)
}

// WizardOptions configures callbacks for a wizard instance.
type WizardOptions struct {
	// OnSuccess is invoked exactly once per successful commit, after the
	// audit entry is recorded. The host UI uses it to refresh list views.
	// It fires even if the dialog was dismissed while the commit was in
	// flight.
	OnSuccess func()
}

type wizardService struct {
	ServiceParams
}

// NewWizardService creates a new wizard service.
func NewWizardService(params ServiceParams) WizardService {
	return &wizardService{
		ServiceParams: params,
	}
}

func (s *wizardService) NewDiscountWizard(ctx context.Context, opts WizardOptions) *Wizard {
	return s.newWizard(ctx, types.WizardFlowDiscount, opts)
}

func (s *wizardService) NewCreditWizard(ctx context.Context, opts WizardOptions) *Wizard {
	return s.newWizard(ctx, types.WizardFlowCredit, opts)
}

func (s *wizardService) newWizard(ctx context.Context, flow types.WizardFlow, opts WizardOptions) *Wizard {
	w := &Wizard{
		id:     types.GenerateUUIDWithPrefix(types.UUID_PREFIX_WIZARD),
		params: s.ServiceParams,
		opts:   opts,
		state:  domainwizard.NewState(flow),
	}
	s.Logger.Debugw("opened adjustment wizard",
		"wizard_id", w.id,
		"flow", flow,
		"user_id", types.GetUserID(ctx))
	return w
}

func (s *wizardService) GetTenant(ctx context.Context, id string) (*dto.TenantResponse, error) {
	t, err := lookupTenant(ctx, s.ServiceParams, id)
	if err != nil {
		return nil, err
	}
	return dto.NewTenantResponse(t), nil
}

func (s *wizardService) ListTenants(ctx context.Context, filter *types.TenantFilter) ([]*dto.TenantResponse, error) {
	if filter == nil {
		filter = types.NewTenantFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	tenants, err := s.TenantRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.TenantResponse, len(tenants))
	for i, t := range tenants {
		responses[i] = dto.NewTenantResponse(t)
	}
	return responses, nil
}

// lookupTenant consults the tenant cache before falling back to the
// repository.
func lookupTenant(ctx context.Context, params ServiceParams, id string) (*tenant.Tenant, error) {
	cacheKey := "tenant:" + id
	if params.TenantCache != nil {
		if value, found := params.TenantCache.Get(ctx, cacheKey); found {
			if t, ok := cache.UnmarshalCacheValue[tenant.Tenant](value); ok {
				return t, nil
			}
		}
	}

	t, err := params.TenantRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.TenantCache != nil {
		params.TenantCache.Set(ctx, cacheKey, t, params.Config.Cache.Expiry)
	}
	return t, nil
}

// Wizard drives one open adjustment dialog. All commands are serialized by
// an internal mutex; the only concurrency is the single in-flight commit,
// whose completion re-acquires the mutex before touching state. The
// submitting phase is the mutual exclusion mechanism for commits: while it
// is set every command except Close is rejected.
type Wizard struct {
	id     string
	params ServiceParams
	opts   WizardOptions

	mu    sync.Mutex
	state *domainwizard.State
}

// ID returns the wizard instance ID.
func (w *Wizard) ID() string {
	return w.id
}

// Status reports the wizard's current step, phase, and cached step error.
func (w *Wizard) Status() *dto.WizardStatusResponse {
	w.mu.Lock()
	defer w.mu.Unlock()
	return dto.NewWizardStatusResponse(w.state)
}

// SelectTenant loads and attaches the tenant the adjustment targets. A
// tenant that cannot be found or is missing required billing fields is a
// structural failure; the wizard cannot proceed with it.
func (w *Wizard) SelectTenant(ctx context.Context, tenantID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireEditing(); err != nil {
		return err
	}

	t, err := lookupTenant(ctx, w.params, tenantID)
	if err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		w.params.Logger.Errorw("tenant unusable for adjustment",
			"wizard_id", w.id,
			"tenant_id", tenantID,
			"error", err)
		return err
	}

	w.state.SetTenant(t)
	delete(w.state.StepErrors, w.state.Step)
	return nil
}

// UpdateDiscountDraft applies a partial edit to the discount draft.
func (w *Wizard) UpdateDiscountDraft(ctx context.Context, req dto.UpdateDiscountDraftRequest) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireFlow(types.WizardFlowDiscount); err != nil {
		return err
	}
	if err := w.requireEditing(); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	req.Apply(w.state.Discount)
	return nil
}

// UpdateCreditDraft applies a partial edit to the credit draft.
func (w *Wizard) UpdateCreditDraft(ctx context.Context, req dto.UpdateCreditDraftRequest) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireFlow(types.WizardFlowCredit); err != nil {
		return err
	}
	if err := w.requireEditing(); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	req.Apply(w.state.Credit)
	return nil
}

// Next validates the current step and advances on success. On failure the
// step does not advance, the reason is cached for re-display, and the
// validation error is returned to the caller.
func (w *Wizard) Next(ctx context.Context) (*dto.WizardStatusResponse, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireEditing(); err != nil {
		return dto.NewWizardStatusResponse(w.state), err
	}
	if domainwizard.IsTerminalStep(w.state.Step) {
		return dto.NewWizardStatusResponse(w.state), ierr.NewError("already on confirmation step").
			WithHint("Use Submit on the confirmation step").
			Mark(ierr.ErrInvalidOperation)
	}

	if err := domainwizard.Validate(w.state); err != nil {
		w.state.StepErrors[w.state.Step] = ierr.Hint(err)
		w.params.Logger.Debugw("step validation failed",
			"wizard_id", w.id,
			"flow", w.state.Flow,
			"step", w.state.Step,
			"error", err)
		return dto.NewWizardStatusResponse(w.state), err
	}

	delete(w.state.StepErrors, w.state.Step)
	if domainwizard.CanTransition(w.state.Step, w.state.Step+1) {
		w.state.Step++
	}
	return dto.NewWizardStatusResponse(w.state), nil
}

// Back moves to the previous step. Always allowed while editing and never
// mutates already-entered fields.
func (w *Wizard) Back(ctx context.Context) (*dto.WizardStatusResponse, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireEditing(); err != nil {
		return dto.NewWizardStatusResponse(w.state), err
	}
	if domainwizard.CanTransition(w.state.Step, w.state.Step-1) {
		w.state.Step--
	}
	return dto.NewWizardStatusResponse(w.state), nil
}

// Confirm sets the confirmation checkbox on the terminal step.
func (w *Wizard) Confirm(ctx context.Context, confirmed bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireEditing(); err != nil {
		return err
	}
	if !domainwizard.IsTerminalStep(w.state.Step) {
		return ierr.NewError("confirmation is only available on the final step").
			WithHint("Complete the previous steps first").
			Mark(ierr.ErrInvalidOperation)
	}

	w.state.SetConfirmed(confirmed)
	return nil
}

// DiscountPreview recomputes the discount projection from current inputs.
func (w *Wizard) DiscountPreview(ctx context.Context) (*dto.DiscountPreviewResponse, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireFlow(types.WizardFlowDiscount); err != nil {
		return nil, err
	}
	if w.state.Tenant == nil {
		return nil, ierr.NewError("no tenant selected").
			WithHint("Please select a tenant").
			Mark(ierr.ErrValidation)
	}

	comp := billing.CalculateDiscount(w.state.Discount, w.state.Tenant)
	return dto.NewDiscountPreviewResponse(w.state.Tenant, comp), nil
}

// CreditPreview recomputes the credit projection from current inputs.
func (w *Wizard) CreditPreview(ctx context.Context) (*dto.CreditPreviewResponse, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireFlow(types.WizardFlowCredit); err != nil {
		return nil, err
	}
	if w.state.Tenant == nil {
		return nil, ierr.NewError("no tenant selected").
			WithHint("Please select a tenant").
			Mark(ierr.ErrValidation)
	}

	t := w.state.Tenant
	proj := billing.ProjectCredit(
		t.CreditBalance,
		w.state.Credit.Amount,
		t.Amount,
		w.state.Credit.UsageRule,
		t.Currency,
		w.params.Config.LargeCreditThreshold(),
	)
	return dto.NewCreditPreviewResponse(t, w.state.Credit.UsageRule, proj), nil
}

// Close dismisses the dialog. While a commit is in flight the wizard is
// only marked dismissed: the outcome still arrives and is fully processed.
// Otherwise the entire draft is discarded.
func (w *Wizard) Close(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Phase == types.WizardPhaseSubmitting {
		w.state.Dismissed = true
		w.params.Logger.Infow("wizard dismissed with commit in flight",
			"wizard_id", w.id,
			"flow", w.state.Flow)
		return nil
	}

	w.state.Reset()
	w.state.Phase = types.WizardPhaseDiscarded
	return nil
}

func (w *Wizard) requireEditing() error {
	switch w.state.Phase {
	case types.WizardPhaseEditing:
		return nil
	case types.WizardPhaseSubmitting:
		return ierr.NewError("commit in flight").
			WithHint("The adjustment is being submitted, please wait").
			Mark(ierr.ErrInvalidOperation)
	default:
		return ierr.NewError("wizard is closed").
			WithHint("This wizard has finished, open a new one").
			WithReportableDetails(map[string]interface{}{
				"phase": w.state.Phase,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
}

func (w *Wizard) requireFlow(flow types.WizardFlow) error {
	if w.state.Flow != flow {
		return ierr.NewError("command does not match wizard flow").
			WithReportableDetails(map[string]interface{}{
				"flow":     w.state.Flow,
				"expected": flow,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

// commitDeadline returns the bounded wait applied to a commit attempt.
func (w *Wizard) commitDeadline() time.Duration {
	if w.params.Config != nil && w.params.Config.Wizard.CommitTimeout > 0 {
		return w.params.Config.Wizard.CommitTimeout
	}
	return 30 * time.Second
}
