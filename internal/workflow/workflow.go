package workflow

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"repairshop-orders/internal/catalog"
	"repairshop-orders/internal/domain"
)

// Workflow composes the order-editing core for one draft: the draft record,
// the session catalog view, the cascade selector, the step controller and the
// submitter. One Workflow serves exactly one logical flow; callers serialize
// access to it.
type Workflow struct {
	Draft   *OrderDraft
	View    *catalog.View
	Cascade *CascadeSelector
	Steps   *StepController

	submitter *Submitter

	// Edit mode keeps the id of the order being reworked.
	EditOrderID string
}

// Deps are the external collaborators the workflow consumes.
type Deps struct {
	Catalog CatalogService
	Orders  OrderService
	Logger  *logrus.Logger
}

// New starts a create-mode workflow at the first step, or at the supplied
// resume step.
func New(deps Deps, resume Step) *Workflow {
	return build(deps, NewDraft(), resume, "")
}

// NewForOrder starts an edit-mode workflow hydrated from a persisted order.
func NewForOrder(ctx context.Context, deps Deps, orderID string, resume Step) (*Workflow, error) {
	order, err := deps.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return build(deps, HydrateDraft(order), resume, orderID), nil
}

func build(deps Deps, draft *OrderDraft, resume Step, editOrderID string) *Workflow {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	view := catalog.NewView()
	return &Workflow{
		Draft:       draft,
		View:        view,
		Cascade:     NewCascadeSelector(deps.Catalog, view, draft, logger),
		Steps:       NewStepController(resume),
		submitter:   NewSubmitter(deps.Orders, logger),
		EditOrderID: editOrderID,
	}
}

// Pricing recomputes the snapshot from the current draft state.
func (w *Workflow) Pricing() domain.PricingSnapshot {
	return ComputePricing(&w.Draft.Lines, w.View, w.Draft.Routing, w.Draft.Fees, w.Draft.Deposit)
}

// Submit runs the final gate and hands the draft to the submitter. The branch
// snapshot is passed in explicitly rather than read from ambient state.
func (w *Workflow) Submit(ctx context.Context, branch domain.BranchSnapshot) (*domain.Order, error) {
	if err := w.Steps.CanSubmit(w.Draft); err != nil {
		return nil, err
	}
	mode := SubmitCreate
	if w.EditOrderID != "" {
		mode = SubmitEdit
	}
	return w.submitter.Submit(ctx, w.Draft, w.View, branch, mode, w.EditOrderID)
}
