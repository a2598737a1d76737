package workflow

import (
	"fmt"

	"repairshop-orders/internal/domain"
)

// Step is one screen of the linear order flow.
type Step int

const (
	StepDevice   Step = 1 // device cascade + routing mode
	StepCustomer Step = 2 // customer search / create
	StepOptions  Step = 3 // loaned device and service options
	StepPayment  Step = 4 // fees, deposit, submit
)

func (s Step) Valid() bool { return s >= StepDevice && s <= StepPayment }

// StepController gates advancement through the flow. There is no terminal
// step; the flow ends when the submitter reports the order saved.
type StepController struct {
	current Step
}

// NewStepController starts at step one, or at a restored step when resuming
// an in-progress draft.
func NewStepController(resume Step) *StepController {
	if !resume.Valid() {
		resume = StepDevice
	}
	return &StepController{current: resume}
}

func (c *StepController) Current() Step { return c.current }

// Missing lists the unmet requirements of the given step as field names.
func (c *StepController) Missing(step Step, d *OrderDraft) []string {
	var missing []string
	switch step {
	case StepDevice:
		if d.Device.TypeID == "" {
			missing = append(missing, "device.typeId")
		}
		if d.Device.BrandID == "" {
			missing = append(missing, "device.brandId")
		}
		if d.Device.ModelID == "" {
			missing = append(missing, "device.modelId")
		}
		if !d.Routing.Valid() {
			missing = append(missing, "routingMode")
		}
	case StepCustomer:
		if d.Customer == nil || d.Customer.ID == "" {
			missing = append(missing, "customer")
		}
	case StepOptions:
		// Loaned device is optional; nothing blocks here.
	case StepPayment:
		if !d.Routing.Valid() {
			missing = append(missing, "routingMode")
		}
	}
	return missing
}

// Checklist reports the unmet requirements of the current step.
func (c *StepController) Checklist(d *OrderDraft) []string {
	return c.Missing(c.current, d)
}

// Advance moves to the next step if the current step's requirements are met.
func (c *StepController) Advance(d *OrderDraft) error {
	if c.current >= StepPayment {
		return fmt.Errorf("already at the last step")
	}
	if missing := c.Missing(c.current, d); len(missing) > 0 {
		return fmt.Errorf("%w: %v", domain.ErrStepBlocked, missing)
	}
	c.current++
	return nil
}

// Back moves one step back. Going back is never guarded.
func (c *StepController) Back() {
	if c.current > StepDevice {
		c.current--
	}
}

// CanSubmit checks the final gate: a routing mode must be chosen so the
// customer total is resolvable. A zero total is allowed.
func (c *StepController) CanSubmit(d *OrderDraft) error {
	if !d.Routing.Valid() {
		return fmt.Errorf("%w: routingMode", domain.ErrStepBlocked)
	}
	return nil
}
