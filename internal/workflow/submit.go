package workflow

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"repairshop-orders/internal/domain"
)

// SubmitMode selects between creating a new order and updating an existing one.
type SubmitMode string

const (
	SubmitCreate SubmitMode = "create"
	SubmitEdit   SubmitMode = "edit"
)

// OrderService persists assembled orders.
type OrderService interface {
	Create(ctx context.Context, payload domain.OrderPayload) (*domain.Order, error)
	Update(ctx context.Context, id string, payload domain.OrderPayload) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

// Submitter drives the Draft -> Submitting -> Saved | Failed lifecycle. A
// failed submit returns the draft to an editable state; a second submit while
// one is in flight is a guarded no-op.
type Submitter struct {
	orders OrderService
	logger *logrus.Logger
}

func NewSubmitter(orders OrderService, logger *logrus.Logger) *Submitter {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Submitter{orders: orders, logger: logger}
}

// AssemblePayload snapshots the draft into the flat order payload: ids plus
// the denormalized names, line items resolved against the session catalog,
// the full pricing snapshot, and the branch context passed in explicitly.
func AssemblePayload(d *OrderDraft, res PartResolver, branch domain.BranchSnapshot) domain.OrderPayload {
	pricing := ComputePricing(&d.Lines, res, d.Routing, d.Fees, d.Deposit)

	payload := domain.OrderPayload{
		Items:               d.Lines.ResolvedItems(res),
		Device:              d.Device.Ref(),
		IsLoanedDeviceGiven: d.LoanedGiven,
		IsCentralService:    d.Routing == domain.RoutingCentral,
		CentralPartPrices:   pricing.CentralPartsCost,
		CentralServiceFee:   d.Fees.CentralServiceFee,
		BranchServiceFee:    d.Fees.BranchServiceFee,
		BranchPartProfit:    d.Fees.BranchProfit,
		TotalCentralPayment: pricing.TotalCentralPayment,
		Payment: domain.Payment{
			Method:          d.PaymentMethod,
			Amount:          pricing.CustomerTotal,
			DepositAmount:   d.Deposit,
			RemainingAmount: pricing.RemainingAmount,
		},
		Branch: branch,
	}

	if d.Customer != nil {
		payload.CustomerID = d.Customer.ID
		payload.CustomerName = d.Customer.Name
		payload.CustomerPhone = d.Customer.Phone
		payload.CustomerEmail = d.Customer.Email
	}
	if d.LoanedGiven {
		ref := d.Loaned.Ref()
		payload.LoanedDevice = &ref
	}

	return payload
}

// Submit assembles the payload and calls create or update. The server may
// omit the denormalized names in its response, so the locally assembled
// payload is merged back in instead of being discarded.
func (s *Submitter) Submit(ctx context.Context, d *OrderDraft, res PartResolver, branch domain.BranchSnapshot, mode SubmitMode, existingOrderID string) (*domain.Order, error) {
	switch d.Status {
	case domain.StatusSubmitting:
		return nil, domain.ErrSubmitInFlight
	case domain.StatusSaved:
		return nil, domain.ErrOrderSaved
	}
	if mode == SubmitEdit && existingOrderID == "" {
		return nil, fmt.Errorf("edit submit requires an order id")
	}

	payload := AssemblePayload(d, res, branch)
	d.Status = domain.StatusSubmitting

	var (
		saved *domain.Order
		err   error
	)
	if mode == SubmitEdit {
		saved, err = s.orders.Update(ctx, existingOrderID, payload)
	} else {
		saved, err = s.orders.Create(ctx, payload)
	}
	if err != nil {
		d.Status = domain.StatusFailed
		s.logger.WithError(err).WithField("mode", mode).Error("order submit failed")
		return nil, fmt.Errorf("submit order: %w", err)
	}

	merged := *saved
	merged.OrderPayload = payload

	d.Status = domain.StatusSaved
	d.SavedID = merged.ID
	d.OrderNumber = merged.OrderNumber
	s.logger.WithFields(logrus.Fields{
		"orderId":     merged.ID,
		"orderNumber": merged.OrderNumber,
		"mode":        mode,
	}).Info("order saved")
	return &merged, nil
}

// HydrateDraft maps a persisted order back into the draft shape for edit
// mode. Line prices are not carried over; they resolve against the catalog
// loaded in the editing session.
func HydrateDraft(order *domain.Order) *OrderDraft {
	d := NewDraft()
	if order == nil {
		return d
	}

	if order.CustomerID != "" {
		d.Customer = &domain.Customer{
			ID:    order.CustomerID,
			Name:  order.CustomerName,
			Phone: order.CustomerPhone,
			Email: order.CustomerEmail,
		}
	}

	d.Device = selectionFromRef(order.Device)
	d.LoanedGiven = order.IsLoanedDeviceGiven
	if order.IsLoanedDeviceGiven && order.LoanedDevice != nil {
		d.Loaned = selectionFromRef(*order.LoanedDevice)
	}

	if order.IsCentralService {
		d.Routing = domain.RoutingCentral
	} else {
		d.Routing = domain.RoutingBranch
	}
	d.Fees = domain.Fees{
		BranchServiceFee:  order.BranchServiceFee,
		CentralServiceFee: order.CentralServiceFee,
		BranchProfit:      order.BranchPartProfit,
	}
	d.Deposit = order.Payment.DepositAmount
	d.PaymentMethod = order.Payment.Method

	for i, item := range order.Items {
		d.Lines.AddLine()
		_ = d.Lines.SetPartID(i, item.PartID)
		_ = d.Lines.SetQuantity(i, item.Quantity)
	}

	return d
}

func selectionFromRef(ref domain.DeviceRef) DeviceSelection {
	return DeviceSelection{
		TypeID:    ref.TypeID,
		BrandID:   ref.BrandID,
		ModelID:   ref.ModelID,
		TypeName:  ref.TypeName,
		BrandName: ref.BrandName,
		ModelName: ref.ModelName,
	}
}
