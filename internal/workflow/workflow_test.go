package workflow

import (
	"context"
	"errors"
	"testing"

	"repairshop-orders/internal/domain"
)

func TestWorkflowEndToEnd(t *testing.T) {
	orders := &stubOrders{created: &domain.Order{ID: "o1", OrderNumber: "R-1001"}}
	wf := New(Deps{Catalog: phoneCatalog(), Orders: orders}, 0)
	ctx := context.Background()

	if err := wf.Cascade.LoadDeviceTypes(ctx); err != nil {
		t.Fatalf("load types: %v", err)
	}
	if err := wf.Cascade.SelectType(ctx, "t1"); err != nil {
		t.Fatalf("select type: %v", err)
	}
	if err := wf.Cascade.SelectBrand(ctx, "apple"); err != nil {
		t.Fatalf("select brand: %v", err)
	}
	if err := wf.Cascade.SelectModel(ctx, "ip14"); err != nil {
		t.Fatalf("select model: %v", err)
	}
	if err := wf.Draft.SetRouting(domain.RoutingCentral); err != nil {
		t.Fatalf("set routing: %v", err)
	}
	if err := wf.Steps.Advance(wf.Draft); err != nil {
		t.Fatalf("advance to customer: %v", err)
	}
	if err := wf.Draft.SetCustomer(&domain.Customer{ID: "c1", Name: "Ada"}); err != nil {
		t.Fatalf("set customer: %v", err)
	}
	if err := wf.Steps.Advance(wf.Draft); err != nil {
		t.Fatalf("advance to options: %v", err)
	}
	if err := wf.Steps.Advance(wf.Draft); err != nil {
		t.Fatalf("advance to payment: %v", err)
	}

	idx := wf.Draft.Lines.AddLine()
	if err := wf.Draft.Lines.SetPartID(idx, "scr14"); err != nil {
		t.Fatalf("set part: %v", err)
	}
	if err := wf.Draft.SetBranchServiceFee(25); err != nil {
		t.Fatalf("set fee: %v", err)
	}
	if err := wf.Draft.SetDeposit(20); err != nil {
		t.Fatalf("set deposit: %v", err)
	}

	// central: 120 + 15 + 25 = 160
	snap := wf.Pricing()
	if snap.CustomerTotal != 160 || snap.RemainingAmount != 140 {
		t.Fatalf("unexpected pricing: %+v", snap)
	}

	saved, err := wf.Submit(ctx, testBranch())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if saved.OrderNumber != "R-1001" {
		t.Fatalf("unexpected order: %+v", saved)
	}
	if orders.lastPayload.Payment.Amount != 160 {
		t.Fatalf("payload amount mismatch: %+v", orders.lastPayload.Payment)
	}
	if wf.Draft.Status != domain.StatusSaved {
		t.Fatalf("draft not saved: %s", wf.Draft.Status)
	}
}

func TestWorkflowSubmitGate(t *testing.T) {
	wf := New(Deps{Catalog: phoneCatalog(), Orders: &stubOrders{}}, 0)
	if _, err := wf.Submit(context.Background(), testBranch()); !errors.Is(err, domain.ErrStepBlocked) {
		t.Fatalf("expected submit gate, got %v", err)
	}
}

func TestNewForOrderHydrates(t *testing.T) {
	order := &domain.Order{
		ID:          "o5",
		OrderNumber: "R-500",
		OrderPayload: domain.OrderPayload{
			CustomerID:       "c1",
			CustomerName:     "Ada",
			Device:           domain.DeviceRef{TypeID: "t1", BrandID: "apple", ModelID: "ip14"},
			IsCentralService: true,
			Items:            []domain.OrderItem{{PartID: "scr14", Quantity: 1}},
		},
	}
	orders := &stubOrders{fetched: order, updated: &domain.Order{ID: "o5", OrderNumber: "R-500"}}

	wf, err := NewForOrder(context.Background(), Deps{Catalog: phoneCatalog(), Orders: orders}, "o5", StepPayment)
	if err != nil {
		t.Fatalf("new for order: %v", err)
	}
	if wf.Steps.Current() != StepPayment {
		t.Fatalf("expected resume at payment, got %d", wf.Steps.Current())
	}
	if wf.EditOrderID != "o5" {
		t.Fatalf("edit id not kept: %q", wf.EditOrderID)
	}

	// Submitting the edited draft goes through update.
	if _, err := wf.Submit(context.Background(), testBranch()); err != nil {
		t.Fatalf("submit edit: %v", err)
	}
	if orders.lastID != "o5" {
		t.Fatalf("expected update of o5, got %q", orders.lastID)
	}
}

func TestNewForOrderFetchError(t *testing.T) {
	orders := &stubOrders{fetchErr: domain.ErrNotFound}
	if _, err := NewForOrder(context.Background(), Deps{Orders: orders}, "nope", 0); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
