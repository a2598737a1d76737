package workflow

import (
	"testing"

	"repairshop-orders/internal/domain"
)

func TestPricingCentralPaymentFields(t *testing.T) {
	reg := linesAB(t)
	snap := ComputePricing(reg, twoPartCatalog(), domain.RoutingBranch, domain.Fees{}, 0)

	if snap.PartsTotal != 90 {
		t.Fatalf("expected partsTotal 90, got %d", snap.PartsTotal)
	}
	if snap.CentralPartsCost != snap.PartsTotal {
		t.Fatalf("centralPartsCost must restate partsTotal, got %d", snap.CentralPartsCost)
	}
	if snap.CentralServiceFeeTotal != 10 {
		t.Fatalf("expected centralServiceFeeTotal 10, got %d", snap.CentralServiceFeeTotal)
	}
	// Computed regardless of routing mode.
	if snap.TotalCentralPayment != 100 {
		t.Fatalf("expected totalCentralPayment 100, got %d", snap.TotalCentralPayment)
	}
}

func TestPricingCentralMode(t *testing.T) {
	reg := linesAB(t)
	fees := domain.Fees{BranchServiceFee: 25}
	snap := ComputePricing(reg, twoPartCatalog(), domain.RoutingCentral, fees, 20)

	if snap.CustomerTotal != 125 {
		t.Fatalf("expected customerTotal 125, got %d", snap.CustomerTotal)
	}
	if snap.RemainingAmount != 105 {
		t.Fatalf("expected remaining 105, got %d", snap.RemainingAmount)
	}
}

func TestPricingBranchMode(t *testing.T) {
	reg := linesAB(t)
	fees := domain.Fees{BranchServiceFee: 25, BranchProfit: 20}
	snap := ComputePricing(reg, twoPartCatalog(), domain.RoutingBranch, fees, 0)

	if snap.CustomerTotal != 135 {
		t.Fatalf("expected customerTotal 135, got %d", snap.CustomerTotal)
	}
	if snap.RemainingAmount != 135 {
		t.Fatalf("expected remaining 135, got %d", snap.RemainingAmount)
	}
}

func TestPricingRemainingNotClamped(t *testing.T) {
	var reg PartLineRegistry
	reg.AddLine()
	_ = reg.SetPartID(0, "a")
	res := mapResolver{"a": {ID: "a", UnitPrice: 75}}
	fees := domain.Fees{BranchServiceFee: 25}

	snap := ComputePricing(&reg, res, domain.RoutingCentral, fees, 150)
	if snap.CustomerTotal != 100 {
		t.Fatalf("expected customerTotal 100, got %d", snap.CustomerTotal)
	}
	// Deposit above the total stays negative; nothing clamps it.
	if snap.RemainingAmount != -50 {
		t.Fatalf("expected remaining -50, got %d", snap.RemainingAmount)
	}
}

func TestPricingModeSwitchLeavesLinesAlone(t *testing.T) {
	reg := linesAB(t)
	before := reg.Lines()

	_ = ComputePricing(reg, twoPartCatalog(), domain.RoutingCentral, domain.Fees{}, 0)
	_ = ComputePricing(reg, twoPartCatalog(), domain.RoutingBranch, domain.Fees{}, 0)

	after := reg.Lines()
	if len(before) != len(after) {
		t.Fatalf("line count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("line %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestPricingUnsetModeHasNoCustomerTotal(t *testing.T) {
	reg := linesAB(t)
	snap := ComputePricing(reg, twoPartCatalog(), "", domain.Fees{BranchServiceFee: 25}, 10)
	if snap.CustomerTotal != 0 {
		t.Fatalf("expected zero customerTotal without a mode, got %d", snap.CustomerTotal)
	}
	if snap.RemainingAmount != -10 {
		t.Fatalf("expected remaining -10, got %d", snap.RemainingAmount)
	}
}
