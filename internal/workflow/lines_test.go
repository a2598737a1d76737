package workflow

import (
	"testing"

	"repairshop-orders/internal/domain"
)

// mapResolver backs tests with a fixed part catalog.
type mapResolver map[string]domain.Part

func (m mapResolver) ResolvePart(id string) (domain.Part, bool) {
	p, ok := m[id]
	return p, ok
}

func twoPartCatalog() mapResolver {
	return mapResolver{
		"a": {ID: "a", Name: "Part A", UnitPrice: 50, UnitServiceFee: 10},
		"b": {ID: "b", Name: "Part B", UnitPrice: 20, UnitServiceFee: 0},
	}
}

func linesAB(t *testing.T) *PartLineRegistry {
	t.Helper()
	var reg PartLineRegistry
	reg.AddLine()
	reg.AddLine()
	if err := reg.SetPartID(0, "a"); err != nil {
		t.Fatalf("set part a: %v", err)
	}
	if err := reg.SetPartID(1, "b"); err != nil {
		t.Fatalf("set part b: %v", err)
	}
	if err := reg.SetQuantity(1, 2); err != nil {
		t.Fatalf("set qty: %v", err)
	}
	return &reg
}

func TestAddLineStartsAtQuantityOne(t *testing.T) {
	var reg PartLineRegistry
	idx := reg.AddLine()
	if idx != 0 {
		t.Fatalf("expected index 0, got %d", idx)
	}
	if got := reg.Lines()[0].Quantity; got != 1 {
		t.Fatalf("expected quantity 1, got %d", got)
	}
}

func TestSetQuantityClampsToOne(t *testing.T) {
	var reg PartLineRegistry
	reg.AddLine()
	if err := reg.SetQuantity(0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := reg.Lines()[0].Quantity; got != 1 {
		t.Fatalf("expected clamp to 1, got %d", got)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	var reg PartLineRegistry
	if err := reg.RemoveLine(0); err == nil {
		t.Fatalf("expected error removing from empty registry")
	}
	if err := reg.SetPartID(2, "a"); err == nil {
		t.Fatalf("expected error on bad index")
	}
	if err := reg.SetQuantity(-1, 3); err == nil {
		t.Fatalf("expected error on negative index")
	}
}

func TestPartsTotal(t *testing.T) {
	reg := linesAB(t)
	// A: 50x1, B: 20x2
	if got := reg.PartsTotal(twoPartCatalog()); got != 90 {
		t.Fatalf("expected parts total 90, got %d", got)
	}
}

func TestServiceFeeTotalIgnoresQuantity(t *testing.T) {
	reg := linesAB(t)
	// Fee charged once per line: 10 + 0, not 10 + 0x2.
	if got := reg.ServiceFeeTotal(twoPartCatalog()); got != 10 {
		t.Fatalf("expected service fee total 10, got %d", got)
	}
}

func TestUnresolvedLineContributesZero(t *testing.T) {
	reg := linesAB(t)
	reg.AddLine()
	if err := reg.SetPartID(2, "gone"); err != nil {
		t.Fatalf("set part: %v", err)
	}
	if got := reg.PartsTotal(twoPartCatalog()); got != 90 {
		t.Fatalf("unresolved line should add nothing, got %d", got)
	}
	if got := reg.ServiceFeeTotal(twoPartCatalog()); got != 10 {
		t.Fatalf("unresolved line should add no fee, got %d", got)
	}
}

func TestRemoveLineKeepsOrder(t *testing.T) {
	reg := linesAB(t)
	if err := reg.RemoveLine(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	lines := reg.Lines()
	if len(lines) != 1 || lines[0].PartID != "b" {
		t.Fatalf("unexpected lines after remove: %+v", lines)
	}
}

func TestResolvedItemsSnapshotsNamesAndPrices(t *testing.T) {
	reg := linesAB(t)
	reg.AddLine()
	_ = reg.SetPartID(2, "gone")

	items := reg.ResolvedItems(twoPartCatalog())
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Name != "Part A" || items[0].UnitPrice != 50 || items[0].Quantity != 1 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[2].Name != "" || items[2].UnitPrice != 0 {
		t.Fatalf("unresolved item should be zero-valued: %+v", items[2])
	}
}
