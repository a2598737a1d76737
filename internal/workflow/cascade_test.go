package workflow

import (
	"context"
	"errors"
	"testing"

	"repairshop-orders/internal/catalog"
	"repairshop-orders/internal/domain"
)

type stubCatalog struct {
	types  []domain.DeviceType
	brands map[string][]domain.Brand
	models map[string][]domain.Model
	parts  map[string][]domain.Part

	typesErr  error
	brandsErr error
	modelsErr error
	partsErr  error
}

func (s *stubCatalog) ListDeviceTypes(_ context.Context) ([]domain.DeviceType, error) {
	return s.types, s.typesErr
}

func (s *stubCatalog) ListBrands(_ context.Context, typeID string) ([]domain.Brand, error) {
	if s.brandsErr != nil {
		return nil, s.brandsErr
	}
	return s.brands[typeID], nil
}

func (s *stubCatalog) ListModels(_ context.Context, brandID string) ([]domain.Model, error) {
	if s.modelsErr != nil {
		return nil, s.modelsErr
	}
	return s.models[brandID], nil
}

func (s *stubCatalog) ListParts(_ context.Context, modelID string) ([]domain.Part, error) {
	if s.partsErr != nil {
		return nil, s.partsErr
	}
	return s.parts[modelID], nil
}

func phoneCatalog() *stubCatalog {
	return &stubCatalog{
		types: []domain.DeviceType{{ID: "t1", Name: "Phone", IsActive: true}},
		brands: map[string][]domain.Brand{
			"t1": {
				{ID: "apple", Name: "Apple", IsActive: true},
				{ID: "samsung", Name: "Samsung", IsActive: true},
			},
		},
		models: map[string][]domain.Model{
			"apple":   {{ID: "ip14", Name: "iPhone 14", IsActive: true}},
			"samsung": {{ID: "s23", Name: "Galaxy S23", IsActive: true}},
		},
		parts: map[string][]domain.Part{
			"ip14": {{ID: "scr14", ModelID: "ip14", Name: "iPhone 14 Screen", UnitPrice: 120, UnitServiceFee: 15, IsActive: true}},
			"s23":  {{ID: "scr23", ModelID: "s23", Name: "S23 Screen", UnitPrice: 140, UnitServiceFee: 20, IsActive: true}},
		},
	}
}

func newCascadeFixture(svc CatalogService) (*CascadeSelector, *OrderDraft, *catalog.View) {
	draft := NewDraft()
	view := catalog.NewView()
	return NewCascadeSelector(svc, view, draft, nil), draft, view
}

func selectFullDevice(t *testing.T, sel *CascadeSelector) {
	t.Helper()
	ctx := context.Background()
	if err := sel.LoadDeviceTypes(ctx); err != nil {
		t.Fatalf("load types: %v", err)
	}
	if err := sel.SelectType(ctx, "t1"); err != nil {
		t.Fatalf("select type: %v", err)
	}
	if err := sel.SelectBrand(ctx, "apple"); err != nil {
		t.Fatalf("select brand: %v", err)
	}
	if err := sel.SelectModel(ctx, "ip14"); err != nil {
		t.Fatalf("select model: %v", err)
	}
}

func TestCascadeSelectionCapturesNames(t *testing.T) {
	sel, draft, _ := newCascadeFixture(phoneCatalog())
	selectFullDevice(t, sel)

	d := draft.Device
	if d.TypeName != "Phone" || d.BrandName != "Apple" || d.ModelName != "iPhone 14" {
		t.Fatalf("names not captured: %+v", d)
	}
	if !d.Complete() {
		t.Fatalf("expected complete device selection")
	}
}

func TestUpstreamChangeClearsDownstream(t *testing.T) {
	sel, draft, _ := newCascadeFixture(phoneCatalog())
	selectFullDevice(t, sel)

	if err := sel.SelectBrand(context.Background(), "samsung"); err != nil {
		t.Fatalf("select brand: %v", err)
	}
	if draft.Device.ModelID != "" || draft.Device.ModelName != "" {
		t.Fatalf("model should be cleared, got %+v", draft.Device)
	}
	if draft.Device.BrandName != "Samsung" {
		t.Fatalf("brand name not captured, got %q", draft.Device.BrandName)
	}
}

func TestTypeChangeClearsBrandAndModel(t *testing.T) {
	sel, draft, _ := newCascadeFixture(phoneCatalog())
	selectFullDevice(t, sel)

	if err := sel.SelectType(context.Background(), "t1"); err != nil {
		t.Fatalf("select type: %v", err)
	}
	if draft.Device.BrandID != "" || draft.Device.ModelID != "" {
		t.Fatalf("downstream ids should be cleared, got %+v", draft.Device)
	}
}

func TestBrandChangeClearsPartOptions(t *testing.T) {
	sel, _, view := newCascadeFixture(phoneCatalog())
	selectFullDevice(t, sel)

	if got := view.PartOptions(); len(got) != 1 {
		t.Fatalf("expected part options for ip14, got %+v", got)
	}

	if err := sel.SelectBrand(context.Background(), "samsung"); err != nil {
		t.Fatalf("select brand: %v", err)
	}
	if got := view.PartOptions(); len(got) != 0 {
		t.Fatalf("part options should be cleared after brand change, got %+v", got)
	}
	// The accumulated catalog still resolves the old part.
	if _, ok := view.ResolvePart("scr14"); !ok {
		t.Fatalf("old part should stay resolvable")
	}
}

func TestTypeChangeClearsDownstreamOptions(t *testing.T) {
	sel, _, view := newCascadeFixture(phoneCatalog())
	selectFullDevice(t, sel)

	if err := sel.SelectType(context.Background(), "t1"); err != nil {
		t.Fatalf("select type: %v", err)
	}
	if got := view.Models(catalog.FacetModels); len(got) != 0 {
		t.Fatalf("model options should be cleared after type change, got %+v", got)
	}
	if got := view.PartOptions(); len(got) != 0 {
		t.Fatalf("part options should be cleared after type change, got %+v", got)
	}
}

func TestBrandChangeNeverClearsLines(t *testing.T) {
	sel, draft, view := newCascadeFixture(phoneCatalog())
	selectFullDevice(t, sel)

	idx := draft.Lines.AddLine()
	if err := draft.Lines.SetPartID(idx, "scr14"); err != nil {
		t.Fatalf("set part: %v", err)
	}

	if err := sel.SelectBrand(context.Background(), "samsung"); err != nil {
		t.Fatalf("select brand: %v", err)
	}
	if err := sel.SelectModel(context.Background(), "s23"); err != nil {
		t.Fatalf("select model: %v", err)
	}

	if draft.Lines.Len() != 1 {
		t.Fatalf("lines must survive cascade changes, got %d", draft.Lines.Len())
	}
	// The part fetched for the earlier model stays resolvable after the switch.
	if got := draft.Lines.PartsTotal(view); got != 120 {
		t.Fatalf("expected old part still priced at 120, got %d", got)
	}
}

func TestBrandFetchFailureDegradesToEmpty(t *testing.T) {
	svc := phoneCatalog()
	svc.brandsErr = errors.New("catalog down")
	sel, draft, view := newCascadeFixture(svc)

	ctx := context.Background()
	if err := sel.LoadDeviceTypes(ctx); err != nil {
		t.Fatalf("load types: %v", err)
	}
	err := sel.SelectType(ctx, "t1")
	if err == nil {
		t.Fatalf("expected fetch error")
	}
	// Selection sticks, options degrade to empty; reselecting retries.
	if draft.Device.TypeID != "t1" {
		t.Fatalf("selection should be applied, got %+v", draft.Device)
	}
	if got := view.Brands(catalog.FacetBrands); len(got) != 0 {
		t.Fatalf("expected empty brand options, got %+v", got)
	}

	svc.brandsErr = nil
	if err := sel.SelectType(ctx, "t1"); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	if got := view.Brands(catalog.FacetBrands); len(got) != 2 {
		t.Fatalf("expected brands after retry, got %+v", got)
	}
}

func TestLoanedCascadeIndependentOfPrimary(t *testing.T) {
	sel, draft, view := newCascadeFixture(phoneCatalog())
	selectFullDevice(t, sel)

	ctx := context.Background()
	if err := sel.SelectLoanedType(ctx, "t1"); err != nil {
		t.Fatalf("select loaned type: %v", err)
	}
	if err := sel.SelectLoanedBrand(ctx, "samsung"); err != nil {
		t.Fatalf("select loaned brand: %v", err)
	}
	if err := sel.SelectLoanedModel(ctx, "s23"); err != nil {
		t.Fatalf("select loaned model: %v", err)
	}

	if draft.Loaned.ModelName != "Galaxy S23" {
		t.Fatalf("loaned names not captured: %+v", draft.Loaned)
	}
	// Primary selection and options untouched.
	if draft.Device.ModelID != "ip14" {
		t.Fatalf("primary selection changed: %+v", draft.Device)
	}
	if got := view.Models(catalog.FacetModels); len(got) != 1 || got[0].ID != "ip14" {
		t.Fatalf("primary model options changed: %+v", got)
	}
}

func TestLoanedGivenToggleClearsSelection(t *testing.T) {
	sel, draft, _ := newCascadeFixture(phoneCatalog())
	selectFullDevice(t, sel)

	if err := draft.SetLoanedGiven(true); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	ctx := context.Background()
	_ = sel.SelectLoanedType(ctx, "t1")
	_ = sel.SelectLoanedBrand(ctx, "apple")
	_ = sel.SelectLoanedModel(ctx, "ip14")

	if err := draft.SetLoanedGiven(false); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if draft.Loaned != (DeviceSelection{}) {
		t.Fatalf("loaned selection should be fully cleared, got %+v", draft.Loaned)
	}
}
