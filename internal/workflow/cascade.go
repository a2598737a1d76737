package workflow

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"repairshop-orders/internal/catalog"
	"repairshop-orders/internal/domain"
)

// CatalogService lists catalog entries for the dependent selection chain.
// Implementations return entries with their isActive flag; filtering happens
// in the view.
type CatalogService interface {
	ListDeviceTypes(ctx context.Context) ([]domain.DeviceType, error)
	ListBrands(ctx context.Context, typeID string) ([]domain.Brand, error)
	ListModels(ctx context.Context, brandID string) ([]domain.Model, error)
	ListParts(ctx context.Context, modelID string) ([]domain.Part, error)
}

// CascadeSelector drives the type -> brand -> model -> parts dependent
// selection for the primary device and the optional loaned device. An
// upstream change clears everything strictly downstream of it but never
// touches the part lines already on the draft.
type CascadeSelector struct {
	svc    CatalogService
	view   *catalog.View
	draft  *OrderDraft
	logger *logrus.Logger
}

func NewCascadeSelector(svc CatalogService, view *catalog.View, draft *OrderDraft, logger *logrus.Logger) *CascadeSelector {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &CascadeSelector{svc: svc, view: view, draft: draft, logger: logger}
}

// LoadDeviceTypes fetches the root option list.
func (s *CascadeSelector) LoadDeviceTypes(ctx context.Context) error {
	types, err := s.svc.ListDeviceTypes(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("cascade: device type fetch failed")
		s.view.PutDeviceTypes(nil)
		return fmt.Errorf("list device types: %w", err)
	}
	s.view.PutDeviceTypes(types)
	return nil
}

// SelectType picks the primary device type, resets brand and model, and
// refreshes the brand options. The strictly-downstream model and part option
// lists are cleared along with the selection. A fetch failure leaves the
// selection applied with an empty option list; the user retries by
// reselecting.
func (s *CascadeSelector) SelectType(ctx context.Context, id string) error {
	if err := s.draft.guard(); err != nil {
		return err
	}
	s.draft.Device = DeviceSelection{
		TypeID:   id,
		TypeName: s.view.DeviceTypeName(id),
	}
	s.view.ClearModelOptions(catalog.FacetModels)
	s.view.ClearPartOptions()
	return s.fetchBrands(ctx, catalog.FacetBrands, id)
}

// SelectBrand picks the primary brand, resets the model, and refreshes the
// model options. The previous model's part options are cleared; the
// accumulated parts stay so existing lines remain resolvable.
func (s *CascadeSelector) SelectBrand(ctx context.Context, id string) error {
	if err := s.draft.guard(); err != nil {
		return err
	}
	s.draft.Device.BrandID = id
	s.draft.Device.BrandName = s.view.BrandName(catalog.FacetBrands, id)
	s.draft.Device.ModelID = ""
	s.draft.Device.ModelName = ""
	s.view.ClearPartOptions()
	return s.fetchModels(ctx, catalog.FacetModels, id)
}

// SelectModel picks the primary model and loads its parts into the session
// catalog. Freshly fetched parts merge into the already loaded ones so
// existing lines stay resolvable.
func (s *CascadeSelector) SelectModel(ctx context.Context, id string) error {
	if err := s.draft.guard(); err != nil {
		return err
	}
	s.draft.Device.ModelID = id
	s.draft.Device.ModelName = s.view.ModelName(catalog.FacetModels, id)

	gen := s.view.NextGen(catalog.FacetParts)
	parts, err := s.svc.ListParts(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("modelId", id).Warn("cascade: part fetch failed")
		s.view.PutParts(gen, nil)
		return fmt.Errorf("list parts: %w", err)
	}
	if !s.view.PutParts(gen, parts) {
		s.logger.WithField("modelId", id).Debug("cascade: stale part fetch discarded")
	}
	return nil
}

// SelectLoanedType is the loaned-device equivalent of SelectType. The loaned
// cascade uses its own option facets and never loads parts.
func (s *CascadeSelector) SelectLoanedType(ctx context.Context, id string) error {
	if err := s.draft.guard(); err != nil {
		return err
	}
	s.draft.Loaned = DeviceSelection{
		TypeID:   id,
		TypeName: s.view.DeviceTypeName(id),
	}
	s.view.ClearModelOptions(catalog.FacetLoanedModels)
	return s.fetchBrands(ctx, catalog.FacetLoanedBrands, id)
}

func (s *CascadeSelector) SelectLoanedBrand(ctx context.Context, id string) error {
	if err := s.draft.guard(); err != nil {
		return err
	}
	s.draft.Loaned.BrandID = id
	s.draft.Loaned.BrandName = s.view.BrandName(catalog.FacetLoanedBrands, id)
	s.draft.Loaned.ModelID = ""
	s.draft.Loaned.ModelName = ""
	return s.fetchModels(ctx, catalog.FacetLoanedModels, id)
}

func (s *CascadeSelector) SelectLoanedModel(_ context.Context, id string) error {
	if err := s.draft.guard(); err != nil {
		return err
	}
	s.draft.Loaned.ModelID = id
	s.draft.Loaned.ModelName = s.view.ModelName(catalog.FacetLoanedModels, id)
	return nil
}

func (s *CascadeSelector) fetchBrands(ctx context.Context, f catalog.Facet, typeID string) error {
	gen := s.view.NextGen(f)
	brands, err := s.svc.ListBrands(ctx, typeID)
	if err != nil {
		s.logger.WithError(err).WithField("typeId", typeID).Warn("cascade: brand fetch failed")
		s.view.PutBrands(f, gen, nil)
		return fmt.Errorf("list brands: %w", err)
	}
	if !s.view.PutBrands(f, gen, brands) {
		s.logger.WithField("typeId", typeID).Debug("cascade: stale brand fetch discarded")
	}
	return nil
}

func (s *CascadeSelector) fetchModels(ctx context.Context, f catalog.Facet, brandID string) error {
	gen := s.view.NextGen(f)
	models, err := s.svc.ListModels(ctx, brandID)
	if err != nil {
		s.logger.WithError(err).WithField("brandId", brandID).Warn("cascade: model fetch failed")
		s.view.PutModels(f, gen, nil)
		return fmt.Errorf("list models: %w", err)
	}
	if !s.view.PutModels(f, gen, models) {
		s.logger.WithField("brandId", brandID).Debug("cascade: stale model fetch discarded")
	}
	return nil
}
