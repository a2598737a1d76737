package catalog

import (
	"sort"

	"repairshop-orders/internal/domain"
)

// Facet identifies one dependent option list in the cascade. The primary and
// loaned device selections keep separate brand/model facets so one cannot
// clobber the other's options.
type Facet int

const (
	FacetBrands Facet = iota
	FacetModels
	FacetParts
	FacetLoanedBrands
	FacetLoanedModels
	facetCount
)

// View is the read-only projection of catalog entries loaded during one
// editing session. Option lists are replaced per fetch, but parts accumulate
// for the whole session: a line referencing a part fetched for an earlier
// model must stay resolvable after the model changes.
//
// Each facet carries a generation counter. A fetch takes a generation before
// starting and the result is applied only if no newer fetch was issued for
// the same facet in the meantime, so the latest selection always wins over a
// slow earlier response.
//
// View is owned by a single workflow session and is not safe for concurrent
// use; the session serializes access.
type View struct {
	gens    [facetCount]uint64
	applied [facetCount]uint64

	deviceTypes  []domain.DeviceType
	brands       []domain.Brand
	models       []domain.Model
	loanedBrands []domain.Brand
	loanedModels []domain.Model

	parts        map[string]domain.Part
	modelPartIDs []string
}

func NewView() *View {
	return &View{parts: make(map[string]domain.Part)}
}

// NextGen reserves a generation for an upcoming fetch on the facet.
func (v *View) NextGen(f Facet) uint64 {
	v.gens[f]++
	return v.gens[f]
}

func (v *View) stale(f Facet, gen uint64) bool {
	if gen < v.gens[f] || gen < v.applied[f] {
		return true
	}
	v.applied[f] = gen
	return false
}

// PutDeviceTypes replaces the device type options. Inactive entries are
// dropped; types are not part of any cascade so no generation applies.
func (v *View) PutDeviceTypes(types []domain.DeviceType) {
	v.deviceTypes = v.deviceTypes[:0]
	for _, t := range types {
		if t.IsActive {
			v.deviceTypes = append(v.deviceTypes, t)
		}
	}
}

// PutBrands applies a brand fetch result. Returns false when the result is
// stale and was discarded.
func (v *View) PutBrands(f Facet, gen uint64, brands []domain.Brand) bool {
	if v.stale(f, gen) {
		return false
	}
	active := activeBrands(brands)
	if f == FacetLoanedBrands {
		v.loanedBrands = active
	} else {
		v.brands = active
	}
	return true
}

func (v *View) PutModels(f Facet, gen uint64, models []domain.Model) bool {
	if v.stale(f, gen) {
		return false
	}
	active := make([]domain.Model, 0, len(models))
	for _, m := range models {
		if m.IsActive {
			active = append(active, m)
		}
	}
	if f == FacetLoanedModels {
		v.loanedModels = active
	} else {
		v.models = active
	}
	return true
}

// PutParts merges a part fetch into the session catalog. Previously loaded
// parts are kept so existing line references survive model changes; only the
// current-model option list is replaced.
func (v *View) PutParts(gen uint64, parts []domain.Part) bool {
	if v.stale(FacetParts, gen) {
		return false
	}
	v.modelPartIDs = v.modelPartIDs[:0]
	for _, p := range parts {
		if !p.IsActive {
			continue
		}
		v.parts[p.ID] = p
		v.modelPartIDs = append(v.modelPartIDs, p.ID)
	}
	return true
}

// ClearModelOptions empties a model option list and invalidates any model
// fetch still in flight for the facet.
func (v *View) ClearModelOptions(f Facet) {
	v.gens[f]++
	if f == FacetLoanedModels {
		v.loanedModels = nil
	} else {
		v.models = nil
	}
}

// ClearPartOptions empties the current-model part option list and invalidates
// any part fetch still in flight. The accumulated parts map is untouched, so
// existing line references stay resolvable.
func (v *View) ClearPartOptions() {
	v.gens[FacetParts]++
	v.modelPartIDs = v.modelPartIDs[:0]
}

func (v *View) DeviceTypes() []domain.DeviceType { return v.deviceTypes }

func (v *View) Brands(f Facet) []domain.Brand {
	if f == FacetLoanedBrands {
		return v.loanedBrands
	}
	return v.brands
}

func (v *View) Models(f Facet) []domain.Model {
	if f == FacetLoanedModels {
		return v.loanedModels
	}
	return v.models
}

// PartOptions lists the parts of the currently selected model, in fetch order.
func (v *View) PartOptions() []domain.Part {
	out := make([]domain.Part, 0, len(v.modelPartIDs))
	for _, id := range v.modelPartIDs {
		if p, ok := v.parts[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// LoadedParts lists every part accumulated during the session, sorted by name
// for stable output.
func (v *View) LoadedParts() []domain.Part {
	out := make([]domain.Part, 0, len(v.parts))
	for _, p := range v.parts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ResolvePart looks a part up in the accumulated session catalog. Callers
// treat a miss as a zero-valued part rather than an error.
func (v *View) ResolvePart(id string) (domain.Part, bool) {
	p, ok := v.parts[id]
	return p, ok
}

func (v *View) DeviceTypeName(id string) string {
	for _, t := range v.deviceTypes {
		if t.ID == id {
			return t.Name
		}
	}
	return ""
}

func (v *View) BrandName(f Facet, id string) string {
	for _, b := range v.Brands(f) {
		if b.ID == id {
			return b.Name
		}
	}
	return ""
}

func (v *View) ModelName(f Facet, id string) string {
	for _, m := range v.Models(f) {
		if m.ID == id {
			return m.Name
		}
	}
	return ""
}

func activeBrands(brands []domain.Brand) []domain.Brand {
	active := make([]domain.Brand, 0, len(brands))
	for _, b := range brands {
		if b.IsActive {
			active = append(active, b)
		}
	}
	return active
}
