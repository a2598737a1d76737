package workflow

import (
	"fmt"

	"repairshop-orders/internal/domain"
)

// PartResolver resolves a part id against the catalog loaded so far in the
// session. A miss is not an error: the line simply contributes zero values.
type PartResolver interface {
	ResolvePart(id string) (domain.Part, bool)
}

// PartLine is one replacement-part row on the draft. Only the id and the
// quantity are stored; name and prices are resolved at read time.
type PartLine struct {
	PartID   string `json:"partId"`
	Quantity int    `json:"quantity"`
}

// PartLineRegistry is the ordered collection of part lines with the derived
// subtotal helpers.
type PartLineRegistry struct {
	lines []PartLine
}

// AddLine appends an empty line and returns its index.
func (r *PartLineRegistry) AddLine() int {
	r.lines = append(r.lines, PartLine{Quantity: 1})
	return len(r.lines) - 1
}

func (r *PartLineRegistry) RemoveLine(index int) error {
	if index < 0 || index >= len(r.lines) {
		return fmt.Errorf("line index %d out of range", index)
	}
	r.lines = append(r.lines[:index], r.lines[index+1:]...)
	return nil
}

func (r *PartLineRegistry) SetPartID(index int, id string) error {
	if index < 0 || index >= len(r.lines) {
		return fmt.Errorf("line index %d out of range", index)
	}
	r.lines[index].PartID = id
	return nil
}

// SetQuantity sets the line quantity, constrained to at least one unit.
func (r *PartLineRegistry) SetQuantity(index int, n int) error {
	if index < 0 || index >= len(r.lines) {
		return fmt.Errorf("line index %d out of range", index)
	}
	if n < 1 {
		n = 1
	}
	r.lines[index].Quantity = n
	return nil
}

func (r *PartLineRegistry) Len() int { return len(r.lines) }

// Lines returns a copy of the current lines.
func (r *PartLineRegistry) Lines() []PartLine {
	out := make([]PartLine, len(r.lines))
	copy(out, r.lines)
	return out
}

// PartsTotal is the sum of unitPrice x quantity over resolvable lines.
func (r *PartLineRegistry) PartsTotal(res PartResolver) int64 {
	var total int64
	for _, line := range r.lines {
		part, ok := res.ResolvePart(line.PartID)
		if !ok {
			continue
		}
		total += part.UnitPrice * int64(line.Quantity)
	}
	return total
}

// ServiceFeeTotal sums the unit service fee once per line. The fee is charged
// per distinct part line regardless of how many units the line holds.
func (r *PartLineRegistry) ServiceFeeTotal(res PartResolver) int64 {
	var total int64
	for _, line := range r.lines {
		part, ok := res.ResolvePart(line.PartID)
		if !ok {
			continue
		}
		total += part.UnitServiceFee
	}
	return total
}

// ResolvedItems snapshots the lines into order items with the names and
// prices known right now. Unresolvable lines come out with a blank name and
// zero price, keeping the order usable rather than failing.
func (r *PartLineRegistry) ResolvedItems(res PartResolver) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(r.lines))
	for _, line := range r.lines {
		item := domain.OrderItem{PartID: line.PartID, Quantity: line.Quantity}
		if part, ok := res.ResolvePart(line.PartID); ok {
			item.Name = part.Name
			item.UnitPrice = part.UnitPrice
		}
		items = append(items, item)
	}
	return items
}
