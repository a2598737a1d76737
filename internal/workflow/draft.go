package workflow

import (
	"fmt"

	"repairshop-orders/internal/domain"
)

const (
	feeLadderMin  = 20
	feeLadderMax  = 200
	feeLadderStep = 5

	depositMin  = 10
	depositMax  = 100
	depositStep = 5
)

// FeeLadder returns the allowed fee/profit tiers: 20..200 in steps of 5.
func FeeLadder() []int64 {
	out := make([]int64, 0, (feeLadderMax-feeLadderMin)/feeLadderStep+1)
	for v := int64(feeLadderMin); v <= feeLadderMax; v += feeLadderStep {
		out = append(out, v)
	}
	return out
}

// DepositLadder returns the allowed deposit values: zero, then 10..100 in
// steps of 5.
func DepositLadder() []int64 {
	out := []int64{0}
	for v := int64(depositMin); v <= depositMax; v += depositStep {
		out = append(out, v)
	}
	return out
}

func validFee(v int64) bool {
	return v >= feeLadderMin && v <= feeLadderMax && v%feeLadderStep == 0
}

func validDeposit(v int64) bool {
	if v == 0 {
		return true
	}
	return v >= depositMin && v <= depositMax && v%depositStep == 0
}

// DeviceSelection holds the cascade ids plus the display names captured when
// each option was picked.
type DeviceSelection struct {
	TypeID    string `json:"typeId"`
	BrandID   string `json:"brandId"`
	ModelID   string `json:"modelId"`
	TypeName  string `json:"typeName"`
	BrandName string `json:"brandName"`
	ModelName string `json:"modelName"`
}

func (s DeviceSelection) Complete() bool {
	return s.TypeID != "" && s.BrandID != "" && s.ModelID != ""
}

func (s DeviceSelection) Ref() domain.DeviceRef {
	return domain.DeviceRef{
		TypeID:    s.TypeID,
		BrandID:   s.BrandID,
		ModelID:   s.ModelID,
		TypeName:  s.TypeName,
		BrandName: s.BrandName,
		ModelName: s.ModelName,
	}
}

// OrderDraft is the mutable working record for one order being created or
// edited. It is mutated only through the workflow session that owns it and
// becomes immutable once saved.
type OrderDraft struct {
	Customer *domain.Customer

	Device      DeviceSelection
	Loaned      DeviceSelection
	LoanedGiven bool

	Routing domain.RoutingMode
	Lines   PartLineRegistry
	Fees    domain.Fees
	Deposit int64

	PaymentMethod string

	Status      domain.OrderStatus
	SavedID     string
	OrderNumber string
}

func NewDraft() *OrderDraft {
	return &OrderDraft{Status: domain.StatusDraft}
}

// Editable reports whether the draft still accepts mutations.
func (d *OrderDraft) Editable() bool {
	return d.Status == domain.StatusDraft || d.Status == domain.StatusFailed
}

func (d *OrderDraft) guard() error {
	if d.Status == domain.StatusSaved {
		return domain.ErrOrderSaved
	}
	if d.Status == domain.StatusSubmitting {
		return domain.ErrSubmitInFlight
	}
	return nil
}

func (d *OrderDraft) SetRouting(mode domain.RoutingMode) error {
	if err := d.guard(); err != nil {
		return err
	}
	if !mode.Valid() {
		return fmt.Errorf("invalid routing mode %q", mode)
	}
	// Switching modes only changes which formula branch is read; the lines
	// are untouched.
	d.Routing = mode
	return nil
}

func (d *OrderDraft) SetBranchServiceFee(v int64) error {
	if err := d.guard(); err != nil {
		return err
	}
	if !validFee(v) {
		return domain.ErrOffLadder
	}
	d.Fees.BranchServiceFee = v
	return nil
}

func (d *OrderDraft) SetCentralServiceFee(v int64) error {
	if err := d.guard(); err != nil {
		return err
	}
	if !validFee(v) {
		return domain.ErrOffLadder
	}
	d.Fees.CentralServiceFee = v
	return nil
}

func (d *OrderDraft) SetBranchProfit(v int64) error {
	if err := d.guard(); err != nil {
		return err
	}
	if !validFee(v) {
		return domain.ErrOffLadder
	}
	d.Fees.BranchProfit = v
	return nil
}

func (d *OrderDraft) SetDeposit(v int64) error {
	if err := d.guard(); err != nil {
		return err
	}
	if !validDeposit(v) {
		return domain.ErrOffLadder
	}
	d.Deposit = v
	return nil
}

func (d *OrderDraft) SetPaymentMethod(method string) error {
	if err := d.guard(); err != nil {
		return err
	}
	d.PaymentMethod = method
	return nil
}

func (d *OrderDraft) SetCustomer(c *domain.Customer) error {
	if err := d.guard(); err != nil {
		return err
	}
	d.Customer = c
	return nil
}

// SetLoanedGiven toggles the loaned-device flag. Clearing it wipes all three
// loaned ids and their names.
func (d *OrderDraft) SetLoanedGiven(given bool) error {
	if err := d.guard(); err != nil {
		return err
	}
	d.LoanedGiven = given
	if !given {
		d.Loaned = DeviceSelection{}
	}
	return nil
}
