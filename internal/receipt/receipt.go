package receipt

import (
	"fmt"
	"time"

	"repairshop-orders/internal/domain"
)

// Receipt is the print-ready projection of a saved order. It consumes only
// the flat order payload; none of the pricing internals leak here.
type Receipt struct {
	OrderNumber string        `json:"orderNumber"`
	IssuedAt    time.Time     `json:"issuedAt"`
	Branch      branchBlock   `json:"branch"`
	Customer    customerBlock `json:"customer"`
	Device      string        `json:"device"`
	Loaned      string        `json:"loanedDevice,omitempty"`
	Lines       []receiptLine `json:"lines"`
	Routing     string        `json:"routing"`
	Total       int64         `json:"total"`
	Deposit     int64         `json:"deposit"`
	Remaining   int64         `json:"remaining"`
}

type branchBlock struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

type customerBlock struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type receiptLine struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Total     int64  `json:"total"`
}

// Project formats a saved order into a receipt.
func Project(order *domain.Order) Receipt {
	issued := order.CreatedAt
	if issued.IsZero() {
		issued = time.Now().UTC()
	}

	lines := make([]receiptLine, 0, len(order.Items))
	for _, item := range order.Items {
		name := item.Name
		if name == "" {
			name = item.PartID
		}
		lines = append(lines, receiptLine{
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.UnitPrice * int64(item.Quantity),
		})
	}

	routing := "Repaired at branch"
	if order.IsCentralService {
		routing = "Sent to central service"
	}

	r := Receipt{
		OrderNumber: order.OrderNumber,
		IssuedAt:    issued,
		Branch: branchBlock{
			Name:    order.Branch.Name,
			Address: order.Branch.Address,
			Phone:   order.Branch.Phone,
		},
		Customer: customerBlock{
			Name:  order.CustomerName,
			Phone: order.CustomerPhone,
		},
		Device:    deviceLabel(order.Device),
		Lines:     lines,
		Routing:   routing,
		Total:     order.Payment.Amount,
		Deposit:   order.Payment.DepositAmount,
		Remaining: order.Payment.RemainingAmount,
	}
	if order.IsLoanedDeviceGiven && order.LoanedDevice != nil {
		r.Loaned = deviceLabel(*order.LoanedDevice)
	}
	return r
}

func deviceLabel(ref domain.DeviceRef) string {
	switch {
	case ref.BrandName != "" && ref.ModelName != "":
		return fmt.Sprintf("%s %s", ref.BrandName, ref.ModelName)
	case ref.ModelName != "":
		return ref.ModelName
	case ref.BrandName != "":
		return ref.BrandName
	default:
		return ref.ModelID
	}
}
