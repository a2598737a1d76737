package domain

import "time"

// RoutingMode decides which pricing formula applies: the device is either sent
// to the central facility or repaired at the branch.
type RoutingMode string

const (
	RoutingCentral RoutingMode = "central"
	RoutingBranch  RoutingMode = "branch"
)

func (m RoutingMode) Valid() bool {
	return m == RoutingCentral || m == RoutingBranch
}

// OrderStatus is the submit lifecycle of a working order.
type OrderStatus string

const (
	StatusDraft      OrderStatus = "draft"
	StatusSubmitting OrderStatus = "submitting"
	StatusSaved      OrderStatus = "saved"
	StatusFailed     OrderStatus = "failed"
)

// DeviceRef carries catalog ids together with the display names captured at
// selection time, so a saved order stays readable after catalog renames.
type DeviceRef struct {
	TypeID    string `json:"typeId"`
	BrandID   string `json:"brandId"`
	ModelID   string `json:"modelId"`
	TypeName  string `json:"typeName"`
	BrandName string `json:"brandName"`
	ModelName string `json:"modelName"`
}

func (d DeviceRef) Complete() bool {
	return d.TypeID != "" && d.BrandID != "" && d.ModelID != ""
}

// OrderItem is a part line snapshotted at submit time.
type OrderItem struct {
	PartID    string `json:"partId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

type Payment struct {
	Method          string `json:"method,omitempty"`
	Amount          int64  `json:"amount"`
	DepositAmount   int64  `json:"depositAmount"`
	RemainingAmount int64  `json:"remainingAmount"`
}

// OrderPayload is the flat structure persisted for an order and handed to the
// receipt projector. It is the sole interface out of the workflow core.
type OrderPayload struct {
	CustomerID          string         `json:"customerId"`
	CustomerName        string         `json:"customerName"`
	CustomerPhone       string         `json:"customerPhone"`
	CustomerEmail       string         `json:"customerEmail,omitempty"`
	Device              DeviceRef      `json:"device"`
	LoanedDevice        *DeviceRef     `json:"loanedDevice"`
	IsLoanedDeviceGiven bool           `json:"isLoanedDeviceGiven"`
	Items               []OrderItem    `json:"items"`
	Payment             Payment        `json:"payment"`
	IsCentralService    bool           `json:"isCentralService"`
	CentralPartPrices   int64          `json:"centralPartPrices"`
	CentralServiceFee   int64          `json:"centralServiceFee"`
	BranchServiceFee    int64          `json:"branchServiceFee"`
	BranchPartProfit    int64          `json:"branchPartProfit"`
	TotalCentralPayment int64          `json:"totalCentralPayment"`
	Branch              BranchSnapshot `json:"branchSnapshot"`
}

// Order is a persisted order as returned by the order service.
type Order struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	OrderPayload
	CreatedAt time.Time `json:"createdAt"`
}
