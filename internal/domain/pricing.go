package domain

// Fees are the manually chosen fee tiers on an order. Each value comes from
// the shared discrete ladder (20..200 in steps of 5).
type Fees struct {
	BranchServiceFee  int64 `json:"branchServiceFee"`
	CentralServiceFee int64 `json:"centralServiceFee"`
	BranchProfit      int64 `json:"branchProfit"`
}

// PricingSnapshot is fully derived from the draft and never mutated on its
// own. RemainingAmount is CustomerTotal minus the deposit with no clamping,
// so it can go negative when the deposit exceeds the total.
type PricingSnapshot struct {
	PartsTotal             int64 `json:"partsTotal"`
	CentralPartsCost       int64 `json:"centralPartsCost"`
	CentralServiceFeeTotal int64 `json:"centralServiceFeeTotal"`
	TotalCentralPayment    int64 `json:"totalCentralPayment"`
	CustomerTotal          int64 `json:"customerTotal"`
	RemainingAmount        int64 `json:"remainingAmount"`
}
