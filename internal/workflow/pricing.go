package workflow

import "repairshop-orders/internal/domain"

// ComputePricing derives the full pricing snapshot from the current draft
// inputs. It is a pure function and is re-run from scratch on every mutation;
// a single order holds a handful of lines, so there is nothing to memoize.
//
// The central-route payment fields are computed unconditionally so both
// formula branches stay visible for auditing no matter which mode is active.
// CentralPartsCost restates PartsTotal on purpose; the two have never
// diverged in the books.
func ComputePricing(reg *PartLineRegistry, res PartResolver, mode domain.RoutingMode, fees domain.Fees, deposit int64) domain.PricingSnapshot {
	partsTotal := reg.PartsTotal(res)
	centralPartsCost := partsTotal
	centralServiceFeeTotal := reg.ServiceFeeTotal(res)

	snap := domain.PricingSnapshot{
		PartsTotal:             partsTotal,
		CentralPartsCost:       centralPartsCost,
		CentralServiceFeeTotal: centralServiceFeeTotal,
		TotalCentralPayment:    centralPartsCost + centralServiceFeeTotal,
	}

	switch mode {
	case domain.RoutingCentral:
		snap.CustomerTotal = partsTotal + centralServiceFeeTotal + fees.BranchServiceFee
	case domain.RoutingBranch:
		snap.CustomerTotal = partsTotal + fees.BranchProfit + fees.BranchServiceFee
	}

	// No clamping: the deposit may exceed the total and drive this negative.
	snap.RemainingAmount = snap.CustomerTotal - deposit
	return snap
}
