package engine

import "math"

const (
	solverSeedLow  = 1.0
	solverSeedHigh = 2.0
	solverPriceCap = 1e9
	solverMaxIters = 100

	// MarginTolerance is the convergence tolerance in percentage points.
	MarginTolerance = 1e-4
)

// SolverTrace receives one callback per bisection step. It exists so a
// caller can attach logging without the solver itself taking a logger;
// the engine stays pure.
type SolverTrace func(iteration int, price, margin float64)

// SolvePriceForMargin finds the minimal tax-exclusive selling price whose
// profit margin meets targetMarginPct within MarginTolerance. It never
// fails on non-convergence: when the iteration budget runs out the final
// bracket midpoint is returned with Converged set to false.
func SolvePriceForMargin(cost CostStructure, targetMarginPct float64, s FeeSchedule, rate float64) (SolveResult, error) {
	return SolvePriceForMarginTraced(cost, targetMarginPct, s, rate, nil)
}

// SolvePriceForMarginTraced is SolvePriceForMargin with a per-iteration
// trace hook. A nil trace is allowed.
func SolvePriceForMarginTraced(cost CostStructure, targetMarginPct float64, s FeeSchedule, rate float64, trace SolverTrace) (SolveResult, error) {
	if rate <= 0 {
		return SolveResult{}, ErrMissingRate
	}
	if targetMarginPct < 0 || targetMarginPct >= 100 {
		return SolveResult{}, invalidInput("target_margin", "must be in [0, 100)")
	}
	if err := cost.validate(); err != nil {
		return SolveResult{}, err
	}
	if err := s.Validate(); err != nil {
		return SolveResult{}, err
	}
	// Margin rises with price only while conversion nets out positive,
	// so a surcharge at or above the rate breaks the bisection bracket.
	if s.ExchangeSurchargePerUnit >= rate {
		return SolveResult{}, invalidInput("exchange_surcharge", "must be below the exchange rate")
	}

	// Inputs were validated above and candidate prices are always
	// positive, so Evaluate cannot fail inside the loop.
	marginAt := func(price float64) float64 {
		d, _ := Evaluate(price, cost, s, rate)
		return d.ProfitMargin
	}

	low, high := solverSeedLow, solverSeedHigh
	for high < solverPriceCap && marginAt(high) < targetMarginPct {
		high *= 2
	}

	var mid, margin float64
	for i := 0; i < solverMaxIters; i++ {
		mid = (low + high) / 2
		margin = marginAt(mid)
		if trace != nil {
			trace(i, mid, margin)
		}

		if math.Abs(margin-targetMarginPct) < MarginTolerance {
			return newSolveResult(mid, margin, rate, i+1, true), nil
		}
		if margin < targetMarginPct {
			low = mid
		} else {
			high = mid
		}
	}

	mid = (low + high) / 2
	return newSolveResult(mid, marginAt(mid), rate, solverMaxIters, false), nil
}

func newSolveResult(price, margin, rate float64, iterations int, converged bool) SolveResult {
	return SolveResult{
		PriceTransaction: price,
		PriceSettlement:  math.Ceil(price*rate*100) / 100,
		AchievedMargin:   margin,
		Iterations:       iterations,
		Converged:        converged,
	}
}
