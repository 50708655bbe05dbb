package server

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"profitcalc/internal/engine"
	"profitcalc/internal/shipping"
)

type evaluateRequest struct {
	SellingPrice       float64  `json:"selling_price"`
	CostPrice          float64  `json:"cost_price"`
	ShippingCost       float64  `json:"shipping_cost"`
	Category           string   `json:"category,omitempty"`
	CategoryFeePercent *float64 `json:"category_fee_percent,omitempty"`
	Rate               *float64 `json:"rate,omitempty"`
}

type solveRequest struct {
	CostPrice          float64             `json:"cost_price"`
	ShippingCost       *float64            `json:"shipping_cost,omitempty"`
	WeightGrams        int                 `json:"weight_grams,omitempty"`
	Dimensions         shipping.Dimensions `json:"dimensions,omitempty"`
	TargetMargin       float64             `json:"target_margin"`
	Category           string              `json:"category,omitempty"`
	CategoryFeePercent *float64            `json:"category_fee_percent,omitempty"`
	Rate               *float64            `json:"rate,omitempty"`
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	rate, err := s.rates.Rate(r.Context())
	if err != nil {
		s.writeRateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"rate": rate})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.categories.Options())
}

func (s *Server) handleVAT(w http.ResponseWriter, r *http.Request) {
	price, err := strconv.ParseFloat(r.URL.Query().Get("price"), 64)
	if err != nil || price < 0 {
		writeError(w, http.StatusBadRequest, "price must be a non-negative number")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"price":           round2(price),
		"under_threshold": engine.IsUnderVATThreshold(price),
		"vat_amount":      round2(engine.VATAmount(price)),
		"price_incl_vat":  round2(engine.PriceInclVAT(price)),
	})
}

func (s *Server) handleShippingQuote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WeightGrams int                 `json:"weight_grams"`
		Dimensions  shipping.Dimensions `json:"dimensions"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := s.shipping.Cheapest(req.WeightGrams, req.Dimensions)
	if err != nil {
		if errors.Is(err, shipping.ErrNoMethodFits) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sched, ok := s.schedule(w, req.Category, req.CategoryFeePercent)
	if !ok {
		return
	}
	rate, ok := s.resolveRate(w, r, req.Rate)
	if !ok {
		return
	}

	cost := engine.CostStructure{CostPrice: req.CostPrice, ShippingCost: req.ShippingCost}
	detail, err := engine.Evaluate(req.SellingPrice, cost, sched, rate)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, renderDetail(detail))
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sched, ok := s.schedule(w, req.Category, req.CategoryFeePercent)
	if !ok {
		return
	}
	rate, ok := s.resolveRate(w, r, req.Rate)
	if !ok {
		return
	}

	shippingCost := 0.0
	shippingMethod := ""
	switch {
	case req.ShippingCost != nil:
		shippingCost = *req.ShippingCost
	case req.WeightGrams > 0:
		quote, err := s.shipping.Cheapest(req.WeightGrams, req.Dimensions)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		shippingCost = quote.Price
		shippingMethod = quote.Method
	default:
		writeError(w, http.StatusBadRequest, "either shipping_cost or weight_grams is required")
		return
	}

	cost := engine.CostStructure{CostPrice: req.CostPrice, ShippingCost: shippingCost}

	trace := func(i int, price, margin float64) {
		s.logger.Debug("solver step",
			zap.Int("iteration", i),
			zap.Float64("price", price),
			zap.Float64("margin", margin))
	}
	res, err := engine.SolvePriceForMarginTraced(cost, req.TargetMargin, sched, rate, trace)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if !res.Converged {
		s.logger.Warn("solver did not converge",
			zap.Float64("target_margin", req.TargetMargin),
			zap.Float64("best_price", res.PriceTransaction))
	}

	// Re-evaluate at the solved price so the caller gets the breakdown
	// they would see when listing at exactly that price.
	detail, err := engine.Evaluate(res.PriceTransaction, cost, sched, rate)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, renderSolve(res, detail, shippingMethod))
}

// schedule builds the request's fee schedule from the base policy plus
// the category fee, taken from an explicit percent or the category table.
func (s *Server) schedule(w http.ResponseWriter, label string, explicit *float64) (engine.FeeSchedule, bool) {
	sched := s.baseSched

	switch {
	case explicit != nil:
		sched.CategoryFeePercent = *explicit
	case label != "":
		pct, ok := s.categories.FeePercent(label)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown category: "+label)
			return engine.FeeSchedule{}, false
		}
		sched.CategoryFeePercent = pct
	default:
		writeError(w, http.StatusBadRequest, "either category or category_fee_percent is required")
		return engine.FeeSchedule{}, false
	}

	return sched, true
}

// resolveRate takes the caller's explicit rate when present, otherwise the
// live provider rate.
func (s *Server) resolveRate(w http.ResponseWriter, r *http.Request, explicit *float64) (float64, bool) {
	if explicit != nil {
		return *explicit, true
	}

	rate, err := s.rates.Rate(r.Context())
	if err != nil {
		s.writeRateError(w, err)
		return 0, false
	}
	return rate, true
}

func (s *Server) writeRateError(w http.ResponseWriter, err error) {
	if errors.Is(err, engine.ErrMissingRate) {
		writeError(w, http.StatusUnprocessableEntity, "exchange rate unavailable")
		return
	}
	s.logger.Error("rate provider failed", zap.Error(err))
	writeError(w, http.StatusBadGateway, "exchange rate provider unavailable")
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	var inputErr *engine.InvalidInputError
	switch {
	case errors.Is(err, engine.ErrMissingRate):
		writeError(w, http.StatusUnprocessableEntity, "exchange rate unavailable")
	case errors.As(err, &inputErr):
		writeError(w, http.StatusBadRequest, inputErr.Error())
	default:
		s.logger.Error("evaluation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
