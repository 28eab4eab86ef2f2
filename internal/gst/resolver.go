package gst

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrInvalidAmount  = errors.New("amount must be a non-negative number")
)

// Result is the outcome of one tax computation. Amounts are exact decimals;
// callers round for display.
type Result struct {
	ProductName   string          `json:"product_name"`
	Principal     decimal.Decimal `json:"original_amount"`
	RatePercent   decimal.Decimal `json:"gst_rate"`
	TaxAmount     decimal.Decimal `json:"gst_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	EffectiveRule RuleKind        `json:"-"`
}

var oneHundred = decimal.NewFromInt(100)

// Calculate resolves the effective rate for the product and computes tax
// and total from the principal. Pure and synchronous.
func Calculate(p Product, params map[string]string, principal decimal.Decimal) (Result, error) {
	if principal.IsNegative() {
		return Result{}, ErrInvalidAmount
	}

	rate := EffectiveRate(p, params)
	tax := principal.Mul(rate).Div(oneHundred)

	return Result{
		ProductName:   p.Name,
		Principal:     principal,
		RatePercent:   rate,
		TaxAmount:     tax,
		TotalAmount:   principal.Add(tax),
		EffectiveRule: p.Rule,
	}, nil
}

// CalculateByName looks the product up in the catalog first.
func CalculateByName(name string, params map[string]string, amount string) (Result, error) {
	p, ok := FindProduct(name)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownProduct, name)
	}
	principal, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return Calculate(p, params, principal)
}

// EffectiveRate applies the product's decision rule to the supplied
// parameters. Products without a rule resolve to their base rate.
func EffectiveRate(p Product, params map[string]string) decimal.Decimal {
	switch p.Rule {
	case RuleSmallCar:
		return smallCarRate(params)
	case RuleLargeCarSUV:
		return largeCarSUVRate(params)
	case RuleTractor, RuleRoadTractor:
		return tractorRate(params)
	case RuleMotorcycleUpTo350, RuleMotorcycleAbove350:
		return motorcycleRate(params)
	default:
		return decimal.NewFromInt(p.BaseRate)
	}
}

// smallCarRate: petrol/LPG/CNG qualify at ≤1200cc and ≤4000mm, diesel at
// ≤1500cc and ≤4000mm; anything else pays the large-car rate.
func smallCarRate(params map[string]string) decimal.Decimal {
	engine := numericParam(params, ParamEngineCapacity)
	length := numericParam(params, ParamLength)
	fuel := params[ParamFuelType]

	switch fuel {
	case "Petrol", "LPG", "CNG":
		if engine <= 1200 && length <= 4000 {
			return decimal.NewFromInt(18)
		}
	case "Diesel":
		if engine <= 1500 && length <= 4000 {
			return decimal.NewFromInt(18)
		}
	}
	return decimal.NewFromInt(40)
}

// largeCarSUVRate: engine >1500cc, length >4000mm, or an SUV with ground
// clearance ≥170mm pays 40; everything else falls back to the small-car
// rate.
func largeCarSUVRate(params map[string]string) decimal.Decimal {
	engine := numericParam(params, ParamEngineCapacity)
	length := numericParam(params, ParamLength)
	clearance := numericParam(params, ParamGroundClearance)
	vehicleType := params[ParamVehicleType]

	if engine > 1500 || length > 4000 || (vehicleType == "SUV" && clearance >= 170) {
		return decimal.NewFromInt(40)
	}
	return decimal.NewFromInt(18)
}

// tractorRate covers both tractor catalog entries: above 1800cc the road
// tractor rate applies.
func tractorRate(params map[string]string) decimal.Decimal {
	if numericParam(params, ParamEngineCapacity) > 1800 {
		return decimal.NewFromInt(18)
	}
	return decimal.NewFromInt(5)
}

// motorcycleRate covers both motorcycle catalog entries: the 350cc
// displacement boundary decides regardless of which entry was picked.
func motorcycleRate(params map[string]string) decimal.Decimal {
	if numericParam(params, ParamEngineCapacity) > 350 {
		return decimal.NewFromInt(40)
	}
	return decimal.NewFromInt(18)
}

// numericParam parses a user-supplied numeric parameter. Missing or
// unparseable values compare as zero; the thresholds then decide on the
// remaining parameters.
func numericParam(params map[string]string, name string) float64 {
	raw := strings.TrimSpace(params[name])
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
