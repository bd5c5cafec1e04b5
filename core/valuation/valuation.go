// Package valuation turns a normalized listing into yield metrics and a
// qualitative verdict. It only consumes pipeline output; nothing here is
// fetched or persisted.
package valuation

import (
	"errors"
	"fmt"

	"github.com/Fichusgg/casa-score-br/core"
)

// Verdict thresholds on net yield, in percent.
const (
	GoodNetYield = 7.0
	FairNetYield = 5.0
)

// rentRuleOfThumb is the monthly rent per m² as a fraction of the sale
// price per m² when no rental comparables exist.
const rentRuleOfThumb = 0.006

var (
	// ErrNoPrice is returned for listings without a price.
	ErrNoPrice = errors.New("listing price must be positive")
	// ErrNoArea is returned for listings without a floor area.
	ErrNoArea = errors.New("listing area must be positive")
)

// Verdict is the three-way investment call.
type Verdict string

const (
	VerdictGood       Verdict = "good"
	VerdictFair       Verdict = "fair"
	VerdictOverpriced Verdict = "overpriced"
)

// Assumptions are the user-editable financial inputs. Monthly amounts are
// in BRL; *Pct fields are percentages.
type Assumptions struct {
	IPTU       float64 `json:"iptu"`
	Condominio float64 `json:"condominio"`
	ITBIPct    float64 `json:"itbi_pct"`
	TaxesFixed float64 `json:"taxes_fixed"`
	VacancyPct float64 `json:"vacancy_pct"`
	MaintPct   float64 `json:"maint_pct"`
}

// DefaultAssumptions returns ITBI 3%, vacancy 5%, maintenance 5% and zero
// for everything else. Unmarshal JSON into it to keep defaults for absent keys.
func DefaultAssumptions() Assumptions {
	return Assumptions{ITBIPct: 3, VacancyPct: 5, MaintPct: 5}
}

// Validate rejects negative values.
func (a Assumptions) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"iptu", a.IPTU},
		{"condominio", a.Condominio},
		{"itbi_pct", a.ITBIPct},
		{"taxes_fixed", a.TaxesFixed},
		{"vacancy_pct", a.VacancyPct},
		{"maint_pct", a.MaintPct},
	}
	for _, f := range fields {
		if f.v < 0 {
			return fmt.Errorf("%s must not be negative (got %g)", f.name, f.v)
		}
	}
	return nil
}

// Comparables are market references; either list may be empty.
type Comparables struct {
	SalePricePerM2 []float64 `json:"sale_price_per_m2,omitempty"`
	RentPerM2      []float64 `json:"rent_per_m2,omitempty"`
}

// Metrics are the computed yields, in percent, plus their annual inputs.
// PaybackYears is nil when the net yield is not positive.
type Metrics struct {
	GrossYield      float64  `json:"gross_yield"`
	NetYield        float64  `json:"net_yield"`
	CapRate         float64  `json:"cap_rate"`
	PaybackYears    *float64 `json:"payback_years"`
	AnnualRent      float64  `json:"annual_rent"`
	AnnualCosts     float64  `json:"annual_costs"`
	NetAnnualIncome float64  `json:"net_annual_income"`
}

// Result is the full valuation of one listing.
type Result struct {
	EstimatedMarketValue float64 `json:"estimated_market_value"`
	EstimatedRentMonthly float64 `json:"estimated_rent_monthly"`
	Metrics              Metrics `json:"metrics"`
	Verdict              Verdict `json:"verdict"`
}

// Calculate values a listing under the given assumptions and comparables.
func Calculate(l core.Listing, a Assumptions, comps Comparables) (Result, error) {
	if l.Price <= 0 {
		return Result{}, ErrNoPrice
	}
	if l.AreaM2 <= 0 {
		return Result{}, ErrNoArea
	}
	if err := a.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid assumptions: %w", err)
	}

	price := float64(l.Price)
	area := float64(l.AreaM2)

	pricePerM2, ok := mean(comps.SalePricePerM2)
	if !ok {
		pricePerM2 = price / area
	}
	rentPerM2, ok := mean(comps.RentPerM2)
	if !ok {
		rentPerM2 = pricePerM2 * rentRuleOfThumb
	}

	rentMonthly := rentPerM2 * area
	annualRent := rentMonthly * 12

	itbi := price * a.ITBIPct / 100
	totalInvestment := price + itbi + a.TaxesFixed

	annualCosts := a.IPTU*12 + a.Condominio*12 +
		annualRent*a.VacancyPct/100 +
		annualRent*a.MaintPct/100

	netIncome := annualRent - annualCosts

	m := Metrics{
		GrossYield:      annualRent / price * 100,
		NetYield:        netIncome / totalInvestment * 100,
		CapRate:         netIncome / price * 100,
		AnnualRent:      annualRent,
		AnnualCosts:     annualCosts,
		NetAnnualIncome: netIncome,
	}
	if m.NetYield > 0 {
		payback := 100 / m.NetYield
		m.PaybackYears = &payback
	}

	return Result{
		EstimatedMarketValue: pricePerM2 * area,
		EstimatedRentMonthly: rentMonthly,
		Metrics:              m,
		Verdict:              VerdictFor(m.NetYield),
	}, nil
}

// VerdictFor classifies a net yield percentage.
func VerdictFor(netYield float64) Verdict {
	switch {
	case netYield >= GoodNetYield:
		return VerdictGood
	case netYield >= FairNetYield:
		return VerdictFair
	default:
		return VerdictOverpriced
	}
}

func mean(vs []float64) (float64, bool) {
	if len(vs) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs)), true
}
