package valuation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fichusgg/casa-score-br/core"
	"github.com/Fichusgg/casa-score-br/core/valuation"
)

func listing(price, area int) core.Listing {
	return core.Listing{Title: "Apto", Price: price, AreaM2: area}
}

func TestCalculate_RuleOfThumbRent(t *testing.T) {
	t.Parallel()

	// 500k over 100 m²: 5000/m², rent 30/m² → 3000/month, 36000/year.
	res, err := valuation.Calculate(listing(500000, 100), valuation.DefaultAssumptions(), valuation.Comparables{})
	require.NoError(t, err)

	assert.InDelta(t, 500000, res.EstimatedMarketValue, 1e-6)
	assert.InDelta(t, 3000, res.EstimatedRentMonthly, 1e-6)
	assert.InDelta(t, 36000, res.Metrics.AnnualRent, 1e-6)
	assert.InDelta(t, 7.2, res.Metrics.GrossYield, 1e-9)
	// Costs: 10% of annual rent.
	assert.InDelta(t, 3600, res.Metrics.AnnualCosts, 1e-6)
	assert.InDelta(t, 32400, res.Metrics.NetAnnualIncome, 1e-6)
	// Total investment 515000.
	assert.InDelta(t, 32400.0/515000*100, res.Metrics.NetYield, 1e-9)
	assert.InDelta(t, 6.48, res.Metrics.CapRate, 1e-9)
	require.NotNil(t, res.Metrics.PaybackYears)
	assert.InDelta(t, 100/res.Metrics.NetYield, *res.Metrics.PaybackYears, 1e-9)
	assert.Equal(t, valuation.VerdictFair, res.Verdict)
}

func TestCalculate_UsesComparableAverages(t *testing.T) {
	t.Parallel()

	comps := valuation.Comparables{
		SalePricePerM2: []float64{8000, 10000},
		RentPerM2:      []float64{60, 80},
	}
	res, err := valuation.Calculate(listing(600000, 75), valuation.DefaultAssumptions(), comps)
	require.NoError(t, err)

	assert.InDelta(t, 9000*75, res.EstimatedMarketValue, 1e-6)
	assert.InDelta(t, 70*75, res.EstimatedRentMonthly, 1e-6)
	assert.Equal(t, valuation.VerdictGood, res.Verdict)
}

func TestCalculate_NegativeNetYieldHasNoPayback(t *testing.T) {
	t.Parallel()

	a := valuation.DefaultAssumptions()
	a.Condominio = 5000

	res, err := valuation.Calculate(listing(500000, 100), a, valuation.Comparables{})
	require.NoError(t, err)

	assert.Less(t, res.Metrics.NetYield, 0.0)
	assert.Nil(t, res.Metrics.PaybackYears)
	assert.Equal(t, valuation.VerdictOverpriced, res.Verdict)

	data, err := json.Marshal(res.Metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"payback_years":null`)
}

func TestCalculate_Errors(t *testing.T) {
	t.Parallel()

	_, err := valuation.Calculate(listing(0, 75), valuation.DefaultAssumptions(), valuation.Comparables{})
	assert.ErrorIs(t, err, valuation.ErrNoPrice)

	_, err = valuation.Calculate(listing(100000, 0), valuation.DefaultAssumptions(), valuation.Comparables{})
	assert.ErrorIs(t, err, valuation.ErrNoArea)

	a := valuation.DefaultAssumptions()
	a.VacancyPct = -1
	_, err = valuation.Calculate(listing(100000, 50), a, valuation.Comparables{})
	assert.ErrorContains(t, err, "vacancy_pct")
}

func TestVerdictFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		yield float64
		want  valuation.Verdict
	}{
		{7, valuation.VerdictGood},
		{12.5, valuation.VerdictGood},
		{6.99, valuation.VerdictFair},
		{5, valuation.VerdictFair},
		{4.99, valuation.VerdictOverpriced},
		{-3, valuation.VerdictOverpriced},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, valuation.VerdictFor(tt.yield), tt.yield)
	}
}

func TestDefaultAssumptions_PartialJSON(t *testing.T) {
	t.Parallel()

	a := valuation.DefaultAssumptions()
	require.NoError(t, json.Unmarshal([]byte(`{"iptu": 120, "vacancy_pct": 8}`), &a))

	assert.Equal(t, valuation.Assumptions{IPTU: 120, ITBIPct: 3, VacancyPct: 8, MaintPct: 5}, a)
}
