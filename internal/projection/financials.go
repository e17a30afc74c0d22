package projection

import (
	"github.com/shopspring/decimal"

	"mediaccess/internal/domain/entity"
)

// FinancialProjections is the three year revenue outlook
func FinancialProjections() []entity.FinancialProjection {
	return []entity.FinancialProjection{
		{Year: "Year 1", Label: "Pilot", RevenueUSD: decimal.NewFromInt(250000), RevenueZAR: decimal.NewFromInt(4315000)},
		{Year: "Year 2", Label: "Expansion", RevenueUSD: decimal.NewFromInt(1200000), RevenueZAR: decimal.NewFromInt(20712000)},
		{Year: "Year 3", Label: "Regional", RevenueUSD: decimal.NewFromInt(3500000), RevenueZAR: decimal.NewFromInt(60410000)},
	}
}

// YearOverYear is the growth between two consecutive projection years
type YearOverYear struct {
	From          string          `json:"from"`
	To            string          `json:"to"`
	GrowthPercent decimal.Decimal `json:"growth_percent"`
}

// FinancialOutlook bundles the headline figures with the projection table
type FinancialOutlook struct {
	MarketSize2030 string                       `json:"market_size_2030"`
	CAGR           string                       `json:"cagr"`
	InitialBudget  string                       `json:"initial_budget"`
	Projections    []entity.FinancialProjection `json:"projections"`
	Growth         []YearOverYear               `json:"growth"`
	TotalUSD       decimal.Decimal              `json:"total_usd"`
	TotalZAR       decimal.Decimal              `json:"total_zar"`
	ExchangeRate   decimal.Decimal              `json:"exchange_rate"`
}

var hundred = decimal.NewFromInt(100)

// BuildFinancialOutlook computes growth, totals and the implied ZAR/USD rate
func BuildFinancialOutlook(projections []entity.FinancialProjection) FinancialOutlook {
	out := FinancialOutlook{
		MarketSize2030: "R863 Bn",
		CAGR:           "15-20%",
		InitialBudget:  "R1.5 M",
		Projections:    projections,
		Growth:         []YearOverYear{},
		TotalUSD:       decimal.Zero,
		TotalZAR:       decimal.Zero,
		ExchangeRate:   decimal.Zero,
	}

	for i, p := range projections {
		out.TotalUSD = out.TotalUSD.Add(p.RevenueUSD)
		out.TotalZAR = out.TotalZAR.Add(p.RevenueZAR)
		if i == 0 || projections[i-1].RevenueUSD.IsZero() {
			continue
		}
		prev := projections[i-1]
		growth := p.RevenueUSD.Sub(prev.RevenueUSD).Div(prev.RevenueUSD).Mul(hundred).Round(1)
		out.Growth = append(out.Growth, YearOverYear{From: prev.Year, To: p.Year, GrowthPercent: growth})
	}

	if !out.TotalUSD.IsZero() {
		out.ExchangeRate = out.TotalZAR.Div(out.TotalUSD).Round(2)
	}
	return out
}
