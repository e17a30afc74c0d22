package entity

import "github.com/shopspring/decimal"

// FinancialProjection is one year of the revenue outlook
type FinancialProjection struct {
	Year       string          `json:"year"`
	Label      string          `json:"label"`
	RevenueUSD decimal.Decimal `json:"revenue_usd"`
	RevenueZAR decimal.Decimal `json:"revenue_zar"`
}
