package models

import "time"

// Severity ranks how urgently a report insight needs attention.
type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityNegative Severity = "negative"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// CompanyProfile holds the descriptive and valuation fields pulled from
// a quote provider. Missing numeric fields stay at zero and missing
// text fields default to "Unknown".
type CompanyProfile struct {
	Name            string  `json:"name"`
	Sector          string  `json:"sector"`
	Industry        string  `json:"industry"`
	MarketCap       float64 `json:"market_cap"`
	EnterpriseValue float64 `json:"enterprise_value"`
	PERatio         float64 `json:"pe_ratio"`
	ForwardPE       float64 `json:"forward_pe"`
	PriceToBook     float64 `json:"price_to_book"`
	DividendYield   float64 `json:"dividend_yield"`
	Beta            float64 `json:"beta"`
	FiftyTwoWkHigh  float64 `json:"fifty_two_week_high"`
	FiftyTwoWkLow   float64 `json:"fifty_two_week_low"`
}

// StatementSet carries the raw financial statements for one company,
// newest period first. Each statement maps a line item to its value.
type StatementSet struct {
	BalanceSheet    []map[string]float64 `json:"balance_sheet"`
	IncomeStatement []map[string]float64 `json:"income_statement"`
	CashFlow        []map[string]float64 `json:"cash_flow"`
}

// FinancialAnalysis groups the ratios derived from the latest
// statements. A ratio is present in its map only when every input it
// needs was available and the denominator was nonzero.
type FinancialAnalysis struct {
	Profitability map[string]float64 `json:"profitability_metrics"`
	Liquidity     map[string]float64 `json:"liquidity_metrics"`
	Efficiency    map[string]float64 `json:"efficiency_metrics"`
}

// EarningsAnalysis holds period-over-period EPS growth. GrowthRates is
// empty when fewer than two usable EPS values exist.
type EarningsAnalysis struct {
	GrowthRates   []float64 `json:"earnings_growth"`
	AverageGrowth float64   `json:"avg_earnings_growth"`
}

// Insight is one categorized observation produced while reading a
// company report.
type Insight struct {
	Type     string   `json:"type"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// AnalysisSummary condenses a report's insights into a sentiment call,
// headline findings, and positioning suggestions.
type AnalysisSummary struct {
	OverallSentiment  string         `json:"overall_sentiment"`
	KeyFindings       []string       `json:"key_findings"`
	Recommendations   []string       `json:"recommendations"`
	InsightCount      int            `json:"insight_count,omitempty"`
	SeverityBreakdown map[string]int `json:"severity_breakdown,omitempty"`
}

// ReportAnalysis is the complete output of analyzing one company's
// filings and profile.
type ReportAnalysis struct {
	Ticker       string            `json:"ticker_symbol"`
	AnalysisDate time.Time         `json:"analysis_date"`
	Period       string            `json:"period"`
	Company      CompanyProfile    `json:"company_info"`
	Financials   FinancialAnalysis `json:"financial_analysis"`
	Earnings     EarningsAnalysis  `json:"earnings_analysis"`
	Insights     []Insight         `json:"insights"`
	Summary      AnalysisSummary   `json:"summary"`
}
