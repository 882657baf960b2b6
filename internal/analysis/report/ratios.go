package report

import (
	"math"
	"strings"

	"github.com/AIDataFireGirl/investsight/pkg/models"
)

// Canonical statement line items produced by the datasource layer.
const (
	LineTotalRevenue            = "Total Revenue"
	LineNetIncome               = "Net Income"
	LineTotalCurrentAssets      = "Total Current Assets"
	LineTotalCurrentLiabilities = "Total Current Liabilities"
	LineTotalAssets             = "Total Assets"
)

// AnalyzeStatements derives profitability, liquidity, and efficiency
// ratios from the latest period of each statement. Statements arrive
// newest first. A ratio appears in its map only when every input it
// needs exists and the denominator is nonzero.
func AnalyzeStatements(statements models.StatementSet) models.FinancialAnalysis {
	analysis := models.FinancialAnalysis{
		Profitability: map[string]float64{},
		Liquidity:     map[string]float64{},
		Efficiency:    map[string]float64{},
	}

	if len(statements.BalanceSheet) == 0 || len(statements.IncomeStatement) == 0 {
		return analysis
	}

	latestBalance := statements.BalanceSheet[0]
	latestIncome := statements.IncomeStatement[0]

	// Net margin
	revenue, hasRevenue := latestIncome[LineTotalRevenue]
	netIncome, hasNetIncome := latestIncome[LineNetIncome]
	if hasRevenue && hasNetIncome && revenue != 0 {
		analysis.Profitability["net_margin"] = netIncome / revenue * 100
	}

	// Current ratio
	currentAssets, hasCA := latestBalance[LineTotalCurrentAssets]
	currentLiabilities, hasCL := latestBalance[LineTotalCurrentLiabilities]
	if hasCA && hasCL && currentLiabilities != 0 {
		analysis.Liquidity["current_ratio"] = currentAssets / currentLiabilities
	}

	// Asset turnover
	totalAssets, hasTA := latestBalance[LineTotalAssets]
	if hasTA && hasRevenue && totalAssets != 0 {
		analysis.Efficiency["asset_turnover"] = revenue / totalAssets
	}

	return analysis
}

// AnalyzeEarnings computes period-over-period EPS growth from a
// chronological EPS series. Steps with a zero prior value are skipped
// since the change is undefined.
func AnalyzeEarnings(epsValues []float64) models.EarningsAnalysis {
	analysis := models.EarningsAnalysis{}

	if len(epsValues) < 2 {
		return analysis
	}

	for i := 1; i < len(epsValues); i++ {
		prev := epsValues[i-1]
		if prev == 0 {
			continue
		}
		growth := (epsValues[i] - prev) / math.Abs(prev) * 100
		analysis.GrowthRates = append(analysis.GrowthRates, growth)
	}

	if len(analysis.GrowthRates) > 0 {
		sum := 0.0
		for _, g := range analysis.GrowthRates {
			sum += g
		}
		analysis.AverageGrowth = sum / float64(len(analysis.GrowthRates))
	}

	return analysis
}

// InterpretPE reads a trailing or forward P/E ratio. Callers skip
// absent or nonpositive ratios entirely rather than interpreting them.
func InterpretPE(ratio float64) string {
	switch {
	case ratio < 10:
		return "Potentially undervalued"
	case ratio < 20:
		return "Fairly valued"
	case ratio < 30:
		return "Potentially overvalued"
	default:
		return "Significantly overvalued"
	}
}

// InterpretPB reads a price-to-book ratio.
func InterpretPB(ratio float64) string {
	switch {
	case ratio < 1:
		return "Potentially undervalued"
	case ratio < 3:
		return "Fairly valued"
	default:
		return "Potentially overvalued"
	}
}

// InterpretBeta reads a beta value against market volatility.
func InterpretBeta(beta float64) string {
	switch {
	case beta > 1.5:
		return "High volatility"
	case beta < 0.8:
		return "Low volatility"
	default:
		return "Market average"
	}
}

// ValuationConclusion weighs ratio interpretations against each other:
// more undervalued readings → attractive, more overvalued →
// unattractive, tie → neutral.
func ValuationConclusion(metrics map[string]models.RatioReading) string {
	positive := 0
	negative := 0

	for _, m := range metrics {
		if strings.Contains(m.Interpretation, "undervalued") {
			positive++
		} else if strings.Contains(m.Interpretation, "overvalued") {
			negative++
		}
	}

	switch {
	case positive > negative:
		return "attractive"
	case negative > positive:
		return "unattractive"
	default:
		return "neutral"
	}
}

// GrowthStrength grades an average earnings growth percentage. The
// thresholds are strict: exactly 20 reads moderate, not strong.
func GrowthStrength(rate float64) string {
	switch {
	case rate > 20:
		return "strong"
	case rate > 10:
		return "moderate"
	case rate > 0:
		return "weak"
	default:
		return "declining"
	}
}

// LiquidityRiskLevel grades a current ratio: below 1 high, above 2
// low, otherwise medium. A current ratio that was never computed
// defaults to 0 and therefore reads high.
func LiquidityRiskLevel(currentRatio float64) models.RiskLevel {
	switch {
	case currentRatio < 1:
		return models.RiskHigh
	case currentRatio > 2:
		return models.RiskLow
	default:
		return models.RiskMedium
	}
}

// RiskFactors lists which structural risk factors are present: a beta
// above 1.5 and a current ratio below 1.
func RiskFactors(beta, currentRatio float64) []string {
	var factors []string
	if beta > 1.5 {
		factors = append(factors, "high_volatility")
	}
	if currentRatio < 1 {
		factors = append(factors, "liquidity_risk")
	}
	return factors
}

// OverallRiskLevel grades the combined risk factor count: two or more
// high, one medium, none low.
func OverallRiskLevel(beta, currentRatio float64) models.RiskLevel {
	factors := RiskFactors(beta, currentRatio)
	switch {
	case len(factors) >= 2:
		return models.RiskHigh
	case len(factors) == 1:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
