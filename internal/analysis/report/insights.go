package report

import (
	"fmt"

	"github.com/AIDataFireGirl/investsight/pkg/models"
)

// GenerateInsights runs the threshold rules over a company profile,
// its derived ratios, and earnings growth. Rule order is fixed so the
// resulting list reads valuation, earnings, financial health, sector.
func GenerateInsights(company models.CompanyProfile, financials models.FinancialAnalysis, earnings models.EarningsAnalysis) []models.Insight {
	var insights []models.Insight

	// Valuation rules. A zero P/E means the ratio was unavailable.
	if company.PERatio != 0 {
		if company.PERatio > 25 {
			insights = append(insights, models.Insight{
				Type:     "valuation",
				Category: "high_pe",
				Message:  fmt.Sprintf("High P/E ratio of %.2f suggests premium valuation", company.PERatio),
				Severity: models.SeverityWarning,
			})
		} else if company.PERatio < 10 {
			insights = append(insights, models.Insight{
				Type:     "valuation",
				Category: "low_pe",
				Message:  fmt.Sprintf("Low P/E ratio of %.2f suggests potential undervaluation", company.PERatio),
				Severity: models.SeverityPositive,
			})
		}
	}

	// Earnings growth rules.
	avgGrowth := earnings.AverageGrowth
	if avgGrowth > 20 {
		insights = append(insights, models.Insight{
			Type:     "earnings",
			Category: "strong_growth",
			Message:  fmt.Sprintf("Strong earnings growth of %.1f%%", avgGrowth),
			Severity: models.SeverityPositive,
		})
	} else if avgGrowth < -10 {
		insights = append(insights, models.Insight{
			Type:     "earnings",
			Category: "declining_earnings",
			Message:  fmt.Sprintf("Declining earnings growth of %.1f%%", avgGrowth),
			Severity: models.SeverityNegative,
		})
	}

	// Financial health rules. An uncomputed current ratio reads 0 and
	// trips the liquidity warning.
	currentRatio := financials.Liquidity["current_ratio"]
	if currentRatio < 1 {
		insights = append(insights, models.Insight{
			Type:     "financial_health",
			Category: "liquidity_concern",
			Message:  fmt.Sprintf("Low current ratio of %.2f indicates potential liquidity issues", currentRatio),
			Severity: models.SeverityWarning,
		})
	} else if currentRatio > 2 {
		insights = append(insights, models.Insight{
			Type:     "financial_health",
			Category: "strong_liquidity",
			Message:  fmt.Sprintf("Strong current ratio of %.2f indicates good liquidity", currentRatio),
			Severity: models.SeverityPositive,
		})
	}

	// Sector rule.
	if company.Sector != "" && company.Sector != "Unknown" {
		insights = append(insights, models.Insight{
			Type:     "sector",
			Category: "sector_info",
			Message:  fmt.Sprintf("Company operates in %s sector", company.Sector),
			Severity: models.SeverityInfo,
		})
	}

	return insights
}

// SummarizeInsights tallies insight severities into an overall
// sentiment plus positioning suggestions. An empty insight list yields
// the neutral zero-value summary.
func SummarizeInsights(insights []models.Insight) models.AnalysisSummary {
	if len(insights) == 0 {
		return models.AnalysisSummary{
			OverallSentiment: "neutral",
			KeyFindings:      []string{},
			Recommendations:  []string{},
		}
	}

	breakdown := make(map[string]int)
	for _, in := range insights {
		breakdown[string(in.Severity)]++
	}

	positive := breakdown[string(models.SeverityPositive)]
	negative := breakdown[string(models.SeverityNegative)]
	warning := breakdown[string(models.SeverityWarning)]

	sentiment := "neutral"
	if positive > negative+warning {
		sentiment = "positive"
	} else if negative > positive+warning {
		sentiment = "negative"
	}

	recommendations := []string{}
	if negative > 2 {
		recommendations = append(recommendations, "Consider reducing position or waiting for improvement")
	}
	if positive > 2 {
		recommendations = append(recommendations, "Consider increasing position or adding to portfolio")
	}
	if warning > 1 {
		recommendations = append(recommendations, "Monitor closely for potential issues")
	}

	findings := make([]string, 0, 5)
	for i, in := range insights {
		if i == 5 {
			break
		}
		findings = append(findings, in.Message)
	}

	return models.AnalysisSummary{
		OverallSentiment:  sentiment,
		KeyFindings:       findings,
		Recommendations:   recommendations,
		InsightCount:      len(insights),
		SeverityBreakdown: breakdown,
	}
}
