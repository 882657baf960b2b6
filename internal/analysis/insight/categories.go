package insight

import (
	"strings"

	"github.com/AIDataFireGirl/investsight/internal/analysis/news"
	"github.com/AIDataFireGirl/investsight/internal/analysis/report"
	"github.com/AIDataFireGirl/investsight/pkg/models"
)

// ------------------------------------------------------------------
// Category block builders. Each builder is a pure function of the
// upstream report analysis and news articles; absent data falls back
// to the category's neutral reading rather than erroring.
// ------------------------------------------------------------------

// growthKeywords flag expansion-themed news coverage.
var growthKeywords = []string{"expansion", "growth", "increase", "new market", "acquisition"}

// riskKeywords flag risk-themed news coverage.
var riskKeywords = []string{"risk", "concern", "challenge", "decline", "loss", "volatility"}

// BuildValuation interprets the valuation ratios present in a company
// profile. Absent or nonpositive ratios produce no entry at all.
func BuildValuation(company models.CompanyProfile) models.ValuationInsight {
	metrics := make(map[string]models.RatioReading)

	if company.PERatio > 0 {
		metrics["pe_ratio"] = models.RatioReading{
			Value:          company.PERatio,
			Interpretation: report.InterpretPE(company.PERatio),
		}
	}
	if company.ForwardPE > 0 {
		metrics["forward_pe"] = models.RatioReading{
			Value:          company.ForwardPE,
			Interpretation: report.InterpretPE(company.ForwardPE),
		}
	}
	if company.PriceToBook > 0 {
		metrics["price_to_book"] = models.RatioReading{
			Value:          company.PriceToBook,
			Interpretation: report.InterpretPB(company.PriceToBook),
		}
	}

	return models.ValuationInsight{
		Metrics:    metrics,
		Conclusion: report.ValuationConclusion(metrics),
	}
}

// BuildGrowth reads earnings growth alongside growth-themed news
// coverage. Coverage turns positive once more than 30% of articles
// mention a growth keyword.
func BuildGrowth(earnings models.EarningsAnalysis, articles []models.Article) models.GrowthInsight {
	trend := "decreasing"
	if earnings.AverageGrowth > 0 {
		trend = "increasing"
	}

	mentions := countArticleMentions(articles, growthKeywords)

	sentiment := "neutral"
	if float64(mentions) > float64(len(articles))*0.3 {
		sentiment = "positive"
	}

	return models.GrowthInsight{
		Earnings: models.EarningsGrowth{
			AverageGrowth: earnings.AverageGrowth,
			Trend:         trend,
			Strength:      report.GrowthStrength(earnings.AverageGrowth),
		},
		MarketExpansion: models.MarketExpansion{
			GrowthMentions: mentions,
			Sentiment:      sentiment,
		},
	}
}

// BuildRisk reads market volatility, liquidity, and risk-themed news
// coverage into one block.
func BuildRisk(company models.CompanyProfile, financials models.FinancialAnalysis, articles []models.Article) models.RiskInsight {
	currentRatio := financials.Liquidity["current_ratio"]

	return models.RiskInsight{
		Beta: models.RatioReading{
			Value:          company.Beta,
			Interpretation: report.InterpretBeta(company.Beta),
		},
		Liquidity: models.LiquidityRisk{
			CurrentRatio: currentRatio,
			RiskLevel:    report.LiquidityRiskLevel(currentRatio),
		},
		NewsRiskMentions: countArticleMentions(articles, riskKeywords),
		OverallRiskLevel: report.OverallRiskLevel(company.Beta, currentRatio),
	}
}

// BuildSentiment scores news sentiment weighted by article relevance.
func BuildSentiment(articles []models.Article) models.SentimentInsight {
	score, label := news.ScoreSentiment(articles)
	return models.SentimentInsight{
		OverallSentiment: label,
		Score:            score,
	}
}

// BuildTechnical returns the fixed placeholder block. Real indicator
// support needs price history wired through the datasource layer.
func BuildTechnical() models.TechnicalInsight {
	return models.TechnicalInsight{
		CurrentTrend:  "neutral",
		TrendStrength: "medium",
		PriceMomentum: "stable",
	}
}

// countArticleMentions counts articles whose title or description
// contains any keyword, at most once per article.
func countArticleMentions(articles []models.Article, keywords []string) int {
	mentions := 0
	for _, a := range articles {
		title := strings.ToLower(a.Title)
		description := strings.ToLower(a.Description)

		for _, kw := range keywords {
			if strings.Contains(title, kw) || strings.Contains(description, kw) {
				mentions++
				break
			}
		}
	}
	return mentions
}
