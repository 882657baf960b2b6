package models

import "time"

// RiskLevel grades overall or per-factor risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// SentimentLabel is the discrete reading of a sentiment score.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// RatioReading pairs a raw ratio with its textual interpretation.
type RatioReading struct {
	Value          float64 `json:"value"`
	Interpretation string  `json:"interpretation"`
}

// ValuationInsight interprets the valuation ratios that were present in
// the company profile. Metrics holds one entry per ratio that was
// available and positive, keyed pe_ratio, forward_pe, price_to_book.
type ValuationInsight struct {
	Metrics    map[string]RatioReading `json:"valuation_metrics"`
	Conclusion string                  `json:"valuation_conclusion"`
}

// EarningsGrowth reads the average earnings growth rate.
type EarningsGrowth struct {
	AverageGrowth float64 `json:"average_growth"`
	Trend         string  `json:"trend"`
	Strength      string  `json:"strength"`
}

// MarketExpansion counts growth-themed news coverage.
type MarketExpansion struct {
	GrowthMentions int    `json:"growth_mentions"`
	Sentiment      string `json:"sentiment"`
}

// GrowthInsight is the growth category block.
type GrowthInsight struct {
	Earnings        EarningsGrowth  `json:"earnings_growth"`
	MarketExpansion MarketExpansion `json:"market_expansion"`
}

// LiquidityRisk reads the current ratio as a risk level.
type LiquidityRisk struct {
	CurrentRatio float64   `json:"current_ratio"`
	RiskLevel    RiskLevel `json:"risk_level"`
}

// RiskInsight is the risk category block.
type RiskInsight struct {
	Beta             RatioReading  `json:"beta"`
	Liquidity        LiquidityRisk `json:"liquidity"`
	NewsRiskMentions int           `json:"news_risk_mentions"`
	OverallRiskLevel RiskLevel     `json:"overall_risk_level"`
}

// SentimentInsight is the sentiment category block. Score stays in
// [-1, 1]; it is passed through to combination unclamped.
type SentimentInsight struct {
	OverallSentiment SentimentLabel `json:"overall_sentiment"`
	Score            float64        `json:"sentiment_score"`
}

// TechnicalInsight is a fixed placeholder until price history feeds a
// real indicator pipeline.
type TechnicalInsight struct {
	CurrentTrend  string `json:"current_trend"`
	TrendStrength string `json:"trend_strength"`
	PriceMomentum string `json:"price_momentum"`
}

// CombinedInsight carries the five category scores, their weighted
// overall score, and the tags derived from them. All scores live in
// [0, 1] except SentimentScore, which may run negative.
type CombinedInsight struct {
	ValuationScore float64  `json:"valuation_score"`
	GrowthScore    float64  `json:"growth_score"`
	RiskScore      float64  `json:"risk_score"`
	SentimentScore float64  `json:"sentiment_score"`
	TechnicalScore float64  `json:"technical_score"`
	OverallScore   float64  `json:"overall_score"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	NeutralFactors []string `json:"neutral_factors"`
}

// ComprehensiveInsights is the full synthesis for one ticker: the five
// category blocks, their combination, and the resulting recommendation.
type ComprehensiveInsights struct {
	GeneratedAt    time.Time        `json:"generated_at"`
	Ticker         string           `json:"ticker_symbol"`
	Valuation      ValuationInsight `json:"valuation_insights"`
	Growth         GrowthInsight    `json:"growth_insights"`
	Risk           RiskInsight      `json:"risk_insights"`
	Sentiment      SentimentInsight `json:"sentiment_insights"`
	Technical      TechnicalInsight `json:"technical_insights"`
	Combined       CombinedInsight  `json:"combined_insights"`
	Recommendation Recommendation   `json:"investment_recommendation"`
	Confidence     float64          `json:"confidence_score"`
	KeyRisks       []string         `json:"key_risks"`
	Opportunities  []string         `json:"opportunities"`
	Summary        string           `json:"summary"`
}
