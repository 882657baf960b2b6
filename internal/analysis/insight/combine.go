package insight

import "github.com/AIDataFireGirl/investsight/pkg/models"

// Category weights for the overall score.
const (
	weightValuation = 0.25
	weightGrowth    = 0.25
	weightRisk      = 0.20
	weightSentiment = 0.20
	weightTechnical = 0.10
)

// ValuationScore maps a valuation conclusion to [0, 1].
func ValuationScore(v models.ValuationInsight) float64 {
	switch v.Conclusion {
	case "attractive":
		return 0.8
	case "unattractive":
		return 0.2
	default:
		return 0.5
	}
}

// GrowthScore maps earnings growth strength to [0, 1]. An unset
// strength reads weak.
func GrowthScore(g models.GrowthInsight) float64 {
	switch g.Earnings.Strength {
	case "strong":
		return 0.8
	case "moderate":
		return 0.6
	case "declining":
		return 0.2
	default:
		return 0.4
	}
}

// RiskScore maps the overall risk level to [0, 1]. Lower is better:
// the score measures riskiness, not attractiveness.
func RiskScore(r models.RiskInsight) float64 {
	switch r.OverallRiskLevel {
	case models.RiskLow:
		return 0.2
	case models.RiskHigh:
		return 0.8
	default:
		return 0.5
	}
}

// TechnicalScore is the placeholder technical reading.
func TechnicalScore(t models.TechnicalInsight) float64 {
	return 0.5
}

// Combine merges the five category blocks into per-category scores, a
// weighted overall score, and strength/weakness tags. The sentiment
// score passes through unclamped, so the overall score can drift
// outside [0, 1] under extreme sentiment.
func Combine(valuation models.ValuationInsight, growth models.GrowthInsight, risk models.RiskInsight, sentiment models.SentimentInsight, technical models.TechnicalInsight) models.CombinedInsight {
	combined := models.CombinedInsight{
		ValuationScore: ValuationScore(valuation),
		GrowthScore:    GrowthScore(growth),
		RiskScore:      RiskScore(risk),
		SentimentScore: sentiment.Score,
		TechnicalScore: TechnicalScore(technical),
		Strengths:      []string{},
		Weaknesses:     []string{},
		NeutralFactors: []string{},
	}

	combined.OverallScore = weightValuation*combined.ValuationScore +
		weightGrowth*combined.GrowthScore +
		weightRisk*combined.RiskScore +
		weightSentiment*combined.SentimentScore +
		weightTechnical*combined.TechnicalScore

	if combined.ValuationScore > 0.6 {
		combined.Strengths = append(combined.Strengths, "Attractive valuation")
	} else if combined.ValuationScore < 0.4 {
		combined.Weaknesses = append(combined.Weaknesses, "Unattractive valuation")
	}

	if combined.GrowthScore > 0.6 {
		combined.Strengths = append(combined.Strengths, "Strong growth prospects")
	} else if combined.GrowthScore < 0.4 {
		combined.Weaknesses = append(combined.Weaknesses, "Weak growth prospects")
	}

	// Risk reads inverted: a low risk score is a strength.
	if combined.RiskScore < 0.4 {
		combined.Strengths = append(combined.Strengths, "Low risk profile")
	} else if combined.RiskScore > 0.6 {
		combined.Weaknesses = append(combined.Weaknesses, "High risk profile")
	}

	return combined
}
