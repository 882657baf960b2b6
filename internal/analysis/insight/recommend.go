package insight

import (
	"fmt"
	"strings"

	"github.com/AIDataFireGirl/investsight/pkg/models"
)

// placeholderConfidence is the fixed analysis confidence until data
// quality and coverage feed a real metric.
const placeholderConfidence = 0.75

// Recommend derives the discrete recommendation from a combined
// insight. The score bands only ever produce buy, hold, or sell; the
// strong variants stay unreachable from this table.
func Recommend(combined models.CombinedInsight) models.Recommendation {
	score := combined.OverallScore

	var action models.Action
	var confidence models.Confidence
	switch {
	case score >= 0.7:
		action, confidence = models.ActionBuy, models.ConfidenceHigh
	case score >= 0.6:
		action, confidence = models.ActionBuy, models.ConfidenceMedium
	case score >= 0.4:
		action, confidence = models.ActionHold, models.ConfidenceMedium
	case score >= 0.3:
		action, confidence = models.ActionSell, models.ConfidenceMedium
	default:
		action, confidence = models.ActionSell, models.ConfidenceHigh
	}

	return models.Recommendation{
		Action:       action,
		Confidence:   confidence,
		Score:        score,
		Rationale:    Rationale(combined),
		TimeHorizon:  TimeHorizon(score),
		PositionSize: PositionSize(score, combined.RiskScore),
	}
}

// Rationale concatenates the strength and concern clauses; either is
// omitted when its list is empty.
func Rationale(combined models.CombinedInsight) string {
	rationale := "Based on comprehensive analysis: "

	if len(combined.Strengths) > 0 {
		rationale += fmt.Sprintf("Strengths include %s. ", strings.Join(combined.Strengths, ", "))
	}
	if len(combined.Weaknesses) > 0 {
		rationale += fmt.Sprintf("Concerns include %s. ", strings.Join(combined.Weaknesses, ", "))
	}

	return rationale
}

// TimeHorizon suggests how long to hold given the overall score.
func TimeHorizon(score float64) string {
	switch {
	case score >= 0.7:
		return "Long-term (2+ years)"
	case score >= 0.5:
		return "Medium-term (6-18 months)"
	default:
		return "Short-term (3-6 months)"
	}
}

// PositionSize suggests a portfolio allocation band. Clauses evaluate
// in order; the first match wins, so a 0.65 score lands on the medium
// band even with low risk.
func PositionSize(score, riskScore float64) string {
	switch {
	case score >= 0.7 && riskScore < 0.4:
		return "Large position (5-10% of portfolio)"
	case score >= 0.6:
		return "Medium position (2-5% of portfolio)"
	case score >= 0.4:
		return "Small position (1-2% of portfolio)"
	default:
		return "Avoid or minimal position (<1% of portfolio)"
	}
}

// KeyRisks lists the headline risks read from the risk block.
func KeyRisks(risk models.RiskInsight) []string {
	risks := []string{}

	if risk.OverallRiskLevel == models.RiskHigh {
		risks = append(risks, "High overall risk profile")
	}
	if risk.Beta.Value > 1.5 {
		risks = append(risks, "High market volatility (beta > 1.5)")
	}
	if risk.Liquidity.RiskLevel == models.RiskHigh {
		risks = append(risks, "Liquidity concerns")
	}

	return risks
}

// Opportunities lists the headline upside drivers.
func Opportunities(growth models.GrowthInsight, sentiment models.SentimentInsight) []string {
	opportunities := []string{}

	if growth.Earnings.Strength == "strong" {
		opportunities = append(opportunities, "Strong earnings growth trajectory")
	}
	if sentiment.OverallSentiment == models.SentimentPositive {
		opportunities = append(opportunities, "Positive market sentiment")
	}

	return opportunities
}

// ExecutiveSummary renders the headline view of a combined insight and
// its recommendation.
func ExecutiveSummary(combined models.CombinedInsight, rec models.Recommendation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Overall Score: %.2f/1.00\n", combined.OverallScore)
	fmt.Fprintf(&b, "Recommendation: %s\n", strings.ToUpper(string(rec.Action)))
	fmt.Fprintf(&b, "Confidence: %s\n\n", titleCase(string(rec.Confidence)))

	if len(combined.Strengths) > 0 {
		b.WriteString("Key Strengths:\n")
		for _, s := range combined.Strengths {
			fmt.Fprintf(&b, "• %s\n", s)
		}
		b.WriteString("\n")
	}

	if len(combined.Weaknesses) > 0 {
		b.WriteString("Key Concerns:\n")
		for _, w := range combined.Weaknesses {
			fmt.Fprintf(&b, "• %s\n", w)
		}
	}

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
