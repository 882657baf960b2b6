package insight

import (
	"errors"
	"time"

	"github.com/AIDataFireGirl/investsight/pkg/models"
)

// ErrMissingInput is returned when either synthesis input carries no
// data at all.
var ErrMissingInput = errors.New("insight: both news data and report analysis are required")

// Synthesize runs the full pipeline over gathered news and a report
// analysis: the five category blocks, their weighted combination, and
// the recommendation derived from it.
func Synthesize(bundle models.NewsBundle, report models.ReportAnalysis) (*models.ComprehensiveInsights, error) {
	if emptyBundle(bundle) || emptyReport(report) {
		return nil, ErrMissingInput
	}

	ticker := report.Ticker
	if ticker == "" {
		ticker = "Unknown"
	}

	valuation := BuildValuation(report.Company)
	growth := BuildGrowth(report.Earnings, bundle.Articles)
	risk := BuildRisk(report.Company, report.Financials, bundle.Articles)
	sentiment := BuildSentiment(bundle.Articles)
	technical := BuildTechnical()

	combined := Combine(valuation, growth, risk, sentiment, technical)
	rec := Recommend(combined)

	return &models.ComprehensiveInsights{
		GeneratedAt:    time.Now(),
		Ticker:         ticker,
		Valuation:      valuation,
		Growth:         growth,
		Risk:           risk,
		Sentiment:      sentiment,
		Technical:      technical,
		Combined:       combined,
		Recommendation: rec,
		Confidence:     placeholderConfidence,
		KeyRisks:       KeyRisks(risk),
		Opportunities:  Opportunities(growth, sentiment),
		Summary:        ExecutiveSummary(combined, rec),
	}, nil
}

func emptyBundle(b models.NewsBundle) bool {
	return b.Ticker == "" && len(b.Articles) == 0
}

func emptyReport(r models.ReportAnalysis) bool {
	return r.Ticker == "" && len(r.Insights) == 0 && r.Company == (models.CompanyProfile{})
}
