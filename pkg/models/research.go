package models

import "time"

// AnalysisPeriod records how far back a research run looked.
type AnalysisPeriod struct {
	NewsDays        int    `json:"news_days"`
	FinancialPeriod string `json:"financial_period"`
}

// ResearchResult is the complete output of one research run: the
// gathered news, the report analysis, and the synthesized insights.
type ResearchResult struct {
	Ticker       string                `json:"ticker_symbol"`
	ResearchDate time.Time             `json:"research_date"`
	Period       AnalysisPeriod        `json:"analysis_period"`
	News         NewsBundle            `json:"news_data"`
	Report       ReportAnalysis        `json:"report_analysis"`
	Insights     ComprehensiveInsights `json:"insights"`
}

// ComparativeResearch collects per-ticker results for a comparison
// run. Tickers that failed carry their error text in Errors instead of
// an entry in Results.
type ComparativeResearch struct {
	Results      map[string]*ResearchResult `json:"comparative_research"`
	Errors       map[string]string          `json:"errors,omitempty"`
	ResearchDate time.Time                  `json:"research_date"`
	Researched   int                        `json:"stocks_researched"`
}
