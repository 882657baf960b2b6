// Package research orchestrates a full research run: gather news and
// fundamentals, run the analysis stages, synthesize insights, and
// record the outcome.
package research

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AIDataFireGirl/investsight/internal/analysis/insight"
	"github.com/AIDataFireGirl/investsight/internal/analysis/news"
	"github.com/AIDataFireGirl/investsight/internal/analysis/report"
	"github.com/AIDataFireGirl/investsight/internal/config"
	"github.com/AIDataFireGirl/investsight/internal/datasource"
	"github.com/AIDataFireGirl/investsight/internal/infra"
	"github.com/AIDataFireGirl/investsight/internal/recorder"
	"github.com/AIDataFireGirl/investsight/pkg/models"
	"github.com/AIDataFireGirl/investsight/pkg/utils"
)

var (
	// ErrInvalidTicker rejects a research request whose ticker fails
	// validation before any source is contacted.
	ErrInvalidTicker = errors.New("research: invalid ticker symbol")

	// ErrRateLimited rejects a research request over the configured
	// request budget.
	ErrRateLimited = errors.New("research: rate limit exceeded")
)

// Pipeline stages reported through the progress callback, in order.
const (
	StageGather   = "gather"
	StageNews     = "news"
	StageReport   = "report"
	StageInsights = "insights"
	StageDone     = "done"
)

// ProgressFunc receives stage updates while a run is in flight.
type ProgressFunc func(stage, message string)

// Options tune a single research run. Zero values fall back to the
// configured defaults.
type Options struct {
	DaysBack int
	Period   string
	Keywords []string
	Progress ProgressFunc
}

// Source provides the raw inputs of a run. *datasource.Gatherer is the
// production implementation.
type Source interface {
	GatherNews(ctx context.Context, ticker string, extra []string, daysBack int) ([]models.Article, []string, error)
	GatherFundamentals(ctx context.Context, ticker, period string) (*datasource.Fundamentals, error)
}

// Pipeline runs the research stages for one or more tickers.
type Pipeline struct {
	cfg      *config.Config
	source   Source
	recorder recorder.Recorder
	limiter  *infra.RateLimiter
}

// NewPipeline wires a pipeline from configuration. A nil recorder
// disables run history.
func NewPipeline(cfg *config.Config, source Source, rec recorder.Recorder) *Pipeline {
	p := &Pipeline{cfg: cfg, source: source, recorder: rec}
	if p.recorder == nil {
		p.recorder = recorder.NewNoopRecorder()
	}
	if cfg.Security.EnableRateLimiting {
		p.limiter = infra.NewRateLimiter(cfg.Security.RateLimitPerMinute, time.Minute)
	}
	return p
}

// admit sanitizes and validates a requested ticker and charges the
// request against the rate limit. Every public entry point passes
// through here.
func (p *Pipeline) admit(ticker string) (string, error) {
	symbol := utils.NormalizeTicker(utils.SanitizeInput(ticker))
	if !utils.ValidTicker(symbol) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTicker, ticker)
	}
	if p.limiter != nil && !p.limiter.Allow() {
		return "", fmt.Errorf("%w: %s", ErrRateLimited, symbol)
	}
	return symbol, nil
}

// Research runs the full pipeline for one ticker: concurrent gathering,
// news scoring, report analysis, insight synthesis, and run recording.
func (p *Pipeline) Research(ctx context.Context, ticker string, opts Options) (*models.ResearchResult, error) {
	symbol, err := p.admit(ticker)
	if err != nil {
		return nil, err
	}

	daysBack := opts.DaysBack
	if daysBack <= 0 {
		daysBack = p.cfg.News.DaysBack
	}
	period := opts.Period
	if period == "" {
		period = p.cfg.Research.Period
	}
	notify := func(stage, message string) {
		if opts.Progress != nil {
			opts.Progress(stage, message)
		}
	}

	log.Printf("[INFO] starting research for %s (news %dd, statements %s)", symbol, daysBack, period)
	notify(StageGather, fmt.Sprintf("gathering news and fundamentals for %s", symbol))

	// Phase 1: hit all sources concurrently.
	type phaseErr struct {
		name string
		err  error
	}

	var (
		articles []models.Article
		keywords []string
		funds    *datasource.Fundamentals
	)

	ch := make(chan phaseErr, 2)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		a, k, err := p.source.GatherNews(ctx, symbol, opts.Keywords, daysBack)
		articles, keywords = a, k
		ch <- phaseErr{name: "news", err: err}
	}()
	go func() {
		defer wg.Done()
		f, err := p.source.GatherFundamentals(ctx, symbol, period)
		funds = f
		ch <- phaseErr{name: "fundamentals", err: err}
	}()

	wg.Wait()
	close(ch)

	var gatherErrs []error
	for pe := range ch {
		if pe.err != nil {
			log.Printf("[ERROR] %s gather for %s: %v", pe.name, symbol, pe.err)
			gatherErrs = append(gatherErrs, fmt.Errorf("%s: %w", pe.name, pe.err))
		}
	}
	if funds == nil && len(articles) == 0 {
		return nil, fmt.Errorf("research %s: %w", symbol, errors.Join(gatherErrs...))
	}
	if funds == nil {
		// Every fundamental source failed but news survived; analyze
		// against a neutral profile.
		funds = &datasource.Fundamentals{Company: models.CompanyProfile{
			Name:     "Unknown",
			Sector:   "Unknown",
			Industry: "Unknown",
			Beta:     1.0,
		}}
	}

	// Phase 2: score, filter, and summarize the news.
	notify(StageNews, fmt.Sprintf("processing %d articles", len(articles)))
	bundle := buildNewsBundle(symbol, keywords, articles)

	// Phase 3: analyze the fundamentals.
	notify(StageReport, "analyzing financial reports")
	analysis := buildReport(symbol, period, funds)

	// Phase 4: synthesize.
	notify(StageInsights, "synthesizing insights")
	insights, err := insight.Synthesize(bundle, analysis)
	if err != nil {
		return nil, fmt.Errorf("synthesize %s: %w", symbol, err)
	}

	result := &models.ResearchResult{
		Ticker:       symbol,
		ResearchDate: time.Now(),
		Period: models.AnalysisPeriod{
			NewsDays:        daysBack,
			FinancialPeriod: period,
		},
		News:     bundle,
		Report:   analysis,
		Insights: *insights,
	}

	if err := p.recorder.RecordRun(&recorder.RunRecord{
		ID:         uuid.NewString(),
		Ticker:     symbol,
		Score:      insights.Combined.OverallScore,
		Action:     insights.Recommendation.Action,
		Confidence: insights.Recommendation.Confidence,
		CreatedAt:  result.ResearchDate,
	}); err != nil {
		log.Printf("[ERROR] record run for %s: %v", symbol, err)
	}

	log.Printf("[INFO] research completed for %s: %s (score %.2f)",
		symbol, insights.Recommendation.Action, insights.Combined.OverallScore)
	notify(StageDone, fmt.Sprintf("research completed for %s", symbol))
	return result, nil
}

// NewsBundle runs only the news stage: gather, score, filter, and
// summarize. Backs the news endpoint and command.
func (p *Pipeline) NewsBundle(ctx context.Context, ticker string, opts Options) (*models.NewsBundle, error) {
	symbol, err := p.admit(ticker)
	if err != nil {
		return nil, err
	}

	daysBack := opts.DaysBack
	if daysBack <= 0 {
		daysBack = p.cfg.News.DaysBack
	}

	articles, keywords, err := p.source.GatherNews(ctx, symbol, opts.Keywords, daysBack)
	if err != nil {
		return nil, fmt.Errorf("gather news %s: %w", symbol, err)
	}

	bundle := buildNewsBundle(symbol, keywords, articles)
	return &bundle, nil
}

// ReportAnalysis runs only the fundamentals stage: gather statements
// and profile, then derive ratios, earnings growth, and insights.
func (p *Pipeline) ReportAnalysis(ctx context.Context, ticker string, opts Options) (*models.ReportAnalysis, error) {
	symbol, err := p.admit(ticker)
	if err != nil {
		return nil, err
	}

	period := opts.Period
	if period == "" {
		period = p.cfg.Research.Period
	}

	funds, err := p.source.GatherFundamentals(ctx, symbol, period)
	if err != nil {
		return nil, fmt.Errorf("gather fundamentals %s: %w", symbol, err)
	}

	analysis := buildReport(symbol, period, funds)
	return &analysis, nil
}

// RecentRuns exposes run history for the API and status surfaces.
func (p *Pipeline) RecentRuns(limit int) ([]recorder.RunRecord, error) {
	return p.recorder.RecentRuns(limit)
}

// Close releases the pipeline's recorder.
func (p *Pipeline) Close() error {
	return p.recorder.Close()
}

// buildNewsBundle scores raw articles against the keyword that matched
// them, filters and sorts the set, and attaches the summary with the
// overall sentiment reading.
func buildNewsBundle(ticker string, keywords []string, raw []models.Article) models.NewsBundle {
	scored := make([]models.Article, len(raw))
	for i, a := range raw {
		kw := a.Keyword
		if kw == "" {
			kw = ticker
		}
		a.Relevance = news.ScoreRelevance(a, kw)
		scored[i] = a
	}

	filtered := news.FilterArticles(scored)
	summary, err := news.Summarize(filtered)
	if err != nil {
		// No article carried a timestamp; keep the counts that still hold.
		summary = models.NewsSummary{TotalArticles: len(filtered)}
	}
	_, label := news.ScoreSentiment(filtered)
	summary.SentimentOverview = string(label)

	return models.NewsBundle{
		Ticker:     ticker,
		Keywords:   keywords,
		GatheredAt: time.Now(),
		Articles:   filtered,
		Summary:    summary,
	}
}

// buildReport runs the statement and earnings analysis over the
// gathered fundamentals.
func buildReport(ticker, period string, f *datasource.Fundamentals) models.ReportAnalysis {
	financials := report.AnalyzeStatements(f.Statements)
	earnings := report.AnalyzeEarnings(f.EPSHistory)
	insights := report.GenerateInsights(f.Company, financials, earnings)

	return models.ReportAnalysis{
		Ticker:       ticker,
		AnalysisDate: time.Now(),
		Period:       period,
		Company:      f.Company,
		Financials:   financials,
		Earnings:     earnings,
		Insights:     insights,
		Summary:      report.SummarizeInsights(insights),
	}
}
