package datasource

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AIDataFireGirl/investsight/internal/analysis/news"
	"github.com/AIDataFireGirl/investsight/internal/config"
	"github.com/AIDataFireGirl/investsight/pkg/models"
)

// Gatherer composes the concrete sources behind the two gathering
// operations a research run needs: news articles and company
// fundamentals.
type Gatherer struct {
	newsAPI *NewsAPI
	rss     *RSSCollector
	market  *MarketData
}

// NewGatherer builds a gatherer from configuration. The NewsAPI client
// is only wired when a plausible key is configured; without one the
// gather falls back to RSS feeds alone.
func NewGatherer(cfg *config.Config) *Gatherer {
	g := &Gatherer{
		rss:    NewRSSCollector(cfg.News.Feeds),
		market: NewMarketData(time.Duration(cfg.Market.CacheTTLSec) * time.Second),
	}
	if config.ValidateAPIKey(cfg.News.APIKey, "news") {
		g.newsAPI = NewNewsAPI(cfg.News.APIKey, cfg.News.MaxArticlesPerSource)
	}
	return g
}

// Fundamentals bundles everything the report analysis reads for one
// company.
type Fundamentals struct {
	Company    models.CompanyProfile
	Statements models.StatementSet
	EPSHistory []float64
}

// GatherNews collects raw keyword-tagged articles for a ticker from all
// news sources concurrently. It returns the articles, the expanded
// keyword list used for the search, and an error only when every
// source failed and nothing was gathered.
func (g *Gatherer) GatherNews(ctx context.Context, ticker string, extra []string, daysBack int) ([]models.Article, []string, error) {
	keywords := searchKeywords(ticker, extra)

	var mu sync.Mutex
	var apiArticles, rssArticles []models.Article
	var errs []error

	grp, gctx := errgroup.WithContext(ctx)

	if g.newsAPI != nil {
		grp.Go(func() error {
			batch, err := g.newsAPI.Gather(gctx, keywords, daysBack)
			mu.Lock()
			apiArticles = batch
			if err != nil {
				errs = append(errs, fmt.Errorf("newsapi: %w", err))
			}
			mu.Unlock()
			return nil // non-fatal
		})
	}

	grp.Go(func() error {
		batch, err := g.rss.Gather(gctx, keywords, daysBack)
		mu.Lock()
		rssArticles = batch
		if err != nil {
			errs = append(errs, fmt.Errorf("rss: %w", err))
		}
		mu.Unlock()
		return nil // non-fatal
	})

	if err := grp.Wait(); err != nil {
		return nil, keywords, err
	}

	// Deterministic order: API results first, then feeds.
	articles := append(apiArticles, rssArticles...)
	if len(articles) == 0 && len(errs) > 0 {
		return nil, keywords, fmt.Errorf("all news sources failed for %s: %w", ticker, errors.Join(errs...))
	}
	return articles, keywords, nil
}

// GatherFundamentals fetches the company profile, financial statements,
// and earnings history concurrently. Each piece is optional; the run
// only fails when nothing at all could be fetched.
func (g *Gatherer) GatherFundamentals(ctx context.Context, ticker, period string) (*Fundamentals, error) {
	f := &Fundamentals{}

	var mu sync.Mutex
	var errs []error

	grp, gctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		profile, err := g.market.CompanyProfile(gctx, ticker)
		mu.Lock()
		if err != nil {
			errs = append(errs, fmt.Errorf("profile: %w", err))
			f.Company = fallbackProfile()
		} else {
			f.Company = profile
		}
		mu.Unlock()
		return nil // non-fatal
	})

	grp.Go(func() error {
		statements, err := g.market.Statements(gctx, ticker, period)
		mu.Lock()
		if err != nil {
			errs = append(errs, fmt.Errorf("statements: %w", err))
		} else {
			f.Statements = statements
		}
		mu.Unlock()
		return nil
	})

	grp.Go(func() error {
		eps, err := g.market.EarningsHistory(gctx, ticker)
		mu.Lock()
		if err != nil {
			errs = append(errs, fmt.Errorf("earnings: %w", err))
		} else {
			f.EPSHistory = eps
		}
		mu.Unlock()
		return nil
	})

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	if len(errs) == 3 {
		return nil, fmt.Errorf("all fundamental sources failed for %s: %w", ticker, errors.Join(errs...))
	}
	return f, nil
}

// searchKeywords expands the query list for a news gather: caller
// keywords first, then the ticker itself, then the standing financial
// terms.
func searchKeywords(ticker string, extra []string) []string {
	keywords := make([]string, 0, len(extra)+1+15)
	keywords = append(keywords, extra...)
	if ticker != "" {
		keywords = append(keywords, ticker)
	}
	keywords = append(keywords, news.FinancialKeywords()...)
	return keywords
}

// fallbackProfile stands in when the company profile could not be
// fetched at all. Beta defaults to the market average so the risk
// assessment stays neutral.
func fallbackProfile() models.CompanyProfile {
	return models.CompanyProfile{
		Name:     "Unknown",
		Sector:   "Unknown",
		Industry: "Unknown",
		Beta:     1.0,
	}
}
