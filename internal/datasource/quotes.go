package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/piquette/finance-go/equity"

	"github.com/AIDataFireGirl/investsight/internal/analysis/report"
	"github.com/AIDataFireGirl/investsight/internal/infra"
	"github.com/AIDataFireGirl/investsight/pkg/models"
	"github.com/AIDataFireGirl/investsight/pkg/utils"
)

const quoteSummaryBaseURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"

// MarketData fetches company fundamentals from Yahoo Finance. The quote
// and valuation numbers come through finance-go; sector, industry,
// beta, financial statements, and earnings history live in quoteSummary
// modules that finance-go does not expose, so those are fetched
// directly.
type MarketData struct {
	cache       *infra.Cache
	limiter     *infra.RateLimiter
	summaryBase string
}

// NewMarketData creates a market data source caching responses for ttl.
func NewMarketData(ttl time.Duration) *MarketData {
	return &MarketData{
		cache:       infra.NewCache(ttl),
		limiter:     infra.NewRateLimiter(5, time.Second), // 5 req/s
		summaryBase: quoteSummaryBaseURL,
	}
}

// --- Yahoo Finance quoteSummary API types ---

type yfSummaryResponse struct {
	QuoteSummary struct {
		Result []yfSummaryResult `json:"result"`
		Error  *yfError          `json:"error"`
	} `json:"quoteSummary"`
}

type yfSummaryResult struct {
	AssetProfile  *yfAssetProfile  `json:"assetProfile"`
	KeyStatistics *yfKeyStatistics `json:"defaultKeyStatistics"`

	IncomeHistory            *yfStatementList `json:"incomeStatementHistory"`
	IncomeHistoryQuarterly   *yfStatementList `json:"incomeStatementHistoryQuarterly"`
	BalanceHistory           *yfStatementList `json:"balanceSheetHistory"`
	BalanceHistoryQuarterly  *yfStatementList `json:"balanceSheetHistoryQuarterly"`
	CashflowHistory          *yfStatementList `json:"cashflowStatementHistory"`
	CashflowHistoryQuarterly *yfStatementList `json:"cashflowStatementHistoryQuarterly"`

	Earnings *yfEarnings `json:"earnings"`
}

type yfAssetProfile struct {
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

type yfKeyStatistics struct {
	Beta            yfFinVal `json:"beta"`
	EnterpriseValue yfFinVal `json:"enterpriseValue"`
}

// yfStatementList carries one statement history module. Yahoo names the
// inner array differently per statement type; only one of the fields is
// populated for any given module.
type yfStatementList struct {
	Income   []yfStatement `json:"incomeStatementHistory"`
	Balance  []yfStatement `json:"balanceSheetStatements"`
	Cashflow []yfStatement `json:"cashflowStatements"`
}

func (l *yfStatementList) statements() []yfStatement {
	if l == nil {
		return nil
	}
	switch {
	case len(l.Income) > 0:
		return l.Income
	case len(l.Balance) > 0:
		return l.Balance
	default:
		return l.Cashflow
	}
}

// yfStatement holds the line items the ratio analysis reads. Yahoo
// omits unavailable items, leaving them at their zero value.
type yfStatement struct {
	EndDate                 yfFinVal `json:"endDate"`
	TotalRevenue            yfFinVal `json:"totalRevenue"`
	NetIncome               yfFinVal `json:"netIncome"`
	TotalCurrentAssets      yfFinVal `json:"totalCurrentAssets"`
	TotalCurrentLiabilities yfFinVal `json:"totalCurrentLiabilities"`
	TotalAssets             yfFinVal `json:"totalAssets"`
}

type yfEarnings struct {
	EarningsChart struct {
		Quarterly []yfEarningsQuarter `json:"quarterly"`
	} `json:"earningsChart"`
}

type yfEarningsQuarter struct {
	Date   string   `json:"date"`
	Actual yfFinVal `json:"actual"`
}

type yfFinVal struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// --- Public methods ---

// CompanyProfile returns the descriptive and valuation snapshot for a
// ticker. Missing text fields default to "Unknown" and missing numbers
// stay at zero.
func (m *MarketData) CompanyProfile(ctx context.Context, ticker string) (models.CompanyProfile, error) {
	symbol := utils.ToYahooSymbol(ticker)

	cacheKey := "profile:" + symbol
	if cached, ok := m.cache.Get(cacheKey); ok {
		return cached.(models.CompanyProfile), nil
	}

	if err := m.limiter.Wait(ctx); err != nil {
		return models.CompanyProfile{}, err
	}

	eq, err := equity.Get(symbol)
	if err != nil {
		return models.CompanyProfile{}, fmt.Errorf("equity quote %s: %w", symbol, err)
	}
	if eq == nil {
		return models.CompanyProfile{}, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	profile := models.CompanyProfile{
		Name:           coalesce(eq.LongName, eq.ShortName, "Unknown"),
		Sector:         "Unknown",
		Industry:       "Unknown",
		MarketCap:      float64(eq.MarketCap),
		PERatio:        eq.TrailingPE,
		ForwardPE:      eq.ForwardPE,
		PriceToBook:    eq.PriceToBook,
		DividendYield:  eq.TrailingAnnualDividendYield,
		FiftyTwoWkHigh: eq.FiftyTwoWeekHigh,
		FiftyTwoWkLow:  eq.FiftyTwoWeekLow,
	}

	// Sector, industry, beta, and enterprise value only exist in the
	// profile modules. A failed supplement is not fatal; the defaults
	// stay in place.
	if summary, err := m.fetchSummary(ctx, symbol, "assetProfile,defaultKeyStatistics"); err == nil {
		if ap := summary.AssetProfile; ap != nil {
			if ap.Sector != "" {
				profile.Sector = ap.Sector
			}
			if ap.Industry != "" {
				profile.Industry = ap.Industry
			}
		}
		if ks := summary.KeyStatistics; ks != nil {
			profile.Beta = ks.Beta.Raw
			profile.EnterpriseValue = ks.EnterpriseValue.Raw
		}
	}

	m.cache.Set(cacheKey, profile)
	return profile, nil
}

// Statements returns the raw financial statements for the given period,
// "annual" or "quarterly", newest period first.
func (m *MarketData) Statements(ctx context.Context, ticker, period string) (models.StatementSet, error) {
	var modules string
	switch period {
	case "annual":
		modules = "incomeStatementHistory,balanceSheetHistory,cashflowStatementHistory"
	case "quarterly":
		modules = "incomeStatementHistoryQuarterly,balanceSheetHistoryQuarterly,cashflowStatementHistoryQuarterly"
	default:
		return models.StatementSet{}, fmt.Errorf("%w: statement period %q", ErrNotSupported, period)
	}

	symbol := utils.ToYahooSymbol(ticker)
	summary, err := m.fetchSummary(ctx, symbol, modules)
	if err != nil {
		return models.StatementSet{}, err
	}

	set := models.StatementSet{}
	if period == "annual" {
		set.IncomeStatement = toStatementMaps(summary.IncomeHistory.statements())
		set.BalanceSheet = toStatementMaps(summary.BalanceHistory.statements())
		set.CashFlow = toStatementMaps(summary.CashflowHistory.statements())
	} else {
		set.IncomeStatement = toStatementMaps(summary.IncomeHistoryQuarterly.statements())
		set.BalanceSheet = toStatementMaps(summary.BalanceHistoryQuarterly.statements())
		set.CashFlow = toStatementMaps(summary.CashflowHistoryQuarterly.statements())
	}
	return set, nil
}

// EarningsHistory returns the recent quarterly EPS actuals in
// chronological order for period-over-period growth analysis.
func (m *MarketData) EarningsHistory(ctx context.Context, ticker string) ([]float64, error) {
	symbol := utils.ToYahooSymbol(ticker)

	summary, err := m.fetchSummary(ctx, symbol, "earnings")
	if err != nil {
		return nil, err
	}
	if summary.Earnings == nil {
		return nil, nil
	}

	quarters := summary.Earnings.EarningsChart.Quarterly
	eps := make([]float64, 0, len(quarters))
	for _, q := range quarters {
		eps = append(eps, q.Actual.Raw)
	}
	return eps, nil
}

// --- Internal helpers ---

// fetchSummary fetches and caches one quoteSummary call for the given
// comma-separated modules.
func (m *MarketData) fetchSummary(ctx context.Context, symbol, modules string) (*yfSummaryResult, error) {
	cacheKey := "summary:" + symbol + ":" + modules
	if cached, ok := m.cache.Get(cacheKey); ok {
		return cached.(*yfSummaryResult), nil
	}

	if err := m.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s?modules=%s", m.summaryBase, symbol, modules)
	body, _, err := doGet(ctx, url, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo quoteSummary %s: %w", symbol, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp yfSummaryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse quoteSummary: %w", err)
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo API error: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, symbol)
	}

	result := &resp.QuoteSummary.Result[0]
	m.cache.Set(cacheKey, result)
	return result, nil
}

// toStatementMaps converts Yahoo statements to the canonical line-item
// maps the ratio analysis reads. Yahoo serves zero raw values for
// unavailable items, so zeros are treated as absent.
func toStatementMaps(statements []yfStatement) []map[string]float64 {
	out := make([]map[string]float64, 0, len(statements))
	for _, s := range statements {
		items := map[string]float64{}
		putLine(items, report.LineTotalRevenue, s.TotalRevenue)
		putLine(items, report.LineNetIncome, s.NetIncome)
		putLine(items, report.LineTotalCurrentAssets, s.TotalCurrentAssets)
		putLine(items, report.LineTotalCurrentLiabilities, s.TotalCurrentLiabilities)
		putLine(items, report.LineTotalAssets, s.TotalAssets)
		out = append(out, items)
	}
	return out
}

func putLine(items map[string]float64, name string, v yfFinVal) {
	if v.Raw != 0 {
		items[name] = v.Raw
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
