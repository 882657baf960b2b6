package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AIDataFireGirl/investsight/internal/analysis/report"
	"github.com/AIDataFireGirl/investsight/internal/config"
	"github.com/AIDataFireGirl/investsight/internal/datasource"
	"github.com/AIDataFireGirl/investsight/internal/recorder"
	"github.com/AIDataFireGirl/investsight/internal/research"
	"github.com/AIDataFireGirl/investsight/internal/tickers"
	"github.com/AIDataFireGirl/investsight/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

// stubSource returns canned gather results and remembers the options
// each call carried.
type stubSource struct {
	articles []models.Article
	keywords []string
	newsErr  error
	funds    *datasource.Fundamentals
	fundsErr error

	gotDays   int
	gotPeriod string
}

var _ research.Source = (*stubSource)(nil)

func (s *stubSource) GatherNews(_ context.Context, _ string, _ []string, daysBack int) ([]models.Article, []string, error) {
	s.gotDays = daysBack
	return s.articles, s.keywords, s.newsErr
}

func (s *stubSource) GatherFundamentals(_ context.Context, _, period string) (*datasource.Fundamentals, error) {
	s.gotPeriod = period
	return s.funds, s.fundsErr
}

// captureRecorder keeps recorded runs in memory.
type captureRecorder struct {
	runs []recorder.RunRecord
}

var _ recorder.Recorder = (*captureRecorder)(nil)

func (c *captureRecorder) RecordRun(rec *recorder.RunRecord) error {
	c.runs = append(c.runs, *rec)
	return nil
}

func (c *captureRecorder) RecentRuns(limit int) ([]recorder.RunRecord, error) {
	if limit > 0 && limit < len(c.runs) {
		return c.runs[:limit], nil
	}
	return c.runs, nil
}

func (c *captureRecorder) Close() error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		News:     config.NewsConfig{DaysBack: 7, MaxArticlesPerSource: 10},
		Research: config.ResearchConfig{Period: "annual"},
	}
}

func rawArticles() []models.Article {
	published := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	return []models.Article{
		{
			Title:       "AAPL earnings beat expectations",
			Description: "Strong quarterly profit growth",
			Source:      "Feed A",
			Keyword:     "AAPL",
			PublishedAt: published,
		},
		{
			Title:       "Apple stock rises on record revenue",
			Description: "Growth in services",
			Source:      "Feed B",
			Keyword:     "stock",
			PublishedAt: published.Add(2 * time.Hour),
		},
	}
}

func sampleFundamentals() *datasource.Fundamentals {
	return &datasource.Fundamentals{
		Company: models.CompanyProfile{
			Name:        "Apple Inc.",
			Sector:      "Technology",
			Industry:    "Consumer Electronics",
			MarketCap:   3.4e12,
			PERatio:     8,
			PriceToBook: 0.5,
			Beta:        0.5,
		},
		Statements: models.StatementSet{
			IncomeStatement: []map[string]float64{{
				report.LineTotalRevenue: 400e9,
				report.LineNetIncome:    100e9,
			}},
			BalanceSheet: []map[string]float64{{
				report.LineTotalCurrentAssets:      150e9,
				report.LineTotalCurrentLiabilities: 60e9,
				report.LineTotalAssets:             350e9,
			}},
		},
		EPSHistory: []float64{1.2, 1.5, 1.875},
	}
}

func happySource() *stubSource {
	return &stubSource{
		articles: rawArticles(),
		keywords: []string{"AAPL", "earnings"},
		funds:    sampleFundamentals(),
	}
}

// testServer wires a server around a stub source, skipping the live
// gatherer and the SQLite recorder.
func testServer(t *testing.T, src research.Source, rec recorder.Recorder) *Server {
	t.Helper()
	return testServerWithConfig(t, testConfig(), src, rec)
}

func testServerWithConfig(t *testing.T, cfg *config.Config, src research.Source, rec recorder.Recorder) *Server {
	t.Helper()
	dir, err := tickers.NewDirectory()
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}
	srv := NewServerWith(cfg, research.NewPipeline(cfg, src, rec), dir)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func doRequest(srv *Server, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func dataMap(t *testing.T, resp APIResponse) map[string]interface{} {
	t.Helper()
	m, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data should be a map, got %T", resp.Data)
	}
	return m
}

// ════════════════════════════════════════════════════════════════════
// APIResponse envelope tests
// ════════════════════════════════════════════════════════════════════

func TestAPIResponseJSON(t *testing.T) {
	tests := []struct {
		name string
		resp APIResponse
	}{
		{
			name: "success with data",
			resp: APIResponse{Success: true, Data: map[string]string{"key": "value"}},
		},
		{
			name: "error",
			resp: APIResponse{Success: false, Error: "something went wrong"},
		},
		{
			name: "success with nil data",
			resp: APIResponse{Success: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.resp)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}

			var got APIResponse
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			if got.Success != tt.resp.Success {
				t.Errorf("Success: got %v, want %v", got.Success, tt.resp.Success)
			}
			if got.Error != tt.resp.Error {
				t.Errorf("Error: got %q, want %q", got.Error, tt.resp.Error)
			}
		})
	}
}

func TestAPIResponse_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(APIResponse{Success: true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "error") {
		t.Errorf("success envelope should omit error: %s", data)
	}
	if strings.Contains(string(data), "data") {
		t.Errorf("empty envelope should omit data: %s", data)
	}
}

// ════════════════════════════════════════════════════════════════════
// Health handler tests
// ════════════════════════════════════════════════════════════════════

func TestHandleHealth(t *testing.T) {
	srv := testServer(t, happySource(), nil)

	for _, path := range []string{"/health", "/api/v1/health"} {
		rec := doRequest(srv, "GET", path)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s status: got %d, want %d", path, rec.Code, http.StatusOK)
		}

		resp := decodeResponse(t, rec)
		if !resp.Success {
			t.Error("expected success=true")
		}

		data := dataMap(t, resp)
		if data["status"] != "ok" {
			t.Errorf("status: got %q", data["status"])
		}
		if _, ok := data["market_status"]; !ok {
			t.Error("missing market_status")
		}
		if _, ok := data["time_et"]; !ok {
			t.Error("missing time_et")
		}
		if _, ok := data["version"]; !ok {
			t.Error("missing version")
		}
	}
}

func TestHealthResponse_ContentType(t *testing.T) {
	srv := testServer(t, happySource(), nil)
	rec := doRequest(srv, "GET", "/health")

	ct := rec.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}
}

// ════════════════════════════════════════════════════════════════════
// Research handler tests
// ════════════════════════════════════════════════════════════════════

func TestHandleResearch(t *testing.T) {
	capture := &captureRecorder{}
	srv := testServer(t, happySource(), capture)

	rec := doRequest(srv, "GET", "/api/v1/research/aapl")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d\nbody: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("expected success=true, error: %q", resp.Error)
	}

	data := dataMap(t, resp)
	if data["ticker_symbol"] != "AAPL" {
		t.Errorf("ticker_symbol: got %q", data["ticker_symbol"])
	}
	if _, ok := data["insights"]; !ok {
		t.Error("missing insights")
	}

	period, ok := data["analysis_period"].(map[string]interface{})
	if !ok {
		t.Fatal("analysis_period should be a map")
	}
	if period["news_days"] != float64(7) {
		t.Errorf("news_days: got %v, want 7", period["news_days"])
	}
	if period["financial_period"] != "annual" {
		t.Errorf("financial_period: got %v", period["financial_period"])
	}

	if len(capture.runs) != 1 {
		t.Fatalf("recorded runs: got %d, want 1", len(capture.runs))
	}
	if capture.runs[0].Ticker != "AAPL" {
		t.Errorf("recorded ticker: got %q", capture.runs[0].Ticker)
	}
}

func TestHandleResearch_QueryOverrides(t *testing.T) {
	src := happySource()
	srv := testServer(t, src, nil)

	rec := doRequest(srv, "GET", "/api/v1/research/AAPL?days=3&period=quarterly")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	if src.gotDays != 3 {
		t.Errorf("days: got %d, want 3", src.gotDays)
	}
	if src.gotPeriod != "quarterly" {
		t.Errorf("period: got %q, want quarterly", src.gotPeriod)
	}
}

func TestHandleResearch_InvalidTicker(t *testing.T) {
	srv := testServer(t, happySource(), nil)

	for _, ticker := range []string{"not-a-ticker", "123"} {
		rec := doRequest(srv, "GET", "/api/v1/research/"+ticker)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s status: got %d, want %d", ticker, rec.Code, http.StatusBadRequest)
		}

		resp := decodeResponse(t, rec)
		if resp.Success {
			t.Error("expected success=false")
		}
		if !strings.Contains(resp.Error, "invalid ticker") {
			t.Errorf("error should mention 'invalid ticker': %q", resp.Error)
		}
	}
}

func TestHandleResearch_MissingTicker(t *testing.T) {
	// Direct call without a route context leaves the URL param empty.
	srv := testServer(t, happySource(), nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/research/", nil)
	srv.handleResearch(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}

	resp := decodeResponse(t, rec)
	if !strings.Contains(resp.Error, "ticker") {
		t.Errorf("error should mention 'ticker': %q", resp.Error)
	}
}

func TestHandleResearch_AllSourcesFailed(t *testing.T) {
	src := &stubSource{
		newsErr:  errors.New("news feed unreachable"),
		fundsErr: errors.New("quote provider down"),
	}
	srv := testServer(t, src, nil)

	rec := doRequest(srv, "GET", "/api/v1/research/AAPL")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Error == "" {
		t.Error("expected non-empty error")
	}
}

func TestHandleResearch_TickerNotFound(t *testing.T) {
	// Both gather errors wrap the not-found sentinel; the joined error
	// must still map to 404.
	src := &stubSource{
		newsErr:  fmt.Errorf("newsapi: %w", datasource.ErrTickerNotFound),
		fundsErr: fmt.Errorf("quote: %w", datasource.ErrTickerNotFound),
	}
	srv := testServer(t, src, nil)

	rec := doRequest(srv, "GET", "/api/v1/research/ZZZZ")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d\nbody: %s", rec.Code, http.StatusNotFound, rec.Body.String())
	}
}

func TestHandleResearch_RateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.Security = config.SecurityConfig{EnableRateLimiting: true, RateLimitPerMinute: 1}
	srv := testServerWithConfig(t, cfg, happySource(), nil)

	rec := doRequest(srv, "GET", "/api/v1/research/AAPL")
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status: got %d, want %d", rec.Code, http.StatusOK)
	}

	rec = doRequest(srv, "GET", "/api/v1/research/MSFT")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status: got %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	resp := decodeResponse(t, rec)
	if !strings.Contains(resp.Error, "rate limit") {
		t.Errorf("error should mention 'rate limit': %q", resp.Error)
	}
}

// ════════════════════════════════════════════════════════════════════
// News handler tests
// ════════════════════════════════════════════════════════════════════

func TestHandleNews(t *testing.T) {
	src := happySource()
	srv := testServer(t, src, nil)

	rec := doRequest(srv, "GET", "/api/v1/news/AAPL?days=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d\nbody: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	if src.gotDays != 3 {
		t.Errorf("days: got %d, want 3", src.gotDays)
	}

	resp := decodeResponse(t, rec)
	data := dataMap(t, resp)
	if data["ticker_symbol"] != "AAPL" {
		t.Errorf("ticker_symbol: got %q", data["ticker_symbol"])
	}

	articles, ok := data["articles"].([]interface{})
	if !ok {
		t.Fatal("articles should be a list")
	}
	if len(articles) != 2 {
		t.Errorf("articles: got %d, want 2", len(articles))
	}

	summary, ok := data["summary"].(map[string]interface{})
	if !ok {
		t.Fatal("summary should be a map")
	}
	if summary["sentiment_overview"] != "positive" {
		t.Errorf("sentiment_overview: got %v", summary["sentiment_overview"])
	}
}

func TestHandleNews_GatherError(t *testing.T) {
	src := &stubSource{newsErr: errors.New("feed timeout")}
	srv := testServer(t, src, nil)

	rec := doRequest(srv, "GET", "/api/v1/news/AAPL")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	resp := decodeResponse(t, rec)
	if !strings.Contains(resp.Error, "gather news") {
		t.Errorf("error should mention 'gather news': %q", resp.Error)
	}
}

// ════════════════════════════════════════════════════════════════════
// Report handler tests
// ════════════════════════════════════════════════════════════════════

func TestHandleReport(t *testing.T) {
	src := happySource()
	srv := testServer(t, src, nil)

	rec := doRequest(srv, "GET", "/api/v1/report/AAPL?period=quarterly")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d\nbody: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	if src.gotPeriod != "quarterly" {
		t.Errorf("period: got %q, want quarterly", src.gotPeriod)
	}

	resp := decodeResponse(t, rec)
	data := dataMap(t, resp)
	if data["period"] != "quarterly" {
		t.Errorf("period: got %v", data["period"])
	}

	company, ok := data["company_info"].(map[string]interface{})
	if !ok {
		t.Fatal("company_info should be a map")
	}
	if company["name"] != "Apple Inc." {
		t.Errorf("company name: got %v", company["name"])
	}
}

func TestHandleReport_GatherError(t *testing.T) {
	src := &stubSource{fundsErr: fmt.Errorf("profile: %w", datasource.ErrTickerNotFound)}
	srv := testServer(t, src, nil)

	rec := doRequest(srv, "GET", "/api/v1/report/ZZZZ")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

// ════════════════════════════════════════════════════════════════════
// Recommendations handler tests
// ════════════════════════════════════════════════════════════════════

func TestHandleRecommendations(t *testing.T) {
	capture := &captureRecorder{runs: []recorder.RunRecord{
		{
			ID:         "run-1",
			Ticker:     "AAPL",
			Score:      0.64,
			Action:     models.ActionBuy,
			Confidence: models.ConfidenceMedium,
			CreatedAt:  time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:         "run-2",
			Ticker:     "MSFT",
			Score:      0.41,
			Action:     models.ActionHold,
			Confidence: models.ConfidenceLow,
			CreatedAt:  time.Date(2026, 8, 20, 11, 0, 0, 0, time.UTC),
		},
	}}
	srv := testServer(t, happySource(), capture)

	rec := doRequest(srv, "GET", "/api/v1/recommendations")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeResponse(t, rec)
	runs, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("data should be a list, got %T", resp.Data)
	}
	if len(runs) != 2 {
		t.Fatalf("runs: got %d, want 2", len(runs))
	}

	first, ok := runs[0].(map[string]interface{})
	if !ok {
		t.Fatal("run should be a map")
	}
	if first["ticker"] != "AAPL" {
		t.Errorf("ticker: got %v", first["ticker"])
	}
	if first["recommendation"] != "buy" {
		t.Errorf("recommendation: got %v", first["recommendation"])
	}
	if first["score"] != 0.64 {
		t.Errorf("score: got %v", first["score"])
	}
}

func TestHandleRecommendations_Limit(t *testing.T) {
	capture := &captureRecorder{runs: []recorder.RunRecord{
		{ID: "run-1", Ticker: "AAPL", Action: models.ActionBuy},
		{ID: "run-2", Ticker: "MSFT", Action: models.ActionHold},
	}}
	srv := testServer(t, happySource(), capture)

	rec := doRequest(srv, "GET", "/api/v1/recommendations?limit=1")
	resp := decodeResponse(t, rec)

	runs, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("data should be a list, got %T", resp.Data)
	}
	if len(runs) != 1 {
		t.Errorf("runs: got %d, want 1", len(runs))
	}
}

func TestHandleRecommendations_Empty(t *testing.T) {
	srv := testServer(t, happySource(), &captureRecorder{})

	rec := doRequest(srv, "GET", "/api/v1/recommendations")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.Data != nil {
		t.Errorf("data should be omitted for empty history, got %v", resp.Data)
	}
}

// ════════════════════════════════════════════════════════════════════
// Ticker search handler tests
// ════════════════════════════════════════════════════════════════════

func TestHandleSearchTickers(t *testing.T) {
	srv := testServer(t, happySource(), nil)

	rec := doRequest(srv, "GET", "/api/v1/search/tickers?q=apple")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d\nbody: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	entries, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("data should be a list, got %T", resp.Data)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one match for 'apple'")
	}

	found := false
	for _, e := range entries {
		m, ok := e.(map[string]interface{})
		if !ok {
			t.Fatal("entry should be a map")
		}
		if m["symbol"] == "AAPL" {
			found = true
		}
	}
	if !found {
		t.Error("expected AAPL in results for 'apple'")
	}
}

func TestHandleSearchTickers_MissingQuery(t *testing.T) {
	srv := testServer(t, happySource(), nil)

	rec := doRequest(srv, "GET", "/api/v1/search/tickers")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}

	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("expected success=false")
	}
	if !strings.Contains(resp.Error, "q") {
		t.Errorf("error should mention 'q': %q", resp.Error)
	}
}

func TestHandleSearchTickers_NoMatches(t *testing.T) {
	srv := testServer(t, happySource(), nil)

	rec := doRequest(srv, "GET", "/api/v1/search/tickers?q=zzzqqqxxx")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("expected success=true")
	}
}

// ════════════════════════════════════════════════════════════════════
// Config keys handler tests
// ════════════════════════════════════════════════════════════════════

func TestHandleGetConfigKeys(t *testing.T) {
	key := strings.Repeat("a", 32)
	cfg := testConfig()
	cfg.News.APIKey = key
	srv := testServerWithConfig(t, cfg, happySource(), nil)

	rec := doRequest(srv, "GET", "/api/v1/config/keys")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	if strings.Contains(rec.Body.String(), key) {
		t.Error("response must not contain the raw API key")
	}

	resp := decodeResponse(t, rec)
	statuses, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("data should be a list, got %T", resp.Data)
	}
	if len(statuses) == 0 {
		t.Fatal("expected at least one key status")
	}

	first, ok := statuses[0].(map[string]interface{})
	if !ok {
		t.Fatal("status should be a map")
	}
	if first["is_set"] != true {
		t.Error("is_set should be true")
	}
	if first["valid"] != true {
		t.Error("valid should be true")
	}
	masked, _ := first["masked"].(string)
	if !strings.Contains(masked, "...") {
		t.Errorf("masked key should be truncated: %q", masked)
	}
}

// ════════════════════════════════════════════════════════════════════
// Error mapping and helpers
// ════════════════════════════════════════════════════════════════════

func TestWriteResearchError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid ticker", fmt.Errorf("wrap: %w", research.ErrInvalidTicker), http.StatusBadRequest},
		{"not supported", fmt.Errorf("wrap: %w", datasource.ErrNotSupported), http.StatusBadRequest},
		{"rate limited", fmt.Errorf("wrap: %w", research.ErrRateLimited), http.StatusTooManyRequests},
		{"ticker not found", fmt.Errorf("wrap: %w", datasource.ErrTickerNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeResearchError(rec, tt.err)

			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}

			resp := decodeResponse(t, rec)
			if resp.Success {
				t.Error("expected success=false")
			}
		})
	}
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"absent", "", 5},
		{"valid", "days=12", 12},
		{"garbage", "days=twelve", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/?"+tt.query, nil)
			if got := queryInt(req, "days", 5); got != tt.want {
				t.Errorf("queryInt: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRouterNotFound(t *testing.T) {
	srv := testServer(t, happySource(), nil)

	rec := doRequest(srv, "GET", "/api/v1/nonexistent")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := testServer(t, happySource(), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/api/v1/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	srv.Router().ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("missing Access-Control-Allow-Origin header")
	}
}

// ════════════════════════════════════════════════════════════════════
// WebSocket hub tests
// ════════════════════════════════════════════════════════════════════

func TestWSHub_RegisterBroadcastUnregister(t *testing.T) {
	hub := NewWSHub()
	a := &WSClient{send: make(chan WSMessage, 4)}
	b := &WSClient{send: make(chan WSMessage, 4)}

	hub.Register(a)
	hub.Register(b)
	if hub.ClientCount() != 2 {
		t.Fatalf("ClientCount: got %d, want 2", hub.ClientCount())
	}

	hub.Broadcast(WSMessage{Type: "research_progress"})
	for i, c := range []*WSClient{a, b} {
		select {
		case msg := <-c.send:
			if msg.Type != "research_progress" {
				t.Errorf("client %d: Type = %q", i, msg.Type)
			}
		default:
			t.Fatalf("client %d received nothing", i)
		}
	}

	hub.Unregister(a)
	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount after unregister: got %d, want 1", hub.ClientCount())
	}
	if _, ok := <-a.send; ok {
		t.Error("send channel should be closed after unregister")
	}

	// Unregistering twice must not panic or double-close.
	hub.Unregister(a)
}

func TestWSHub_BroadcastDropsWhenFull(t *testing.T) {
	hub := NewWSHub()
	c := &WSClient{send: make(chan WSMessage, 1)}
	hub.Register(c)

	hub.Broadcast(WSMessage{Type: "first"})
	hub.Broadcast(WSMessage{Type: "second"}) // queue full, must not block

	if len(c.send) != 1 {
		t.Fatalf("queued messages: got %d, want 1", len(c.send))
	}
	if msg := <-c.send; msg.Type != "first" {
		t.Errorf("Type: got %q, want first", msg.Type)
	}
}

// ════════════════════════════════════════════════════════════════════
// WebSocket endpoint integration
// ════════════════════════════════════════════════════════════════════

func waitForClients(t *testing.T, hub *WSHub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count never reached %d (now %d)", want, hub.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	return conn
}

func TestWebSocketEndpoint(t *testing.T) {
	srv := testServer(t, happySource(), nil)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	conn := dialWS(t, ts)
	defer conn.Close()
	waitForClients(t, srv.wsHub, 1)

	// Ping is answered by the read pump.
	if err := conn.WriteJSON(WSMessage{Type: "ping"}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	var msg WSMessage
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read pong: %v", err)
	}
	if msg.Type != "pong" {
		t.Errorf("Type: got %q, want pong", msg.Type)
	}

	// Subscribe is acknowledged.
	if err := conn.WriteJSON(WSMessage{Type: "subscribe", Data: map[string]string{"ticker": "AAPL"}}); err != nil {
		t.Fatalf("write subscribe: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read subscribed: %v", err)
	}
	if msg.Type != "subscribed" {
		t.Errorf("Type: got %q, want subscribed", msg.Type)
	}

	// Hub broadcasts reach the peer.
	srv.wsHub.Broadcast(WSMessage{
		Type: "research_progress",
		Data: map[string]interface{}{"ticker": "AAPL", "stage": "news"},
	})
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if msg.Type != "research_progress" {
		t.Errorf("Type: got %q, want research_progress", msg.Type)
	}
	data, ok := msg.Data.(map[string]interface{})
	if !ok {
		t.Fatal("data should be a map")
	}
	if data["stage"] != "news" {
		t.Errorf("stage: got %v, want news", data["stage"])
	}

	conn.Close()
	waitForClients(t, srv.wsHub, 0)
}

func TestWebSocketResearchProgress(t *testing.T) {
	srv := testServer(t, happySource(), nil)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	conn := dialWS(t, ts)
	defer conn.Close()
	waitForClients(t, srv.wsHub, 1)

	resp, err := http.Get(ts.URL + "/api/v1/research/AAPL")
	if err != nil {
		t.Fatalf("research request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("research status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}

	// The run emits staged progress events and a completion event.
	var types []string
	for {
		_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read progress (got %v so far): %v", types, err)
		}
		types = append(types, msg.Type)
		if msg.Type == "research_complete" {
			break
		}
	}

	progress := 0
	for _, typ := range types {
		if typ == "research_progress" {
			progress++
		}
	}
	if progress == 0 {
		t.Errorf("expected progress events before completion, got %v", types)
	}
}
