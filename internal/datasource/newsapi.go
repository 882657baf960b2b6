package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/AIDataFireGirl/investsight/internal/infra"
	"github.com/AIDataFireGirl/investsight/pkg/models"
)

const (
	newsAPIBaseURL = "https://newsapi.org/v2"

	// NewsAPI caps the free-tier page size at 100; we stay well under
	// that and also bound the number of keyword queries per gather so
	// a long keyword list cannot burn the daily quota.
	newsAPIPageCap    = 20
	maxKeywordQueries = 5
)

// NewsAPI is a client for the NewsAPI.org "everything" endpoint. Each
// returned article carries the keyword that produced it.
type NewsAPI struct {
	apiKey   string
	baseURL  string
	pageSize int
	limiter  *infra.RateLimiter
}

// NewNewsAPI creates a NewsAPI client. maxPerSource bounds the articles
// requested per keyword query.
func NewNewsAPI(apiKey string, maxPerSource int) *NewsAPI {
	pageSize := maxPerSource
	if pageSize > newsAPIPageCap {
		pageSize = newsAPIPageCap
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return &NewsAPI{
		apiKey:   apiKey,
		baseURL:  newsAPIBaseURL,
		pageSize: pageSize,
		limiter:  infra.NewRateLimiter(1, time.Second), // polite: 1 req/s
	}
}

// --- NewsAPI response types ---

type newsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`

	// Populated only when Status is "error".
	Code    string `json:"code"`
	Message string `json:"message"`
}

type newsAPIArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// --- Public methods ---

// Gather queries the everything endpoint once per keyword, limited to
// the first maxKeywordQueries keywords, over the last daysBack days.
// Per-keyword failures are collected, not fatal; the joined error is
// non-nil only when at least one query failed.
func (n *NewsAPI) Gather(ctx context.Context, keywords []string, daysBack int) ([]models.Article, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -daysBack)

	queries := keywords
	if len(queries) > maxKeywordQueries {
		queries = queries[:maxKeywordQueries]
	}

	var articles []models.Article
	var errs []error
	for _, keyword := range queries {
		batch, err := n.Everything(ctx, keyword, start, end)
		if err != nil {
			errs = append(errs, fmt.Errorf("keyword %q: %w", keyword, err))
			continue
		}
		articles = append(articles, batch...)
	}

	return articles, errors.Join(errs...)
}

// Everything fetches articles matching a single keyword within the
// date range. Articles come back tagged with the keyword.
func (n *NewsAPI) Everything(ctx context.Context, keyword string, from, to time.Time) ([]models.Article, error) {
	if n.apiKey == "" {
		return nil, fmt.Errorf("newsapi: no API key configured")
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", keyword)
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))
	params.Set("language", "en")
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", strconv.Itoa(n.pageSize))

	reqURL := n.baseURL + "/everything?" + params.Encode()
	body, _, err := doGet(ctx, reqURL, map[string]string{
		"X-Api-Key": n.apiKey,
		"Accept":    "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("newsapi everything: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp newsAPIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse newsapi response: %w", err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi error %s: %s", resp.Code, resp.Message)
	}

	articles := make([]models.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		articles = append(articles, convertNewsAPIArticle(a, keyword))
	}
	return articles, nil
}

// convertNewsAPIArticle maps a raw NewsAPI article to the model type.
// Unparseable timestamps are left at zero; the summary layer skips
// articles without a timestamp.
func convertNewsAPIArticle(a newsAPIArticle, keyword string) models.Article {
	article := models.Article{
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		URL:         a.URL,
		Source:      a.Source.Name,
		Keyword:     keyword,
	}
	if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
		article.PublishedAt = t
	}
	return article
}
