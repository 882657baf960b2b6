package datasource

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/AIDataFireGirl/investsight/internal/infra"
	"github.com/AIDataFireGirl/investsight/pkg/models"
)

// RSSCollector pulls articles from configured financial RSS feeds and
// keeps the items that mention one of the search keywords. Feeds are
// cached briefly so repeated gathers do not hammer the publishers.
type RSSCollector struct {
	feeds   []string
	cache   *infra.Cache
	limiter *infra.RateLimiter
	parser  *gofeed.Parser
}

// NewRSSCollector creates an RSS collector over the given feed URLs.
func NewRSSCollector(feeds []string) *RSSCollector {
	return &RSSCollector{
		feeds:   feeds,
		cache:   infra.NewCache(10 * time.Minute),
		limiter: infra.NewRateLimiter(2, time.Second), // conservative: 2 req/s
		parser:  gofeed.NewParser(),
	}
}

// Gather fetches every configured feed and returns the items published
// within the last daysBack days that mention one of the keywords. Each
// kept item is tagged with the first keyword that matched. Per-feed
// failures are collected, not fatal.
func (r *RSSCollector) Gather(ctx context.Context, keywords []string, daysBack int) ([]models.Article, error) {
	cutoff := time.Now().AddDate(0, 0, -daysBack)

	var articles []models.Article
	var errs []error
	for _, feedURL := range r.feeds {
		raw, err := r.fetchFeed(ctx, feedURL)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, a := range raw {
			keyword, ok := firstMatch(a.Title+" "+a.Description, keywords)
			if !ok {
				continue
			}
			// Items without a parseable date are kept; they are the
			// current feed content either way.
			if !a.PublishedAt.IsZero() && a.PublishedAt.Before(cutoff) {
				continue
			}
			a.Keyword = keyword
			articles = append(articles, a)
		}
	}

	return articles, errors.Join(errs...)
}

// fetchFeed parses one RSS feed into untagged articles, serving from
// cache when fresh.
func (r *RSSCollector) fetchFeed(ctx context.Context, feedURL string) ([]models.Article, error) {
	cacheKey := "rss:" + feedURL
	if cached, ok := r.cache.Get(cacheKey); ok {
		return cached.([]models.Article), nil
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS %s: %w", feedURL, err)
	}

	articles := make([]models.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		a := models.Article{
			Title:       item.Title,
			Description: cleanHTML(item.Description),
			URL:         item.Link,
			Source:      feed.Title,
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		}
		articles = append(articles, a)
	}

	r.cache.Set(cacheKey, articles)
	return articles, nil
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// firstMatch returns the first keyword contained in text,
// case-insensitive.
func firstMatch(text string, keywords []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return kw, true
		}
	}
	return "", false
}
