package news

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/AIDataFireGirl/investsight/pkg/models"
)

// ------------------------------------------------------------------
// Keyword-relevance news scoring (offline, deterministic).
// Articles arrive pre-fetched from the datasource layer; everything
// here is a pure function of its inputs.
// ------------------------------------------------------------------

// financialKeywords boost an article's relevance when found in the
// title or description. All entries lowercase.
var financialKeywords = []string{
	"earnings", "revenue", "profit", "loss", "stock", "market",
	"trading", "investment", "finance", "economy", "gdp", "inflation",
	"interest rates", "federal reserve", "sec",
}

const (
	maxRelevance = 5.0
	minRelevance = 1.0
	maxArticles  = 50
)

// ErrNoTimestamps is returned by Summarize when no article in a
// non-empty set carries a publication timestamp.
var ErrNoTimestamps = errors.New("news: no article has a publication timestamp")

// FinancialKeywords returns the financial search terms appended to
// every news query. Callers get a copy.
func FinancialKeywords() []string {
	out := make([]string, len(financialKeywords))
	copy(out, financialKeywords)
	return out
}

// ScoreRelevance scores how relevant an article is to the keyword that
// matched it: 3 points for a title hit, 2 for description, 1 for
// content, plus 0.5 per financial keyword found in title or
// description. Matching is case-insensitive substring; the result is
// capped at 5.0.
func ScoreRelevance(article models.Article, keyword string) float64 {
	score := 0.0
	title := strings.ToLower(article.Title)
	description := strings.ToLower(article.Description)
	content := strings.ToLower(article.Content)
	keyword = strings.ToLower(keyword)

	if strings.Contains(title, keyword) {
		score += 3.0
	}
	if strings.Contains(description, keyword) {
		score += 2.0
	}
	if strings.Contains(content, keyword) {
		score += 1.0
	}

	for _, fin := range financialKeywords {
		if strings.Contains(title, fin) || strings.Contains(description, fin) {
			score += 0.5
		}
	}

	if score > maxRelevance {
		score = maxRelevance
	}
	return score
}

// FilterArticles drops weak matches, removes near-duplicate titles,
// and returns the survivors sorted by relevance, strongest first. An
// article is a duplicate when its lowercased title equals an
// already-kept title or either title contains the other. The sort is
// stable, so equally relevant articles keep their arrival order. At
// most 50 articles survive.
func FilterArticles(articles []models.Article) []models.Article {
	kept := make([]models.Article, 0, len(articles))

	for _, a := range articles {
		if a.Relevance < minRelevance {
			continue
		}
		if isDuplicate(a, kept) {
			continue
		}
		kept = append(kept, a)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Relevance > kept[j].Relevance
	})

	if len(kept) > maxArticles {
		kept = kept[:maxArticles]
	}
	return kept
}

func isDuplicate(article models.Article, kept []models.Article) bool {
	title := strings.ToLower(article.Title)

	for _, existing := range kept {
		existingTitle := strings.ToLower(existing.Title)
		if title == existingTitle ||
			strings.Contains(existingTitle, title) ||
			strings.Contains(title, existingTitle) {
			return true
		}
	}
	return false
}

// Summarize derives summary statistics from a filtered article set.
// An empty set yields the neutral zero-value summary. A non-empty set
// where no article carries a timestamp fails with ErrNoTimestamps.
func Summarize(articles []models.Article) (models.NewsSummary, error) {
	if len(articles) == 0 {
		return models.NewsSummary{
			TopSources:        []models.NameCount{},
			TopKeywords:       []models.NameCount{},
			SentimentOverview: "neutral",
		}, nil
	}

	sources := newCounter()
	keywords := newCounter()
	totalRelevance := 0.0

	for _, a := range articles {
		sources.add(a.Source)
		if a.Keyword != "" {
			keywords.add(a.Keyword)
		}
		totalRelevance += a.Relevance
	}

	var earliest, latest time.Time
	for _, a := range articles {
		if a.PublishedAt.IsZero() {
			continue
		}
		if earliest.IsZero() || a.PublishedAt.Before(earliest) {
			earliest = a.PublishedAt
		}
		if a.PublishedAt.After(latest) {
			latest = a.PublishedAt
		}
	}
	if earliest.IsZero() {
		return models.NewsSummary{}, ErrNoTimestamps
	}

	return models.NewsSummary{
		TotalArticles:    len(articles),
		TopSources:       sources.top(5),
		TopKeywords:      keywords.top(5),
		AverageRelevance: totalRelevance / float64(len(articles)),
		DateRange:        &models.DateRange{Earliest: earliest, Latest: latest},
	}, nil
}

// counter tallies names in first-seen order so that equal counts rank
// deterministically in top().
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(name string) {
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

func (c *counter) top(n int) []models.NameCount {
	out := make([]models.NameCount, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, models.NameCount{Name: name, Count: c.counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
