package models

import "time"

// Article is a single news item collected for a ticker, scored for
// relevance against the search keywords.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content,omitempty"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Keyword     string    `json:"keyword_matched"`
	Relevance   float64   `json:"relevance_score"`
}

// NameCount pairs a label with how often it occurred.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DateRange spans the publication timestamps of a set of articles.
type DateRange struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// NewsSummary aggregates a processed article set. DateRange is nil when
// none of the articles carry a publication timestamp.
type NewsSummary struct {
	TotalArticles     int         `json:"total_articles"`
	TopSources        []NameCount `json:"top_sources"`
	TopKeywords       []NameCount `json:"top_keywords"`
	AverageRelevance  float64     `json:"average_relevance_score,omitempty"`
	DateRange         *DateRange  `json:"date_range,omitempty"`
	SentimentOverview string      `json:"sentiment_overview,omitempty"`
}

// NewsBundle is the full result of a news gathering run: the filtered,
// deduplicated, relevance-sorted articles plus their summary.
type NewsBundle struct {
	Ticker     string      `json:"ticker_symbol"`
	Keywords   []string    `json:"search_keywords"`
	GatheredAt time.Time   `json:"gathered_at"`
	Articles   []Article   `json:"articles"`
	Summary    NewsSummary `json:"summary"`
}
