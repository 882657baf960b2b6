package news

import (
	"strings"

	"github.com/AIDataFireGirl/investsight/pkg/models"
)

// Word lists for the keyword sentiment read. An article leans the way
// whichever list scores more distinct hits across its title and
// description; ties stay neutral.
var (
	positiveWords = []string{"growth", "profit", "increase", "positive", "strong"}
	negativeWords = []string{"decline", "loss", "negative", "weak", "concern"}
)

// ScoreSentiment weighs each article's lean by its relevance score and
// returns the net reading with its discrete label. The score is
// (positive − negative) / total weight, 0 when nothing carries weight,
// and stays within [-1, 1].
func ScoreSentiment(articles []models.Article) (float64, models.SentimentLabel) {
	var positive, negative, neutral float64

	for _, a := range articles {
		title := strings.ToLower(a.Title)
		description := strings.ToLower(a.Description)

		pos := countMatches(title, description, positiveWords)
		neg := countMatches(title, description, negativeWords)

		switch {
		case pos > neg:
			positive += a.Relevance
		case neg > pos:
			negative += a.Relevance
		default:
			neutral += a.Relevance
		}
	}

	total := positive + negative + neutral
	if total == 0 {
		return 0, models.SentimentNeutral
	}

	score := (positive - negative) / total
	return score, SentimentLabel(score)
}

// SentimentLabel maps a sentiment score to its discrete label. The
// thresholds are strict: exactly ±0.2 reads neutral.
func SentimentLabel(score float64) models.SentimentLabel {
	switch {
	case score > 0.2:
		return models.SentimentPositive
	case score < -0.2:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func countMatches(title, description string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(title, w) || strings.Contains(description, w) {
			n++
		}
	}
	return n
}
