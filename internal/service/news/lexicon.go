package news

import (
	"strings"

	"FinSight/internal/domain/models"
)

var positiveWords = []string{
	"surge", "gain", "rise", "jump", "rally", "soar", "beat", "profit",
	"growth", "strong", "record", "upgrade", "bullish", "outperform",
}

var negativeWords = []string{
	"fall", "drop", "loss", "decline", "plunge", "crash", "miss", "weak",
	"cut", "downgrade", "bearish", "lawsuit", "recall", "layoff",
}

// Classify tags text by counting lexicon hits; ties are neutral.
func Classify(text string) models.Sentiment {
	lower := strings.ToLower(text)
	var pos, neg int
	for _, w := range positiveWords {
		pos += strings.Count(lower, w)
	}
	for _, w := range negativeWords {
		neg += strings.Count(lower, w)
	}
	switch {
	case pos > neg:
		return models.SentimentPositive
	case neg > pos:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
