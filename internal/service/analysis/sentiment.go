package analysis

import "FinSight/internal/domain/models"

// Aggregator reduces per-article sentiment labels to one symbol-level label.
type Aggregator struct{}

func NewAggregator() *Aggregator { return &Aggregator{} }

// Aggregate is order-independent: only the positive and negative ratios
// matter. An empty input is neutral.
func (a *Aggregator) Aggregate(labels []models.Sentiment) models.Sentiment {
	if len(labels) == 0 {
		return models.SentimentNeutral
	}
	var pos, neg int
	for _, l := range labels {
		switch l {
		case models.SentimentPositive:
			pos++
		case models.SentimentNegative:
			neg++
		}
	}
	total := float64(len(labels))
	switch {
	case float64(pos)/total > 0.6:
		return models.SentimentPositive
	case float64(neg)/total > 0.6:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
