package analysis

import (
	"math/rand"
	"testing"

	"FinSight/internal/domain/models"
)

func TestAggregateEmptyIsNeutral(t *testing.T) {
	if got := NewAggregator().Aggregate(nil); got != models.SentimentNeutral {
		t.Fatalf("got %s, want neutral", got)
	}
}

func TestAggregateThresholds(t *testing.T) {
	agg := NewAggregator()
	tests := []struct {
		name string
		pos  int
		neg  int
		neu  int
		want models.Sentiment
	}{
		{"strong positive", 8, 1, 1, models.SentimentPositive},
		{"strong negative", 1, 7, 2, models.SentimentNegative},
		{"exactly 60 percent is not enough", 6, 0, 4, models.SentimentNeutral},
		{"mixed", 5, 5, 0, models.SentimentNeutral},
		{"single positive", 1, 0, 0, models.SentimentPositive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels := buildLabels(tt.pos, tt.neg, tt.neu)
			if got := agg.Aggregate(labels); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	agg := NewAggregator()
	labels := buildLabels(7, 2, 1)
	want := agg.Aggregate(labels)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		r.Shuffle(len(labels), func(a, b int) {
			labels[a], labels[b] = labels[b], labels[a]
		})
		if got := agg.Aggregate(labels); got != want {
			t.Fatalf("shuffle %d: got %s, want %s", i, got, want)
		}
	}
}

func buildLabels(pos, neg, neu int) []models.Sentiment {
	labels := make([]models.Sentiment, 0, pos+neg+neu)
	for i := 0; i < pos; i++ {
		labels = append(labels, models.SentimentPositive)
	}
	for i := 0; i < neg; i++ {
		labels = append(labels, models.SentimentNegative)
	}
	for i := 0; i < neu; i++ {
		labels = append(labels, models.SentimentNeutral)
	}
	return labels
}
