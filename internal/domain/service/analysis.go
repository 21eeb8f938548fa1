package service

import (
	"context"

	"FinSight/internal/domain/models"
)

// IndicatorCalculator derives technical indicators from an ordered history.
type IndicatorCalculator interface {
	Compute(bars []models.Bar) models.Indicators
}

// SentimentAggregator reduces per-article labels to one symbol-level label.
type SentimentAggregator interface {
	Aggregate(labels []models.Sentiment) models.Sentiment
}

// RecommendationScorer combines indicators, sentiment and fundamentals into a
// scored recommendation class with reasoning.
type RecommendationScorer interface {
	Score(price float64, ind models.Indicators, sentiment models.Sentiment, fund *models.Fundamentals) (ScoreResult, error)
}

// ScoreResult is the scorer output before target and risk are attached.
type ScoreResult struct {
	Score      int
	Action     models.Action
	Confidence float64
	Reasoning  []string
}

// TargetEstimator derives a price target and a risk assessment.
type TargetEstimator interface {
	PriceTarget(price float64, ind models.Indicators) models.Float
	Risk(bars []models.Bar) models.RiskAssessment
}

// Assistant answers free-text finance questions with supporting sources.
type Assistant interface {
	Query(ctx context.Context, question string) (*models.ChatAnswer, error)
}
