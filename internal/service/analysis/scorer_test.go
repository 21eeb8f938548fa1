package analysis

import (
	"errors"
	"math"
	"testing"

	"FinSight/internal/domain/models"
)

func f(v float64) models.Float { return models.FloatFrom(v) }

func TestScoreToActionMapping(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name       string
		ind        models.Indicators
		sentiment  models.Sentiment
		wantScore  int
		wantAction models.Action
		wantConf   float64
	}{
		{
			// oversold +20, MACD positive +5
			name:       "score 25 buys at 0.85",
			ind:        models.Indicators{RSI: f(25), MACD: f(1.2)},
			sentiment:  models.SentimentNeutral,
			wantScore:  25,
			wantAction: models.ActionBuy,
			wantConf:   0.85,
		},
		{
			// overbought -20, MACD negative -5
			name:       "score -25 sells at 0.85",
			ind:        models.Indicators{RSI: f(78), MACD: f(-0.4)},
			sentiment:  models.SentimentNeutral,
			wantScore:  -25,
			wantAction: models.ActionSell,
			wantConf:   0.85,
		},
		{
			name:       "score 0 holds at 0.70",
			ind:        models.Indicators{},
			sentiment:  models.SentimentNeutral,
			wantScore:  0,
			wantAction: models.ActionHold,
			wantConf:   0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := scorer.Score(100, tt.ind, tt.sentiment, nil)
			if err != nil {
				t.Fatalf("score: %v", err)
			}
			if res.Score != tt.wantScore {
				t.Fatalf("score = %d, want %d", res.Score, tt.wantScore)
			}
			if res.Action != tt.wantAction {
				t.Fatalf("action = %s, want %s", res.Action, tt.wantAction)
			}
			if math.Abs(res.Confidence-tt.wantConf) > 1e-9 {
				t.Fatalf("confidence = %v, want %v", res.Confidence, tt.wantConf)
			}
		})
	}
}

func TestConfidenceIsCapped(t *testing.T) {
	// oversold +20, bullish stack +15, MACD +5, sentiment +15, P/E +10 = 65
	ind := models.Indicators{RSI: f(20), MACD: f(2), SMA20: f(90), SMA50: f(80)}
	fund := &models.Fundamentals{TrailingPE: f(10)}
	res, err := NewScorer().Score(100, ind, models.SentimentPositive, fund)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if res.Score != 65 {
		t.Fatalf("score = %d, want 65", res.Score)
	}
	if res.Confidence != 0.9 {
		t.Fatalf("confidence = %v, want cap 0.9", res.Confidence)
	}
}

func TestUndefinedInputsSkipRules(t *testing.T) {
	// RSI would be oversold but is undefined; only MACD fires
	ind := models.Indicators{MACD: f(0.5)}
	res, err := NewScorer().Score(50, ind, models.SentimentNeutral, &models.Fundamentals{})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if res.Score != 5 {
		t.Fatalf("score = %d, want 5", res.Score)
	}
	if len(res.Reasoning) != 1 || res.Reasoning[0] != "MACD is positive" {
		t.Fatalf("reasoning = %v", res.Reasoning)
	}
}

func TestReasoningFollowsTableOrder(t *testing.T) {
	ind := models.Indicators{RSI: f(25), MACD: f(1), SMA20: f(90), SMA50: f(80)}
	fund := &models.Fundamentals{TrailingPE: f(12)}
	res, err := NewScorer().Score(100, ind, models.SentimentPositive, fund)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	want := []string{
		"RSI indicates oversold conditions",
		"Price above both moving averages",
		"MACD is positive",
		"Recent news sentiment is positive",
		"P/E ratio indicates undervaluation",
	}
	if len(res.Reasoning) != len(want) {
		t.Fatalf("reasoning = %v, want %v", res.Reasoning, want)
	}
	for i := range want {
		if res.Reasoning[i] != want[i] {
			t.Fatalf("reasoning[%d] = %q, want %q", i, res.Reasoning[i], want[i])
		}
	}
}

func TestNoFiredRulesSubstitutesClause(t *testing.T) {
	res, err := NewScorer().Score(100, models.Indicators{}, models.SentimentNeutral, nil)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if len(res.Reasoning) != 1 || res.Reasoning[0] != "Insufficient data for strong recommendation" {
		t.Fatalf("reasoning = %v", res.Reasoning)
	}
	if res.Action != models.ActionHold || res.Confidence != 0.7 {
		t.Fatalf("got %s/%v, want hold/0.7", res.Action, res.Confidence)
	}
}

func TestEmptyHistorySignalsError(t *testing.T) {
	_, err := NewScorer().Score(0, models.Indicators{}, models.SentimentNeutral, nil)
	if !errors.Is(err, models.ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}
