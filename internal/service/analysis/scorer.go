package analysis

import (
	"math"

	"FinSight/internal/domain/models"
	"FinSight/internal/domain/service"
)

type ruleInput struct {
	price     float64
	ind       models.Indicators
	sentiment models.Sentiment
	fund      *models.Fundamentals
}

// rule is one row of the scoring table. fires returns (applies, ok); ok=false
// means a required input is undefined and the rule is skipped, contributing
// nothing and omitting its clause.
type rule struct {
	clause string
	delta  int
	fires  func(in ruleInput) (bool, bool)
}

var rules = []rule{
	{"RSI indicates oversold conditions", +20, func(in ruleInput) (bool, bool) {
		return in.ind.RSI.Value < 30, in.ind.RSI.Valid
	}},
	{"RSI indicates overbought conditions", -20, func(in ruleInput) (bool, bool) {
		return in.ind.RSI.Value > 70, in.ind.RSI.Valid
	}},
	{"Price above both moving averages", +15, func(in ruleInput) (bool, bool) {
		ok := in.ind.SMA20.Valid && in.ind.SMA50.Valid
		return in.price > in.ind.SMA20.Value && in.ind.SMA20.Value > in.ind.SMA50.Value, ok
	}},
	{"Price below both moving averages", -15, func(in ruleInput) (bool, bool) {
		ok := in.ind.SMA20.Valid && in.ind.SMA50.Valid
		return in.price < in.ind.SMA20.Value && in.ind.SMA20.Value < in.ind.SMA50.Value, ok
	}},
	{"MACD is positive", +5, func(in ruleInput) (bool, bool) {
		return in.ind.MACD.Value > 0, in.ind.MACD.Valid
	}},
	{"MACD is negative", -5, func(in ruleInput) (bool, bool) {
		return in.ind.MACD.Value <= 0, in.ind.MACD.Valid
	}},
	{"Recent news sentiment is positive", +15, func(in ruleInput) (bool, bool) {
		return in.sentiment == models.SentimentPositive, true
	}},
	{"Recent news sentiment is negative", -15, func(in ruleInput) (bool, bool) {
		return in.sentiment == models.SentimentNegative, true
	}},
	{"P/E ratio indicates undervaluation", +10, func(in ruleInput) (bool, bool) {
		ok := in.fund != nil && in.fund.TrailingPE.Valid
		return ok && in.fund.TrailingPE.Value < 15, ok
	}},
	{"P/E ratio indicates overvaluation", -10, func(in ruleInput) (bool, bool) {
		ok := in.fund != nil && in.fund.TrailingPE.Valid
		return ok && in.fund.TrailingPE.Value > 25, ok
	}},
}

// Scorer evaluates the rule table once per request; rules share no state, so
// their order matters only for the reasoning text.
type Scorer struct{}

func NewScorer() *Scorer { return &Scorer{} }

// Score runs all rules and maps the total to an action and confidence.
// An entirely undefined indicator set (only possible with an empty history)
// is an error, never a defaulted hold.
func (s *Scorer) Score(price float64, ind models.Indicators, sentiment models.Sentiment, fund *models.Fundamentals) (service.ScoreResult, error) {
	if price <= 0 && !ind.RSI.Valid && !ind.MACD.Valid && !ind.SMA20.Valid && !ind.SMA50.Valid {
		return service.ScoreResult{}, models.ErrInsufficientData
	}

	in := ruleInput{price: price, ind: ind, sentiment: sentiment, fund: fund}
	total := 0
	var reasoning []string
	for _, r := range rules {
		applies, ok := r.fires(in)
		if !ok || !applies {
			continue
		}
		total += r.delta
		reasoning = append(reasoning, r.clause)
	}
	if len(reasoning) == 0 {
		reasoning = []string{"Insufficient data for strong recommendation"}
	}

	action := models.ActionHold
	confidence := 0.7
	switch {
	case total >= 20:
		action = models.ActionBuy
	case total <= -20:
		action = models.ActionSell
	}
	if action != models.ActionHold {
		confidence = math.Min(0.9, 0.6+math.Abs(float64(total))/100)
	}

	return service.ScoreResult{
		Score:      total,
		Action:     action,
		Confidence: confidence,
		Reasoning:  reasoning,
	}, nil
}
