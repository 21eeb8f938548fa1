package analysis

import (
	"math"

	"FinSight/internal/domain/models"
	"FinSight/pkg/util"
)

// tradingDaysPerYear annualizes the daily return volatility.
const tradingDaysPerYear = 252

// Estimator derives a price target from the Bollinger envelope and a risk
// level from annualized volatility of daily returns.
type Estimator struct{}

func NewEstimator() *Estimator { return &Estimator{} }

// PriceTarget mean-reverts toward the opposite band when price sits outside
// the envelope, otherwise targets the band midpoint. Absent when the bands
// are undefined.
func (e *Estimator) PriceTarget(price float64, ind models.Indicators) models.Float {
	if !ind.BollingerUpper.Valid || !ind.BollingerLower.Valid {
		return models.Float{}
	}
	upper, lower := ind.BollingerUpper.Value, ind.BollingerLower.Value
	var target float64
	switch {
	case price < lower:
		target = upper
	case price > upper:
		target = lower
	default:
		target = (upper + lower) / 2
	}
	return models.FloatFrom(util.Round2(target))
}

// Risk classifies stdev(daily pct change) * sqrt(252). Fewer than 2 bars
// yields medium with Defaulted set, so tests can tell the fallback apart
// from a computed medium.
func (e *Estimator) Risk(bars []models.Bar) models.RiskAssessment {
	if len(bars) < 2 {
		return models.RiskAssessment{Level: models.RiskMedium, Defaulted: true}
	}

	returns := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev == 0 {
			continue
		}
		returns = append(returns, (bars[i].Close-prev)/prev)
	}
	if len(returns) < 2 {
		return models.RiskAssessment{Level: models.RiskMedium, Defaulted: true}
	}

	vol := stddev(returns) * math.Sqrt(tradingDaysPerYear)
	level := models.RiskLow
	switch {
	case vol > 0.4:
		level = models.RiskHigh
	case vol > 0.2:
		level = models.RiskMedium
	}
	return models.RiskAssessment{Level: level, Volatility: models.FloatFrom(vol)}
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sum2 float64
	for _, v := range values {
		d := v - mean
		sum2 += d * d
	}
	return math.Sqrt(sum2 / float64(len(values)-1))
}
