package analysis

import (
	"math"

	"FinSight/internal/domain/models"
)

// Windows for the derived indicators. An indicator is undefined whenever the
// supplied history is shorter than its window.
const (
	rsiWindow  = 14
	emaFast    = 12
	emaSlow    = 26
	smaShort   = 20
	smaLong    = 50
	bollWindow = 20
	bollK      = 2.0
	volWindow  = 20
)

// Calculator computes most-recent-bar indicator values from an ascending
// OHLCV history.
type Calculator struct{}

func NewCalculator() *Calculator { return &Calculator{} }

// Compute derives all indicators. Undefined values carry Valid=false and must
// be skipped, not zero-filled, by downstream rules.
func (c *Calculator) Compute(bars []models.Bar) models.Indicators {
	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	ind := models.Indicators{
		RSI:         rsi(closes, rsiWindow),
		MACD:        macd(closes),
		SMA20:       sma(closes, smaShort),
		SMA50:       sma(closes, smaLong),
		AvgVolume20: sma(volumes, volWindow),
	}
	ind.BollingerUpper, ind.BollingerLower = bollinger(closes, bollWindow, bollK)
	return ind
}

// rsi computes the Relative Strength Index over the last `window` deltas.
// Undefined with fewer than window+1 bars, or when the average loss is zero
// (the gain/loss ratio has no value; monotonic rises fire no RSI rule).
func rsi(closes []float64, window int) models.Float {
	if len(closes) < window+1 {
		return models.Float{}
	}
	var gain, loss float64
	for i := len(closes) - window; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain := gain / float64(window)
	avgLoss := loss / float64(window)
	if avgLoss == 0 {
		return models.Float{}
	}
	rs := avgGain / avgLoss
	return models.FloatFrom(100 - 100/(1+rs))
}

// macd is the difference between the fast and slow EMA of close. The EMAs are
// seeded with the first close and updated recursively with alpha=2/(span+1).
func macd(closes []float64) models.Float {
	if len(closes) < emaSlow {
		return models.Float{}
	}
	return models.FloatFrom(ema(closes, emaFast) - ema(closes, emaSlow))
}

func ema(values []float64, span int) float64 {
	alpha := 2.0 / float64(span+1)
	e := values[0]
	for _, v := range values[1:] {
		e = alpha*v + (1-alpha)*e
	}
	return e
}

func sma(values []float64, window int) models.Float {
	if len(values) < window {
		return models.Float{}
	}
	sum := 0.0
	for _, v := range values[len(values)-window:] {
		sum += v
	}
	return models.FloatFrom(sum / float64(window))
}

// bollinger returns SMA ± k sample standard deviations over the window.
func bollinger(closes []float64, window int, k float64) (upper, lower models.Float) {
	mid := sma(closes, window)
	if !mid.Valid || window < 2 {
		return models.Float{}, models.Float{}
	}
	var sum2 float64
	for _, v := range closes[len(closes)-window:] {
		d := v - mid.Value
		sum2 += d * d
	}
	sd := math.Sqrt(sum2 / float64(window-1))
	return models.FloatFrom(mid.Value + k*sd), models.FloatFrom(mid.Value - k*sd)
}
