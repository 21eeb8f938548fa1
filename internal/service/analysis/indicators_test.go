package analysis

import (
	"math"
	"testing"
	"time"

	"FinSight/internal/domain/models"
)

func barsFromCloses(closes []float64, volume float64) []models.Bar {
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      c,
			High:      c * 1.01,
			Low:       c * 0.99,
			Close:     c,
			Volume:    volume,
		}
	}
	return bars
}

func TestRSIUndefinedForShortHistory(t *testing.T) {
	calc := NewCalculator()
	closes := make([]float64, 14)
	for i := range closes {
		closes[i] = 100 + float64(i%3)
	}
	ind := calc.Compute(barsFromCloses(closes, 1000))
	if ind.RSI.Valid {
		t.Fatalf("RSI defined for %d bars, want undefined below 15", len(closes))
	}
}

func TestRSIWithinBoundsWhenDefined(t *testing.T) {
	calc := NewCalculator()
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + 5*math.Sin(float64(i)/3)
	}
	ind := calc.Compute(barsFromCloses(closes, 1000))
	if !ind.RSI.Valid {
		t.Fatal("RSI undefined for 40 mixed bars")
	}
	if ind.RSI.Value < 0 || ind.RSI.Value > 100 {
		t.Fatalf("RSI = %v, want within [0,100]", ind.RSI.Value)
	}
}

func TestRSIUndefinedWhenNoLosses(t *testing.T) {
	calc := NewCalculator()
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	ind := calc.Compute(barsFromCloses(closes, 1000))
	if ind.RSI.Valid {
		t.Fatalf("RSI = %v for monotonic rise, want undefined (zero average loss)", ind.RSI.Value)
	}
}

func TestSMAWindows(t *testing.T) {
	calc := NewCalculator()
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	ind := calc.Compute(barsFromCloses(closes, 2000))

	// last 20 values are 31..50, mean 40.5; last 50 are 1..50, mean 25.5
	if !ind.SMA20.Valid || math.Abs(ind.SMA20.Value-40.5) > 1e-9 {
		t.Fatalf("SMA20 = %+v, want 40.5", ind.SMA20)
	}
	if !ind.SMA50.Valid || math.Abs(ind.SMA50.Value-25.5) > 1e-9 {
		t.Fatalf("SMA50 = %+v, want 25.5", ind.SMA50)
	}
	if !ind.AvgVolume20.Valid || ind.AvgVolume20.Value != 2000 {
		t.Fatalf("AvgVolume20 = %+v, want 2000", ind.AvgVolume20)
	}
}

func TestSMA50UndefinedBelowWindow(t *testing.T) {
	calc := NewCalculator()
	ind := calc.Compute(barsFromCloses(make([]float64, 49), 1000))
	if ind.SMA50.Valid {
		t.Fatal("SMA50 defined for 49 bars")
	}
	if !ind.SMA20.Valid {
		t.Fatal("SMA20 undefined for 49 bars")
	}
}

func TestBullishStackOnRisingSeries(t *testing.T) {
	calc := NewCalculator()
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	ind := calc.Compute(barsFromCloses(closes, 1000))

	price := closes[len(closes)-1]
	if !(ind.SMA20.Valid && ind.SMA50.Valid) {
		t.Fatal("moving averages undefined for 60 bars")
	}
	if !(price > ind.SMA20.Value && ind.SMA20.Value > ind.SMA50.Value) {
		t.Fatalf("want price > SMA20 > SMA50, got price=%v sma20=%v sma50=%v",
			price, ind.SMA20.Value, ind.SMA50.Value)
	}
}

func TestMACDPositiveOnRisingSeries(t *testing.T) {
	calc := NewCalculator()
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	ind := calc.Compute(barsFromCloses(closes, 1000))
	if !ind.MACD.Valid || ind.MACD.Value <= 0 {
		t.Fatalf("MACD = %+v, want defined and positive", ind.MACD)
	}
}

func TestMACDUndefinedBelowSlowWindow(t *testing.T) {
	calc := NewCalculator()
	ind := calc.Compute(barsFromCloses(make([]float64, 25), 1000))
	if ind.MACD.Valid {
		t.Fatal("MACD defined for 25 bars")
	}
}

func TestBollingerEnvelopesSMA(t *testing.T) {
	calc := NewCalculator()
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i%5)
	}
	ind := calc.Compute(barsFromCloses(closes, 1000))
	if !ind.BollingerUpper.Valid || !ind.BollingerLower.Valid {
		t.Fatal("bands undefined for 20 bars")
	}
	if !(ind.BollingerLower.Value < ind.SMA20.Value && ind.SMA20.Value < ind.BollingerUpper.Value) {
		t.Fatalf("bands %v..%v do not envelope SMA20 %v",
			ind.BollingerLower.Value, ind.BollingerUpper.Value, ind.SMA20.Value)
	}
}

func TestEmptyHistoryYieldsNoIndicators(t *testing.T) {
	ind := NewCalculator().Compute(nil)
	if ind.RSI.Valid || ind.MACD.Valid || ind.SMA20.Valid || ind.SMA50.Valid ||
		ind.BollingerUpper.Valid || ind.BollingerLower.Valid || ind.AvgVolume20.Valid {
		t.Fatalf("empty history produced defined indicators: %+v", ind)
	}
}
