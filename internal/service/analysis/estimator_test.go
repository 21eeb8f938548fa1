package analysis

import (
	"testing"

	"FinSight/internal/domain/models"
)

func TestPriceTargetAbsentWithoutBands(t *testing.T) {
	if got := NewEstimator().PriceTarget(100, models.Indicators{}); got.Valid {
		t.Fatalf("target = %+v, want absent", got)
	}
}

func TestPriceTargetWithinBands(t *testing.T) {
	est := NewEstimator()
	ind := models.Indicators{
		BollingerUpper: f(110),
		BollingerLower: f(90),
	}

	tests := []struct {
		name  string
		price float64
		want  float64
	}{
		{"below lower band targets upper", 85, 110},
		{"above upper band targets lower", 115, 90},
		{"inside bands targets midpoint", 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := est.PriceTarget(tt.price, ind)
			if !got.Valid || got.Value != tt.want {
				t.Fatalf("target = %+v, want %v", got, tt.want)
			}
			if got.Value < ind.BollingerLower.Value || got.Value > ind.BollingerUpper.Value {
				t.Fatalf("target %v outside bands", got.Value)
			}
		})
	}
}

func TestRiskDefaultsToMediumWithOneBar(t *testing.T) {
	got := NewEstimator().Risk(barsFromCloses([]float64{100}, 1000))
	if got.Level != models.RiskMedium || !got.Defaulted {
		t.Fatalf("risk = %+v, want defaulted medium", got)
	}
	if got.Volatility.Valid {
		t.Fatalf("volatility = %+v, want undefined for defaulted risk", got.Volatility)
	}
}

func TestRiskLevels(t *testing.T) {
	est := NewEstimator()

	flat := make([]float64, 30)
	for i := range flat {
		flat[i] = 100
	}
	if got := est.Risk(barsFromCloses(flat, 1000)); got.Level != models.RiskLow || got.Defaulted {
		t.Fatalf("flat series risk = %+v, want computed low", got)
	}

	// alternating +10%/-9% swings annualize far above 0.4
	wild := make([]float64, 30)
	wild[0] = 100
	for i := 1; i < len(wild); i++ {
		if i%2 == 0 {
			wild[i] = wild[i-1] * 1.10
		} else {
			wild[i] = wild[i-1] * 0.91
		}
	}
	got := est.Risk(barsFromCloses(wild, 1000))
	if got.Level != models.RiskHigh || got.Defaulted {
		t.Fatalf("wild series risk = %+v, want computed high", got)
	}
	if !got.Volatility.Valid || got.Volatility.Value <= 0.4 {
		t.Fatalf("volatility = %+v, want > 0.4", got.Volatility)
	}
}
