package models

import "time"

// Sentiment is a per-article or symbol-level news sentiment label.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// RiskLevel classifies annualized volatility of daily returns.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Action is the recommendation class.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

// Indicators holds the derived technical values for the most recent bar.
// Each field is undefined when the history is shorter than its window.
type Indicators struct {
	RSI            Float
	MACD           Float
	SMA20          Float
	SMA50          Float
	BollingerUpper Float
	BollingerLower Float
	AvgVolume20    Float
}

// RiskAssessment carries the risk level together with how it was obtained.
// Defaulted is set when fewer than 2 bars exist and medium was substituted,
// so a computed medium stays distinguishable from the fallback.
type RiskAssessment struct {
	Level      RiskLevel `json:"level"`
	Volatility Float     `json:"volatility"`
	Defaulted  bool      `json:"defaulted"`
}

// Recommendation is the composed per-symbol analysis result.
type Recommendation struct {
	Symbol        string         `json:"symbol"`
	Action        Action         `json:"action"`
	Score         int            `json:"score"`
	Confidence    float64        `json:"confidence"`
	Reasoning     []string       `json:"reasoning"`
	CurrentPrice  float64        `json:"current_price"`
	PriceTarget   Float          `json:"price_target"`
	Risk          RiskAssessment `json:"risk"`
	NewsSentiment Sentiment      `json:"news_sentiment"`
	GeneratedAt   time.Time      `json:"generated_at"`
}

// RecommendationEvent is the message published when a recommendation is
// generated. Keyed by symbol for per-symbol ordering.
type RecommendationEvent struct {
	Symbol        string    `json:"symbol"`
	Action        Action    `json:"action"`
	Score         int       `json:"score"`
	Confidence    float64   `json:"confidence"`
	CurrentPrice  float64   `json:"current_price"`
	PriceTarget   Float     `json:"price_target"`
	RiskLevel     RiskLevel `json:"risk_level"`
	NewsSentiment Sentiment `json:"news_sentiment"`
	GeneratedAt   time.Time `json:"generated_at"`
}
