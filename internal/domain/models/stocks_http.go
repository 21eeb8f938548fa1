package models

// Requests for the stock HTTP endpoints. Defined in domain for consistency and reuse.

type QuoteRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required,alphanum,max=10"`
}

type RecommendationRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required,alphanum,max=10"`
}

type SearchRequest struct {
	Query string `query:"q" json:"q" validate:"required,min=1,max=32"`
	Limit int    `query:"limit" json:"limit" default:"10" validate:"gte=1,lte=50"`
}

type NewsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"omitempty,alphanum,max=10"`
	Limit  int    `query:"limit" json:"limit" default:"10" validate:"gte=1,lte=50"`
}

type ChatRequest struct {
	Query string `json:"query" validate:"required,min=1,max=2000"`
}
