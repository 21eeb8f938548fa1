package rag

import (
	"context"
	"fmt"
	"time"

	"FinSight/internal/domain/models"
	"FinSight/pkg/config"
	xhttp "FinSight/pkg/http"
)

// Client talks to the retrieval-augmented answer service. The pipeline
// (embedding, vector search, synthesis) is opaque; this side only sends a
// question and decodes the answer with its source snippets.
type Client struct {
	baseURL string
	client  *xhttp.Client
}

func NewClient(cfg *config.Config) *Client {
	timeout := cfg.RAG.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.RAG.ServiceURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type queryRequest struct {
	Query string `json:"query"`
}

// Query sends the question and retries once on transient failure.
func (c *Client) Query(ctx context.Context, question string) (*models.ChatAnswer, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("rag service not configured")
	}

	var answer models.ChatAnswer
	var err error
	for attempt := 1; attempt <= 2; attempt++ {
		err = c.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodPost,
			URL:    c.baseURL + "/api/rag/query",
			Body:   queryRequest{Query: question},
		}, &answer)
		if err == nil {
			return &answer, nil
		}
		select {
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("rag query: %w", err)
}
