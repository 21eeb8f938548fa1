package usecase

import (
	"context"

	"FinSight/internal/domain/models"
	domrepo "FinSight/internal/domain/repository"
	"FinSight/pkg/queue"
)

// Queue message types handled by the background workers.
const (
	TypeArchiveBars           = "archive_bars"
	TypePublishRecommendation = "publish_recommendation"
)

// ArchiveBarsPayload carries one fetched history to the archive worker.
type ArchiveBarsPayload struct {
	Symbol string       `json:"symbol"`
	Bars   []models.Bar `json:"bars"`
}

// ArchiveBarsJob persists fetched histories off the request path.
type ArchiveBarsJob struct {
	archive domrepo.BarArchive
}

func NewArchiveBarsJob(archive domrepo.BarArchive) *ArchiveBarsJob {
	return &ArchiveBarsJob{archive: archive}
}

func (j *ArchiveBarsJob) Name() string { return "archive-bars" }

func (j *ArchiveBarsJob) Type() string { return TypeArchiveBars }

func (j *ArchiveBarsJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[ArchiveBarsPayload](payload)
	if err != nil {
		return err
	}
	return j.archive.StoreBars(ctx, p.Symbol, p.Bars)
}

// PublishRecommendationJob emits generated recommendations as events.
type PublishRecommendationJob struct {
	publisher domrepo.EventPublisher
}

func NewPublishRecommendationJob(publisher domrepo.EventPublisher) *PublishRecommendationJob {
	return &PublishRecommendationJob{publisher: publisher}
}

func (j *PublishRecommendationJob) Name() string { return "publish-recommendation" }

func (j *PublishRecommendationJob) Type() string { return TypePublishRecommendation }

func (j *PublishRecommendationJob) Handle(ctx context.Context, payload interface{}) error {
	event, err := queue.ParsePayload[models.RecommendationEvent](payload)
	if err != nil {
		return err
	}
	return j.publisher.PublishRecommendation(ctx, event)
}
