package generation

import (
	"context"
	"imgstudio/internal/core/domain"
	"time"
)

const publishTimeout = 5 * time.Second

func (g *generationService) publishOutcome(ownerEmail string, sessionID string, op domain.PollingOperation, job domain.VideoJob) {
	event := domain.VideoGenerationEvent{
		SessionID:     sessionID,
		OperationName: op.Name,
		OwnerEmail:    ownerEmail,
		Error:         job.Error,
		OccurredAt:    time.Now().UTC(),
	}
	eventType := domain.EventTypeVideoGenerationFailed
	if job.State == domain.PollingStateSucceeded {
		eventType = domain.EventTypeVideoGenerationCompleted
		for _, video := range job.Videos {
			event.VideoURIs = append(event.VideoURIs, video.URI)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := g.publisher.Publish(ctx, eventType, event); err != nil {
		g.logger.Error("failed to publish video outcome", "session", sessionID, "operation", op.Name, "err", err)
	}
}
