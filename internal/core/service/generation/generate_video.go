package generation

import (
	"context"
	"fmt"
	"imgstudio/internal/core/domain"
)

func (g *generationService) GenerateVideo(ctx context.Context, ownerEmail string, sessionID string, values domain.FormValues) (*domain.VideoStart, error) {

	if sessionID == "" {
		return nil, fmt.Errorf("%w: form session id is required", domain.ErrInvalidForm)
	}
	if err := domain.VideoGenerationForm.Validate(values); err != nil {
		return nil, err
	}

	if err := g.registry.CheckOwner(ownerEmail, sessionID); err != nil {
		return nil, err
	}

	req := domain.VideoRequestFromForm(values)
	if err := g.checkInputImage(ownerEmail, req.StartImage); err != nil {
		return nil, err
	}
	req.OutputURI = g.outputURI(ownerEmail)

	start, err := g.client.StartVideo(ctx, req)
	if err != nil {
		g.logger.Error("video generation failed to start", "user", ownerEmail, "model", req.Model, "err", err)
		return nil, fmt.Errorf("failed to start video generation: %w", err)
	}

	if len(start.Videos) > 0 {
		videos, _, err := g.persist(ctx, ownerEmail, start.Videos)
		if err != nil {
			return nil, err
		}
		// a finished result supersedes whatever the session was polling
		_ = g.registry.Cancel(ownerEmail, sessionID)
		return &domain.VideoStart{Videos: videos}, nil
	}

	if start.OperationName == "" {
		return nil, domain.ErrNoValidResults
	}

	op := domain.PollingOperation{Name: start.OperationName, Request: req, Prompt: req.Prompt}
	if err := g.registry.Start(ownerEmail, sessionID, op); err != nil {
		return nil, err
	}

	g.logger.Info("video generation started", "user", ownerEmail, "session", sessionID, "operation", start.OperationName)
	return &domain.VideoStart{OperationName: start.OperationName}, nil
}

func (g *generationService) VideoJob(ownerEmail string, sessionID string) (*domain.VideoJob, error) {
	return g.registry.Job(ownerEmail, sessionID)
}

func (g *generationService) CancelVideo(ownerEmail string, sessionID string) error {
	return g.registry.Cancel(ownerEmail, sessionID)
}
