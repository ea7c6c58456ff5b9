package vertex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"imgstudio/internal/config"
	"imgstudio/internal/core/domain"
	"imgstudio/internal/core/port"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Client talks to Imagen and Veo on Vertex AI. Every call goes through a
// circuit breaker; status checks are additionally throttled across all pollers.
type Client struct {
	genai   *genai.Client
	cfg     config.GenerationConfig
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a Vertex AI backed port.GenerationClient
func NewClient(ctx context.Context, cfg config.GenerationConfig, logger *slog.Logger) (port.GenerationClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  cfg.Project,
		Location: cfg.Location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating genai client: %w", err)
	}

	c := newGuardedClient(cfg, logger)
	c.genai = client
	return c, nil
}

func newGuardedClient(cfg config.GenerationConfig, logger *slog.Logger) *Client {
	st := gobreaker.Settings{
		Name:        "vertex",
		MaxRequests: 1,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMaxFailures
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &Client{
		cfg:     cfg,
		breaker: gobreaker.NewCircuitBreaker(st),
		limiter: rate.NewLimiter(rate.Limit(cfg.StatusRatePerSecond), cfg.StatusBurst),
		logger:  logger,
	}
}

// GenerateImages implements port.GenerationClient
func (c *Client) GenerateImages(ctx context.Context, req domain.ImageRequest) ([]domain.GeneratedMedia, error) {
	model := req.Model
	if model == "" {
		model = c.cfg.ImageModel
	}

	res, err := c.execute(func() (any, error) {
		return c.genai.Models.GenerateImages(ctx, model, req.Prompt, imageConfig(req))
	})
	if err != nil {
		return nil, err
	}
	return mapImages(res.(*genai.GenerateImagesResponse), req, model), nil
}

// StartVideo implements port.GenerationClient
func (c *Client) StartVideo(ctx context.Context, req domain.VideoRequest) (*domain.VideoStart, error) {
	if req.Model == "" {
		req.Model = c.cfg.VideoModel
	}
	image, err := startImage(req.StartImage)
	if err != nil {
		return nil, err
	}

	res, err := c.execute(func() (any, error) {
		return c.genai.Models.GenerateVideos(ctx, req.Model, req.Prompt, image, videoConfig(req))
	})
	if err != nil {
		return nil, err
	}

	op := res.(*genai.GenerateVideosOperation)
	start := &domain.VideoStart{OperationName: op.Name}
	if op.Done {
		status := mapVideoOperation(op, req)
		if status.Error != "" {
			return nil, errors.New(status.Error)
		}
		start.Videos = status.Videos
	}
	return start, nil
}

// VideoStatus implements port.GenerationClient
func (c *Client) VideoStatus(ctx context.Context, operationName string, req domain.VideoRequest) (*domain.VideoStatus, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}

	res, err := c.execute(func() (any, error) {
		return c.genai.Operations.GetVideosOperation(ctx, &genai.GenerateVideosOperation{Name: operationName}, nil)
	})
	if err != nil {
		return nil, err
	}
	return mapVideoOperation(res.(*genai.GenerateVideosOperation), req), nil
}

func (c *Client) execute(call func() (any, error)) (any, error) {
	res, err := c.breaker.Execute(call)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return res, err
}

// isSuccessful keeps caller mistakes from tripping the breaker
func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return isClientError(apiErr.Code)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return isClientError(apiErrPtr.Code)
	}
	return false
}

func isClientError(code int) bool {
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests
}
