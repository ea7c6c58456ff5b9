package generation

import (
	"fmt"
	"imgstudio/internal/config"
	"imgstudio/internal/core/domain"
	"imgstudio/internal/core/port"
	"imgstudio/internal/core/service/polling"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type generationService struct {
	client       port.GenerationClient
	storage      port.ObjectStorage
	publisher    port.EventPublisher
	registry     *polling.Registry
	logger       *slog.Logger
	outputPrefix string
	mediaRoots   []string
}

// NewGenerationService creates a new generation service. Every form session gets its own poller built from pollingCfg and pollerOpts.
func NewGenerationService(
	client port.GenerationClient,
	storage port.ObjectStorage,
	publisher port.EventPublisher,
	metrics port.Metrics,
	logger *slog.Logger,
	cfg config.GenerationConfig,
	pollingCfg config.PollingConfig,
	pollerOpts ...polling.Option,
) port.GenerationService {
	if publisher == nil {
		publisher = port.NopPublisher{}
	}
	if metrics == nil {
		metrics = port.NopMetrics{}
	}

	g := &generationService{
		client:       client,
		storage:      storage,
		publisher:    publisher,
		logger:       logger,
		outputPrefix: strings.TrimSuffix(cfg.OutputURIPrefix, "/"),
		mediaRoots:   cfg.MediaRoots,
	}

	opts := append([]polling.Option{polling.WithLogger(logger), polling.WithMetrics(metrics)}, pollerOpts...)
	newPoller := func() *polling.Poller {
		return polling.NewPoller(client, polling.ConfigFrom(pollingCfg), opts...)
	}
	g.registry = polling.NewRegistry(newPoller, pollingCfg.MaxSessions, pollingCfg.SessionTTL, g.publishOutcome, logger)

	return g
}

func (g *generationService) Close() {
	g.registry.StopAll()
}

func (g *generationService) outputURI(ownerEmail string) string {
	return domain.OwnerURIPrefix(g.outputPrefix, ownerEmail)
}

func objectName(ownerEmail string, format domain.MediaFormat) string {
	return domain.UploadFolder + "/" + domain.OwnerFolder(ownerEmail) + "/" + uuid.NewString() + format.Extension()
}

// checkInputImage rejects a referenced image outside the user's folders
func (g *generationService) checkInputImage(ownerEmail string, uri string) error {
	if uri == "" {
		return nil
	}
	if err := domain.CheckOwnedURI(uri, ownerEmail, g.mediaRoots); err != nil {
		g.logger.Warn("security: input image outside the user's folders rejected", "user", ownerEmail, "uri", uri)
		return fmt.Errorf("%w: %w", domain.ErrInvalidForm, err)
	}
	return nil
}
