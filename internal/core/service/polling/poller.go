package polling

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"imgstudio/internal/config"
	"imgstudio/internal/core/domain"
	"imgstudio/internal/core/port"
)

// Config tunes the polling backoff
type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Growth          float64
	JitterFactor    float64
	MaxAttempts     int
}

// DefaultConfig starts at 6s, grows by 1.2 up to 60s, ±10% jitter, 30 attempts
func DefaultConfig() Config {
	return Config{
		InitialInterval: 6 * time.Second,
		MaxInterval:     60 * time.Second,
		Growth:          1.2,
		JitterFactor:    0.2,
		MaxAttempts:     30,
	}
}

// ConfigFrom maps the environment configuration
func ConfigFrom(cfg config.PollingConfig) Config {
	return Config{
		InitialInterval: cfg.InitialInterval,
		MaxInterval:     cfg.MaxInterval,
		Growth:          cfg.Growth,
		JitterFactor:    cfg.JitterFactor,
		MaxAttempts:     cfg.MaxAttempts,
	}
}

// Listener receives the terminal outcome of a tracked operation. It is never called after Stop.
type Listener interface {
	OnVideoGenerationComplete(op domain.PollingOperation, videos []domain.GeneratedMedia)
	OnVideoGenerationError(op domain.PollingOperation, message string)
}

// Snapshot is a point in time view of a poller
type Snapshot struct {
	State     domain.PollingState
	Operation string
	Attempts  int
	Interval  time.Duration
}

// Poller tracks at most one video operation and polls its status with
// jittered exponential backoff until it reaches a terminal state.
type Poller struct {
	checker port.VideoStatusChecker
	cfg     Config
	clock   Clock
	random  func() float64
	logger  *slog.Logger
	metrics port.Metrics

	mu       sync.Mutex
	state    domain.PollingState
	op       *domain.PollingOperation
	listener Listener
	attempts int
	interval time.Duration
	timer    Timer
	ctx      context.Context
	cancel   context.CancelFunc
	// token identifies the tracked operation; a tick or query result carrying an older token is stale
	token uint64
}

// Option customises a Poller
type Option func(*Poller)

// WithClock replaces the wall clock
func WithClock(clock Clock) Option {
	return func(p *Poller) { p.clock = clock }
}

// WithRandom replaces the jitter source, which must return values in [0,1)
func WithRandom(random func() float64) Option {
	return func(p *Poller) { p.random = random }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) { p.logger = logger }
}

// WithMetrics sets the metrics recorder
func WithMetrics(metrics port.Metrics) Option {
	return func(p *Poller) { p.metrics = metrics }
}

// NewPoller creates an idle poller
func NewPoller(checker port.VideoStatusChecker, cfg Config, opts ...Option) *Poller {
	p := &Poller{
		checker: checker,
		cfg:     cfg,
		clock:   realClock{},
		random:  rand.Float64,
		logger:  slog.Default(),
		metrics: port.NopMetrics{},
		state:   domain.PollingStateIdle,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins tracking op, replacing whatever was tracked before. The first
// status query runs after the initial interval.
func (p *Poller) Start(op domain.PollingOperation, listener Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clearLocked()
	p.token++
	p.op = &op
	p.listener = listener
	p.attempts = 0
	p.interval = p.cfg.InitialInterval
	p.state = domain.PollingStatePolling
	p.ctx, p.cancel = context.WithCancel(context.Background())

	p.logger.Info("video polling started", "operation", op.Name)
	p.scheduleLocked(p.token, p.cfg.InitialInterval)
}

// Stop cancels polling without notifying the listener
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != domain.PollingStatePolling {
		return
	}
	p.logger.Info("video polling cancelled", "operation", p.op.Name, "attempts", p.attempts)
	p.clearLocked()
	p.token++
	p.state = domain.PollingStateCancelled
	p.metrics.PollOutcome(string(domain.PollingStateCancelled))
}

// Snapshot returns the current state
func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Snapshot{State: p.state, Attempts: p.attempts, Interval: p.interval}
	if p.op != nil {
		s.Operation = p.op.Name
	}
	return s
}

// clearLocked stops the timer and the in-flight query and forgets the operation.
// Every terminal transition goes through here.
func (p *Poller) clearLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.ctx = nil
	p.op = nil
	p.listener = nil
}

func (p *Poller) scheduleLocked(token uint64, delay time.Duration) {
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = p.clock.AfterFunc(delay, func() { p.tick(token) })
}

func (p *Poller) tick(token uint64) {
	p.mu.Lock()
	if p.token != token || p.state != domain.PollingStatePolling {
		p.mu.Unlock()
		return
	}
	p.timer = nil

	if p.attempts >= p.cfg.MaxAttempts {
		p.logger.Warn("video polling timed out", "operation", p.op.Name, "attempts", p.attempts)
		op, listener := p.finishLocked(domain.PollingStateFailed)
		p.mu.Unlock()
		notifyError(listener, op, domain.ErrPollingTimeout.Error())
		return
	}

	p.attempts++
	op := *p.op
	ctx := p.ctx
	attempt := p.attempts
	p.mu.Unlock()

	p.metrics.PollTick()
	status, err := p.checker.VideoStatus(ctx, op.Name, op.Request)

	p.mu.Lock()
	if p.token != token || p.state != domain.PollingStatePolling {
		p.mu.Unlock()
		p.logger.Debug("discarding status of operation no longer tracked", "operation", op.Name, "attempt", attempt)
		return
	}

	switch {
	case err != nil:
		p.logger.Error("video status check failed", "operation", op.Name, "attempt", attempt, "error", err)
		_, listener := p.finishLocked(domain.PollingStateFailed)
		p.mu.Unlock()
		notifyError(listener, op, domain.UserMessage(err))
	case status == nil:
		_, listener := p.finishLocked(domain.PollingStateFailed)
		p.mu.Unlock()
		notifyError(listener, op, domain.GenericErrorMessage)
	case status.Done && status.Error != "":
		p.logger.Warn("video operation failed", "operation", op.Name, "error", status.Error)
		_, listener := p.finishLocked(domain.PollingStateFailed)
		p.mu.Unlock()
		notifyError(listener, op, domain.CleanMessage(status.Error))
	case status.Done && len(status.Videos) > 0:
		p.logger.Info("video operation completed", "operation", op.Name, "attempt", attempt, "videos", len(status.Videos))
		_, listener := p.finishLocked(domain.PollingStateSucceeded)
		p.mu.Unlock()
		if listener != nil {
			listener.OnVideoGenerationComplete(op, status.Videos)
		}
	case status.Done:
		p.logger.Warn("video operation finished without results", "operation", op.Name)
		_, listener := p.finishLocked(domain.PollingStateFailed)
		p.mu.Unlock()
		notifyError(listener, op, domain.ErrNoValidResults.Error())
	default:
		delay := NextDelay(p.interval, p.cfg.JitterFactor, p.random())
		p.scheduleLocked(token, delay)
		p.interval = NextInterval(p.interval, p.cfg.Growth, p.cfg.MaxInterval)
		p.mu.Unlock()
	}
}

func (p *Poller) finishLocked(state domain.PollingState) (domain.PollingOperation, Listener) {
	op := *p.op
	listener := p.listener
	p.clearLocked()
	p.token++
	p.state = state
	p.metrics.PollOutcome(string(state))
	return op, listener
}

func notifyError(listener Listener, op domain.PollingOperation, message string) {
	if listener == nil {
		return
	}
	if message == "" {
		message = domain.GenericErrorMessage
	}
	listener.OnVideoGenerationError(op, message)
}

// IsTerminal reports whether a state ends polling
func IsTerminal(state domain.PollingState) bool {
	return state == domain.PollingStateSucceeded ||
		state == domain.PollingStateFailed ||
		state == domain.PollingStateCancelled
}
