package polling

import (
	"log/slog"
	"sync"
	"time"

	"imgstudio/internal/core/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// OutcomeHandler is told about every terminal outcome of a session
type OutcomeHandler func(ownerEmail string, sessionID string, op domain.PollingOperation, job domain.VideoJob)

// Registry owns one Poller per form session. Sessions expire after a TTL
// or when the registry is full, and eviction stops the session's poller.
type Registry struct {
	newPoller func() *Poller
	onOutcome OutcomeHandler
	logger    *slog.Logger

	mu       sync.Mutex
	sessions *expirable.LRU[string, *session]
}

type session struct {
	id     string
	owner  string
	poller *Poller

	mu     sync.Mutex
	videos []domain.GeneratedMedia
	errMsg string
	lastOp string
}

// NewRegistry creates a registry. newPoller builds an idle poller for each new session.
func NewRegistry(newPoller func() *Poller, size int, ttl time.Duration, onOutcome OutcomeHandler, logger *slog.Logger) *Registry {
	r := &Registry{
		newPoller: newPoller,
		onOutcome: onOutcome,
		logger:    logger,
	}
	r.sessions = expirable.NewLRU[string, *session](size, r.evicted, ttl)
	return r
}

// evicted runs when a session expires or is pushed out by newer ones.
// A session still polling loses its result, so that case is logged.
func (r *Registry) evicted(id string, s *session) {
	snap := s.poller.Snapshot()
	s.poller.Stop()
	if snap.State == domain.PollingStatePolling {
		r.logger.Warn("video session evicted while polling",
			"session", id, "user", s.owner, "operation", snap.Operation, "attempts", snap.Attempts)
	}
}

// Start tracks op for the session, replacing any operation already tracked there
func (r *Registry) Start(ownerEmail string, sessionID string, op domain.PollingOperation) error {
	r.mu.Lock()
	s, ok := r.sessions.Get(sessionID)
	if ok && s.owner != ownerEmail {
		r.mu.Unlock()
		r.logger.Warn("security: form session belongs to another user", "session", sessionID, "user", ownerEmail)
		return domain.ErrSessionNotFound
	}
	if !ok {
		s = &session{id: sessionID, owner: ownerEmail, poller: r.newPoller()}
	}
	r.sessions.Add(sessionID, s)
	r.mu.Unlock()

	s.mu.Lock()
	s.videos = nil
	s.errMsg = ""
	s.lastOp = op.Name
	s.mu.Unlock()

	s.poller.Start(op, &sessionListener{registry: r, session: s})
	return nil
}

// CheckOwner fails when the session exists and belongs to another user
func (r *Registry) CheckOwner(ownerEmail string, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions.Peek(sessionID); ok && s.owner != ownerEmail {
		r.logger.Warn("security: form session belongs to another user", "session", sessionID, "user", ownerEmail)
		return domain.ErrSessionNotFound
	}
	return nil
}

// Job returns the session's current view
func (r *Registry) Job(ownerEmail string, sessionID string) (*domain.VideoJob, error) {
	s, err := r.lookup(ownerEmail, sessionID)
	if err != nil {
		return nil, err
	}
	job := s.job()
	return &job, nil
}

// Cancel stops polling for the session without delivering a result
func (r *Registry) Cancel(ownerEmail string, sessionID string) error {
	s, err := r.lookup(ownerEmail, sessionID)
	if err != nil {
		return err
	}
	s.poller.Stop()
	return nil
}

// StopAll stops every poller, used on shutdown
func (r *Registry) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions.Values() {
		s.poller.Stop()
	}
}

func (r *Registry) lookup(ownerEmail string, sessionID string) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.owner != ownerEmail {
		r.logger.Warn("security: form session belongs to another user", "session", sessionID, "user", ownerEmail)
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (s *session) job() domain.VideoJob {
	snap := s.poller.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	job := domain.VideoJob{
		SessionID:     s.id,
		State:         snap.State,
		OperationName: snap.Operation,
		Attempts:      snap.Attempts,
		Videos:        s.videos,
		Error:         s.errMsg,
	}
	if job.OperationName == "" {
		job.OperationName = s.lastOp
	}
	return job
}

type sessionListener struct {
	registry *Registry
	session  *session
}

func (l *sessionListener) OnVideoGenerationComplete(op domain.PollingOperation, videos []domain.GeneratedMedia) {
	l.session.mu.Lock()
	stale := l.session.lastOp != op.Name
	if !stale {
		l.session.videos = videos
		l.session.errMsg = ""
	}
	l.session.mu.Unlock()
	if stale {
		return
	}
	l.notify(op)
}

func (l *sessionListener) OnVideoGenerationError(op domain.PollingOperation, message string) {
	l.session.mu.Lock()
	stale := l.session.lastOp != op.Name
	if !stale {
		l.session.videos = nil
		l.session.errMsg = message
	}
	l.session.mu.Unlock()
	if stale {
		return
	}
	l.notify(op)
}

func (l *sessionListener) notify(op domain.PollingOperation) {
	if l.registry.onOutcome == nil {
		return
	}
	l.registry.onOutcome(l.session.owner, l.session.id, op, l.session.job())
}
