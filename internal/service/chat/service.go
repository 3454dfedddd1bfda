package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/farmstead/backend/internal/analysis/intent"
	"github.com/zhouzirui/farmstead/backend/internal/model/chat"
)

const (
	defaultSessionTTL    = 30 * time.Minute
	defaultSweepInterval = time.Minute
)

// Config controls session lifetime and reply pacing.
type Config struct {
	Delay         Delay
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

// Service owns the conversations of all live sessions.
type Service struct {
	resolver   *intent.Resolver
	dispatcher *intent.Dispatcher
	synth      *Synthesizer
	ttl        time.Duration
	interval   time.Duration

	mu       sync.RWMutex
	sessions map[string]chat.Session
	convs    map[string]*Conversation
}

// NewService bootstraps the in-memory assistant service. Conversations are
// not persisted and vanish after SessionTTL of inactivity.
func NewService(resolver *intent.Resolver, dispatcher *intent.Dispatcher, cfg Config) *Service {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	return &Service{
		resolver:   resolver,
		dispatcher: dispatcher,
		synth:      NewSynthesizer(cfg.Delay),
		ttl:        ttl,
		interval:   interval,
		sessions:   make(map[string]chat.Session),
		convs:      make(map[string]*Conversation),
	}
}

// QuickActions lists the shortcut buttons callers may render.
func (s *Service) QuickActions() []intent.Shortcut {
	return s.dispatcher.Actions()
}

// CreateSession provisions an anonymous session with a fresh conversation.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	now := time.Now().UTC()
	session := chat.Session{
		ID:           uuid.NewString(),
		CreatedAt:    now,
		LastActivity: now,
	}

	conv := NewConversation(session.ID, s.resolver, s.dispatcher, s.synth)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.convs[session.ID] = conv
	activeSessions.Set(float64(len(s.convs)))
	s.mu.Unlock()

	slog.Info("session created", "session", session.ID)
	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	session.LastActivity = s.convs[sessionID].LastActivity().UTC()
	return session, nil
}

// SubmitText answers free text typed by the user.
func (s *Service) SubmitText(_ context.Context, sessionID, text string) (Exchange, error) {
	conv, err := s.acquire(sessionID)
	if err != nil {
		return Exchange{}, err
	}
	defer conv.release()
	return conv.submitText(text)
}

// SubmitQuickAction answers a shortcut button press.
func (s *Service) SubmitQuickAction(_ context.Context, sessionID, categoryKey string) (Exchange, error) {
	conv, err := s.acquire(sessionID)
	if err != nil {
		return Exchange{}, err
	}
	defer conv.release()
	return conv.submitQuickAction(categoryKey)
}

// Reset restores the session's conversation to the initial greeting.
func (s *Service) Reset(_ context.Context, sessionID string) ([]chat.Message, error) {
	conv, err := s.conversation(sessionID)
	if err != nil {
		return nil, err
	}
	conv.Reset()
	return conv.Snapshot(), nil
}

// LoadTranscript returns the stored messages for the provided session.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Message, error) {
	conv, err := s.conversation(sessionID)
	if err != nil {
		return nil, err
	}
	return conv.Snapshot(), nil
}

// Transcript returns the stored messages together with the dialogue context
// they imply, read under one lock.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]chat.Message, intent.DialogueContext, error) {
	conv, err := s.conversation(sessionID)
	if err != nil {
		return nil, intent.DialogueContext{}, err
	}
	messages, dialogue := conv.State()
	return messages, dialogue, nil
}

// DialogueContext returns the pending selection state of a session.
func (s *Service) DialogueContext(_ context.Context, sessionID string) (intent.DialogueContext, error) {
	conv, err := s.conversation(sessionID)
	if err != nil {
		return intent.DialogueContext{}, err
	}
	return conv.Context(), nil
}

// DeleteSession ends a session immediately.
func (s *Service) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	delete(s.convs, sessionID)
	activeSessions.Set(float64(len(s.convs)))
	return nil
}

// Sweep evicts sessions idle for longer than the TTL and returns how many
// were removed. Sessions with a reply in flight are kept.
func (s *Service) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, conv := range s.convs {
		if conv.Pending() || now.Sub(conv.LastActivity()) <= s.ttl {
			continue
		}
		delete(s.sessions, id)
		delete(s.convs, id)
		removed++
	}
	activeSessions.Set(float64(len(s.convs)))
	return removed
}

// Run sweeps idle sessions until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			if n := s.Sweep(t); n > 0 {
				slog.Info("expired idle sessions", "count", n, "ttl", s.ttl)
			}
		}
	}
}

// acquire looks up the conversation and marks it in flight while the
// registry lock is held, so Sweep cannot evict it in between.
func (s *Service) acquire(sessionID string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.convs[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !conv.acquire() {
		return nil, ErrBusy
	}
	return conv, nil
}

func (s *Service) conversation(sessionID string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.convs[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return conv, nil
}
