package chat

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/mindshift/backend/internal/analysis/emotion"
	"github.com/zhouzirui/mindshift/backend/internal/identity"
	"github.com/zhouzirui/mindshift/backend/internal/model/chat"
	"github.com/zhouzirui/mindshift/backend/internal/observability"
	"github.com/zhouzirui/mindshift/backend/internal/service/typing"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrEmptyMessage     = errors.New("message cannot be empty")
	ErrReplyPending     = errors.New("the assistant is still replying")
	ErrStoreUnavailable = errors.New("could not save your message, please try again")
	ErrSignInRequired   = errors.New("you must be signed in to view your chat history")
)

const (
	defaultIdleTTL = 30 * time.Minute
	sweepInterval  = time.Minute
)

// Options wires the collaborators of a Service. Every field is optional.
// Sessions untouched for IdleTTL are closed when new sessions are created.
type Options struct {
	Store    chat.Store
	Identity identity.Provider
	Typing   *typing.Scheduler
	Rand     emotion.RandSource
	Now      func() time.Time
	IdleTTL  time.Duration
}

type session struct {
	mu      sync.Mutex
	info    chat.Session
	log     []chat.Message
	recent  emotion.Recency
	pending *typing.Typing
	closed  bool

	// lastActive is unix nanoseconds, read by the sweep without taking mu.
	lastActive atomic.Int64
}

// Service owns live support-chat sessions.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*session

	store    chat.Store
	identity identity.Provider
	typing   *typing.Scheduler
	rnd      emotion.RandSource
	now      func() time.Time

	idleTTL   time.Duration
	lastSweep time.Time
}

// NewService bootstraps the chat service.
func NewService(opts Options) *Service {
	svc := &Service{
		sessions: make(map[string]*session),
		store:    opts.Store,
		identity: opts.Identity,
		typing:   opts.Typing,
		rnd:      opts.Rand,
		now:      opts.Now,
		idleTTL:  opts.IdleTTL,
	}
	if svc.idleTTL <= 0 {
		svc.idleTTL = defaultIdleTTL
	}
	if svc.identity == nil {
		svc.identity = identity.ContextProvider{}
	}
	if svc.typing == nil {
		svc.typing = typing.NewScheduler(typing.Config{})
	}
	if svc.rnd == nil {
		svc.rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	svc.rnd = &lockedRand{src: svc.rnd}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// CreateSession opens a conversation for the current identity, seeded with the
// welcome message.
func (s *Service) CreateSession(ctx context.Context) (chat.Session, error) {
	userID, _ := s.identity.CurrentUserID(ctx)
	now := s.now().UTC()

	sess := &session{
		info: chat.Session{
			ID:        uuid.NewString(),
			UserID:    userID,
			CreatedAt: now,
		},
		log: make([]chat.Message, 0, 16),
	}
	sess.log = append(sess.log, chat.Message{
		ID:        1,
		SessionID: sess.info.ID,
		Role:      chat.RoleAssistant,
		Text:      emotion.WelcomeMessage,
		CreatedAt: now,
	})

	sess.lastActive.Store(now.UnixNano())

	s.sweepIdle(now)
	s.mu.Lock()
	s.sessions[sess.info.ID] = sess
	s.mu.Unlock()

	return sess.info, nil
}

// sweepIdle closes sessions untouched for idleTTL.
func (s *Service) sweepIdle(now time.Time) {
	s.mu.Lock()
	if now.Sub(s.lastSweep) < sweepInterval {
		s.mu.Unlock()
		return
	}
	s.lastSweep = now
	var idle []*session
	for id, sess := range s.sessions {
		if now.Sub(time.Unix(0, sess.lastActive.Load())) > s.idleTTL {
			idle = append(idle, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range idle {
		sess.close()
	}
}

// SendMessage records the user's turn and schedules the assistant reply.
// onReply runs once the reply has been typed and appended to the log; it is
// not called if the session is closed first.
func (s *Service) SendMessage(ctx context.Context, sessionID, text string, onReply func(chat.Message)) (chat.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return chat.Message{}, ErrEmptyMessage
	}

	sess, err := s.lookup(sessionID)
	if err != nil {
		return chat.Message{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed {
		return chat.Message{}, ErrSessionNotFound
	}
	if sess.pending != nil {
		return chat.Message{}, ErrReplyPending
	}

	userMsg := chat.Message{
		ID:        len(sess.log) + 1,
		SessionID: sess.info.ID,
		Role:      chat.RoleUser,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
	sess.log = append(sess.log, userMsg)

	if err := s.persist(ctx, sess.info.UserID, userMsg); err != nil {
		observability.LoggerFromContext(ctx).Error("chat: persist user message failed",
			"session_id", sess.info.ID, "error", err)
		return userMsg, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	reply := emotion.TherapeuticResponse(text, sess.recent.Snapshot(), s.rnd)
	logger := observability.LoggerFromContext(ctx)
	logger.Debug("chat: reply selected", "session_id", sess.info.ID, "category", reply.Category)

	// The request context ends before the reply is typed.
	bg := context.WithoutCancel(ctx)
	sess.pending = s.typing.Simulate(reply.Text, func(full string) {
		msg, ok := s.deliver(sess, full, reply.Category)
		if !ok {
			return
		}
		if err := s.persist(bg, sess.info.UserID, msg); err != nil {
			logger.Error("chat: persist assistant message failed", "session_id", sess.info.ID, "error", err)
		}
		if onReply != nil {
			onReply(msg)
		}
	})

	return userMsg, nil
}

func (s *Service) deliver(sess *session, text string, category emotion.Category) (chat.Message, bool) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed {
		return chat.Message{}, false
	}
	msg := chat.Message{
		ID:        len(sess.log) + 1,
		SessionID: sess.info.ID,
		Role:      chat.RoleAssistant,
		Text:      text,
		Category:  string(category),
		CreatedAt: s.now().UTC(),
	}
	sess.log = append(sess.log, msg)
	sess.recent.Push(text)
	sess.pending = nil
	return msg, true
}

func (s *Service) persist(ctx context.Context, userID string, msg chat.Message) error {
	if userID == "" || s.store == nil {
		return nil
	}
	return s.store.Append(ctx, userID, msg)
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return chat.Session{}, err
	}
	return sess.info, nil
}

// Transcript returns the session log in insertion order.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]chat.Message, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return append([]chat.Message(nil), sess.log...), nil
}

// Typing reports whether a reply is currently being typed for the session.
func (s *Service) Typing(_ context.Context, sessionID string) (bool, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return false, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.pending != nil, nil
}

// CloseSession drops the session and cancels any reply still being typed.
func (s *Service) CloseSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	sess.close()
	return nil
}

// Close cancels every pending reply. Used on shutdown.
func (s *Service) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.close()
	}
}

// History returns the persisted turns of the signed-in user.
func (s *Service) History(ctx context.Context) ([]chat.Message, error) {
	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return nil, ErrSignInRequired
	}
	if s.store == nil {
		return []chat.Message{}, nil
	}
	messages, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list chat history: %w", err)
	}
	return messages, nil
}

func (s *Service) lookup(sessionID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastActive.Store(s.now().UnixNano())
	return sess, nil
}

// close marks the session closed and cancels its pending reply. Stop runs
// after mu is released because a completing reply waits on mu in deliver.
func (sess *session) close() {
	sess.mu.Lock()
	sess.closed = true
	pending := sess.pending
	sess.pending = nil
	sess.recent.Reset()
	sess.mu.Unlock()

	if pending != nil {
		pending.Stop()
	}
}

type lockedRand struct {
	mu  sync.Mutex
	src emotion.RandSource
}

func (r *lockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}
