package game

import (
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NotifyFunc receives the final directive of a session that ended without a
// player action to answer (i.e. deadline expiry). The transport uses it to
// update the session's message.
type NotifyFunc func(sessionID, kind string, d RenderDirective)

// session pairs one game instance with its lifecycle bookkeeping.
// The mutex serializes player actions against the session's own expiry;
// sessions are otherwise fully independent.
type session struct {
	id     string
	kind   string
	owner  string
	game   Game
	status Status
	timer  *time.Timer
	mu     sync.Mutex
}

// Registry tracks all live sessions, dispatches incoming actions to the
// right session and expires sessions whose deadline has elapsed.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	sessions  map[string]*session
	notify    NotifyFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		sessions:  make(map[string]*session),
	}
}

// SetNotifier installs the callback used for expiry directives.
// Must be set before sessions are created.
func (r *Registry) SetNotifier(fn NotifyFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notify = fn
}

// RegisterKind registers a factory for a game kind. Registering the same
// kind twice replaces the factory.
func (r *Registry) RegisterKind(kind string, f Factory) error {
	if kind == "" {
		return fmt.Errorf("game kind cannot be empty")
	}
	if f == nil {
		return fmt.Errorf("cannot register nil factory for %q", kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = f
	return nil
}

// Kinds returns the registered game kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Create allocates a new session for owner, arms its deadline timer and
// returns the session id together with the opening directive.
// Returns an ErrConfig-wrapped error for an unknown kind or bad params.
func (r *Registry) Create(owner, kind string, params map[string]any) (string, RenderDirective, error) {
	r.mu.RLock()
	factory, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		return "", RenderDirective{}, fmt.Errorf("%w: unknown game kind %q", ErrConfig, kind)
	}

	g, err := factory(params)
	if err != nil {
		return "", RenderDirective{}, err
	}

	s := &session{
		id:     newSessionID(),
		kind:   kind,
		owner:  owner,
		game:   g,
		status: StatusActive,
	}
	s.timer = time.AfterFunc(g.Timeout(), func() { r.Expire(s.id) })

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()

	log.Debug().
		Str("session_id", s.id).
		Str("kind", kind).
		Str("owner", owner).
		Dur("timeout", g.Timeout()).
		Msg("Session created")

	return s.id, g.Opening(), nil
}

// Submit forwards a player action to its session.
// Returns ErrNotFound for an unknown or already-finished session and
// ErrForbidden, without touching session state, when actor is not the owner.
// A terminal directive retires the session and disarms its timer.
func (r *Registry) Submit(sessionID, actor, action string) (RenderDirective, error) {
	s := r.lookup(sessionID)
	if s == nil {
		return RenderDirective{}, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A stale pointer can be observed between expiry marking the session
	// and its removal from the map.
	if s.status != StatusActive {
		return RenderDirective{}, ErrNotFound
	}
	if actor != s.owner {
		return RenderDirective{}, ErrForbidden
	}

	d, err := s.game.Advance(action)
	if err != nil {
		return RenderDirective{}, err
	}

	if d.Terminal {
		s.status = StatusCompleted
		s.timer.Stop()
		r.remove(s.id)
		log.Debug().
			Str("session_id", s.id).
			Str("kind", s.kind).
			Msg("Session completed")
	}
	return d, nil
}

// Expire ends a session whose deadline elapsed. It is idempotent: a session
// that is unknown, already completed or already expired is a no-op. The
// final directive is delivered through the notifier, after the transition.
func (r *Registry) Expire(sessionID string) {
	s := r.lookup(sessionID)
	if s == nil {
		return
	}

	s.mu.Lock()
	if s.status != StatusActive {
		s.mu.Unlock()
		return
	}
	s.status = StatusExpired
	d := s.game.Expired()
	r.remove(s.id)
	s.mu.Unlock()

	log.Debug().
		Str("session_id", s.id).
		Str("kind", s.kind).
		Msg("Session expired")

	r.mu.RLock()
	notify := r.notify
	r.mu.RUnlock()
	if notify != nil {
		notify(s.id, s.kind, d)
	}
}

func (r *Registry) lookup(sessionID string) *session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[sessionID]
}

func (r *Registry) remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// newSessionID returns a 32-character hex session id. Dashes are stripped so
// the id fits Telegram's 64-byte callback data budget next to a game kind
// and an action payload.
func newSessionID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
