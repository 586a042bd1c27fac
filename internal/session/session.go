package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/naveenspark/foodcourt/pkg/domain"
)

// Authenticator exchanges credentials for a new credential string.
type Authenticator interface {
	Authenticate(ctx context.Context, creds domain.Credentials) (string, error)
}

// Event is a session transition the UI reacts to.
type Event int

const (
	// EventSignedIn follows a successful Login.
	EventSignedIn Event = iota + 1
	// EventSignedOut follows Logout.
	EventSignedOut
	// EventInvalidated follows a backend rejection of the stored credential.
	EventInvalidated
)

func (e Event) String() string {
	switch e {
	case EventSignedIn:
		return "signed_in"
	case EventSignedOut:
		return "signed_out"
	case EventInvalidated:
		return "invalidated"
	default:
		return "unknown"
	}
}

// State is a snapshot of the session.
type State struct {
	Loading  bool
	Identity *domain.Identity
}

// Authenticated returns true if an identity is present.
func (s State) Authenticated() bool {
	return s.Identity != nil
}

// Role returns the identity's role, or "" when signed out.
func (s State) Role() domain.Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}

// Session is the process-wide login state. All mutation goes through
// Init, Login, Logout and Invalidate.
type Session struct {
	store  Store
	auth   Authenticator
	logger *zap.Logger
	notify func(Event)
	now    func() time.Time

	mu       sync.RWMutex
	loading  bool
	identity *domain.Identity
	initOnce sync.Once
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNotify registers fn to receive session events. fn runs after the
// state change is visible and must not block.
func WithNotify(fn func(Event)) Option {
	return func(s *Session) { s.notify = fn }
}

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New returns a Session in the loading state. Call Init before making
// any authorization decision.
func New(store Store, auth Authenticator, opts ...Option) *Session {
	s := &Session{
		store:   store,
		auth:    auth,
		logger:  zap.NewNop(),
		now:     time.Now,
		loading: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads the identity from the store. Only the first call has an effect.
func (s *Session) Init() {
	s.initOnce.Do(func() {
		var id *domain.Identity
		if IsExpired(s.store, s.now()) {
			s.removeStored("init")
		} else if derived, ok := DeriveIdentity(s.store, s.logger); ok {
			id = &derived
		}

		s.mu.Lock()
		s.identity = id
		s.loading = false
		s.mu.Unlock()

		if id != nil {
			s.logger.Info("session restored", zap.String("username", id.Username), zap.String("role", id.Role.String()))
		}
	})
}

// Login authenticates creds and stores the returned credential.
// On any failure the prior session is left exactly as it was.
func (s *Session) Login(ctx context.Context, creds domain.Credentials) error {
	if err := creds.Validate(); err != nil {
		return fmt.Errorf("session.Login: %w", err)
	}
	if s.auth == nil {
		return errors.New("session.Login: no authenticator configured")
	}

	raw, err := s.auth.Authenticate(ctx, creds)
	if err != nil {
		s.logger.Info("login rejected", zap.String("username", creds.Username), zap.Error(err))
		return fmt.Errorf("session.Login: %w", err)
	}

	claims, err := parseClaims(raw)
	if err != nil {
		return fmt.Errorf("session.Login: %w", err)
	}
	id, err := identityFromClaims(claims)
	if err != nil {
		return fmt.Errorf("session.Login: %w", err)
	}
	if err := s.store.Set(raw); err != nil {
		return fmt.Errorf("session.Login: %w", err)
	}

	s.mu.Lock()
	s.identity = &id
	s.loading = false
	s.mu.Unlock()

	s.logger.Info("signed in", zap.String("username", id.Username), zap.String("role", id.Role.String()))
	s.emit(EventSignedIn)
	return nil
}

// Logout clears the stored credential and the identity. It never fails
// and calling it again is harmless.
func (s *Session) Logout() {
	s.removeStored("logout")
	s.clear()
	s.emit(EventSignedOut)
}

// Invalidate clears the identity after the backend rejected the credential.
// The transport has already removed it from the store; Remove runs again
// in case the caller is not the transport.
func (s *Session) Invalidate() {
	s.removeStored("invalidate")
	s.clear()
	s.logger.Info("session invalidated")
	s.emit(EventInvalidated)
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{Loading: s.loading}
	if s.identity != nil {
		id := *s.identity
		st.Identity = &id
	}
	return st
}

// Identity returns the current identity, if any.
func (s *Session) Identity() (domain.Identity, bool) {
	st := s.State()
	if st.Identity == nil {
		return domain.Identity{}, false
	}
	return *st.Identity, true
}

// IsAuthenticated returns true if an identity is present.
func (s *Session) IsAuthenticated() bool { return s.State().Authenticated() }

// IsAdmin returns true if the identity's role is exactly ADMIN.
func (s *Session) IsAdmin() bool { return s.State().Role() == domain.RoleAdmin }

// IsManager returns true if the identity's role is exactly MANAGER.
func (s *Session) IsManager() bool { return s.State().Role() == domain.RoleManager }

// IsMember returns true if the identity's role is exactly MEMBER.
func (s *Session) IsMember() bool { return s.State().Role() == domain.RoleMember }

func (s *Session) clear() {
	s.mu.Lock()
	s.identity = nil
	s.loading = false
	s.mu.Unlock()
}

func (s *Session) removeStored(reason string) {
	if err := s.store.Remove(); err != nil {
		s.logger.Error("remove credential", zap.String("reason", reason), zap.Error(err))
	}
}

func (s *Session) emit(e Event) {
	if s.notify != nil {
		s.notify(e)
	}
}
