package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/foodcourt/pkg/domain"
)

type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) record(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) all() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event(nil), l.events...)
}

func TestNewStartsLoading(t *testing.T) {
	s := New(NewMemoryStore(), nil)
	st := s.State()
	assert.True(t, st.Loading)
	assert.False(t, st.Authenticated())
	assert.Equal(t, DecisionWait, Check(st, ""))
}

func TestInitRestoresValidSession(t *testing.T) {
	store := storeWith(t, mint(t, "mia", "ROLE_MANAGER", domain.CountryAmerica, time.Now().Add(time.Hour)))
	s := New(store, nil)
	s.Init()

	st := s.State()
	require.False(t, st.Loading)
	require.True(t, st.Authenticated())
	assert.Equal(t, "mia", st.Identity.Username)
	assert.True(t, s.IsManager())
	assert.False(t, s.IsAdmin())
	assert.False(t, s.IsMember())
}

func TestInitClearsExpiredSession(t *testing.T) {
	store := storeWith(t, mint(t, "mia", "ROLE_ADMIN", 0, time.Now().Add(-time.Hour)))
	s := New(store, nil)
	s.Init()

	assert.False(t, s.State().Loading)
	assert.False(t, s.IsAuthenticated())
	_, ok := store.Get()
	assert.False(t, ok, "expired credential must be cleared")
}

func TestInitClearsGarbage(t *testing.T) {
	store := storeWith(t, "garbage")
	s := New(store, nil)
	s.Init()

	assert.False(t, s.IsAuthenticated())
	_, ok := store.Get()
	assert.False(t, ok)
}

func TestInitRunsOnce(t *testing.T) {
	store := NewMemoryStore()
	s := New(store, nil)
	s.Init()

	require.NoError(t, store.Set(mint(t, "late", "ROLE_ADMIN", 0, time.Now().Add(time.Hour))))
	s.Init()
	assert.False(t, s.IsAuthenticated(), "second Init is a no-op")
}

func TestLoginSuccess(t *testing.T) {
	raw := mint(t, "alice", "ROLE_ADMIN", domain.CountryIndia, time.Now().Add(time.Hour))
	store := NewMemoryStore()
	var log eventLog
	s := New(store, &fakeAuth{password: "right", token: raw}, WithNotify(log.record))
	s.Init()

	require.NoError(t, s.Login(context.Background(), domain.Credentials{Username: "alice", Password: "right"}))

	assert.True(t, s.IsAdmin())
	id, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, domain.CountryIndia, id.CountryID)

	stored, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, raw, stored)
	assert.Equal(t, []Event{EventSignedIn}, log.all())
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	t.Run("signed out stays signed out", func(t *testing.T) {
		store := NewMemoryStore()
		s := New(store, &fakeAuth{password: "right"})
		s.Init()
		before := s.State()

		err := s.Login(context.Background(), domain.Credentials{Username: "alice", Password: "bad"})
		require.Error(t, err)
		assert.ErrorIs(t, err, errBadCredentials)
		assert.Equal(t, before, s.State())
		_, ok := store.Get()
		assert.False(t, ok)
	})

	t.Run("signed in stays signed in", func(t *testing.T) {
		raw := mint(t, "bob", "ROLE_MEMBER", 0, time.Now().Add(time.Hour))
		store := storeWith(t, raw)
		var log eventLog
		s := New(store, &fakeAuth{password: "right"}, WithNotify(log.record))
		s.Init()
		before := s.State()

		err := s.Login(context.Background(), domain.Credentials{Username: "alice", Password: "bad"})
		require.Error(t, err)
		assert.Equal(t, before, s.State())
		stored, ok := store.Get()
		require.True(t, ok)
		assert.Equal(t, raw, stored)
		assert.Empty(t, log.all())
	})
}

func TestLoginRejectsIncompleteCredentials(t *testing.T) {
	auth := &fakeAuth{password: "right"}
	s := New(NewMemoryStore(), auth)
	s.Init()

	err := s.Login(context.Background(), domain.Credentials{Username: "alice"})
	require.Error(t, err)
	assert.Zero(t, auth.calls, "backend must not be called")
}

func TestLoginRejectsUndecodableResponse(t *testing.T) {
	store := NewMemoryStore()
	s := New(store, &fakeAuth{password: "right", token: "junk"})
	s.Init()

	err := s.Login(context.Background(), domain.Credentials{Username: "alice", Password: "right"})
	assert.ErrorIs(t, err, ErrUndecodableCredential)
	assert.False(t, s.IsAuthenticated())
	_, ok := store.Get()
	assert.False(t, ok, "undecodable credential is never stored")
}

func TestLogoutIdempotent(t *testing.T) {
	store := storeWith(t, mint(t, "alice", "ROLE_MEMBER", 0, time.Now().Add(time.Hour)))
	var log eventLog
	s := New(store, nil, WithNotify(log.record))
	s.Init()
	require.True(t, s.IsAuthenticated())

	s.Logout()
	once := s.State()
	_, storedOnce := store.Get()

	s.Logout()
	twice := s.State()
	_, storedTwice := store.Get()

	assert.Equal(t, once, twice)
	assert.False(t, twice.Authenticated())
	assert.False(t, storedOnce)
	assert.False(t, storedTwice)
	assert.Equal(t, DecisionRedirectLogin, Check(twice, ""))
	assert.Equal(t, []Event{EventSignedOut, EventSignedOut}, log.all())
}

func TestInvalidate(t *testing.T) {
	store := storeWith(t, mint(t, "alice", "ROLE_ADMIN", 0, time.Now().Add(time.Hour)))
	var log eventLog
	s := New(store, nil, WithNotify(log.record))
	s.Init()

	s.Invalidate()

	assert.False(t, s.IsAuthenticated())
	_, ok := store.Get()
	assert.False(t, ok)
	assert.Equal(t, []Event{EventInvalidated}, log.all())
}

func TestStateIsSnapshot(t *testing.T) {
	store := storeWith(t, mint(t, "alice", "ROLE_MEMBER", 0, time.Now().Add(time.Hour)))
	s := New(store, nil)
	s.Init()

	st := s.State()
	st.Identity.Role = domain.RoleAdmin
	assert.True(t, s.IsMember(), "mutating a snapshot must not change the session")
}
