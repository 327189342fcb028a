package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gloudstoun/telegram-bot-project/core/telegram/state"
	"github.com/gloudstoun/telegram-bot-project/registrybot/users"

	tele "gopkg.in/telebot.v4"
)

// stubContext implements the slice of tele.Context the handlers touch.
// The embedded interface covers the rest; unused methods would panic loudly.
type stubContext struct {
	tele.Context
	user  *tele.User
	chat  *tele.Chat
	text  string
	store map[string]interface{}
	sent  []string
}

func newStubContext(userID int64) *stubContext {
	return &stubContext{
		user:  &tele.User{ID: userID, FirstName: "Alice"},
		chat:  &tele.Chat{ID: userID, Type: tele.ChatPrivate},
		store: make(map[string]interface{}),
	}
}

func (s *stubContext) Update() tele.Update { return tele.Update{ID: 1} }

func (s *stubContext) Sender() *tele.User { return s.user }

func (s *stubContext) Chat() *tele.Chat { return s.chat }

func (s *stubContext) Callback() *tele.Callback { return nil }

func (s *stubContext) Text() string { return s.text }

func (s *stubContext) Get(key string) interface{} { return s.store[key] }

func (s *stubContext) Set(key string, val interface{}) { s.store[key] = val }

func (s *stubContext) Send(what interface{}, _ ...interface{}) error {
	if text, ok := what.(string); ok {
		s.sent = append(s.sent, text)
	}
	return nil
}

func (s *stubContext) Respond(_ ...*tele.CallbackResponse) error { return nil }

func (s *stubContext) lastSent() string {
	if len(s.sent) == 0 {
		return ""
	}
	return s.sent[len(s.sent)-1]
}

type memStore struct {
	rows   []users.User
	nextID int64
}

func (m *memStore) Add(_ context.Context, name, passHash string) error {
	for _, u := range m.rows {
		if u.Name == name {
			return users.ErrNameTaken
		}
	}
	m.nextID++
	m.rows = append(m.rows, users.User{ID: m.nextID, Name: name, PassHash: passHash})
	return nil
}

func (m *memStore) NameTaken(_ context.Context, name string) (bool, error) {
	for _, u := range m.rows {
		if u.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) List(_ context.Context) ([]users.User, error) {
	return m.rows, nil
}

func newFlow(t *testing.T) (*Handlers, state.Manager, *memStore) {
	t.Helper()
	store := &memStore{}
	h := New(users.NewService(store), state.NewMemoryManager(), ContentOptions{})
	h.RegisterFSMHandlers()
	return h, h.fsm, store
}

func TestRegistrationHappyPath(t *testing.T) {
	h, fsm, store := newFlow(t)
	const userID int64 = 100

	c := newStubContext(userID)
	require.NoError(t, h.Registration(c))
	assert.Equal(t, StateAwaitingName, fsm.GetState(userID))
	assert.Contains(t, c.lastSent(), "Enter your name")

	c.text = "alice"
	require.NoError(t, fsm.ManagerHandler(c))
	assert.Equal(t, StateAwaitingPassword, fsm.GetState(userID))
	assert.Contains(t, c.lastSent(), "enter a password")

	c.text = "abcd1234"
	require.NoError(t, fsm.ManagerHandler(c))
	assert.Equal(t, state.StateIdle, fsm.GetState(userID))
	assert.Contains(t, c.lastSent(), "registered successfully")

	require.Len(t, store.rows, 1)
	assert.Equal(t, "alice", store.rows[0].Name)
	assert.Equal(t, users.Digest("abcd1234"), store.rows[0].PassHash)
}

func TestRegistrationInvalidNameReprompts(t *testing.T) {
	h, fsm, store := newFlow(t)
	const userID int64 = 101

	c := newStubContext(userID)
	require.NoError(t, h.Registration(c))

	for _, bad := range []string{"", "alice42", "a b"} {
		c.text = bad
		require.NoError(t, fsm.ManagerHandler(c))
		assert.Equal(t, StateAwaitingName, fsm.GetState(userID), "name %q", bad)
		assert.Contains(t, c.lastSent(), "letters only")
	}
	assert.Empty(t, store.rows)
}

func TestRegistrationTakenNameReprompts(t *testing.T) {
	h, fsm, store := newFlow(t)
	store.rows = []users.User{{ID: 1, Name: "alice", PassHash: users.Digest("abcd1234")}}
	store.nextID = 1
	const userID int64 = 102

	c := newStubContext(userID)
	require.NoError(t, h.Registration(c))

	c.text = "alice"
	require.NoError(t, fsm.ManagerHandler(c))
	assert.Equal(t, StateAwaitingName, fsm.GetState(userID))
	assert.Contains(t, c.lastSent(), "already taken")
}

func TestRegistrationWeakPasswordReprompts(t *testing.T) {
	h, fsm, _ := newFlow(t)
	const userID int64 = 103

	c := newStubContext(userID)
	require.NoError(t, h.Registration(c))
	c.text = "bob"
	require.NoError(t, fsm.ManagerHandler(c))

	for _, weak := range []string{"abc", "abcdefgh", "12345678"} {
		c.text = weak
		require.NoError(t, fsm.ManagerHandler(c))
		assert.Equal(t, StateAwaitingPassword, fsm.GetState(userID), "password %q", weak)
		assert.Contains(t, c.lastSent(), "at least 8 characters")
	}
}

func TestRegistrationConflictRace(t *testing.T) {
	h, fsm, store := newFlow(t)
	const userID int64 = 104

	c := newStubContext(userID)
	require.NoError(t, h.Registration(c))
	c.text = "carol"
	require.NoError(t, fsm.ManagerHandler(c))

	// Another session claims the name between the two steps.
	require.NoError(t, store.Add(context.Background(), "carol", users.Digest("zzzz9999")))

	c.text = "abcd1234"
	require.NoError(t, fsm.ManagerHandler(c))
	assert.Equal(t, state.StateIdle, fsm.GetState(userID))
	assert.Contains(t, c.lastSent(), "already taken")
	assert.Len(t, store.rows, 1)
}

func TestRegistrationCancel(t *testing.T) {
	h, fsm, _ := newFlow(t)
	const userID int64 = 105

	c := newStubContext(userID)
	require.NoError(t, h.Registration(c))
	require.True(t, fsm.InProgress(userID))

	require.NoError(t, h.Cancel(c))
	assert.False(t, fsm.InProgress(userID))
	assert.Contains(t, c.lastSent(), "cancelled")

	// Cancelling again is a no-op with its own message.
	require.NoError(t, h.Cancel(c))
	assert.Contains(t, c.lastSent(), "Nothing to cancel")
}

func TestListUsers(t *testing.T) {
	h, _, store := newFlow(t)
	const userID int64 = 106

	c := newStubContext(userID)
	require.NoError(t, h.List(c))
	assert.Contains(t, c.lastSent(), "No users")

	require.NoError(t, store.Add(context.Background(), "alice", users.Digest("abcd1234")))
	require.NoError(t, store.Add(context.Background(), "bob", users.Digest("abcd1234")))

	require.NoError(t, h.List(c))
	out := c.lastSent()
	assert.Contains(t, out, "ID: 1, Name: alice")
	assert.Contains(t, out, "ID: 2, Name: bob")
	assert.Less(t, strings.Index(out, "alice"), strings.Index(out, "bob"))
}

func TestStartGreeting(t *testing.T) {
	h, fsm, _ := newFlow(t)
	const userID int64 = 107

	c := newStubContext(userID)
	require.NoError(t, h.Start(c))
	assert.Contains(t, c.lastSent(), "SimpleRegistryBot")
	assert.Contains(t, c.lastSent(), "Alice")
	assert.False(t, fsm.InProgress(userID))
}
