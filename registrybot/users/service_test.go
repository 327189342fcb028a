package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	rows    []User
	nextID  int64
	addErr  error
	listErr error
}

func (f *fakeStore) Add(_ context.Context, name, passHash string) error {
	if f.addErr != nil {
		return f.addErr
	}
	for _, u := range f.rows {
		if u.Name == name {
			return ErrNameTaken
		}
	}
	f.nextID++
	f.rows = append(f.rows, User{ID: f.nextID, Name: name, PassHash: passHash})
	return nil
}

func (f *fakeStore) NameTaken(_ context.Context, name string) (bool, error) {
	for _, u := range f.rows {
		if u.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) List(_ context.Context) ([]User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"abc", false},      // too short
		{"abcdefgh", false}, // no digit
		{"12345678", false}, // no letter
		{"abcd1234", true},
		{"пароль12", true}, // unicode letters count
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidPassword(tt.password), "password %q", tt.password)
	}
}

func TestValidName(t *testing.T) {
	assert.False(t, ValidName(""))
	assert.False(t, ValidName("alice42"))
	assert.False(t, ValidName("a b"))
	assert.True(t, ValidName("alice"))
	assert.True(t, ValidName("Алиса"))
}

func TestDigestDeterministic(t *testing.T) {
	first := Digest("abcd1234")
	second := Digest("abcd1234")
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, Digest("abcd1235"))
}

func TestDigestKnownVector(t *testing.T) {
	// sha256("password") in lowercase hex.
	assert.Equal(t,
		"5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
		Digest("password"),
	)
}

func TestRegisterThenNameTaken(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "abcd1234"))

	available, err := svc.NameAvailable(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, available)

	err = svc.Register(ctx, "alice", "abcd1234")
	assert.ErrorIs(t, err, ErrNameTaken)
	assert.Len(t, store.rows, 1)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(&fakeStore{})
	ctx := context.Background()

	assert.ErrorIs(t, svc.Register(ctx, "", "abcd1234"), ErrInvalidName)
	assert.ErrorIs(t, svc.Register(ctx, "alice42", "abcd1234"), ErrInvalidName)
	assert.ErrorIs(t, svc.Register(ctx, "alice", "abc"), ErrWeakPassword)
}

func TestRegisterStoreError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService(&fakeStore{addErr: boom})

	err := svc.Register(context.Background(), "alice", "abcd1234")
	assert.ErrorIs(t, err, boom)
}

func TestRegisterNeverStoresRawPassword(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	require.NoError(t, svc.Register(context.Background(), "bob", "abcd1234"))
	require.Len(t, store.rows, 1)
	assert.Equal(t, Digest("abcd1234"), store.rows[0].PassHash)
	assert.NotEqual(t, "abcd1234", store.rows[0].PassHash)
}

func TestUsersInsertionOrder(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		require.NoError(t, svc.Register(ctx, name, "abcd1234"))
	}

	list, err := svc.Users(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, want := range []string{"alice", "bob", "carol"} {
		assert.Equal(t, int64(i+1), list[i].ID)
		assert.Equal(t, want, list[i].Name)
	}
}
