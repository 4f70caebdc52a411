// ABOUTME: Tests for the session store
// ABOUTME: Verifies the token/user pairing invariant across init, establish and logout

package session

import (
	"errors"
	"testing"

	"github.com/campusmarket/market-cli/internal/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aliceJSON = `{"user_id":"u1","email":"alice@school.edu","name":"Alice","role":"seller","phonenumber":null,"merch":"books","updated_at":"2024-01-02T00:00:00Z"}`

// assertPaired checks that token and user are both present or both absent
func assertPaired(t *testing.T, s Session) {
	t.Helper()
	assert.Equal(t, s.Token != "", s.User != nil, "token and user must be set together: %+v", s)
}

func TestStore_LoadingUntilInit(t *testing.T) {
	store := NewStore(NewMemoryStorage(), "https://api.example.com/auth/google")

	assert.True(t, store.Loading())
	assert.True(t, store.Current().Loading)
	assert.False(t, store.Current().Authenticated())

	store.Init()
	assert.False(t, store.Loading())
	assert.False(t, store.Current().Loading)
}

func TestStore_InitFromStorage(t *testing.T) {
	tests := []struct {
		name          string
		values        map[string]string
		authenticated bool
	}{
		{"both present", map[string]string{TokenKey: "tok", UserKey: aliceJSON}, true},
		{"token only", map[string]string{TokenKey: "tok"}, false},
		{"user only", map[string]string{UserKey: aliceJSON}, false},
		{"invalid user json", map[string]string{TokenKey: "tok", UserKey: "{not json"}, false},
		{"user not an object", map[string]string{TokenKey: "tok", UserKey: `"alice"`}, false},
		{"empty token", map[string]string{TokenKey: "", UserKey: aliceJSON}, false},
		{"nothing stored", map[string]string{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			for k, v := range tc.values {
				require.NoError(t, storage.Set(k, v))
			}

			store := NewStore(storage, "")
			store.Init()
			current := store.Current()

			assertPaired(t, current)
			assert.Equal(t, tc.authenticated, current.Authenticated())
			if tc.authenticated {
				assert.Equal(t, "tok", store.Token())
				assert.Equal(t, "Alice", current.User.Name)
			}
		})
	}
}

func TestStore_InitRunsOnce(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage, "")
	store.Init()

	require.NoError(t, storage.Set(TokenKey, "tok"))
	require.NoError(t, storage.Set(UserKey, aliceJSON))

	store.Init()
	assert.False(t, store.Current().Authenticated())

	store.Reload()
	assert.True(t, store.Current().Authenticated())
}

func TestStore_LoginNavigatesExternally(t *testing.T) {
	store := NewStore(NewMemoryStorage(), "https://api.example.com/auth/google")
	action := store.Login()

	assert.Equal(t, nav.External, action.Kind)
	assert.Equal(t, "https://api.example.com/auth/google", action.Target)
	assert.False(t, store.Current().Authenticated(), "login must not populate the session")
}

func TestStore_EstablishPersistsVerbatim(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage, "")
	store.Init()

	require.NoError(t, store.Establish("tok", aliceJSON))
	assertPaired(t, store.Current())
	assert.Equal(t, "tok", store.Token())

	raw, ok, err := storage.Get(UserKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, aliceJSON, raw)
	assert.Equal(t, aliceJSON, store.RawUser())
}

func TestStore_EstablishRejectsBadInput(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage, "")
	store.Init()

	assert.Error(t, store.Establish("", aliceJSON))
	assert.Error(t, store.Establish("tok", "not json"))

	assert.False(t, store.Current().Authenticated())
	_, ok, _ := storage.Get(TokenKey)
	assert.False(t, ok)
}

// failingStorage fails any write that touches failKey
type failingStorage struct {
	*MemoryStorage
	failKey string
}

func (f *failingStorage) Set(key, value string) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.MemoryStorage.Set(key, value)
}

func (f *failingStorage) SetAll(values map[string]string) error {
	if _, ok := values[f.failKey]; ok {
		return errors.New("disk full")
	}
	return f.MemoryStorage.SetAll(values)
}

func TestStore_EstablishRollsBackPartialWrite(t *testing.T) {
	storage := &failingStorage{MemoryStorage: NewMemoryStorage(), failKey: UserKey}
	store := NewStore(storage, "")
	store.Init()

	err := store.Establish("tok", aliceJSON)
	require.Error(t, err)

	_, ok, _ := storage.Get(TokenKey)
	assert.False(t, ok, "token must not be left without a user")
	assert.False(t, store.Current().Authenticated())
}

func TestStore_EstablishFailureKeepsExistingSession(t *testing.T) {
	storage := &failingStorage{MemoryStorage: NewMemoryStorage()}
	store := NewStore(storage, "")
	store.Init()
	require.NoError(t, store.Establish("old", `{"user_id":"u0","name":"Old"}`))

	storage.failKey = UserKey
	err := store.Establish("new", aliceJSON)
	require.Error(t, err)

	token, ok, _ := storage.Get(TokenKey)
	assert.True(t, ok)
	assert.Equal(t, "old", token)
	rawUser, ok, _ := storage.Get(UserKey)
	assert.True(t, ok)
	assert.JSONEq(t, `{"user_id":"u0","name":"Old"}`, rawUser)

	assert.Equal(t, "old", store.Token())
	assert.Equal(t, "u0", store.Current().User.UserID)

	fresh := NewStore(storage, "")
	fresh.Init()
	require.True(t, fresh.Current().Authenticated())
	assert.Equal(t, "old", fresh.Token())
}

func TestStore_LogoutThenInitIsEmpty(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage, "")
	store.Init()
	require.NoError(t, store.Establish("tok", aliceJSON))

	action, err := store.Logout()
	require.NoError(t, err)
	assert.Equal(t, nav.ReloadTo(nav.Root), action)
	assertPaired(t, store.Current())
	assert.False(t, store.Current().Authenticated())

	fresh := NewStore(storage, "")
	fresh.Init()
	assert.False(t, fresh.Current().Authenticated())

	// Logging out twice is harmless
	_, err = store.Logout()
	require.NoError(t, err)
}

func TestStore_UpdateUserKeepsToken(t *testing.T) {
	store := NewStore(NewMemoryStorage(), "")
	store.Init()

	assert.ErrorIs(t, store.UpdateUser(aliceJSON), ErrNotLoggedIn)

	require.NoError(t, store.Establish("tok", aliceJSON))
	updated := `{"user_id":"u1","name":"Alice B","role":"seller","phonenumber":"555","merch":"books"}`
	require.NoError(t, store.UpdateUser(updated))

	assert.Equal(t, "tok", store.Token())
	assert.Equal(t, "Alice B", store.Current().User.Name)
	assert.Equal(t, updated, store.RawUser())
}

func TestStore_UnexpectedUserShapeStillParses(t *testing.T) {
	store := NewStore(NewMemoryStorage(), "")
	store.Init()

	require.NoError(t, store.Establish("tok", `{"user_id":42,"name":"Numeric"}`))
	current := store.Current()
	assert.True(t, current.Authenticated())
	assert.Equal(t, "Numeric", current.User.Name)
}

func TestStore_CurrentReturnsCopy(t *testing.T) {
	store := NewStore(NewMemoryStorage(), "")
	store.Init()
	require.NoError(t, store.Establish("tok", aliceJSON))

	snapshot := store.Current()
	snapshot.User.Name = "Mallory"
	assert.Equal(t, "Alice", store.Current().User.Name)
}
