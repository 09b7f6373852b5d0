package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/employee-desk/v2/internal/auth"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type authMock struct {
	mock.Mock
}

func (m *authMock) Login(ctx context.Context, creds auth.Credentials) (*auth.User, string, error) {
	args := m.Called(ctx, creds)
	user, _ := args.Get(0).(*auth.User)
	return user, args.String(1), args.Error(2)
}

type memTokens struct {
	mu      sync.Mutex
	token   string
	saveErr error
}

func (m *memTokens) Token() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *memTokens) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

var creds = auth.Credentials{Email: "a@x.com", Password: "secret", Role: auth.RoleAdmin}

func TestReduce(t *testing.T) {
	user := &auth.User{Role: auth.RoleAdmin}

	s := Reduce(State{Error: "old"}, LoginPending{})
	assert.Equal(t, State{Loading: true}, s)

	s = Reduce(s, LoginFulfilled{User: user, Token: "abc"})
	assert.Equal(t, State{User: user, Token: "abc"}, s)
	assert.True(t, s.Authenticated())

	s = Reduce(Reduce(s, LoginPending{}), LoginRejected{Err: errors.New("mismatch")})
	assert.Equal(t, State{Error: "mismatch"}, s)
	assert.False(t, s.Authenticated())

	s = Reduce(State{Loading: true}, LoginFulfilled{User: user})
	assert.False(t, s.Authenticated())
	assert.NotEmpty(t, s.Error)

	s = Reduce(State{User: user, Token: "abc"}, LoggedOut{})
	assert.Equal(t, State{}, s)
}

func TestLogin_Success(t *testing.T) {
	store := NewStore()
	tokens := &memTokens{}
	svc := &authMock{}
	user := &auth.User{ID: "u1", Role: auth.RoleAdmin}
	svc.On("Login", mock.Anything, creds).Return(user, "abc", nil).Once()

	var seen []State
	unsubscribe := store.Subscribe(func(prev, next State) {
		seen = append(seen, next)
	})
	defer unsubscribe()

	require.False(t, store.State().Loading)
	require.NoError(t, Login(context.Background(), store, svc, tokens, creds))

	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.False(t, seen[1].Loading)
	assert.Equal(t, user, seen[1].User)
	assert.Equal(t, "abc", seen[1].Token)
	assert.Empty(t, seen[1].Error)

	tok, _ := tokens.Token()
	assert.Equal(t, "abc", tok)
	svc.AssertExpectations(t)
}

func TestLogin_Failure(t *testing.T) {
	store := NewStore()
	tokens := &memTokens{}
	svc := &authMock{}
	svc.On("Login", mock.Anything, creds).Return(nil, "", errors.New("Invalid credentials")).Once()

	err := Login(context.Background(), store, svc, tokens, creds)
	require.Error(t, err)

	st := store.State()
	assert.False(t, st.Loading)
	assert.Nil(t, st.User)
	assert.Empty(t, st.Token)
	assert.Equal(t, "Invalid credentials", st.Error)

	tok, _ := tokens.Token()
	assert.Empty(t, tok)
}

func TestLogin_MissingTokenIsARejection(t *testing.T) {
	store := NewStore()
	svc := &authMock{}
	svc.On("Login", mock.Anything, creds).Return(&auth.User{Role: auth.RoleAdmin}, "", nil).Once()

	require.Error(t, Login(context.Background(), store, svc, &memTokens{}, creds))
	assert.False(t, store.State().Authenticated())
	assert.NotEmpty(t, store.State().Error)
}

func TestLogin_TokenSaveFailureStillAuthenticates(t *testing.T) {
	store := NewStore()
	svc := &authMock{}
	svc.On("Login", mock.Anything, creds).Return(&auth.User{Role: auth.RoleEmployee}, "abc", nil).Once()

	require.NoError(t, Login(context.Background(), store, svc, &memTokens{saveErr: errors.New("read-only")}, creds))
	assert.True(t, store.State().Authenticated())
}

func TestStore_Unsubscribe(t *testing.T) {
	store := NewStore()
	calls := 0
	unsubscribe := store.Subscribe(func(prev, next State) { calls++ })

	store.Dispatch(LoginPending{})
	unsubscribe()
	unsubscribe()
	store.Dispatch(LoggedOut{})

	assert.Equal(t, 1, calls)
}

func TestLogout(t *testing.T) {
	store := NewStore()
	tokens := &memTokens{token: "abc"}
	store.Dispatch(SessionRestored{User: &auth.User{Role: auth.RoleAdmin}, Token: "abc"})

	require.NoError(t, Logout(store, tokens))
	assert.Equal(t, State{}, store.State())
	tok, _ := tokens.Token()
	assert.Empty(t, tok)
}

func TestRestore(t *testing.T) {
	now := time.Now()
	sign := func(claims jwt.MapClaims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
		require.NoError(t, err)
		return tok
	}

	t.Run("no token", func(t *testing.T) {
		ok, err := Restore(NewStore(), &memTokens{}, now)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("valid token", func(t *testing.T) {
		store := NewStore()
		token := sign(jwt.MapClaims{"id": "e1", "role": "employee", "exp": now.Add(time.Hour).Unix()})
		ok, err := Restore(store, &memTokens{token: token}, now)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, auth.RoleEmployee, store.State().User.Role)
		assert.Equal(t, token, store.State().Token)
	})

	t.Run("expired token is discarded", func(t *testing.T) {
		store := NewStore()
		tokens := &memTokens{token: sign(jwt.MapClaims{"role": "admin", "exp": now.Add(-time.Hour).Unix()})}
		ok, err := Restore(store, tokens, now)
		require.NoError(t, err)
		assert.False(t, ok)
		tok, _ := tokens.Token()
		assert.Empty(t, tok)
		assert.False(t, store.State().Authenticated())
	})
}
