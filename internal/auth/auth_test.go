package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	mu   sync.Mutex
	byID map[string]UserRecord
}

func (m *memUsers) CreateUser(_ context.Context, u UserRecord) (UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return UserRecord{}, errDuplicate
		}
	}
	m.byID[u.ID] = u
	return u, nil
}

func (m *memUsers) UserByEmail(_ context.Context, email string) (UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return UserRecord{}, errNoUser
}

func (m *memUsers) UserByID(_ context.Context, id string) (UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return UserRecord{}, errNoUser
	}
	return u, nil
}

func newTestService() *Service {
	s := NewService(&memUsers{byID: map[string]UserRecord{}}, "test-secret", nil)
	s.cost = bcrypt.MinCost
	return s
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	reg, err := s.Register(ctx, "ada@example.com", "correct horse", "Ada")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reg.User.ID, "user_"))

	_, err = s.Register(ctx, "ada@example.com", "another one", "Ada 2")
	assert.ErrorIs(t, err, ErrEmailTaken)

	login, err := s.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, reg.User, login.User)

	_, err = s.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	sub, err := s.ValidateToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, sub)

	u, err := s.GetUser(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.DisplayName)
	_, err = s.GetUser(ctx, "user_missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestValidateTokenRejects(t *testing.T) {
	s := newTestService()
	res, err := s.Register(context.Background(), "bo@example.com", "password1", "Bo")
	require.NoError(t, err)

	other := NewService(s.users, "different-secret", nil)
	_, err = other.ValidateToken(res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	s.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	_, err = s.ValidateToken(res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	s := newTestService()
	res, err := s.Register(context.Background(), "cy@example.com", "password1", "Cy")
	require.NoError(t, err)

	var seen string
	h := s.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserIDFromContext(r.Context())
	}))

	cases := map[string]int{
		"":                    http.StatusUnauthorized,
		"Basic abc":           http.StatusUnauthorized,
		"Bearer garbage":      http.StatusUnauthorized,
		"Bearer " + res.Token: http.StatusOK,
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, "header %q", header)
	}
	assert.Equal(t, res.User.ID, seen)
}

func TestHandlers(t *testing.T) {
	s := newTestService()
	h := NewHandler(s)

	post := func(fn http.HandlerFunc, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		fn(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		return rec
	}

	assert.Equal(t, http.StatusBadRequest, post(h.Register, `{`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h.Register, `{"email":"a@b.c","password":"short","displayName":"A"}`).Code)

	rec := post(h.Register, `{"email":"a@b.c","password":"longenough","displayName":"A"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var res AuthResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Token)

	assert.Equal(t, http.StatusConflict, post(h.Register, `{"email":"a@b.c","password":"longenough","displayName":"A"}`).Code)
	assert.Equal(t, http.StatusOK, post(h.Login, `{"email":"a@b.c","password":"longenough"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, post(h.Login, `{"email":"a@b.c","password":"nope"}`).Code)

	me := httptest.NewRecorder()
	h.Me(me, httptest.NewRequest(http.MethodGet, "/api/me", nil).WithContext(WithUserID(context.Background(), res.User.ID)))
	assert.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"displayName":"A"`)
}
