package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dorm-booking/internal/data/entity"
	"dorm-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubSessions struct {
	sessions map[string]*entity.Session
	err      error
}

func (s *stubSessions) Create(context.Context, *entity.Session) error { return nil }
func (s *stubSessions) Revoke(context.Context, string) error          { return nil }

func (s *stubSessions) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sessions[token], nil
}

type stubUsers struct {
	users map[uuid.UUID]*entity.User
}

func (s *stubUsers) Create(context.Context, *entity.User) error { return nil }
func (s *stubUsers) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUsers) FindByUsername(context.Context, string) (*entity.User, error) {
	return nil, nil
}

func (s *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}

type fixture struct {
	sessions *stubSessions
	users    *stubUsers
}

func newFixture() *fixture {
	return &fixture{
		sessions: &stubSessions{sessions: map[string]*entity.Session{}},
		users:    &stubUsers{users: map[uuid.UUID]*entity.User{}},
	}
}

func (f *fixture) login(role entity.UserRole, active bool) string {
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Username:     "u-" + string(role),
		Role:         role,
		IsActive:     active,
	}
	f.users.users[user.ID] = user

	token := uuid.New()
	f.sessions.sessions[token.String()] = &entity.Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return token.String()
}

func (f *fixture) handler(admin bool) http.Handler {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := utils.GetUserIDFromContext(r.Context())
		token, _ := utils.GetTokenFromContext(r.Context())
		w.Header().Set("X-User", userID.String())
		w.Header().Set("X-Token", token)
		w.WriteHeader(http.StatusNoContent)
	})

	var h http.Handler = final
	if admin {
		h = Admin(zap.NewNop())(h)
	}
	return AuthSession(f.sessions, f.users, zap.NewNop())(h)
}

func serve(h http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/user/reservations", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthSession(t *testing.T) {
	f := newFixture()
	valid := f.login(entity.RoleCustomer, true)
	inactive := f.login(entity.RoleCustomer, false)

	tests := []struct {
		name          string
		authorization string
		status        int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"malformed token", "Bearer not-a-uuid", http.StatusUnauthorized},
		{"unknown session", "Bearer " + uuid.NewString(), http.StatusUnauthorized},
		{"inactive user", "Bearer " + inactive, http.StatusUnauthorized},
		{"valid session", "Bearer " + valid, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(f.handler(false), tt.authorization)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAuthSession_SetsContext(t *testing.T) {
	f := newFixture()
	token := f.login(entity.RoleCustomer, true)

	rec := serve(f.handler(false), "Bearer "+token)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, f.sessions.sessions[token].UserID.String(), rec.Header().Get("X-User"))
	assert.Equal(t, token, rec.Header().Get("X-Token"))
}

func TestAuthSession_StoreError(t *testing.T) {
	f := newFixture()
	token := f.login(entity.RoleCustomer, true)
	f.sessions.err = errors.New("connection reset")

	rec := serve(f.handler(false), "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAdmin(t *testing.T) {
	f := newFixture()
	customer := f.login(entity.RoleCustomer, true)
	admin := f.login(entity.RoleAdmin, true)

	assert.Equal(t, http.StatusForbidden, serve(f.handler(true), "Bearer "+customer).Code)
	assert.Equal(t, http.StatusNoContent, serve(f.handler(true), "Bearer "+admin).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(f.handler(true), "").Code)
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
