package usecase

import (
	"context"
	"testing"
	"time"

	"dorm-booking/internal/dto/request"
	"dorm-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuth(s *store) *authService {
	config := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}}
	svc := NewAuthService(s.repository(), config, zap.NewNop()).(*authService)
	svc.now = fixedClock
	return svc
}

func register(username, email, password, password2 string) *request.RegisterRequest {
	return &request.RegisterRequest{
		Username:  username,
		Email:     email,
		Password:  password,
		Password2: password2,
	}
}

func TestRegister(t *testing.T) {
	s := newStore()
	svc := newAuth(s)

	resp, err := svc.Register(context.Background(), register("student", "student@uni.pl", "secret123", "secret123"))
	require.NoError(t, err)
	assert.Equal(t, "student", resp.User.Username)
	assert.Empty(t, resp.Token)

	require.Len(t, s.users, 1)
	assert.NotEqual(t, "secret123", s.users[0].PasswordHash)
	assert.True(t, utils.CheckPassword(s.users[0].PasswordHash, "secret123"))
}

func TestRegister_Rejections(t *testing.T) {
	s := newStore()
	svc := newAuth(s)
	_, err := svc.Register(context.Background(), register("student", "student@uni.pl", "secret123", "secret123"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     *request.RegisterRequest
		kind    error
		message string
	}{
		{"password mismatch", register("other", "other@uni.pl", "secret123", "secret124"), ErrInvalidInput, "Password Not The Same"},
		{"email taken", register("other", "student@uni.pl", "secret123", "secret123"), ErrAlreadyExists, "Email Already Used"},
		{"username taken", register("student", "other@uni.pl", "secret123", "secret123"), ErrAlreadyExists, "Username Already Used"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.kind)

			var rejected *AdmissionError
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, tt.message, rejected.Message)
		})
	}
	assert.Len(t, s.users, 1)
}

func TestRegister_ValidationFailed(t *testing.T) {
	_, err := newAuth(newStore()).Register(context.Background(), register("ab", "not-an-email", "123", "123"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	var rejected *AdmissionError
	require.ErrorAs(t, err, &rejected)
	assert.Contains(t, rejected.Fields, "username")
	assert.Contains(t, rejected.Fields, "email")
	assert.Contains(t, rejected.Fields, "password")
}

func TestLoginLogout(t *testing.T) {
	s := newStore()
	svc := newAuth(s)
	ctx := context.Background()

	_, err := svc.Register(ctx, register("student", "student@uni.pl", "secret123", "secret123"))
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &request.LoginRequest{Username: "student", Password: "secret123"}, SessionMeta{UserAgent: "go-test"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, fixedNow.Add(24*time.Hour), *resp.ExpiresAt)

	require.Len(t, s.sessions, 1)
	assert.Equal(t, "go-test", *s.sessions[0].UserAgent)
	assert.Nil(t, s.sessions[0].IPAddress)

	require.NoError(t, svc.Logout(ctx, resp.Token))
	assert.NotNil(t, s.sessions[0].RevokedAt)

	assert.Error(t, svc.Logout(ctx, resp.Token))
	assert.ErrorIs(t, svc.Logout(ctx, "not-a-token"), ErrUnauthenticated)
}

func TestLogin_CredentialsInvalid(t *testing.T) {
	s := newStore()
	svc := newAuth(s)
	ctx := context.Background()

	_, err := svc.Register(ctx, register("student", "student@uni.pl", "secret123", "secret123"))
	require.NoError(t, err)

	for _, req := range []*request.LoginRequest{
		{Username: "student", Password: "wrong"},
		{Username: "nobody", Password: "secret123"},
	} {
		_, err := svc.Login(ctx, req, SessionMeta{})
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		var rejected *AdmissionError
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, "Credentials Invalid", rejected.Message)
	}
	assert.Empty(t, s.sessions)
}

func TestLogin_InactiveUser(t *testing.T) {
	s := newStore()
	svc := newAuth(s)
	ctx := context.Background()

	_, err := svc.Register(ctx, register("student", "student@uni.pl", "secret123", "secret123"))
	require.NoError(t, err)
	s.users[0].IsActive = false

	_, err = svc.Login(ctx, &request.LoginRequest{Username: "student", Password: "secret123"}, SessionMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
