package usecase

import (
	"context"
	"fmt"
	"time"

	"dorm-booking/internal/data/entity"
	"dorm-booking/internal/data/repository"
	"dorm-booking/internal/dto/request"
	"dorm-booking/internal/dto/response"
	"dorm-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, meta SessionMeta) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

// SessionMeta describes the client a session is issued to.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, &AdmissionError{Kind: ErrInvalidInput, Message: "Validation failed", Fields: errs}
	}

	if req.Password != req.Password2 {
		return nil, rejection(ErrInvalidInput, "password2", "Password Not The Same")
	}

	// 2. Email and username must be unused
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existingUser != nil {
		return nil, rejection(ErrAlreadyExists, "email", "Email Already Used")
	}

	existingUser, err = s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existingUser != nil {
		return nil, rejection(ErrAlreadyExists, "username", "Username Already Used")
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password: %w", err)
	}

	// 4. Save user
	now := s.now()
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.AuthResponse{User: response.UserToResponse(user)}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta SessionMeta) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, &AdmissionError{Kind: ErrInvalidInput, Message: "Validation failed", Fields: errs}
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user == nil || !user.IsActive || !utils.CheckPassword(user.PasswordHash, req.Password) {
		s.log.Warn("Login rejected", zap.String("username", req.Username))
		return nil, rejection(ErrInvalidCredentials, "", "Credentials Invalid")
	}

	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.AuthResponse{
		User:      response.UserToResponse(user),
		Token:     session.Token.String(),
		ExpiresAt: &session.ExpiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return ErrUnauthenticated
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID.String()); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, meta SessionMeta) (*entity.Session, error) {
	now := s.now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     uuid.New(),
		UserAgent: optional(meta.UserAgent),
		IPAddress: optional(meta.IPAddress),
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
