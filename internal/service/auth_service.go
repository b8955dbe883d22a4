package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-floor-inventory/internal/model"
	"go-floor-inventory/internal/repository"
	"go-floor-inventory/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionReplaced    = errors.New("session expired (logged in on another device)")
)

// MinPasswordLength for new passwords
const MinPasswordLength = 6

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error
	ValidateToken(ctx context.Context, tokenString string) (*model.Actor, error)
}

type LoginResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Privileges []string           `json:"privileges"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	logger   *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, logger *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuth, ErrInvalidCredentials)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: %w", ErrAuth, ErrUserInactive)
	}

	if !user.CheckPassword(password) {
		return nil, fmt.Errorf("%w: %w", ErrAuth, ErrInvalidCredentials)
	}

	// Single session: a new login invalidates tokens issued before it
	newTokenVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(ctx, user.ID, newTokenVersion); err != nil {
		return nil, errors.New("failed to update session")
	}
	user.TokenVersion = newTokenVersion

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.DisplayName, user.Role, user.Privileges(), newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))

	return &LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Privileges: user.Privileges(),
	}, nil
}

func (s *authService) ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return fmt.Errorf("%w: new password must be at least %d characters", ErrValidation, MinPasswordLength)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, email)
		}
		return err
	}

	if !user.CheckPassword(oldPassword) {
		return fmt.Errorf("%w: %w", ErrAuth, ErrWrongPassword)
	}

	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	// Existing sessions end with the old password
	user.TokenVersion = uuid.New().String()

	return s.userRepo.Update(ctx, user)
}

// ValidateToken checks the signature, then the user row, so a disabled
// account or a newer login revokes the token immediately.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*model.Actor, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuth, err)
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", ErrAuth)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: %w", ErrAuth, ErrUserInactive)
	}

	if user.TokenVersion != claims.TokenVersion {
		return nil, fmt.Errorf("%w: %w", ErrAuth, ErrSessionReplaced)
	}

	return &model.Actor{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		Privileges:  user.Privileges(),
	}, nil
}
