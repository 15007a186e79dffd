package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"meterdesk/backend/services/auth-service/internal/models"
	"meterdesk/backend/services/auth-service/internal/password"
	"meterdesk/backend/services/auth-service/internal/repository"
)

var (
	// ErrMissingCredentials is returned when email or password is empty.
	ErrMissingCredentials = errors.New("auth: email and password are required")
	// ErrInvalidEmail is returned when the email has no @.
	ErrInvalidEmail = errors.New("auth: invalid email")
	// ErrPasswordTooShort is returned for passwords under six characters.
	ErrPasswordTooShort = errors.New("auth: password too short")
	// ErrInvalidCredentials represents login failure.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

// UserRepository defines storage contract used by the service.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// LoginInput is the login form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,contains=@"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResult carries the issued session token.
type LoginResult struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"-"`
}

// AuthService contains login and session checks.
type AuthService struct {
	repo      UserRepository
	hasher    password.Hasher
	tokenizer *TokenService
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(repo UserRepository, hasher password.Hasher, tokenizer *TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokenizer: tokenizer,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Login checks the form in the console's order (presence, email shape, password length),
// then the stored credential, and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := s.checkInput(in); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Info("login rejected", zap.String("reason", "unknown email"))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			return nil, fmt.Errorf("auth: compare password: %w", err)
		}
		s.logger.Info("login rejected", zap.Int64("user_id", user.ID), zap.String("reason", "password mismatch"))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenizer.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	return &LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// Session resolves a bearer token into its claims.
func (s *AuthService) Session(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}
	return s.tokenizer.ValidateToken(token)
}

func (s *AuthService) checkInput(in LoginInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	failed := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		failed[fe.Tag()] = true
	}
	switch {
	case failed["required"]:
		return ErrMissingCredentials
	case failed["contains"]:
		return ErrInvalidEmail
	default:
		return ErrPasswordTooShort
	}
}
