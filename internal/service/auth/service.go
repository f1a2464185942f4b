package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
	"github.com/jwalitptl/quickmed-api/pkg/auth"
	apperrors "github.com/jwalitptl/quickmed-api/pkg/errors"
	"github.com/jwalitptl/quickmed-api/pkg/security"
)

const (
	msgTokenRequired = "Access token required"
	msgTokenInvalid  = "Invalid or expired token"
)

// Servicer is what the auth handlers and middleware depend on
type Servicer interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	Verify(token string) (*model.Identity, error)
	Refresh(ctx context.Context, id *model.Identity) (*model.TokenResponse, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
}

type Service struct {
	userRepo repository.UserRepository
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
}

func NewService(userRepo repository.UserRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" {
		return nil, apperrors.Validation(apperrors.FieldError{Field: "username", Message: "username is required"})
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return nil, apperrors.Validation(apperrors.FieldError{
				Field:   "password",
				Message: fmt.Sprintf("password must be at least %d characters", security.MinPasswordLen),
			})
		}
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, apperrors.Internal(err)
	}

	token, err := s.jwtSvc.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	log.Info().Int64("user_id", user.ID).Msg("user registered")
	return &model.AuthResponse{User: user, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Identifier()))
	if email == "" {
		return nil, apperrors.Validation(apperrors.FieldError{Field: "email", Message: "email is required"})
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtSvc.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	return &model.AuthResponse{User: user, Token: token}, nil
}

// Verify checks a bearer token. An empty token is reported as 401, any
// other failure as 403.
func (s *Service) Verify(token string) (*model.Identity, error) {
	if token == "" {
		return nil, apperrors.Unauthorized(msgTokenRequired, nil)
	}

	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, &apperrors.AppError{Code: apperrors.ErrForbidden, Message: msgTokenInvalid, Err: err}
	}

	return &model.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

func (s *Service) Refresh(ctx context.Context, id *model.Identity) (*model.TokenResponse, error) {
	token, err := s.jwtSvc.GenerateAccessToken(id.UserID, id.Email)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}
	return &model.TokenResponse{Token: token}, nil
}

func (s *Service) Profile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User", err)
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}
