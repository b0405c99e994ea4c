package service

import (
	"context"
	goerrors "errors"
	"strings"

	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/auth"
	"github.com/inkhouse/storefront/internal/domain"
	"github.com/inkhouse/storefront/internal/repository"
	"github.com/inkhouse/storefront/pkg/errors"
)

const minPasswordLength = 6

var errBadCredentials = &errors.ErrUnauthorized{Message: "invalid email or password"}

type userService struct {
	repos  *repository.Repositories
	tokens *auth.Tokens
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(repos *repository.Repositories, tokens *auth.Tokens, logger *zap.Logger) *userService {
	return &userService{
		repos:  repos,
		tokens: tokens,
		logger: logger,
	}
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repos.User.List(ctx)
}

// Register creates an account without signing it in
func (s *userService) Register(ctx context.Context, req SignUpRequest) (*domain.User, error) {
	email := strings.TrimSpace(req.Email)
	if !strings.Contains(email, "@") {
		return nil, &errors.ErrValidation{Field: "email", Message: "Valid email is required"}
	}
	if len(req.Password) < minPasswordLength {
		return nil, &errors.ErrValidation{Field: "password", Message: "Password must be at least 6 characters"}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	user := &domain.User{
		Email:        email,
		FullName:     name,
		PasswordHash: hash,
	}
	if err := s.repos.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// SignUp registers an account and issues a token for it
func (s *userService) SignUp(ctx context.Context, req SignUpRequest) (*AuthResult, error) {
	user, err := s.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// SignIn checks credentials and issues a token
func (s *userService) SignIn(ctx context.Context, req SignInRequest) (*AuthResult, error) {
	user, err := s.repos.User.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		var notFound *errors.ErrNotFound
		if goerrors.As(err, &notFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Info("Sign-in rejected", zap.Int64("user_id", user.ID))
		return nil, errBadCredentials
	}
	return s.issue(user)
}

func (s *userService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repos.User.GetByID(ctx, userID)
}

// UpdateProfile merges non-empty fields into the stored account
func (s *userService) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*domain.User, error) {
	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email := strings.TrimSpace(update.Email); email != "" {
		if !strings.Contains(email, "@") {
			return nil, &errors.ErrValidation{Field: "email", Message: "Valid email is required"}
		}
		user.Email = email
	}
	if name := strings.TrimSpace(update.Name); name != "" {
		user.FullName = name
	}

	if err := s.repos.User.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}
