package user

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"hr-assistant-api/internal/utils/platformerrors"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string
	Username string
	Password string
}

// Session is the result of a successful login.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Service registers, authenticates and resolves users.
type Service struct {
	repo   Repository
	hasher PasswordHasher
	tokens TokenIssuer
	clock  func() time.Time
	log    zerolog.Logger
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository, hasher PasswordHasher, tokens TokenIssuer, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		clock:  time.Now,
		log:    log.With().Str("component", "user-service").Logger(),
	}
}

// Register creates a new account with a hashed password.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Username = strings.TrimSpace(input.Username)
	if input.Name == "" || input.Username == "" || len(input.Password) < MinPasswordLength {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "one of the parameters provided is incorrect", nil, "1e3a5c7e-9b0d-4f2a-8c4e-6a8c0e2b4d6f")
	}

	existing, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil && !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "lookup username")
	}
	if existing != nil {
		return nil, usernameInUse(ctx)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "hash password", err, "5b7d9f1a-3c5e-4a7c-9e1b-3d5f7a9c1e3b")
	}

	user := User{
		Name:      input.Name,
		Username:  input.Username,
		Password:  hash,
		CreatedAt: s.clock().UTC().Truncate(time.Millisecond),
	}
	id, err := s.repo.Insert(ctx, user)
	if err != nil {
		// The unique index catches a registration racing this one.
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
			return nil, usernameInUse(ctx)
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "store user")
	}
	user.ID = id

	s.log.Info().Str("user_id", id).Str("username", user.Username).Msg("user registered")
	return &user, nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "username and password are required", nil, "8d0f2b4d-6e8a-4c0e-a2b4-d6f8a0c2e4b6")
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, invalidCredentials(ctx)
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "lookup user")
	}
	if err := s.hasher.Compare(user.Password, password); err != nil {
		return nil, invalidCredentials(ctx)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "issue token", err, "3f5b7d9f-1a3c-4e5a-b7c9-e1a3c5e7a9c1")
	}

	return &Session{Token: token, User: user}, nil
}

// Authenticate resolves the user a token was issued to.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "invalid token", err, "6c8e0a2c-4e6a-4c8e-b0a2-c4e6a8c0e2a4")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "invalid token", err, "0a2c4e6a-8c0e-4a2c-9e6a-8c0e2a4c6e8a")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "resolve user")
	}
	return user, nil
}

func usernameInUse(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "username already in use", nil, "2c4e6a8c-0e2a-4c6e-8a0c-2e4a6c8e0a2c")
}

func invalidCredentials(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "invalid username or password", nil, "4e6a8c0e-2a4c-4e8a-a0c2-e4a6c8e0a2c4")
}
