package application

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"forum-api/internal/domain/apperrors"
	"forum-api/internal/domain/entity"
	"forum-api/internal/domain/repository"
	"forum-api/pkg/helpers"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 15
	emailMaxLen    = 100
	passwordMinLen = 6
)

// Credentials is the bearer token issued at registration and login.
type Credentials struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService is the user directory plus credential issuance: it owns
// registration, login and user lookups. Plaintext passwords never leave
// this service.
type AuthService struct {
	Users  repository.UserRepository
	Hasher *helpers.Hasher
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, hasher *helpers.Hasher, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Hasher: hasher, JWT: jwt, Logger: logger}
}

// Bounds count characters, not bytes, matching the binding-layer rules.
func validateRegistration(username, email, password string) error {
	if n := utf8.RuneCountInString(username); n < usernameMinLen || n > usernameMaxLen {
		return apperrors.NewValidation("username", "must be 3-15 characters long")
	}
	if email == "" || utf8.RuneCountInString(email) > emailMaxLen {
		return apperrors.NewValidation("email", "must be a valid email of at most 100 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.NewValidation("email", "must be a valid email")
	}
	if utf8.RuneCountInString(password) < passwordMinLen {
		return apperrors.NewValidation("password", "must be at least 6 characters long")
	}
	return nil
}

// Register creates a user and issues a token for it. Username is checked
// before email; either duplicate aborts the registration. The pre-checks
// only shape the error message, the unique indexes in the store are what
// actually guarantees uniqueness under concurrent registration.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*entity.User, *Credentials, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateRegistration(username, email, password); err != nil {
		return nil, nil, err
	}

	if taken, err := s.Users.ExistsByUsername(ctx, username); err != nil {
		return nil, nil, err
	} else if taken {
		return nil, nil, apperrors.ErrDuplicateUsername
	}
	if taken, err := s.Users.ExistsByEmail(ctx, email); err != nil {
		return nil, nil, err
	} else if taken {
		return nil, nil, apperrors.ErrDuplicateEmail
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, nil, err
	}

	u := &entity.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, nil, err
	}

	creds, err := s.issue(u.Username)
	if err != nil {
		return nil, nil, err
	}

	if s.Logger != nil {
		s.Logger.WithField("username", u.Username).Info("user registered")
	}
	return u, creds, nil
}

// Login authenticates a username/password pair and issues a token.
// An unknown username and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.User, *Credentials, error) {
	u, err := s.Users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, nil, err
	}
	if u == nil || !s.Hasher.Verify(u.PasswordHash, password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	creds, err := s.issue(u.Username)
	if err != nil {
		return nil, nil, err
	}
	return u, creds, nil
}

func (s *AuthService) issue(username string) (*Credentials, error) {
	token, exp, err := s.JWT.Generate(username)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", username).Error("token generation failed")
		}
		return nil, err
	}
	return &Credentials{Token: token, ExpiresAt: exp}, nil
}

// FindByUsername returns (nil, nil) when no such user exists.
func (s *AuthService) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.Users.GetByUsername(ctx, username)
}

// FindByID returns (nil, nil) when no such user exists.
func (s *AuthService) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return s.Users.GetByID(ctx, id)
}

func (s *AuthService) CountUsers(ctx context.Context) (int64, error) {
	return s.Users.Count(ctx)
}
