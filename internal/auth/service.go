// Package auth registers and logs in widget users and issues the access
// tokens the gRPC layer checks.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"logotherapy-booking/internal/metrics"
	"logotherapy-booking/internal/model"
	"logotherapy-booking/internal/validation"
)

var (
	ErrUserExists         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Users is the user repository. *store.Store satisfies it.
type Users interface {
	SaveNewUser(ctx context.Context, u *model.User) (bool, error)
	UserByEmail(ctx context.Context, email string) (*model.User, error)
}

// Sessions is the session pointer. *session.Manager satisfies it.
type Sessions interface {
	Save(ctx context.Context, u *model.User) (*model.User, error)
	Clear(ctx context.Context) error
}

type Service struct {
	users    Users
	sessions Sessions
	hasher   Hasher
	log      *slog.Logger
	metrics  metrics.Recorder
}

func NewService(users Users, sessions Sessions, hasher Hasher, log *slog.Logger, rec metrics.Recorder) *Service {
	if hasher == nil {
		hasher = BcryptHasher{}
	}
	if log == nil {
		log = slog.Default()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{users: users, sessions: sessions, hasher: hasher, log: log, metrics: rec}
}

// Register creates an account and logs it in. Field problems come back as
// *model.FieldError, checked in the order name, email, password.
func (s *Service) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	switch {
	case !validation.ValidateName(name):
		s.metrics.RecordAuth("register", "invalid")
		return nil, model.NewFieldError("name", "must be at least 2 characters")
	case !validation.ValidateEmail(email):
		s.metrics.RecordAuth("register", "invalid")
		return nil, model.NewFieldError("email", "invalid email address")
	case !validation.ValidatePassword(password):
		s.metrics.RecordAuth("register", "invalid")
		if len(password) > validation.MaxPasswordBytes {
			return nil, model.NewFieldError("password", fmt.Sprintf("must be at most %d bytes", validation.MaxPasswordBytes))
		}
		return nil, model.NewFieldError("password", "must be at least 6 characters")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	u := &model.User{Name: name, Email: email, PasswordHash: hash}

	saved, err := s.users.SaveNewUser(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("auth: save user: %w", err)
	}
	if !saved {
		s.metrics.RecordAuth("register", "exists")
		return nil, ErrUserExists
	}

	cur, err := s.sessions.Save(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("auth: start session: %w", err)
	}
	s.metrics.RecordAuth("register", "ok")
	s.log.InfoContext(ctx, "user registered", "email", email)
	return cur, nil
}

// Login never says whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		s.metrics.RecordAuth("login", "invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("auth: lookup user: %w", err)
	}
	if u == nil || !s.hasher.Check(u.PasswordHash, password) {
		s.metrics.RecordAuth("login", "invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	cur, err := s.sessions.Save(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("auth: start session: %w", err)
	}
	s.metrics.RecordAuth("login", "ok")
	return cur, nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("auth: clear session: %w", err)
	}
	s.metrics.RecordAuth("logout", "ok")
	return nil
}
