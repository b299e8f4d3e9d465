package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
	"github.com/sweetshop/sweet-shop-manager/internal/core/ports"
)

// AuthService implements registration, login and admin provisioning.
type AuthService struct {
	repo     ports.UserRepository
	tokens   *TokenIssuer
	lockout  ports.LoginLockout
	log      zerolog.Logger
	hashCost int

	dummyOnce sync.Once
	dummyHash []byte
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithHashCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) AuthOption {
	return func(s *AuthService) { s.hashCost = cost }
}

// WithLockout enables failed-login tracking.
func WithLockout(l ports.LoginLockout) AuthOption {
	return func(s *AuthService) { s.lockout = l }
}

func NewAuthService(repo ports.UserRepository, tokens *TokenIssuer, log zerolog.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{
		repo:     repo,
		tokens:   tokens,
		log:      log,
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a User-role account and returns it with a fresh token.
// Any role the caller may have asked for is not an input here.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, string, error) {
	user, err := s.create(ctx, in, domain.RoleUser)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ProvisionAdmin is the only path that creates Admin accounts.
func (s *AuthService) ProvisionAdmin(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	user, err := s.create(ctx, in, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("admin provisioned")
	return user, nil
}

func (s *AuthService) create(ctx context.Context, in ports.RegisterInput, role domain.Role) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)

	ve := &domain.ValidationError{}
	if name == "" {
		ve.Add("name is required")
	}
	if email == "" {
		ve.Add("email is required")
	} else if !strings.Contains(email, "@") {
		ve.Add("email is invalid")
	}
	if in.Password == "" {
		ve.Add("password is required")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies the credentials and returns a session token. An unknown
// email and a wrong password fail with the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.NewValidationError("please provide an email and password")
	}

	if s.locked(ctx, email) {
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, err
		}
		// Burn a comparison so unknown emails cost the same as wrong passwords.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	if s.lockout != nil {
		if err := s.lockout.RecordSuccess(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("lockout: failed to clear attempts")
		}
	}
	return token, user, nil
}

// The lockout store is advisory: when it is unavailable logins proceed.
func (s *AuthService) locked(ctx context.Context, email string) bool {
	if s.lockout == nil {
		return false
	}
	locked, err := s.lockout.IsLocked(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("lockout: check failed")
		return false
	}
	return locked
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.lockout == nil {
		return
	}
	if err := s.lockout.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("lockout: failed to record attempt")
	}
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("sweet-shop-dummy-password"), s.hashCost)
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
