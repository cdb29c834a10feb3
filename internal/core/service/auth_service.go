package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/saariz/identity-service/internal/core/domain"
	"github.com/saariz/identity-service/internal/core/ports"
	"github.com/saariz/identity-service/internal/core/token"
)

// PasswordPolicy validates a candidate password at registration time.
// The policy is injected so it can be tightened without touching the service.
type PasswordPolicy func(password string) error

// PermissivePolicy accepts any non-empty password. This is the deliberate
// default: length, digit and case requirements are all disabled.
func PermissivePolicy(password string) error {
	if password == "" {
		return errors.New("password must not be empty")
	}
	return nil
}

// AuthService implements registration and login.
type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	issuer   *token.Issuer
	policy   PasswordPolicy
	throttle ports.LoginThrottle
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

type Option func(*AuthService)

// WithPasswordPolicy replaces the default permissive password policy.
func WithPasswordPolicy(p PasswordPolicy) Option {
	return func(s *AuthService) { s.policy = p }
}

// WithLoginThrottle enables failed-attempt throttling on login.
func WithLoginThrottle(t ports.LoginThrottle) Option {
	return func(s *AuthService) { s.throttle = t }
}

// WithAuditRecorder enables best-effort audit recording of auth outcomes.
func WithAuditRecorder(r ports.AuditRecorder) Option {
	return func(s *AuthService) { s.audit = r }
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, issuer *token.Issuer, log zerolog.Logger, opts ...Option) *AuthService {
	s := &AuthService{
		users:  users,
		roles:  roles,
		issuer: issuer,
		policy: PermissivePolicy,
		log:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies the credentials and issues a signed token on success.
// The username comparison is case-insensitive.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	normalized := strings.ToLower(username)

	if s.throttle != nil {
		blocked, err := s.throttle.TooManyFailures(ctx, normalized)
		if err != nil {
			// Degrade open: a broken throttle must not lock everyone out.
			s.log.Warn().Err(err).Str("username", normalized).Msg("login throttle check failed")
		} else if blocked {
			s.recordAudit(normalized, domain.AuditLogin, false, "throttled")
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordAudit(normalized, domain.AuditLogin, false, "unknown user")
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, normalized)
		s.recordAudit(normalized, domain.AuditLogin, false, "wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(user.ID, user.Name, user.Username, user.Role)
	if err != nil {
		s.log.Error().Err(err).Str("username", normalized).Msg("token issuance failed")
		return nil, domain.ErrTokenIssuance
	}
	if user.Username == "" || signed == "" {
		return nil, domain.ErrTokenIssuance
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, normalized); err != nil {
			s.log.Warn().Err(err).Str("username", normalized).Msg("failed to reset login throttle")
		}
	}
	s.recordAudit(normalized, domain.AuditLogin, true, "")

	return &ports.LoginResult{Email: user.Username, Token: signed}, nil
}

// Register creates an account with a hashed credential and assigns its role.
// Requested roles matching the Admin role name (case-insensitive) yield Admin;
// everything else yields Customer.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	if in.Username == "" {
		return domain.ErrRegistrationFailed
	}
	if err := s.policy(in.Password); err != nil {
		s.log.Debug().Err(err).Str("username", in.Username).Msg("password rejected by policy")
		return domain.ErrRegistrationFailed
	}

	normalized := strings.ToLower(in.Username)
	if _, err := s.users.FindByUsername(ctx, normalized); err == nil {
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.UserAccount{
		Username:        normalized,
		Email:           normalized,
		NormalizedEmail: strings.ToUpper(in.Username),
		Name:            in.Name,
		PasswordHash:    string(hash),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// The existence check above and this insert are not atomic; the store's
	// unique index on username is the last line of defense for the race.
	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return domain.ErrUserExists
		}
		s.recordAudit(normalized, domain.AuditRegister, false, "create failed")
		return domain.ErrRegistrationFailed
	}

	// Any failure past this point leaves an account without a role. That is
	// the accepted edge-state: no partial-state repair is attempted.
	if err := s.assignRole(ctx, created, in.Role); err != nil {
		s.log.Error().Err(err).Str("username", normalized).Msg("role assignment failed")
		s.recordAudit(normalized, domain.AuditRegister, false, "role assignment failed")
		return domain.ErrRegistrationFailed
	}

	s.recordAudit(normalized, domain.AuditRegister, true, "")
	return nil
}

// assignRole bootstraps the built-in role catalog and attaches the resolved
// role to the account.
func (s *AuthService) assignRole(ctx context.Context, user *domain.UserAccount, requested string) error {
	for _, name := range []string{domain.RoleAdmin, domain.RoleCustomer} {
		if err := s.roles.Ensure(ctx, name); err != nil {
			return fmt.Errorf("ensure role %s: %w", name, err)
		}
	}

	role := domain.RoleCustomer
	if strings.EqualFold(requested, domain.RoleAdmin) {
		role = domain.RoleAdmin
	}

	ok, err := s.roles.Exists(ctx, role)
	if err != nil {
		return fmt.Errorf("check role %s: %w", role, err)
	}
	if !ok {
		return fmt.Errorf("assign role %s: %w", role, domain.ErrRoleNotFound)
	}

	if err := s.users.SetRole(ctx, user.ID, role); err != nil {
		return fmt.Errorf("assign role %s: %w", role, err)
	}
	user.Role = role
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
}

func (s *AuthService) recordAudit(username, action string, success bool, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		Username:  username,
		Action:    action,
		Success:   success,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}
