package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/classforge-auth/internal/auth"
	"github.com/spec-kit/classforge-auth/internal/config"
	"github.com/spec-kit/classforge-auth/internal/domain"
	"github.com/spec-kit/classforge-auth/internal/events"
	"github.com/spec-kit/classforge-auth/internal/observability"
	"github.com/spec-kit/classforge-auth/internal/repository"
	apperrors "github.com/spec-kit/classforge-auth/pkg/util/errorutil"
)

const (
	opRegister     = "register"
	opLogin        = "login"
	opAuthenticate = "authenticate"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	FirstName          string
	LastName           string
	Email              string
	RegistrationNumber string
	Password           string
	Role               string
}

func (in RegisterInput) missingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
		{"email", in.Email},
		{"registrationNumber", in.RegistrationNumber},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	return missing
}

// AuthResult is returned by successful registration and login.
type AuthResult struct {
	Account   domain.PublicAccount
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration, login and token resolution.
type AuthService struct {
	accounts     repository.AccountRepository
	hasher       auth.PasswordHasher
	tokens       *auth.TokenManager
	storeTimeout time.Duration
	logger       *zap.Logger
	metrics      *observability.Metrics
	events       events.Dispatcher
	now          func() time.Time

	// dummyDigest is verified against when the email is unknown so both login
	// failure branches pay the same hashing cost.
	dummyDigest string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Accounts repository.AccountRepository
	Hasher   auth.PasswordHasher
	Tokens   *auth.TokenManager
	Logger   *zap.Logger
	Metrics  *observability.Metrics
	Events   events.Dispatcher
}

// NewAuthService builds the service. It fails when the hasher cannot produce
// the digest unknown-email logins are checked against.
func NewAuthService(cfg config.Config, deps AuthDependencies) (*AuthService, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &AuthService{
		accounts:     deps.Accounts,
		hasher:       deps.Hasher,
		tokens:       deps.Tokens,
		storeTimeout: cfg.Postgres.QueryTimeout(),
		logger:       logger.Named("auth"),
		metrics:      deps.Metrics,
		events:       deps.Events,
		now:          time.Now,
	}

	dummy, err := s.hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("prepare dummy digest: %w", err)
	}
	s.dummyDigest = dummy
	return s, nil
}

// Register creates a new account and issues its first session token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	result, err := s.register(ctx, in)
	s.record(opRegister, err)
	return result, err
}

func (s *AuthService) register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if missing := in.missingFields(); len(missing) > 0 {
		return nil, apperrors.NewMissingFields(missing)
	}

	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": in.Role})
	}

	if _, err := s.findByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewDuplicateAccount(nil)
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, s.storeError(opRegister, err)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, apperrors.NewValidationError("password too long", nil)
		}
		s.logger.Error("hash password", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	account := &domain.Account{
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		Email:              in.Email,
		RegistrationNumber: in.RegistrationNumber,
		PasswordDigest:     digest,
		Role:               role,
	}

	insertCtx, cancel := s.storeContext(ctx)
	err = s.accounts.Insert(insertCtx, account)
	cancel()
	if err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicateAccount(err)
		}
		return nil, s.storeError(opRegister, err)
	}

	result, err := s.issue(account)
	if err != nil {
		return nil, err
	}

	s.logger.Info("account registered",
		zap.String("account_id", account.ID),
		zap.String("role", string(account.Role)))
	s.publish(ctx, events.EventAccountRegistered, account.ID, events.AccountRegisteredPayload{Role: account.Role})
	return result, nil
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	result, err := s.login(ctx, email, password)
	s.record(opLogin, err)
	return result, err
}

func (s *AuthService) login(ctx context.Context, email, password string) (*AuthResult, error) {
	var missing []string
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewMissingFields(missing)
	}

	account, err := s.findByEmail(ctx, email)
	digest := s.dummyDigest
	switch {
	case err == nil:
		digest = account.PasswordDigest
	case errors.Is(err, domain.ErrAccountNotFound):
		account = nil
	default:
		return nil, s.storeError(opLogin, err)
	}

	matched := s.hasher.Verify(password, digest)
	if account == nil || !matched {
		err := apperrors.NewInvalidCredentials()
		s.publish(ctx, events.EventLoginFailed, "", events.LoginFailedPayload{Code: apperrors.CodeOf(err)})
		return nil, err
	}

	result, err := s.issue(account)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", zap.String("account_id", account.ID))
	s.publish(ctx, events.EventLoginSucceeded, account.ID, nil)
	return result, nil
}

// Authenticate resolves a bearer token to the account it was issued for,
// re-reading the account so role changes apply immediately.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	principal, err := s.authenticate(ctx, token)
	s.record(opAuthenticate, err)
	return principal, err
}

func (s *AuthService) authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	session, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, apperrors.NewUnauthorized("unauthorized")
	}
	if _, err := uuid.Parse(session.SubjectID); err != nil {
		return nil, apperrors.NewUnauthorized("unauthorized")
	}

	lookupCtx, cancel := s.storeContext(ctx)
	defer cancel()

	account, err := s.accounts.GetByID(lookupCtx, session.SubjectID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, apperrors.NewUnauthorized("unauthorized")
		}
		return nil, s.storeError(opAuthenticate, err)
	}

	return &auth.Principal{Account: account, Session: session}, nil
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*domain.Account, error) {
	lookupCtx, cancel := s.storeContext(ctx)
	defer cancel()
	return s.accounts.FindByEmail(lookupCtx, email)
}

func (s *AuthService) issue(account *domain.Account) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(account.ID)
	if err != nil {
		s.logger.Error("issue token", zap.String("account_id", account.ID), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{Account: account.Public(), Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

func (s *AuthService) storeError(op string, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		s.logger.Warn("credential store unavailable", zap.String("operation", op), zap.Error(err))
		return apperrors.NewStoreUnavailable(err)
	}
	s.logger.Error("credential store failure", zap.String("operation", op), zap.Error(err))
	return apperrors.NewInternalError(err)
}

// publish emits a lifecycle event. Subscriber failures never fail the request.
func (s *AuthService) publish(ctx context.Context, eventType events.EventType, accountID string, payload any) {
	if s.events == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AccountID: accountID,
		Timestamp: s.now().UTC(),
		Payload:   payload,
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}

func (s *AuthService) record(op string, err error) {
	if err != nil {
		s.metrics.RecordAuth(op, observability.OutcomeFailure, apperrors.CodeOf(err))
		return
	}
	s.metrics.RecordAuth(op, observability.OutcomeSuccess, "")
}
