package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Caller-visible registration and login messages.
const (
	msgInvalidInput    = "invalid input"
	msgUserExists      = "user exists"
	msgInvalidPasskey  = "invalid passkey"
	msgPasskeyUsed     = "passkey already used"
	msgBadCredentials  = "invalid email or password"
	msgTooManyAttempts = "Too many failed login attempts. Please try again later."
	msgUserNotFound    = "User not found"
)

type authUsecase struct {
	users    domain.UserRepository
	passkeys domain.PasskeyRepository
	tx       domain.Transactor
	hasher   domain.PasswordHasher
	tokens   domain.TokenIssuer
	throttle domain.LoginThrottle
	validate *validator.Validate
	audit    *security.SecurityLogger
	now      func() time.Time
}

func NewAuthUsecase(
	users domain.UserRepository,
	passkeys domain.PasskeyRepository,
	tx domain.Transactor,
	hasher domain.PasswordHasher,
	tokens domain.TokenIssuer,
	throttle domain.LoginThrottle,
	validate *validator.Validate,
	audit *security.SecurityLogger,
) domain.AuthUsecase {
	if audit == nil {
		audit = security.DefaultLogger()
	}
	return &authUsecase{
		users:    users,
		passkeys: passkeys,
		tx:       tx,
		hasher:   hasher,
		tokens:   tokens,
		throttle: throttle,
		validate: validate,
		audit:    audit,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register checks, in order: input, email availability, passkey existence, passkey unused.
// The first failing check decides the error. Consuming the passkey and inserting the user
// happen in one transaction, so at most one registration succeeds per passkey.
func (u *authUsecase) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Passkey = strings.TrimSpace(req.Passkey)

	reject := func(err *apperror.AppError) (*domain.User, error) {
		u.audit.LogRegistration(ctx, req.Email, false, err.Message)
		return nil, err
	}

	if err := u.validate.Struct(req); err != nil {
		return reject(apperror.Validation(msgInvalidInput, validation.FormatValidationErrors(err)))
	}

	if _, err := u.users.GetByEmail(ctx, req.Email); err == nil {
		return reject(apperror.BadRequest(msgUserExists))
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	pk, err := u.passkeys.GetByKey(ctx, req.Passkey)
	if errors.Is(err, domain.ErrNotFound) {
		return reject(apperror.Forbidden(msgInvalidPasskey))
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if pk.Used {
		return reject(apperror.Forbidden(msgPasskeyUsed))
	}

	hash, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := u.now()
	user := &domain.User{
		ID:           id.String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = u.tx.WithinTx(ctx, func(ctx context.Context, repos domain.TxRepositories) error {
		if err := repos.Passkeys.Consume(ctx, req.Passkey, now); err != nil {
			return err
		}
		return repos.Users.Create(ctx, user)
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrPasskeyUsed):
		return reject(apperror.Forbidden(msgPasskeyUsed))
	case errors.Is(err, domain.ErrNotFound):
		return reject(apperror.Forbidden(msgInvalidPasskey))
	case errors.Is(err, domain.ErrEmailTaken):
		return reject(apperror.BadRequest(msgUserExists))
	default:
		return nil, apperror.Internal(err)
	}

	u.audit.LogRegistration(ctx, user.Email, true, "")
	return user, nil
}

// Login answers unknown emails and wrong passwords identically, in both message and timing.
func (u *authUsecase) Login(ctx context.Context, req *domain.LoginRequest, client domain.ClientInfo) (*domain.Session, error) {
	req.Email = normalizeEmail(req.Email)
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.Validation(msgInvalidInput, validation.FormatValidationErrors(err))
	}

	blocked, err := u.throttle.IsBlocked(ctx, req.Email, client.IP)
	if err != nil {
		logger.Log.Warn("login throttle unavailable", zap.Error(err))
	}
	if blocked {
		u.audit.LogLoginBlocked(ctx, req.Email, client.IP, client.UserAgent, client.RequestID)
		return nil, apperror.TooManyRequests(msgTooManyAttempts)
	}

	fail := func() (*domain.Session, error) {
		if _, _, err := u.throttle.RecordFailedAttempt(ctx, req.Email, client.IP, client.UserAgent, client.RequestID); err != nil {
			logger.Log.Warn("failed to record login attempt", zap.Error(err))
		}
		return nil, apperror.Unauthorized(msgBadCredentials)
	}

	user, err := u.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		u.hasher.Burn(req.Password)
		return fail()
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	ok, err := u.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("stored password hash is unreadable", zap.String("user_id", user.ID), zap.Error(err))
	}
	if !ok {
		return fail()
	}

	if err := u.throttle.ClearAttempts(ctx, req.Email, client.IP); err != nil {
		logger.Log.Warn("failed to clear login attempts", zap.Error(err))
	}

	token, expiresAt, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u.audit.LogLoginSuccess(ctx, user.ID, client.IP, client.RequestID)

	return &domain.Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	return u.getUser(ctx, userID)
}

func (u *authUsecase) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.User, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if err := u.validate.Struct(patch); err != nil {
		return nil, apperror.Validation(msgInvalidInput, validation.FormatValidationErrors(err))
	}

	user, err := u.users.UpdateProfile(ctx, userID, patch)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *authUsecase) GetPublicProfile(ctx context.Context, userID string) (*domain.PublicProfile, error) {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (u *authUsecase) getUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}
