package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"notetaker/internal/notes/domain/entities"
	domainservices "notetaker/internal/notes/domain/services"
	"notetaker/internal/notes/ports/repositories"
	"notetaker/internal/notes/ports/services"
	"notetaker/pkg/logger"
)

// LoginResult - выпущенный токен и его утверждения.
type LoginResult struct {
	Token  string
	Claims *domainservices.TokenClaims
}

// UserUseCase отвечает за регистрацию, вход и администрирование пользователей.
type UserUseCase struct {
	uow         repositories.UnitOfWorkManager
	passwords   services.PasswordService
	tokens      services.TokenService
	revocations services.TokenRevocationStore
	validator   *Validator
	now         func() time.Time
}

// NewUserUseCase создает новый экземпляр UserUseCase.
func NewUserUseCase(
	uow repositories.UnitOfWorkManager,
	passwords services.PasswordService,
	tokens services.TokenService,
	revocations services.TokenRevocationStore,
	validator *Validator,
) *UserUseCase {
	return &UserUseCase{
		uow:         uow,
		passwords:   passwords,
		tokens:      tokens,
		revocations: revocations,
		validator:   validator,
		now:         time.Now,
	}
}

// Register создает пользователя. Обе временные метки равны моменту регистрации.
func (uc *UserUseCase) Register(ctx context.Context, in Credentials) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "Register"))

	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}

	var taken bool
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		var err error
		taken, err = uow.Users().ExistsByUsername(ctx, in.Username)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		log.Debug(ctx, "username already taken", zap.String("username", in.Username))
		return nil, ErrUsernameTaken
	}

	hash, err := uc.hashPassword(ctx, in.Password)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	user := &entities.User{
		Username:           in.Username,
		PasswordHash:       hash,
		CreationTimestamp:  now,
		LastLoginTimestamp: &now,
	}

	err = uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		return uow.Users().Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			log.Debug(ctx, "username taken by a concurrent registration", zap.String("username", in.Username))
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Info(ctx, "user registered", zap.Int("userID", user.ID))
	return user, nil
}

// Login проверяет пароль, обновляет LastLoginTimestamp и выпускает токен.
func (uc *UserUseCase) Login(ctx context.Context, in Credentials) (*LoginResult, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "Login"))

	var user *entities.User
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		var err error
		user, err = uow.Users().FindByUsername(ctx, in.Username)
		return err
	})
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, "login for unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := uc.passwords.Verify(ctx, in.Password, user.PasswordHash)
	if err != nil {
		log.Warn(ctx, "password verification failed", zap.Int("userID", user.ID), zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if !ok {
		log.Debug(ctx, "wrong password", zap.Int("userID", user.ID))
		return nil, ErrInvalidCredentials
	}

	err = uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		outcome, err := uow.Users().TouchLastLogin(ctx, user.ID, uc.now())
		if err != nil {
			return err
		}
		if outcome == entities.UpdateNotFound {
			return ErrInvalidCredentials
		}
		return outcomeError(outcome)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	token, claims, err := uc.tokens.Issue(ctx, user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info(ctx, "user logged in", zap.Int("userID", user.ID))
	return &LoginResult{Token: token, Claims: claims}, nil
}

// Authenticate проверяет bearer токен и отклоняет отозванные.
func (uc *UserUseCase) Authenticate(ctx context.Context, token string) (*domainservices.TokenClaims, error) {
	claims, err := uc.tokens.Validate(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	revoked, err := uc.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", ErrUnauthorized)
	}
	return claims, nil
}

// Logout отзывает токен до истечения его срока.
func (uc *UserUseCase) Logout(ctx context.Context, claims *domainservices.TokenClaims) error {
	if claims == nil {
		return ErrUnauthorized
	}
	if err := uc.revocations.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	logger.Log(ctx).Info(ctx, "user logged out", zap.Int("userID", claims.UserID))
	return nil
}

func (uc *UserUseCase) ListUsers(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		var err error
		users, err = uow.Users().List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (uc *UserUseCase) GetUser(ctx context.Context, id int) (*entities.User, error) {
	var user *entities.User
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		var err error
		user, err = uow.Users().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", translateNotFound(err))
	}
	return user, nil
}

// UpdateUser меняет имя пользователя и, если передан, пароль.
func (uc *UserUseCase) UpdateUser(ctx context.Context, id int, in UserUpdate) error {
	if in.UserID != nil && *in.UserID != id {
		return ErrUserIDMismatch
	}
	if err := uc.validator.Struct(in); err != nil {
		return err
	}

	var hash string
	if in.Password != "" {
		var err error
		if hash, err = uc.hashPassword(ctx, in.Password); err != nil {
			return err
		}
	}

	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		user, err := uow.Users().FindByID(ctx, id)
		if err != nil {
			return translateNotFound(err)
		}

		user.Username = in.Username
		if hash != "" {
			user.PasswordHash = hash
		}
		outcome, err := uow.Users().Update(ctx, user)
		if err != nil {
			if errors.Is(err, repositories.ErrDuplicateUsername) {
				return ErrUsernameTaken
			}
			return err
		}
		return outcomeError(outcome)
	})
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (uc *UserUseCase) DeleteUser(ctx context.Context, id int) error {
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		return uow.Users().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", translateNotFound(err))
	}
	return nil
}

// hashPassword хэширует пароль, превращая отказы из-за самого пароля в ValidationError.
func (uc *UserUseCase) hashPassword(ctx context.Context, password string) (string, error) {
	hash, err := uc.passwords.Hash(ctx, password)
	switch {
	case err == nil:
		return hash, nil
	case errors.Is(err, domainservices.ErrInvalidPassword):
		return "", newValidationError("Password", "Password is required")
	case errors.Is(err, domainservices.ErrPasswordTooLong):
		return "", newValidationError("Password", "Password must be at most %d bytes", domainservices.MaxPasswordBytes)
	default:
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
}
