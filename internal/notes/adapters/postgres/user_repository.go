package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notetaker/internal/notes/domain/entities"
	"notetaker/internal/notes/ports/repositories"
	"notetaker/pkg/logger"
)

const (
	userColumns = `user_id, username, password_hash, creation_timestamp, last_login_timestamp`

	queryListUsers          = `SELECT ` + userColumns + ` FROM users ORDER BY user_id`
	queryFindUserByID       = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	queryFindUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	queryUsernameExists     = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`
	queryUserExists         = `SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`
	queryInsertUser         = `INSERT INTO users (username, password_hash, creation_timestamp, last_login_timestamp) VALUES ($1, $2, $3, $4) RETURNING user_id`
	queryUpdateUser         = `UPDATE users SET username = $2, password_hash = $3 WHERE user_id = $1`
	queryTouchLastLogin     = `UPDATE users SET last_login_timestamp = $2 WHERE user_id = $1`
	queryDeleteUser         = `DELETE FROM users WHERE user_id = $1`
	repoUser                = "user"
)

// UserRepository реализует repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	q Querier
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(q Querier) repositories.UserRepository {
	return &UserRepository{q: q}
}

// List возвращает всех пользователей.
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoUser), zap.String("method", "List"))

	rows, err := r.q.Query(ctx, queryListUsers)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error(ctx, "error scanning user", zap.Error(err))
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return users, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id int) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoUser), zap.String("method", "FindByID"))

	user, err := scanUser(r.q.QueryRow(ctx, queryFindUserByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Int("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}
	return user, nil
}

// FindByUsername находит пользователя по точному совпадению имени.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoUser), zap.String("method", "FindByUsername"))

	user, err := scanUser(r.q.QueryRow(ctx, queryFindUserByUsername, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("username", username))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by username", zap.Error(err))
		return nil, fmt.Errorf("error querying user by username: %w", err)
	}
	return user, nil
}

// ExistsByUsername проверяет, занято ли имя.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	exists, err := existsQuery(ctx, r.q, queryUsernameExists, username)
	if err != nil {
		logger.Log(ctx).Error(ctx, "error checking username", zap.Error(err))
		return false, fmt.Errorf("error checking username: %w", err)
	}
	return exists, nil
}

// Create создает пользователя и заполняет его ID.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	log := logger.Log(ctx).With(zap.String("repository", repoUser), zap.String("method", "Create"))

	err := r.q.QueryRow(ctx, queryInsertUser,
		user.Username,
		user.PasswordHash,
		user.CreationTimestamp,
		user.LastLoginTimestamp,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "username already taken", zap.String("username", user.Username))
			return repositories.ErrDuplicateUsername
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return fmt.Errorf("error creating user: %w", err)
	}

	log.Debug(ctx, "user created", zap.Int("id", user.ID))
	return nil
}

// Update перезаписывает имя и хеш пароля.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (entities.UpdateOutcome, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoUser), zap.String("method", "Update"))

	tag, err := r.q.Exec(ctx, queryUpdateUser, user.ID, user.Username, user.PasswordHash)
	if isUniqueViolation(err) {
		log.Debug(ctx, "username already taken", zap.String("username", user.Username))
		return entities.UpdateConflict, repositories.ErrDuplicateUsername
	}
	outcome, err := resolveUpdate(ctx, tag, err, func(ctx context.Context) (bool, error) {
		return r.Exists(ctx, user.ID)
	})
	if err != nil {
		log.Error(ctx, "error updating user", zap.Error(err))
		return outcome, fmt.Errorf("error updating user: %w", err)
	}
	return outcome, nil
}

// TouchLastLogin сохраняет время последнего входа.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id int, at time.Time) (entities.UpdateOutcome, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoUser), zap.String("method", "TouchLastLogin"))

	tag, err := r.q.Exec(ctx, queryTouchLastLogin, id, at.UTC())
	outcome, err := resolveUpdate(ctx, tag, err, func(ctx context.Context) (bool, error) {
		return r.Exists(ctx, id)
	})
	if err != nil {
		log.Error(ctx, "error updating last login", zap.Error(err))
		return outcome, fmt.Errorf("error updating last login: %w", err)
	}
	return outcome, nil
}

// Delete удаляет пользователя по ID.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	log := logger.Log(ctx).With(zap.String("repository", repoUser), zap.String("method", "Delete"))

	result, err := r.q.Exec(ctx, queryDeleteUser, id)
	if err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return fmt.Errorf("error deleting user: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for deletion", zap.Int("id", id))
		return entities.ErrUserNotFound
	}
	return nil
}

// Exists проверяет наличие пользователя.
func (r *UserRepository) Exists(ctx context.Context, id int) (bool, error) {
	exists, err := existsQuery(ctx, r.q, queryUserExists, id)
	if err != nil {
		return false, fmt.Errorf("error checking user existence: %w", err)
	}
	return exists, nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var (
		user entities.User
		hash *string
	)
	if err := row.Scan(&user.ID, &user.Username, &hash, &user.CreationTimestamp, &user.LastLoginTimestamp); err != nil {
		return nil, err
	}
	if hash != nil {
		user.PasswordHash = *hash
	}
	return &user, nil
}
