package entities

import (
	"errors"
	"time"
)

// MaxUsernameLength - ограничение длины имени пользователя.
const MaxUsernameLength = 50

// ErrUserNotFound возвращается репозиторием, когда пользователя нет.
var ErrUserNotFound = errors.New("user not found")

// User - учетная запись. PasswordHash никогда не сериализуется.
type User struct {
	ID                 int        `json:"userId"`
	Username           string     `json:"username"`
	PasswordHash       string     `json:"-"`
	CreationTimestamp  time.Time  `json:"creationTimestamp"`
	LastLoginTimestamp *time.Time `json:"lastLoginTimestamp"`
}
