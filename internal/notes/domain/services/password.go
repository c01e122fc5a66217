package services

import "errors"

// MaxPasswordBytes - предел длины пароля, который принимает bcrypt.
const MaxPasswordBytes = 72

// Ошибки паролей.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)
