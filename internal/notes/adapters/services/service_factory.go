// Package services реализует сервисы паролей и токенов сервиса заметок.
package services

import (
	"notetaker/internal/notes/domain/services"
	svc "notetaker/internal/notes/ports/services"
)

// ServiceFactory создает сервисы учетных данных.
type ServiceFactory struct {
	passwordService svc.PasswordService
	tokenService    svc.TokenService
}

// NewServiceFactory создает фабрику сервисов по настройкам JWT и стоимости bcrypt.
func NewServiceFactory(jwtConfig services.JWTConfig, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    NewJWT(jwtConfig),
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() svc.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() svc.TokenService {
	return f.tokenService
}
