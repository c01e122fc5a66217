package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"notetaker/internal/notes/domain/services"
	svc "notetaker/internal/notes/ports/services"
	"notetaker/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodIssue         = "Issue"
	methodValidate      = "Validate"
	msgIssuingToken     = "issuing access token"
	msgValidatingToken  = "validating token"
	msgTokenGenerated   = "token generated successfully"
	msgTokenValidated   = "token validated successfully"
	msgInvalidToken     = "invalid token format"
	msgTokenExpired     = "token has expired"
	msgEmptySecret      = "empty secret key provided"
	errSigningToken     = "error signing token" //nolint:gosec
	errParsingToken     = "error parsing token" //nolint:gosec
	errCtxGenerating    = "generating token"
	errCtxParsing       = "parsing token"
	errCtxValidating    = "validating token"
	errCtxInvalidUserID = "invalid userId claim"
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims - представление токена для библиотеки JWT. userId хранится строкой,
// unique_name содержит имя пользователя.
type Claims struct {
	UserID   string `json:"userId,omitempty"`
	Username string `json:"unique_name,omitempty"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService на HS256.
type ServiceJWT struct {
	config services.JWTConfig
	now    func() time.Time
}

// NewJWT создает новый экземпляр сервиса JWT. Пустые issuer, audience и TTL
// заменяются фиксированными значениями приложения.
func NewJWT(config services.JWTConfig) svc.TokenService {
	if config.Issuer == "" {
		config.Issuer = services.TokenIssuer
	}
	if config.Audience == "" {
		config.Audience = services.TokenAudience
	}
	if config.TTL <= 0 {
		config.TTL = services.TokenTTL
	}
	return &ServiceJWT{config: config, now: time.Now}
}

// Issue выпускает токен с id пользователя, именем и уникальным jti.
func (s *ServiceJWT) Issue(ctx context.Context, userID int, username string) (string, *services.TokenClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIssue), zap.Int("userID", userID))
	log.Debug(ctx, msgIssuingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, msgEmptySecret)
		return "", nil, fmt.Errorf("%s: %w: empty secret key", errCtxGenerating, services.ErrGeneratingJWTToken)
	}

	now := s.now().UTC()
	domainClaims := &services.TokenClaims{
		UserID:    userID,
		Username:  username,
		TokenID:   uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.TTL),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, s.toJWTClaims(domainClaims))
	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", nil, fmt.Errorf("%s: %w: %w", errCtxGenerating, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", domainClaims.ExpiresAt))
	return tokenString, domainClaims, nil
}

// Validate проверяет подпись, срок, issuer и audience токена. Отсутствие
// userId не считается ошибкой: UserID == 0 обрабатывают вызывающие.
func (s *ServiceJWT) Validate(ctx context.Context, tokenString string) (*services.TokenClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidate))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithAudience(s.config.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidating, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsing, services.ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxValidating, services.ErrInvalidJWTToken)
	}

	domainClaims, err := toDomainClaims(claims)
	if err != nil {
		log.Debug(ctx, errCtxInvalidUserID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidating, services.ErrInvalidJWTToken, err)
	}

	log.Debug(ctx, msgTokenValidated, zap.Int("userID", domainClaims.UserID))
	return domainClaims, nil
}

func (s *ServiceJWT) toJWTClaims(c *services.TokenClaims) Claims {
	return Claims{
		UserID:   strconv.Itoa(c.UserID),
		Username: c.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        c.TokenID,
			Issuer:    s.config.Issuer,
			Audience:  jwt.ClaimStrings{s.config.Audience},
			IssuedAt:  jwt.NewNumericDate(c.IssuedAt),
			NotBefore: jwt.NewNumericDate(c.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
	}
}

func toDomainClaims(c *Claims) (*services.TokenClaims, error) {
	out := &services.TokenClaims{
		Username: c.Username,
		TokenID:  c.ID,
	}
	if c.UserID != "" {
		id, err := strconv.Atoi(c.UserID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtxInvalidUserID, err)
		}
		out.UserID = id
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}
