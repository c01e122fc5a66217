package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notetaker/internal/notes/adapters/services"
	domainservices "notetaker/internal/notes/domain/services"
	"notetaker/pkg/logger"
)

const testSecret = "test-secret-key-12345"

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func signClaims(t *testing.T, method jwt.SigningMethod, key any, claims services.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() services.Claims {
	now := time.Now()
	return services.Claims{
		UserID:   "7",
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "token-id",
			Issuer:    domainservices.TokenIssuer,
			Audience:  jwt.ClaimStrings{domainservices.TokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestBcrypt(t *testing.T) {
	ctx := testContext(t)
	svc := services.NewBcrypt(bcrypt.MinCost)

	t.Run("hash and verify", func(t *testing.T) {
		hash, err := svc.Hash(ctx, "pw1")
		require.NoError(t, err)
		assert.NotEqual(t, "pw1", hash)

		ok, err := svc.Verify(ctx, "pw1", hash)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.Verify(ctx, "wrong", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("salted hashes differ", func(t *testing.T) {
		first, err := svc.Hash(ctx, "secret")
		require.NoError(t, err)
		second, err := svc.Hash(ctx, "secret")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("empty password is rejected", func(t *testing.T) {
		_, err := svc.Hash(ctx, "")
		require.ErrorIs(t, err, domainservices.ErrInvalidPassword)

		_, err = svc.Hash(ctx, "   ")
		require.ErrorIs(t, err, domainservices.ErrInvalidPassword)
	})

	t.Run("password over 72 bytes is rejected", func(t *testing.T) {
		_, err := svc.Hash(ctx, strings.Repeat("a", domainservices.MaxPasswordBytes+1))
		require.ErrorIs(t, err, domainservices.ErrPasswordTooLong)
		assert.NotErrorIs(t, err, domainservices.ErrHashingFailed)

		hash, err := svc.Hash(ctx, strings.Repeat("a", domainservices.MaxPasswordBytes))
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})

	t.Run("missing hash never matches", func(t *testing.T) {
		ok, err := svc.Verify(ctx, "pw1", "")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed hash", func(t *testing.T) {
		_, err := svc.Verify(ctx, "pw1", "not-a-bcrypt-hash")
		require.Error(t, err)
	})

	t.Run("invalid cost falls back to default", func(t *testing.T) {
		hash, err := services.NewBcrypt(0).Hash(ctx, "pw")
		require.NoError(t, err)
		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.DefaultCost, cost)
	})
}

func TestJWT_IssueAndValidate(t *testing.T) {
	ctx := testContext(t)
	svc := services.NewJWT(domainservices.JWTConfig{SecretKey: []byte(testSecret)})

	token, issued, err := svc.Issue(ctx, 7, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, issued.TokenID)
	assert.WithinDuration(t, issued.IssuedAt.Add(domainservices.TokenTTL), issued.ExpiresAt, time.Second)

	claims, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, issued.TokenID, claims.TokenID)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	require.NoError(t, err)
	mapClaims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "7", mapClaims["userId"])
	assert.Equal(t, "alice", mapClaims["unique_name"])
	assert.Equal(t, domainservices.TokenIssuer, mapClaims["iss"])
}

func TestJWT_IssueDistinctTokenIDs(t *testing.T) {
	ctx := testContext(t)
	svc := services.NewJWT(domainservices.JWTConfig{SecretKey: []byte(testSecret)})

	_, first, err := svc.Issue(ctx, 1, "alice")
	require.NoError(t, err)
	_, second, err := svc.Issue(ctx, 1, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, first.TokenID, second.TokenID)
}

func TestJWT_IssueWithEmptySecret(t *testing.T) {
	ctx := testContext(t)
	svc := services.NewJWT(domainservices.JWTConfig{})

	_, _, err := svc.Issue(ctx, 1, "alice")
	require.ErrorIs(t, err, domainservices.ErrGeneratingJWTToken)
}

func TestJWT_Validate(t *testing.T) {
	ctx := testContext(t)
	svc := services.NewJWT(domainservices.JWTConfig{SecretKey: []byte(testSecret)})

	t.Run("expired token", func(t *testing.T) {
		claims := validClaims()
		claims.IssuedAt = jwt.NewNumericDate(time.Now().Add(-3 * time.Hour))
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		token := signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), claims)

		_, err := svc.Validate(ctx, token)
		require.ErrorIs(t, err, domainservices.ErrExpiredJWTToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signClaims(t, jwt.SigningMethodHS256, []byte("other-secret"), validClaims())

		_, err := svc.Validate(ctx, token)
		require.ErrorIs(t, err, domainservices.ErrInvalidJWTToken)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := validClaims()
		claims.Audience = jwt.ClaimStrings{"SomeoneElse"}
		token := signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), claims)

		_, err := svc.Validate(ctx, token)
		require.ErrorIs(t, err, domainservices.ErrInvalidJWTToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		token := signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims())

		_, err := svc.Validate(ctx, token)
		require.ErrorIs(t, err, domainservices.ErrInvalidJWTToken)
	})

	t.Run("other HMAC algorithms", func(t *testing.T) {
		for _, method := range []jwt.SigningMethod{jwt.SigningMethodHS384, jwt.SigningMethodHS512} {
			token := signClaims(t, method, []byte(testSecret), validClaims())

			_, err := svc.Validate(ctx, token)
			require.ErrorIs(t, err, domainservices.ErrInvalidJWTToken, method.Alg())
		}
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Validate(ctx, "not.a.token")
		require.ErrorIs(t, err, domainservices.ErrInvalidJWTToken)
	})

	t.Run("missing userId is left to callers", func(t *testing.T) {
		claims := validClaims()
		claims.UserID = ""
		token := signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), claims)

		result, err := svc.Validate(ctx, token)
		require.NoError(t, err)
		assert.Zero(t, result.UserID)
		assert.Equal(t, "alice", result.Username)
	})

	t.Run("non numeric userId", func(t *testing.T) {
		claims := validClaims()
		claims.UserID = "abc"
		token := signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), claims)

		_, err := svc.Validate(ctx, token)
		require.ErrorIs(t, err, domainservices.ErrInvalidJWTToken)
	})
}

func TestServiceFactory(t *testing.T) {
	factory := services.NewServiceFactory(domainservices.JWTConfig{SecretKey: []byte(testSecret)}, bcrypt.MinCost)

	assert.NotNil(t, factory.PasswordService())
	assert.NotNil(t, factory.TokenService())
}
