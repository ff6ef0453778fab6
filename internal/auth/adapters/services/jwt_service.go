package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/auth/domain/services"
	"notekeeper/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodIssue        = "Issue"
	methodVerify       = "Verify"
	msgIssuingToken    = "issuing session token"
	msgValidatingToken = "validating token"
	msgTokenGenerated  = "token generated successfully"
	msgTokenValidated  = "token validated successfully"
	msgTokenExpired    = "token has expired"
	msgEmptySecretKey  = "empty secret key provided"
	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken       = "error parsing token"
	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// UserClaims - снимок пользователя в полезной нагрузке токена.
type UserClaims struct {
	ID        string    `json:"_id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"createdOn"`
}

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	User UserClaims `json:"user"`
	jwt.RegisteredClaims
}

// JWTOption настраивает ServiceJWT.
type JWTOption func(*ServiceJWT)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) JWTOption {
	return func(s *ServiceJWT) {
		if now != nil {
			s.now = now
		}
	}
}

// ServiceJWT реализует TokenService на HS256.
type ServiceJWT struct {
	config services.JWTConfig
	now    func() time.Time
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, tokenTTL time.Duration, opts ...JWTOption) *ServiceJWT {
	s := &ServiceJWT{
		config: services.JWTConfig{
			SecretKey: []byte(secretKey),
			TokenTTL:  tokenTTL,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func identityToClaims(identity entities.Identity) UserClaims {
	return UserClaims{
		ID:        identity.ID,
		FullName:  identity.FullName,
		Email:     identity.Email,
		CreatedOn: identity.CreatedOn,
	}
}

func claimsToDomain(claims *Claims) *services.JWTClaims {
	var expiresAt, issuedAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return &services.JWTClaims{
		TokenID: claims.ID,
		Identity: entities.Identity{
			ID:        claims.User.ID,
			FullName:  claims.User.FullName,
			Email:     claims.User.Email,
			CreatedOn: claims.User.CreatedOn,
		},
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
}

// Issue подписывает токен со снимком пользователя, exp = now + TTL и уникальным jti.
// iat и exp в JWT хранятся в целых секундах, поэтому момент выпуска усекается
// до секунды: токен истекает в floor(now) + TTL, не позже now + TTL.
func (s *ServiceJWT) Issue(ctx context.Context, identity entities.Identity) (string, *services.JWTClaims, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssue),
		zap.String("userID", identity.ID),
	)
	log.Debug(ctx, msgIssuingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, msgEmptySecretKey)
		return "", nil, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	now := s.now().Truncate(time.Second)
	jwtClaims := &Claims{
		User: identityToClaims(identity),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", nil, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrGeneratingJWTToken, err)
	}

	domainClaims := claimsToDomain(jwtClaims)
	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", domainClaims.ExpiresAt))
	return tokenString, domainClaims, nil
}

// Verify проверяет подпись, алгоритм и срок действия токена.
// Токен недействителен начиная с момента exp.
func (s *ServiceJWT) Verify(ctx context.Context, tokenString string) (*services.JWTClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerify))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsingToken, services.ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	if claims.User.ID == "" {
		log.Debug(ctx, "user id claim is empty")
		return nil, fmt.Errorf("%s: %w: empty user id", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("userID", claims.User.ID))
	return claimsToDomain(claims), nil
}
