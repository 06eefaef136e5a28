package auth

import (
	"errors"
	"time"

	"contactbook/config"
	"contactbook/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
)

// signedClaims is the JWT payload. The purpose is part of the signed body so a
// token issued for one flow can never be replayed in another.
type signedClaims struct {
	Purpose  service.Purpose   `json:"purpose"`
	Password string            `json:"pwd,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte
	ttls   map[service.Purpose]time.Duration
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Signing == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}
	if cfg.Auth == nil {
		return nil, errors.New("auth config must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Signing),
		ttls: map[service.Purpose]time.Duration{
			service.PurposeSession:           cfg.Auth.SessionTTL,
			service.PurposeEmailVerification: cfg.Auth.VerificationTTL,
			service.PurposePasswordReset:     cfg.Auth.ResetTTL,
		},
		now: time.Now,
	}, nil
}

// Issue signs the claims for the given purpose.
func (s *jwtService) Issue(claims *service.TokenClaims, purpose service.Purpose, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = s.ttls[purpose]
	}

	now := s.now()
	payload := signedClaims{
		Purpose:  purpose,
		Password: claims.Password,
		Extra:    claims.Extra,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)

	return token.SignedString(s.secret)
}

// Verify parses the token and checks signature, algorithm, expiry and purpose.
func (s *jwtService) Verify(tokenString string, purpose service.Purpose) (*service.TokenClaims, error) {
	var payload signedClaims
	_, err := jwt.ParseWithClaims(tokenString, &payload, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classifyParseError(err)
	}

	if payload.Purpose != purpose {
		return nil, service.ErrInvalidToken
	}
	if payload.Subject == "" {
		return nil, service.ErrMalformedToken
	}
	if purpose == service.PurposePasswordReset && payload.Password == "" {
		return nil, service.ErrMalformedToken
	}

	claims := &service.TokenClaims{
		Subject:  payload.Subject,
		Password: payload.Password,
		Extra:    payload.Extra,
	}
	if payload.IssuedAt != nil {
		claims.IssuedAt = payload.IssuedAt.Time
	}
	if payload.ExpiresAt != nil {
		claims.ExpiresAt = payload.ExpiresAt.Time
	}

	return claims, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return service.ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return service.ErrMalformedToken
	default:
		return service.ErrInvalidToken
	}
}
