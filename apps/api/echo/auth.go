package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/mkabeya/grove/core"
)

const tokenContextKey = "userToken"

// Claims represents the authorization claims transmitted via a JWT.
// Subject carries the identity provider's stable user identifier, which is the
// userId used throughout the system.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
}

// TokenAuth verifies the bearer credential on each request and exposes the
// resulting claims. It is built once at process start from config and passed
// to the server as a dependency, never referenced as ambient global state.
type TokenAuth struct {
	appName         string
	signingKey      []byte
	expirationDelta time.Duration
	jwtConfig       middleware.JWTConfig
}

func NewTokenAuth(conf *core.Config) *TokenAuth {
	auth := &TokenAuth{
		appName:         conf.AppName,
		signingKey:      []byte(conf.SecretKey),
		expirationDelta: conf.Server.JWTExpirationDelta,
	}
	auth.jwtConfig = middleware.JWTConfig{
		SigningKey:    auth.signingKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		Claims:        new(Claims),
	}
	return auth
}

// Middleware returns the echo middleware enforcing a valid bearer token.
func (auth *TokenAuth) Middleware() echo.MiddlewareFunc {
	return middleware.JWTWithConfig(auth.jwtConfig)
}

// NewClaims builds claims for the given identity-provider subject.
func (auth *TokenAuth) NewClaims(subject, email string) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    auth.appName,
			Subject:   subject,
			ExpiresAt: now.Add(auth.expirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: email,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func (auth *TokenAuth) GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(auth.jwtConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(auth.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(tokenContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextSubject returns the authenticated caller's stable user identifier.
func getContextSubject(ctx echo.Context) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errUnauthorized
	}
	return claims.Subject, nil
}
