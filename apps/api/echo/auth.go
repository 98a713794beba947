package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/core/account"
)

const (
	contextTokenKey   = "userToken"
	contextProfileKey = "profile"
)

var NowFunc = time.Now // mockable

// Claims represents the authorization claims transmitted via a JWT.
// Subject is the identity provider UID.
type Claims struct {
	jwt.StandardClaims
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Picture  string `json:"picture,omitempty"`
	Provider string `json:"provider,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Identity returns the user described by the claims.
func (c Claims) Identity() account.Identity {
	return account.Identity{
		UID:         c.Subject,
		DisplayName: c.Name,
		Email:       c.Email,
		PhotoURL:    c.Picture,
		ProviderID:  c.Provider,
	}
}

type authenticator struct {
	config middleware.JWTConfig
}

func newAuthenticator(conf *core.Config) *authenticator {
	return &authenticator{
		config: middleware.JWTConfig{
			SigningKey:    []byte(conf.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(Claims),
		},
	}
}

// GetUserClaims returns the claims of a user with the given role.
func GetUserClaims(conf *core.Config, id account.Identity, role string) *Claims {
	now := NowFunc()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   id.UID,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:     id.DisplayName,
		Email:    id.Email,
		Picture:  id.PhotoURL,
		Provider: id.ProviderID,
		Role:     role,
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// profileMiddleware loads the registered profile of the authenticated user into the context.
func profileMiddleware(svc *account.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			prof, err := svc.Get(ctx.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Cause(err) == account.ErrNotFound {
					return errNotRegistered
				}
				return errors.Wrap(err, "getting profile")
			}
			ctx.Set(contextProfileKey, prof)
			return next(ctx)
		}
	}
}

func getContextProfile(ctx echo.Context) (account.Profile, error) {
	if prof, ok := ctx.Get(contextProfileKey).(account.Profile); ok {
		return prof, nil
	}
	return account.Profile{}, errUnauthorized
}
