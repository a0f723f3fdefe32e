package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "notekeeper/internal/errors"
)

// ContextUserIDKey is the echo context key under which the gate binds the
// verified caller's user id.
const ContextUserIDKey = "userID"

// Gate returns middleware that verifies the bearer token on every request and
// binds the caller's user id to the context. The raw Authorization header
// value is the token; there is no scheme prefix. Missing, malformed and
// expired tokens are all rejected with 401 before any handler runs.
func Gate(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.Parse(token)
		},
		SuccessHandler: func(c echo.Context) {
			if claims, ok := c.Get("user").(*Claims); ok {
				c.Set(ContextUserIDKey, claims.UserID)
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			message := "invalid token"
			code := "TOKEN_INVALID"
			switch {
			case errors.Is(err, ErrTokenExpired):
				message = "token is expired"
				code = "TOKEN_EXPIRED"
			case errors.Is(err, echojwt.ErrJWTMissing):
				message = "missing authorization token"
			}
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: message,
				Code:  code,
			})
		},
	})
}

// CallerID returns the user id bound by Gate, or empty if the request did not
// pass through it.
func CallerID(c echo.Context) string {
	id, _ := c.Get(ContextUserIDKey).(string)
	return id
}
