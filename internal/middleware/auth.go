package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/avdeyev/postline/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the JWT for browser-style clients.
// API clients send the same token as a bearer Authorization header instead.
const SessionCookieName = "session"

// tokenFromRequest pulls the JWT out of the Authorization header or, failing
// that, the session cookie.
func tokenFromRequest(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}
	cookie, err := c.Cookie(SessionCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

func parseClaims(tokenString, jwtSecret string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// SessionUser resolves the current viewer when a valid token is present and
// stores the claims in the context. Requests without (or with broken) tokens
// pass through anonymously; handlers that need an identity sit behind
// RequireLogin or JWTAuth.
func SessionUser(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tokenString := tokenFromRequest(c); tokenString != "" {
				if claims, err := parseClaims(tokenString, jwtSecret); err == nil {
					c.Set("user", claims)
				}
			}
			return next(c)
		}
	}
}

// RequireLogin redirects anonymous requests to the signin flow, preserving the
// originally requested URI in the next parameter so the client can resume there
// after authenticating.
func RequireLogin(signinPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get("user").(*models.JwtCustomClaims); !ok {
				target := signinPath + "?next=" + url.QueryEscape(c.Request().RequestURI)
				return c.Redirect(http.StatusFound, target)
			}
			return next(c)
		}
	}
}

// JWTAuth checks for a valid JWT and extracts user claims, rejecting the
// request outright when there is none. Used on the JSON API surface where a 401
// beats a redirect.
func JWTAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := tokenFromRequest(c)
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			claims, err := parseClaims(tokenString, jwtSecret)
			if err != nil {
				if err == jwt.ErrSignatureInvalid {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token signature")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set("user", claims)
			return next(c)
		}
	}
}
