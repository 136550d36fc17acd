package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/avdeyev/postline/internal/models"
	"github.com/avdeyev/postline/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FirebaseAuth creates an Echo middleware to verify Firebase ID tokens. The
// verified Firebase UID is resolved to a local account so downstream handlers
// see the same claims shape regardless of auth mode.
func FirebaseAuth(authClient *auth.Client, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			idToken := tokenParts[1]

			token, err := authClient.VerifyIDToken(c.Request().Context(), idToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("Invalid or expired ID token: %v", err))
			}

			user, err := userRepo.GetUserByFirebaseUID(token.UID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "No local account for this identity")
			}

			c.Set("firebaseUID", token.UID)
			c.Set("user", &models.JwtCustomClaims{UserID: user.ID, Username: user.Username})

			return next(c)
		}
	}
}
