package handlers

import (
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/avdeyev/postline/internal/middleware"
	"github.com/avdeyev/postline/internal/models"
	"github.com/avdeyev/postline/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   *auth.Client // nil when running in local-JWT mode
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuthClient *auth.Client, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuthClient,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Signup handles local user registration with username, email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Username already taken")
	}
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return h.issueSession(c, user, http.StatusCreated)
}

// SignIn verifies credentials and issues a session token. Browser clients that
// arrived here via a login redirect get sent back to where they were going.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	return h.issueSession(c, user, http.StatusOK)
}

// FirebaseLogin exchanges a verified Firebase ID token for a local account and
// session. First-time identities get an account created on the fly.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "Federated login is not configured")
	}

	var req models.FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
	}

	user, err := h.userRepository.GetUserByFirebaseUID(token.UID)
	if err != nil {
		email, _ := token.Claims["email"].(string)

		// An account registered locally with the same email gets linked to
		// the Firebase identity instead of duplicated.
		if existing, err := h.userRepository.GetUserByEmail(email); email != "" && err == nil {
			existing.FirebaseUID = token.UID
			if err := h.userRepository.UpdateUser(existing); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			return h.issueSession(c, existing, http.StatusOK)
		}

		username := req.Username
		if username == "" {
			username = usernameFromEmail(email, token.UID)
		}
		user = &models.User{
			Username:    username,
			Email:       email,
			FirebaseUID: token.UID,
		}
		if err := h.userRepository.CreateUser(user); err != nil {
			return echo.NewHTTPError(http.StatusConflict, "Could not create account for this identity")
		}
	}

	return h.issueSession(c, user, http.StatusOK)
}

// issueSession signs a JWT for the user, sets the session cookie, and either
// redirects to the preserved destination or returns the token payload.
func (h *AuthHandler) issueSession(c echo.Context, user *models.User, status int) error {
	tokenString, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    tokenString,
		Path:     "/",
		HttpOnly: true,
	})

	if next := c.QueryParam("next"); next != "" && strings.HasPrefix(next, "/") {
		return c.Redirect(http.StatusFound, next)
	}

	return c.JSON(status, echo.Map{
		"success": true,
		"data": echo.Map{
			"token": tokenString,
			"user":  user.ToCompact(),
		},
	})
}

func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

func usernameFromEmail(email, fallback string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return fallback
}
