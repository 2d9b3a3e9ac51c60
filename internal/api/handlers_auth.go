package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"evalgo.org/emulium/internal/auth"
	"evalgo.org/emulium/models"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request. The username is
// needed because refresh tokens are opaque; only the bcrypt hash on the
// user document can confirm one.
type RefreshRequest struct {
	Username     string `json:"username" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LoginResponse represents a successful login or refresh response
type LoginResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	ExpiresAt    time.Time            `json:"expires_at"`
	TokenType    string               `json:"token_type"`
}

// login handles POST /api/v1/auth/login
// @Summary User login
// @Description Authenticate user with username and password, returns JWT tokens
// @Tags Authentication
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Successfully logged in"
// @Failure 400 {object} APIError "Bad request - Invalid credentials format"
// @Failure 401 {object} APIError "Unauthorized - Invalid username or password"
// @Failure 500 {object} APIError "Internal server error"
// @Router /auth/login [post]
func (s *Server) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}

	ctx := c.Request().Context()

	// Get user by username
	user, err := s.storage.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}

	// Check if user is enabled
	if !user.Enabled {
		return echo.NewHTTPError(http.StatusUnauthorized, "user account is disabled")
	}

	// Verify password
	if err := auth.ComparePassword(req.Password, user.PasswordHash); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}

	// Generate token pair
	jwtService := auth.NewJWTService(s.config)
	tokenPair, refreshToken, err := jwtService.GenerateTokenPair(user)
	if err != nil {
		return InternalError("Failed to generate tokens", err.Error())
	}

	// Store the refresh token hash on the user document. Logging in
	// again invalidates the previous refresh token.
	hashedRefreshToken, err := jwtService.HashRefreshToken(refreshToken)
	if err != nil {
		return InternalError("Failed to hash refresh token", err.Error())
	}

	now := time.Now().UTC()
	user.RefreshTokenHash = hashedRefreshToken
	user.LastLoginAt = &now
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return InternalError("Failed to save session", err.Error())
	}

	return c.JSON(http.StatusOK, LoginResponse{
		User:         user.Response(),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt,
		TokenType:    tokenPair.TokenType,
	})
}

// register handles POST /api/v1/auth/register
// @Summary Register new user
// @Description Register a new user account (admin only)
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body models.CreateUserRequest true "User registration data"
// @Success 201 {object} models.UserResponse "Successfully created user"
// @Failure 400 {object} APIError "Bad request - Invalid data or validation errors"
// @Failure 409 {object} APIError "Conflict - Username or email already exists"
// @Failure 500 {object} APIError "Internal server error"
// @Router /auth/register [post]
func (s *Server) register(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}

	if errs := s.validator.ValidateStruct(&req); len(errs) > 0 {
		return ValidationFailedError("User validation failed", errs)
	}

	ctx := c.Request().Context()

	// Check if username already exists
	if _, err := s.storage.GetUserByUsername(ctx, req.Username); err == nil {
		return ConflictError("Username already exists", req.Username)
	}

	// Check if email already exists
	if req.Email != "" {
		if _, err := s.storage.GetUserByEmail(ctx, req.Email); err == nil {
			return ConflictError("Email already exists", req.Email)
		}
	}

	// Hash password
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return InternalError("Failed to hash password", err.Error())
	}

	user := models.NewUser(req.Username, req.Email, req.Roles)
	user.PasswordHash = passwordHash

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return InternalError("Failed to create user", err.Error())
	}

	return c.JSON(http.StatusCreated, user.Response())
}

// refresh handles POST /api/v1/auth/refresh
// @Summary Refresh access token
// @Description Get a new access token using a refresh token. The refresh token is rotated on every use.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param refresh body RefreshRequest true "Refresh token"
// @Success 200 {object} LoginResponse "Successfully refreshed token"
// @Failure 400 {object} APIError "Bad request - Invalid refresh token format"
// @Failure 401 {object} APIError "Unauthorized - Invalid or expired refresh token"
// @Failure 500 {object} APIError "Internal server error"
// @Router /auth/refresh [post]
func (s *Server) refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}
	if req.Username == "" || req.RefreshToken == "" {
		return BadRequestError("Invalid request body", "username and refresh_token are required")
	}

	ctx := c.Request().Context()

	user, err := s.storage.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}
	if !user.Enabled {
		return echo.NewHTTPError(http.StatusUnauthorized, "user account is disabled")
	}
	if user.RefreshTokenHash == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	jwtService := auth.NewJWTService(s.config)
	if err := jwtService.CompareRefreshToken(req.RefreshToken, user.RefreshTokenHash); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	// Rotate: issue a new pair and replace the stored hash so the
	// presented token cannot be replayed.
	tokenPair, refreshToken, err := jwtService.GenerateTokenPair(user)
	if err != nil {
		return InternalError("Failed to generate tokens", err.Error())
	}
	hashedRefreshToken, err := jwtService.HashRefreshToken(refreshToken)
	if err != nil {
		return InternalError("Failed to hash refresh token", err.Error())
	}

	user.RefreshTokenHash = hashedRefreshToken
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return InternalError("Failed to save session", err.Error())
	}

	return c.JSON(http.StatusOK, LoginResponse{
		User:         user.Response(),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt,
		TokenType:    tokenPair.TokenType,
	})
}

// logout handles POST /api/v1/auth/logout
// @Summary Logout user
// @Description Revoke the active refresh token and logout
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse "Successfully logged out"
// @Failure 401 {object} APIError "Unauthorized"
// @Failure 500 {object} APIError "Internal server error"
// @Router /auth/logout [post]
func (s *Server) logout(c echo.Context) error {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	ctx := c.Request().Context()

	// Service tokens have no stored session to revoke.
	if user, err := s.storage.GetUser(ctx, userID); err == nil && user.RefreshTokenHash != "" {
		user.RefreshTokenHash = ""
		if err := s.storage.SaveUser(ctx, user); err != nil {
			return InternalError("Failed to revoke session", err.Error())
		}
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "successfully logged out",
	})
}

// me handles GET /api/v1/auth/me
// @Summary Get current user
// @Description Get information about the currently authenticated user
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse "Current user information"
// @Failure 401 {object} APIError "Unauthorized"
// @Failure 500 {object} APIError "Internal server error"
// @Router /auth/me [get]
func (s *Server) me(c echo.Context) error {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	user, err := s.storage.GetUser(c.Request().Context(), userID)
	if err != nil {
		if isNotFound(err) {
			return NotFoundError("User", userID)
		}
		return InternalError("Failed to get user", err.Error())
	}

	return c.JSON(http.StatusOK, user.Response())
}
