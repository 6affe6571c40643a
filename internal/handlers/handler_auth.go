package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/spems-app/spems_backend/internal/apperrors"
	"github.com/spems-app/spems_backend/internal/core/domain"
	portssvc "github.com/spems-app/spems_backend/internal/core/ports/services"
	"github.com/spems-app/spems_backend/internal/dto"
	"github.com/spems-app/spems_backend/internal/middleware"
	"github.com/spems-app/spems_backend/internal/utils"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	googleOAuthService portssvc.GoogleOAuthSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, gs portssvc.GoogleOAuthSvcFacade) *AuthHandler {
	return &AuthHandler{
		userService:        us,
		tokenService:       ts,
		googleOAuthService: gs,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.Token, services.GoogleOAuth)

	// Credential endpoints are rate limited per IP.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", limitMiddleware, h.Register)
		auth.POST("/login", limitMiddleware, h.Login)
		auth.GET("/google/login", h.GoogleLoginURL)
		auth.POST("/google/exchange-code", h.GoogleExchangeCode)
	}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user account and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to register user", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate token after registration", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// Same response for unknown email and wrong password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if user.PasswordHash == "" || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate token on login", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}

// GoogleLoginURL godoc
// @Summary Get the Google login redirect URL
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Failed to prepare login URL"
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLoginURL(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.googleOAuthService.GenerateStateString(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare login URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":   h.googleOAuthService.GetGoogleLoginURL(c.Request.Context(), state),
		"state": state,
	})
}

// GoogleExchangeCode godoc
// @Summary Exchange a Google authorization code or ID token for an app token
// @Description Validates the Google identity, creating the account on first login, and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param exchange body dto.GoogleExchangeCodeRequest true "Authorization code or ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Google identity could not be verified"
// @Router /auth/google/exchange-code [post]
func (h *AuthHandler) GoogleExchangeCode(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.Code == "" && req.IDToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either code or idToken is required"})
		return
	}

	info, err := h.resolveGoogleIdentity(c, req)
	if err != nil {
		logger.Warn("Google identity verification failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google identity could not be verified"})
		return
	}

	user, err := h.userService.FindOrCreateOAuthUser(ctx, *info)
	if err != nil {
		logger.Error("Failed to resolve oauth user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in with Google"})
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate token for oauth user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}

// resolveGoogleIdentity turns either an ID token or an authorization code
// into a verified Google profile.
func (h *AuthHandler) resolveGoogleIdentity(c *gin.Context, req dto.GoogleExchangeCodeRequest) (*domain.GoogleUserInfo, error) {
	ctx := c.Request.Context()

	if req.IDToken != "" {
		payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, req.IDToken)
		if err != nil {
			return nil, err
		}
		info := &domain.GoogleUserInfo{}
		info.ID, _ = payload.Claims["sub"].(string)
		info.Email, _ = payload.Claims["email"].(string)
		info.VerifiedEmail, _ = payload.Claims["email_verified"].(bool)
		info.Name, _ = payload.Claims["name"].(string)
		info.Picture, _ = payload.Claims["picture"].(string)
		return info, nil
	}

	token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	return h.googleOAuthService.GetUserInfo(ctx, token)
}
