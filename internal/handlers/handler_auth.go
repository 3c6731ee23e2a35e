package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/cardledger/card_ledger_app/internal/dto"
	"github.com/cardledger/card_ledger_app/internal/middleware"
	"github.com/cardledger/card_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication related requests. The application has a
// single operator, so login is a password check against a configured bcrypt
// hash rather than a user lookup.
type AuthHandler struct {
	passwordHash string
	jwtSecret    string
	jwtDuration  time.Duration
	jwtIssuer    string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		passwordHash: cfg.AdminPasswordHash,
		jwtSecret:    cfg.JWTSecret,
		jwtDuration:  cfg.JWTExpiryDuration,
		jwtIssuer:    cfg.JWTIssuer,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config) {
	h := NewAuthHandler(cfg)

	// Login is brute-forceable, so it gets its own tight limit.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
	}
}

// Login godoc
// @Summary Operator login
// @Description Checks the operator password and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if h.passwordHash == "" {
		logger.Error("Login attempted but no operator password is configured")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Login is not configured"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password)); err != nil {
		logger.Warn("Failed login attempt", slog.String("ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid password"})
		return
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "operator",
		Issuer:    h.jwtIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.jwtDuration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to issue token"})
		return
	}

	logger.Info("Operator logged in")
	c.JSON(http.StatusOK, dto.TokenResponse{
		Token:     signed,
		ExpiresIn: int(h.jwtDuration.Seconds()),
	})
}
