package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/middleware"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/pkg/response"
)

type authService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.UserInfo, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

// CookieConfig controls the session cookie set on login.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service authService
	cookie  CookieConfig
	logger  *zap.Logger
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService, cookie CookieConfig, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{service: svc, cookie: cookie, logger: logger}
}

// Register mounts the account routes.
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/register/", h.SignUp)
	rg.POST("/login/", h.Login)
	rg.POST("/logout/", h.Logout)
}

// SignUp godoc
// @Summary Register an account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Registration payload"
// @Success 201 {object} models.UserInfo
// @Failure 400 {object} response.ErrorBody
// @Router /register/ [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate by username and password. Sets an HttpOnly session cookie.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} response.ErrorBody
// @Router /login/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	// Malformed bodies fall through to the generic credential failure.
	_ = c.ShouldBindJSON(&req)
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	maxAge := int(time.Until(res.ExpiresAt).Seconds())
	h.setCookie(c, res.AccessToken, maxAge)
	response.JSON(c, http.StatusOK, res)
}

// Logout godoc
// @Summary Logout current session
// @Description Revokes the session identified by the Bearer token or session cookie.
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.MessageBody
// @Router /logout/ [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.TokenFromRequest(c, h.cookie.Name)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		h.logger.Warn("failed to revoke session on logout", zap.Error(err))
	}
	h.setCookie(c, "", -1)
	response.Message(c, http.StatusOK, "Successfully logged out")
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	if h.cookie.Name == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
