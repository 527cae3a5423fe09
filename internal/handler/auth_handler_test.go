package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type authServiceMock struct {
	registerResp *models.UserInfo
	registerErr  error
	loginResp    *models.LoginResponse
	loginErr     error
	logoutErr    error
	lastLogin    models.LoginRequest
	logoutToken  string
}

func (m *authServiceMock) Register(ctx context.Context, req models.RegisterRequest) (*models.UserInfo, error) {
	return m.registerResp, m.registerErr
}

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	m.lastLogin = req
	return m.loginResp, m.loginErr
}

func (m *authServiceMock) Logout(ctx context.Context, token string) error {
	m.logoutToken = token
	return m.logoutErr
}

func authRouter(svc *authServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAuthHandler(svc, CookieConfig{Name: "sessionid"}, nil).Register(r.Group("/api"))
	return r
}

func TestAuthHandlerSignUp(t *testing.T) {
	svc := &authServiceMock{registerResp: &models.UserInfo{ID: "u-1", Username: "ana"}}
	rec := perform(authRouter(svc), http.MethodPost, "/api/register/", `{"username":"ana","password":"Timetable#2024"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), `"username":"ana"`)
}

func TestAuthHandlerSignUpValidation(t *testing.T) {
	svc := &authServiceMock{registerErr: appErrors.Validation("invalid registration payload", map[string]string{"password": "This password is too common."})}
	rec := perform(authRouter(svc), http.MethodPost, "/api/register/", `{"username":"ana","password":"password"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "too common")
}

func TestAuthHandlerLoginSetsCookie(t *testing.T) {
	svc := &authServiceMock{loginResp: &models.LoginResponse{
		UserInfo:    models.UserInfo{ID: "u-1", Username: "ana"},
		AccessToken: "token-123",
		ExpiresIn:   3600,
		ExpiresAt:   time.Now().Add(time.Hour),
	}}
	rec := perform(authRouter(svc), http.MethodPost, "/api/login/", `{"username":"ana","password":"secret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana", svc.lastLogin.Username)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ana", body["username"])
	assert.Equal(t, "token-123", body["access_token"])

	cookie := rec.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(cookie, "sessionid=token-123"))
	assert.Contains(t, cookie, "HttpOnly")
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	svc := &authServiceMock{loginErr: appErrors.Clone(appErrors.ErrInvalidCredentials, "")}
	rec := perform(authRouter(svc), http.MethodPost, "/api/login/", `{"username":"ana","password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid credentials", body["error"])
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
}

func TestAuthHandlerLogout(t *testing.T) {
	svc := &authServiceMock{logoutErr: errors.New("redis unavailable")}
	req := httptest.NewRequest(http.MethodPost, "/api/logout/", nil)
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: "token-123"})
	rec := httptest.NewRecorder()
	authRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Successfully logged out"}`, rec.Body.String())
	assert.Equal(t, "token-123", svc.logoutToken)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}
