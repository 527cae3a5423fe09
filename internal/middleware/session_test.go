package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/logger"
)

type stubAuthenticator struct {
	valid string
}

func (s stubAuthenticator) Authenticate(ctx context.Context, token string) (*models.JWTClaims, error) {
	if token != s.valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return &models.JWTClaims{UserID: "u-1", Username: "ana"}, nil
}

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", RequireSession(stubAuthenticator{valid: "good"}, "sessionid"), func(c *gin.Context) {
		c.String(http.StatusOK, ClaimsFromContext(c).Username)
	})
	return r
}

func TestRequireSession(t *testing.T) {
	cases := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"no credentials", func(*http.Request) {}, http.StatusUnauthorized},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, http.StatusOK},
		{"lowercase scheme", func(r *http.Request) { r.Header.Set("Authorization", "bearer good") }, http.StatusOK},
		{"wrong scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic good") }, http.StatusUnauthorized},
		{"bad token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer bad") }, http.StatusUnauthorized},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "sessionid", Value: "good"}) }, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tc.setup(req)
			rec := httptest.NewRecorder()
			protectedRouter().ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "ana", rec.Body.String())
			}
		})
	}
}

func TestRequireSessionErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()
	protectedRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UNAUTHORIZED", body["code"])
	assert.NotEmpty(t, body["error"])
}

func TestClaimsFromContextMissing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, ClaimsFromContext(c))
}

func TestRequireSessionTagsRequestLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/private", RequireSession(stubAuthenticator{valid: "good"}, ""), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(logger.UserIDKey))
	})

	req := httptest.NewRequest(http.MethodPost, "/private", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", rec.Body.String())
}
