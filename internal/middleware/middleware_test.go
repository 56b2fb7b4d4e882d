package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reels_monetization/internal/security"
	"reels_monetization/internal/utils"
)

const secret = "middleware-secret"

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", handlers...)
	return r
}

func TestJWTAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	r := newEngine(JWTAuthMiddleware(secret), func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestJWTAuthMiddlewareSetsContext(t *testing.T) {
	token, err := utils.GenerateJWT(7, "alice", secret)
	require.NoError(t, err)

	var (
		userID   any
		key      string
		username string
		ip       string
	)
	r := newEngine(JWTAuthMiddleware(secret), func(c *gin.Context) {
		userID, _ = c.Get(ContextUserID)
		key = c.GetString(ContextLedgerKey)
		username = c.GetString(ContextUsername)
		ip = security.IPFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.RemoteAddr = "10.1.2.3:4567"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), userID)
	assert.Equal(t, "7", key)
	assert.Equal(t, "alice", username)
	assert.Equal(t, "10.1.2.3", ip)
}

func TestMetricsCountsByRouteAndCode(t *testing.T) {
	r := newEngine(Metrics(), func(c *gin.Context) { c.Status(http.StatusTeapot) })

	before := testutil.ToFloat64(httpRequestsError.WithLabelValues("/ping", "418"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsError.WithLabelValues("/ping", "418")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/ping", "418")), 1.0)
}
