//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carmarket-engine/internal/handler/middleware"
	"carmarket-engine/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-gateway-secret"

func signAssertion(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func setupRouter() (*gin.Engine, *middleware.PrincipalMiddleware) {
	gin.SetMode(gin.TestMode)
	m := middleware.NewPrincipalMiddleware(config.GatewayConfig{AssertionSecret: testSecret})
	router := gin.New()
	router.GET("/protected", m.RequirePrincipal(), func(c *gin.Context) {
		id, ok := middleware.GetPrincipalID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no principal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"principal_id": id.String(),
			"role":         middleware.GetPrincipalRole(c),
		})
	})
	return router, m
}

func perform(router *gin.Engine, assertion string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if assertion != "" {
		req.Header.Set("X-Principal-Assertion", assertion)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequirePrincipal(t *testing.T) {
	router, _ := setupRouter()
	principalID := uuid.New()

	t.Run("valid assertion passes principal into context", func(t *testing.T) {
		assertion := signAssertion(t, testSecret, jwt.MapClaims{
			"sub":  principalID.String(),
			"role": "seller",
			"exp":  time.Now().Add(time.Minute).Unix(),
		})
		w := perform(router, assertion)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), principalID.String())
		assert.Contains(t, w.Body.String(), "seller")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		w := perform(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":{"message":"Principal assertion required"}}`, w.Body.String())
	})

	t.Run("rejection records the cause for the error collector", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		m := middleware.NewPrincipalMiddleware(config.GatewayConfig{AssertionSecret: testSecret})
		var collected int
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Next()
			collected = len(c.Errors)
		})
		r.GET("/protected", m.RequirePrincipal(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("X-Principal-Assertion", "not.a.token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, 1, collected)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		assertion := signAssertion(t, "some-other-secret", jwt.MapClaims{
			"sub": principalID.String(),
		})
		w := perform(router, assertion)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired assertion is rejected", func(t *testing.T) {
		assertion := signAssertion(t, testSecret, jwt.MapClaims{
			"sub": principalID.String(),
			"exp": time.Now().Add(-time.Minute).Unix(),
		})
		w := perform(router, assertion)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unsigned token is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": principalID.String(),
		})
		unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		w := perform(router, unsigned)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing subject is rejected", func(t *testing.T) {
		assertion := signAssertion(t, testSecret, jwt.MapClaims{"role": "buyer"})
		w := perform(router, assertion)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-uuid subject is rejected", func(t *testing.T) {
		assertion := signAssertion(t, testSecret, jwt.MapClaims{"sub": "bob"})
		w := perform(router, assertion)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage assertion is rejected", func(t *testing.T) {
		w := perform(router, "not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
