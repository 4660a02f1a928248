package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/hvacsite/internal/logger"
	"github.com/ignatzorin/hvacsite/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Silence()
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func TestCORSMiddleware_AllowList(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://hvac.example"}))
	r.GET("/api/products", ok)

	w := serve(r, http.MethodGet, "/api/products", http.Header{"Origin": {"https://hvac.example"}})
	assert.Equal(t, "https://hvac.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "/api/products", http.Header{"Origin": {"https://evil.example"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPublicCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://hvac.example"}, "/api/quotes"))
	quotes := r.Group("/api/quotes", PublicCORS())
	quotes.POST("", ok)
	quotes.OPTIONS("", ok)

	w := serve(r, http.MethodOptions, "/api/quotes", http.Header{"Origin": {"https://partner.example"}})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodPost, "/api/quotes", http.Header{"Origin": {"https://partner.example"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAdminOnly(t *testing.T) {
	tokens := service.NewTokenVerifier("test-secret-test-secret-test-secret")
	r := gin.New()
	r.GET("/admin", AdminOnly(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextSubjectKey))
	})

	w := serve(r, http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/admin", http.Header{"Authorization": {"Bearer garbage"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	visitor, err := tokens.Issue("user-1", "visitor", time.Hour)
	require.NoError(t, err)
	w = serve(r, http.MethodGet, "/admin", http.Header{"Authorization": {"Bearer " + visitor}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin, err := tokens.Issue("admin-1", service.RoleAdmin, time.Hour)
	require.NoError(t, err)
	w = serve(r, http.MethodGet, "/admin", http.Header{"Authorization": {"Bearer " + admin}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin-1", w.Body.String())

	w = serve(r, http.MethodGet, "/admin?token="+admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUUIDValidator(t *testing.T) {
	r := gin.New()
	r.GET("/products/:id", UUIDValidator("id"), ok)

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/products/not-a-uuid", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/products/0b5f3b8e-5a43-4d38-9f3e-3f7f0c1d2a11", nil).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.POST("/api/contact", RateLimitMiddleware(1, time.Minute), ok)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/contact", nil).Code)
	w := serve(r, http.MethodPost, "/api/contact", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestRecovery_ReturnsEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestErrorHandler_UsesLastError(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/fail", func(c *gin.Context) { _ = c.Error(assert.AnError) })

	w := serve(r, http.MethodGet, "/fail", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
