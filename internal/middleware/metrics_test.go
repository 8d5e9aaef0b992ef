package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/Faisalali0159/besofy/internal/metrics"
	"github.com/Faisalali0159/besofy/internal/middleware"
)

func metricsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Metrics())
	router.GET("/api/news", func(c *gin.Context) { c.JSON(http.StatusOK, []gin.H{}) })
	router.GET("/api/news/:id", func(c *gin.Context) {
		if c.Param("id") == "missing" {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	router.POST("/api/news", func(c *gin.Context) { c.JSON(http.StatusCreated, gin.H{"id": "new"}) })
	router.GET("/metrics", func(c *gin.Context) { c.String(http.StatusOK, "# metrics") })
	router.GET("/live", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "alive"}) })
	return router
}

func requestsTotal(method, path, status string) float64 {
	return testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(method, path, status))
}

func serve(router *gin.Engine, method, target string) int {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w.Code
}

func TestMetrics(t *testing.T) {
	router := metricsRouter()

	t.Run("labels article reads by route template", func(t *testing.T) {
		before := requestsTotal("GET", "/api/news/:id", "200")
		inFlight := testutil.ToFloat64(metrics.HTTPRequestsInFlight)

		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/news/a1"))
		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/news/b2"))

		assert.Equal(t, before+2, requestsTotal("GET", "/api/news/:id", "200"))
		assert.Zero(t, requestsTotal("GET", "/api/news/a1", "200"))
		assert.Equal(t, inFlight, testutil.ToFloat64(metrics.HTTPRequestsInFlight))
	})

	t.Run("records handler 404s under the route", func(t *testing.T) {
		before := requestsTotal("GET", "/api/news/:id", "404")

		assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/api/news/missing"))

		assert.Equal(t, before+1, requestsTotal("GET", "/api/news/:id", "404"))
	})

	t.Run("unknown urls share one label", func(t *testing.T) {
		before := requestsTotal("GET", middleware.UnmatchedPath, "404")

		assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/wp-admin/setup.php"))
		assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/api/news/a1/comments"))

		assert.Equal(t, before+2, requestsTotal("GET", middleware.UnmatchedPath, "404"))
	})

	t.Run("records creates", func(t *testing.T) {
		before := requestsTotal("POST", "/api/news", "201")

		assert.Equal(t, http.StatusCreated, serve(router, http.MethodPost, "/api/news"))

		assert.Equal(t, before+1, requestsTotal("POST", "/api/news", "201"))
	})

	t.Run("skips scrapes and liveness probes", func(t *testing.T) {
		scrapes := requestsTotal("GET", "/metrics", "200")
		probes := requestsTotal("GET", "/live", "200")

		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/metrics"))
		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/live"))

		assert.Equal(t, scrapes, requestsTotal("GET", "/metrics", "200"))
		assert.Equal(t, probes, requestsTotal("GET", "/live", "200"))
	})
}
