package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// every request to the same route must land in a single label set, no
// matter what the path parameters were
func TestMetricsMiddlewareLabelsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MetricsMiddleware())
	router.GET("/api/v1/campaigns/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, id := range []string{"camp-1", "camp-2", "camp-3"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/campaigns/"+id, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(responseTimeRESTAPI))
	assert.Equal(t, 1, testutil.CollectAndCount(RESTRequestMetricsTotal))
}
