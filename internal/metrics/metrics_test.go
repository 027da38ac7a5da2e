package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := NewCollector()

	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/api/clients/:id", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/clients/"+id, nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}

	body := scrape(t, c)
	assert.Contains(t, body, `mini_crm_http_requests_total{method="GET",route="/api/clients/:id",status="204"} 2`)
	assert.Contains(t, body, "mini_crm_http_inflight_requests 0")
}

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestHandlerExposesCounters(t *testing.T) {
	c := NewCollector()
	c.AuthAttempt("login", "rejected")
	c.ReminderPublished()

	body := scrape(t, c)
	assert.Contains(t, body, `mini_crm_auth_attempts_total{op="login",result="rejected"} 1`)
	assert.Contains(t, body, "mini_crm_notifier_reminders_published_total 1")
}
