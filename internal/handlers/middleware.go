package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"mini_crm/internal/auth"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	userCtx = "user"

	msgNoToken         = "No token provided"
	msgInvalidToken    = "Invalid token"
	msgTooManyRequests = "Too many requests"
)

// authMiddleware requires "Authorization: Bearer <token>" and stores the
// verified identity on the context.
func (h *Handler) authMiddleware(c *gin.Context) {
	h.authenticate(c, bearerToken(c.GetHeader("Authorization")))
}

// wsAuthMiddleware also accepts the token as ?token=.
func (h *Handler) wsAuthMiddleware(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		token = c.Query("token")
	}
	h.authenticate(c, token)
}

func (h *Handler) authenticate(c *gin.Context, token string) {
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgNoToken})
		return
	}

	id, err := h.services.ParseToken(token)
	if err != nil {
		h.log.Debugw("auth_token_rejected", "err", err, "path", c.FullPath())
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgInvalidToken})
		return
	}

	c.Set(userCtx, id)
	c.Next()
}

// bearerToken extracts the token of a "Bearer <token>" header value.
func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// currentUser returns the identity set by the auth middleware.
func currentUser(c *gin.Context) auth.Identity {
	v, _ := c.Get(userCtx)
	id, _ := v.(auth.Identity)
	return id
}

// requestLogger logs one line per request once it has been served.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	status := c.Writer.Status()
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"latency", time.Since(start),
		"ip", c.ClientIP(),
	}
	if len(c.Errors) > 0 {
		fields = append(fields, "errors", c.Errors.String())
	}
	switch {
	case status >= http.StatusInternalServerError:
		h.log.Errorw("http_request", fields...)
	case status >= http.StatusBadRequest:
		h.log.Warnw("http_request", fields...)
	default:
		h.log.Infow("http_request", fields...)
	}
}

// ipRateLimiter keeps one token bucket per client IP.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// past this many tracked IPs the table is reset
const maxTrackedIPs = 10000

func newIPRateLimiter(rps float64, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (l *ipRateLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= maxTrackedIPs {
			l.limiters = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = lim
	}
	return lim
}

func (h *Handler) rateLimit(l *ipRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			h.log.Warnw("rate_limit_exceeded", "ip", c.ClientIP(), "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": msgTooManyRequests})
			return
		}
		c.Next()
	}
}
