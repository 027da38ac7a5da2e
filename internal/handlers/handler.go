package handlers

import (
	"context"
	"net/http"
	"time"

	"mini_crm/internal/logger"
	"mini_crm/internal/metrics"
	"mini_crm/internal/notify"
	"mini_crm/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger

	db           Pinger
	metrics      *metrics.Collector
	hub          *notify.Hub
	authLimiter  *ipRateLimiter
	allowOrigins []string
	feedInterval time.Duration
}

// Option customises optional collaborators of the handler.
type Option func(*Handler)

func WithPinger(p Pinger) Option { return func(h *Handler) { h.db = p } }

func WithMetrics(m *metrics.Collector) Option { return func(h *Handler) { h.metrics = m } }

func WithHub(hub *notify.Hub) Option { return func(h *Handler) { h.hub = hub } }

// WithAuthRateLimit limits /api/auth requests per client IP.
func WithAuthRateLimit(rps float64, burst int) Option {
	return func(h *Handler) { h.authLimiter = newIPRateLimiter(rps, burst) }
}

func WithAllowOrigins(origins []string) Option {
	return func(h *Handler) { h.allowOrigins = origins }
}

// WithFeedInterval sets the default period of websocket dashboard snapshots.
func WithFeedInterval(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.feedInterval = d
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	h := &Handler{services: services, log: log, feedInterval: defaultInterval}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	router.Use(gin.Recovery(), h.corsMiddleware(), h.requestLogger)
	if h.metrics != nil {
		router.Use(h.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	router.GET("/", h.index)
	router.GET("/health", h.health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if len(h.allowOrigins) == 0 || (len(h.allowOrigins) == 1 && h.allowOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = h.allowOrigins
	}
	return cors.New(cfg)
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	if h.authLimiter != nil {
		auth.Use(h.rateLimit(h.authLimiter))
	}
	{
		auth.POST("/signup", h.signUp)
		auth.POST("/login", h.login)
		auth.GET("/me", h.authMiddleware, h.me)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api", h.authMiddleware)
	{
		h.registerClientRoutes(api)
		h.registerProjectRoutes(api)
		h.registerInteractionRoutes(api)
		h.registerReminderRoutes(api)
		api.GET("/dashboard", h.getDashboard)
	}

	// browsers cannot set headers on websocket upgrades
	r.GET("/api/ws", h.wsAuthMiddleware, h.wsConnect)
}

func (h *Handler) registerClientRoutes(api *gin.RouterGroup) {
	clients := api.Group("/clients")
	{
		clients.GET("", h.listClients)
		clients.POST("", h.createClient)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", h.deleteClient)
	}
}

func (h *Handler) registerProjectRoutes(api *gin.RouterGroup) {
	projects := api.Group("/projects")
	{
		projects.GET("", h.listProjects)
		projects.POST("", h.createProject)
		projects.GET("/:id", h.getProject)
		projects.PUT("/:id", h.updateProject)
		projects.DELETE("/:id", h.deleteProject)
	}
}

func (h *Handler) registerInteractionRoutes(api *gin.RouterGroup) {
	interactions := api.Group("/interactions")
	{
		interactions.GET("", h.listInteractions)
		interactions.POST("", h.createInteraction)
		interactions.GET("/:id", h.getInteraction)
		interactions.PUT("/:id", h.updateInteraction)
		interactions.DELETE("/:id", h.deleteInteraction)
	}
}

func (h *Handler) registerReminderRoutes(api *gin.RouterGroup) {
	reminders := api.Group("/reminders")
	{
		reminders.GET("", h.listReminders)
		reminders.POST("", h.createReminder)
		reminders.GET("/upcoming", h.upcomingReminders)
		reminders.GET("/:id", h.getReminder)
		reminders.PUT("/:id", h.updateReminder)
		reminders.DELETE("/:id", h.deleteReminder)
	}
}

// @Summary      API banner
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) index(c *gin.Context) {
	c.String(http.StatusOK, "Mini CRM API Running")
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.log.Errorw("health_db_ping_failed", "err", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
