package router

import (
	"net/http"
	"strings"
	"time"

	"vandra-service/internal/interface/handler"
	"vandra-service/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds what the router needs beyond the handlers
type Config struct {
	// FrontendURL may list several origins separated by commas.
	FrontendURL    string
	CronSecret     string
	InternalAPIKey string
	Development    bool
	Tokens         handler.TokenParser
	Gatherer       prometheus.Gatherer
}

// Handlers groups the HTTP handlers served by the API
type Handlers struct {
	Jobs    *handler.JobsHandler
	Auth    *handler.AuthHandler
	Chat    *handler.ChatHandler
	Flights *handler.FlightHandler
	Alerts  *handler.AlertHandler
}

// NewRouter builds the gin engine with every route registered
func NewRouter(cfg Config, h Handlers, log logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(cfg.FrontendURL),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Healthy")
	})

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")

	jobs := api.Group("/jobs", handler.JobAuth(cfg.CronSecret, cfg.InternalAPIKey, cfg.Development))
	{
		jobs.POST("/monitor-alerts", h.Jobs.MonitorAlerts)
		jobs.GET("/monitor-alerts", h.Jobs.MonitorAllAlerts)
		jobs.GET("/monitor-alerts/latest", h.Jobs.LatestRun)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	api.POST("/chat", h.Chat.Chat)

	private := api.Group("", handler.RequireUser(cfg.Tokens))
	{
		private.POST("/chat/extract", h.Chat.Extract)
		private.POST("/flights/search", h.Flights.Search)
		private.GET("/alerts", h.Alerts.List)
	}

	return r
}

func allowedOrigins(frontendURL string) []string {
	origins := []string{"http://localhost:3000"}
	for _, u := range strings.Split(frontendURL, ",") {
		if u = strings.TrimSpace(u); u != "" && u != origins[0] {
			origins = append(origins, u)
		}
	}
	return origins
}
