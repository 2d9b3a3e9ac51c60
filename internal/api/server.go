// Package api provides the HTTP API server for Emulium.
// It uses Echo framework to serve REST endpoints and WebSocket connections
// for real-time deployment and script-push progress.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "evalgo.org/emulium/docs" // Import generated docs
	"evalgo.org/emulium/internal/auth"
	"evalgo.org/emulium/internal/config"
	"evalgo.org/emulium/internal/events"
	"evalgo.org/emulium/internal/gns3"
	"evalgo.org/emulium/internal/push"
	"evalgo.org/emulium/internal/registry"
	"evalgo.org/emulium/internal/storage"
	"evalgo.org/emulium/internal/validation"
	"evalgo.org/emulium/internal/version"
	"evalgo.org/emulium/models"
)

// Server represents the Emulium API server.
type Server struct {
	echo       *echo.Echo
	storage    *storage.Storage
	config     *config.Config
	gns3       *gns3.Manager
	registry   *registry.Registry
	pusher     *push.Orchestrator
	validator  *validation.Validator
	wsHub      *Hub // WebSocket hub for real-time updates
	authMiddle *auth.Middleware
	events     *events.Publisher
}

// debugLog logs a message only if debug mode is enabled in config
func (s *Server) debugLog(format string, args ...interface{}) {
	if s.config.Server.Debug {
		log.Printf(format, args...)
	}
}

// New creates a new API server instance.
//
// @title Emulium API
// @version 1.0
// @description Semantic network lab orchestration: scenarios, deployments, script pushes and scheduled actions for GNS3 servers.
// @host localhost:8085
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func New(cfg *config.Config, store *storage.Storage, mgr *gns3.Manager, reg *registry.Registry, pusher *push.Orchestrator) *Server {
	e := echo.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Server.Debug

	// Set custom error handler
	e.HTTPErrorHandler = HTTPErrorHandler

	// Create WebSocket hub
	hub := NewHub()

	// Create auth middleware
	authMiddle := auth.NewMiddleware(cfg)

	// Create the MQTT event publisher (no-op while no broker is configured)
	pub := events.New(cfg.Events)
	if pub.Enabled() {
		if err := pub.Start(); err != nil {
			log.Printf("WARN: event publisher unavailable: %v", err)
		}
	}

	// Create server instance
	server := &Server{
		echo:       e,
		storage:    store,
		config:     cfg,
		gns3:       mgr,
		registry:   reg,
		pusher:     pusher,
		validator:  validation.New(),
		wsHub:      hub,
		authMiddle: authMiddle,
		events:     pub,
	}

	// Start WebSocket hub in background
	go hub.Run()

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes()

	return server
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	// Logger middleware
	s.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${time_rfc3339}] ${status} ${method} ${uri} (${latency_human})\n",
	}))

	// Recover middleware
	s.echo.Use(middleware.Recover())

	// Security headers middleware
	s.echo.Use(SecurityHeaders)

	// CORS middleware
	if len(s.config.Security.AllowedOrigins) > 0 {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.config.Security.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Rate limiting
	if s.config.Security.RateLimit > 0 {
		s.echo.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
			rate.Limit(s.config.Security.RateLimit),
		)))
	}

	// Content-Type validation middleware for API routes
	s.echo.Use(ValidateContentType)

	// Accept header validation middleware
	s.echo.Use(ValidateAcceptHeader)
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/", s.healthCheck)

	// Swagger UI documentation (public - but API endpoints are still protected)
	s.echo.GET("/docs/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := s.echo.Group("/api/v1")

	// Scenario routes
	scenarios := v1.Group("/scenarios")
	scenarios.Use(ValidateQueryParams) // Validate query parameters for list operations
	scenarios.GET("", s.listScenarios, s.authMiddle.RequireRead)
	scenarios.GET("/:id", s.getScenario, ValidateIDFormat, s.authMiddle.RequireRead)
	scenarios.POST("", s.createScenario, s.authMiddle.RequireWrite)
	scenarios.PUT("/:id", s.updateScenario, ValidateIDFormat, s.authMiddle.RequireWrite)
	scenarios.DELETE("/:id", s.deleteScenario, ValidateIDFormat, s.authMiddle.RequireWrite)
	scenarios.POST("/:id/deploy", s.deployScenario, ValidateIDFormat, s.authMiddle.RequireWrite)

	// Ad-hoc deployment of an inline scenario document
	v1.POST("/deploy", s.deployAdHoc, s.authMiddle.RequireWrite)

	// Script routes
	scripts := v1.Group("/scripts")
	scripts.Use(ValidateQueryParams)
	scripts.GET("", s.listScripts, s.authMiddle.RequireRead)
	scripts.GET("/:id", s.getScript, ValidateIDFormat, s.authMiddle.RequireRead)
	scripts.POST("", s.createScript, s.authMiddle.RequireWrite)
	scripts.PUT("/:id", s.updateScript, ValidateIDFormat, s.authMiddle.RequireWrite)
	scripts.DELETE("/:id", s.deleteScript, ValidateIDFormat, s.authMiddle.RequireWrite)
	scripts.POST("/push", s.pushScripts, s.authMiddle.RequireWrite)
	scripts.POST("/run", s.runScripts, s.authMiddle.RequireWrite)

	// Deployment report routes
	deployments := v1.Group("/deployments")
	deployments.Use(ValidateQueryParams)
	deployments.GET("", s.listDeployments, s.authMiddle.RequireRead)
	deployments.GET("/:id", s.getDeployment, ValidateIDFormat, s.authMiddle.RequireRead)
	deployments.DELETE("/:id", s.deleteDeployment, ValidateIDFormat, s.authMiddle.RequireWrite)

	// Console registry routes
	regRoutes := v1.Group("/registry")
	regRoutes.GET("/:project", s.listRegistry, s.authMiddle.RequireRead)
	regRoutes.DELETE("/:project", s.dropRegistry, s.authMiddle.RequireWrite)

	// GNS3 browse routes
	gns3Routes := v1.Group("/gns3")
	gns3Routes.GET("/servers", s.listServers, s.authMiddle.RequireRead)
	gns3Routes.POST("/servers", s.addServer, s.authMiddle.RequireAdmin)
	gns3Routes.DELETE("/servers", s.removeServer, s.authMiddle.RequireAdmin)
	gns3Routes.GET("/templates", s.listTemplates, s.authMiddle.RequireRead)
	gns3Routes.GET("/projects", s.listProjects, s.authMiddle.RequireRead)
	gns3Routes.GET("/projects/:project", s.getProject, s.authMiddle.RequireRead)
	gns3Routes.GET("/projects/:project/nodes", s.listProjectNodes, s.authMiddle.RequireRead)
	gns3Routes.POST("/projects/:project/cleanup", s.cleanupProject, s.authMiddle.RequireWrite)

	// Scheduled action routes
	actions := v1.Group("/actions")
	actions.Use(ValidateQueryParams)
	actions.GET("", s.listScheduledActions, s.authMiddle.RequireRead)
	actions.GET("/:id", s.getScheduledAction, ValidateIDFormat, s.authMiddle.RequireRead)
	actions.POST("", s.createScheduledAction, s.authMiddle.RequireWrite)
	actions.PUT("/:id", s.updateScheduledAction, ValidateIDFormat, s.authMiddle.RequireWrite)
	actions.DELETE("/:id", s.deleteScheduledAction, ValidateIDFormat, s.authMiddle.RequireWrite)

	// Audit routes
	v1.GET("/audit", s.runAudit, s.authMiddle.RequireWrite)
	v1.POST("/audit/prune", s.pruneAudit, s.authMiddle.RequireAdmin)

	// Validation routes
	validate := v1.Group("/validate")
	validate.POST("/scenario", s.validateScenario, s.authMiddle.RequireRead)
	validate.POST("/script", s.validateScript, s.authMiddle.RequireRead)
	validate.POST("/:type", s.validateGeneric, s.authMiddle.RequireRead)

	// Statistics routes
	stats := v1.Group("/stats")
	stats.GET("", s.getStatistics, s.authMiddle.RequireRead)
	stats.GET("/scenarios", s.getScenarioUsage, s.authMiddle.RequireRead)

	// Database info
	v1.GET("/info", s.getDatabaseInfo, s.authMiddle.RequireRead)

	// Authentication routes
	authRoutes := v1.Group("/auth")
	authRoutes.POST("/login", s.login)
	authRoutes.POST("/register", s.register, s.authMiddle.RequireAdmin)
	authRoutes.POST("/refresh", s.refresh)
	authRoutes.POST("/logout", s.logout, s.authMiddle.RequireAuth)
	authRoutes.GET("/me", s.me, s.authMiddle.RequireAuth)

	// User management routes
	users := v1.Group("/users")
	users.GET("", s.listUsers, s.authMiddle.RequireAdmin)
	users.GET("/:id", s.getUser, s.authMiddle.RequireAdmin)
	users.PUT("/:id", s.updateUser, s.authMiddle.RequireAdmin)
	users.DELETE("/:id", s.deleteUser, s.authMiddle.RequireAdmin)
	users.POST("/password", s.changePassword, s.authMiddle.RequireAuth)
	users.GET("/api-keys", s.listAPIKeys, s.authMiddle.RequireAuth)
	users.POST("/api-keys", s.generateAPIKey, s.authMiddle.RequireAuth)
	users.DELETE("/api-keys/:index", s.revokeAPIKey, s.authMiddle.RequireAuth)

	// WebSocket routes
	ws := v1.Group("/ws")
	ws.GET("/events", s.HandleWebSocket, s.authMiddle.RequireRead)
	ws.GET("/stats", s.GetWebSocketStats, s.authMiddle.RequireRead)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	fmt.Printf("🚀 Starting Emulium API Server\n")
	fmt.Printf("   Address: http://%s\n", addr)
	fmt.Printf("   Database: %s\n", s.config.CouchDB.Database)
	fmt.Printf("   GNS3: %s\n", s.config.GNS3.URL)
	fmt.Printf("   Debug: %v\n", s.config.Server.Debug)
	fmt.Println()

	// Configure server timeouts
	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout

	// Start server
	if s.config.Server.TLSEnabled {
		return s.echo.StartTLS(addr, s.config.Server.TLSCert, s.config.Server.TLSKey)
	}

	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	fmt.Println("\n🛑 Shutting down Emulium API Server...")

	// Shutdown Echo server
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	// Close event publisher
	s.events.Close()

	// Close storage
	if err := s.storage.Close(); err != nil {
		return fmt.Errorf("error closing storage: %w", err)
	}

	fmt.Println("✓ Server shutdown complete")
	return nil
}

// healthCheck handles health check requests.
func (s *Server) healthCheck(c echo.Context) error {
	// Get database info to verify connection
	stats, err := s.storage.Info(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   "database connection failed",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "healthy",
		"service":  "emulium",
		"version":  version.Get().Version,
		"database": stats.Name,
		"documents": map[string]interface{}{
			"total":   stats.DocCount,
			"deleted": stats.DeletedCount,
		},
		"gns3Servers": s.gns3.Count(),
	})
}

// broadcast fans a lab event out to all WebSocket clients and, when a
// broker is configured, to MQTT.
func (s *Server) broadcast(eventType LabEventType, data interface{}) {
	event := LabEvent{
		Type: eventType,
		Data: data,
	}
	s.debugLog("DEBUG: Broadcasting %s to %d WebSocket clients", eventType, s.wsHub.ClientCount())
	if err := s.wsHub.BroadcastEvent(event); err != nil {
		log.Printf("ERROR: Failed to broadcast event: %v", err)
	}
	s.events.Publish(string(eventType), data)
}

// Notify adapts the broadcast fan-out for components outside this
// package, such as the scheduler's executor.
func (s *Server) Notify(event string, data interface{}) {
	s.broadcast(LabEventType(event), data)
}

// persistDeployment saves a deployment report. A CouchDB outage must not
// fail the request that produced the report, so errors are only logged.
func (s *Server) persistDeployment(ctx context.Context, dep *models.Deployment) {
	if err := s.storage.SaveDeployment(ctx, dep); err != nil {
		log.Printf("ERROR: Failed to persist deployment %s: %v", dep.ID, err)
	}
}

// ServeHTTP allows Server to implement http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
