package router

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-planner/internal/config"
	"github.com/windoze95/saltybytes-planner/internal/handlers"
	"github.com/windoze95/saltybytes-planner/internal/logger"
	"github.com/windoze95/saltybytes-planner/internal/metrics"
	"github.com/windoze95/saltybytes-planner/internal/middleware"
	"github.com/windoze95/saltybytes-planner/internal/remote"
	"github.com/windoze95/saltybytes-planner/internal/repository"
	"github.com/windoze95/saltybytes-planner/internal/ws"
	"github.com/windoze95/saltybytes-planner/web"
	"gorm.io/gorm"
)

// sessionSweepInterval is how often idle sessions are looked for.
const sessionSweepInterval = time.Minute

// SetupRouter sets up the Gin router.
func SetupRouter(ctx context.Context, cfg *config.Config, database *gorm.DB) (*gin.Engine, error) {
	// Create default Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowOrigins = []string{
		"http://localhost:" + cfg.EnvVars.Port,
	}
	r.Use(cors.New(corsConfig))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())

	// Page template and assets
	page, err := template.ParseFS(web.FS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(page)
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Remote APIs
	recipes := remote.NewForkifyClient(cfg.EnvVars.RecipeAPIURL, cfg.RequestTimeout())
	nutrition := remote.NewSpoonacularClient(cfg.EnvVars.NutritionAPIURL, cfg.EnvVars.NutritionAPIKey, cfg.RequestTimeout(), cfg.EnvVars.NutritionRPS)

	// Sessions
	hub := ws.NewHub()
	go hub.Run()
	registry := ws.NewRegistry(ws.Deps{
		Hub:             hub,
		Store:           repository.NewSnapshotRepository(database),
		Recipes:         recipes,
		Nutrition:       nutrition,
		Messages:        cfg.Messages,
		ResultsPerPage:  cfg.EnvVars.ResultsPerPage,
		ModalCloseDelay: config.ModalCloseDelay,
	}, cfg.SessionIdleTimeout())
	go registry.Run(ctx, sessionSweepInterval)
	go func() {
		<-ctx.Done()
		registry.CloseAll()
	}()

	plannerHandler := handlers.NewPlannerHandler(cfg, registry)
	sessionHandler := ws.NewSessionHandler(hub, registry, cfg.EnvVars.JwtSecretKey)

	identity := middleware.ClientIdentity(cfg)
	limitPages := middleware.RateLimitByIP(2, time.Minute, 10*time.Minute)
	limitClients := middleware.RateLimitByClient(5, time.Minute, 10*time.Minute)

	// The page starts a session on every load
	r.GET("/", limitPages, identity, middleware.NoStore(), plannerHandler.ShowPlanner)

	apiPublic := r.Group("/v1")
	{
		// WebSocket of a session (authenticated via query param token)
		apiPublic.GET("/ws/session/:session_id", sessionHandler.HandleSession)
	}

	apiClient := r.Group("/v1")
	{
		apiClient.Use(identity, limitClients)

		// Shopping list and weekly plan as a spreadsheet
		apiClient.GET("/sessions/:session_id/export.xlsx", middleware.NoStore(), plannerHandler.ExportWorkbook)

		// Image upload for the add-recipe form
		if cfg.ImageUploadEnabled() {
			imageHandler := handlers.NewImageHandler(cfg)
			apiClient.POST("/images/upload", imageHandler.UploadImage)
		}
	}

	return r, nil
}
