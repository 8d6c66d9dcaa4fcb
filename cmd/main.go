package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/itbasis/go-clock"

	"match-typer/internal/auth"
	"match-typer/internal/config"
	"match-typer/internal/database"
	"match-typer/internal/handlers"
	"match-typer/internal/jobs"
	"match-typer/internal/repository"
	"match-typer/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Grant admin capability to the configured ids
	if err := database.SeedAdmins(cfg.App.AdminIDs); err != nil {
		log.Fatalf("Failed to seed admins: %v", err)
	}

	// Wall clock for lock evaluation
	clk := clock.New()

	// Initialize repository
	repo := repository.NewRepository(database.GetDB())

	// Initialize services
	authService := services.NewAuthService(repo)
	matchService := services.NewMatchService(repo, clk)
	predictionService := services.NewPredictionService(repo, clk)
	scoringService := services.NewScoringService(database.GetDB())
	rankingService := services.NewRankingService(database.GetDB())
	adminService := services.NewAdminService(database.GetDB())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.App.GatewaySecret)
	matchHandler := handlers.NewMatchHandler(matchService, scoringService, adminService)
	predictionHandler := handlers.NewPredictionHandler(predictionService)
	rankingHandler := handlers.NewRankingHandler(rankingService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Start daily stats snapshot job
	statsJob := jobs.NewStatsJob(adminService)
	statsJob.Start(24 * time.Hour)
	log.Println("Stats snapshot job started")

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Gateway-Secret"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Session establishment (called by the login gateway)
	router.POST("/auth/session", authHandler.EstablishSession)
	router.POST("/auth/logout", authHandler.Logout)

	// Authenticated /auth/me route
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.GetMe)
	}

	// Public routes
	router.GET("/api/matches", matchHandler.GetMatches)
	router.GET("/api/ranking", rankingHandler.GetRanking)

	// History degrades to an empty list for anonymous callers
	router.GET("/api/predictions/mine", auth.OptionalAuth(), predictionHandler.GetMyPredictions)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.POST("/predictions", predictionHandler.SubmitPrediction)
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	admin.Use(adminHandler.AdminMiddleware())
	{
		admin.POST("/matches", matchHandler.CreateMatch)
		admin.PUT("/matches/:id", matchHandler.UpdateMatch)
		admin.POST("/matches/:id/result", matchHandler.DeclareResult)
		admin.DELETE("/matches/:id/result", matchHandler.UndoResult)

		admin.GET("/users", adminHandler.GetUsers)
		admin.POST("/users/promote", adminHandler.PromoteUser)
		admin.DELETE("/users/:id/admin", adminHandler.DemoteUser)

		admin.GET("/logs", adminHandler.GetAdminLogs)
		admin.GET("/stats", adminHandler.GetPlatformStats)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
