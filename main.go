package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"examhub-server/config"
	"examhub-server/db"
	"examhub-server/exam"
	"examhub-server/handlers"
	"examhub-server/ingestion"
	"examhub-server/middleware"
)

func openStore(ctx context.Context, cfg *config.Config) (db.Store, error) {
	if cfg.DBDriver == "postgres" {
		return db.InitDB(ctx, cfg.DatabaseURL)
	}
	return db.OpenSQLite(ctx, cfg.SQLitePath)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Unable to open %s store: %v", cfg.DBDriver, err)
	}
	defer store.Close()

	if err := store.CreateSchema(ctx); err != nil {
		log.Fatalf("Error creating database schema: %v", err)
	}
	if err := ingestion.SeedFromConfig(ctx, store, cfg.SeedFile); err != nil {
		log.Fatalf("Error seeding question bank: %v", err)
	}

	sessions := exam.NewManager()

	gin.SetMode(cfg.GinMode)
	router := gin.Default()
	router.Use(middleware.Logger())

	authMiddleware := middleware.AuthMiddleware(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/register", handlers.Register(store, cfg.Auth))
		apiV1.GET("/categories", handlers.GetCategories(store))

		authed := apiV1.Group("")
		authed.Use(authMiddleware)
		{
			authed.POST("/exam_sessions", handlers.StartExamSession(store, sessions))
			authed.GET("/exam_sessions/current", handlers.GetCurrentQuestion(sessions))
			authed.POST("/exam_sessions/answers", handlers.RecordAnswer(sessions))
			authed.POST("/exam_sessions/next", handlers.NextQuestion(sessions))
			authed.POST("/exam_sessions/previous", handlers.PreviousQuestion(sessions))
			authed.POST("/exam_sessions/restart", handlers.RestartSession(sessions))
			authed.POST("/exam_sessions/submit", handlers.SubmitExamSession(store, sessions))
			authed.GET("/results", handlers.GetHistory(store))
			authed.GET("/results/me", handlers.GetMyHistory(store))
			authed.GET("/results/stats", handlers.GetStats(store))
		}
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware)
	admin.Use(middleware.RoleCheckMiddleware([]string{"admin"}))
	{
		admin.POST("/categories", handlers.AdminCreateCategory(store))
		admin.POST("/questions", handlers.AdminAddQuestion(store))
		admin.POST("/seed", handlers.TriggerSeed(store, cfg.SeedFile))
		admin.GET("/students/:student_id/history", handlers.AdminStudentHistory(store))
	}

	srv := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("ExamHub server starting on %s (driver: %s)", cfg.ServerPort, cfg.DBDriver)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server startup error: %v", err)
	}
	log.Println("Server exited gracefully.")
}
