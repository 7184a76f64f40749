package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"votebox/backend/internal/config"
	"votebox/backend/internal/database"
	"votebox/backend/internal/handler"
	"votebox/backend/internal/hub"
	"votebox/backend/internal/reaper"
	"votebox/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
	config.AppConfig.ConfigureLogging()
}

// @title           Votebox API
// @version         1.0
// @description     Anonymous yes/no voting in rooms joined by a short code.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey SessionAuth
// @in header
// @name X-Session-ID
func main() {
	cfg := config.AppConfig

	if cfg.DatabaseURL == "" {
		logrus.Fatal("DATABASE_URL is required")
	}
	db := database.Connect(cfg.DatabaseURL)

	if cfg.JWTSecret == "" {
		logrus.Warn("JWT_SECRET not set, bearer session tokens are disabled")
	}

	roomEvents := hub.NewHub()
	svc := service.New(db,
		service.WithNotifier(roomEvents),
		service.WithStaleAfter(cfg.StaleAfter),
	)

	sweeper := reaper.New(svc, logrus.StandardLogger())
	if err := sweeper.Start(cfg.ReapSchedule); err != nil {
		logrus.Fatalf("Failed to start reaper: %v", err)
	}
	if cfg.ReapOnStart {
		go func() {
			if _, err := sweeper.RunOnce(context.Background()); err != nil {
				logrus.WithError(err).Error("Initial stale user sweep failed")
			}
		}()
	}

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	handler.New(svc, roomEvents, []byte(cfg.JWTSecret), cfg.SessionTokenTTL).Routes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logrus.Infof("Server is running on :%s", cfg.Port)
		logrus.Infof("Swagger UI is available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server shutdown failed")
	}
	sweeper.Stop()
}
