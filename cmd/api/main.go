package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gdmcare/portal-api/internal/config"
	"github.com/gdmcare/portal-api/internal/db"
	"github.com/gdmcare/portal-api/internal/logger"
	"github.com/gdmcare/portal-api/internal/middleware"
	"github.com/gdmcare/portal-api/internal/routes"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer log.Sync()

	database := db.NewDB(cfg)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, database, cfg, log)

	log.Info("starting server", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
