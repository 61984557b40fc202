package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/vitalpoint/clinic-scheduler/internal/config"
	dbpkg "github.com/vitalpoint/clinic-scheduler/internal/db"
	"github.com/vitalpoint/clinic-scheduler/internal/logger"
	"github.com/vitalpoint/clinic-scheduler/internal/routes"
	"github.com/vitalpoint/clinic-scheduler/internal/timezone"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog := logger.New(cfg.AppEnv)
	defer zlog.Sync()

	loc, err := timezone.Load(cfg.ClinicTimezone)
	if err != nil {
		zlog.Fatal("failed to load clinic timezone", zap.Error(err))
	}

	db := dbpkg.NewDB(cfg)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, loc, zlog)

	zlog.Info("server starting",
		zap.String("addr", cfg.Addr()),
		zap.String("timezone", cfg.ClinicTimezone),
		zap.Bool("month_cache", rdb != nil),
	)

	if err := r.Run(cfg.Addr()); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
