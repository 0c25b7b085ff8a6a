package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timeitin-backend/internal/ledger"
	"timeitin-backend/internal/platform/auth"
	"timeitin-backend/internal/platform/config"
	"timeitin-backend/internal/platform/db"
	"timeitin-backend/internal/platform/logger"
	"timeitin-backend/internal/roster"
	"timeitin-backend/internal/settings"
	"timeitin-backend/internal/tenants"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Mode, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting timeitin backend", zap.String("mode", cfg.Mode), zap.String("addr", cfg.Server.Addr))

	conn, err := db.Connect(cfg.DB, log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer conn.Close()

	if err := db.Migrate(conn); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == "dev" {
		// CORS for the React dev server only; in release the SPA is served
		// from the same origin.
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	secret := []byte(cfg.Auth.JWTSecret)
	tenantSvc := tenants.NewService(conn, secret,
		time.Duration(cfg.Auth.TokenTTLHrs)*time.Hour,
		time.Duration(cfg.Auth.StayTTLHrs)*time.Hour,
	)
	settingsSvc := settings.NewService(conn, log)
	rosterSvc := roster.NewService(conn, log)
	ledgerSvc := ledger.NewService(conn, rosterSvc, log)

	api := r.Group("/api/v1")
	tenants.RegisterRoutes(api, tenantSvc)

	protected := api.Group("", auth.RequireAuth(secret))
	tenants.RegisterProtectedRoutes(protected, tenantSvc)
	settings.RegisterRoutes(protected, settingsSvc)
	roster.RegisterRoutes(protected, rosterSvc)
	ledger.RegisterRoutes(protected, ledgerSvc, settingsSvc)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		log.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("shutdown failed", zap.Error(err))
	}
}

// requestLogger replaces gin's default logger with zap.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
