package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mkcore/itam-api/internal/handler"
	"github.com/mkcore/itam-api/internal/middleware"
	"github.com/mkcore/itam-api/internal/repository"
	"github.com/mkcore/itam-api/internal/seed"
	"github.com/mkcore/itam-api/internal/service"
	"github.com/mkcore/itam-api/pkg/config"
	"github.com/mkcore/itam-api/pkg/database"
	"github.com/mkcore/itam-api/pkg/logger"
	corsmiddleware "github.com/mkcore/itam-api/pkg/middleware/cors"
	reqidmiddleware "github.com/mkcore/itam-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	if cfg.Seed.Enabled {
		if err := seed.Run(context.Background(), db, logr); err != nil {
			logr.Sugar().Fatalw("failed to seed demo data", "error", err)
		}
	}

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	validate := validator.New()
	metrics := service.NewMetricsService()

	auditSvc := service.NewAuditService(auditRepo, logr, metrics)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.Auth.TokenSecret,
		TokenExpiry: cfg.Auth.TokenExpiry,
		Issuer:      cfg.Auth.Issuer,
	})
	userSvc := service.NewUserService(userRepo, membershipRepo, auditSvc, validate, logr)
	groupSvc := service.NewGroupService(groupRepo, membershipRepo, auditSvc, validate, logr)
	departmentSvc := service.NewDepartmentService(departmentRepo, auditSvc, validate, logr)
	assetSvc := service.NewAssetService(assetRepo, auditSvc, validate, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	handler.Register(r, cfg.APIPrefix, handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Users:       handler.NewUserHandler(userSvc),
		Groups:      handler.NewGroupHandler(groupSvc),
		Departments: handler.NewDepartmentHandler(departmentSvc),
		Assets:      handler.NewAssetHandler(assetSvc),
		Audit:       handler.NewAuditHandler(auditSvc),
		Metrics:     handler.NewMetricsHandler(metrics),
	}, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
