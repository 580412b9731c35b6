package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dochub-server/internal/config"
	"dochub-server/internal/domain/entities"
	"dochub-server/internal/domain/services"
	"dochub-server/internal/infrastructure/cache"
	"dochub-server/internal/infrastructure/database"
	"dochub-server/internal/infrastructure/database/repositories"
	"dochub-server/internal/interfaces/handlers"
	"dochub-server/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Run(cfg config.Config) error {
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	userRepo := repositories.NewUserRepository(db.Pool())
	teamRepo := repositories.NewTeamRepository(db.Pool())
	metaRepo := repositories.NewMetadataRepository(db.Pool())
	wsRepo := repositories.NewWorkspaceRepository(db.Pool())
	docRepo := repositories.NewDocumentRepository(db.DB())
	tokenRepo := repositories.NewAPITokenRepository(db.Pool())

	cacheSvc := services.NewRedisCacheService(redisClient, cfg.Auth.CacheDuration)
	codec := services.NewSessionCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
	authSvc := services.NewAuthService(userRepo, tokenRepo, codec)
	userSvc := services.NewUserService(userRepo)
	teamSvc := services.NewTeamService(teamRepo)
	metaSvc := services.NewMetadataService(metaRepo)
	wsSvc := services.NewWorkspaceService(wsRepo, cacheSvc)
	docSvc := services.NewDocumentService(docRepo, wsRepo, cacheSvc)
	tokenSvc := services.NewAPITokenService(tokenRepo)

	if err := userSvc.BootstrapAdmin(context.Background()); err != nil {
		return err
	}

	authHandler := handlers.NewAuthHandler(authSvc)
	userHandler := handlers.NewUserHandler(userSvc)
	teamHandler := handlers.NewTeamHandler(teamSvc)
	metaHandler := handlers.NewMetadataHandler(metaSvc)
	wsHandler := handlers.NewWorkspaceHandler(wsSvc)
	docHandler := handlers.NewDocumentHandler(docSvc, wsSvc, cfg.Storage)
	tokenHandler := handlers.NewTokenHandler(tokenSvc)

	limiter := cache.NewFixedWindowLimiter(redisClient)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.SecurityHeadersMiddleware())
	r.Use(handlers.CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/auth/login",
			handlers.RateLimitMiddleware(limiter, "login", cfg.Auth.LoginRateLimit, cfg.Auth.RateWindow),
			authHandler.Login)

		// Public document links carry no credentials at all.
		api.GET("/public/documents/:public_url", docHandler.PublicView)

		authed := api.Group("")
		authed.Use(
			handlers.RateLimitMiddleware(limiter, "api", cfg.Auth.APIRateLimit, cfg.Auth.RateWindow),
			handlers.AuthMiddleware(authSvc),
		)
		{
			session := authed.Group("", handlers.SessionOnly())
			{
				session.GET("/auth/me", authHandler.Me)
				session.POST("/auth/change-password", authHandler.ChangePassword)
			}

			// AdminOnly alone gates this group: service principals fail the
			// role gate with 403, they are not bounced earlier with 401.
			admin := authed.Group("", handlers.AdminOnly(authSvc))
			{
				admin.GET("/users", userHandler.List)
				admin.POST("/users", userHandler.Create)
				admin.PUT("/users/:id", userHandler.Update)
				admin.DELETE("/users/:id", userHandler.Delete)

				admin.POST("/teams", teamHandler.Create)
				admin.PUT("/teams/:id", teamHandler.Update)
				admin.DELETE("/teams/:id", teamHandler.Delete)

				admin.POST("/metadata", metaHandler.Create)
				admin.PUT("/metadata/:id", metaHandler.Update)
				admin.DELETE("/metadata/:id", metaHandler.Delete)

				admin.POST("/workspaces", wsHandler.Create)
				admin.PUT("/workspaces/:id", wsHandler.Update)
				admin.DELETE("/workspaces/:id", wsHandler.Delete)

				admin.GET("/admin/api-tokens", tokenHandler.List)
				admin.POST("/admin/api-tokens", tokenHandler.Create)
				admin.PUT("/admin/api-tokens/:id", tokenHandler.Update)
				admin.DELETE("/admin/api-tokens/:id", tokenHandler.Delete)
				admin.GET("/admin/api-tokens/permissions", tokenHandler.Permissions)
			}

			// Team listing is visible to every session user; mutation stays
			// behind the admin group above.
			authed.GET("/teams", handlers.SessionOnly(), teamHandler.List)

			authed.GET("/metadata",
				handlers.Permission(authSvc, entities.PermMetadataRead), metaHandler.List)

			authed.GET("/workspaces",
				handlers.Permission(authSvc, entities.PermWorkspacesRead), wsHandler.List)
			authed.GET("/workspaces/:id/documents",
				handlers.Permission(authSvc, entities.PermDocumentsRead), docHandler.List)
			authed.POST("/workspaces/:id/documents",
				handlers.Permission(authSvc, entities.PermDocumentsCreate), docHandler.Create)

			authed.GET("/documents/search",
				handlers.Permission(authSvc, entities.PermDocumentsSearch), docHandler.Search)
			authed.GET("/documents/:id/view",
				handlers.Permission(authSvc, entities.PermDocumentsRead), docHandler.View)
			authed.PUT("/documents/:id",
				handlers.Permission(authSvc, entities.PermDocumentsUpdate), docHandler.Update)
			authed.DELETE("/documents/:id",
				handlers.Permission(authSvc, entities.PermDocumentsDelete), docHandler.Delete)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
