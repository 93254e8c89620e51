package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"himti/internal/auth"
	"himti/internal/cache"
	"himti/internal/config"
	"himti/internal/db"
	"himti/internal/handler"
	"himti/internal/imageproc"
	"himti/internal/jobs"
	"himti/internal/logger"
	"himti/internal/mail"
	"himti/internal/metrics"
	"himti/internal/repository"
	"himti/internal/router"
	"himti/internal/service"
	"himti/internal/storage"
)

const storageInitTimeout = 10 * time.Second

// Module combines all application modules.
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			config.Load,
			newLogger,
			newDatabase,
			newCache,
			metrics.New,
		),
		repositories(),
		authComponents(),
		services(),
		handlers(),
		fx.Provide(
			router.New,
			newSweeper,
		),
		fx.Invoke(registerRoutes, registerHooks),
	)
}

func repositories() fx.Option {
	return fx.Provide(
		repository.NewAccountRepository,
		repository.NewForumRepository,
		repository.NewArticleRepository,
		repository.NewDepartmentRepository,
		repository.NewDivisionRepository,
		repository.NewMemberRepository,
		repository.NewEventRepository,
		repository.NewGalleryRepository,
		repository.NewBankDataRepository,
	)
}

func authComponents() fx.Option {
	return fx.Provide(
		func(cfg *config.Config) *auth.JWTService {
			return auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)
		},
		fx.Annotate(auth.NewTokenStore, fx.As(new(auth.TokenStoreInterface))),
		func() auth.PasswordHasher { return auth.NewBcryptHasher(auth.BcryptCost) },
		func() auth.OTPGenerator { return auth.RandomOTP{} },
		func(cfg *config.Config, c *cache.Client) *auth.OTPLimiter {
			return auth.NewOTPLimiter(c, cfg.OTPRequestLimit, cfg.OTPRequestWindow)
		},
		fx.Annotate(mail.NewSMTPMailer, fx.As(new(mail.Mailer))),
		newGate,
	)
}

func services() fx.Option {
	return fx.Provide(
		service.NewAuthService,
		service.NewUserService,
		service.NewForumService,
		service.NewArticleService,
		service.NewOrgCache,
		service.NewDepartmentService,
		service.NewDivisionService,
		service.NewMemberService,
		service.NewEventService,
		service.NewGalleryService,
		service.NewBankDataService,
		newStorage,
		func() service.ImageCompressor {
			return imageproc.NewCompressor(imageproc.DefaultQuality, imageproc.DefaultMaxDimension)
		},
		service.NewUploadService,
	)
}

func handlers() fx.Option {
	return fx.Provide(
		func(cfg *config.Config, svc service.AuthService) *handler.AuthHandler {
			return handler.NewAuthHandler(svc, cfg.IsProduction())
		},
		handler.NewUserHandler,
		handler.NewForumHandler,
		handler.NewArticleHandler,
		handler.NewDepartmentHandler,
		handler.NewDivisionHandler,
		handler.NewMemberHandler,
		handler.NewEventHandler,
		handler.NewGalleryHandler,
		handler.NewBankDataHandler,
		handler.NewUploadHandler,
		newHealthHandler,
	)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.AppEnv)
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL, cfg.AppEnv == config.EnvDevelopment)
	if err != nil {
		return nil, err
	}
	if cfg.DBAutoMigrate {
		if err := db.AutoMigrate(gormDB); err != nil {
			return nil, err
		}
		log.Info("database schema auto-migrated")
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return db.Close(gormDB)
		},
	})
	return gormDB, nil
}

func newCache(lc fx.Lifecycle, cfg *config.Config) *cache.Client {
	c := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return c.Close()
		},
	})
	return c
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storageInitTimeout)
	defer cancel()
	return storage.New(ctx, cfg)
}

func newGate(jwt *auth.JWTService, accounts repository.AccountRepository, store auth.TokenStoreInterface, log *zap.Logger) *auth.Gate {
	return auth.NewGate(jwt, accounts, store, router.AuthPrefix, router.OptionalRoutes(), log)
}

func newHealthHandler(gormDB *gorm.DB, c *cache.Client, log *zap.Logger) *handler.HealthHandler {
	return handler.NewHealthHandler(map[string]handler.Pinger{
		"database": func(ctx context.Context) error { return db.Ping(ctx, gormDB) },
		"redis":    c.Ping,
	}, log)
}

func newSweeper(cfg *config.Config, accounts repository.AccountRepository, m *metrics.Metrics, log *zap.Logger) *jobs.OTPSweeper {
	return jobs.NewOTPSweeper(accounts, cfg.OTPSweepSchedule, m, log)
}

// HandlerParams collects every HTTP handler from the container.
type HandlerParams struct {
	fx.In

	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Forum      *handler.ForumHandler
	Article    *handler.ArticleHandler
	Department *handler.DepartmentHandler
	Division   *handler.DivisionHandler
	Member     *handler.MemberHandler
	Event      *handler.EventHandler
	Gallery    *handler.GalleryHandler
	BankData   *handler.BankDataHandler
	Upload     *handler.UploadHandler
	Health     *handler.HealthHandler
}

func registerRoutes(e *echo.Echo, cfg *config.Config, p HandlerParams, gate *auth.Gate, m *metrics.Metrics, log *zap.Logger) {
	router.Register(e, cfg, router.Handlers{
		Auth:       p.Auth,
		User:       p.User,
		Forum:      p.Forum,
		Article:    p.Article,
		Department: p.Department,
		Division:   p.Division,
		Member:     p.Member,
		Event:      p.Event,
		Gallery:    p.Gallery,
		BankData:   p.BankData,
		Upload:     p.Upload,
		Health:     p.Health,
	}, gate, m, log)
}

func registerHooks(lc fx.Lifecycle, e *echo.Echo, sweeper *jobs.OTPSweeper, cfg *config.Config, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := sweeper.Start(); err != nil {
				return fmt.Errorf("start otp sweeper: %w", err)
			}
			addr := ":" + cfg.Port
			go func() {
				log.Info("http server listening", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down http server")
			if err := e.Shutdown(ctx); err != nil {
				log.Warn("http shutdown", zap.Error(err))
			}
			return sweeper.Stop(ctx)
		},
	})
}
