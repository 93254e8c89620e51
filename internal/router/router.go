package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"himti/internal/auth"
	"himti/internal/config"
	"himti/internal/handler"
	"himti/internal/metrics"
	"himti/internal/model"
)

const (
	APIPrefix  = "/api/v1"
	AuthPrefix = APIPrefix + "/auth"

	bodyLimit = "6M"
)

// Handlers groups every HTTP handler mounted by Register.
type Handlers struct {
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

// New creates the echo server with the validator and error envelope installed.
func New(log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(log)
	return e
}

// OptionalRoutes lists the endpoints the gate lets through without a session. A valid session
// on them still resolves the identity.
func OptionalRoutes() []auth.Route {
	get := func(path string) auth.Route { return auth.Route{Method: http.MethodGet, Path: APIPrefix + path} }
	post := func(path string) auth.Route { return auth.Route{Method: http.MethodPost, Path: APIPrefix + path} }
	return []auth.Route{
		get("/forums"), get("/forums/:id"),
		get("/articles"), get("/articles/:id"),
		get("/galleries"), get("/galleries/:id"), get("/galleries/event/:eventId"),
		get("/events"), get("/events/:id"),
		get("/departments"), get("/departments/:id"), get("/departments/slug/:slug"),
		get("/divisions"), get("/divisions/:id"), get("/divisions/slug/:slug"),
		get("/members"), get("/members/:id"),
		post("/forums/:id/like"), post("/articles/:id/like"),
		post("/users/refresh-token"),
	}
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, h Handlers, gate *auth.Gate, m *metrics.Metrics, log *zap.Logger) {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(m.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit(bodyLimit))

	e.GET("/healthz", h.Health.Live)
	e.GET("/readyz", h.Health.Ready)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/api/docs/*", echoSwagger.WrapHandler)
	if cfg.StorageDriver == "local" {
		e.Static("/uploads", cfg.UploadDir)
	}

	api := e.Group(APIPrefix, gate.Middleware())
	admin := auth.RequireAdmin()

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/logout", h.Auth.Logout)
	authGroup.POST("/forgot-password", h.Auth.ForgotPassword)
	authGroup.POST("/verify-otp", h.Auth.VerifyOTP)
	authGroup.POST("/reset-password", h.Auth.ResetPassword)
	authGroup.POST("/refresh-token", h.Auth.RefreshToken)

	users := api.Group("/users")
	users.GET("", h.User.List, admin)
	users.GET("/deleted", h.User.ListDeleted, admin)
	users.GET("/me", h.User.Me)
	users.POST("/refresh-token", h.Auth.RefreshToken)
	users.GET("/:id", h.User.Get, admin)
	users.PATCH("/:id", h.User.UpdateProfile)
	users.DELETE("/:id/soft", h.User.SoftDelete, admin)
	users.POST("/:id/restore", h.User.Restore, admin)
	users.DELETE("/:id/permanent", h.User.HardDelete, admin)

	forums := api.Group("/forums")
	forums.GET("", h.Forum.List)
	forums.GET("/my-forums", h.Forum.Mine)
	forums.GET("/deleted", h.Forum.ListDeleted, admin)
	forums.GET("/:id", h.Forum.Get)
	forums.POST("", h.Forum.Create)
	forums.PATCH("/:id", h.Forum.Update)
	forums.DELETE("/:id/soft", h.Forum.SoftDelete)
	forums.POST("/:id/restore", h.Forum.Restore)
	forums.DELETE("/:id/permanent", h.Forum.HardDelete)
	forums.POST("/:id/like", h.Forum.Like)
	forums.POST("/:id/comment", h.Forum.Comment)

	articles := api.Group("/articles")
	articles.GET("", h.Article.List)
	articles.GET("/deleted", h.Article.ListDeleted, admin)
	articles.GET("/:id", h.Article.Get)
	articles.POST("", h.Article.Create, admin)
	articles.PATCH("/:id", h.Article.Update, admin)
	articles.DELETE("/:id/soft", h.Article.SoftDelete, admin)
	articles.POST("/:id/restore", h.Article.Restore, admin)
	articles.DELETE("/:id/permanent", h.Article.HardDelete, admin)
	articles.POST("/:id/like", h.Article.Like)

	departments := api.Group("/departments")
	h.Department.Mount(departments, admin)
	departments.GET("/slug/:slug", h.Department.GetBySlug)
	departments.POST("", h.Department.Create, admin)
	departments.PATCH("/:id", h.Department.Update, admin)

	divisions := api.Group("/divisions")
	h.Division.Mount(divisions, admin)
	divisions.GET("/slug/:slug", h.Division.GetBySlug)
	divisions.POST("", h.Division.Create, admin)
	divisions.PATCH("/:id", h.Division.Update, admin)

	members := api.Group("/members")
	h.Member.Mount(members, admin)
	members.POST("", h.Member.Create, admin)
	members.PATCH("/:id", h.Member.Update, admin)

	events := api.Group("/events")
	h.Event.Mount(events, admin)
	events.POST("", h.Event.Create, admin)
	events.PATCH("/:id", h.Event.Update, admin)

	galleries := api.Group("/galleries")
	h.Gallery.Mount(galleries, admin)
	galleries.GET("/event/:eventId", h.Gallery.ListByEvent)
	galleries.POST("", h.Gallery.Create, admin)
	galleries.PATCH("/:id", h.Gallery.Update, admin)

	bankData := api.Group("/bank-data")
	bankData.GET("", h.BankData.List)
	bankData.GET("/:id", h.BankData.Get)
	bankData.POST("", h.BankData.Create, admin)
	bankData.PATCH("/:id", h.BankData.Update, admin)
	bankData.DELETE("/:id", h.BankData.Delete, admin)

	api.POST("/upload/media", h.Upload.Upload)

	adminGroup := api.Group("/admin", admin)
	adminGroup.GET("/users", h.User.List)
	adminGroup.POST("/users", h.User.CreateUser)
	adminGroup.POST("/users/super-admin", h.User.CreateSuperAdmin, auth.RequireRoles(model.RoleSuperAdmin))
	adminGroup.GET("/users/:id", h.User.Get)
	adminGroup.PATCH("/users/:id", h.User.UpdateUser)
	adminGroup.DELETE("/users/:id", h.User.DeleteUser)
	adminGroup.PATCH("/forums/:id/status", h.Forum.SetStatus)
	adminGroup.PATCH("/forums/:id", h.Forum.Moderate)
	adminGroup.DELETE("/forums/:id", h.Forum.Remove)
	adminGroup.PATCH("/articles/:id", h.Article.Moderate)
	adminGroup.DELETE("/articles/:id", h.Article.Remove)
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil && v.Status >= http.StatusInternalServerError {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}
