package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/studyoverflow/gateway/internal/api/handler"
	"github.com/studyoverflow/gateway/internal/api/middleware"
	"github.com/studyoverflow/gateway/internal/api/view"
	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
	"github.com/studyoverflow/gateway/internal/core/service"
	"github.com/studyoverflow/gateway/internal/infrastructure/session"
	"github.com/studyoverflow/gateway/internal/notify"
	"github.com/studyoverflow/gateway/pkg/logger"
)

// RouterDeps carries everything NewRouter wires together.
type RouterDeps struct {
	Hooks    *service.Factory
	Bus      *notify.Bus
	Codec    *session.Codec
	Inflight ports.InflightGuard
	Redis    *redis.Client
	Upstream handler.UpstreamPinger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	log := logger.Component("router")

	e := echo.New()
	e.HideBanner = true
	e.Renderer = view.NewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Component("http"))

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("gateway"))
	e.Use(middleware.Session(deps.Codec))
	e.Use(middleware.LoadUser(deps.Hooks))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Hooks, deps.Bus)
	questionHandler := handler.NewQuestionHandler(deps.Hooks, deps.Bus)
	accountHandler := handler.NewAccountHandler(deps.Hooks, deps.Bus)
	adminHandler := handler.NewAdminHandler(deps.Hooks, deps.Bus)
	interactionsHandler := handler.NewInteractionsHandler(deps.Hooks, deps.Inflight, log)
	healthHandler := handler.NewHealthHandler(deps.Redis, deps.Upstream)

	// --- Public pages ---
	e.GET("/", questionHandler.Home)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)
	e.GET("/questions/:id", questionHandler.Detail)
	e.GET("/categories", questionHandler.Categories)
	e.GET("/search", questionHandler.Search)

	// --- Pages behind login ---
	authed := e.Group("", middleware.RequireUser())
	authed.GET("/ask", questionHandler.AskPage)
	authed.POST("/ask", questionHandler.Ask)
	authed.POST("/questions/:id/answers", questionHandler.Answer)
	authed.POST("/answers/:id/best", questionHandler.MarkBest)
	authed.GET("/profile", accountHandler.Profile)
	authed.GET("/favorites", accountHandler.Favorites)

	// --- Moderation pages ---
	admin := e.Group("/admin", middleware.RequireRoles(domain.RoleAdmin, domain.RoleModerator))
	admin.GET("", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.Users)
	admin.POST("/users/:id/role", adminHandler.SetUserRole)
	admin.POST("/users/:id/delete", adminHandler.DeleteUser)
	admin.GET("/reports", adminHandler.Reports)
	admin.POST("/reports/:id", adminHandler.ResolveReport)
	admin.GET("/categories", adminHandler.Categories)
	admin.POST("/categories", adminHandler.CreateCategory)
	admin.POST("/categories/:id", adminHandler.UpdateCategory)
	admin.POST("/categories/:id/delete", adminHandler.DeleteCategory)
	admin.GET("/tags", adminHandler.Tags)
	admin.POST("/tags", adminHandler.CreateTag)
	admin.POST("/tags/:id/delete", adminHandler.DeleteTag)

	// --- JSON surface for the page controls ---
	apiGroup := e.Group("/api", middleware.RequireUserAPI())
	apiGroup.POST("/votes", interactionsHandler.Vote)
	apiGroup.POST("/favorites", interactionsHandler.AddFavorite)
	apiGroup.DELETE("/favorites/:id", interactionsHandler.RemoveFavorite)
	apiGroup.GET("/favorites/check/:id", interactionsHandler.CheckFavorite)
	apiGroup.POST("/reports", interactionsHandler.Report)

	// --- Probes and tooling ---
	e.GET("/healthz", healthHandler.Liveness)
	e.GET("/healthz/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
