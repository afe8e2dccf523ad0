package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/chatapp/chat-api/internal/api/handler"
	"github.com/chatapp/chat-api/internal/api/middleware"
	"github.com/chatapp/chat-api/internal/core/service"
	"github.com/chatapp/chat-api/internal/hub"
	"github.com/chatapp/chat-api/internal/infrastructure/config"
	"github.com/chatapp/chat-api/internal/infrastructure/db/postgres"
	redisstore "github.com/chatapp/chat-api/internal/infrastructure/db/redis"
	"github.com/chatapp/chat-api/internal/infrastructure/oauth"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the broadcast hub, whose run loop the caller owns.
func NewRouter(db *sql.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *hub.Hub) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("chat"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	stateStore := redisstore.NewStateStore(rdb)
	provider := oauth.NewGoogleProvider(oauth.GoogleConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
	})

	tokenService := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL)
	authService := service.NewAuthService(provider, userRepo, stateStore, tokenService, log)
	chatService := service.NewChatService(messageRepo)
	userService := service.NewUserService(userRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.FrontendCallbackURL, log)
	messageHandler := handler.NewMessageHandler(chatService)
	userHandler := handler.NewUserHandler(userService)
	authMiddleware := middleware.Auth(tokenService)

	// --- Broadcast hub ---
	chatHub := hub.New(chatService, log)
	hubHandler := hub.NewHandler(chatHub, cfg.AllowedOrigins, log)

	// --- Auth routes ---
	e.GET("/api/auth/google-login", authHandler.GoogleLogin)
	e.GET("/api/auth/google-callback", authHandler.GoogleCallback)
	e.GET("/api/auth/verify", authHandler.Verify)

	// --- Chat routes ---
	e.GET("/api/messages", messageHandler.List)
	e.GET("/api/users", userHandler.List)
	e.POST("/api/users", userHandler.Create)
	e.GET("/chathub", hubHandler.Serve, authMiddleware)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, chatHub
}
