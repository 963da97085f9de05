package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/peopleops/corehr/internal/auth"
	"github.com/peopleops/corehr/internal/config"
	"github.com/peopleops/corehr/internal/hr"
)

type Server struct {
	config     *config.AppConfig
	log        *zap.Logger
	httpServer *http.Server
}

type Params struct {
	fx.In

	Config         *config.AppConfig
	Logger         *zap.Logger
	AuthHandler    *auth.Handler
	AuthMiddleware *auth.Middleware
	HRHandler      *hr.Handler
}

func NewServer(p Params) *Server {
	if Env() == EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(requestLogger(p.Logger), gin.Recovery())

	registerRoutes(engine, p)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", p.Config.Server.Host, p.Config.Server.Port),
		Handler:      engine,
		ReadTimeout:  p.Config.HTTP.ReadTimeout,
		WriteTimeout: p.Config.HTTP.WriteTimeout,
	}

	return &Server{
		config:     p.Config,
		log:        p.Logger,
		httpServer: srv,
	}
}

func registerRoutes(engine *gin.Engine, p Params) {
	api := engine.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", p.AuthHandler.Register)
	authGroup.POST("/login", p.AuthHandler.Login)
	authGroup.POST("/logout", p.AuthHandler.Logout)
	authGroup.GET("/me", p.AuthMiddleware.RequireAuth(), p.AuthHandler.Me)

	protected := api.Group("", p.AuthMiddleware.RequireAuth())
	p.HRHandler.Register(protected)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		zap.String("address", s.httpServer.Addr),
		zap.String("environment", Env()),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

func (s *Server) Stop() {
	s.log.Info("shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.HTTP.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.log.Error("forced shutdown", zap.Error(err))
	}
}
