package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	userIDCtxKey    = "user-id"
	requestIDCtxKey = "request-id"
)

type Config struct {
	AccessSecret string
	ClientOrigin string
}

type Handler struct {
	services *service.Service
	logger   *zap.Logger
	cfg      Config
}

func New(services *service.Service, logger *zap.Logger, cfg Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		cfg:      cfg,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), h.requestLoggerMiddleware, metricsMiddleware)
	r.Use(cors.New(h.corsConfig()))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", h.postsGetAll)
	r.POST("/", h.authMiddleware, h.postsCreate)

	analytics := r.Group("/analytics")
	{
		analytics.GET("", h.analyticsLikes)
		analytics.GET("/:range", h.analyticsLikes)
	}

	post := r.Group("/:id")
	{
		post.GET("", h.authMiddleware, h.postsGetByID)
		post.PUT("", h.authMiddleware, h.postsEdit)
		post.DELETE("", h.authMiddleware, h.postsDelete)
		post.GET("/like", h.authMiddleware, h.postsToggleLike)
		post.GET("/likes", h.postsGetLikes)
		post.GET("/backup", h.postsGetBackups)

		// PUT and DELETE address the comment itself by :id.
		post.GET("/comments", h.commentsGet)
		post.POST("/comments", h.authMiddleware, h.commentsCreate)
		post.PUT("/comments", h.authMiddleware, h.commentsEdit)
		post.DELETE("/comments", h.authMiddleware, h.commentsDelete)
	}

	return r
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}
	if h.cfg.ClientOrigin == "" || h.cfg.ClientOrigin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{h.cfg.ClientOrigin}
		cfg.AllowCredentials = true
	}

	return cfg
}

// bindBody decodes the request body into input. An empty body leaves input
// zero-valued so that validation reports every missing field.
func bindBody(c *gin.Context, input any) error {
	if err := c.ShouldBind(input); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func getUserIDFromClaims(claims jwt.MapClaims) (uuid.UUID, error) {
	idString, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, errNotAuthorized
	}

	id, err := uuid.Parse(idString)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, errors.New("empty user id")
	}

	return id, nil
}

func (h *Handler) getUserIDFromRequest(c *gin.Context) uuid.UUID {
	userID, ok := c.Get(userIDCtxKey)
	if !ok {
		return uuid.Nil
	}

	id, ok := userID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}

	return id
}
