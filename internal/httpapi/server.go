package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Alp4ka/watchpager"
	"github.com/Alp4ka/watchpager/internal/models"
	"github.com/Alp4ka/watchpager/internal/store"
	"github.com/Alp4ka/watchpager/internal/worker"
)

type UserLister interface {
	List(ctx context.Context, q store.UsersQuery) (*watchpager.Page[models.UserView], error)
}

type ReviewLister interface {
	List(ctx context.Context, q store.ReviewsQuery) (*watchpager.Page[models.Review], error)
}

type Server struct {
	users   UserLister
	reviews ReviewLister
	pool    *worker.Pool
	log     *zap.Logger
	started time.Time
}

func NewServer(users UserLister, reviews ReviewLister, pool *worker.Pool, log *zap.Logger) *Server {
	return &Server{
		users:   users,
		reviews: reviews,
		pool:    pool,
		log:     log.Named("http"),
		started: time.Now().UTC(),
	}
}

// Router builds the gin engine serving the listing endpoints.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = true
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/", s.health)
	r.GET("/users", s.listUsers)
	r.GET("/reviews", s.listReviews)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"last_deploy": s.started.Format(time.RFC3339),
	})
}

func (s *Server) listUsers(c *gin.Context) {
	q, err := parseUsersQuery(c)
	if err != nil {
		s.sendError(c, err)
		return
	}

	page, err := worker.Run(c.Request.Context(), s.pool, func(ctx context.Context) (*watchpager.Page[models.UserView], error) {
		return s.users.List(ctx, q)
	})
	if err != nil {
		s.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (s *Server) listReviews(c *gin.Context) {
	q, err := parseReviewsQuery(c)
	if err != nil {
		s.sendError(c, err)
		return
	}

	page, err := worker.Run(c.Request.Context(), s.pool, func(ctx context.Context) (*watchpager.Page[models.Review], error) {
		return s.reviews.List(ctx, q)
	})
	if err != nil {
		s.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (s *Server) sendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errBadParam), errors.Is(err, watchpager.ErrUnknownSort):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, worker.ErrPoolClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// The caller is gone; nothing useful to send.
		c.AbortWithStatus(http.StatusServiceUnavailable)
	default:
		s.log.Error("listing failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
