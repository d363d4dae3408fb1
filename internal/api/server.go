package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yt-earnings/internal/config"
	"github.com/yt-earnings/internal/earnings"
	"github.com/yt-earnings/internal/models"
)

const apiKeyHeader = "X-API-Key"

// Server represents the API server
type Server struct {
	router     *gin.Engine
	service    *earnings.Service
	factory    earnings.SourceFactory
	defaultKey models.Credential
}

// compareRequest is the JSON body accepted by POST /estimate/compare
type compareRequest struct {
	Channels []string `json:"channels"`
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, service *earnings.Service, factory earnings.SourceFactory) *Server {
	router := gin.New()
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{Formatter: accessLogFormatter}), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", apiKeyHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	server := &Server{
		router:     router,
		service:    service,
		factory:    factory,
		defaultKey: models.Credential(cfg.YouTubeAPIKey),
	}

	server.setupRoutes()

	return server
}

// accessLogFormatter mirrors gin's default line with the key query parameter masked
func accessLogFormatter(param gin.LogFormatterParams) string {
	if param.Latency > time.Minute {
		param.Latency = param.Latency.Truncate(time.Second)
	}
	return fmt.Sprintf("[GIN] %v | %3d | %13v | %15s | %-7s %#v\n%s",
		param.TimeStamp.Format("2006/01/02 - 15:04:05"),
		param.StatusCode,
		param.Latency,
		param.ClientIP,
		param.Method,
		redactQuery(param.Path),
		param.ErrorMessage,
	)
}

// redactQuery masks the key query parameter of a request path
func redactQuery(path string) string {
	u, err := url.Parse(path)
	if err != nil {
		// unparseable paths are logged without their query
		if i := strings.IndexByte(path, '?'); i >= 0 {
			return path[:i]
		}
		return path
	}
	q := u.Query()
	if !q.Has("key") {
		return path
	}
	q.Set("key", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all the routes for the server
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	estimate := s.router.Group("/estimate")
	estimate.GET("/video", s.estimateVideo)
	estimate.GET("/channel", s.estimateChannel)
	estimate.POST("/compare", s.compareChannels)
}

// session builds a per request session; the credential is checked before any client is created
func (s *Server) session(c *gin.Context) (*earnings.Session, error) {
	credential := models.Credential(strings.TrimSpace(c.GetHeader(apiKeyHeader)))
	if credential == "" {
		credential = models.Credential(strings.TrimSpace(c.Query("key")))
	}
	if credential == "" {
		credential = s.defaultKey
	}
	return earnings.OpenSession(c.Request.Context(), credential, s.factory)
}

// estimateVideo handles requests to estimate earnings for one video
func (s *Server) estimateVideo(c *gin.Context) {
	videoURL := c.Query("url")
	if videoURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "url query parameter is required",
			"kind":  models.ErrorKind(models.ErrInvalidReference),
		})
		return
	}

	sess, err := s.session(c)
	if err != nil {
		respondError(c, err)
		return
	}

	estimate, err := s.service.EstimateVideo(c.Request.Context(), sess, videoURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, estimate)
}

// estimateChannel handles requests to estimate earnings for one channel
func (s *Server) estimateChannel(c *gin.Context) {
	channelURL := c.Query("url")
	if channelURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "url query parameter is required",
			"kind":  models.ErrorKind(models.ErrInvalidReference),
		})
		return
	}

	sess, err := s.session(c)
	if err != nil {
		respondError(c, err)
		return
	}

	estimate, err := s.service.EstimateChannel(c.Request.Context(), sess, channelURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, estimate)
}

// compareChannels handles requests to compare several channels.
// The body is either {"channels": [...]} or plain text with one URL per line.
func (s *Server) compareChannels(c *gin.Context) {
	var references []string
	if strings.HasPrefix(c.ContentType(), "text/plain") {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}
		references = []string{string(body)}
	} else {
		var req compareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
		references = req.Channels
	}

	if len(earnings.SplitReferences(references)) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "at least one channel URL is required",
			"kind":  models.ErrorKind(models.ErrInvalidReference),
		})
		return
	}

	sess, err := s.session(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := s.service.Compare(c.Request.Context(), sess, references)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondError maps the error taxonomy onto HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrMissingCredential):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrInvalidReference):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrResolutionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrUpstream):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		log.Printf("Request %s failed: %v", c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"kind":  models.ErrorKind(err),
	})
}

// Start starts the server on the specified port
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}
