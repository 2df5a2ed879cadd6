package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"phishguard/backend/internal/ai"
)

const (
	serviceName     = "PhishGuard AI"
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// Config defines server dependencies.
type Config struct {
	AIConfig       ai.Config
	AllowedOrigins []string
	StaticDir      string

	// Analyzer overrides the GenAI client built from AIConfig.
	Analyzer ai.Analyzer
}

// Server wires HTTP handlers with the scan pipeline.
type Server struct {
	analyzer       ai.Analyzer
	model          string
	allowedOrigins []string
	staticDir      string
}

// NewServer constructs the API server.
func NewServer(cfg Config) (*Server, error) {
	analyzer := cfg.Analyzer
	model := strings.TrimSpace(cfg.AIConfig.Model)
	if analyzer == nil {
		client, err := ai.NewClient(cfg.AIConfig)
		if errors.Is(err, ai.ErrDisabled) {
			return nil, fmt.Errorf("genai analyzer disabled: configure GROQ_API_KEY")
		} else if err != nil {
			return nil, fmt.Errorf("ai client: %w", err)
		}
		analyzer = client
		model = client.Model()
	}
	if named, ok := analyzer.(interface{ Model() string }); ok && model == "" {
		model = named.Model()
	}

	server := &Server{
		analyzer:       analyzer,
		model:          model,
		allowedOrigins: cfg.AllowedOrigins,
	}

	if dir := strings.TrimSpace(cfg.StaticDir); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			server.staticDir = dir
		} else {
			logrus.WithField("static_dir", dir).Info("static UI directory not found, UI disabled")
		}
	}

	return server, nil
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.ExposeHeaders = []string{requestIDHeader}
	r.Use(cors.New(corsCfg))
	r.Use(requestID())

	r.GET("/health", s.handleHealth)
	r.POST("/scan", s.handleScan)

	if s.staticDir != "" {
		files := http.FileServer(gin.Dir(s.staticDir, false))
		r.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				s.renderError(c, http.StatusNotFound, errors.New("not found"))
				return
			}
			files.ServeHTTP(c.Writer, c.Request)
		})
	}

	return r, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName, "model": s.model})
}

func (s *Server) handleScan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("request body is required")
		}
		s.renderError(c, http.StatusUnprocessableEntity, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.renderError(c, http.StatusUnprocessableEntity, err)
		return
	}

	log := logrus.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"url":        req.URL,
	})
	resp, err := s.scan(c.Request.Context(), req, log)
	if err != nil {
		s.renderError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ai.ErrContract):
		return http.StatusBadGateway
	case errors.Is(err, ai.ErrUnavailable), errors.Is(err, ai.ErrDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
