// Package server exposes the assistant over HTTP.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"job-assistant/internal/assistant"
	"job-assistant/internal/common/errors"
	"job-assistant/internal/common/logger"
	"job-assistant/internal/common/validation"
	"job-assistant/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessCheck reports whether a backing dependency is reachable.
type ReadinessCheck func(ctx context.Context) error

type Options struct {
	Limiter *ratelimit.Limiter
	Checks  map[string]ReadinessCheck
}

// A missing or null user_input is answered like empty text.
var requestSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"user_input": {"type": ["string", "null"]}
	}
}`)

// NewRouter builds the gin engine with every route and middleware.
func NewRouter(a *assistant.Assistant, log logger.Logger, opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(CORS())
	r.Use(RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	r.GET("/ready", readyHandler(opts.Checks))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("")
	if opts.Limiter != nil {
		api.Use(RateLimit(opts.Limiter, log))
	}
	api.POST("/get_job_response", jobResponseHandler(a, log))

	return r
}

func jobResponseHandler(a *assistant.Assistant, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, err := decodeUserInput(c)
		if err != nil {
			stdErr := errors.Normalize(err)
			log.Warn("invalid request body", map[string]interface{}{
				"requestId": c.GetString(requestIDKey),
				"errorCode": string(stdErr.Code),
				"details":   stdErr.Details,
			})
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   stdErr.Message,
				"code":    stdErr.Code,
				"details": stdErr.Details,
			})
			return
		}

		c.JSON(http.StatusOK, a.Answer(c.Request.Context(), input))
	}
}

func decodeUserInput(c *gin.Context) (string, error) {
	body, err := c.GetRawData()
	if err != nil {
		return "", errors.NewInvalidRequestError(err.Error())
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", errors.NewInvalidRequestError("body is not valid JSON")
	}

	result, err := requestSchema.Validate(doc)
	if err != nil {
		return "", err
	}
	if !result.Valid {
		return "", errors.NewInvalidRequestError(strings.Join(result.GetErrorMessages(), "; "))
	}

	input, _ := doc.(map[string]interface{})["user_input"].(string)
	return input, nil
}

func readyHandler(checks map[string]ReadinessCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		state := "ready"
		if status != http.StatusOK {
			state = "not ready"
		}
		c.JSON(status, gin.H{
			"status": state,
			"checks": results,
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// Server owns the http.Server around the router.
type Server struct {
	srv    *http.Server
	logger logger.Logger
}

func New(addr string, handler http.Handler, log logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: log,
	}
}

// Run blocks until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("HTTP server listening", map[string]interface{}{"address": s.srv.Addr})
	if err := s.srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down", nil)
	return s.srv.Shutdown(ctx)
}
