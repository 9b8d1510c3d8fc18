// Package server is the thin HTTP wrapper around the verification
// pipeline. It owns no verification logic: it binds the request shape,
// delegates, and maps the pipeline's error categories onto status codes.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"veracity/internal/model"
	"veracity/internal/pipeline"
)

// Verifier is the single operation the server exposes.
type Verifier interface {
	Verify(ctx context.Context, req model.VerifyRequest) (*model.VerifyResult, error)
}

// Server serves the verification API.
type Server struct {
	engine   *gin.Engine
	verifier Verifier
	addr     string
}

// New creates a server around the given verifier.
func New(verifier Verifier, addr string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:   engine,
		verifier: verifier,
		addr:     addr,
	}

	engine.GET("/healthz", s.handleHealth)
	engine.POST("/api/verify", s.handleVerify)

	return s
}

// Run blocks serving HTTP until the listener fails.
func (s *Server) Run() error {
	slog.Info("serving verification API", "addr", s.addr)
	return s.engine.Run(s.addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type errorBody struct {
	Category string `json:"category"`
	Detail   string `json:"detail"`
}

func (s *Server) handleVerify(c *gin.Context) {
	var req model.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{
			Category: "invalid_request",
			Detail:   err.Error(),
		}})
		return
	}

	result, err := s.verifier.Verify(c.Request.Context(), req)
	if err != nil {
		status, category := classifyError(err)
		c.JSON(status, gin.H{"error": errorBody{
			Category: category,
			Detail:   err.Error(),
		}})
		return
	}

	c.JSON(http.StatusOK, result)
}

// classifyError maps pipeline sentinels onto HTTP status codes and the
// short machine-checkable category.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, pipeline.ErrEmptyClaim):
		return http.StatusBadRequest, "empty_claim"
	case errors.Is(err, pipeline.ErrInvalidStrategy):
		return http.StatusBadRequest, "invalid_strategy"
	case errors.Is(err, pipeline.ErrVerdictGeneration):
		return http.StatusBadGateway, "verdict_generation_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
