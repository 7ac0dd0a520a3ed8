// Package server exposes invoice generation over HTTP for callers that
// prefer an API to the CLI.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adukale/gst-shopify/internal/model"
	"github.com/adukale/gst-shopify/internal/pipeline"
	"github.com/adukale/gst-shopify/internal/shopify"
)

// Config holds server configuration.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server is the HTTP API server.
type Server struct {
	config *Config
	router *gin.Engine
	client *shopify.Client
	runner *pipeline.Runner
	log    *zap.SugaredLogger
}

// NewServer creates an API server around an existing client and runner.
func NewServer(config *Config, client *shopify.Client, runner *pipeline.Runner, log *zap.SugaredLogger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config: config,
		router: router,
		client: client,
		runner: runner,
		log:    log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/invoices", s.handleGenerateInvoice)
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGenerateInvoice(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.OrderName == "" && req.OrderID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order_name or order_id required"})
		return
	}

	ctx := c.Request.Context()

	orderID := req.OrderID
	if orderID == "" {
		nameToID, err := s.client.OrderIDsFromNames(ctx, []string{req.OrderName}, 1)
		if err != nil {
			s.writeError(c, err)
			return
		}
		orderID = nameToID[req.OrderName]
	}

	doc, mismatch, err := s.runner.GenerateOne(ctx, orderID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	resp := GenerateResponse{Invoice: doc}
	if mismatch != "" {
		resp.Warnings = append(resp.Warnings, mismatch)
	}
	c.JSON(http.StatusOK, resp)
}

// writeError maps the error taxonomy onto HTTP statuses: validation
// failures are the caller's problem, upstream failures are a bad gateway.
func (s *Server) writeError(c *gin.Context, err error) {
	var (
		missingField *model.MissingRequiredFieldError
		noItems      *model.NoInvoiceableItemsError
		transport    *model.TransportError
		exhausted    *model.MaxRetriesExceededError
	)
	switch {
	case errors.As(err, &missingField), errors.As(err, &noItems):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.As(err, &transport), errors.As(err, &exhausted):
		s.log.Errorw("upstream failure", "error", err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	default:
		s.log.Errorw("invoice generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
