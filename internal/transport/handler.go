package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-image-quality/internal/config"
	"go-image-quality/internal/logger"
	"go-image-quality/internal/observer"
	"go-image-quality/internal/service"
	"go-image-quality/pkg/analyzer"
	apperrors "go-image-quality/pkg/errors"
	"go-image-quality/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StatsProvider reports worker pool activity
type StatsProvider interface {
	Stats() analyzer.PoolStats
}

// StatsResponse is the body of GET /stats
type StatsResponse struct {
	Analyses observer.Metrics   `json:"analyses"`
	Pool     analyzer.PoolStats `json:"pool"`
}

// Handler serves the HTTP API
type Handler struct {
	svc     service.ImageAnalysisService
	metrics *observer.MetricsObserver
	pool    StatsProvider
	cfg     *config.Config
}

func NewHandler(svc service.ImageAnalysisService, metrics *observer.MetricsObserver, pool StatsProvider, cfg *config.Config) http.Handler {
	h := &Handler{svc: svc, metrics: metrics, pool: pool, cfg: cfg}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		requestLogger(),
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.POST("/analyze", h.analyzeImage)
	r.POST("/analyze/raw", h.analyzeRaw)
	r.GET("/analyses", h.analysisHistory)
	r.GET("/analyses/:id", h.getAnalysis)
	r.GET("/stats", h.stats)

	return r
}

func (h *Handler) analyzeImage(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.ImageFetchTimeout+h.cfg.AnalysisTimeout)
	defer cancel()

	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format", err)
		return
	}

	options, err := service.ResolveOptions(h.cfg.AnalysisOptions(), req.Options)
	if err != nil {
		respondError(c, apperrors.GetStatusCode(err), "invalid analysis options", err)
		return
	}

	logger.WithFields(logrus.Fields{
		"url":          req.URL,
		"noise_method": options.NoiseMethod,
	}).Debug("Analyzing image URL")

	response, err := h.svc.AnalyzeImageURL(ctx, req.URL, options)
	if err != nil {
		respondError(c, determineStatusCode(err), "image analysis failed", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) analyzeRaw(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.AnalysisTimeout)
	defer cancel()

	var req models.RawAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format", err)
		return
	}

	options, err := service.ResolveOptions(h.cfg.AnalysisOptions(), req.Options)
	if err != nil {
		respondError(c, apperrors.GetStatusCode(err), "invalid analysis options", err)
		return
	}

	raw, err := service.RawImageFromRequest(req)
	if err != nil {
		respondError(c, apperrors.GetStatusCode(err), "invalid pixel buffer", err)
		return
	}

	response, err := h.svc.AnalyzeRaw(ctx, raw, options)
	if err != nil {
		respondError(c, determineStatusCode(err), "image analysis failed", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	response, err := h.svc.GetAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, determineStatusCode(err), "analysis lookup failed", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// analysisHistory lists the retained analyses of ?source=, newest first. source=raw lists uploaded buffers.
func (h *Handler) analysisHistory(c *gin.Context) {
	source := c.Query("source")
	history, err := h.svc.GetAnalysisHistory(c.Request.Context(), source)
	if err != nil {
		respondError(c, determineStatusCode(err), "analysis history lookup failed", err)
		return
	}
	c.JSON(http.StatusOK, models.AnalysisHistoryResponse{Source: source, Analyses: history})
}

func (h *Handler) stats(c *gin.Context) {
	var resp StatsResponse
	if h.metrics != nil {
		resp.Analyses = h.metrics.GetMetrics()
	}
	if h.pool != nil {
		resp.Pool = h.pool.Stats()
	}
	c.JSON(http.StatusOK, resp)
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.ClientIP(),
		}).Info("Request handled")
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err.Err), "request processing failed", err.Err)
		}
	}
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return apperrors.GetStatusCode(appErr)
	}

	// Fallback to context-based errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	entry := logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	})
	if code >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}

	resp := models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		resp.Type = string(appErr.Type)
	}
	c.AbortWithStatusJSON(code, resp)
}
