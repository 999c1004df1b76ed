package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weatherstyle/internal/domain/recommend"
	"github.com/yanqian/weatherstyle/internal/domain/styling"
	"github.com/yanqian/weatherstyle/internal/domain/weather"
	"github.com/yanqian/weatherstyle/internal/infra/config"
	apperrors "github.com/yanqian/weatherstyle/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	weatherSvc     weather.Service
	recommendSvc   recommend.Service
	stylingSvc     styling.Service
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(cfg *config.Config, weatherSvc weather.Service, recommendSvc recommend.Service, stylingSvc styling.Service, logger *slog.Logger) *Handler {
	maxUpload := cfg.HTTP.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &Handler{
		weatherSvc:     weatherSvc,
		recommendSvc:   recommendSvc,
		stylingSvc:     stylingSvc,
		maxUploadBytes: maxUpload,
		logger:         logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// WeatherByCoordinates returns current conditions and the forecast for lat/lon.
func (h *Handler) WeatherByCoordinates(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(c.Query("lat")), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(c.Query("lon")), 64)
	if latErr != nil || lonErr != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, "Latitude and longitude are required", nil))
		return
	}

	snapshot := h.weatherSvc.Snapshot(c.Request.Context(), lat, lon)
	c.JSON(http.StatusOK, gin.H{
		"current":  snapshot.Current,
		"forecast": snapshot.Forecast,
	})
}

type cityRequest struct {
	City string `json:"city"`
}

// WeatherByCity returns current conditions for a named city.
func (h *Handler) WeatherByCity(c *gin.Context) {
	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.City) == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, "City name is required", err))
		return
	}
	c.JSON(http.StatusOK, h.weatherSvc.ByCity(c.Request.Context(), strings.TrimSpace(req.City)))
}

// StyleRecommendation returns rule based outfit suggestions.
func (h *Handler) StyleRecommendation(c *gin.Context) {
	req, ok := h.bindRecommendRequest(c)
	if !ok {
		return
	}
	resp, err := h.recommendSvc.Styles(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActivityRecommendation returns rule based activity suggestions.
func (h *Handler) ActivityRecommendation(c *gin.Context) {
	req, ok := h.bindRecommendRequest(c)
	if !ok {
		return
	}
	resp, err := h.recommendSvc.Activities(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) bindRecommendRequest(c *gin.Context) (recommend.Request, bool) {
	var req recommend.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, "Weather and preferences are required", err))
		return req, false
	}
	return req, true
}

// PhotoAnalysis runs the AI styling pipeline for a multipart or JSON request.
func (h *Handler) PhotoAnalysis(c *gin.Context) {
	in, err := h.parsePhotoRequest(c)
	if err != nil {
		abortWithError(c, photoError(err))
		return
	}

	resp, err := h.stylingSvc.Analyze(c.Request.Context(), in)
	if err != nil {
		abortWithError(c, photoError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PhotoPreview returns the fixed basic analysis for an image URL.
func (h *Handler) PhotoPreview(c *gin.Context) {
	resp, err := h.stylingSvc.QuickPreview(c.Request.Context(), c.Query("imageUrl"))
	if err != nil {
		abortWithError(c, photoError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QuickAnalysis returns the fixed basic analysis for uploaded image data.
func (h *Handler) QuickAnalysis(c *gin.Context) {
	var req styling.QuickAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, photoError(apperrors.Wrap(apperrors.CodeInvalidInput, "Image data is required", err)))
		return
	}
	resp, err := h.stylingSvc.QuickAnalysis(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, photoError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}
