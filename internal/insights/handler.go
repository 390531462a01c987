package insights

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/datainsight-lab/datainsight/internal/api/v1"
	httperr "github.com/datainsight-lab/datainsight/internal/core/errors"
	"github.com/datainsight-lab/datainsight/internal/core/storage"
)

// RegisterRoutes registers the insights routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/datasets/:id/insights", s.HandleGenerate)
	r.GET("/v1/datasets/:id/insights", s.HandleLatest)
}

// HandleGenerate handles POST /v1/datasets/:id/insights
// The body is optional: {"prompt": "..."} replaces the default question.
func (s *Service) HandleGenerate(c *gin.Context) {
	var req v1.InsightsRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidRequestError,
				Message:   "Invalid request body",
				Details:   err.Error(),
			})
			return
		}
	}

	id := c.Param("id")
	insight, err := s.Generate(c.Request.Context(), id, req.Prompt)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.InsightsResponse{
		DatasetID:   insight.DatasetID,
		Model:       insight.Model,
		Text:        insight.Text,
		GeneratedAt: insight.GeneratedAt,
	})
}

// HandleLatest handles GET /v1/datasets/:id/insights
func (s *Service) HandleLatest(c *gin.Context) {
	id := c.Param("id")
	text, err := s.Latest(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v1.InsightsResponse{DatasetID: id, Text: text})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpDatasetNotFoundError,
			Message:   "Dataset not found",
			Details:   map[string]interface{}{"dataset_id": c.Param("id")},
		})
	case errors.Is(err, ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpInsightsUnavailable,
			Message:   "Insights are not configured",
		})
	case errors.Is(err, ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, httperr.ErrorResponse{
			ErrorType: httperr.HttpInsightsTimeoutError,
			Message:   "Insights generation timed out",
			Details:   err.Error(),
		})
	case errors.Is(err, ErrUpstream):
		c.JSON(http.StatusBadGateway, httperr.ErrorResponse{
			ErrorType: httperr.HttpInsightsFailedError,
			Message:   "Insights provider failed",
			Details:   err.Error(),
		})
	default:
		slog.Error("[Insights] Request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to generate insights",
			Details:   err.Error(),
		})
	}
}
