package charting

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/datainsight-lab/datainsight/internal/api/v1"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	httperr "github.com/datainsight-lab/datainsight/internal/core/errors"
	"github.com/datainsight-lab/datainsight/internal/core/storage"
	"github.com/datainsight-lab/datainsight/internal/render"
)

// RegisterRoutes registers the dataset, chart and diagnostic routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/backends", s.HandleBackends)
	r.GET("/v1/presets", s.HandlePresets)

	r.GET("/v1/datasets", s.HandleListDatasets)
	r.GET("/v1/datasets/:id", s.HandleGetDataset)
	r.DELETE("/v1/datasets/:id", s.HandleDeleteDataset)
	r.GET("/v1/datasets/:id/summary", s.HandleSummary)

	r.POST("/v1/datasets/:id/validate", s.HandleValidate)
	r.POST("/v1/datasets/:id/aggregate", s.HandleAggregate)
	r.POST("/v1/datasets/:id/charts", s.HandleRender)
	r.POST("/v1/datasets/:id/dashboard", s.HandleDashboard)
}

// HandleBackends handles GET /v1/backends
func (s *Service) HandleBackends(c *gin.Context) {
	backends := s.Backends()
	resp := v1.BackendsResponse{Backends: make([]v1.BackendStatus, len(backends))}
	for i, b := range backends {
		resp.Backends[i] = v1.BackendStatus{Name: b.Name(), Position: i + 1, Enabled: render.Available(b)}
	}
	c.JSON(http.StatusOK, resp)
}

// HandlePresets handles GET /v1/presets
func (s *Service) HandlePresets(c *gin.Context) {
	presets, err := s.Presets(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Failed to list presets")
		return
	}
	c.JSON(http.StatusOK, v1.PresetListResponse{Presets: presets})
}

// HandleListDatasets handles GET /v1/datasets
func (s *Service) HandleListDatasets(c *gin.Context) {
	list, err := s.Datasets(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Failed to list datasets")
		return
	}
	if list == nil {
		list = []storage.Metadata{}
	}
	c.JSON(http.StatusOK, v1.DatasetListResponse{Datasets: list, Count: len(list)})
}

// HandleGetDataset handles GET /v1/datasets/:id
// Query parameters: preview (records to echo back, default 5)
func (s *Service) HandleGetDataset(c *gin.Context) {
	var query struct {
		Preview *int `form:"preview"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBadRequest(c, "Invalid query parameters", err.Error())
		return
	}
	preview := v1.DefaultPreviewRows
	if query.Preview != nil {
		preview = *query.Preview
	}

	entry, err := s.Dataset(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "Failed to load dataset")
		return
	}
	c.JSON(http.StatusOK, v1.NewDatasetResponse(entry, preview))
}

// HandleDeleteDataset handles DELETE /v1/datasets/:id
func (s *Service) HandleDeleteDataset(c *gin.Context) {
	if err := s.DeleteDataset(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err, "Failed to delete dataset")
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleSummary handles GET /v1/datasets/:id/summary
func (s *Service) HandleSummary(c *gin.Context) {
	summary, err := s.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "Failed to summarise dataset")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// HandleValidate handles POST /v1/datasets/:id/validate
func (s *Service) HandleValidate(c *gin.Context) {
	var spec chart.Spec
	if err := c.ShouldBindJSON(&spec); err != nil {
		writeBadRequest(c, "Invalid chart specification body", err.Error())
		return
	}
	if err := s.Validate(c.Request.Context(), c.Param("id"), spec); err != nil {
		writeServiceError(c, err, "Failed to validate chart")
		return
	}
	c.JSON(http.StatusOK, v1.ValidateResponse{Valid: true})
}

// HandleAggregate handles POST /v1/datasets/:id/aggregate
func (s *Service) HandleAggregate(c *gin.Context) {
	var req v1.AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid aggregate body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeBadRequest(c, "Invalid aggregate request", err.Error())
		return
	}

	view, err := s.Aggregate(c.Request.Context(), c.Param("id"), req.GroupBy, req.ValueColumn, req.Op, req.TopN)
	if err != nil {
		writeServiceError(c, err, "Failed to aggregate dataset")
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleRender handles POST /v1/datasets/:id/charts
// Query parameters: include_view (echo the aggregated view)
func (s *Service) HandleRender(c *gin.Context) {
	var req v1.ChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid chart request body", err.Error())
		return
	}

	result, err := s.Render(c.Request.Context(), c.Param("id"), req.Spec, req.Backends)
	if err != nil {
		writeServiceError(c, err, "Failed to render chart")
		return
	}

	if !result.Outcome.Succeeded() {
		c.JSON(http.StatusUnprocessableEntity, httperr.ErrorResponse{
			ErrorType: httperr.HttpAllBackendsFailedError,
			Message:   "No rendering backend could draw the chart",
			Details:   map[string]interface{}{"failures": result.Outcome.Failures},
		})
		return
	}

	view := result.View
	if c.Query("include_view") != "true" {
		view = nil
	}
	c.JSON(http.StatusOK, v1.NewChartResponse(result.Outcome, view))
}

// HandleDashboard handles POST /v1/datasets/:id/dashboard
func (s *Service) HandleDashboard(c *gin.Context) {
	var req v1.DashboardRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, "Invalid dashboard body", err.Error())
			return
		}
	}

	resp, err := s.Dashboard(c.Request.Context(), c.Param("id"), req.Presets)
	if err != nil {
		writeServiceError(c, err, "Failed to render dashboard")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func writeBadRequest(c *gin.Context, message string, details interface{}) {
	c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
		ErrorType: httperr.HttpInvalidRequestError,
		Message:   message,
		Details:   details,
	})
}

// writeServiceError maps service errors onto status codes.
func writeServiceError(c *gin.Context, err error, message string) {
	var specErr *chart.InvalidSpecificationError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpDatasetNotFoundError,
			Message:   "Dataset not found",
			Details:   map[string]interface{}{"dataset_id": c.Param("id")},
		})
	case errors.As(err, &specErr):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidSpecification,
			Message:   specErr.Error(),
			Details:   specErr.Details(),
		})
	case errors.Is(err, ErrInvalidAggregate),
		errors.Is(err, render.ErrUnknownBackend),
		errors.Is(err, render.ErrDuplicateBackend),
		errors.Is(err, render.ErrEmptyRegistry):
		writeBadRequest(c, message, err.Error())
	default:
		slog.Error("[Charting] Request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   message,
			Details:   err.Error(),
		})
	}
}
