package export

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/datainsight-lab/datainsight/internal/core/errors"
	"github.com/datainsight-lab/datainsight/internal/core/storage"
)

// RegisterRoutes registers the export route.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/datasets/:id/export", s.HandleExport)
}

// HandleExport handles GET /v1/datasets/:id/export
// Query parameters: format (csv, json or xlsx; default csv)
func (s *Service) HandleExport(c *gin.Context) {
	format, err := ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpUnsupportedFormatError,
			Message:   err.Error(),
			Details:   map[string]interface{}{"supported": []Format{FormatCSV, FormatJSON, FormatXLSX}},
		})
		return
	}

	id := c.Param("id")
	file, err := s.Export(c.Request.Context(), id, format)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpDatasetNotFoundError,
				Message:   "Dataset not found",
				Details:   map[string]interface{}{"dataset_id": id},
			})
			return
		}
		slog.Error("[Export] Export failed", "dataset_id", id, "format", format, "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to export dataset",
			Details:   err.Error(),
		})
		return
	}

	slog.Debug("[Export] Dataset exported", "dataset_id", id, "format", format, "bytes", len(file.Body))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.MediaType, file.Body)
}
