package ingestion

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	v1 "github.com/datainsight-lab/datainsight/internal/api/v1"
	"github.com/datainsight-lab/datainsight/internal/core/dataset"
	httperr "github.com/datainsight-lab/datainsight/internal/core/errors"
)

const (
	msgReadBodyFailed = "Failed to read request body"
	msgPersistFailed  = "Failed to store dataset"
	msgEmptyBody      = "Request body is empty"
)

// ingestionError carries the structured HTTP error shape from a helper back to the handler.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// upload is a request body resolved to a name, a format and its bytes.
type upload struct {
	name   string
	format Format
	body   []byte
}

// UploadHandler handles POST /v1/datasets.
// Accepts a multipart "file" field or a raw body; ?format= overrides the file extension.
func (s *Service) UploadHandler(c *gin.Context) {
	up, herr := s.readUpload(c)
	if herr != nil {
		writeError(c, herr)
		return
	}

	entry, err := s.Ingest(c.Request.Context(), up.name, up.format, bytes.NewReader(up.body))
	if err != nil {
		writeError(c, classify(err))
		return
	}

	c.JSON(http.StatusCreated, v1.NewDatasetResponse(entry, v1.DefaultPreviewRows))
}

// SampleHandler handles POST /v1/datasets/sample?rows=&seed=.
func (s *Service) SampleHandler(c *gin.Context) {
	var query struct {
		Rows int    `form:"rows"`
		Seed uint64 `form:"seed"`
	}
	query.Seed = dataset.DefaultSampleSeed
	if err := c.ShouldBindQuery(&query); err != nil {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRequestError,
			message:    "Invalid query parameters",
			details:    err.Error(),
		})
		return
	}
	if query.Rows < 0 {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRequestError,
			message:    "rows must not be negative",
		})
		return
	}

	entry, err := s.Sample(c.Request.Context(), query.Rows, query.Seed)
	if err != nil {
		writeError(c, classify(err))
		return
	}
	c.JSON(http.StatusCreated, v1.NewDatasetResponse(entry, v1.DefaultPreviewRows))
}

func (s *Service) readUpload(c *gin.Context) (*upload, *ingestionError) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return s.readMultipart(c)
	}

	limited := io.LimitReader(c.Request.Body, s.maxBodySizeBytes+1) // +1 to detect oversized requests
	body, err := io.ReadAll(limited)
	if err != nil {
		slog.Error("[Ingestion] Failed to read request body", "error", err)
		return nil, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}
	if int64(len(body)) > s.maxBodySizeBytes {
		return nil, s.tooLarge(int64(len(body)))
	}
	if len(body) == 0 {
		return nil, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRequestError,
			message:    msgEmptyBody,
		}
	}

	name := c.Query("name")
	format, err := ParseFormat(c.Query("format"), name)
	if err != nil {
		return nil, classify(err)
	}
	if name == "" {
		name = "upload." + string(format)
	}
	return &upload{name: name, format: format, body: body}, nil
}

func (s *Service) readMultipart(c *gin.Context) (*upload, *ingestionError) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodySizeBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, s.tooLarge(maxErr.Limit + 1)
		}
		return nil, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRequestError,
			message:    "Multipart upload must carry a \"file\" field",
			details:    err.Error(),
		}
	}

	format, err := ParseFormat(c.Query("format"), fh.Filename)
	if err != nil {
		return nil, classify(err)
	}

	f, err := fh.Open()
	if err != nil {
		slog.Error("[Ingestion] Failed to open uploaded file", "error", err, "filename", fh.Filename)
		return nil, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		return nil, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}
	return &upload{name: fh.Filename, format: format, body: body}, nil
}

func (s *Service) tooLarge(size int64) *ingestionError {
	slog.Warn("[Ingestion] Upload exceeds maximum size", "size", size, "max", s.maxBodySizeBytes)
	return &ingestionError{
		statusCode: http.StatusRequestEntityTooLarge,
		errorType:  httperr.HttpPayloadTooLargeError,
		message:    "Upload exceeds maximum allowed size",
		details: map[string]interface{}{
			"max_size_mb": s.maxBodySizeBytes / (1024 * 1024),
		},
	}
}

// classify maps parse and storage errors onto HTTP responses.
func classify(err error) *ingestionError {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return &ingestionError{
			statusCode: http.StatusUnsupportedMediaType,
			errorType:  httperr.HttpUnsupportedFormatError,
			message:    err.Error(),
			details:    map[string]interface{}{"supported": Formats},
		}
	case errors.Is(err, ErrTooManyRows):
		return &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpDatasetTooLargeError,
			message:    err.Error(),
		}
	case errors.Is(err, ErrInvalidDataset):
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidDatasetError,
			message:    err.Error(),
		}
	default:
		slog.Error("[Ingestion] Failed to store dataset", "error", err)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}

