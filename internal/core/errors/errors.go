package errors

const (
	HttpInternalError          = "internal_error"
	HttpInvalidRequestError    = "invalid_request"
	HttpDatasetNotFoundError   = "dataset_not_found"
	HttpPresetNotFoundError    = "preset_not_found"
	HttpInvalidSpecification   = "invalid_specification"
	HttpAllBackendsFailedError = "all_backends_failed"
	HttpUnsupportedFormatError = "unsupported_format"
	HttpPayloadTooLargeError   = "payload_too_large"
	HttpInsightsUnavailable    = "insights_unavailable"
	HttpInsightsFailedError    = "insights_failed"
	HttpInsightsTimeoutError   = "insights_timeout"
	HttpInvalidDatasetError    = "invalid_dataset"
	HttpDatasetTooLargeError   = "dataset_too_large"
)

// ErrorResponse is the error response body shared by every handler.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
