package errors

const (
	HttpInternalError         = "internal_error"
	HttpInvalidArgumentError  = "invalid_argument"
	HttpDataSourceError       = "data_source_unavailable"
	HttpTimeoutError          = "timeout"
	HttpRecomputeInProgress   = "recompute_in_progress"
	HttpCacheKeyNotFoundError = "cache_key_not_found"
)

// ErrorResponse is the error body returned by every HTTP endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
