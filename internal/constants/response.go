package constants

// Standard response field keys
const (
	ResponseFieldError   = "error"
	ResponseFieldSuccess = "success"
	ResponseFieldMessage = "message"
)

// BuildErrorResponse returns the error envelope used by every failing
// endpoint. The API contract is a single human-readable `error` string.
func BuildErrorResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldError: message,
	}
}

// BuildSuccessResponse returns the common success envelope.
func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldSuccess: true,
		ResponseFieldMessage: message,
	}
}
