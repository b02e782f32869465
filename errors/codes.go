package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Schema errors. These are user configuration problems and are fixed by
// editing the field catalog.
const (
	// ErrCodeDependencyInvalid indicates the catalog has self, missing or circular references.
	ErrCodeDependencyInvalid ErrorCode = "DEPENDENCY_INVALID"
	// ErrCodeInvalidInput indicates a malformed schema document or field definition.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates a schema document or field was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Execution errors
const (
	// ErrCodeIncompleteSchedule indicates the scheduler did not place every field in a wave.
	ErrCodeIncompleteSchedule ErrorCode = "INCOMPLETE_SCHEDULE"
	// ErrCodeTransformFailed indicates a transformer returned an error for a field.
	ErrCodeTransformFailed ErrorCode = "TRANSFORM_FAILED"
	// ErrCodeTimeout indicates a field evaluation exceeded its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTransformFailed: true,
	ErrCodeTimeout:         true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
