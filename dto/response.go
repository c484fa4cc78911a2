package dto

// ErrorCode defines machine-readable error classes returned by the API.
type ErrorCode string

const (
	ErrorCodeInvalidParameter   ErrorCode = "INVALID_PARAMETER"
	ErrorCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrorCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrorCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrorCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrorCodeConflict           ErrorCode = "CONFLICT"
	ErrorCodeConfigurationError ErrorCode = "CONFIGURATION_ERROR"
	ErrorCodeRateLimited        ErrorCode = "RATE_LIMITED"
	ErrorCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// ErrorDetails defines the structured error information in a response.
type ErrorDetails struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// Envelope is the shape of every JSON response
type Envelope struct {
	Success bool          `json:"success"`
	Data    interface{}   `json:"data,omitempty"`
	Error   *ErrorDetails `json:"error,omitempty"`
}

// PageRequest carries generic list pagination
type PageRequest struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=20" binding:"min=1,max=100"`
}

// ListResponse wraps a page of items with its pagination
type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}
