package models

// Response codes
const (
	CodeSuccess = 0

	// client errors (1000-1999)
	CodeInvalidParams   = 1000
	CodeMissingParams   = 1001
	CodeProfileNotFound = 1003

	// server errors (2000-2999)
	CodeServerError     = 2000
	CodeDatabaseError   = 2001
	CodeProfileGenError = 2002
	CodeStoreDisabled   = 2004
)

// CodeMessages maps a code to its default message.
var CodeMessages = map[int]string{
	CodeSuccess:         "success",
	CodeInvalidParams:   "invalid parameters",
	CodeMissingParams:   "missing required parameters",
	CodeProfileNotFound: "profile not found",
	CodeServerError:     "internal server error",
	CodeDatabaseError:   "database error",
	CodeProfileGenError: "profile analysis failed",
	CodeStoreDisabled:   "profile store is not configured",
}

// NewSuccessResponse builds a success envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Code:    CodeSuccess,
		Message: CodeMessages[CodeSuccess],
		Data:    data,
	}
}

// NewErrorResponse builds an error envelope with the default message for code.
func NewErrorResponse(code int, data interface{}) APIResponse {
	message, exists := CodeMessages[code]
	if !exists {
		message = "unknown error"
	}
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// NewCustomErrorResponse builds an error envelope with a custom message.
func NewCustomErrorResponse(code int, message string, data interface{}) APIResponse {
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}
