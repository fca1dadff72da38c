package response

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Details    []Detail    `json:"details,omitempty"`
}

// Detail carries one machine-readable reason behind an error, e.g. a group restriction code.
type Detail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// ErrorWithDetails is Error plus a list of reasons.
func ErrorWithDetails(statusCode int, err string, details []Detail) Response {
	res := Error(statusCode, err)
	res.Details = details
	return res
}
