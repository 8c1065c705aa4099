package entities

// Result is the envelope every tool call answers with.
type Result struct {
	Success   bool      `json:"success"`
	Action    string    `json:"action"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Code      ErrorCode `json:"code,omitempty"`
	Retryable bool      `json:"retryable,omitempty"`
}

// NewSuccessResult wraps the data returned by an action.
func NewSuccessResult(action, message string, data any) Result {
	return Result{
		Success: true,
		Action:  action,
		Message: message,
		Data:    data,
	}
}

// NewFailureResult wraps an error, exposing its code when it is an APIError.
func NewFailureResult(action, message string, err error) Result {
	result := Result{
		Success: false,
		Action:  action,
		Message: message,
	}
	if err == nil {
		return result
	}
	result.Error = err.Error()
	if apiErr, ok := AsAPIError(err); ok {
		result.Code = apiErr.Code
		result.Retryable = apiErr.Retryable
	}
	return result
}
