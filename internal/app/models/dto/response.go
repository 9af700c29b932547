package dto

import "time"

// APIResponse is the envelope every successful endpoint returns
type APIResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// IDResponse is returned by create endpoints
type IDResponse struct {
	ID int64 `json:"id"`
}

// HealthResponse reports liveness and store reachability
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
