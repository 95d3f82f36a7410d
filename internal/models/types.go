package models

// NATS request from the messaging gateway
type ChatRequest struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id,omitempty"`
	Message   string `json:"message"`
}

// NATS response to the messaging gateway
type ChatResponse struct {
	SessionID    string  `json:"session_id"`
	RequestID    string  `json:"request_id,omitempty"`
	Reply        string  `json:"reply"`
	Intent       string  `json:"intent"`
	Stage        string  `json:"stage"`
	Status       string  `json:"status"` // "OK", "ERROR"
	ErrorCode    *string `json:"error_code,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`
}

// Status constants
const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Error codes
const (
	ErrorParseError     = "PARSE_ERROR"
	ErrorInvalidRequest = "INVALID_REQUEST"
)
