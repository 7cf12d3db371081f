package dto

// Envelope is the uniform response wrapper: {"success": true, "data": ...}
// on success, {"success": false, "error": "..."} on failure.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success wraps data in a successful envelope.
func Success(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// Error wraps a message in a failure envelope.
func Error(message string) Envelope {
	return Envelope{Success: false, Error: message}
}
