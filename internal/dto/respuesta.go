package dto

import "encoding/json"

// Respuesta is the envelope every SIVEC endpoint answers with:
// {success, data, message, error}. Data stays raw until the caller knows
// the concrete payload type.
type Respuesta struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}
