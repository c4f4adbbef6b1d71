package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error описывает ответ сервера со статусом вне диапазона 2xx.
// Message заполняется из тела ошибки, если его удалось разобрать.
type Error struct {
	StatusCode int    // HTTP-статус ответа
	Message    string // Сообщение сервера либо усечённое тело ответа
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// errorBody — формат тела ошибки удалённого сервиса.
// message может быть как строкой, так и массивом строк.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Err     string          `json:"error"`
}

const maxErrorBody = 512

// newError строит *Error из статуса и сырого тела ответа.
func newError(status int, body []byte) *Error {
	apiErr := &Error{StatusCode: status}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Message = decodeMessage(parsed)
	}
	if apiErr.Message == "" {
		text := strings.TrimSpace(string(body))
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		apiErr.Message = text
	}
	return apiErr
}

func decodeMessage(parsed errorBody) string {
	var single string
	if json.Unmarshal(parsed.Message, &single) == nil && single != "" {
		return single
	}
	var many []string
	if json.Unmarshal(parsed.Message, &many) == nil && len(many) > 0 {
		return strings.Join(many, ", ")
	}
	return parsed.Err
}
