package response

import "github.com/gofiber/fiber/v3"

type SemanticResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// Meta accompanies list payloads.
type Meta struct {
	Count         int  `json:"count"`
	MinPercentage *int `json:"min_percentage,omitempty"`
	Limit         int  `json:"limit,omitempty"`
}

const (
	MessageOK                  = "ok"
	MessageAccepted            = "accepted"
	MessageBadRequest          = "bad request"
	MessageNotFound            = "not found"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageServiceUnavailable  = "service unavailable"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
)

func Success(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data, nil)
}

func List(c fiber.Ctx, data any, meta Meta) error {
	return write(c, fiber.StatusOK, MessageOK, data, &meta)
}

func Error(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data, nil)
}

func write(c fiber.Ctx, status int, message string, data any, meta *Meta) error {
	st := normalizeStatus(status)
	if message == "" {
		message = DefaultMessage(st)
	}
	return c.Status(st).JSON(SemanticResponse{Status: st, Message: message, Data: data, Meta: meta})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func DefaultMessage(status int) string {
	switch status {
	case fiber.StatusOK:
		return MessageOK
	case fiber.StatusAccepted:
		return MessageAccepted
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusUnprocessableEntity:
		return MessageUnprocessableEntity
	case fiber.StatusServiceUnavailable:
		return MessageServiceUnavailable
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
