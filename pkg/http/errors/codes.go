package errors

import "net/http"

// Messages carried in the error envelope, keyed by HTTP status.
const (
	MessageBadRequest       = "bad request"
	MessageNotFound         = "resource not found"
	MessageMethodNotAllowed = "method not allowed"
	MessageUnprocessable    = "unprocessable"
	MessageServerError      = "server error"
)

var messages = map[int]string{
	http.StatusBadRequest:          MessageBadRequest,
	http.StatusNotFound:            MessageNotFound,
	http.StatusMethodNotAllowed:    MessageMethodNotAllowed,
	http.StatusUnprocessableEntity: MessageUnprocessable,
	http.StatusInternalServerError: MessageServerError,
}

// MessageFor returns the envelope message for status, falling back to the
// standard status text.
func MessageFor(status int) string {
	if msg, ok := messages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}
