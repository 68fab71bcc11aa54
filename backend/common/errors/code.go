package errors

import "net/http"

type Code string

// Error taxonomy. ServiceError never reaches a handler response: the AI
// chat pipeline absorbs completion failures into an in-band chat message.
const (
	CodeUnauthenticated  Code = "UNAUTHENTICATED"
	CodeNotFound         Code = "NOT_FOUND"
	CodeAccessDenied     Code = "ACCESS_DENIED"
	CodeConflict         Code = "CONFLICT"
	CodeInvalidOperation Code = "INVALID_OPERATION"
	CodeInvalidParam     Code = "INVALID_PARAM"
	CodeServiceError     Code = "SERVICE_ERROR"
	CodeInternal         Code = "INTERNAL"
)

// HTTPStatus maps a taxonomy code to the response status.
func HTTPStatus(code Code) int {
	switch code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAccessDenied:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	case CodeInvalidOperation, CodeInvalidParam:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
