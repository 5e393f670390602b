package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/validators"
)

const (
	CodeInvalidRequest   = "invalid_request"
	CodeStoreUnavailable = "store_unavailable"
	CodeStoreRejected    = "store_rejected"
)

// Classify maps an error to its HTTP status and error code.
func Classify(err error) (int, string) {
	var fields validators.FieldErrors
	if errors.As(err, &fields) {
		return http.StatusBadRequest, CodeInvalidRequest
	}

	switch booking.KindOf(err) {
	case booking.KindValidation:
		return http.StatusBadRequest, CodeInvalidRequest
	case booking.KindStoreRejected:
		return http.StatusBadGateway, CodeStoreRejected
	default:
		return http.StatusServiceUnavailable, CodeStoreUnavailable
	}
}

// FromError writes err as a JSON error body. Field errors are listed per field.
func FromError(c *gin.Context, err error) {
	status, code := Classify(err)

	body := HTTPError{Code: code, Message: message(code)}

	var fields validators.FieldErrors
	if errors.As(err, &fields) {
		body.Fields = fields
	}

	c.JSON(status, body)
}

func message(code string) string {
	switch code {
	case CodeInvalidRequest:
		return "The request has invalid fields."
	case CodeStoreRejected:
		return "The document store rejected the request."
	default:
		return "The document store is unavailable. Please try again."
	}
}
