package response

import (
	"errors"
	"net/http"
	"time"

	pkgErrors "report-srv/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Layouts of dates and timestamps in response bodies.
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = time.RFC3339
)

const (
	MessageSuccess      = "Success"
	MessageUnauthorized = "Unauthorized"
	MessageForbidden    = "Forbidden"
	MessageInternal     = "Something went wrong"
	MessageValidation   = "Validation failed"
)

// Resp is the envelope of every JSON response. ErrorCode is 0 on success
// and the HTTP status otherwise.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// OK writes a 200 envelope around data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	})
}

// Error writes the envelope for err. HTTPError and ValidationErrors keep their
// meaning, anything else becomes a 500 without leaking the cause.
func Error(c *gin.Context, err error) {
	var httpErr *pkgErrors.HTTPError
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.Code, Resp{
			ErrorCode: httpErr.Code,
			Message:   httpErr.Message,
		})
		return
	}

	var vErrs pkgErrors.ValidationErrors
	if errors.As(err, &vErrs) {
		c.JSON(http.StatusBadRequest, Resp{
			ErrorCode: http.StatusBadRequest,
			Message:   MessageValidation,
			Errors:    vErrs,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   MessageInternal,
	})
}

func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Resp{
		ErrorCode: http.StatusUnauthorized,
		Message:   MessageUnauthorized,
	})
}

func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Resp{
		ErrorCode: http.StatusForbidden,
		Message:   MessageForbidden,
	})
}

// PanicError answers a recovered panic with a 500. The panic value is only logged.
func PanicError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   MessageInternal,
	})
}
