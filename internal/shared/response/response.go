package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every domain-level outcome is HTTP 200 with this envelope; clients branch
// on error presence, not transport status. Only schema violations and
// unclassified infrastructure failures use a 5xx status.
type Envelope struct {
	Value any        `json:"value"`
	Error *ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrorCode is the stable numeric code reported to clients.
type ErrorCode int

const (
	// Book 1000 ~ 1999
	CodeBookNotFound     ErrorCode = 1000
	CodeDuplicateBook    ErrorCode = 1001
	CodeIllegalBookState ErrorCode = 1002

	// Person 2000 ~ 2999
	CodePersonNotFound     ErrorCode = 2000
	CodeDuplicatePerson    ErrorCode = 2001
	CodeIllegalPersonState ErrorCode = 2002

	// Application 3000 ~ 3999
	CodeIllegalArgument ErrorCode = 3000

	// Server faults 5000 ~
	CodeInternal ErrorCode = 5000
)

// OK renders a success envelope.
func OK(c *gin.Context, value any) {
	c.JSON(http.StatusOK, Envelope{Value: value})
}

// Failure renders a recoverable domain failure. Still HTTP 200.
func Failure(c *gin.Context, code ErrorCode, message string) {
	c.JSON(http.StatusOK, Envelope{
		Error: &ErrorBody{Code: code, Message: message},
	})
}

// Fault renders a non-recoverable server error. The underlying cause is
// logged, never exposed.
func Fault(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Envelope{
		Error: &ErrorBody{Code: CodeInternal, Message: "internal server error"},
	})
}
