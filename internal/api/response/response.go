package response

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool `json:"success"`
	Code    int  `json:"code"`
	Extras  any  `json:"extras"`
}

func NewResponse(success bool, code int, extras any) Response {
	return Response{
		Success: success,
		Code:    code,
		Extras:  extras,
	}
}

// SuccessResponse writes a JSON envelope with the given status and payload.
func SuccessResponse(c *gin.Context, code int, extras any) {
	c.JSON(code, NewResponse(true, code, extras))
}

// ErrorResponse writes message as plain text. Form clients show the body
// verbatim, so errors are not wrapped in the JSON envelope.
func ErrorResponse(c *gin.Context, code int, message string) {
	c.String(code, message)
}
