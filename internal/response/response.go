package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	MsgBookNotFound      = "book not found"
	MsgBadRoute          = "bad route"
	MsgValidationFailed  = "validation failed"
	MsgUnsupportedAction = "unsupported delete action"
	MsgInternalError     = "internal server error"
)

// Envelope wraps every response body.
type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Meta    any    `json:"meta,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, message string, data, meta any) {
	c.JSON(http.StatusOK, Envelope{
		Status:  true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Envelope{
		Status:  false,
		Message: message,
	})
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

func BadRoute(c *gin.Context) {
	Fail(c, http.StatusNotFound, MsgBadRoute)
}

func UnsupportedAction(c *gin.Context) {
	Fail(c, http.StatusBadRequest, MsgUnsupportedAction)
}

func ValidationFailed(c *gin.Context, details any) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, Envelope{
		Status:  false,
		Message: MsgValidationFailed,
		Error:   details,
	})
}

func InternalServerError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, MsgInternalError)
}
