package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareit-rentals/service-booking/pkg/domain"
)

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Success writes data with 200 OK.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// BadRequest aborts with 400 and the given message.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message)
}

// Error aborts with the status matching the error kind. Unknown errors become 500
// and their message is not exposed.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		notFound   *domain.NotFoundError
		validation *domain.ValidationError
		conflict   *domain.ConflictError
	)
	switch {
	case errors.As(err, &notFound):
		abort(c, http.StatusNotFound, notFound.Error())
	case errors.As(err, &validation):
		abort(c, http.StatusBadRequest, validation.Error())
	case errors.As(err, &conflict):
		abort(c, http.StatusConflict, conflict.Error())
	default:
		abort(c, http.StatusInternalServerError, "An unexpected error has occurred")
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: message,
	})
}
