package httputil

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carelink/booking-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Kind    string      `json:"kind,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	message := "internal server error"
	kind := string(errors.KindStorageFailure)

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		statusCode = appErr.StatusCode()
		message = appErr.Message
		kind = string(appErr.Kind)
	}

	c.Error(err)
	c.JSON(statusCode, Response{
		Status:  "error",
		Message: message,
		Kind:    kind,
	})
}
