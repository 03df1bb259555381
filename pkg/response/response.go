package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/fims-api/pkg/errors"
)

// MessageBody is the shape of every error payload and of plain
// acknowledgement responses: {"message": "..."}.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON sends a success response carrying the DTO directly.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message responds 200 with a plain acknowledgement body.
func Message(c *gin.Context, message string) {
	JSON(c, http.StatusOK, MessageBody{Message: message})
}

// Error converts the error into the typed taxonomy and writes the contract
// error body. Internal detail never reaches the caller: a 500 always carries
// the generic message.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, MessageBody{Message: appErr.Message})
}
