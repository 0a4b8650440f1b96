package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/llvasconcellos/devconnector/internal/api/middleware"
	"github.com/llvasconcellos/devconnector/internal/auth"
	"github.com/llvasconcellos/devconnector/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// writeError maps an error to its HTTP status. Validation and conflict
// errors surface their field->message map directly as the body; the
// rest get the code/message envelope.
func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		if ae.Fields != nil {
			c.JSON(status, ae.Fields)
			return
		}
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

func requireIdentity(c *gin.Context) (auth.Identity, bool) {
	if v, ok := c.Get(middleware.IdentityKey); ok {
		if id, ok := v.(auth.Identity); ok && !id.ID.IsZero() {
			return id, true
		}
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return auth.Identity{}, false
}

// objectIDParam decodes a path parameter as an ObjectID. The second
// return is false when the parameter is not a valid hex id.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(c.Param(name))
	return oid, err == nil
}
