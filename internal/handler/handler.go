package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/quickmed-api/pkg/errors"
)

// Registrar is implemented by every resource handler. Public routes need no
// token; protected routes sit behind the auth middleware.
type Registrar interface {
	RegisterRoutes(public, protected *gin.RouterGroup)
}

// ParamID parses a positive integer path parameter
func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequest("Invalid "+name, err)
	}
	return id, nil
}
