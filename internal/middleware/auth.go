package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/quickmed-api/internal/model"
	apperrors "github.com/jwalitptl/quickmed-api/pkg/errors"
	"github.com/jwalitptl/quickmed-api/pkg/httputil"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
)

// TokenVerifier resolves a bearer token into the caller's identity
type TokenVerifier interface {
	Verify(token string) (*model.Identity, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate verifies the bearer token and stores the caller in the context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.verifier.Verify(bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			httputil.AbortWithError(c, err)
			return
		}

		c.Set(ContextUserID, identity.UserID)
		c.Set(ContextUserEmail, identity.Email)
		c.Next()
	}
}

// RequireSelf rejects requests whose :param user id is not the caller's
func (m *AuthMiddleware) RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil || id <= 0 {
			httputil.AbortWithError(c, apperrors.BadRequest("Invalid user id", err))
			return
		}
		if id != UserID(c) {
			httputil.AbortWithError(c, apperrors.Forbidden("Access denied"))
			return
		}
		c.Next()
	}
}

// bearerToken returns "" when the header carries no usable token
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// UserID returns the authenticated caller, or 0 outside protected routes
func UserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}

func Identity(c *gin.Context) *model.Identity {
	return &model.Identity{
		UserID: UserID(c),
		Email:  c.GetString(ContextUserEmail),
	}
}
