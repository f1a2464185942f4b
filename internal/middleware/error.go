package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/quickmed-api/pkg/errors"
	"github.com/jwalitptl/quickmed-api/pkg/httputil"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Binding failures become 400s with per-field messages; anything that is
// not an AppError is logged and surfaced as an opaque 500.
func ErrorHandler(config ValidationConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := translate(c.Errors.Last().Err, config)
		appErr, _ := apperrors.As(err)
		if appErr.StatusCode() >= 500 {
			log.Error().
				Err(appErr.Unwrap()).
				Str("request_id", c.GetString(ContextRequestID)).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Str("client_ip", c.ClientIP()).
				Msg("Request error")
		}

		c.Header("Cache-Control", "no-store")
		httputil.RespondWithError(c, appErr)
	}
}

func translate(err error, config ValidationConfig) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(fieldErrors(verrs, config.Messages)...)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var numErr *strconv.NumError
	switch {
	case errors.Is(err, io.EOF):
		return apperrors.BadRequest("Request body is required", err)
	case errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &syntaxErr):
		// truncated bodies surface as io.ErrUnexpectedEOF, not a SyntaxError
		return apperrors.BadRequest("Malformed JSON body", err)
	case errors.As(err, &typeErr):
		return apperrors.Validation(apperrors.FieldError{
			Field:   typeErr.Field,
			Message: typeErr.Field + " has the wrong type",
		})
	case errors.As(err, &numErr):
		// query and form values that do not parse into their field type
		return apperrors.BadRequest("Invalid query parameter", err)
	}
	return apperrors.Internal(err)
}
