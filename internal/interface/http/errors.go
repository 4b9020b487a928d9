package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"forum-api/internal/domain/apperrors"
	"forum-api/pkg/response"
)

// writeError maps every domain error kind to exactly one HTTP status.
// Unknown errors become a generic 500 with no internal detail.
func writeError(c *gin.Context, err error) {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		response.Error[any](c, http.StatusBadRequest, "invalid input",
			map[string]string{ve.Field: ve.Message})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, apperrors.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "you are not the author of this topic", nil)
	case errors.Is(err, apperrors.ErrTopicNotFound):
		response.Error[any](c, http.StatusNotFound, "topic not found", nil)
	case errors.Is(err, apperrors.ErrAuthorNotFound):
		response.Error[any](c, http.StatusNotFound, "author not found", nil)
	case errors.Is(err, apperrors.ErrDuplicateUsername):
		response.Error[any](c, http.StatusConflict, "username already taken",
			map[string]string{"username": "already taken"})
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		response.Error[any](c, http.StatusConflict, "email already taken",
			map[string]string{"email": "already taken"})
	case errors.Is(err, apperrors.ErrConflict):
		response.Error[any](c, http.StatusConflict, "concurrent modification, please retry", nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
