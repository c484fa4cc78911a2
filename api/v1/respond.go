package v1

import (
	"errors"
	"net/http"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/services"
	"github.com/estatehub-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.Envelope{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message, field string) {
	c.JSON(status, dto.Envelope{
		Success: false,
		Error:   &dto.ErrorDetails{Code: code, Message: message, Field: field},
	})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Unexpected errors are logged and reported without internal detail.
func respondServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(c, http.StatusBadRequest, vErr.Code, vErr.Message, vErr.Field)
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeNotFound, err.Error(), "")
	case errors.Is(err, services.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, err.Error(), "")
	case errors.Is(err, services.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, err.Error(), "")
	case errors.Is(err, services.ErrForbidden):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, err.Error(), "")
	case errors.Is(err, services.ErrConfiguration):
		utils.Logger.WithError(err).Error("Service is misconfigured")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeConfigurationError, err.Error(), "")
	default:
		utils.Logger.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternal, "Internal server error", "")
	}
}

// respondBindError reports request binding failures, naming the first
// offending field when the validator provides one
func respondBindError(c *gin.Context, err error) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) && len(vErrs) > 0 {
		fe := vErrs[0]
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed,
			"failed on the '"+fe.Tag()+"' rule", jsonFieldName(fe))
		return
	}
	respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid request body", "")
}

func jsonFieldName(fe validator.FieldError) string {
	if name := fe.Field(); name != "" {
		return name
	}
	return fe.StructField()
}
