package api

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "filmorate/backend/pkg/errors"
)

// Error categories sent in the "error" field of every failure body
const (
	errValidation  = "validation error"
	errNotFound    = "not found"
	errBadRequest  = "bad request"
	errRateLimited = "too many requests"
	errInternal    = "internal server error"
)

// errorBody is the envelope of every failed response
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondError maps a core error onto a status code and writes the envelope
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var (
		invalid  *apperrors.ErrInvalid
		notFound *apperrors.ErrNotFound
	)

	switch {
	case stderrors.As(err, &invalid):
		log.Warn("Validation failed", zap.String("field", invalid.Field), zap.String("reason", invalid.Reason), requestIDField(c))
		c.JSON(http.StatusBadRequest, errorBody{Error: errValidation, Message: invalid.Message})
	case stderrors.As(err, &notFound):
		log.Warn("Object not found", zap.String("store", notFound.Store), zap.Int64("id", notFound.ID), requestIDField(c))
		c.JSON(http.StatusNotFound, errorBody{Error: errNotFound, Message: notFound.Message})
	default:
		log.Error("Request failed", zap.Error(err), requestIDField(c))
		c.JSON(http.StatusInternalServerError, internalErrorBody(c))
	}
}

// respondBindError reports malformed bodies, path params and queries
func respondBindError(c *gin.Context, log *zap.Logger, err error) {
	log.Warn("Malformed request", zap.Error(err), requestIDField(c))
	c.JSON(http.StatusBadRequest, errorBody{Error: errBadRequest, Message: describeBindError(err)})
}

// describeBindError renders validator failures one field at a time
func describeBindError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return err.Error()
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describeFieldError(fe))
	}
	return strings.Join(messages, "; ")
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
