package handlers

import (
	"errors"
	"net/http"
	"sync"

	"mini_crm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var bindingOnce sync.Once

// useJSONFieldNames makes gin's validator report "dueDate" rather than "DueDate".
func useJSONFieldNames() {
	bindingOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(service.FieldName)
		}
	})
}

const msgValidation = "Validation failed"

// respondError maps service errors onto HTTP responses. entity names the
// resource for 404s ("Client"), op describes the failed action for 500s
// ("creating client").
func (h *Handler) respondError(c *gin.Context, entity, op string, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgValidation, "error": ve.Error()})
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": entity + " not found"})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, "Error "+op, "request_failed", err,
			"op", op, "user", currentUser(c).ID)
	}
}

// Centralized error logging and response. The cause is logged, never echoed.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
		_ = c.Error(err)
	}
	c.JSON(httpCode, gin.H{"message": userMsg})
}

// bindJSONOrBadRequest binds the body into dst and answers 400 on failure:
// "Validation failed" for binding tag violations, "Invalid request body"
// for anything that does not decode.
// Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if ve, ok := service.FromValidator(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": msgValidation, "error": ve.Error()})
			return false
		}
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return false
	}
	return true
}
