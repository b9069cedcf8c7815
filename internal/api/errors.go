package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/smartpantry/backend/internal/logger"
	"github.com/pageza/smartpantry/backend/internal/middleware"
	"github.com/pageza/smartpantry/backend/internal/service"
	"github.com/pageza/smartpantry/backend/internal/session"
	"github.com/pageza/smartpantry/backend/internal/suggestion"
)

// Machine readable error codes returned next to the message.
const (
	CodeInvalidInput    = "invalid_input"
	CodeNotFound        = "not_found"
	CodeEmptyPantry     = "empty_pantry"
	CodeUnparseable     = "unparseable_model_response"
	CodeUpstream        = "upstream_unavailable"
	CodeNotConfigured   = "not_configured"
	CodeTimeout         = "timeout"
	CodeUnauthenticated = "unauthenticated"
	CodeInternal        = "internal_error"
)

const (
	msgInternalError      = "internal server error"
	msgUnparseableSuggest = "the recipe generator returned a response that could not be read, please try again"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status, code, msg := http.StatusInternalServerError, CodeInternal, msgInternalError

	switch {
	case errors.Is(err, session.ErrNoUser):
		status, code, msg = http.StatusUnauthorized, CodeUnauthenticated, "user not authenticated"
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrProductNotFound):
		status, code, msg = http.StatusNotFound, CodeNotFound, err.Error()
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidBarcode):
		status, code, msg = http.StatusBadRequest, CodeInvalidInput, err.Error()
	case errors.Is(err, service.ErrEmptyPantry):
		status, code, msg = http.StatusBadRequest, CodeEmptyPantry, "add some items to your pantry first"
	case errors.Is(err, suggestion.ErrMalformedResponse):
		status, code, msg = http.StatusBadGateway, CodeUnparseable, msgUnparseableSuggest
	case errors.Is(err, service.ErrUpstream):
		status, code, msg = http.StatusServiceUnavailable, CodeUpstream, "an external service is unavailable, please try again later"
	case errors.Is(err, service.ErrNotConfigured):
		status, code, msg = http.StatusNotImplemented, CodeNotConfigured, "this feature is not configured on the server"
	case errors.Is(err, context.DeadlineExceeded):
		status, code, msg = http.StatusGatewayTimeout, CodeTimeout, "the request timed out"
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, middleware.ErrorResponse{Error: msg, Code: code})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorResponse{Error: msg, Code: CodeInvalidInput})
}

// userID returns the authenticated user's ID, answering 401 when there is none.
func userID(c *gin.Context) (uuid.UUID, bool) {
	u, err := session.FromContext(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return uuid.Nil, false
	}
	return u.ID, true
}

// pathID parses the :id parameter, answering 400 when it is not a UUID.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
