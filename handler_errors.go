package labdesk

import (
	"context"
	"errors"
	"net/http"

	"github.com/blutspende/labdesk/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// abortWithError drops the session once the backend no longer accepts its access token
func (api *api) abortWithError(c *gin.Context, err error) {
	if errors.Is(err, ErrBackendUnauthorized) {
		if session, ok := middleware.GetSession(c); ok {
			if logoutErr := api.sessionService.Logout(c.Request.Context(), session.ID); logoutErr != nil {
				log.Warn().Err(logoutErr).Str("sessionId", session.ID.String()).Msg("session with rejected access token not deleted")
			}
		}
	}
	writeClientError(c, err)
}

// writeClientError maps service errors onto the client error responses
func writeClientError(c *gin.Context, err error) {
	var missingValueErr *MissingValueError
	var unknownParameterErr *UnknownParameterError
	var backendErr *BackendError

	switch {
	case errors.As(err, &missingValueErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrMissingParameterValue.
			WithParam("parameter", missingValueErr.Parameter).
			WithMessage("Please enter value for "+missingValueErr.Parameter))
	case errors.As(err, &unknownParameterErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrUnknownTestParameter.
			WithParam("parameter", unknownParameterErr.Parameter).
			WithParam("testType", unknownParameterErr.TestType.String()))
	case errors.Is(err, ErrUnknownTestType):
		c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrInvalidOrMissingRequestParameter.WithParam("param", "testType"))
	case errors.Is(err, ErrTestTypeMismatch):
		c.AbortWithStatusJSON(http.StatusConflict, middleware.ErrTestTypeMismatch)
	case errors.Is(err, ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, middleware.ErrInvalidCredentials)
	case errors.Is(err, ErrBackendUnauthorized), errors.Is(err, ErrSessionNotFound):
		c.AbortWithStatusJSON(http.StatusUnauthorized, middleware.ErrInvalidSession)
	case errors.Is(err, ErrBackendForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, middleware.ErrNoPrivileges)
	case errors.Is(err, ErrLabRequestNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, middleware.ErrLabRequestNotFound)
	case errors.As(err, &backendErr):
		clientErr := middleware.ErrBackendRequestFailed
		if backendErr.Detail != "" {
			clientErr = clientErr.WithParam("detail", backendErr.Detail)
		}
		c.AbortWithStatusJSON(http.StatusBadGateway, clientErr)
	case errors.Is(err, ErrBackendUnavailable):
		c.AbortWithStatusJSON(http.StatusBadGateway, middleware.ErrBackendUnavailable)
	case errors.Is(err, context.DeadlineExceeded):
		c.AbortWithStatusJSON(http.StatusRequestTimeout, middleware.ErrRequestTimeout)
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, middleware.ErrInternalServerError)
	}
}

func requestIDParam(c *gin.Context) (int, bool) {
	requestID, ok := parseRequestID(c.Param("requestId"))
	if !ok {
		log.Debug().Str("requestId", c.Param("requestId")).Msg(InvalidIdParameterMsg)
		c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrInvalidOrMissingRequestParameter.WithParam("param", "requestId"))
		return 0, false
	}
	return requestID, true
}

// currentSession is empty when authorization is turned off and no session was sent
func currentSession(c *gin.Context) middleware.Session {
	session, _ := middleware.GetSession(c)
	return session
}
