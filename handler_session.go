package labdesk

import (
	"net/http"
	"time"

	"github.com/blutspende/labdesk/middleware"
	"github.com/blutspende/labdesk/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type loginTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// sessionTO - what the client gets to see of a session, backend tokens stay on the server
type sessionTO struct {
	SessionID uuid.UUID              `json:"sessionId"`
	ExpiresAt time.Time              `json:"expiresAt"`
	User      middleware.SessionUser `json:"user"`
}

func convertSessionToTO(session middleware.Session) sessionTO {
	return sessionTO{
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
		User:      session.User,
	}
}

// Login
// @Summary Log in against the hospital backend
// @Tags Session
// @Accept json
// @Produce json
// @Param login body loginTO true "Credentials"
// @Success 201 {object} sessionTO
// @Failure 400 {object} middleware.ClientError
// @Failure 401 {object} middleware.ClientError
// @Router /v1/sessions [POST]
func (api *api) Login(c *gin.Context) {
	var login loginTO
	if err := c.ShouldBindJSON(&login); err != nil {
		log.Debug().Err(err).Msg(InvalidBodyInRequest)
		c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrInvalidRequestBody.WithMessage(utils.FormatValidationError(err)))
		return
	}

	session, err := api.sessionService.Login(c.Request.Context(), login.Username, login.Password)
	if err != nil {
		api.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, convertSessionToTO(session))
}

func (api *api) GetCurrentSession(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, middleware.ErrMissingSession)
		return
	}
	c.JSON(http.StatusOK, convertSessionToTO(session))
}

func (api *api) Logout(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, middleware.ErrMissingSession)
		return
	}
	if err := api.sessionService.Logout(c.Request.Context(), session.ID); err != nil {
		api.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
