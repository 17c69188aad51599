package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studiocrm/internal/audit"
	"studiocrm/pkg/middleware"
	"studiocrm/pkg/utils"
)

// actorFrom builds the audit actor for the authenticated caller. Requests
// without a user in context are attributed to the system.
func actorFrom(c *gin.Context) audit.Actor {
	actor := audit.Actor{
		Email: c.GetString(middleware.CtxEmail),
		IP:    audit.ClientIP(c.Request),
	}
	if id, err := uuid.Parse(c.GetString(middleware.CtxUserID)); err == nil {
		actor.UserID = &id
	}
	return actor
}

// pathID parses the :id parameter, answering 400 itself when it is malformed.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func respondBindError(c *gin.Context, err error) {
	utils.RespondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
}
