package controllers

import (
	"github.com/gin-gonic/gin"

	"studiocrm/internal/models/request_models"
	"studiocrm/internal/services"
	"studiocrm/pkg/utils"
)

type CredentialController struct {
	credentialService services.CredentialServiceInterface
}

func NewCredentialController(credentialService services.CredentialServiceInterface) *CredentialController {
	return &CredentialController{
		credentialService: credentialService,
	}
}

func (cc *CredentialController) ListCredentials(c *gin.Context) {
	var query request_models.CredentialListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := cc.credentialService.ListCredentials(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, page, "Fetched credentials successfully")
}

func (cc *CredentialController) GetCredential(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	cred, err := cc.credentialService.GetCredential(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, cred, "Fetched credential successfully")
}

func (cc *CredentialController) CreateCredential(c *gin.Context) {
	var req request_models.CreateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cred, err := cc.credentialService.CreateCredential(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, cred, "Credential created successfully")
}

func (cc *CredentialController) UpdateCredential(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request_models.UpdateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cred, err := cc.credentialService.UpdateCredential(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, cred, "Credential updated successfully")
}

func (cc *CredentialController) DeleteCredential(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := cc.credentialService.DeleteCredential(c.Request.Context(), actorFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Credential deleted successfully")
}

// RevealCredential godoc
// @Summary Reveal credential secrets
// @Description Return decrypted secrets and record a VIEW_CREDENTIAL audit entry (admin only)
// @Tags Credentials
// @Produce json
// @Param id path string true "Credential ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /credentials/{id}/reveal [post]
func (cc *CredentialController) RevealCredential(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	secrets, err := cc.credentialService.RevealCredential(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	utils.RespondSuccess(c, secrets, "Credential revealed")
}
