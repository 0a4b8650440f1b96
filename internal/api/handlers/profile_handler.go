package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/llvasconcellos/devconnector/internal/services"
	"github.com/llvasconcellos/devconnector/internal/utils"
	"github.com/llvasconcellos/devconnector/internal/validation"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "Profile works"})
}

func (h *ProfileHandler) Me(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	p, err := h.svc.GetByUser(c.Request.Context(), id.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) All(c *gin.Context) {
	out, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) ByHandle(c *gin.Context) {
	p, err := h.svc.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) ByUser(c *gin.Context) {
	uid, ok := objectIDParam(c, "user_id")
	if !ok {
		writeError(c, utils.E(utils.CodeNotFound, "ProfileHandler.ByUser", "There is no profile for this user", nil))
		return
	}

	p, err := h.svc.GetByUser(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Upsert creates the caller's profile on first POST and updates it on
// subsequent ones.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var in validation.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.Upsert", "invalid request body", err))
		return
	}

	p, err := h.svc.Upsert(c.Request.Context(), id.ID, in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var in validation.ExperienceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.AddExperience", "invalid request body", err))
		return
	}

	p, err := h.svc.AddExperience(c.Request.Context(), id.ID, in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var in validation.EducationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.AddEducation", "invalid request body", err))
		return
	}

	p, err := h.svc.AddEducation(c.Request.Context(), id.ID, in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	// an unparseable id matches no entry, so the removal is a no-op
	expID, _ := objectIDParam(c, "exp_id")

	p, err := h.svc.RemoveExperience(c.Request.Context(), id.ID, expID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	eduID, _ := objectIDParam(c, "edu_id")

	p, err := h.svc.RemoveEducation(c.Request.Context(), id.ID, eduID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// DeleteAccount removes the caller's profile and user account together.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteAccount(c.Request.Context(), id.ID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
