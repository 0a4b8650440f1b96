package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/llvasconcellos/devconnector/internal/services"
	"github.com/llvasconcellos/devconnector/internal/utils"
	"github.com/llvasconcellos/devconnector/internal/validation"
)

type PostHandler struct {
	svc services.PostService
}

func NewPostHandler(svc services.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

func (h *PostHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "Posts works"})
}

func (h *PostHandler) List(c *gin.Context) {
	out, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		writeError(c, utils.E(utils.CodeNotFound, "PostHandler.Get", "Post not found", nil))
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *PostHandler) Create(c *gin.Context) {
	who, ok := requireIdentity(c)
	if !ok {
		return
	}

	var in validation.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "PostHandler.Create", "invalid request body", err))
		return
	}

	p, err := h.svc.Create(c.Request.Context(), who, in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Delete is author-only; the stored author reference is re-checked
// against the caller before the delete.
func (h *PostHandler) Delete(c *gin.Context) {
	who, ok := requireIdentity(c)
	if !ok {
		return
	}

	id, ok := objectIDParam(c, "id")
	if !ok {
		writeError(c, utils.E(utils.CodeNotFound, "PostHandler.Delete", "Post not found", nil))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), who, id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *PostHandler) Like(c *gin.Context) {
	who, ok := requireIdentity(c)
	if !ok {
		return
	}

	id, ok := objectIDParam(c, "id")
	if !ok {
		writeError(c, utils.E(utils.CodeNotFound, "PostHandler.Like", "Post not found", nil))
		return
	}

	p, err := h.svc.ToggleLike(c.Request.Context(), who, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *PostHandler) Comment(c *gin.Context) {
	who, ok := requireIdentity(c)
	if !ok {
		return
	}

	id, ok := objectIDParam(c, "id")
	if !ok {
		writeError(c, utils.E(utils.CodeNotFound, "PostHandler.Comment", "Post not found", nil))
		return
	}

	var in validation.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "PostHandler.Comment", "invalid request body", err))
		return
	}

	p, err := h.svc.AddComment(c.Request.Context(), who, id, in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *PostHandler) DeleteComment(c *gin.Context) {
	if _, ok := requireIdentity(c); !ok {
		return
	}

	id, ok := objectIDParam(c, "id")
	if !ok {
		writeError(c, utils.E(utils.CodeNotFound, "PostHandler.DeleteComment", "Post not found", nil))
		return
	}

	// no ownership check on the comment itself; an unknown comment id
	// is a silent no-op
	commentID, _ := objectIDParam(c, "comment_id")

	p, err := h.svc.RemoveComment(c.Request.Context(), id, commentID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
