package member

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
	pctx "github.com/iedc-carmel/club-management-backend/internal/principal"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func fail(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"success": false, "message": apperr.MessageOf(err)})
}

// Apply godoc
// @Summary Submit a membership application
// @Tags members
// @Accept json
// @Produce json
// @Router /members/apply [post]
func (h *Handler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Wrap(apperr.Validation, "invalid input: "+err.Error(), err))
		return
	}

	uid, err := h.service.Apply(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "uid": uid, "message": "application submitted, pending approval"})
}

// List godoc
// @Summary List members, optionally filtered by status
// @Tags members
// @Produce json
// @Param status query string false "pending_approval or approved"
// @Router /admin/members [get]
func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	if users == nil {
		users = []User{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "members": users})
}

// Approve godoc
// @Summary Approve a pending member
// @Tags members
// @Router /admin/members/{id}/approve [post]
func (h *Handler) Approve(c *gin.Context) {
	principal := pctx.GetPrincipal(c)
	if err := h.service.Approve(c.Request.Context(), principal.UID, c.Param("id"), pctx.GetIPFromContext(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "member approved"})
}

// SetRole godoc
// @Summary Change a member's role (student or admin)
// @Tags members
// @Router /admin/members/{id}/role [post]
func (h *Handler) SetRole(c *gin.Context) {
	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Wrap(apperr.Validation, "invalid input: "+err.Error(), err))
		return
	}

	principal := pctx.GetPrincipal(c)
	if err := h.service.SetRole(c.Request.Context(), principal.UID, c.Param("id"), req.Role, pctx.GetIPFromContext(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "role updated"})
}

// Delete godoc
// @Summary Delete a member account (self-delete forbidden)
// @Tags members
// @Router /admin/members/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	principal := pctx.GetPrincipal(c)
	if err := h.service.DeleteAccount(c.Request.Context(), principal.UID, c.Param("id"), pctx.GetIPFromContext(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "member deleted"})
}

// GrantAdmin godoc
// @Summary Promote the user matching email to admin (bootstrap)
// @Tags members
// @Router /admin/users/grant-admin [post]
func (h *Handler) GrantAdmin(c *gin.Context) {
	var req GrantAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Wrap(apperr.Validation, "invalid input: "+err.Error(), err))
		return
	}

	principal := pctx.GetPrincipal(c)
	user, err := h.service.GrantAdmin(c.Request.Context(), principal.UID, req.Email, pctx.GetIPFromContext(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "admin granted", "uid": user.UID})
}
