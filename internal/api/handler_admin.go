package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumni-portal-backend/internal/auth"
	"alumni-portal-backend/internal/model"
	"alumni-portal-backend/internal/mw"
	"alumni-portal-backend/internal/notification"
)

// canManageUniversity reports whether the caller may administer the given
// university: either the university account itself, or one of its
// admin/representative members.
func (h *Handler) canManageUniversity(c *gin.Context, universityID int64) (bool, error) {
	id, typ, ok := mw.Account(c)
	if !ok {
		return false, nil
	}
	if typ == auth.AccountTypeUniversity {
		return id == universityID, nil
	}

	user, err := h.store.UserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.UniversityID == universityID && user.IsUniversityStaff(), nil
}

func (h *Handler) requireUniversityManager(c *gin.Context, universityID int64) bool {
	allowed, err := h.canManageUniversity(c, universityID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return false
	}
	if !allowed {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not allowed to manage this university"})
		return false
	}
	return true
}

// PendingApprovals handles GET /api/admin/pending-approvals/:universityId.
func (h *Handler) PendingApprovals(c *gin.Context) {
	universityID, ok := pathID(c, "universityId")
	if !ok {
		return
	}
	if !h.requireUniversityManager(c, universityID) {
		return
	}

	users, err := h.store.PendingUsers(c.Request.Context(), universityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pending approvals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// setStatus is shared by ApproveUser and RejectUser. The write is
// unconditional: a terminal status may be overwritten, last write wins.
func (h *Handler) setStatus(c *gin.Context, status, verb string) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	target, err := h.store.UserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	if !h.requireUniversityManager(c, target.UniversityID) {
		return
	}

	updated, err := h.store.SetUserStatus(c.Request.Context(), userID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if status == model.StatusApproved {
		h.notify.Dispatch(notification.Event{Kind: notification.KindUserApproved, ID: userID})
	}

	c.JSON(http.StatusOK, gin.H{"message": "User " + verb, "user": updated})
}

// ApproveUser handles PUT /api/admin/approve-user/:userId.
func (h *Handler) ApproveUser(c *gin.Context) {
	h.setStatus(c, model.StatusApproved, "approved")
}

// RejectUser handles PUT /api/admin/reject-user/:userId.
func (h *Handler) RejectUser(c *gin.Context) {
	h.setStatus(c, model.StatusRejected, "rejected")
}
