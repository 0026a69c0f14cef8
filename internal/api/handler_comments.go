package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumni-portal-backend/internal/model"
)

type createCommentRequest struct {
	PostID  int64  `json:"postId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreateComment handles POST /api/comments.
func (h *Handler) CreateComment(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := h.store.DB().WithContext(c.Request.Context())

	var post model.Post
	if err := db.First(&post, req.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	comment := model.Comment{
		UserID:  user.ID,
		PostID:  req.PostID,
		Content: req.Content,
	}
	if err := db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	comment.User = user

	c.JSON(http.StatusCreated, gin.H{"message": "Comment added", "comment": comment})
}

// GetComments handles GET /api/comments/:postId, oldest first.
func (h *Handler) GetComments(c *gin.Context) {
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	var comments []model.Comment
	err := h.store.DB().WithContext(c.Request.Context()).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
