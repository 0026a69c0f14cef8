package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumni-portal-backend/internal/model"
)

func validPostType(t string) bool {
	switch t {
	case model.PostAnnouncement, model.PostJob, model.PostRequirement, model.PostRecruitment, model.PostGeneral:
		return true
	}
	return false
}

type createPostRequest struct {
	Type     string `json:"type"`
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"imageUrl"`
}

// CreatePost handles POST /api/posts. The post's university is fixed here
// from the author's and never re-derived.
func (h *Handler) CreatePost(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type == "" {
		req.Type = model.PostGeneral
	}
	if !validPostType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post type"})
		return
	}

	post := model.Post{
		UserID:       user.ID,
		UniversityID: user.UniversityID,
		Type:         req.Type,
		Content:      req.Content,
		ImageURL:     req.ImageURL,
	}
	if err := h.store.DB().WithContext(c.Request.Context()).Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	post.User = user

	c.JSON(http.StatusCreated, gin.H{"message": "Post created", "post": post})
}

// GetPosts handles GET /api/posts/:universityId, newest first with the
// author populated.
func (h *Handler) GetPosts(c *gin.Context) {
	universityID, ok := pathID(c, "universityId")
	if !ok {
		return
	}

	var posts []model.Post
	err := h.store.DB().WithContext(c.Request.Context()).
		Preload("User").
		Preload("Likes").
		Where("university_id = ?", universityID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

type updatePostRequest struct {
	Type     *string `json:"type"`
	Content  *string `json:"content"`
	ImageURL *string `json:"imageUrl"`
}

// loadOwnPost fetches the post and enforces that the caller authored it.
func (h *Handler) loadOwnPost(c *gin.Context) (model.Post, model.User, bool) {
	user, ok := h.currentUser(c)
	if !ok {
		return model.Post{}, model.User{}, false
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return model.Post{}, model.User{}, false
	}

	var post model.Post
	if err := h.store.DB().WithContext(c.Request.Context()).First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return model.Post{}, model.User{}, false
	}
	if post.UserID != user.ID {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You can only modify your own posts"})
		return model.Post{}, model.User{}, false
	}
	return post, user, true
}

// UpdatePost handles PUT /api/posts/:postId (author only).
func (h *Handler) UpdatePost(c *gin.Context) {
	post, user, ok := h.loadOwnPost(c)
	if !ok {
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]any{}
	if req.Type != nil {
		if !validPostType(*req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post type"})
			return
		}
		updates["type"] = *req.Type
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) > 0 {
		if err := h.store.DB().WithContext(c.Request.Context()).
			Model(&post).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	post.User = user

	c.JSON(http.StatusOK, gin.H{"message": "Post updated", "post": post})
}

// DeletePost handles DELETE /api/posts/:postId (author only).
func (h *Handler) DeletePost(c *gin.Context) {
	post, _, ok := h.loadOwnPost(c)
	if !ok {
		return
	}

	db := h.store.DB().WithContext(c.Request.Context())
	if err := db.Model(&post).Association("Likes").Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := db.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// ToggleLike handles POST /api/posts/:postId/like: likes the post, or
// removes the caller's existing like.
func (h *Handler) ToggleLike(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	db := h.store.DB().WithContext(c.Request.Context())

	var post model.Post
	if err := db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	assoc := db.Model(&post).Association("Likes")

	var existing []model.User
	if err := assoc.Find(&existing, "users.id = ?", user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	liked := len(existing) == 0
	var err error
	if liked {
		err = assoc.Append(&user)
	} else {
		err = assoc.Delete(&user)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked, "likeCount": assoc.Count()})
}
