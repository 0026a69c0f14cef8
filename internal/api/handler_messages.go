package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumni-portal-backend/internal/model"
)

type sendMessageRequest struct {
	ReceiverID int64  `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// SendMessage handles POST /api/messages.
func (h *Handler) SendMessage(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := h.store.DB().WithContext(c.Request.Context())

	var receiver model.User
	if err := db.First(&receiver, req.ReceiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	message := model.Message{
		SenderID:   user.ID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	if err := db.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Message sent", "data": message})
}

// GetMessages handles GET /api/messages/:userId: the bidirectional thread
// between the caller and the given user, newest first.
func (h *Handler) GetMessages(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	otherID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	messages, err := h.store.MessageThread(c.Request.Context(), user.ID, otherID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// MarkMessagesRead handles PUT /api/messages/:userId/read: flags every
// message from that user to the caller as read.
func (h *Handler) MarkMessagesRead(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	senderID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	updated, err := h.store.MarkThreadRead(c.Request.Context(), user.ID, senderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Messages marked as read", "updated": updated})
}
