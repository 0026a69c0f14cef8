package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumni-portal-backend/internal/model"
	"alumni-portal-backend/internal/notification"
)

type createWorkshopRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Mode        string `json:"mode"`
	Location    string `json:"location"`
	MeetingLink string `json:"meetingLink"`
}

// CreateWorkshop handles POST /api/workshops. The workshop's university is
// fixed from the creator's.
func (h *Handler) CreateWorkshop(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req createWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Mode == "" {
		req.Mode = model.ModeInPerson
	}
	switch req.Mode {
	case model.ModeInPerson:
		if req.Location == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Location is required for in-person workshops"})
			return
		}
	case model.ModeOnline:
		if req.MeetingLink == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Meeting link is required for online workshops"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workshop mode"})
		return
	}

	workshop := model.Workshop{
		UserID:       user.ID,
		UniversityID: user.UniversityID,
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Time:         req.Time,
		Mode:         req.Mode,
		Location:     req.Location,
		MeetingLink:  req.MeetingLink,
	}
	if err := h.store.DB().WithContext(c.Request.Context()).Create(&workshop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	workshop.User = user

	h.notify.Dispatch(notification.Event{Kind: notification.KindWorkshopCreated, ID: workshop.ID})

	c.JSON(http.StatusCreated, gin.H{"message": "Workshop created", "workshop": workshop})
}

// GetWorkshops handles GET /api/workshops/:universityId, soonest first.
func (h *Handler) GetWorkshops(c *gin.Context) {
	universityID, ok := pathID(c, "universityId")
	if !ok {
		return
	}

	var workshops []model.Workshop
	err := h.store.DB().WithContext(c.Request.Context()).
		Preload("User").
		Preload("Attendees").
		Where("university_id = ?", universityID).
		Order("date ASC, time ASC").
		Find(&workshops).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workshops"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"workshops": workshops})
}

// RegisterForWorkshop handles POST /api/workshops/:workshopId/register. The
// attendee set only grows; registering twice is a no-op.
func (h *Handler) RegisterForWorkshop(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	workshopID, ok := pathID(c, "workshopId")
	if !ok {
		return
	}

	db := h.store.DB().WithContext(c.Request.Context())

	var workshop model.Workshop
	if err := db.First(&workshop, workshopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Workshop not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := db.Model(&workshop).Association("Attendees").Append(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registered for workshop"})
}
