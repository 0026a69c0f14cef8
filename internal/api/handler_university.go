package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumni-portal-backend/internal/auth"
	"alumni-portal-backend/internal/model"
	"alumni-portal-backend/internal/slug"
	"alumni-portal-backend/internal/store"
)

type universityRegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
}

// RegisterUniversity handles POST /api/university/register.
func (h *Handler) RegisterUniversity(c *gin.Context) {
	var req universityRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and password are required"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	university := model.University{
		Name:         req.Name,
		Slug:         slug.Make(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Logo:         req.Logo,
		Description:  req.Description,
	}

	if err := h.store.CreateUniversity(c.Request.Context(), &university); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "A university with this email or name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := h.tokens.Issue(university.ID, auth.AccountTypeUniversity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "University registered successfully",
		"token":      token,
		"university": university,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUniversity handles POST /api/university/login.
func (h *Handler) LoginUniversity(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	university, err := h.store.UniversityByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	// One message for unknown email and wrong password alike, so the endpoint
	// cannot be used to enumerate accounts.
	if err != nil || !auth.CheckPassword(req.Password, university.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.tokens.Issue(university.ID, auth.AccountTypeUniversity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful",
		"token":      token,
		"university": university,
	})
}
