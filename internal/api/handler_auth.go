package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumni-portal-backend/internal/auth"
	"alumni-portal-backend/internal/model"
	"alumni-portal-backend/internal/store"
)

type signupRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	UniversityID   int64  `json:"universityId"`
	RollNumber     string `json:"rollNumber"`
	ParentContact  string `json:"parentContact"`
	GraduationYear int    `json:"graduationYear"`
	Degree         string `json:"degree"`
}

// Signup handles POST /api/auth/signup. New members always start as pending,
// whatever the request says; a session token is issued right away.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" || req.UniversityID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, password and university are required"})
		return
	}

	university, err := h.store.UniversityByID(c.Request.Context(), req.UniversityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown university"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user := model.User{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hash,
		Phone:          req.Phone,
		UniversityID:   req.UniversityID,
		Role:           model.RoleAlumni,
		Status:         model.StatusPending,
		RollNumber:     req.RollNumber,
		ParentContact:  req.ParentContact,
		GraduationYear: req.GraduationYear,
		Degree:         req.Degree,
	}

	if err := h.store.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	user.University = university

	token, err := h.tokens.Issue(user.ID, auth.AccountTypeUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Your account is pending approval.",
		"token":   token,
		"user":    user,
	})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, err := h.store.UserByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// The status check runs only after the credentials verified: a wrong
	// password on a rejected account still reads as invalid credentials.
	// Pending members may log in; only rejected ones are blocked.
	if user.Status == model.StatusRejected {
		c.JSON(http.StatusForbidden, gin.H{"error": "Your account has been rejected"})
		return
	}

	token, err := h.tokens.Issue(user.ID, auth.AccountTypeUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}
