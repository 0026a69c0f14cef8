package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"alumni-portal-backend/internal/store"
)

// Directory handles GET /api/users/directory/:universityId with optional
// equality filters. Only approved members are listed, capped at 50.
func (h *Handler) Directory(c *gin.Context) {
	universityID, ok := pathID(c, "universityId")
	if !ok {
		return
	}

	var filter store.DirectoryFilter
	if raw := c.Query("graduationYear"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "graduationYear must be a number"})
			return
		}
		filter.GraduationYear = &year
	}
	filter.CurrentCity = c.Query("currentCity")
	filter.Company = c.Query("company")
	filter.Designation = c.Query("designation")

	users, err := h.store.Directory(c.Request.Context(), universityID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve directory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// SearchUsers handles GET /api/users/search?name&email: case-insensitive
// partial match over approved members, with pattern metacharacters escaped.
func (h *Handler) SearchUsers(c *gin.Context) {
	name := c.Query("name")
	email := c.Query("email")
	if name == "" && email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide name or email to search"})
		return
	}

	users, err := h.store.SearchUsers(c.Request.Context(), name, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
