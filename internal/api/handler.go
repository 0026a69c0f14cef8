package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumni-portal-backend/internal/auth"
	"alumni-portal-backend/internal/model"
	"alumni-portal-backend/internal/mw"
	"alumni-portal-backend/internal/notification"
	"alumni-portal-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	tokens  *auth.TokenIssuer
	notify  *notification.WorkerPool
	webpush *webpush.Options
	env     string
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, tokens *auth.TokenIssuer, notify *notification.WorkerPool, webpushOptions *webpush.Options, env string) *Handler {
	return &Handler{
		store:   s,
		tokens:  tokens,
		notify:  notify,
		webpush: webpushOptions,
		env:     env,
	}
}

// currentUser loads the authenticated member behind the auth gate. It writes
// the failure response itself; callers just bail out when ok is false.
func (h *Handler) currentUser(c *gin.Context) (model.User, bool) {
	id, typ, ok := mw.Account(c)
	if !ok || typ != auth.AccountTypeUser {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Member account required"})
		return model.User{}, false
	}

	user, err := h.store.UserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return model.User{}, false
	}
	return user, true
}

// pathID parses a numeric path parameter, writing a 400 response on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}
