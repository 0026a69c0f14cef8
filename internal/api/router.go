package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"alumni-portal-backend/config"
	"alumni-portal-backend/internal/auth"
	"alumni-portal-backend/internal/mw"
	"alumni-portal-backend/internal/notification"
	"alumni-portal-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, tokens *auth.TokenIssuer, notify *notification.WorkerPool, webpushOptions *webpush.Options, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	h := NewHandler(s, tokens, notify, webpushOptions, cfg.Environment)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	authed := mw.Auth(tokens)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/health", h.Health)

		// Account lifecycle
		api.POST("/university/register", h.RegisterUniversity)
		api.POST("/university/login", h.LoginUniversity)
		api.POST("/auth/signup", h.Signup)
		api.POST("/auth/login", h.Login)

		// Profile
		api.GET("/user/profile", authed, h.GetProfile)
		api.PUT("/user/profile", authed, h.UpdateProfile)

		// Feed
		api.POST("/posts", authed, h.CreatePost)
		api.GET("/posts/:universityId", caching, h.GetPosts)
		api.PUT("/posts/:postId", authed, h.UpdatePost)
		api.DELETE("/posts/:postId", authed, h.DeletePost)
		api.POST("/posts/:postId/like", authed, h.ToggleLike)
		api.POST("/comments", authed, h.CreateComment)
		api.GET("/comments/:postId", h.GetComments)

		// Direct messages
		api.POST("/messages", authed, h.SendMessage)
		api.GET("/messages/:userId", authed, h.GetMessages)
		api.PUT("/messages/:userId/read", authed, h.MarkMessagesRead)

		// Approval workflow
		api.GET("/admin/pending-approvals/:universityId", authed, h.PendingApprovals)
		api.PUT("/admin/approve-user/:userId", authed, h.ApproveUser)
		api.PUT("/admin/reject-user/:userId", authed, h.RejectUser)

		// Workshops
		api.POST("/workshops", authed, h.CreateWorkshop)
		api.GET("/workshops/:universityId", caching, h.GetWorkshops)
		api.POST("/workshops/:workshopId/register", authed, h.RegisterForWorkshop)

		// Directory and search
		api.GET("/users/directory/:universityId", h.Directory)
		api.GET("/users/search", h.SearchUsers)

		// Push notifications
		api.GET("/push/vapid_public_key", h.GetVAPIDPublicKey)
		api.PUT("/push/subscriptions", authed, h.PutSubscription)
		api.DELETE("/push/subscriptions", authed, h.DeleteSubscription)
	}

	return r
}
