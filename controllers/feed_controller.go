package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelshare/store"
	"travelshare/utils"
)

// FeedController serves the home feed, the discovery feed, and the
// caller's notifications.
type FeedController struct {
	store *store.Store
}

// NewFeedController creates a FeedController.
func NewFeedController(s *store.Store) *FeedController {
	return &FeedController{store: s}
}

// Feed returns the caller's own posts plus posts from everyone followed,
// newest first, enriched with authors and comments. The full history is
// returned in one response.
func (f *FeedController) Feed(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	feed, err := f.store.FeedFor(userID)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": feed})
}

// Discovery returns posts from suggested (not yet followed) users.
func (f *FeedController) Discovery(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	feed, err := f.store.DiscoveryFeed(userID)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": feed})
}

// Notifications returns the caller's notifications, newest first.
func (f *FeedController) Notifications(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	items, err := f.store.NotificationsFor(userID)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": items})
}
