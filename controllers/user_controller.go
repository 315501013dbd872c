package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"travelshare/models"
	"travelshare/store"
	"travelshare/utils"
)

// UserController exposes public profiles, the follow graph and the
// visited-cities list.
type UserController struct {
	store *store.Store
}

// NewUserController creates a UserController.
func NewUserController(s *store.Store) *UserController {
	return &UserController{store: s}
}

// GetUserPublic returns public profile info by ID.
func (u *UserController) GetUserPublic(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, 40050, "missing user id")
		return
	}
	if b, ok := utils.CacheGetBytes("cache:user:public:" + id); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}
	user, err := u.store.GetUser(id)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	payload := gin.H{"user": user.Public()}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON("cache:user:public:"+id, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// Follow adds the target to the caller's following list and the caller to
// the target's follower list. Following twice is a no-op.
func (u *UserController) Follow(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	targetID := strings.TrimSpace(ctx.Param("id"))
	if err := u.store.Follow(userID, targetID); err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix("cache:user:public:" + userID)
	utils.InvalidateByPrefix("cache:user:public:" + targetID)
	utils.Success(ctx, gin.H{"message": "following"})
}

// Unfollow removes the edge in both directions. Unfollowing someone not
// followed is a no-op.
func (u *UserController) Unfollow(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	targetID := strings.TrimSpace(ctx.Param("id"))
	if err := u.store.Unfollow(userID, targetID); err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix("cache:user:public:" + userID)
	utils.InvalidateByPrefix("cache:user:public:" + targetID)
	utils.Success(ctx, gin.H{"message": "unfollowed"})
}

// RemoveFollower kicks a follower off the caller's follower list.
func (u *UserController) RemoveFollower(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	followerID := strings.TrimSpace(ctx.Param("id"))
	if err := u.store.RemoveFollower(userID, followerID); err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix("cache:user:public:" + userID)
	utils.InvalidateByPrefix("cache:user:public:" + followerID)
	utils.Success(ctx, gin.H{"message": "follower removed"})
}

// Suggestions returns up to twelve follow candidates.
func (u *UserController) Suggestions(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	suggested, err := u.store.Suggestions(userID)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	items := make([]models.PublicUser, 0, len(suggested))
	for _, s := range suggested {
		items = append(items, s.Public())
	}
	utils.Success(ctx, gin.H{"items": items})
}

// AddVisitedCity records a city on the caller's visited list.
func (u *UserController) AddVisitedCity(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	var req struct {
		City string `json:"city" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}
	if err := u.store.AddVisitedCity(userID, utils.Sanitize(req.City)); err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix("cache:user:public:" + userID)
	utils.Success(ctx, gin.H{"message": "city added"})
}

// RemoveVisitedCity removes a city from the caller's visited list.
func (u *UserController) RemoveVisitedCity(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	city := strings.TrimSpace(ctx.Param("name"))
	if city == "" {
		utils.Error(ctx, http.StatusBadRequest, 40041, "missing city name")
		return
	}
	if err := u.store.RemoveVisitedCity(userID, city); err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix("cache:user:public:" + userID)
	utils.Success(ctx, gin.H{"message": "city removed"})
}
