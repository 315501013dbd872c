package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"travelshare/config"
	"travelshare/store"
	"travelshare/utils"
)

const tokenDuration = 7 * 24 * time.Hour

// AuthController handles registration, login and the account itself.
type AuthController struct {
	store *store.Store
}

// NewAuthController creates an AuthController.
func NewAuthController(s *store.Store) *AuthController {
	return &AuthController{store: s}
}

// Register creates a local account and returns a signed token.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		Username  string `json:"username" binding:"required"`
		Email     string `json:"email" binding:"required"`
		Password  string `json:"password" binding:"required"`
		BirthDate string `json:"birth_date"`
		BirthCity string `json:"birth_city"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	user, err := a.store.CreateUser(store.NewUser{
		Name:      utils.Sanitize(req.Name),
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: strings.TrimSpace(req.BirthDate),
		BirthCity: utils.Sanitize(req.BirthCity),
	})
	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenDuration)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"user": user.Public(), "token": token})
}

// Login authenticates username (case-insensitive) plus password.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid request payload")
		return
	}

	user, err := a.store.Authenticate(req.Username, req.Password)
	if err != nil {
		if err == store.ErrNotFound {
			utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
			return
		}
		respondStoreError(ctx, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenDuration)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"user": user.Public(), "token": token})
}

// Logout revokes the presented token until its natural expiry.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 {
		token := strings.TrimSpace(parts[1])
		if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
			utils.BlacklistToken(token, claims.ExpiresAt.Time)
		}
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the live user record for the authenticated caller. The token
// only carries the identity; all state is fetched fresh per request.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := a.store.GetUser(userID)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

// UpdateProfile applies partial profile edits.
func (a *AuthController) UpdateProfile(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Name      *string `json:"name"`
		Bio       *string `json:"bio"`
		BirthDate *string `json:"birth_date"`
		BirthCity *string `json:"birth_city"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	upd := store.ProfileUpdate{BirthDate: req.BirthDate}
	if req.Name != nil {
		clean := utils.Sanitize(*req.Name)
		upd.Name = &clean
	}
	if req.Bio != nil {
		clean := utils.Sanitize(*req.Bio)
		upd.Bio = &clean
	}
	if req.BirthCity != nil {
		clean := utils.Sanitize(*req.BirthCity)
		upd.BirthCity = &clean
	}

	user, err := a.store.UpdateProfile(userID, upd)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix("cache:user:public:" + userID)
	utils.Success(ctx, gin.H{"user": user})
}

// UploadProfilePhoto stores a new profile photo (jpg/jpeg/png, capped)
// and removes the previous one from disk.
func (a *AuthController) UploadProfilePhoto(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	fh, err := ctx.FormFile("photo")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "no file uploaded")
		return
	}

	cfg := config.Get()
	path, err := utils.SaveImage(fh, "avatars", cfg.ProfilePhotoMaxKB)
	if err != nil {
		if err == utils.ErrBadImageType || err == utils.ErrImageTooLarge {
			utils.Error(ctx, http.StatusBadRequest, 40031, err.Error())
			return
		}
		respondStoreError(ctx, err)
		return
	}

	previous, err := a.store.GetUser(userID)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	user, err := a.store.UpdateProfile(userID, store.ProfileUpdate{PhotoPath: &path})
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	if previous.PhotoPath != "" {
		utils.RemoveUpload(previous.PhotoPath)
	}
	utils.InvalidateByPrefix("cache:user:public:" + userID)
	utils.Success(ctx, gin.H{"user": user})
}

// DeleteAccount removes the caller's account, posts and comments, deletes
// the post images from disk, and revokes the presented token.
func (a *AuthController) DeleteAccount(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	user, err := a.store.GetUser(userID)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	imagePaths, err := a.store.DeleteAccount(userID)
	for _, p := range imagePaths {
		utils.RemoveUpload(p)
	}
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	if user.PhotoPath != "" {
		utils.RemoveUpload(user.PhotoPath)
	}

	// Session cleanup happens unconditionally once the account is gone.
	authHeader := ctx.GetHeader("Authorization")
	if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 {
		token := strings.TrimSpace(parts[1])
		if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
			utils.BlacklistToken(token, claims.ExpiresAt.Time)
		}
	}

	utils.InvalidateByPrefix("cache:user:public:" + userID)
	utils.InvalidateByPrefix("cache:post:detail:")
	utils.Success(ctx, gin.H{"message": "account deleted"})
}
