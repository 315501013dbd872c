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

// PostController manages posts, likes and comments.
type PostController struct {
	store *store.Store
}

// NewPostController creates a PostController.
func NewPostController(s *store.Store) *PostController {
	return &PostController{store: s}
}

// CreatePost accepts a multipart form with a caption, an optional
// location, and one or more images.
func (p *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid multipart payload")
		return
	}
	caption := utils.Sanitize(strings.TrimSpace(ctx.PostForm("caption")))
	location := utils.Sanitize(strings.TrimSpace(ctx.PostForm("location")))

	files := form.File["images"]
	if len(files) == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40021, "at least one image is required")
		return
	}

	cfg := config.Get()
	var paths []string
	for _, fh := range files {
		path, err := utils.SaveImage(fh, "posts", cfg.PostImageMaxKB)
		if err != nil {
			for _, saved := range paths {
				utils.RemoveUpload(saved)
			}
			if err == utils.ErrBadImageType || err == utils.ErrImageTooLarge {
				utils.Error(ctx, http.StatusBadRequest, 40022, err.Error())
				return
			}
			respondStoreError(ctx, err)
			return
		}
		paths = append(paths, path)
	}

	post, err := p.store.CreatePost(store.NewPost{
		AuthorID: userID,
		Caption:  caption,
		Location: location,
		Images:   paths,
	})
	if err != nil {
		for _, saved := range paths {
			utils.RemoveUpload(saved)
		}
		respondStoreError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// GetPost returns a single post with its author and comment list.
func (p *PostController) GetPost(ctx *gin.Context) {
	postID := ctx.Param("id")
	if b, ok := utils.CacheGetBytes("cache:post:detail:" + postID); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	post, err := p.store.GetPost(postID)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	author, err := p.store.GetUser(post.AuthorID)
	if err != nil && err != store.ErrNotFound {
		respondStoreError(ctx, err)
		return
	}
	comments, err := p.store.CommentsForPost(postID)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	payload := gin.H{"post": post, "author": author.Public(), "comments": comments}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON("cache:post:detail:"+postID, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// ListUserPosts returns a user's posts, newest first.
func (p *PostController) ListUserPosts(ctx *gin.Context) {
	userID := strings.TrimSpace(ctx.Param("id"))
	if userID == "" {
		utils.Error(ctx, http.StatusBadRequest, 40060, "missing user id")
		return
	}
	if _, err := p.store.GetUser(userID); err != nil {
		respondStoreError(ctx, err)
		return
	}
	posts, err := p.store.PostsByAuthor(userID)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": posts})
}

// UpdatePost lets the author edit caption and location.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	var req struct {
		Caption  string `json:"caption"`
		Location string `json:"location"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}
	postID := ctx.Param("id")
	post, err := p.store.UpdateCaption(postID, userID, utils.Sanitize(req.Caption), utils.Sanitize(req.Location))
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix("cache:post:detail:" + postID)
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes the post, its comments, and its image files.
func (p *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	postID := ctx.Param("id")
	post, err := p.store.DeletePost(postID, userID)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	for _, path := range post.Images {
		utils.RemoveUpload(path)
	}
	utils.InvalidateByPrefix("cache:post:detail:" + postID)
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// ToggleLike flips the caller's like on a post.
func (p *PostController) ToggleLike(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	postID := ctx.Param("id")
	liked, err := p.store.ToggleLike(postID, userID)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix("cache:post:detail:" + postID)
	utils.Success(ctx, gin.H{"liked": liked})
}

// CreateComment adds a comment to a post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid request payload")
		return
	}
	postID := ctx.Param("id")
	comment, err := p.store.AddComment(postID, userID, utils.Sanitize(req.Text))
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix("cache:post:detail:" + postID)
	utils.Success(ctx, gin.H{"comment": comment})
}

// DeleteComment removes a comment; allowed for the comment author or the
// post owner.
func (p *PostController) DeleteComment(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}
	commentID := strings.TrimSpace(ctx.Param("commentId"))
	if commentID == "" {
		utils.Error(ctx, http.StatusBadRequest, 40070, "missing comment id")
		return
	}
	comment, err := p.store.GetComment(commentID)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	if err := p.store.DeleteComment(commentID, userID); err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix("cache:post:detail:" + comment.PostID)
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}
