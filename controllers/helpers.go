package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelshare/middleware"
	"travelshare/store"
	"travelshare/utils"
)

func getUserID(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// respondStoreError maps the store's tagged error kinds onto HTTP
// responses. Validation, not-found, conflict and permission failures carry
// user-facing text; everything else is logged and collapsed into a generic
// message so internal error text never reaches the client.
func respondStoreError(ctx *gin.Context, err error) {
	if ve, ok := store.AsValidation(err); ok {
		utils.Error(ctx, http.StatusBadRequest, 40001, ve.Error())
		return
	}
	switch err {
	case store.ErrNotFound:
		utils.Error(ctx, http.StatusNotFound, 40401, "not found")
	case store.ErrConflict:
		utils.Error(ctx, http.StatusConflict, 40901, "already exists")
	case store.ErrPermission:
		utils.Error(ctx, http.StatusForbidden, 40301, "you are not allowed to do that")
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorf("internal error on %s: %v", ctx.FullPath(), err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50000, "something went wrong")
	}
}
