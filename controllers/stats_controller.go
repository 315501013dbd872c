package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"travelshare/middleware"
	"travelshare/store"
	"travelshare/utils"
)

// StatsController provides aggregate statistics.
type StatsController struct {
	store *store.Store
}

// NewStatsController creates a StatsController.
func NewStatsController(s *store.Store) *StatsController {
	return &StatsController{store: s}
}

// GetStats returns entity counts plus today's page views from redis.
func (s *StatsController) GetStats(ctx *gin.Context) {
	counts := s.store.CollectionCounts()

	var dailyActive int64
	if rc := utils.GetRedis(); rc != nil {
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		key := middleware.PVKeyPrefix + time.Now().Format("2006-01-02")
		if n, err := rc.Get(rctx, key).Int64(); err == nil {
			dailyActive = n
		}
	}

	utils.Success(ctx, gin.H{
		"user_count":         counts.Users,
		"post_count":         counts.Posts,
		"comment_count":      counts.Comments,
		"daily_active_count": dailyActive,
	})
}
