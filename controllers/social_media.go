package controllers

import (
	"context"
	"net/http"
	"sort"

	"github.com/PayAidPayments/payaid-crm-sub001/models"
	"github.com/PayAidPayments/payaid-crm-sub001/utils"

	"github.com/gin-gonic/gin"
)

// ScheduledPostStore lists scheduled posts.
type ScheduledPostStore interface {
	ListScheduled(ctx context.Context, tenantID string, filter models.ScheduledPostFilter) ([]models.ScheduledPost, error)
}

// SocialMediaController serves the scheduled-post listing.
type SocialMediaController struct {
	posts ScheduledPostStore
}

// NewSocialMediaController returns a controller reading from posts.
func NewSocialMediaController(posts ScheduledPostStore) *SocialMediaController {
	return &SocialMediaController{posts: posts}
}

// GetScheduledPosts GET /api/marketing/social-media/scheduled?platform=&accountId=
func (sc *SocialMediaController) GetScheduledPosts(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}

	filter := models.ScheduledPostFilter{
		Platform:  c.Query("platform"),
		AccountID: c.Query("accountId"),
	}

	posts, err := sc.posts.ListScheduled(c.Request.Context(), auth.TenantID, filter)
	if err != nil {
		_ = c.Error(&utils.ApiError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Failed to fetch scheduled posts",
			ErrorCode:  utils.CodeInternal,
			Err:        err,
		})
		return
	}
	if posts == nil {
		posts = []models.ScheduledPost{}
	}
	// Soonest first, whatever order the store returned.
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].ScheduledFor.Before(posts[j].ScheduledFor)
	})

	c.JSON(http.StatusOK, gin.H{"scheduledPosts": posts})
}
