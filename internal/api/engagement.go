package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Query parsing

	"github.com/gin-gonic/gin" // Gin web framework

	"reels_monetization/internal/progress" // Leaderboard rows
	"reels_monetization/internal/rewards"  // Monetization service
)

// WatchRequest reports a watched video
type WatchRequest struct {
	VideoID string `json:"video_id" binding:"required"`
	Seconds int    `json:"seconds"`
}

// WatchVideoHandler awards watch points
func WatchVideoHandler(svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req WatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		a, err := svc.WatchVideo(c.Request.Context(), userID, req.VideoID, req.Seconds)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

// InteractRequest reports a like, comment or share
type InteractRequest struct {
	VideoID string `json:"video_id" binding:"required"`
	Kind    string `json:"kind" binding:"required"`
}

// InteractHandler awards interaction points
func InteractHandler(svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req InteractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		a, err := svc.Interact(c.Request.Context(), userID, req.VideoID, req.Kind)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

// VoiceCommentRequest attaches an uploaded audio clip to a video
type VoiceCommentRequest struct {
	VideoID  string `json:"video_id" binding:"required"`
	AudioURL string `json:"audio_url" binding:"required,url"`
}

// VoiceCommentHandler stores a voice comment and awards its points
func VoiceCommentHandler(svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req VoiceCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		a, err := svc.VoiceComment(c.Request.Context(), userID, req.VideoID, req.AudioURL)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, a)
	}
}

// DashboardHandler returns balances, progress and rank
func DashboardHandler(svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		d, err := svc.Dashboard(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// LeaderboardHandler returns the top users, 10 by default and 100 at most
func LeaderboardHandler(svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 10
		if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
			limit = v
		}
		rows := make([]progress.Standing, 0, limit)
		for s := range svc.Progress().Leaderboard(limit) {
			rows = append(rows, s)
		}
		c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
	}
}

// ListChallengesHandler returns the open challenges
func ListChallengesHandler(svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"challenges": svc.Progress().Challenges()})
	}
}

// JoinChallengeHandler enrolls the user in a challenge
func JoinChallengeHandler(svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		if err := svc.JoinChallenge(c.Request.Context(), userID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Joined challenge"})
	}
}

// CompleteChallengeHandler credits a challenge reward
func CompleteChallengeHandler(svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, svc.CompleteChallenge(c.Request.Context(), userID, c.Param("id")))
	}
}
