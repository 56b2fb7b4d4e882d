package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library

	"reels_monetization/internal/domain"     // Importing domain models
	"reels_monetization/internal/middleware" // Context keys
	"reels_monetization/internal/rewards"    // Monetization service
	"reels_monetization/internal/utils"      // Cache helpers
)

// GetPrivacyHandler returns the user's privacy settings
func GetPrivacyHandler(svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, svc.Privacy(userID))
	}
}

// UpdatePrivacyHandler replaces the user's privacy settings
func UpdatePrivacyHandler(svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req domain.PrivacySettings
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		p, err := svc.UpdatePrivacy(c.Request.Context(), userID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// EnableTwoFactorHandler enrolls the user in two-factor authentication
func EnableTwoFactorHandler(svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		secret, err := svc.EnableTwoFactor(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"secret": secret})
	}
}

// ExportDataHandler returns everything the service holds about the user
func ExportDataHandler(svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		e, err := svc.ExportUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

// DeleteAccountHandler erases the user's wallets, progress and login
func DeleteAccountHandler(db *gorm.DB, svc *rewards.Service, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if err := svc.DeleteUser(ctx, userID); err != nil {
			respondError(c, err)
			return
		}
		if err := db.WithContext(ctx).Delete(&domain.User{}, c.MustGet(middleware.ContextUserID)).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to delete user row")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": userID}).Info("Account deleted")
		invalidate(ctx, cache, userID)
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
	}
}
