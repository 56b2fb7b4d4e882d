package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Query parsing

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library

	"reels_monetization/internal/domain"     // Importing domain models
	"reels_monetization/internal/middleware" // Context keys
	"reels_monetization/internal/money"      // Amounts
	"reels_monetization/internal/rewards"    // Monetization service
	"reels_monetization/internal/utils"      // Cache helpers
)

// SubscribeRequest activates a creator-support tier
type SubscribeRequest struct {
	Tier string `json:"tier" binding:"required"` // silver, gold or diamond
}

// SubscribeHandler charges the tier to the cash wallet and pays the referrer's commission
func SubscribeHandler(db *gorm.DB, svc *rewards.Service, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		var user domain.User
		if err := db.WithContext(ctx).First(&user, c.MustGet(middleware.ContextUserID)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		userID := ledgerKey(user.ID)
		referrerID := ""
		if user.ReferredBy != nil {
			referrerID = ledgerKey(*user.ReferredBy)
		}
		sub, err := svc.Subscribe(ctx, userID, req.Tier, referrerID)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", user.ID).Update("tier", sub.Tier).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"tier":    sub.Tier,
				"error":   err.Error(),
			}).Error("Failed to store user tier")
		}
		logrus.WithFields(logrus.Fields{
			"user_id":     user.ID,
			"tier":        sub.Tier,
			"price":       money.Amount(sub.Price).String(),
			"referrer_id": referrerID,
		}).Info("Subscription activated")
		invalidate(ctx, cache, userID)
		if referrerID != "" {
			invalidate(ctx, cache, referrerID)
		}
		c.JSON(http.StatusCreated, gin.H{
			"tier":         sub.Tier,
			"price":        money.Amount(sub.Price),
			"renewal_date": sub.RenewalDate,
		})
	}
}

// ReferralsHandler returns the user's code, how many users it brought in
// and the sign-up bonuses plus commissions those referrals are worth
func ReferralsHandler(db *gorm.DB, svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var user domain.User
		if err := db.WithContext(ctx).First(&user, c.MustGet(middleware.ContextUserID)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		var count int64
		if err := db.WithContext(ctx).Model(&domain.User{}).Where("referred_by = ?", user.ID).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count referrals"})
			return
		}
		var commissions int64
		if err := db.WithContext(ctx).Model(&domain.Transaction{}).
			Where("user_id = ? AND category = ?", ledgerKey(user.ID), domain.CategoryCommission).
			Select("COALESCE(SUM(amount), 0)").Scan(&commissions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum commissions"})
			return
		}
		bonuses, err := svc.ReferralEarnings(count, 0)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"referral_code":   user.ReferralCode,
			"referrals":       count,
			"commissions":     money.Amount(commissions),
			"estimated_total": bonuses + money.Amount(commissions),
			"rewards":         svc.Catalog().Referral,
		})
	}
}

// CreatorEarningsHandler estimates earnings for view, like and share counts
// using the multiplier of the user's plan
func CreatorEarningsHandler(db *gorm.DB, svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts := make(map[string]int64, 3)
		for _, k := range []string{"views", "likes", "shares"} {
			v, err := strconv.ParseInt(c.DefaultQuery(k, "0"), 10, 64)
			if err != nil || v < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + k})
				return
			}
			counts[k] = v
		}
		plan := c.Query("plan")
		if plan == "" {
			var user domain.User
			if err := db.WithContext(c.Request.Context()).Select("id", "tier").First(&user, c.MustGet(middleware.ContextUserID)).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			plan = user.Tier
		}
		if _, ok := svc.Catalog().Plan(plan); !ok {
			plan = "free" // Creator-support tiers carry no multiplier
		}
		est, err := svc.CreatorEarnings(counts["views"], counts["likes"], counts["shares"], plan)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"plan": plan, "estimated_earnings": est.StringFixed(2)})
	}
}
