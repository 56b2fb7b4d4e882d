package api

import (
	"context"  // Context for cache operations
	"errors"   // Error classification
	"net/http" // HTTP status codes
	"strconv"  // Query parsing

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"reels_monetization/internal/ledger"     // Ledger errors
	"reels_monetization/internal/middleware" // Context keys
	"reels_monetization/internal/progress"   // Progress errors
	"reels_monetization/internal/rewards"    // Service errors
	"reels_monetization/internal/utils"      // Cache helpers
)

// respondError maps a service error to a status code and message
func respondError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "Internal error"
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrInvalidRate):
		status, msg = http.StatusBadRequest, "Invalid amount"
	case errors.Is(err, rewards.ErrInvalidQuantity):
		status, msg = http.StatusBadRequest, "Invalid gift quantity"
	case errors.Is(err, rewards.ErrInvalidConversion):
		status, msg = http.StatusBadRequest, "Coins must be a multiple of the conversion block"
	case errors.Is(err, rewards.ErrInvalidActivity), errors.Is(err, progress.ErrInvalidPoints):
		status, msg = http.StatusBadRequest, "Invalid activity"
	case errors.Is(err, rewards.ErrInvalidPrivacy):
		status, msg = http.StatusBadRequest, "Invalid privacy settings"
	case errors.Is(err, ledger.ErrSameAccount):
		status, msg = http.StatusBadRequest, "Cannot send to yourself"
	case errors.Is(err, rewards.ErrUnknownItem):
		status, msg = http.StatusNotFound, "Item not found"
	case errors.Is(err, ledger.ErrNotFound):
		status, msg = http.StatusNotFound, "Wallet not found"
	case errors.Is(err, ledger.ErrAlreadyExists):
		status, msg = http.StatusConflict, "Wallet already exists"
	case errors.Is(err, rewards.ErrAlreadySubscribed):
		status, msg = http.StatusConflict, "Subscription already active"
	case errors.Is(err, ledger.ErrInsufficientBalance):
		status, msg = http.StatusConflict, "Insufficient funds"
	case errors.Is(err, rewards.ErrSuspicious):
		status, msg = http.StatusTooManyRequests, "Too many requests, try again later"
	}
	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(),
			"error": err.Error(),
		}).Error("Request failed")
	}
	c.JSON(status, gin.H{"error": msg})
}

// currentUser returns the ledger key of the authenticated user
func currentUser(c *gin.Context) (string, bool) {
	key := c.GetString(middleware.ContextLedgerKey)
	if key == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return key, true
}

// ledgerKey formats a user primary key as a ledger account key
func ledgerKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// pagination reads page and page_size, capping the size at 100
func pagination(c *gin.Context) (page, pageSize int) {
	page, pageSize = 1, 20 // Defaults
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = v
	}
	return page, pageSize
}

// invalidate drops the cached wallet and history of each user
func invalidate(ctx context.Context, cache utils.Cache, userIDs ...string) {
	for _, id := range userIDs {
		if err := cache.Delete(ctx, utils.WalletKey(id)); err != nil {
			logrus.WithFields(logrus.Fields{"user_id": id, "error": err.Error()}).Warn("Failed to invalidate wallet cache")
		}
		if err := cache.DeletePrefix(ctx, utils.HistoryPrefix(id)); err != nil {
			logrus.WithFields(logrus.Fields{"user_id": id, "error": err.Error()}).Warn("Failed to invalidate history cache")
		}
	}
}
