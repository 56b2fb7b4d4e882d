package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library

	"reels_monetization/internal/domain"  // Importing domain models
	"reels_monetization/internal/money"   // Amounts
	"reels_monetization/internal/rewards" // Monetization service
	"reels_monetization/internal/utils"   // Utility functions
)

// GetWalletHandler returns both balances of the authenticated user
func GetWalletHandler(svc *rewards.Service, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		cacheKey := utils.WalletKey(userID) // Cache key for wallet
		var wallets rewards.Wallets
		if found, err := cache.Get(ctx, cacheKey, &wallets); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"wallet": wallets, "cached": true})
			return
		}
		wallets, err := svc.Balances(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = cache.Set(ctx, cacheKey, wallets)
		// A mutation that landed between the read and the Set already ran its
		// invalidation, so the entry just written would be stale
		if fresh, err := svc.Balances(ctx, userID); err != nil || fresh != wallets {
			_ = cache.Delete(ctx, cacheKey)
		}
		c.JSON(http.StatusOK, gin.H{"wallet": wallets, "cached": false})
	}
}

// RewardedAdHandler credits the coins for a watched rewarded ad
func RewardedAdHandler(svc *rewards.Service, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		balance, err := svc.RewardedAd(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidate(c.Request.Context(), cache, userID)
		c.JSON(http.StatusOK, gin.H{"coins": balance})
	}
}

// PurchaseRequest buys a coin package
type PurchaseRequest struct {
	PackageID     string `json:"package_id" binding:"required"`     // Catalog coin package
	PaymentMethod string `json:"payment_method" binding:"required"` // card, wallet, ...
}

// PurchaseCoinsHandler credits a coin package
func PurchaseCoinsHandler(svc *rewards.Service, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req PurchaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		p, err := svc.PurchaseCoins(c.Request.Context(), userID, req.PackageID, req.PaymentMethod)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidate(c.Request.Context(), cache, userID)
		c.JSON(http.StatusOK, p)
	}
}

// GiftRequest sends a virtual gift
type GiftRequest struct {
	ToUsername string `json:"to_username" binding:"required"` // Receiver
	GiftID     string `json:"gift_id" binding:"required"`     // Catalog gift
	Quantity   int    `json:"quantity"`                       // Defaults to one
}

// SendGiftHandler moves the gift price from the sender to the receiver
func SendGiftHandler(db *gorm.DB, svc *rewards.Service, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		fromUserID, ok := currentUser(c)
		if !ok {
			return
		}
		var req GiftRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		ctx := c.Request.Context()
		var toUser domain.User
		if err := db.WithContext(ctx).Where("username = ?", req.ToUsername).First(&toUser).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
			return
		}
		toUserID := ledgerKey(toUser.ID)
		t, err := svc.SendGift(ctx, fromUserID, toUserID, req.GiftID, req.Quantity)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"from_user_id": fromUserID, // Sender
				"to_user_id":   toUserID,   // Receiver
				"gift_id":      req.GiftID, // Gift
				"quantity":     req.Quantity,
				"error":        err.Error(),
			}).Error("Gift failed")
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"transfer_id":  t.ID.String(),
			"from_user_id": fromUserID,
			"to_user_id":   toUserID,
			"gift_id":      req.GiftID,
			"gross":        t.Gross.String(),
			"net":          t.Net.String(),
		}).Info("Gift sent")
		invalidate(ctx, cache, fromUserID, toUserID)
		c.JSON(http.StatusOK, gin.H{"message": "Gift sent", "transfer": t})
	}
}

// WithdrawRequest pays cash out to a bank account
type WithdrawRequest struct {
	Amount      money.Amount `json:"amount" binding:"required"`       // e.g. "12.50"
	BankAccount string       `json:"bank_account" binding:"required"` // IBAN or account number
}

// WithdrawHandler debits the cash wallet for a bank payout
func WithdrawHandler(svc *rewards.Service, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req WithdrawRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		balance, err := svc.Withdraw(c.Request.Context(), userID, req.Amount, req.BankAccount)
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"amount":  req.Amount.String(),
		}).Info("Withdrawal requested")
		invalidate(c.Request.Context(), cache, userID)
		c.JSON(http.StatusAccepted, gin.H{"message": "Withdrawal pending", "cash": balance})
	}
}

// ConvertCoinsRequest cashes out whole coins
type ConvertCoinsRequest struct {
	Coins int64 `json:"coins" binding:"required"` // Multiple of the conversion block
}

// ConvertCoinsHandler moves coins into the cash wallet at the catalog rate
func ConvertCoinsHandler(svc *rewards.Service, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req ConvertCoinsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		conv, err := svc.ConvertCoins(c.Request.Context(), userID, req.Coins)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidate(c.Request.Context(), cache, userID)
		c.JSON(http.StatusOK, conv)
	}
}

// historyPage is one page of journal lines
type historyPage struct {
	Transactions []domain.Transaction `json:"transactions"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
	Total        int64                `json:"total"`
	TotalPages   int                  `json:"total_pages"`
	Cached       bool                 `json:"cached"`
}

// GetTransactionHistoryHandler returns the journal of the authenticated user
func GetTransactionHistoryHandler(db *gorm.DB, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		page, pageSize := pagination(c)
		ledgerName := c.Query("ledger") // Optional coins or cash filter
		cacheKey := utils.HistoryPrefix(userID) + ":ledger:" + ledgerName + ":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(pageSize)
		ctx := c.Request.Context()

		var resp historyPage
		if found, err := cache.Get(ctx, cacheKey, &resp); err == nil && found {
			resp.Cached = true
			c.JSON(http.StatusOK, resp)
			return
		}
		query := db.WithContext(ctx).Model(&domain.Transaction{}).Where("user_id = ?", userID)
		if ledgerName != "" {
			query = query.Where("ledger = ?", ledgerName)
		}
		if err := query.Count(&resp.Total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count transactions"})
			return
		}
		if err := query.Order("created_at desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&resp.Transactions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		resp.Page = page
		resp.PageSize = pageSize
		resp.TotalPages = (int(resp.Total) + pageSize - 1) / pageSize
		_ = cache.Set(ctx, cacheKey, resp)
		c.JSON(http.StatusOK, resp)
	}
}
