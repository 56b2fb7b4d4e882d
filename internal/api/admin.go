package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library

	"reels_monetization/internal/domain"     // Importing domain models
	"reels_monetization/internal/middleware" // Context keys
	"reels_monetization/internal/money"      // Amounts
	"reels_monetization/internal/rewards"    // Monetization service
	"reels_monetization/internal/utils"      // Utility functions
)

// UserAdminResponse represents the user data returned to admin
type UserAdminResponse struct {
	ID       uint            `json:"id"`       // User ID
	Username string          `json:"username"` // Username
	Role     string          `json:"role"`     // User role
	Tier     string          `json:"tier"`     // Subscription tier
	Wallets  rewards.Wallets `json:"wallets"`  // Coin and cash balances
}

// usersPage is one page of the admin user list
type usersPage struct {
	Users      []UserAdminResponse `json:"users"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	Total      int64               `json:"total"`
	TotalPages int                 `json:"total_pages"`
	Cached     bool                `json:"cached"`
}

// ListUsersHandler returns users with their balances
func ListUsersHandler(db *gorm.DB, svc *rewards.Service, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page, pageSize := pagination(c)
		cacheKey := "admin:users:page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)
		var resp usersPage
		if found, err := cache.Get(ctx, cacheKey, &resp); err == nil && found {
			resp.Cached = true
			c.JSON(http.StatusOK, resp)
			return
		}
		if err := db.WithContext(ctx).Model(&domain.User{}).Count(&resp.Total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
			return
		}
		var users []domain.User
		if err := db.WithContext(ctx).Order("id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		resp.Users = make([]UserAdminResponse, len(users))
		for i, u := range users {
			w, err := svc.Balances(ctx, ledgerKey(u.ID))
			if err != nil {
				respondError(c, err)
				return
			}
			resp.Users[i] = UserAdminResponse{ID: u.ID, Username: u.Username, Role: u.Role, Tier: u.Tier, Wallets: w}
		}
		resp.Page = page
		resp.PageSize = pageSize
		resp.TotalPages = (int(resp.Total) + pageSize - 1) / pageSize
		_ = cache.Set(ctx, cacheKey, resp)
		c.JSON(http.StatusOK, resp)
	}
}

// ListTransactionsHandler returns journal lines, optionally filtered by user,
// ledger, type, category or creation time (milliseconds)
func ListTransactionsHandler(db *gorm.DB, cache utils.Cache) gin.HandlerFunc {
	filters := []string{"user_id", "ledger", "type", "category"}
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page, pageSize := pagination(c)
		var keyParts []string
		for _, k := range append(filters, "from", "to") {
			keyParts = append(keyParts, k+"="+c.Query(k))
		}
		cacheKey := "admin:txs:" + strings.Join(keyParts, ":") + ":page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)
		var resp historyPage
		if found, err := cache.Get(ctx, cacheKey, &resp); err == nil && found {
			resp.Cached = true
			c.JSON(http.StatusOK, resp)
			return
		}
		query := db.WithContext(ctx).Model(&domain.Transaction{})
		for _, k := range filters {
			if v := c.Query(k); v != "" {
				query = query.Where(k+" = ?", v) // Column names come from the fixed list above
			}
		}
		if from, err := strconv.ParseInt(c.Query("from"), 10, 64); err == nil {
			query = query.Where("created_at >= ?", from)
		}
		if to, err := strconv.ParseInt(c.Query("to"), 10, 64); err == nil {
			query = query.Where("created_at <= ?", to)
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

// BonusRequest grants coins to a user
type BonusRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Coins  int64  `json:"coins" binding:"required,gt=0"`
	Reason string `json:"reason" binding:"required"`
}

// AddBonusHandler credits bonus coins
func AddBonusHandler(svc *rewards.Service, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BonusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		userID := ledgerKey(req.UserID)
		balance, err := svc.AddBonus(c.Request.Context(), userID, req.Coins, req.Reason)
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"coins":   req.Coins,
			"reason":  req.Reason,
			"admin":   c.GetString(middleware.ContextUsername),
		}).Info("Bonus granted")
		invalidate(c.Request.Context(), cache, userID)
		c.JSON(http.StatusOK, gin.H{"coins": balance})
	}
}

// ChallengeRequest opens a weekly challenge
type ChallengeRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Reward      int64  `json:"reward" binding:"gte=0"`
}

// CreateChallengeHandler opens a challenge
func CreateChallengeHandler(svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChallengeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ch, err := svc.CreateChallenge(c.Request.Context(), req.Title, req.Description, req.Reward)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, ch)
	}
}

// SponsoredRequest records a brand payment to a creator
type SponsoredRequest struct {
	CreatorID uint         `json:"creator_id" binding:"required"`
	BrandID   string       `json:"brand_id" binding:"required"`
	Amount    money.Amount `json:"amount" binding:"required"`
}

// SponsoredContentHandler credits a sponsorship minus the platform cut
func SponsoredContentHandler(svc *rewards.Service, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SponsoredRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		creatorID := ledgerKey(req.CreatorID)
		t, err := svc.SponsoredContent(c.Request.Context(), creatorID, req.BrandID, req.Amount)
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"transfer_id": t.ID.String(),
			"creator_id":  creatorID,
			"brand_id":    req.BrandID,
			"gross":       t.Gross.String(),
			"net":         t.Net.String(),
		}).Info("Sponsored content recorded")
		invalidate(c.Request.Context(), cache, creatorID)
		c.JSON(http.StatusOK, gin.H{"transfer": t})
	}
}
