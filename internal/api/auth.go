package api

import (
	"errors"   // Error classification
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation
	"time"     // Login timestamps

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Referral codes
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library

	"reels_monetization/internal/domain"  // Importing domain models
	"reels_monetization/internal/rewards" // Wallets and referral bonuses
	"reels_monetization/internal/utils"   // Utility functions
)

// RegisterRequest is the body of a registration
type RegisterRequest struct {
	Username     string `json:"username" binding:"required"` // Username must be provided
	Password     string `json:"password" binding:"required"` // Password must be provided
	ReferralCode string `json:"referral_code"`               // Optional code of the referrer
}

// LoginRequest is the body of a login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse carries an issued token
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{2,31}$`)

// isValidUsername checks the username is 3-32 letters, digits or underscores
func isValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// isValidPassword checks if the password length is between 8 and 64 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 64
}

// newReferralCode returns a short shareable code
func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// RegisterHandler creates a user, opens their wallets and pays referral bonuses
func RegisterHandler(db *gorm.DB, svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if !isValidUsername(req.Username) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be 3-32 letters, digits or underscores"})
			return
		}
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-64 characters"})
			return
		}
		ctx := c.Request.Context()
		var referrer *domain.User
		if req.ReferralCode != "" {
			var r domain.User
			if err := db.WithContext(ctx).Where("referral_code = ?", strings.ToUpper(req.ReferralCode)).First(&r).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown referral code"})
				return
			}
			referrer = &r
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Lowercase username to ensure uniqueness
		user := domain.User{
			Username:     strings.ToLower(req.Username),
			Password:     string(hash),
			Role:         domain.RoleUser,
			ReferralCode: newReferralCode(),
			Tier:         "free",
		}
		if referrer != nil {
			user.ReferredBy = &referrer.ID
		}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"username": user.Username,
				"error":    err.Error(),
			}).Error("Failed to create user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
		key := ledgerKey(user.ID)
		if err := svc.OpenWallets(ctx, key); err != nil {
			respondError(c, err)
			return
		}
		fields := logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // Username
		}
		if referrer != nil {
			if _, err := svc.RecordReferral(ctx, ledgerKey(referrer.ID), key); err != nil {
				// The account exists; a missed bonus is not worth failing registration
				logrus.WithFields(logrus.Fields{
					"user_id":     user.ID,
					"referrer_id": referrer.ID,
					"error":       err.Error(),
				}).Error("Referral bonus failed")
			}
			fields["referrer_id"] = referrer.ID
		}
		logrus.WithFields(fields).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "referral_code": user.ReferralCode})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.WithContext(c.Request.Context()).Where("username = ?", strings.ToLower(req.Username)).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Username, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Best effort, a stale last_login does not block the login
		_ = db.WithContext(c.Request.Context()).Model(&domain.User{}).Where("id = ?", user.ID).
			Update("last_login", time.Now().UnixMilli()).Error
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}
