package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"reels_monetization/internal/catalog" // Reference data
)

// coinPackageView adds the computed price and coin total to a package
type coinPackageView struct {
	catalog.CoinPackage
	FinalPrice string `json:"final_price"`
	TotalCoins int64  `json:"total_coins"`
}

// CatalogHandler serves the full catalog
func CatalogHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cat)
	}
}

// CoinPackagesHandler lists coin packages with their discounted prices
func CoinPackagesHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		views := make([]coinPackageView, 0, len(cat.CoinPackages))
		for _, p := range cat.CoinPackages {
			price, _ := cat.DiscountedPrice(p.ID)
			total, _ := cat.TotalCoins(p.ID)
			views = append(views, coinPackageView{CoinPackage: p, FinalPrice: price.StringFixed(2), TotalCoins: total})
		}
		c.JSON(http.StatusOK, gin.H{"coin_packages": views})
	}
}

// GiftsHandler lists the virtual gifts
func GiftsHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"gifts": cat.Gifts})
	}
}

// PlansHandler lists subscription plans and creator-support tiers
func PlansHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"plans": cat.Plans, "tiers": cat.Tiers})
	}
}

// BadgesHandler lists badges in award order
func BadgesHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"badges": cat.Badges})
	}
}
