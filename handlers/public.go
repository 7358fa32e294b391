package handlers

import (
	"net/http"

	"chowline/config"
	"chowline/lifecycle"
	"chowline/models"

	"github.com/gin-gonic/gin"
)

// TopRatedThreshold is the minimum average rating for the "top rated"
// discovery filter.
const TopRatedThreshold = 4.5

// ListRestaurants returns restaurants, filterable by name search and
// whether they are currently accepting orders
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB

	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if c.Query("accepting") == "true" {
		query = query.Where("accepting_orders = ?", true)
	}

	query.Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns a single restaurant with its menu
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.Preload("Dishes").First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetMenu returns a restaurant's dishes. Category matching is exact and
// case-sensitive; "All" (or no category) returns everything.
func GetMenu(c *gin.Context) {
	restaurantID := c.Param("id")
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var dishes []models.Dish
	query := config.DB.Where("restaurant_id = ?", restaurantID)
	if category := c.Query("category"); category != "" && category != "All" {
		query = query.Where("category = ?", category)
	}
	if c.Query("available") == "true" {
		query = query.Where("is_available = ?", true)
	}
	query.Find(&dishes)

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(dishes),
		"dishes":     dishes,
	})
}

// ListDishes is cross-restaurant discovery: free-text search over name
// and description, category filter ("All" passes through), and a
// top-rated cut at rating >= 4.5. Only dishes from restaurants currently
// accepting orders appear.
func ListDishes(c *gin.Context) {
	var dishes []models.Dish
	query := config.DB.Model(&models.Dish{}).
		Joins("JOIN restaurants ON restaurants.id = dishes.restaurant_id").
		Where("restaurants.accepting_orders = ?", true).
		Where("dishes.is_available = ?", true)

	if q := c.Query("q"); q != "" {
		query = query.Where("dishes.name LIKE ? OR dishes.description LIKE ?", "%"+q+"%", "%"+q+"%")
	}
	if category := c.Query("category"); category != "" && category != "All" {
		query = query.Where("dishes.category = ?", category)
	}
	if c.Query("top_rated") == "true" {
		query = query.Where("dishes.rating >= ?", TopRatedThreshold)
	}

	query.Find(&dishes)
	c.JSON(http.StatusOK, gin.H{
		"count":  len(dishes),
		"dishes": dishes,
	})
}

// GetCategories returns the fixed category set the UIs build filters from
func GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.DishCategories})
}

// GetLifecycleInfo returns the order state machine for documentation
func GetLifecycleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"transitions":     lifecycle.AllTransitions(),
		"active_statuses": lifecycle.ActiveStatuses(),
		"past_statuses":   lifecycle.PastStatuses(),
		"terminal_states": []models.OrderStatus{models.StatusCompleted},
	})
}
