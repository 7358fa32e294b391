package handlers

import (
	"errors"
	"net/http"

	"chowline/config"
	"chowline/lifecycle"
	"chowline/middleware"
	"chowline/models"

	"github.com/gin-gonic/gin"
)

// ── Restaurant management ───────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name             string   `json:"name" binding:"required"`
	Address          string   `json:"address" binding:"required"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	PrepTimeMinutes  int      `json:"prep_time_minutes"`
	DeliveryRadiusKm float64  `json:"delivery_radius_km"`
	Categories       []string `json:"categories" binding:"required,min=1,dive,dishcategory"`
}

// CreateRestaurant lets a chef create their (single) restaurant
func CreateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant := models.Restaurant{
		OwnerID:          ownerID,
		Name:             req.Name,
		Address:          req.Address,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		PrepTimeMinutes:  req.PrepTimeMinutes,
		DeliveryRadiusKm: req.DeliveryRadiusKm,
		Categories:       req.Categories,
		AcceptingOrders:  true,
	}
	if restaurant.PrepTimeMinutes == 0 {
		restaurant.PrepTimeMinutes = 30
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already have a restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

// ownRestaurant loads the caller's restaurant or writes a 404
func ownRestaurant(c *gin.Context) (*models.Restaurant, bool) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return nil, false
	}
	return &restaurant, true
}

// GetMyRestaurant fetches the restaurant owned by the signed-in chef
func GetMyRestaurant(c *gin.Context) {
	restaurant, ok := ownRestaurant(c)
	if !ok {
		return
	}
	config.DB.Preload("Dishes").First(restaurant, restaurant.ID)
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// UpdateRestaurant updates details, including the accepting-orders flag
// and the declared category set
func UpdateRestaurant(c *gin.Context) {
	restaurant, ok := ownRestaurant(c)
	if !ok {
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed := map[string]bool{
		"name": true, "address": true, "latitude": true, "longitude": true,
		"prep_time_minutes": true, "delivery_radius_km": true, "accepting_orders": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if raw, ok := req["categories"]; ok {
		cats, valid := categorySet(raw)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown dish category in categories"})
			return
		}
		restaurant.Categories = cats
		if err := config.DB.Model(restaurant).Update("categories", cats).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
			return
		}
	}
	if len(update) > 0 {
		if err := config.DB.Model(restaurant).Updates(update).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

func categorySet(raw interface{}) ([]string, bool) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, false
	}
	var cats []string
	for _, v := range list {
		s, ok := v.(string)
		if !ok || !models.IsDishCategory(s) {
			return nil, false
		}
		cats = append(cats, s)
	}
	return cats, true
}

// ── Menu management ─────────────────────────────────────────────────────────

type CreateDishRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"gte=0"`
	Category    string `json:"category" binding:"required,dishcategory"`
	ImageURL    string `json:"image_url"`
}

// AddDish creates a menu item. The category must be one the restaurant
// declared.
func AddDish(c *gin.Context) {
	restaurant, ok := ownRestaurant(c)
	if !ok {
		return
	}

	var req CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !restaurant.ServesCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category '" + req.Category + "' is not in your restaurant's category set"})
		return
	}

	dish := models.Dish{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		IsAvailable:  true,
	}
	if err := config.DB.Create(&dish).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add dish"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Dish added", "dish": dish})
}

// ownDish loads a dish and verifies it belongs to the caller's restaurant
func ownDish(c *gin.Context, restaurant *models.Restaurant) (*models.Dish, bool) {
	var dish models.Dish
	if err := config.DB.First(&dish, c.Param("dishId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return nil, false
	}
	if dish.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this dish"})
		return nil, false
	}
	return &dish, true
}

// UpdateDish updates a dish's fields
func UpdateDish(c *gin.Context) {
	restaurant, ok := ownRestaurant(c)
	if !ok {
		return
	}
	dish, ok := ownDish(c, restaurant)
	if !ok {
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if cat, ok := req["category"].(string); ok {
		if !models.IsDishCategory(cat) || !restaurant.ServesCategory(cat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category for this restaurant"})
			return
		}
	}
	if price, ok := req["price"].(float64); ok && price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be non-negative"})
		return
	}
	allowed := map[string]bool{"name": true, "description": true, "price": true, "category": true, "image_url": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if err := config.DB.Model(dish).Updates(update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dish"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish updated", "dish": dish})
}

// ToggleDishAvailability flips the availability flag. Each call is one
// persisted write, never coalesced.
func ToggleDishAvailability(c *gin.Context) {
	restaurant, ok := ownRestaurant(c)
	if !ok {
		return
	}
	dish, ok := ownDish(c, restaurant)
	if !ok {
		return
	}

	dish.IsAvailable = !dish.IsAvailable
	if err := config.DB.Model(dish).Update("is_available", dish.IsAvailable).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Availability updated",
		"dish_id":      dish.ID,
		"is_available": dish.IsAvailable,
	})
}

// UploadDishImage stores a dish photo and records its URL
func UploadDishImage(c *gin.Context) {
	restaurant, ok := ownRestaurant(c)
	if !ok {
		return
	}
	dish, ok := ownDish(c, restaurant)
	if !ok {
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	url, err := Images.Save(fh)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := config.DB.Model(dish).Update("image_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image uploaded", "image_url": url})
}

// DeleteDish removes a menu item
func DeleteDish(c *gin.Context) {
	restaurant, ok := ownRestaurant(c)
	if !ok {
		return
	}
	dish, ok := ownDish(c, restaurant)
	if !ok {
		return
	}
	config.DB.Delete(dish)
	c.JSON(http.StatusOK, gin.H{"message": "Dish deleted"})
}

// ── Order management ────────────────────────────────────────────────────────

// GetRestaurantOrders returns orders for the chef's restaurant with a
// per-status summary, partitioned active/past via ?scope
func GetRestaurantOrders(c *gin.Context) {
	restaurant, ok := ownRestaurant(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Items").Preload("Customer.Profile").
		Where("restaurant_id = ?", restaurant.ID)
	switch c.Query("scope") {
	case "active":
		query = query.Where("status IN ?", lifecycle.ActiveStatuses())
	case "past":
		query = query.Where("status IN ?", lifecycle.PastStatuses())
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":    restaurant.Name,
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus advances an order through the chef-owned part of the
// lifecycle. Ownership is checked against the restaurant, and the write
// itself is the guarded lifecycle step.
func UpdateOrderStatus(c *gin.Context) {
	restaurant, ok := ownRestaurant(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your restaurant"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prev := order.Status
	actor := lifecycle.ActorForRole(middleware.GetRole(c))
	err := lifecycle.Step(c.Request.Context(), config.DB, &order, req.Status, actor, middleware.GetUserID(c), req.Note)
	switch {
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    prev,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": lifecycle.ValidTransitionsFrom(prev),
		})
		return
	case errors.Is(err, lifecycle.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Order changed concurrently, refresh and retry"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": prev,
		"current_status":  order.Status,
	})
}
