package handlers

import (
	"fmt"
	"net/http"

	"chowline/config"
	"chowline/lifecycle"
	"chowline/middleware"
	"chowline/models"
	"chowline/pricing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	RestaurantID uint `json:"restaurant_id" binding:"required"`
	Items        []struct {
		DishID   uint `json:"dish_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

// PlaceOrder turns the client-held cart into one order plus its items,
// atomically, with status pending. An Idempotency-Key header dedupes
// double submits: a replay returns the originally created order.
func PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if key := c.GetHeader("Idempotency-Key"); key != "" {
		var existing models.Order
		err := config.DB.Preload("Items").
			Where("idempotency_key = ? AND customer_id = ?", key, customerID).
			First(&existing).Error
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Order already placed", "order": existing})
			return
		}
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !restaurant.AcceptingOrders {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant is not accepting orders right now"})
		return
	}

	var orderItems []models.OrderItem
	for _, reqItem := range req.Items {
		var dish models.Dish
		if err := config.DB.First(&dish, reqItem.DishID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Dish %d not found", reqItem.DishID)})
			return
		}
		if dish.RestaurantID != req.RestaurantID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dish '" + dish.Name + "' does not belong to this restaurant"})
			return
		}
		if !dish.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dish '" + dish.Name + "' is not available"})
			return
		}
		orderItems = append(orderItems, models.OrderItem{
			DishID:    dish.ID,
			Name:      dish.Name,
			UnitPrice: dish.Price,
			Quantity:  reqItem.Quantity,
		})
	}

	order := models.Order{
		CustomerID:   customerID,
		RestaurantID: req.RestaurantID,
		Status:       models.StatusPending,
		Subtotal:     pricing.Subtotal(orderItems),
		DeliveryFee:  pricing.DeliveryFee,
		ServiceFee:   pricing.ServiceFee,
		Total:        pricing.Total(orderItems),
		Items:        orderItems,
	}
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		order.IdempotencyKey = &key
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusPending,
			ChangedBy: customerID,
			Note:      "Order placed by customer",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	config.DB.Preload("Items").Preload("Restaurant").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message":        "Order placed successfully",
		"order":          order,
		"estimated_time": restaurant.PrepTimeMinutes,
	})
}

// GetMyOrders lists the customer's orders, partitioned active/past via
// the ?scope query
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	query := config.DB.Preload("Items").Preload("Restaurant").
		Where("customer_id = ?", customerID)
	switch c.Query("scope") {
	case "active":
		query = query.Where("status IN ?", lifecycle.ActiveStatuses())
	case "past":
		query = query.Where("status IN ?", lifecycle.PastStatuses())
	}

	var orders []models.Order
	query.Order("created_at desc").Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns one order with items, history and rider
func GetOrderDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.
		Preload("Items").Preload("Restaurant").
		Preload("StatusHistory").Preload("Rider").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "active": lifecycle.IsActive(order.Status)})
}

// AddFavorite saves a dish to the customer's favorites
func AddFavorite(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var dish models.Dish
	if err := config.DB.First(&dish, c.Param("dishId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}

	favorite := models.Favorite{CustomerID: customerID, DishID: dish.ID}
	if err := config.DB.Create(&favorite).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Dish is already in favorites"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Added to favorites", "favorite": favorite})
}

// RemoveFavorite deletes the (customer, dish) favorite row
func RemoveFavorite(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	res := config.DB.Where("customer_id = ? AND dish_id = ?", customerID, c.Param("dishId")).
		Delete(&models.Favorite{})
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
}

// ListFavorites returns the customer's saved dishes
func ListFavorites(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var favorites []models.Favorite
	config.DB.Preload("Dish").Where("customer_id = ?", customerID).Find(&favorites)
	c.JSON(http.StatusOK, gin.H{"count": len(favorites), "favorites": favorites})
}

type ReviewRequest struct {
	DishID  uint   `json:"dish_id" binding:"required"`
	OrderID uint   `json:"order_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ReviewDish records a rating for a dish from one of the customer's
// completed orders and refreshes the dish's average. The redis marker
// short-circuits duplicate submissions; the unique index is the backstop.
func ReviewDish(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").First(&order, req.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	if order.Status != models.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only completed orders can be reviewed"})
		return
	}
	ordered := false
	for _, it := range order.Items {
		if it.DishID == req.DishID {
			ordered = true
			break
		}
	}
	if !ordered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dish was not part of this order"})
		return
	}

	ctx := c.Request.Context()
	markerKey := Reviews.MarkerKey(req.DishID, req.OrderID)
	if Reviews.Exists(ctx, markerKey) {
		c.JSON(http.StatusConflict, gin.H{"error": "Dish already reviewed for this order"})
		return
	}

	review := models.DishReview{
		DishID:     req.DishID,
		OrderID:    req.OrderID,
		CustomerID: customerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	var rating float64
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		var dish models.Dish
		if err := tx.First(&dish, req.DishID).Error; err != nil {
			return err
		}
		total := dish.Rating*float64(dish.RatingCount) + float64(req.Rating)
		dish.RatingCount++
		rating = total / float64(dish.RatingCount)
		return tx.Model(&dish).Updates(map[string]interface{}{
			"rating":       rating,
			"rating_count": dish.RatingCount,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Dish already reviewed for this order"})
		return
	}

	Reviews.SetMarker(ctx, markerKey)
	Reviews.SetRating(ctx, req.DishID, rating)

	c.JSON(http.StatusCreated, gin.H{"message": "Review recorded", "review": review, "dish_rating": rating})
}
