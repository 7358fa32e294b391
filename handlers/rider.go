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

// GetAvailableOrders lists ready orders nobody has claimed, oldest first
func GetAvailableOrders(c *gin.Context) {
	var orders []models.Order
	config.DB.Preload("Restaurant").
		Where("status = ? AND rider_id IS NULL", models.StatusReady).
		Order("created_at asc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetMyDeliveries returns the rider's deliveries with their orders
func GetMyDeliveries(c *gin.Context) {
	riderID := middleware.GetUserID(c)
	var deliveries []models.Delivery
	config.DB.Preload("Order.Items").Preload("Order.Restaurant").
		Where("rider_id = ?", riderID).
		Order("updated_at desc").
		Find(&deliveries)
	c.JSON(http.StatusOK, gin.H{"count": len(deliveries), "deliveries": deliveries})
}

// ClaimOrder is the exclusive claim: ready → picked_up, assigning the
// rider and creating the delivery row in one guarded transaction. Under
// concurrent claims exactly one rider wins; losers get 409.
func ClaimOrder(c *gin.Context) {
	riderID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	err := lifecycle.Step(c.Request.Context(), config.DB, &order, models.StatusPickedUp,
		lifecycle.ActorRider, riderID, "Rider claimed the order")
	switch {
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Order is not ready for pickup",
			"current_status":    order.Status,
			"valid_next_states": lifecycle.ValidTransitionsFrom(order.Status),
		})
		return
	case errors.Is(err, lifecycle.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Order was claimed by another rider"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Order claimed",
		"order_id": order.ID,
		"status":   order.Status,
	})
}

// DepartForDelivery moves the rider's delivery pickup → delivering. The
// order itself stays picked_up; this is the rider-side sub-state.
func DepartForDelivery(c *gin.Context) {
	riderID := middleware.GetUserID(c)

	var delivery models.Delivery
	if err := config.DB.Where("order_id = ? AND rider_id = ?", c.Param("id"), riderID).
		First(&delivery).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No delivery of yours for this order"})
		return
	}

	if err := lifecycle.CanDeliveryTransition(delivery.Status, models.DeliveryDelivering); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Invalid delivery transition",
			"current_status": delivery.Status,
			"reason":         err.Error(),
		})
		return
	}

	res := config.DB.Model(&models.Delivery{}).
		Where("id = ? AND status = ?", delivery.ID, models.DeliveryPickup).
		Update("status", models.DeliveryDelivering)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Delivery changed concurrently, refresh and retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Delivery started",
		"delivery_id": delivery.ID,
		"status":      models.DeliveryDelivering,
	})
}

// CompleteOrder finishes the delivery: picked_up → completed, only by the
// assigned rider, closing the delivery row in the same step.
func CompleteOrder(c *gin.Context) {
	riderID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RiderID == nil || *order.RiderID != riderID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned rider for this order"})
		return
	}

	err := lifecycle.Step(c.Request.Context(), config.DB, &order, models.StatusCompleted,
		lifecycle.ActorRider, riderID, "Order delivered to customer")
	switch {
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Invalid state transition",
			"current_status": order.Status,
			"reason":         err.Error(),
		})
		return
	case errors.Is(err, lifecycle.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Order changed concurrently, refresh and retry"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Order delivered",
		"order_id": order.ID,
		"status":   order.Status,
	})
}
