package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"chowline/config"
	"chowline/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOrderLifecycleEndToEnd walks one order through every role:
// checkout → chef prepares → rider claims and delivers, checking the
// totals, the active/past partitions and the audit trail along the way.
func TestOrderLifecycleEndToEnd(t *testing.T) {
	r := newTestRouter(t)

	chefToken, restaurantID, dishIDs := setupRestaurant(t, r, "chef@chowline.test", []menuItem{
		{Name: "Jollof Rice", Price: 1000, Category: "Rice"},
		{Name: "Suya Stick", Price: 500, Category: "Grill"},
	})
	customerToken := registerUser(t, r, "ada@chowline.test", models.RoleCustomer)
	riderToken := registerUser(t, r, "musa@chowline.test", models.RoleRider)

	// Checkout: 2×1000 + 1×500 + 500 delivery + 100 service = 3100.
	w, resp := doJSON(t, r, http.MethodPost, "/api/customer/orders", customerToken, gin.H{
		"restaurant_id": restaurantID,
		"items": []gin.H{
			{"dish_id": dishIDs[0], "quantity": 2},
			{"dish_id": dishIDs[1], "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, "%v", resp)
	order := resp["order"].(map[string]interface{})
	orderID := order["id"]
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, float64(2500), order["subtotal"])
	assert.Equal(t, float64(3100), order["total"])
	assert.Len(t, order["items"].([]interface{}), 2)

	statusPath := fmt.Sprintf("/api/chef/orders/%v/status", orderID)

	// Chef cannot skip ahead.
	w, _ = doJSON(t, r, http.MethodPut, statusPath, chefToken, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// pending → preparing → ready.
	w, _ = doJSON(t, r, http.MethodPut, statusPath, chefToken, gin.H{"status": "preparing"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodPut, statusPath, chefToken, gin.H{"status": "ready"})
	require.Equal(t, http.StatusOK, w.Code)

	// Backwards is rejected.
	w, _ = doJSON(t, r, http.MethodPut, statusPath, chefToken, gin.H{"status": "preparing"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Still in the chef's active feed while ready.
	w, resp = doJSON(t, r, http.MethodGet, "/api/chef/orders?scope=active", chefToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["count"])

	// Rider sees it and claims it.
	w, resp = doJSON(t, r, http.MethodGet, "/api/rider/orders/available", riderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(1), resp["count"])

	claimPath := fmt.Sprintf("/api/rider/orders/%v/claim", orderID)
	w, _ = doJSON(t, r, http.MethodPut, claimPath, riderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Once picked up it leaves the active partition.
	w, resp = doJSON(t, r, http.MethodGet, "/api/chef/orders?scope=active", chefToken, nil)
	assert.Equal(t, float64(0), resp["count"])
	w, resp = doJSON(t, r, http.MethodGet, "/api/chef/orders?scope=past", chefToken, nil)
	assert.Equal(t, float64(1), resp["count"])

	// The claim created the linked delivery.
	var delivery models.Delivery
	require.NoError(t, config.DB.Where("order_id = ?", orderID).First(&delivery).Error)
	assert.Equal(t, models.DeliveryPickup, delivery.Status)

	// Depart, then complete.
	departPath := fmt.Sprintf("/api/rider/orders/%v/depart", orderID)
	w, _ = doJSON(t, r, http.MethodPut, departPath, riderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodPut, departPath, riderToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	completePath := fmt.Sprintf("/api/rider/orders/%v/complete", orderID)
	w, _ = doJSON(t, r, http.MethodPut, completePath, riderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Customer sees the full trail: placed + four transitions.
	w, resp = doJSON(t, r, http.MethodGet, orderPath(orderID), customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := resp["order"].(map[string]interface{})
	assert.Equal(t, "completed", detail["status"])
	assert.Len(t, detail["status_history"].([]interface{}), 5)
	assert.Equal(t, false, resp["active"])

	var closed models.Delivery
	require.NoError(t, config.DB.Where("order_id = ?", orderID).First(&closed).Error)
	assert.Equal(t, models.DeliveryCompleted, closed.Status)
}

func TestClaimLoserGetsConflict(t *testing.T) {
	r := newTestRouter(t)

	chefToken, restaurantID, dishIDs := setupRestaurant(t, r, "chef@chowline.test", []menuItem{
		{Name: "Jollof Rice", Price: 1000, Category: "Rice"},
	})
	customerToken := registerUser(t, r, "ada@chowline.test", models.RoleCustomer)
	riderA := registerUser(t, r, "riderA@chowline.test", models.RoleRider)
	riderB := registerUser(t, r, "riderB@chowline.test", models.RoleRider)

	w, resp := doJSON(t, r, http.MethodPost, "/api/customer/orders", customerToken, gin.H{
		"restaurant_id": restaurantID,
		"items":         []gin.H{{"dish_id": dishIDs[0], "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := resp["order"].(map[string]interface{})["id"]

	statusPath := fmt.Sprintf("/api/chef/orders/%v/status", orderID)
	doJSON(t, r, http.MethodPut, statusPath, chefToken, gin.H{"status": "preparing"})
	doJSON(t, r, http.MethodPut, statusPath, chefToken, gin.H{"status": "ready"})

	claimPath := fmt.Sprintf("/api/rider/orders/%v/claim", orderID)
	w, _ = doJSON(t, r, http.MethodPut, claimPath, riderA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodPut, claimPath, riderB, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// On retry the loser no longer sees the order as claimable.
	w, resp = doJSON(t, r, http.MethodGet, "/api/rider/orders/available", riderB, nil)
	assert.Equal(t, float64(0), resp["count"])

	// And the loser cannot complete the winner's delivery.
	completePath := fmt.Sprintf("/api/rider/orders/%v/complete", orderID)
	w, _ = doJSON(t, r, http.MethodPut, completePath, riderB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPlaceOrderIdempotency(t *testing.T) {
	r := newTestRouter(t)

	_, restaurantID, dishIDs := setupRestaurant(t, r, "chef@chowline.test", []menuItem{
		{Name: "Jollof Rice", Price: 1000, Category: "Rice"},
	})
	customerToken := registerUser(t, r, "ada@chowline.test", models.RoleCustomer)

	body := gin.H{
		"restaurant_id": restaurantID,
		"items":         []gin.H{{"dish_id": dishIDs[0], "quantity": 1}},
	}
	key := map[string]string{"Idempotency-Key": "checkout-42"}

	w, resp := doJSON(t, r, http.MethodPost, "/api/customer/orders", customerToken, body, key)
	require.Equal(t, http.StatusCreated, w.Code)
	firstID := resp["order"].(map[string]interface{})["id"]

	// Double click: the replay returns the original order, no new row.
	w, resp = doJSON(t, r, http.MethodPost, "/api/customer/orders", customerToken, body, key)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, firstID, resp["order"].(map[string]interface{})["id"])

	var count int64
	config.DB.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestPlaceOrderValidation(t *testing.T) {
	r := newTestRouter(t)

	chefToken, restaurantID, dishIDs := setupRestaurant(t, r, "chef@chowline.test", []menuItem{
		{Name: "Jollof Rice", Price: 1000, Category: "Rice"},
	})
	customerToken := registerUser(t, r, "ada@chowline.test", models.RoleCustomer)

	// Empty cart.
	w, _ := doJSON(t, r, http.MethodPost, "/api/customer/orders", customerToken, gin.H{
		"restaurant_id": restaurantID,
		"items":         []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Closed restaurant.
	w, _ = doJSON(t, r, http.MethodPut, "/api/chef/restaurant", chefToken, gin.H{"accepting_orders": false})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, "/api/customer/orders", customerToken, gin.H{
		"restaurant_id": restaurantID,
		"items":         []gin.H{{"dish_id": dishIDs[0], "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	config.DB.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
