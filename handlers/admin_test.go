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

func TestAdminProvisionUser(t *testing.T) {
	r := newTestRouter(t)
	adminToken := createAdmin(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/admin/users", adminToken, gin.H{
		"email":     "ops@chowline.test",
		"password":  "secret123",
		"full_name": "Ops Admin",
		"role":      "admin",
	})
	require.Equal(t, http.StatusCreated, w.Code, "%v", resp)

	// The provisioned account can log in with the assigned role.
	w, resp = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ops@chowline.test",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", resp["user"].(map[string]interface{})["role"])
}

func TestAdminProvisionDuplicateLeavesNoOrphan(t *testing.T) {
	r := newTestRouter(t)
	adminToken := createAdmin(t)
	registerUser(t, r, "taken@chowline.test", models.RoleCustomer)

	var before int64
	config.DB.Model(&models.User{}).Count(&before)

	w, _ := doJSON(t, r, http.MethodPost, "/api/admin/users", adminToken, gin.H{
		"email":     "taken@chowline.test",
		"password":  "secret123",
		"full_name": "Copycat",
		"role":      "chef",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	var after int64
	config.DB.Model(&models.User{}).Count(&after)
	assert.Equal(t, before, after)
}

func TestAdminMonitoring(t *testing.T) {
	r := newTestRouter(t)
	adminToken := createAdmin(t)

	chefToken, restaurantID, dishIDs := setupRestaurant(t, r, "chef@chowline.test", []menuItem{
		{Name: "Jollof Rice", Price: 1000, Category: "Rice"},
	})
	customerToken := registerUser(t, r, "ada@chowline.test", models.RoleCustomer)
	riderToken := registerUser(t, r, "musa@chowline.test", models.RoleRider)

	// One completed order and one still pending.
	completedID := completedOrder(t, r, chefToken, customerToken, riderToken, restaurantID, dishIDs[0])
	w, _ := doJSON(t, r, http.MethodPost, "/api/customer/orders", customerToken, gin.H{
		"restaurant_id": restaurantID,
		"items":         []gin.H{{"dish_id": dishIDs[0], "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodGet, "/api/admin/orders", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), resp["count"])
	summary := resp["order_summary"].(map[string]interface{})
	assert.Equal(t, float64(1), summary["completed"])
	assert.Equal(t, float64(1), summary["pending"])
	// Revenue counts completed orders only: 1000 + 600 fees.
	assert.Equal(t, float64(1600), resp["total_revenue"])

	w, resp = doJSON(t, r, http.MethodGet, "/api/admin/deliveries", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["count"])
	delivery := resp["deliveries"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "completed", delivery["status"])
	assert.Equal(t, float64FromAny(completedID), delivery["order_id"])

	w, resp = doJSON(t, r, http.MethodGet, "/api/admin/users?role=rider", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["count"])

	w, resp = doJSON(t, r, http.MethodGet, "/api/admin/restaurants", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["count"])
}

func float64FromAny(v interface{}) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case uint:
		return float64(x)
	}
	panic(fmt.Sprintf("unexpected id type %T", v))
}
