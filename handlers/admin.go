package handlers

import (
	"log"
	"net/http"

	"chowline/config"
	"chowline/middleware"
	"chowline/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminGetAllOrders returns all orders with full detail and a status
// summary — read-only monitoring
func AdminGetAllOrders(c *gin.Context) {
	query := config.DB.Preload("Items").
		Preload("Customer.Profile").Preload("Restaurant").Preload("Rider.Profile")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}

	var orders []models.Order
	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	var totalRevenue int64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusCompleted {
			totalRevenue += o.Total
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

// AdminGetAllDeliveries returns all deliveries with their orders and riders
func AdminGetAllDeliveries(c *gin.Context) {
	query := config.DB.Preload("Order").Preload("Rider.Profile")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var deliveries []models.Delivery
	query.Order("created_at desc").Find(&deliveries)

	summary := map[string]int{}
	for _, d := range deliveries {
		summary[string(d.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"delivery_summary": summary,
		"count":            len(deliveries),
		"deliveries":       deliveries,
	})
}

// AdminGetAllUsers returns all users with profiles
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB.Preload("Profile")
	if role := c.Query("role"); role != "" {
		query = query.Joins("JOIN profiles ON profiles.user_id = users.id").
			Where("profiles.role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetAllRestaurants returns all restaurants with owners and menus
func AdminGetAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	config.DB.Preload("Owner.Profile").Preload("Dishes").Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

type AdminCreateUserRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	FullName string          `json:"full_name" binding:"required"`
	Role     models.UserRole `json:"role" binding:"required"`
	Phone    string          `json:"phone"`
}

// AdminCreateUser provisions an account with any role, including admin.
// It is a two-step write: create the identity, then the profile. If the
// profile insert fails, the identity is deleted as compensation; if that
// delete also fails, the orphan is logged and reported so an operator
// can clean it up.
func AdminCreateUser(c *gin.Context) {
	var req AdminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: customer, chef, rider, or admin"})
		return
	}

	var existing models.User
	if result := config.DB.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{Email: req.Email, PasswordHash: string(hash)}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create identity"})
		return
	}

	profile := models.Profile{
		UserID:   user.ID,
		FullName: req.FullName,
		Role:     req.Role,
		Phone:    req.Phone,
	}
	if err := config.DB.Create(&profile).Error; err != nil {
		if delErr := config.DB.Delete(&models.User{}, user.ID).Error; delErr != nil {
			log.Printf("provisioning compensation failed: user %d orphaned: profile error %v, delete error %v",
				user.ID, err, delErr)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":              "Failed to create profile, and the identity could not be removed",
				"orphaned_user_id":   user.ID,
				"profile_error":      err.Error(),
				"compensation_error": delErr.Error(),
			})
			return
		}
		log.Printf("provisioning rolled back: user %d removed after profile error: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile; identity rolled back"})
		return
	}

	log.Printf("admin %d provisioned user %d with role %s", middleware.GetUserID(c), user.ID, req.Role)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User provisioned",
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": profile.FullName,
			"role":      profile.Role,
		},
	})
}
