package routes

import (
	"chowline/handlers"
	"chowline/middleware"
	"chowline/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)
		public.GET("/dishes", handlers.ListDishes)
		public.GET("/categories", handlers.GetCategories)

		public.GET("/lifecycle", handlers.GetLifecycleInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.PUT("/profile", handlers.UpdateProfile)
		auth.POST("/profile/avatar", handlers.UploadAvatar)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/orders", handlers.PlaceOrder)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id", handlers.GetOrderDetail)
		customer.GET("/favorites", handlers.ListFavorites)
		customer.POST("/favorites/:dishId", handlers.AddFavorite)
		customer.DELETE("/favorites/:dishId", handlers.RemoveFavorite)
		customer.POST("/reviews", handlers.ReviewDish)
	}

	// ── Chef routes ────────────────────────────────────────────────
	chef := r.Group("/api/chef")
	chef.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleChef))
	{
		chef.POST("/restaurant", handlers.CreateRestaurant)
		chef.GET("/restaurant", handlers.GetMyRestaurant)
		chef.PUT("/restaurant", handlers.UpdateRestaurant)

		chef.POST("/menu", handlers.AddDish)
		chef.PUT("/menu/:dishId", handlers.UpdateDish)
		chef.DELETE("/menu/:dishId", handlers.DeleteDish)
		chef.PUT("/menu/:dishId/availability", handlers.ToggleDishAvailability)
		chef.POST("/menu/:dishId/image", handlers.UploadDishImage)

		chef.GET("/orders", handlers.GetRestaurantOrders)
		chef.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
	}

	// ── Rider routes ───────────────────────────────────────────────
	rider := r.Group("/api/rider")
	rider.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleRider))
	{
		rider.GET("/orders/available", handlers.GetAvailableOrders)
		rider.GET("/deliveries", handlers.GetMyDeliveries)
		rider.PUT("/orders/:id/claim", handlers.ClaimOrder)
		rider.PUT("/orders/:id/depart", handlers.DepartForDelivery)
		rider.PUT("/orders/:id/complete", handlers.CompleteOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.GET("/deliveries", handlers.AdminGetAllDeliveries)
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/restaurants", handlers.AdminGetAllRestaurants)
		admin.POST("/users", handlers.AdminCreateUser)
	}
}
