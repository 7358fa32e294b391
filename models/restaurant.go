package models

import "time"

// DishCategories is the fixed set a dish category must come from. A
// restaurant additionally declares which subset of these it serves.
var DishCategories = []string{"Rice", "Swallow", "Soup", "Grill", "Snacks", "Drinks"}

// IsDishCategory reports whether c is one of the fixed categories
// (case-sensitive).
func IsDishCategory(c string) bool {
	for _, known := range DishCategories {
		if c == known {
			return true
		}
	}
	return false
}

type Restaurant struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	OwnerID          uint      `json:"owner_id" gorm:"uniqueIndex;not null"`
	Owner            User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name             string    `json:"name" gorm:"not null"`
	Address          string    `json:"address"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	PrepTimeMinutes  int       `json:"prep_time_minutes" gorm:"default:30"`
	DeliveryRadiusKm float64   `json:"delivery_radius_km" gorm:"default:5"`
	AcceptingOrders  bool      `json:"accepting_orders" gorm:"default:true"`
	Categories       []string  `json:"categories" gorm:"serializer:json"`
	Dishes           []Dish    `json:"dishes,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ServesCategory reports whether the restaurant declared c in its
// category set.
func (r *Restaurant) ServesCategory(c string) bool {
	for _, declared := range r.Categories {
		if c == declared {
			return true
		}
	}
	return false
}

// Dish prices are integer naira. Rating and RatingCount are maintained
// from DishReview rows as reviews come in.
type Dish struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        int64     `json:"price" gorm:"not null"`
	Category     string    `json:"category" gorm:"not null"`
	ImageURL     string    `json:"image_url"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	Rating       float64   `json:"rating" gorm:"default:0"`
	RatingCount  int       `json:"rating_count" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
