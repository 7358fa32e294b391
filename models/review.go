package models

import "time"

// DishReview is one customer rating of a dish from a completed order.
// A dish can only be reviewed once per order.
type DishReview struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	DishID     uint      `json:"dish_id" gorm:"not null;index;uniqueIndex:idx_dish_order"`
	OrderID    uint      `json:"order_id" gorm:"not null;uniqueIndex:idx_dish_order"`
	CustomerID uint      `json:"customer_id" gorm:"not null"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// Favorite marks a dish a customer saved for later
type Favorite struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CustomerID uint      `json:"customer_id" gorm:"not null;uniqueIndex:idx_customer_dish"`
	DishID     uint      `json:"dish_id" gorm:"not null;uniqueIndex:idx_customer_dish"`
	Dish       Dish      `json:"dish,omitempty" gorm:"foreignKey:DishID"`
	CreatedAt  time.Time `json:"created_at"`
}
