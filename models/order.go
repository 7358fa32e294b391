package models

import "time"

// OrderStatus represents the states of an order's lifecycle
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusCompleted OrderStatus = "completed"
)

// DeliveryStatus is the rider-side sub-lifecycle of a claimed order
type DeliveryStatus string

const (
	DeliveryPickup     DeliveryStatus = "pickup"
	DeliveryDelivering DeliveryStatus = "delivering"
	DeliveryCompleted  DeliveryStatus = "completed"
)

// Order amounts are integer naira, computed and persisted at checkout.
// IdempotencyKey dedupes double submits of the same checkout.
type Order struct {
	ID             uint                 `json:"id" gorm:"primaryKey"`
	CustomerID     uint                 `json:"customer_id" gorm:"not null;index"`
	Customer       User                 `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID   uint                 `json:"restaurant_id" gorm:"not null;index"`
	Restaurant     Restaurant           `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	RiderID        *uint                `json:"rider_id"`
	Rider          *User                `json:"rider,omitempty" gorm:"foreignKey:RiderID"`
	Status         OrderStatus          `json:"status" gorm:"not null;default:'pending';index"`
	Subtotal       int64                `json:"subtotal"`
	DeliveryFee    int64                `json:"delivery_fee"`
	ServiceFee     int64                `json:"service_fee"`
	Total          int64                `json:"total"`
	IdempotencyKey *string              `json:"-" gorm:"uniqueIndex"`
	Items          []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory  []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// OrderItem snapshots the dish name and unit price at checkout time and is
// immutable after that.
type OrderItem struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	OrderID   uint   `json:"order_id" gorm:"not null;index"`
	DishID    uint   `json:"dish_id" gorm:"not null"`
	Dish      Dish   `json:"dish,omitempty" gorm:"foreignKey:DishID"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price" gorm:"not null"`
	Quantity  int    `json:"quantity" gorm:"not null"`
}

// OrderStatusHistory records every status change for the audit trail
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Delivery links a claimed order to its rider. Created in the same
// transaction as the claim, so an order in picked_up always has exactly
// one delivery row.
type Delivery struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	OrderID   uint           `json:"order_id" gorm:"uniqueIndex;not null"`
	Order     Order          `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	RiderID   uint           `json:"rider_id" gorm:"not null;index"`
	Rider     User           `json:"rider,omitempty" gorm:"foreignKey:RiderID"`
	Status    DeliveryStatus `json:"status" gorm:"not null;default:'pickup'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
