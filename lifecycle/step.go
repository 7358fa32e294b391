package lifecycle

import (
	"context"
	"errors"
	"log"
	"time"

	"chowline/models"

	"gorm.io/gorm"
)

// ErrConflict is returned when the guarded update matched no row: the
// order moved (or was claimed) between the caller's read and this write.
var ErrConflict = errors.New("order state changed concurrently")

// StatusChange is the event emitted after every successful step
type StatusChange struct {
	OrderID uint               `json:"order_id"`
	From    models.OrderStatus `json:"from"`
	To      models.OrderStatus `json:"to"`
	Actor   string             `json:"actor"`
	ActorID uint               `json:"actor_id"`
	At      time.Time          `json:"at"`
}

// Publisher receives status-change events. May be nil.
type Publisher interface {
	Publish(ctx context.Context, change StatusChange) error
}

var publisher Publisher

// SetPublisher wires the event sink. Called once at startup.
func SetPublisher(p Publisher) {
	publisher = p
}

// Step is the only writer of order status. It validates the transition
// table, then performs a conditional update guarded on the status the
// caller read (and, for a claim, on the order being unassigned), so a
// lost fetch-then-update race surfaces as ErrConflict instead of a
// silent overwrite. The rider claim also creates the Delivery row, and
// completion closes it, all in one transaction.
func Step(ctx context.Context, db *gorm.DB, order *models.Order, to models.OrderStatus, actor string, actorID uint, note string) error {
	if err := CanTransition(order.Status, to, actor); err != nil {
		return err
	}

	from := order.Status
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": to}
		q := tx.Model(&models.Order{}).Where("id = ? AND status = ?", order.ID, from)
		if to == models.StatusPickedUp {
			q = q.Where("rider_id IS NULL")
			updates["rider_id"] = actorID
		}
		res := q.Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   to,
			ChangedBy:  actorID,
			Note:       note,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		switch to {
		case models.StatusPickedUp:
			delivery := models.Delivery{
				OrderID: order.ID,
				RiderID: actorID,
				Status:  models.DeliveryPickup,
			}
			if err := tx.Create(&delivery).Error; err != nil {
				return err
			}
		case models.StatusCompleted:
			res := tx.Model(&models.Delivery{}).
				Where("order_id = ? AND rider_id = ?", order.ID, actorID).
				Update("status", models.DeliveryCompleted)
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	order.Status = to
	if to == models.StatusPickedUp {
		id := actorID
		order.RiderID = &id
	}

	if publisher != nil {
		change := StatusChange{
			OrderID: order.ID,
			From:    from,
			To:      to,
			Actor:   actor,
			ActorID: actorID,
			At:      time.Now(),
		}
		if err := publisher.Publish(ctx, change); err != nil {
			log.Printf("order %d: publish %s → %s failed: %v", order.ID, from, to, err)
		}
	}
	return nil
}
