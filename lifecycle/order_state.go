package lifecycle

import (
	"errors"
	"fmt"

	"chowline/models"
)

// Actor identifies who is allowed to trigger a transition. Roles map onto
// actors once, at the route boundary, via ActorForRole.
const (
	ActorCustomer = "customer"
	ActorChef     = "chef"
	ActorRider    = "rider"
)

// ErrInvalidTransition is returned when the requested step is not in the
// transition table for the given actor.
var ErrInvalidTransition = errors.New("invalid transition")

// Transition defines a valid state change and who may perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor string             `json:"actor"`
}

// validTransitions is the authoritative state machine definition. Order
// creation (→ pending) is not in the table; it is the checkout insert.
var validTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusPreparing, Actor: ActorChef},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: ActorChef},
	{From: models.StatusReady, To: models.StatusPickedUp, Actor: ActorRider},
	{From: models.StatusPickedUp, To: models.StatusCompleted, Actor: ActorRider},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// CanTransition checks whether actor may move an order from one status to
// another. The error names the valid next states to help the caller.
func CanTransition(from, to models.OrderStatus, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("%w: %s → %s is not allowed for actor %q (valid from %s: %s)",
		ErrInvalidTransition, from, to, actor, from, describeValidFrom(from))
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	out := ""
	for i, s := range nexts {
		if i > 0 {
			out += ", "
		}
		out += string(s)
	}
	return out
}

// AllTransitions returns the full state machine for documentation
func AllTransitions() []Transition {
	return validTransitions
}

// ActiveStatuses partition the lifecycle for display: an order is "active"
// until a rider has it.
func ActiveStatuses() []models.OrderStatus {
	return []models.OrderStatus{models.StatusPending, models.StatusPreparing, models.StatusReady}
}

func PastStatuses() []models.OrderStatus {
	return []models.OrderStatus{models.StatusPickedUp, models.StatusCompleted}
}

// IsActive reports whether the status is in the active partition
func IsActive(s models.OrderStatus) bool {
	for _, a := range ActiveStatuses() {
		if s == a {
			return true
		}
	}
	return false
}

// ActorForRole is the capability table: which lifecycle actor a role acts
// as. Admin maps to nothing — the console is read-only over orders.
func ActorForRole(role models.UserRole) string {
	switch role {
	case models.RoleCustomer:
		return ActorCustomer
	case models.RoleChef:
		return ActorChef
	case models.RoleRider:
		return ActorRider
	}
	return ""
}

// deliverySteps validates the rider-side sub-lifecycle
var deliverySteps = map[models.DeliveryStatus]models.DeliveryStatus{
	models.DeliveryPickup:     models.DeliveryDelivering,
	models.DeliveryDelivering: models.DeliveryCompleted,
}

// CanDeliveryTransition checks a delivery status step. Only riders drive
// deliveries, so no actor parameter.
func CanDeliveryTransition(from, to models.DeliveryStatus) error {
	if deliverySteps[from] == to {
		return nil
	}
	return fmt.Errorf("%w: delivery %s → %s", ErrInvalidTransition, from, to)
}
