package storage

import (
	"errors"
	"fmt"
	"time"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
)

var ErrInvalidOrder = errors.New("invalid order")

// Placement is what the checkout boundary hands over when a customer places an order.
type Placement struct {
	CustomerID      string
	CustomerName    string
	Items           []fulfillment.Item
	Method          string
	DeliveryAddress string
	Phone           string
	CustomerNote    string
	PaymentMethod   string
}

func (p Placement) validate() error {
	if p.CustomerID == "" {
		return fmt.Errorf("%w: customer is required", ErrInvalidOrder)
	}
	if len(p.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidOrder)
	}
	for i, item := range p.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item %d quantity must be at least 1", ErrInvalidOrder, i)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: item %d price must not be negative", ErrInvalidOrder, i)
		}
		if item.PrepMinutes < 0 || item.PrepMinutes > fulfillment.MaxEstimateMinutes {
			return fmt.Errorf("%w: item %d prep minutes out of range", ErrInvalidOrder, i)
		}
	}
	return nil
}

// OrderQuery is the staff list filter.
type OrderQuery struct {
	Status *fulfillment.Status
	Search string
	Limit  int
}

type HistoryEntry struct {
	Field     string    `json:"field"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
}

func toRepoOrder(o *fulfillment.Order) *repository.Order {
	items := make(repository.OrderItems, len(o.Items))
	for i, item := range o.Items {
		items[i] = repository.OrderItem{
			Name:        item.Name,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			PrepMinutes: item.PrepMinutes,
		}
	}
	return &repository.Order{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		Items:           items,
		Subtotal:        o.Subtotal,
		DeliveryFee:     o.DeliveryFee,
		Total:           o.Total,
		PaymentMethod:   o.PaymentMethod,
		DeliveryAddress: o.DeliveryAddress,
		Phone:           o.Phone,
		CustomerNote:    o.CustomerNote,
		Status:          string(o.Status),
		Stage:           string(o.Stage),
		EstimatedTime:   o.EstimatedTime,
		HoldMinutes:     o.HoldMinutes,
		IsOnHold:        o.IsOnHold,
		QueuePosition:   o.QueuePosition,
		AssignedTo:      o.AssignedTo,
		AdminNotes:      o.AdminNotes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func fromRepoOrder(r *repository.Order) *fulfillment.Order {
	items := make([]fulfillment.Item, len(r.Items))
	for i, item := range r.Items {
		items[i] = fulfillment.Item{
			Name:        item.Name,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			PrepMinutes: item.PrepMinutes,
		}
	}
	return &fulfillment.Order{
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		Items:           items,
		Subtotal:        r.Subtotal,
		DeliveryFee:     r.DeliveryFee,
		Total:           r.Total,
		PaymentMethod:   r.PaymentMethod,
		DeliveryAddress: r.DeliveryAddress,
		Phone:           r.Phone,
		CustomerNote:    r.CustomerNote,
		Status:          fulfillment.Status(r.Status),
		Stage:           fulfillment.Stage(r.Stage),
		EstimatedTime:   r.EstimatedTime,
		HoldMinutes:     r.HoldMinutes,
		IsOnHold:        r.IsOnHold,
		QueuePosition:   r.QueuePosition,
		AssignedTo:      r.AssignedTo,
		AdminNotes:      r.AdminNotes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func fromRepoOrders(rows []*repository.Order) []*fulfillment.Order {
	orders := make([]*fulfillment.Order, len(rows))
	for i, row := range rows {
		orders[i] = fromRepoOrder(row)
	}
	return orders
}

// columnsFor maps an effective changeset to the order columns it touches.
func columnsFor(changes fulfillment.Changeset, o *fulfillment.Order) map[string]any {
	fields := make(map[string]any, len(changes)+1)
	for _, c := range changes {
		switch c.Field {
		case fulfillment.FieldStatus:
			fields["status"] = string(o.Status)
		case fulfillment.FieldStage:
			fields["stage"] = string(o.Stage)
		case fulfillment.FieldEstimatedTime:
			fields["estimated_time"] = o.EstimatedTime
		case fulfillment.FieldHoldMinutes:
			fields["hold_minutes"] = o.HoldMinutes
		case fulfillment.FieldIsOnHold:
			fields["is_on_hold"] = o.IsOnHold
		case fulfillment.FieldQueuePosition:
			fields["queue_position"] = o.QueuePosition
		case fulfillment.FieldAssignedTo:
			fields["assigned_to"] = o.AssignedTo
		case fulfillment.FieldAdminNotes:
			fields["admin_notes"] = o.AdminNotes
		}
	}
	fields["updated_at"] = o.UpdatedAt
	return fields
}
