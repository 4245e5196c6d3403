package repository

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrObjectNotFound = errors.New("not found")

type Order struct {
	ID              string          `db:"id"`
	CustomerID      string          `db:"customer_id"`
	CustomerName    string          `db:"customer_name"`
	Items           OrderItems      `db:"items"`
	Subtotal        decimal.Decimal `db:"subtotal"`
	DeliveryFee     decimal.Decimal `db:"delivery_fee"`
	Total           decimal.Decimal `db:"total"`
	PaymentMethod   string          `db:"payment_method"`
	DeliveryAddress string          `db:"delivery_address"`
	Phone           string          `db:"phone"`
	CustomerNote    string          `db:"customer_note"`
	Status          string          `db:"status"`
	Stage           string          `db:"stage"`
	EstimatedTime   int             `db:"estimated_time"`
	HoldMinutes     int             `db:"hold_minutes"`
	IsOnHold        bool            `db:"is_on_hold"`
	QueuePosition   *int            `db:"queue_position"`
	AssignedTo      string          `db:"assigned_to"`
	AdminNotes      string          `db:"admin_notes"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

type OrderItem struct {
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	PrepMinutes int             `json:"prep_minutes"`
}

// OrderItems is stored as a jsonb column.
type OrderItems []OrderItem

func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (items *OrderItems) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*items = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderItems", src)
	}
	return json.Unmarshal(data, items)
}

// OrderFilter narrows order listings. Zero values mean no restriction.
type OrderFilter struct {
	Status     string
	Search     string
	CustomerID string
	ActiveOnly bool
	Limit      int
}

type HistoryEntry struct {
	ID        int64     `db:"id"`
	OrderID   string    `db:"order_id"`
	Field     string    `db:"field"`
	OldValue  string    `db:"old_value"`
	NewValue  string    `db:"new_value"`
	ChangedBy string    `db:"changed_by"`
	ChangedAt time.Time `db:"changed_at"`
}

type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Password string `db:"password"`
}
