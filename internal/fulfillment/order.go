package fulfillment

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Field names a mutable order attribute. Values match the JSON patch keys.
type Field string

const (
	FieldStatus        Field = "status"
	FieldStage         Field = "stage"
	FieldEstimatedTime Field = "estimatedTime"
	FieldHoldMinutes   Field = "holdMinutes"
	FieldIsOnHold      Field = "isOnHold"
	FieldQueuePosition Field = "queuePosition"
	FieldAssignedTo    Field = "assignedTo"
	FieldAdminNotes    Field = "adminNotes"
)

type Item struct {
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	PrepMinutes int             `json:"prepMinutes"`
}

func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the persisted record. Commercial fields are fixed at placement;
// lifecycle and queue fields change only through the setters in this package.
type Order struct {
	ID           string `json:"id"`
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`

	Items           []Item          `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DeliveryFee     decimal.Decimal `json:"deliveryFee"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethod   string          `json:"paymentMethod"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Phone           string          `json:"phone"`
	CustomerNote    string          `json:"customerNote"`

	Status Status `json:"status"`
	Stage  Stage  `json:"stage"`

	EstimatedTime int  `json:"estimatedTime"`
	HoldMinutes   int  `json:"holdMinutes"`
	IsOnHold      bool `json:"isOnHold"`
	QueuePosition *int `json:"queuePosition"`

	AssignedTo string `json:"assignedTo"`
	AdminNotes string `json:"adminNotes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *Order) IsActive() bool {
	return !o.Status.IsTerminal()
}

func (o *Order) Clone() *Order {
	c := *o
	if o.Items != nil {
		c.Items = make([]Item, len(o.Items))
		copy(c.Items, o.Items)
	}
	if o.QueuePosition != nil {
		pos := *o.QueuePosition
		c.QueuePosition = &pos
	}
	return &c
}

// Change is one effective field transition.
type Change struct {
	Field Field  `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// Historized reports whether the change is recorded in the order history.
// Admin notes are free text and are not.
func (c Change) Historized() bool {
	return c.Field != FieldAdminNotes
}

type Changeset []Change

func (cs Changeset) Has(f Field) bool {
	for _, c := range cs {
		if c.Field == f {
			return true
		}
	}
	return false
}

func (cs Changeset) Fields() []Field {
	out := make([]Field, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Field)
	}
	return out
}

// Diff lists the mutable fields that differ between before and after, in a fixed order.
func Diff(before, after *Order) Changeset {
	var cs Changeset
	add := func(f Field, from, to string) {
		if from != to {
			cs = append(cs, Change{Field: f, From: from, To: to})
		}
	}
	add(FieldStage, string(before.Stage), string(after.Stage))
	add(FieldStatus, string(before.Status), string(after.Status))
	add(FieldEstimatedTime, strconv.Itoa(before.EstimatedTime), strconv.Itoa(after.EstimatedTime))
	add(FieldHoldMinutes, strconv.Itoa(before.HoldMinutes), strconv.Itoa(after.HoldMinutes))
	add(FieldIsOnHold, strconv.FormatBool(before.IsOnHold), strconv.FormatBool(after.IsOnHold))
	add(FieldQueuePosition, formatPosition(before.QueuePosition), formatPosition(after.QueuePosition))
	add(FieldAssignedTo, before.AssignedTo, after.AssignedTo)
	add(FieldAdminNotes, before.AdminNotes, after.AdminNotes)
	return cs
}

func formatPosition(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
