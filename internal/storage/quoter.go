package storage

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
)

type FulfillmentMethod string

const (
	MethodDelivery FulfillmentMethod = "delivery"
	MethodPickup   FulfillmentMethod = "pickup"
)

// Quoter prices the fulfillment leg of an order and adds its minutes to the kitchen estimate.
type Quoter interface {
	Fee(subtotal decimal.Decimal) decimal.Decimal
	ExtraMinutes() int
	Method() FulfillmentMethod
}

type BaseQuoter struct {
	method FulfillmentMethod
}

func (b BaseQuoter) Method() FulfillmentMethod {
	return b.method
}

type DeliveryQuoter struct {
	BaseQuoter
	fee        decimal.Decimal
	freeFrom   decimal.Decimal
	legMinutes int
}

func NewDeliveryQuoter(fee, freeFrom decimal.Decimal, legMinutes int) *DeliveryQuoter {
	return &DeliveryQuoter{
		BaseQuoter: BaseQuoter{method: MethodDelivery},
		fee:        fee,
		freeFrom:   freeFrom,
		legMinutes: legMinutes,
	}
}

// Fee is waived once the subtotal reaches the free delivery threshold. A zero threshold disables the waiver.
func (d DeliveryQuoter) Fee(subtotal decimal.Decimal) decimal.Decimal {
	if d.freeFrom.IsPositive() && subtotal.GreaterThanOrEqual(d.freeFrom) {
		return decimal.Zero
	}
	return d.fee
}

func (d DeliveryQuoter) ExtraMinutes() int {
	return d.legMinutes
}

type PickupQuoter struct {
	BaseQuoter
}

func NewPickupQuoter() *PickupQuoter {
	return &PickupQuoter{BaseQuoter{method: MethodPickup}}
}

func (p PickupQuoter) Fee(decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}

func (p PickupQuoter) ExtraMinutes() int {
	return 0
}

type PricingConfig struct {
	DeliveryFee        decimal.Decimal
	FreeDeliveryFrom   decimal.Decimal
	DeliveryLegMinutes int
}

func (c PricingConfig) QuoterFor(method string) (Quoter, error) {
	switch FulfillmentMethod(strings.ToLower(strings.TrimSpace(method))) {
	case MethodDelivery, "":
		return NewDeliveryQuoter(c.DeliveryFee, c.FreeDeliveryFrom, c.DeliveryLegMinutes), nil
	case MethodPickup:
		return NewPickupQuoter(), nil
	default:
		return nil, fmt.Errorf("%w: unknown fulfillment method %q", ErrInvalidOrder, method)
	}
}

type Quote struct {
	Subtotal         decimal.Decimal
	DeliveryFee      decimal.Decimal
	Total            decimal.Decimal
	EstimatedMinutes int
}

// QuoteItems sums line totals and prep minutes. Lines are prepared in parallel
// batches, so quantity does not multiply prep time.
func QuoteItems(q Quoter, items []fulfillment.Item) Quote {
	subtotal := decimal.Zero
	minutes := 0
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
		minutes += item.PrepMinutes
	}
	fee := q.Fee(subtotal)
	return Quote{
		Subtotal:         subtotal,
		DeliveryFee:      fee,
		Total:            subtotal.Add(fee),
		EstimatedMinutes: minutes + q.ExtraMinutes(),
	}
}
