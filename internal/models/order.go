package models

import "time"

// RawOrder is one point-of-sale order as returned by the merchant API.
// CreatedTime is epoch milliseconds in the merchant's time zone (Mountain).
type RawOrder struct {
	ID          string       `json:"id"`
	CreatedTime int64        `json:"createdTime"`
	LineItems   RawLineItems `json:"lineItems"`
}

// RawLineItems mirrors the API's element-wrapper shape.
type RawLineItems struct {
	Elements []RawLineItem `json:"elements"`
}

type RawLineItem struct {
	Name          string           `json:"name"`
	UnitQty       float64          `json:"unitQty"`
	Modifications RawModifications `json:"modifications"`
}

type RawModifications struct {
	Elements []RawModifier `json:"elements"`
}

type RawModifier struct {
	Name string `json:"name"`
}

// NullName stands in for an absent or empty item or modifier name. Keeping
// the sentinel rather than skipping the field preserves line-item counts.
const NullName = "NULL"

// NormalizedItem is one line item flattened out of a RawOrder. Date comes
// from the order's CreatedTime, never from the line item itself. Immutable
// once produced.
type NormalizedItem struct {
	Name      string
	Modifiers []string
	Date      time.Time
	Quantity  float64
}

// FirstModifier returns the first modifier, or NullName when the item has none.
func (n NormalizedItem) FirstModifier() string {
	if len(n.Modifiers) == 0 {
		return NullName
	}
	return n.Modifiers[0]
}
