package pipeline

import (
	"log"
	"time"

	"github.com/pitcast/pitcast/internal/models"
)

// Normalizer flattens raw orders into line items stamped with the order's
// business date. The date comes from the order's CreatedTime converted to
// the merchant's time zone and truncated to the calendar day; every line
// item of an order shares it.
type Normalizer struct {
	loc *time.Location
}

func NewNormalizer(loc *time.Location) *Normalizer {
	return &Normalizer{loc: loc}
}

// Normalize walks orders then line items in sequence and returns one
// NormalizedItem per line item. Orders without a creation timestamp are
// skipped and counted; an order with no line-item sequence contributes zero
// items rather than failing. No item is dropped, even when its name and all
// modifiers resolve to the NULL sentinel.
func (n *Normalizer) Normalize(orders []models.RawOrder) ([]models.NormalizedItem, int) {
	items := make([]models.NormalizedItem, 0, len(orders))
	skipped := 0

	for _, order := range orders {
		if order.CreatedTime == 0 {
			skipped++
			log.Printf("skipping malformed order %q: %v", order.ID, &models.MalformedOrderError{OrderID: order.ID})
			continue
		}

		// CreatedTime is epoch milliseconds; integer seconds are enough for
		// calendar-day truncation.
		date := dayOf(time.Unix(order.CreatedTime/1000, 0).In(n.loc))

		for _, li := range order.LineItems.Elements {
			name := li.Name
			if name == "" {
				name = models.NullName
			}

			mods := make([]string, 0, len(li.Modifications.Elements))
			for _, m := range li.Modifications.Elements {
				if m.Name == "" {
					mods = append(mods, models.NullName)
					continue
				}
				mods = append(mods, m.Name)
			}

			qty := li.UnitQty
			if qty <= 0 {
				qty = 1
			}

			items = append(items, models.NormalizedItem{
				Name:      name,
				Modifiers: mods,
				Date:      date,
				Quantity:  qty,
			})
		}
	}

	return items, skipped
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
