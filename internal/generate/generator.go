// Package generate produces synthetic point-of-sale orders with the same
// shape the merchant API returns. Handy for demos and for exercising the
// pipeline without API credentials.
package generate

import (
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/pitcast/pitcast/internal/models"
)

var fake = faker.New()

// menu is a plausible smokehouse ticket vocabulary: names and modifiers the
// classifier knows, mixed with noise it should route to NULL.
var menuNames = []string{
	"BRISKET PLATE",
	"PULLED PORK PLATE",
	"TRI-TIP PLATE",
	"TURKEY PLATE",
	"BURNT ENDS PLATE",
	"PICK 2",
	"2 Meat Combo",
	"3 Meat Combo",
	"BBQ SALAD",
	"#4 EZ CARRYOUT COMBINATIONS",
	"PIT MASTER PLATTER",
	"SANDWICH",
	"1/2 CHICKEN",
	"FULL SLAB",
	"HALF SLAB",
	"SWEET TEA",
	"BANANA PUDDING",
}

var modifierNames = []string{
	"SMALLS",
	"BIGGIE",
	"BRISKET",
	"PULLED PORK",
	"TRI-TIP",
	"TURKEY",
	"ENDS",
	"EXTRA SAUCE",
	"NO PICKLES",
	"",
}

type Generator struct {
	rng          *rand.Rand
	start        time.Time
	days         int
	ordersPerDay int
}

func New(cfg *models.Config, loc *time.Location) *Generator {
	start := cfg.GenStartDate
	if start.IsZero() {
		start = time.Now().AddDate(0, 0, -cfg.GenDays)
	}
	return &Generator{
		rng:          rand.New(rand.NewSource(int64(cfg.Seed))),
		start:        start.In(loc),
		days:         cfg.GenDays,
		ordersPerDay: cfg.GenOrdersPerDay,
	}
}

// Orders generates the configured span of synthetic orders, spread through
// each day's lunch and dinner hours.
func (g *Generator) Orders() []models.RawOrder {
	orders := make([]models.RawOrder, 0, g.days*g.ordersPerDay)
	for d := 0; d < g.days; d++ {
		day := g.start.AddDate(0, 0, d)
		for i := 0; i < g.ordersPerDay; i++ {
			orders = append(orders, g.order(day))
		}
	}
	return orders
}

func (g *Generator) order(day time.Time) models.RawOrder {
	hour := 11 + g.rng.Intn(10) // open 11:00, last ticket before 21:00
	created := time.Date(day.Year(), day.Month(), day.Day(), hour, g.rng.Intn(60), g.rng.Intn(60), 0, day.Location())

	itemCount := 1 + g.rng.Intn(4)
	items := make([]models.RawLineItem, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		items = append(items, g.lineItem())
	}

	return models.RawOrder{
		ID:          cuid.New(),
		CreatedTime: created.UnixNano() / int64(time.Millisecond),
		LineItems:   models.RawLineItems{Elements: items},
	}
}

func (g *Generator) lineItem() models.RawLineItem {
	li := models.RawLineItem{
		Name:    menuNames[g.rng.Intn(len(menuNames))],
		UnitQty: 1,
	}
	if g.rng.Float64() < 0.1 {
		li.UnitQty = float64(1 + g.rng.Intn(3))
	}

	modCount := g.rng.Intn(3)
	for i := 0; i < modCount; i++ {
		li.Modifications.Elements = append(li.Modifications.Elements, models.RawModifier{
			Name: modifierNames[g.rng.Intn(len(modifierNames))],
		})
	}

	// An occasional free-text special request straight off the ticket.
	if g.rng.Float64() < 0.05 {
		li.Modifications.Elements = append(li.Modifications.Elements, models.RawModifier{
			Name: fake.Lorem().Sentence(3),
		})
	}

	return li
}
