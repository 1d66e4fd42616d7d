package pipeline

import (
	"strings"

	"github.com/pitcast/pitcast/internal/models"
)

// Classification is one item's per-unit contribution. Pounds goes to every
// category in Meats, or to NULL when Meats is empty; Chickens and Ribs
// accumulate independently of the weight result.
type Classification struct {
	Pounds   float64
	Meats    []models.Category
	Chickens float64
	Ribs     float64
}

// weightRule pairs a predicate with the pounds it awards. Rules are
// evaluated top to bottom, first match wins; the order reproduces the
// legacy portion lookup and is load-bearing (a "Combo Plate" is a combo,
// not a plate).
type weightRule struct {
	match  func(models.NormalizedItem) bool
	pounds float64
}

// Portion names carry no structured size field, so sizes are recovered from
// free text. Values are sixteenths of a pound.
var weightRules = []weightRule{
	{nameIs("PICK 2"), 4.5 / 16},
	{nameHasFold("COMBO"), 4.0 / 16},
	{nameIs("BBQ SALAD"), 4.0 / 16},
	{nameIs("#4 EZ CARRYOUT COMBINATIONS"), 16.0 / 16},
	{nameIs("PIT MASTER PLATTER"), 8.0 / 16},
	{nameHasFold("PLATE"), 9.0 / 16},
	{sizeTag("SMALLS"), 5.0 / 16},
	{sizeTag("BIGGIE"), 7.0 / 16},
}

func nameIs(s string) func(models.NormalizedItem) bool {
	return func(it models.NormalizedItem) bool { return it.Name == s }
}

func nameHasFold(s string) func(models.NormalizedItem) bool {
	return func(it models.NormalizedItem) bool {
		return strings.Contains(strings.ToUpper(it.Name), s)
	}
}

// sizeTag matches a portion-size marker whether it arrives as the item name
// or as the first modifier. Tickets carry it either way.
func sizeTag(s string) func(models.NormalizedItem) bool {
	return func(it models.NormalizedItem) bool {
		return it.Name == s || it.FirstModifier() == s
	}
}

// meatPatterns maps case-insensitive substrings to weight categories. Every
// field of the item is scanned, and one tag is emitted per matching field,
// so a single item can land in several categories.
var meatPatterns = []struct {
	substr   string
	category models.Category
}{
	{"BRISKET", models.CategoryBrisket},
	{"PULLED", models.CategoryPulledPork},
	{"ENDS", models.CategoryEnds},
	{"TURK", models.CategoryTurkey},
	{"TIP", models.CategoryTriTip},
}

// countPatterns are case-sensitive and independent; each fires at most once
// per item, but several can fire on the same item.
var countPatterns = []struct {
	substr   string
	chickens float64
	ribs     float64
}{
	{"1/2 C", 1, 0},
	{"FULL", 0, 1},
	{"HALF", 0, 0.5},
	{"1/2 S", 0, 0.5},
}

// Classify runs the weight, meat and count rules over one item. Every rule
// falls through to a defined default, so classification never fails.
func Classify(item models.NormalizedItem) Classification {
	c := Classification{
		Pounds: checkAmount(item),
		Meats:  checkMeat(item),
	}
	c.Chickens, c.Ribs = boneCounts(item)
	return c
}

// checkAmount resolves the item's per-unit weight via the first matching
// rule, or zero when nothing matches.
func checkAmount(item models.NormalizedItem) float64 {
	for _, r := range weightRules {
		if r.match(item) {
			return r.pounds
		}
	}
	return 0
}

// checkMeat scans the name and every modifier for meat keywords. Tags are
// appended in field-then-pattern order; no match means the weight is later
// routed to NULL by the aggregator.
func checkMeat(item models.NormalizedItem) []models.Category {
	var tags []models.Category
	for _, field := range itemFields(item) {
		upper := strings.ToUpper(field)
		for _, p := range meatPatterns {
			if strings.Contains(upper, p.substr) {
				tags = append(tags, p.category)
			}
		}
	}
	return tags
}

// boneCounts accumulates chicken and rib-slab counts. Matching is
// case-sensitive and each pattern is checked against the name and all
// modifiers, counting once per item when any field matches.
func boneCounts(item models.NormalizedItem) (chickens, ribs float64) {
	fields := itemFields(item)
	for _, p := range countPatterns {
		for _, field := range fields {
			if strings.Contains(field, p.substr) {
				chickens += p.chickens
				ribs += p.ribs
				break
			}
		}
	}
	return chickens, ribs
}

func itemFields(item models.NormalizedItem) []string {
	fields := make([]string, 0, 1+len(item.Modifiers))
	fields = append(fields, item.Name)
	fields = append(fields, item.Modifiers...)
	return fields
}
