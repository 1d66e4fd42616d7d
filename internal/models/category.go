package models

// Category is a demand bucket tracked per business day. The six weight
// categories accumulate pounds; Chickens and Ribs accumulate unit counts.
type Category string

const (
	CategoryPulledPork Category = "PULLED PORK"
	CategoryBrisket    Category = "BRISKET"
	CategoryTriTip     Category = "TRI-TIP"
	CategoryEnds       Category = "ENDS"
	CategoryTurkey     Category = "TURKEY"
	CategoryNull       Category = "NULL"

	CategoryChickens Category = "Chickens"
	CategoryRibs     Category = "Ribs"

	// CategoryHigh addresses the joined daily-high temperature so it can be
	// laid out in the lag matrix alongside the demand categories.
	CategoryHigh Category = "high"
)

// WeightCategories lists every pound-accumulating key, NULL included.
// Aggregated rows always carry all of them, zero-defaulted.
var WeightCategories = []Category{
	CategoryPulledPork,
	CategoryBrisket,
	CategoryTriTip,
	CategoryEnds,
	CategoryTurkey,
	CategoryNull,
}

// CountCategories lists the unit-count keys.
var CountCategories = []Category{CategoryChickens, CategoryRibs}
