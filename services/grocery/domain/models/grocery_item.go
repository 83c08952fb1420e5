package models

import (
	"time"

	"github.com/google/uuid"

	grocerydomain "github.com/ghuser/familyhub/services/grocery/domain"
)

// Unit of measure for a grocery item quantity.
type Unit string

const (
	UnitPiece  Unit = "piece"
	UnitKg     Unit = "kg"
	UnitGram   Unit = "g"
	UnitLiter  Unit = "l"
	UnitMl     Unit = "ml"
	UnitDozen  Unit = "dozen"
	UnitPack   Unit = "pack"
	UnitBottle Unit = "bottle"
	UnitCan    Unit = "can"
	UnitBox    Unit = "box"
	UnitBag    Unit = "bag"
)

// Category groups grocery items by store section.
type Category string

const (
	CategoryProduce      Category = "produce"
	CategoryDairy        Category = "dairy"
	CategoryMeat         Category = "meat"
	CategorySeafood      Category = "seafood"
	CategoryBakery       Category = "bakery"
	CategoryFrozen       Category = "frozen"
	CategoryPantry       Category = "pantry"
	CategoryBeverages    Category = "beverages"
	CategorySnacks       Category = "snacks"
	CategoryHousehold    Category = "household"
	CategoryPersonalCare Category = "personal care"
	CategoryOther        Category = "other"
)

// Priority of a grocery item. Distinct from list item priorities: the middle
// tier is named medium here.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities for sorting, highest first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// Frequency of a recurring grocery item.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// ParseUnit validates a unit value, defaulting empty to piece.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case "":
		return UnitPiece, nil
	case UnitPiece, UnitKg, UnitGram, UnitLiter, UnitMl, UnitDozen,
		UnitPack, UnitBottle, UnitCan, UnitBox, UnitBag:
		return Unit(s), nil
	default:
		return "", grocerydomain.ErrInvalidUnit
	}
}

// ParseCategory validates a category value, defaulting empty to other.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case "":
		return CategoryOther, nil
	case CategoryProduce, CategoryDairy, CategoryMeat, CategorySeafood,
		CategoryBakery, CategoryFrozen, CategoryPantry, CategoryBeverages,
		CategorySnacks, CategoryHousehold, CategoryPersonalCare, CategoryOther:
		return Category(s), nil
	default:
		return "", grocerydomain.ErrInvalidCategory
	}
}

// ParsePriority validates a priority value, defaulting empty to medium.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	default:
		return "", grocerydomain.ErrInvalidPriority
	}
}

// ParseFrequency validates a recurrence frequency, defaulting empty to weekly.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case "":
		return FrequencyWeekly, nil
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return Frequency(s), nil
	default:
		return "", grocerydomain.ErrInvalidFrequency
	}
}

// GroceryItem is a flat family-scoped aggregate. Unlike list items it has no
// parent collection: it is queried and filtered on its own, so it carries the
// family reference directly. Completion fields follow the same pairing rule
// as list items.
type GroceryItem struct {
	ID          uuid.UUID
	FamilyID    uuid.UUID
	Name        string
	Quantity    string
	Unit        Unit
	Category    Category
	Priority    Priority
	Notes       string
	Completed   bool
	CompletedBy *uuid.UUID
	CompletedAt *time.Time
	AddedBy     uuid.UUID
	AssignedTo  *uuid.UUID
	Recurring   bool
	Frequency   Frequency
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewGroceryItem constructs a GroceryItem with generated ID and defaults
// already applied by the Parse helpers.
func NewGroceryItem(familyID, addedBy uuid.UUID, name, quantity string, unit Unit, category Category, priority Priority) *GroceryItem {
	if quantity == "" {
		quantity = "1"
	}
	now := time.Now().UTC()
	return &GroceryItem{
		ID:        uuid.New(),
		FamilyID:  familyID,
		Name:      name,
		Quantity:  quantity,
		Unit:      unit,
		Category:  category,
		Priority:  priority,
		AddedBy:   addedBy,
		Frequency: FrequencyWeekly,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Complete marks the item bought, stamping member and timestamp as a pair.
func (g *GroceryItem) Complete(by uuid.UUID, at time.Time) {
	g.Completed = true
	g.CompletedBy = &by
	g.CompletedAt = &at
}

// Uncomplete clears the completion state, dropping both completion fields.
func (g *GroceryItem) Uncomplete() {
	g.Completed = false
	g.CompletedBy = nil
	g.CompletedAt = nil
}
