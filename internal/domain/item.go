package domain

import "time"

// ItemStatus is the listing state of an Item.
type ItemStatus string

const (
	ItemActive  ItemStatus = "active"
	ItemRented  ItemStatus = "rented"
	ItemRemoved ItemStatus = "removed"
)

// Valid reports whether s is a known item status.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemActive, ItemRented, ItemRemoved:
		return true
	}
	return false
}

// CanTransition reports whether an item may move from s to next.
// Listings only ever leave the active state.
func (s ItemStatus) CanTransition(next ItemStatus) bool {
	return s == ItemActive && (next == ItemRented || next == ItemRemoved)
}

// Location of a listed space.
type Location struct {
	Address string  `json:"address"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Item is a space listed by a provider.
//
// Attributes (style) and Vibes (mood) are both free-form tags but are scored
// as independent facets, so they are kept apart.
type Item struct {
	ID          string
	ProviderID  string
	Title       string
	Description *string
	Price       float64
	SizeSqm     *float64
	Location    Location
	Images      []string
	Attributes  []string
	Vibes       []string
	Status      ItemStatus
	CreatedAt   time.Time
}

// Tags returns the union of the item's attribute and vibe facets.
func (i Item) Tags() []string {
	return NormalizeTags(append(append([]string{}, i.Attributes...), i.Vibes...))
}
