package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Preferences are stored inline on the users row. Set distinguishes
// "no preferences yet" from an all-zero profile.
type Preferences struct {
	Set         bool    `gorm:"not null;default:false"`
	BudgetMin   float64 `gorm:"not null;default:0"`
	BudgetMax   float64 `gorm:"not null;default:0"`
	City        string  `gorm:"size:128"`
	RadiusKm    float64 `gorm:"not null;default:0"`
	Smoker      bool    `gorm:"not null;default:false"`
	Pets        bool    `gorm:"not null;default:false"`
	EarlyBird   bool    `gorm:"not null;default:false"`
	Cleanliness int     `gorm:"not null;default:0"`
}

// User table
type User struct {
	ID          string `gorm:"primaryKey;size:36"`
	Email       string `gorm:"uniqueIndex;size:128;not null"`
	Name        string `gorm:"size:128;not null"`
	Role        string `gorm:"size:16;not null;index"`
	Bio         *string
	Images      datatypes.JSONSlice[string]
	Attributes  datatypes.JSONSlice[string]
	Preferences Preferences `gorm:"embedded;embeddedPrefix:pref_"`
	CreatedAt   time.Time   `gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Item table
//
// Indexes:
//   - idx_item_feed(status, city, price) serves the feed hard filters.
type Item struct {
	ID          string `gorm:"primaryKey;size:36"`
	ProviderID  string `gorm:"size:36;not null;index"`
	Title       string `gorm:"size:255;not null"`
	Description *string
	Price       float64  `gorm:"not null;index:idx_item_feed,priority:3"`
	SizeSqm     *float64 `gorm:"column:size_sqm"`
	Address     string   `gorm:"size:255"`
	City        string   `gorm:"size:128;index:idx_item_feed,priority:2"`
	Lat         float64
	Lng         float64
	Images      datatypes.JSONSlice[string]
	Attributes  datatypes.JSONSlice[string]
	Vibes       datatypes.JSONSlice[string]
	Status      string    `gorm:"size:16;not null;default:active;index:idx_item_feed,priority:1"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (i *Item) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// Interaction is a seeker's swipe on an item.
//
// Composite PK: (UserID, ItemID)
//   - At most one row per pair. Inserts never upsert; a second swipe on
//     the same pair fails with a duplicate key error.
type Interaction struct {
	UserID    string    `gorm:"primaryKey;size:36"`
	ItemID    string    `gorm:"primaryKey;size:36"`
	Type      string    `gorm:"size:16;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// Score columns are embedded on the matches row.
type Score struct {
	Total                 int `gorm:"not null"`
	ItemCompatibility     int `gorm:"not null"`
	ProviderCompatibility int `gorm:"not null"`
	Reasons               datatypes.JSONSlice[string]
}

// Match represents a pending/decided connection between a seeker and a provider's item.
//
// Indexes:
//   - idx_match_triple(seeker_id, provider_id, item_id) UNIQUE
//     Storage-level guarantee of one match per triple.
//   - idx_match_provider_status(provider_id, status) for pending counts.
//   - idx_match_seeker_created / idx_match_provider_created for listing with cursors.
type Match struct {
	ID         string    `gorm:"primaryKey;size:36"`
	SeekerID   string    `gorm:"size:36;not null;uniqueIndex:idx_match_triple,priority:1;index:idx_match_seeker_created,priority:1"`
	ProviderID string    `gorm:"size:36;not null;uniqueIndex:idx_match_triple,priority:2;index:idx_match_provider_status,priority:1;index:idx_match_provider_created,priority:1"`
	ItemID     string    `gorm:"size:36;not null;uniqueIndex:idx_match_triple,priority:3"`
	Score      Score     `gorm:"embedded;embeddedPrefix:score_"`
	Status     string    `gorm:"size:16;not null;default:pending;index:idx_match_provider_status,priority:2"`
	CreatedAt  time.Time `gorm:"not null;index:idx_match_seeker_created,priority:2,sort:desc;index:idx_match_provider_created,priority:2,sort:desc"`
	AcceptedAt *time.Time
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (m *Match) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&User{}, &Item{}, &Interaction{}, &Match{}}
}
