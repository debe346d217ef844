package domain

import "time"

// Role separates the two populations being matched.
type Role string

const (
	RoleProvider Role = "provider"
	RoleSeeker   Role = "seeker"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleProvider || r == RoleSeeker
}

// Budget is an inclusive monthly price range.
type Budget struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gte=0,gtefield=Min"`
}

// Contains reports whether price lies within [Min, Max].
func (b Budget) Contains(price float64) bool {
	return price >= b.Min && price <= b.Max
}

// Lifestyle flags declared by a seeker during onboarding.
type Lifestyle struct {
	Smoker    bool `json:"smoker"`
	Pets      bool `json:"pets"`
	EarlyBird bool `json:"early_bird"`
}

// Preferences is the seeker's search profile.
// An empty City means "anywhere".
type Preferences struct {
	Budget      Budget    `json:"budget"`
	City        string    `json:"city,omitempty" validate:"max=128"`
	RadiusKm    float64   `json:"radius_km,omitempty" validate:"gte=0"`
	Lifestyle   Lifestyle `json:"lifestyle"`
	Cleanliness int       `json:"cleanliness,omitempty" validate:"omitempty,min=1,max=5"`
}

// User is either a provider listing spaces or a seeker looking for one.
//
// Attributes are lowercase trait tags produced by an external analysis step.
// Preferences is nil until a seeker completes onboarding; read it through Prefs.
type User struct {
	ID          string
	Email       string
	Name        string
	Role        Role
	Bio         *string
	Images      []string
	Attributes  []string
	Preferences *Preferences
	CreatedAt   time.Time
}

// Prefs returns the user's preferences and whether they are set.
func (u User) Prefs() (Preferences, bool) {
	if u.Preferences == nil {
		return Preferences{}, false
	}
	return *u.Preferences, true
}

// IsSeeker reports whether the user browses the feed.
func (u User) IsSeeker() bool { return u.Role == RoleSeeker }
