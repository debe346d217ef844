package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

var (
	seedCities    = []string{"Berlin", "Lisbon", "Madrid"}
	seedTraits    = []string{"introvert", "extrovert", "studious", "organized", "artistic", "party-animal", "smoker", "night-owl", "early-bird"}
	seedStyleTags = []string{"quiet", "minimalist", "modern", "bohemian", "cozy", "bright", "social"}
)

// SeedTestData resets the database and populates it with demo providers,
// seekers, listings and swipes.
//
// Behavior:
//  1. Clears existing data in `matches`, `interactions`, `items` and `users`.
//  2. Creates 5 providers with 4 listings each and 10 seekers with preferences.
//  3. Each seeker dislikes a couple of random listings so feeds start partially swiped.
//
// Matches are not seeded; they are produced by recording likes.
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if err := truncateAll(db); err != nil {
		return err
	}
	log.Println("Cleared existing data")

	var items []Item
	for i := 1; i <= 5; i++ {
		provider := User{
			Email:      fmt.Sprintf("provider%d@example.com", i),
			Name:       fmt.Sprintf("Provider %d", i),
			Role:       "provider",
			Attributes: pick(r, seedTraits, 3),
		}
		if err := db.Create(&provider).Error; err != nil {
			return fmt.Errorf("failed to seed provider: %w", err)
		}

		for j := 1; j <= 4; j++ {
			item := Item{
				ProviderID: provider.ID,
				Title:      fmt.Sprintf("Room %d-%d", i, j),
				Price:      float64(250 + r.Intn(400)),
				City:       seedCities[r.Intn(len(seedCities))],
				Attributes: pick(r, seedStyleTags, 2),
				Vibes:      pick(r, seedStyleTags, 2),
				Status:     "active",
			}
			if err := db.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to seed item: %w", err)
			}
			items = append(items, item)
		}
	}
	log.Printf("Seeded 5 providers and %d items.", len(items))

	for i := 1; i <= 10; i++ {
		minBudget := float64(200 + r.Intn(100))
		seeker := User{
			Email:      fmt.Sprintf("seeker%d@example.com", i),
			Name:       fmt.Sprintf("Seeker %d", i),
			Role:       "seeker",
			Attributes: pick(r, seedTraits, 2),
			Preferences: Preferences{
				Set:         true,
				BudgetMin:   minBudget,
				BudgetMax:   minBudget + 300,
				City:        seedCities[r.Intn(len(seedCities))],
				EarlyBird:   r.Intn(2) == 0,
				Cleanliness: 1 + r.Intn(5),
			},
		}
		if err := db.Create(&seeker).Error; err != nil {
			return fmt.Errorf("failed to seed seeker: %w", err)
		}

		for _, idx := range r.Perm(len(items))[:2] {
			swipe := Interaction{UserID: seeker.ID, ItemID: items[idx].ID, Type: "dislike", CreatedAt: time.Now().UTC()}
			if err := db.Create(&swipe).Error; err != nil {
				return fmt.Errorf("failed to seed interaction: %w", err)
			}
		}
	}
	log.Println("Seeded 10 seekers.")

	return nil
}

func truncateAll(db *gorm.DB) error {
	for _, table := range []string{"matches", "interactions", "items", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func pick(r *rand.Rand, pool []string, n int) []string {
	out := make([]string, 0, n)
	for _, idx := range r.Perm(len(pool))[:n] {
		out = append(out, pool[idx])
	}
	return out
}
