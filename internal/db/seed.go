package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedTestData resets the database and populates it with demo users and
// interactions.
//
// Behavior:
//  1. Clears existing rows in all tables owned by this core.
//  2. Creates 20 users (10 male, 10 female) with hashed passwords.
//  3. Generates likes with a guaranteed mutual pair every 3rd iteration,
//     materializing the corresponding match rows.
//  4. Sprinkles favorites, profile views and unread messages so the
//     notification endpoint has something to count.
//
// Compatible with both MySQL and SQLite.
func SeedTestData(database *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start ---
	for _, table := range []string{"messages", "profile_views", "matches", "favorites", "likes", "users"} {
		if err := database.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	switch database.Dialector.Name() {
	case "mysql":
		database.Exec("ALTER TABLE users AUTO_INCREMENT = 1")
		database.Exec("ALTER TABLE matches AUTO_INCREMENT = 1")
		database.Exec("ALTER TABLE messages AUTO_INCREMENT = 1")
	case "sqlite":
		database.Exec("DELETE FROM sqlite_sequence WHERE name IN ('users', 'matches', 'messages')")
	}

	log.Println("Cleared existing data")

	// --- Seed Users (10 male, 10 female) ---
	cities := []string{"Tbilisi", "Batumi", "Kutaisi", "Rustavi"}
	for i := 1; i <= 20; i++ {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		gender := "male"
		if i > 10 {
			gender = "female"
		}

		user := User{
			Username:     fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			Name:         fmt.Sprintf("User %d", i),
			City:         cities[r.Intn(len(cities))],
			Age:          20 + r.Intn(25),
			Gender:       gender,
			LastSeen:     time.Now().Add(-time.Duration(r.Intn(500)) * time.Hour),
		}

		if err := database.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
	}
	log.Println("Seeded 20 users.")

	// --- Seed Likes (with guaranteed mutual pairs → matches) ---
	counter := 0
	for senderID := uint64(1); senderID <= 20; senderID++ {
		for j := 0; j < 8; j++ {
			receiverID := uint64(r.Intn(20) + 1)
			if senderID == receiverID {
				continue
			}

			like := Like{SenderID: senderID, ReceiverID: receiverID}
			if err := database.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return fmt.Errorf("failed to seed like: %w", err)
			}

			// every 3rd like becomes mutual
			if counter%3 == 0 {
				recip := Like{SenderID: receiverID, ReceiverID: senderID}
				database.Clauses(clause.OnConflict{DoNothing: true}).Create(&recip)

				u1, u2 := senderID, receiverID
				if u2 < u1 {
					u1, u2 = u2, u1
				}
				match := Match{User1ID: u1, User2ID: u2}
				database.Clauses(clause.OnConflict{DoNothing: true}).Create(&match)
			}

			counter++
		}
	}
	log.Println("Seeded likes and matches.")

	// --- Seed Favorites and Profile Views ---
	for i := 0; i < 30; i++ {
		a := uint64(r.Intn(20) + 1)
		b := uint64(r.Intn(20) + 1)
		if a == b {
			continue
		}

		fav := Favorite{UserID: a, FavoriteID: b}
		database.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav)

		view := ProfileView{ViewerID: b, ViewedID: a}
		database.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "viewer_id"}, {Name: "viewed_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"created_at": time.Now(), "is_seen": false}),
		}).Create(&view)
	}

	// --- Seed unread Messages (owned by the transport; inserted here only
	// so the notification badge has data in development) ---
	for i := 0; i < 15; i++ {
		a := uint64(r.Intn(20) + 1)
		b := uint64(r.Intn(20) + 1)
		if a == b {
			continue
		}
		msg := Message{SenderID: a, ReceiverID: b, Text: fmt.Sprintf("hey #%d", i)}
		database.Create(&msg)
	}

	log.Println("Seeded favorites, views and messages.")
	return nil
}
