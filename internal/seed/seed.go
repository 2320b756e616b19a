// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the password shared by every seeded user.
const DefaultPassword = "password123"

// Seeder populates the database with fake users, messages, follows, and likes.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes every seeded table, edges first.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, table := range []string{"likes", "follows", "messages", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// SeedUsers creates n users with a shared known password.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Username:       fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:          fmt.Sprintf("seed%d.%s", i, gofakeit.Email()),
			Password:       string(hashed),
			Bio:            gofakeit.Sentence(8),
			Location:       gofakeit.City(),
			ImageURL:       fmt.Sprintf("https://picsum.photos/seed/%s/400/400", gofakeit.UUID()),
			HeaderImageURL: models.DefaultHeaderImageURL,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user %d: %w", i, err)
		}
		users = append(users, user)
	}

	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// SeedMessages creates n messages spread across the given users with a
// realistic created_at spread over the last 90 days.
func (s *Seeder) SeedMessages(users []models.User, n int) ([]models.Message, error) {
	if len(users) == 0 {
		return nil, nil
	}

	messages := make([]models.Message, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]

		text := gofakeit.Sentence(3 + s.rng.Intn(12))
		if len(text) > models.MaxMessageLength {
			text = text[:models.MaxMessageLength]
		}

		message := models.Message{
			Text:      text,
			UserID:    author.ID,
			CreatedAt: time.Now().Add(-time.Duration(s.rng.Intn(90*24)) * time.Hour),
		}
		if err := s.db.Create(&message).Error; err != nil {
			return nil, fmt.Errorf("create message %d: %w", i, err)
		}
		messages = append(messages, message)
	}

	log.Printf("Seeded %d messages", len(messages))
	return messages, nil
}

// SeedFollows gives each user a handful of random followees.
func (s *Seeder) SeedFollows(users []models.User, perUser int) error {
	if len(users) < 2 {
		return nil
	}

	var count int
	for _, follower := range users {
		for i := 0; i < perUser; i++ {
			followed := users[s.rng.Intn(len(users))]
			if followed.ID == follower.ID {
				continue
			}
			follow := models.Follow{FollowerID: follower.ID, FollowedID: followed.ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error; err != nil {
				return fmt.Errorf("create follow: %w", err)
			}
			count++
		}
	}

	log.Printf("Seeded %d follow edges", count)
	return nil
}

// SeedLikes gives each user a handful of random liked messages.
func (s *Seeder) SeedLikes(users []models.User, messages []models.Message, perUser int) error {
	if len(users) == 0 || len(messages) == 0 {
		return nil
	}

	var count int
	for _, user := range users {
		for i := 0; i < perUser; i++ {
			message := messages[s.rng.Intn(len(messages))]
			like := models.Like{UserID: user.ID, MessageID: message.ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return fmt.Errorf("create like: %w", err)
			}
			count++
		}
	}

	log.Printf("Seeded %d like edges", count)
	return nil
}

// SeedAll runs the full seeding pipeline.
func (s *Seeder) SeedAll(numUsers, numMessages int) error {
	users, err := s.SeedUsers(numUsers)
	if err != nil {
		return err
	}
	messages, err := s.SeedMessages(users, numMessages)
	if err != nil {
		return err
	}
	if err := s.SeedFollows(users, 5); err != nil {
		return err
	}
	return s.SeedLikes(users, messages, 8)
}
