package seed

import (
	"fmt"
	"log"
	"math/rand"

	"devconnect/internal/models"

	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	Users int
	Posts int
	Clean bool
}

// Run populates the database with a connected set of users, profiles, posts,
// likes, and comments.
func Run(db *gorm.DB, opts Options) error {
	if opts.Users <= 0 {
		opts.Users = 20
	}
	if opts.Posts <= 0 {
		opts.Posts = 60
	}

	if opts.Clean {
		if err := clear(db); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	// Roughly three quarters of users get a profile.
	profiles := 0
	for _, user := range users {
		if rand.Intn(4) == 0 {
			continue
		}
		if _, err := f.CreateProfile(user); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		profiles++
	}
	log.Printf("created %d profiles", profiles)

	posts := make([]*models.Post, 0, opts.Posts)
	for i := 0; i < opts.Posts; i++ {
		author := users[rand.Intn(len(users))]
		post, err := f.CreatePost(author)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("created %d posts", len(posts))

	likes, comments := 0, 0
	for _, post := range posts {
		for i := 0; i < rand.Intn(6); i++ {
			if err := f.CreateLike(users[rand.Intn(len(users))], post); err != nil {
				return fmt.Errorf("failed to create like: %w", err)
			}
			likes++
		}
		for i := 0; i < rand.Intn(4); i++ {
			if _, err := f.CreateComment(users[rand.Intn(len(users))], post); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
			comments++
		}
	}
	log.Printf("created %d likes and %d comments", likes, comments)

	return nil
}

// clear removes all rows in child-before-parent order.
func clear(db *gorm.DB) error {
	tables := []any{
		&models.Comment{},
		&models.Like{},
		&models.Post{},
		&models.Experience{},
		&models.Education{},
		&models.Profile{},
		&models.User{},
	}
	for _, table := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}
	log.Println("cleared existing data")
	return nil
}
