// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var statuses = []string{
	"Developer", "Senior Developer", "Junior Developer",
	"Student or Learning", "Instructor or Teacher", "Intern",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "PostgreSQL", "Redis",
	"Docker", "Kubernetes", "React", "HTML", "CSS", "GraphQL",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. All seeded users share
// the password "password123".
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	email := gofakeit.Email()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: string(hashed),
		Avatar:   service.GravatarURL(email),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateProfile persists a profile for the given user with a couple of
// experience and education entries.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	skills := make([]string, 0, 4)
	for _, i := range f.rng.Perm(len(skillPool))[:4] {
		skills = append(skills, skillPool[i])
	}

	profile := &models.Profile{
		UserID:         user.ID,
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Status:         statuses[f.rng.Intn(len(statuses))],
		Skills:         skills,
		Bio:            gofakeit.Sentence(12),
		GithubUsername: strings.ToLower(gofakeit.Username()),
		Social: models.SocialLinks{
			Twitter:  "https://twitter.com/" + strings.ToLower(gofakeit.Username()),
			Linkedin: "https://linkedin.com/in/" + strings.ToLower(gofakeit.Username()),
		},
		Experience: []models.Experience{f.buildExperience(), f.buildExperience()},
		Education:  []models.Education{f.buildEducation()},
	}

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (f *Factory) buildExperience() models.Experience {
	from := gofakeit.DateRange(
		time.Now().AddDate(-8, 0, 0),
		time.Now().AddDate(-1, 0, 0),
	)
	exp := models.Experience{
		Title:       gofakeit.JobTitle(),
		Company:     gofakeit.Company(),
		Location:    gofakeit.City(),
		From:        from,
		Description: gofakeit.Sentence(10),
	}
	if f.rng.Intn(2) == 0 {
		exp.Current = true
	} else {
		to := gofakeit.DateRange(from, time.Now())
		exp.To = &to
	}
	return exp
}

func (f *Factory) buildEducation() models.Education {
	from := gofakeit.DateRange(
		time.Now().AddDate(-12, 0, 0),
		time.Now().AddDate(-5, 0, 0),
	)
	to := from.AddDate(4, 0, 0)
	return models.Education{
		School:       gofakeit.Company() + " University",
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         from,
		To:           &to,
		Description:  gofakeit.Sentence(8),
	}
}

// CreatePost persists a post for the given user, spreading created_at back
// over the last 90 days so the feed looks lived-in.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID: user.ID,
		Text:   gofakeit.Paragraph(1, 3, 8, " "),
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	daysBack := f.rng.Intn(90)
	hoursBack := f.rng.Intn(24)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment on the post authored by the given user.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   gofakeit.Sentence(10),
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from user on post. Duplicate likes are skipped.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{UserID: user.ID, PostID: post.ID}
	err := f.db.Create(like).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return nil
	}
	return err
}
