// Package validation provides per-operation input validation. Each mutating
// operation has a single validator that runs before any domain logic, so a
// rejected request never reaches the repository layer.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 128
	maxNameLen     = 100
	maxEmailLen    = 254
	maxTextLen     = 10000
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateRegistration checks the signup payload.
func ValidateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("name must not exceed %d characters", maxNameLen)
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}

// ValidateLogin checks the login payload.
func ValidateLogin(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ValidateEmail checks basic email format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > maxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", maxEmailLen)
	}
	return nil
}

// ValidatePassword checks password length bounds.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordLen)
	}
	return nil
}

// ValidateProfile checks the profile upsert payload.
func ValidateProfile(status string, skills []string) error {
	if strings.TrimSpace(status) == "" {
		return fmt.Errorf("status is required")
	}
	if len(skills) == 0 {
		return fmt.Errorf("skills are required")
	}
	return nil
}

// ValidateExperience checks a new experience entry.
func ValidateExperience(title, company string, from time.Time) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(company) == "" {
		return fmt.Errorf("company is required")
	}
	if from.IsZero() {
		return fmt.Errorf("from date is required")
	}
	return nil
}

// ValidateEducation checks a new education entry.
func ValidateEducation(school, degree, fieldOfStudy string, from time.Time) error {
	if strings.TrimSpace(school) == "" {
		return fmt.Errorf("school is required")
	}
	if strings.TrimSpace(degree) == "" {
		return fmt.Errorf("degree is required")
	}
	if strings.TrimSpace(fieldOfStudy) == "" {
		return fmt.Errorf("field of study is required")
	}
	if from.IsZero() {
		return fmt.Errorf("from date is required")
	}
	return nil
}

// ValidateText checks a post or comment body.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text is required")
	}
	if len(text) > maxTextLen {
		return fmt.Errorf("text must not exceed %d characters", maxTextLen)
	}
	return nil
}

// SplitSkills normalizes a comma-separated skills string into an ordered,
// trimmed list. Blank entries are dropped; order is preserved.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// ParseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates. The zero
// time and nil error are returned for an empty string.
func ParseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD or RFC 3339)", raw)
	}
	return t, nil
}
