package server

import (
	"encoding/json"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/service"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// upsertProfileRequest accepts skills either as a JSON array or as a single
// comma-separated string, matching what older clients send.
type upsertProfileRequest struct {
	Company        string          `json:"company"`
	Website        string          `json:"website"`
	Location       string          `json:"location"`
	Status         string          `json:"status"`
	Skills         json.RawMessage `json:"skills"`
	Bio            string          `json:"bio"`
	GithubUsername string          `json:"githubusername"`
	Youtube        string          `json:"youtube"`
	Twitter        string          `json:"twitter"`
	Facebook       string          `json:"facebook"`
	Linkedin       string          `json:"linkedin"`
	Instagram      string          `json:"instagram"`
}

func (r *upsertProfileRequest) skills() ([]string, error) {
	if len(r.Skills) == 0 {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(r.Skills, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, s := range list {
			out = append(out, validation.SplitSkills(s)...)
		}
		return out, nil
	}
	var raw string
	if err := json.Unmarshal(r.Skills, &raw); err != nil {
		return nil, models.NewValidationError("Skills must be a string or a list of strings")
	}
	return validation.SplitSkills(raw), nil
}

// GetMyProfile handles GET /api/profile/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profiles.GetByUserID(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req upsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skills, err := req.skills()
	if err != nil {
		return fail(c, err)
	}

	profile, err := s.profiles.Upsert(c.Context(), service.UpsertProfileInput{
		UserID:         currentUserID(c),
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social: models.SocialLinks{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			Linkedin:  req.Linkedin,
			Instagram: req.Instagram,
		},
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

// ListProfiles handles GET /api/profile
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	profiles, err := s.profiles.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profiles)
}

// GetProfileByUser handles GET /api/profile/user/:id
func (s *Server) GetProfileByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	profile, err := s.profiles.GetByUserID(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.profiles.Delete(c.Context(), currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// AddExperience handles PUT /api/profile/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return fail(c, err)
	}

	profile, err := s.profiles.AddExperience(c.Context(), service.AddExperienceInput{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

// RemoveExperience handles DELETE /api/profile/experience/:id
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	expID, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	profile, err := s.profiles.RemoveExperience(c.Context(), currentUserID(c), expID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// AddEducation handles PUT /api/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req educationRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return fail(c, err)
	}

	profile, err := s.profiles.AddEducation(c.Context(), service.AddEducationInput{
		UserID:       currentUserID(c),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

// RemoveEducation handles DELETE /api/profile/education/:id
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	eduID, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	profile, err := s.profiles.RemoveEducation(c.Context(), currentUserID(c), eduID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

// GetGithubRepos handles GET /api/profile/github/:username
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	repos, err := s.github.Repos(c.Context(), c.Params("username"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(repos)
}

func parseDateRange(fromRaw, toRaw string) (time.Time, *time.Time, error) {
	from, err := validation.ParseDate(fromRaw)
	if err != nil {
		return time.Time{}, nil, models.NewValidationError("Invalid from date")
	}
	var to *time.Time
	if toRaw != "" {
		parsed, err := validation.ParseDate(toRaw)
		if err != nil {
			return time.Time{}, nil, models.NewValidationError("Invalid to date")
		}
		to = &parsed
	}
	return from, to, nil
}
