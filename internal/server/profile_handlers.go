package server

import (
	"devconnect/internal/models"
	"devconnect/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profile/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileRepo.GetByUserID(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// ListProfiles handles GET /api/profile
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileRepo.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profiles)
}

// GetProfileByUser handles GET /api/profile/user/:userId
func (s *Server) GetProfileByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return respondError(c, err)
	}

	profile, err := s.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req struct {
		Company        string `json:"company"`
		Website        string `json:"website"`
		Location       string `json:"location"`
		Status         string `json:"status"`
		Bio            string `json:"bio"`
		GithubUsername string `json:"github_username"`
		Skills         string `json:"skills"`
		Youtube        string `json:"youtube"`
		Facebook       string `json:"facebook"`
		Twitter        string `json:"twitter"`
		Instagram      string `json:"instagram"`
		Linkedin       string `json:"linkedin"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Status == "" {
		return respondError(c, models.NewValidationError("Status is required"))
	}
	if req.Skills == "" {
		return respondError(c, models.NewValidationError("Skills is required"))
	}

	input := &repository.ProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Facebook:       req.Facebook,
		Twitter:        req.Twitter,
		Instagram:      req.Instagram,
		Linkedin:       req.Linkedin,
	}

	profile, err := s.profileRepo.Upsert(c.Context(), currentUserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// AddExperience handles PUT /api/profile/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Company     string `json:"company"`
		Location    string `json:"location"`
		From        string `json:"from"`
		To          string `json:"to"`
		Current     bool   `json:"current"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Title == "" {
		return respondError(c, models.NewValidationError("Title is required"))
	}
	if req.Company == "" {
		return respondError(c, models.NewValidationError("Company is required"))
	}

	from, err := parseDate(req.From)
	if err != nil || from == nil {
		return respondError(c, models.NewValidationError("From date is required"))
	}
	to, err := parseDate(req.To)
	if err != nil {
		return respondError(c, err)
	}

	entry := &models.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        *from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	}

	profile, err := s.profileRepo.AddExperience(c.Context(), currentUserID(c), entry)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// RemoveExperience handles DELETE /api/profile/experience/:id
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	entryID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	profile, err := s.profileRepo.RemoveExperience(c.Context(), currentUserID(c), entryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req struct {
		School       string `json:"school"`
		Degree       string `json:"degree"`
		FieldOfStudy string `json:"field_of_study"`
		From         string `json:"from"`
		To           string `json:"to"`
		Current      bool   `json:"current"`
		Description  string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.School == "" {
		return respondError(c, models.NewValidationError("School is required"))
	}
	if req.Degree == "" {
		return respondError(c, models.NewValidationError("Degree is required"))
	}
	if req.FieldOfStudy == "" {
		return respondError(c, models.NewValidationError("Field of study is required"))
	}

	from, err := parseDate(req.From)
	if err != nil || from == nil {
		return respondError(c, models.NewValidationError("From date is required"))
	}
	to, err := parseDate(req.To)
	if err != nil {
		return respondError(c, err)
	}

	entry := &models.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         *from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	}

	profile, err := s.profileRepo.AddEducation(c.Context(), currentUserID(c), entry)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// RemoveEducation handles DELETE /api/profile/education/:id
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	entryID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	profile, err := s.profileRepo.RemoveEducation(c.Context(), currentUserID(c), entryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile — removes the user's posts,
// profile and account.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.profileRepo.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "User deleted"})
}

// GetGithubRepos handles GET /api/profile/github/:userName
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	username := c.Params("userName")
	if username == "" {
		return respondError(c, models.NewValidationError("Invalid userName"))
	}

	repos, err := s.github.ListRepos(c.Context(), username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(repos)
}
