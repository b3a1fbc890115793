package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ExperienceLevel classifies the seniority a job posting targets.
type ExperienceLevel string

const (
	// ExperienceLevel_Entry indicates an entry-level position.
	ExperienceLevel_Entry ExperienceLevel = "ENTRY"
	// ExperienceLevel_Mid indicates a mid-level position.
	ExperienceLevel_Mid ExperienceLevel = "MID"
	// ExperienceLevel_Senior indicates a senior position.
	ExperienceLevel_Senior ExperienceLevel = "SENIOR"
	// ExperienceLevel_Lead indicates a lead or principal position.
	ExperienceLevel_Lead ExperienceLevel = "LEAD"
)

// JobRequirements holds the structured requirements of a job posting.
type JobRequirements struct {
	ExperienceLevel        ExperienceLevel `json:"experience_level"`
	MinYearsExperience     float64         `json:"min_years_experience"`
	RequiredSkills         []string        `json:"required_skills"`
	PreferredSkills        []string        `json:"preferred_skills"`
	RequiredQualifications []string        `json:"required_qualifications"`
	Responsibilities       []string        `json:"responsibilities"`
}

// Job represents a job posting. It is immutable for the duration of one
// matching call; the engine never writes it back.
type Job struct {
	ID           uuid.UUID
	RecruiterID  uuid.UUID
	Title        string
	Description  string
	Requirements JobRequirements
	Skills       []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the job carries the minimum content needed for matching.
func (j Job) Validate() error {
	if j.ID == uuid.Nil {
		return NewValidationErr("job id cannot be empty")
	}
	if j.Description == "" {
		return NewValidationErr("job description cannot be empty")
	}
	if j.Requirements.MinYearsExperience < 0 {
		return NewValidationErr("min_years_experience cannot be negative")
	}
	return nil
}

// JobRepository defines read access to job postings.
type JobRepository interface {
	// GetJob retrieves a job posting by its unique identifier.
	GetJob(ctx context.Context, id uuid.UUID) (Job, bool, error)
}
