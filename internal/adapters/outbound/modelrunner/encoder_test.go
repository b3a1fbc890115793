package modelrunner

import (
	"testing"
	"time"

	"github.com/cleitonmarx/talentmatch/internal/common"
	"github.com/cleitonmarx/talentmatch/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextEncoder_EncodeJob(t *testing.T) {
	encoder := NewTextEncoder()
	job := domain.Job{
		ID:          uuid.MustParse("123e4567-e89b-12d3-a456-426614174000"),
		Title:       "Senior Backend Engineer",
		Description: "Build the matching platform backend",
		Requirements: domain.JobRequirements{
			ExperienceLevel:    domain.ExperienceLevel_Senior,
			MinYearsExperience: 5,
			RequiredSkills:     []string{"Go", "PostgreSQL"},
		},
		Skills: []string{"Go", "PostgreSQL", "Kubernetes"},
	}

	first, err := encoder.EncodeJob(job)
	require.NoError(t, err)
	assert.Contains(t, first, "Senior Backend Engineer")
	assert.Contains(t, first, "PostgreSQL")

	// Deterministic: identical input must map to the same cache key.
	second, err := encoder.EncodeJob(job)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	changed := job
	changed.Description = "Different description"
	third, err := encoder.EncodeJob(changed)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestTextEncoder_EncodeCandidate(t *testing.T) {
	encoder := NewTextEncoder()
	profile := domain.CandidateProfile{
		ID:       uuid.MustParse("223e4567-e89b-12d3-a456-426614174000"),
		Headline: "Backend engineer with a database habit",
		Skills:   []string{"Go", "PostgreSQL"},
		Experience: []domain.WorkExperience{{
			Title:     "Engineer",
			Company:   "Acme",
			StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Skills:    []string{"Go"},
		}},
		Education: []domain.Education{{
			Institution:  "MIT",
			Degree:       "BSc",
			FieldOfStudy: "Computer Science",
		}},
	}

	first, err := encoder.EncodeCandidate(profile)
	require.NoError(t, err)
	assert.Contains(t, first, "Acme")
	assert.Contains(t, first, "Computer Science")

	second, err := encoder.EncodeCandidate(profile)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Employment dates do not influence the encoding.
	shifted := profile
	shifted.Experience = []domain.WorkExperience{{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   common.Ptr(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)),
		Skills:    []string{"Go"},
	}}
	third, err := encoder.EncodeCandidate(shifted)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}
