package modelrunner

import (
	"context"
	"fmt"

	"github.com/cleitonmarx/symbiont/depend"
	"github.com/cleitonmarx/talentmatch/internal/domain"
	"github.com/toon-format/toon-go"
)

// TextEncoder renders jobs and candidates as canonical TOON documents for
// vectorization. The encoding is deterministic for identical input, which
// keeps the content-addressed vector cache effective.
type TextEncoder struct{}

// NewTextEncoder creates a new TextEncoder.
func NewTextEncoder() TextEncoder {
	return TextEncoder{}
}

type jobDoc struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	ExperienceLevel    string   `json:"experience_level"`
	MinYearsExperience float64  `json:"min_years_experience"`
	RequiredSkills     []string `json:"required_skills"`
	PreferredSkills    []string `json:"preferred_skills"`
	Qualifications     []string `json:"qualifications"`
	Responsibilities   []string `json:"responsibilities"`
	Skills             []string `json:"skills"`
}

type experienceDoc struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Skills  []string `json:"skills"`
}

type educationDoc struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
}

type candidateDoc struct {
	Headline   string          `json:"headline"`
	Skills     []string        `json:"skills"`
	Experience []experienceDoc `json:"experience"`
	Education  []educationDoc  `json:"education"`
}

// EncodeJob renders the job posting as canonical text.
func (TextEncoder) EncodeJob(job domain.Job) (string, error) {
	doc := jobDoc{
		Title:              job.Title,
		Description:        job.Description,
		ExperienceLevel:    string(job.Requirements.ExperienceLevel),
		MinYearsExperience: job.Requirements.MinYearsExperience,
		RequiredSkills:     job.Requirements.RequiredSkills,
		PreferredSkills:    job.Requirements.PreferredSkills,
		Qualifications:     job.Requirements.RequiredQualifications,
		Responsibilities:   job.Requirements.Responsibilities,
		Skills:             job.Skills,
	}

	encoded, err := toon.MarshalString(doc, toon.WithLengthMarkers(true))
	if err != nil {
		return "", fmt.Errorf("failed to encode job %s: %w", job.ID, err)
	}
	return encoded, nil
}

// EncodeCandidate renders the candidate profile as canonical text. Dates are
// deliberately excluded: they change the vector without changing what the
// candidate can do.
func (TextEncoder) EncodeCandidate(profile domain.CandidateProfile) (string, error) {
	doc := candidateDoc{
		Headline:   profile.Headline,
		Skills:     profile.Skills,
		Experience: make([]experienceDoc, 0, len(profile.Experience)),
		Education:  make([]educationDoc, 0, len(profile.Education)),
	}
	for _, exp := range profile.Experience {
		doc.Experience = append(doc.Experience, experienceDoc{
			Title:   exp.Title,
			Company: exp.Company,
			Skills:  exp.Skills,
		})
	}
	for _, edu := range profile.Education {
		doc.Education = append(doc.Education, educationDoc{
			Institution:  edu.Institution,
			Degree:       edu.Degree,
			FieldOfStudy: edu.FieldOfStudy,
		})
	}

	encoded, err := toon.MarshalString(doc, toon.WithLengthMarkers(true))
	if err != nil {
		return "", fmt.Errorf("failed to encode candidate %s: %w", profile.ID, err)
	}
	return encoded, nil
}

// InitTextEncoder initializes the text encoder dependency
type InitTextEncoder struct{}

// Initialize registers the text encoder
func (InitTextEncoder) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[domain.EmbeddingTextEncoder](NewTextEncoder())
	return ctx, nil
}
