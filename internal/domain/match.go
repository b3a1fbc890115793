package domain

import (
	"sort"
	"time"

	"github.com/cleitonmarx/talentmatch/internal/common"
	"github.com/google/uuid"
)

const (
	// DefaultSimilarityThreshold is the minimum composite score a candidate
	// must reach to be retained when the caller does not supply one.
	DefaultSimilarityThreshold = 0.5
	// DefaultMaxResults bounds the returned match list when the caller does
	// not supply a limit.
	DefaultMaxResults = 20
)

// MatchWeights are the blending coefficients for the four sub-scores. They
// are applied exactly as supplied: the engine does not normalize them, so
// weights not summing to 1.0 can push the composite score outside [0, 1].
// Supplying a sane weighting is the caller's contract.
type MatchWeights struct {
	Skills      float64 `json:"skills"`
	Experience  float64 `json:"experience"`
	Education   float64 `json:"education"`
	Description float64 `json:"description"`
}

// DefaultMatchWeights returns the platform's standard weighting.
func DefaultMatchWeights() MatchWeights {
	return MatchWeights{
		Skills:      0.4,
		Experience:  0.3,
		Education:   0.1,
		Description: 0.2,
	}
}

// IsZero reports whether no weight has been set.
func (w MatchWeights) IsZero() bool {
	return w == MatchWeights{}
}

// Validate rejects negative coefficients. It deliberately does not require
// the weights to sum to 1.0.
func (w MatchWeights) Validate() error {
	if w.Skills < 0 || w.Experience < 0 || w.Education < 0 || w.Description < 0 {
		return NewValidationErr("match weights cannot be negative")
	}
	return nil
}

// MatchOptions configure one findMatches invocation. A nil Threshold means
// the platform default; an explicit zero threshold requests an unfiltered
// ranking.
type MatchOptions struct {
	Threshold    *float64
	MaxResults   int
	Weights      MatchWeights
	ForceRefresh bool
}

// WithDefaults fills unset fields with platform defaults.
func (o MatchOptions) WithDefaults() MatchOptions {
	if o.Threshold == nil {
		o.Threshold = common.Ptr(DefaultSimilarityThreshold)
	}
	if o.MaxResults == 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.Weights.IsZero() {
		o.Weights = DefaultMatchWeights()
	}
	return o
}

// Validate checks option bounds.
func (o MatchOptions) Validate() error {
	if o.Threshold != nil && *o.Threshold < 0 {
		return NewValidationErr("threshold cannot be negative")
	}
	if o.MaxResults < 0 {
		return NewValidationErr("max_results cannot be negative")
	}
	return o.Weights.Validate()
}

// CandidateMatch is the scored result for one (job, candidate) pair. It is
// immutable and lives no longer than the result cache TTL.
type CandidateMatch struct {
	CandidateID      uuid.UUID `json:"candidate_id"`
	Score            float64   `json:"score"`
	SkillScore       float64   `json:"skill_score"`
	ExperienceScore  float64   `json:"experience_score"`
	EducationScore   float64   `json:"education_score"`
	DescriptionScore float64   `json:"description_score"`
	Confidence       float64   `json:"confidence"`
}

// ScoreCandidate computes the full CandidateMatch for one candidate against a
// job: structured sub-scores blended with the semantic similarity result
// under the supplied weights.
func ScoreCandidate(job Job, profile CandidateProfile, similarity SimilarityResult, weights MatchWeights, now time.Time) CandidateMatch {
	skill := SkillMatchRatio(profile.Skills, job.Requirements.RequiredSkills)
	experience := ExperienceMatchRatio(profile, job.Requirements.MinYearsExperience, now)
	education := EducationMatchRatio(profile.Qualifications(), job.Requirements.RequiredQualifications)

	return CandidateMatch{
		CandidateID:      profile.ID,
		SkillScore:       skill,
		ExperienceScore:  experience,
		EducationScore:   education,
		DescriptionScore: similarity.Score,
		Confidence:       similarity.Confidence,
		Score: skill*weights.Skills +
			experience*weights.Experience +
			education*weights.Education +
			similarity.Score*weights.Description,
	}
}

// SortMatches orders matches by composite score descending, ties broken by
// candidate identifier ascending so results are deterministic.
func SortMatches(matches []CandidateMatch) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].CandidateID.String() < matches[j].CandidateID.String()
	})
}
