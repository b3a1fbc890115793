package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WorkExperience is one employment entry on a candidate profile.
// A nil EndDate means the position is current.
type WorkExperience struct {
	Title     string
	Company   string
	StartDate time.Time
	EndDate   *time.Time
	Skills    []string
}

// Years returns the duration of the entry in fractional years, using now for
// open-ended positions. Entries with a zero start date contribute nothing.
func (w WorkExperience) Years(now time.Time) float64 {
	if w.StartDate.IsZero() {
		return 0
	}
	end := now
	if w.EndDate != nil {
		end = *w.EndDate
	}
	if end.Before(w.StartDate) {
		return 0
	}
	return end.Sub(w.StartDate).Hours() / (24 * 365.25)
}

// Education is one education entry on a candidate profile. Degree is the
// qualification tag matched against a job's required qualifications.
type Education struct {
	Institution  string
	Degree       string
	FieldOfStudy string
}

// CandidateProfile represents a candidate as supplied by the external
// candidate source. It is read-only to the matching engine. Embedding, when
// non-empty, is a profile vector pre-computed by the platform's indexing flow.
type CandidateProfile struct {
	ID         uuid.UUID
	Headline   string
	Experience []WorkExperience
	Education  []Education
	Skills     []string
	Embedding  []float64
}

// TotalYearsExperience sums the duration of all experience entries in years.
func (c CandidateProfile) TotalYearsExperience(now time.Time) float64 {
	total := 0.0
	for _, exp := range c.Experience {
		total += exp.Years(now)
	}
	return total
}

// Qualifications collects the degree tags from the candidate's education entries.
func (c CandidateProfile) Qualifications() []string {
	quals := make([]string, 0, len(c.Education))
	for _, edu := range c.Education {
		if edu.Degree != "" {
			quals = append(quals, edu.Degree)
		}
	}
	return quals
}

// CandidateSource provides a lazy, finite stream of candidate profiles scoped
// to a job. Implementations must close both channels when the stream ends and
// send at most one error. The engine never assumes an upper bound on the
// number of candidates.
type CandidateSource interface {
	StreamCandidates(ctx context.Context, jobID uuid.UUID) (<-chan CandidateProfile, <-chan error)
}
