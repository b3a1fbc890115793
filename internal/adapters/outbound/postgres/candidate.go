package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cleitonmarx/symbiont/depend"
	"github.com/cleitonmarx/talentmatch/internal/domain"
	"github.com/cleitonmarx/talentmatch/internal/telemetry"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	candidateFields = []string{
		"c.id",
		"c.headline",
		"c.skills",
		"c.experience",
		"c.education",
		"c.embedding",
	}
)

// experienceRow is the JSONB shape of one employment entry as the platform's
// intake flow stores it. Dates arrive as loosely formatted strings.
type experienceRow struct {
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Skills    []string `json:"skills"`
}

// educationRow is the JSONB shape of one education entry.
type educationRow struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
}

// CandidateSource streams the candidates who applied to a job from PostgreSQL.
// It implements the domain.CandidateSource interface.
type CandidateSource struct {
	sb squirrel.StatementBuilderType
}

// NewCandidateSource creates a new instance of CandidateSource.
func NewCandidateSource(br squirrel.BaseRunner) CandidateSource {
	return CandidateSource{
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(br),
	}
}

// StreamCandidates lazily streams the profiles of all candidates who applied
// to the given job. Both channels are closed when the stream ends; at most
// one error is sent.
func (cs CandidateSource) StreamCandidates(ctx context.Context, jobID uuid.UUID) (<-chan domain.CandidateProfile, <-chan error) {
	profiles := make(chan domain.CandidateProfile)
	errCh := make(chan error, 1)

	go func() {
		defer close(profiles)
		defer close(errCh)

		spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(
			attribute.String("job_id", jobID.String()),
		))
		defer span.End()

		rows, err := cs.sb.
			Select(candidateFields...).
			From("candidates c").
			Join("applications a ON a.candidate_id = c.id").
			Where(squirrel.Eq{"a.job_id": jobID}).
			OrderBy("c.id").
			QueryContext(spanCtx)
		if telemetry.RecordErrorAndStatus(span, err) {
			errCh <- err
			return
		}
		defer rows.Close() //nolint:errcheck

		for rows.Next() {
			profile, err := scanCandidate(rows)
			if telemetry.RecordErrorAndStatus(span, err) {
				errCh <- err
				return
			}

			select {
			case profiles <- profile:
			case <-spanCtx.Done():
				telemetry.RecordErrorAndStatus(span, spanCtx.Err())
				return
			}
		}

		if err := rows.Err(); telemetry.RecordErrorAndStatus(span, err) {
			errCh <- err
		}
	}()

	return profiles, errCh
}

func scanCandidate(rows *sql.Rows) (domain.CandidateProfile, error) {
	var (
		profile        domain.CandidateProfile
		headline       sql.NullString
		skillsJSON     []byte
		experienceJSON []byte
		educationJSON  []byte
		embedding      nullVector
	)
	if err := rows.Scan(
		&profile.ID,
		&headline,
		&skillsJSON,
		&experienceJSON,
		&educationJSON,
		&embedding,
	); err != nil {
		return domain.CandidateProfile{}, err
	}

	profile.Headline = headline.String
	if len(skillsJSON) > 0 {
		if err := json.Unmarshal(skillsJSON, &profile.Skills); err != nil {
			return domain.CandidateProfile{}, err
		}
	}

	if len(experienceJSON) > 0 {
		var entries []experienceRow
		if err := json.Unmarshal(experienceJSON, &entries); err != nil {
			return domain.CandidateProfile{}, err
		}
		profile.Experience = make([]domain.WorkExperience, 0, len(entries))
		for _, entry := range entries {
			profile.Experience = append(profile.Experience, toWorkExperience(entry))
		}
	}

	if len(educationJSON) > 0 {
		var entries []educationRow
		if err := json.Unmarshal(educationJSON, &entries); err != nil {
			return domain.CandidateProfile{}, err
		}
		profile.Education = make([]domain.Education, 0, len(entries))
		for _, entry := range entries {
			profile.Education = append(profile.Education, domain.Education{
				Institution:  entry.Institution,
				Degree:       entry.Degree,
				FieldOfStudy: entry.FieldOfStudy,
			})
		}
	}

	if embedding.valid {
		profile.Embedding = toFloat64(embedding.vector.Slice())
	}

	return profile, nil
}

// toWorkExperience converts one stored experience entry, parsing its loose
// date strings. An unparseable or open-ended end date leaves EndDate nil.
func toWorkExperience(entry experienceRow) domain.WorkExperience {
	exp := domain.WorkExperience{
		Title:   entry.Title,
		Company: entry.Company,
		Skills:  entry.Skills,
	}
	if start, ok := domain.ParseExperienceDate(entry.StartDate, time.UTC); ok {
		exp.StartDate = start
	}
	if end, ok := domain.ParseExperienceDate(entry.EndDate, time.UTC); ok {
		exp.EndDate = &end
	}
	return exp
}

// nullVector scans a nullable pgvector column.
type nullVector struct {
	vector pgvector.Vector
	valid  bool
}

func (nv *nullVector) Scan(src any) error {
	if src == nil {
		nv.valid = false
		return nil
	}
	if err := nv.vector.Scan(src); err != nil {
		return err
	}
	nv.valid = true
	return nil
}

func toFloat64(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// InitCandidateSource initializes the CandidateSource and registers it in the dependency container.
type InitCandidateSource struct {
	DB *sql.DB `resolve:""`
}

// Initialize registers the CandidateSource.
func (ics InitCandidateSource) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[domain.CandidateSource](NewCandidateSource(ics.DB))
	return ctx, nil
}
