package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/cleitonmarx/symbiont/depend"
	"github.com/cleitonmarx/talentmatch/internal/domain"
	"github.com/cleitonmarx/talentmatch/internal/telemetry"
	"github.com/google/uuid"
)

var (
	jobFields = []string{
		"id",
		"recruiter_id",
		"title",
		"description",
		"requirements",
		"skills",
		"created_at",
		"updated_at",
	}
)

// JobRepository implements the domain.JobRepository interface using PostgreSQL as the storage backend.
type JobRepository struct {
	sb squirrel.StatementBuilderType
}

// NewJobRepository creates a new instance of JobRepository.
func NewJobRepository(br squirrel.BaseRunner) JobRepository {
	return JobRepository{
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(br),
	}
}

// GetJob retrieves a job posting by its ID.
func (jr JobRepository) GetJob(ctx context.Context, id uuid.UUID) (domain.Job, bool, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	row := jr.sb.
		Select(jobFields...).
		From("jobs").
		Where(squirrel.Eq{"id": id}).
		QueryRowContext(spanCtx)

	var (
		job              domain.Job
		requirementsJSON []byte
		skillsJSON       []byte
	)
	err := row.Scan(
		&job.ID,
		&job.RecruiterID,
		&job.Title,
		&job.Description,
		&requirementsJSON,
		&skillsJSON,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		telemetry.RecordErrorAndStatus(span, nil)
		return domain.Job{}, false, nil
	}
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.Job{}, false, err
	}

	if len(requirementsJSON) > 0 {
		if err := json.Unmarshal(requirementsJSON, &job.Requirements); telemetry.RecordErrorAndStatus(span, err) {
			return domain.Job{}, false, err
		}
	}
	if len(skillsJSON) > 0 {
		if err := json.Unmarshal(skillsJSON, &job.Skills); telemetry.RecordErrorAndStatus(span, err) {
			return domain.Job{}, false, err
		}
	}

	return job, true, nil
}

// InitJobRepository initializes the JobRepository and registers it in the dependency container.
type InitJobRepository struct {
	DB *sql.DB `resolve:""`
}

// Initialize registers the JobRepository.
func (ijr InitJobRepository) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[domain.JobRepository](NewJobRepository(ijr.DB))
	return ctx, nil
}
