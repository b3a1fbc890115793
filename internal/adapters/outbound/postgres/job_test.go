package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cleitonmarx/talentmatch/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const getJobQuery = "SELECT id, recruiter_id, title, description, requirements, skills, created_at, updated_at FROM jobs WHERE id = $1"

func TestJobRepository_GetJob(t *testing.T) {
	fixedJobID := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	fixedRecruiterID := uuid.MustParse("223e4567-e89b-12d3-a456-426614174000")
	fixedTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	job := domain.Job{
		ID:          fixedJobID,
		RecruiterID: fixedRecruiterID,
		Title:       "Senior Backend Engineer",
		Description: "Build the matching platform backend",
		Requirements: domain.JobRequirements{
			ExperienceLevel:    domain.ExperienceLevel_Senior,
			MinYearsExperience: 5,
			RequiredSkills:     []string{"go", "postgresql"},
		},
		Skills:    []string{"go", "postgresql", "kubernetes"},
		CreatedAt: fixedTime,
		UpdatedAt: fixedTime,
	}

	tests := map[string]struct {
		setExpectations func(mock sqlmock.Sqlmock)
		expectedJob     domain.Job
		expectedFound   bool
		expectedErr     error
	}{
		"success": {
			setExpectations: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(jobFields).
					AddRow(
						job.ID,
						job.RecruiterID,
						job.Title,
						job.Description,
						[]byte(`{"experience_level":"SENIOR","min_years_experience":5,"required_skills":["go","postgresql"]}`),
						[]byte(`["go","postgresql","kubernetes"]`),
						job.CreatedAt,
						job.UpdatedAt,
					)
				mock.ExpectQuery(getJobQuery).
					WithArgs(fixedJobID).
					WillReturnRows(rows)
			},
			expectedJob:   job,
			expectedFound: true,
		},
		"not-found": {
			setExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(getJobQuery).
					WithArgs(fixedJobID).
					WillReturnRows(sqlmock.NewRows(jobFields))
			},
			expectedJob:   domain.Job{},
			expectedFound: false,
		},
		"database-error": {
			setExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(getJobQuery).
					WithArgs(fixedJobID).
					WillReturnError(errors.New("database error"))
			},
			expectedJob:   domain.Job{},
			expectedFound: false,
			expectedErr:   errors.New("database error"),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
			assert.NoError(t, err)
			defer db.Close() // nolint:errcheck

			tt.setExpectations(mock)

			repo := NewJobRepository(db)
			gotJob, gotFound, gotErr := repo.GetJob(context.Background(), fixedJobID)
			assert.Equal(t, tt.expectedErr, gotErr)
			assert.Equal(t, tt.expectedFound, gotFound)
			assert.Equal(t, tt.expectedJob, gotJob)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
