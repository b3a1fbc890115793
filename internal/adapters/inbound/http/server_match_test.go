package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cleitonmarx/talentmatch/internal/common"
	"github.com/cleitonmarx/talentmatch/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFindMatches struct {
	gotJob  domain.Job
	gotOpts domain.MatchOptions
	matches []domain.CandidateMatch
	err     error
}

func (f *fakeFindMatches) Execute(ctx context.Context, job domain.Job, opts domain.MatchOptions) ([]domain.CandidateMatch, error) {
	f.gotJob = job
	f.gotOpts = opts
	return f.matches, f.err
}

type fakeJobRepo struct {
	job   domain.Job
	found bool
	err   error
}

func (f *fakeJobRepo) GetJob(ctx context.Context, id uuid.UUID) (domain.Job, bool, error) {
	return f.job, f.found, f.err
}

func TestMatchAPIServer_FindMatchesHandler(t *testing.T) {
	fixedJobID := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	fixedCandidateID := uuid.MustParse("223e4567-e89b-12d3-a456-426614174000")
	job := domain.Job{
		ID:          fixedJobID,
		Title:       "Senior Backend Engineer",
		Description: "Build the matching platform backend",
	}
	match := domain.CandidateMatch{
		CandidateID:      fixedCandidateID,
		Score:            0.72,
		SkillScore:       1.0,
		ExperienceScore:  0.5,
		EducationScore:   1.0,
		DescriptionScore: 0.4,
		Confidence:       0.9,
	}

	tests := map[string]struct {
		jobID            string
		body             string
		useCase          *fakeFindMatches
		repo             *fakeJobRepo
		expectedStatus   int
		expectedCode     ErrorCode
		validateResponse func(*testing.T, []byte, *fakeFindMatches)
	}{
		"success-default-options": {
			jobID:          fixedJobID.String(),
			useCase:        &fakeFindMatches{matches: []domain.CandidateMatch{match}},
			repo:           &fakeJobRepo{job: job, found: true},
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, body []byte, uc *fakeFindMatches) {
				var resp FindMatchesResp
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, fixedJobID, resp.JobID)
				require.Len(t, resp.Matches, 1)
				assert.Equal(t, match, resp.Matches[0])
				assert.Equal(t, job, uc.gotJob)
				assert.Equal(t, domain.MatchOptions{}, uc.gotOpts)
			},
		},
		"success-custom-options": {
			jobID:          fixedJobID.String(),
			body:           `{"threshold":0.3,"max_results":5,"weights":{"skills":0.5,"experience":0.2,"education":0.1,"description":0.2},"force_refresh":true}`,
			useCase:        &fakeFindMatches{matches: []domain.CandidateMatch{}},
			repo:           &fakeJobRepo{job: job, found: true},
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, body []byte, uc *fakeFindMatches) {
				assert.Equal(t, domain.MatchOptions{
					Threshold:  common.Ptr(0.3),
					MaxResults: 5,
					Weights: domain.MatchWeights{
						Skills:      0.5,
						Experience:  0.2,
						Education:   0.1,
						Description: 0.2,
					},
					ForceRefresh: true,
				}, uc.gotOpts)
			},
		},
		"success-zero-threshold-forwarded": {
			jobID:          fixedJobID.String(),
			body:           `{"threshold":0}`,
			useCase:        &fakeFindMatches{matches: []domain.CandidateMatch{}},
			repo:           &fakeJobRepo{job: job, found: true},
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, body []byte, uc *fakeFindMatches) {
				assert.Equal(t, domain.MatchOptions{Threshold: common.Ptr(0.0)}, uc.gotOpts)
			},
		},
		"error-invalid-job-id": {
			jobID:          "not-a-uuid",
			useCase:        &fakeFindMatches{},
			repo:           &fakeJobRepo{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCode_BadRequest,
		},
		"error-invalid-body": {
			jobID:          fixedJobID.String(),
			body:           `{"threshold":`,
			useCase:        &fakeFindMatches{},
			repo:           &fakeJobRepo{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCode_BadRequest,
		},
		"error-job-not-found": {
			jobID:          fixedJobID.String(),
			useCase:        &fakeFindMatches{},
			repo:           &fakeJobRepo{found: false},
			expectedStatus: http.StatusNotFound,
			expectedCode:   ErrorCode_NotFound,
		},
		"error-validation": {
			jobID:          fixedJobID.String(),
			useCase:        &fakeFindMatches{err: domain.NewValidationErr("threshold cannot be negative")},
			repo:           &fakeJobRepo{job: job, found: true},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCode_BadRequest,
		},
		"error-matching-unavailable": {
			jobID:          fixedJobID.String(),
			useCase:        &fakeFindMatches{err: domain.NewMatchingUnavailableErr(errors.New("provider down"))},
			repo:           &fakeJobRepo{job: job, found: true},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   ErrorCode_ServiceUnavailable,
		},
		"error-internal": {
			jobID:          fixedJobID.String(),
			useCase:        &fakeFindMatches{err: errors.New("unexpected failure")},
			repo:           &fakeJobRepo{job: job, found: true},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrorCode_Internal,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			api := MatchAPIServer{
				Logger:             log.New(io.Discard, "", 0),
				FindMatchesUseCase: tt.useCase,
				JobRepo:            tt.repo,
			}

			var body io.Reader
			if tt.body != "" {
				body = bytes.NewBufferString(tt.body)
			}
			r := httptest.NewRequest(http.MethodPost, "/jobs/"+tt.jobID+"/matches", body)
			r.SetPathValue("id", tt.jobID)
			w := httptest.NewRecorder()

			api.FindMatchesHandler(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				tt.validateResponse(t, w.Body.Bytes(), tt.useCase)
				return
			}
			var errResp ErrorResp
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
			assert.Equal(t, tt.expectedCode, errResp.Error.Code)
			assert.NotEmpty(t, errResp.Error.Message)
		})
	}
}

func TestMatchAPIServer_HealthHandler(t *testing.T) {
	api := MatchAPIServer{Logger: log.New(io.Discard, "", 0)}

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	api.HealthHandler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
