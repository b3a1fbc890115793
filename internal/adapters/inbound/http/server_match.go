package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cleitonmarx/talentmatch/internal/domain"
	"github.com/google/uuid"
)

// FindMatchesReq is the optional request body for the matches endpoint.
// Omitted fields fall back to platform defaults.
type FindMatchesReq struct {
	Threshold    *float64             `json:"threshold,omitempty"`
	MaxResults   *int                 `json:"max_results,omitempty"`
	Weights      *domain.MatchWeights `json:"weights,omitempty"`
	ForceRefresh bool                 `json:"force_refresh,omitempty"`
}

// FindMatchesResp is the response envelope for the matches endpoint.
type FindMatchesResp struct {
	JobID   uuid.UUID               `json:"job_id"`
	Matches []domain.CandidateMatch `json:"matches"`
}

// FindMatchesHandler computes the ranked candidate matches for one job.
func (api MatchAPIServer) FindMatchesHandler(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, newErrorResp(ErrorCode_BadRequest, fmt.Sprintf("invalid job id: %v", err)))
		return
	}

	var req FindMatchesReq
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, newErrorResp(ErrorCode_BadRequest, fmt.Sprintf("invalid request body: %v", err)))
			return
		}
	}

	job, found, err := api.JobRepo.GetJob(r.Context(), jobID)
	if err != nil {
		api.Logger.Printf("Error fetching job %s: %v", jobID, err)
		respondError(w, toError(err))
		return
	}
	if !found {
		respondError(w, newErrorResp(ErrorCode_NotFound, fmt.Sprintf("job %s not found", jobID)))
		return
	}

	matches, err := api.FindMatchesUseCase.Execute(r.Context(), job, toMatchOptions(req))
	if err != nil {
		api.Logger.Printf("Error matching job %s: %v", jobID, err)
		respondError(w, toError(err))
		return
	}

	respondJSON(w, http.StatusOK, FindMatchesResp{
		JobID:   jobID,
		Matches: matches,
	})
}

func toMatchOptions(req FindMatchesReq) domain.MatchOptions {
	opts := domain.MatchOptions{
		Threshold:    req.Threshold,
		ForceRefresh: req.ForceRefresh,
	}
	if req.MaxResults != nil {
		opts.MaxResults = *req.MaxResults
	}
	if req.Weights != nil {
		opts.Weights = *req.Weights
	}
	return opts
}

func toError(err error) ErrorResp {
	switch err.(type) {
	case *domain.ValidationErr:
		return newErrorResp(ErrorCode_BadRequest, err.Error())
	case *domain.NotFoundErr:
		return newErrorResp(ErrorCode_NotFound, err.Error())
	case *domain.MatchingUnavailableErr, *domain.ProviderUnavailableErr:
		return newErrorResp(ErrorCode_ServiceUnavailable, err.Error())
	default:
		return newErrorResp(ErrorCode_Internal, err.Error())
	}
}
