package usecases

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/cleitonmarx/symbiont/depend"
	"github.com/cleitonmarx/talentmatch/internal/common"
	"github.com/cleitonmarx/talentmatch/internal/domain"
	"github.com/cleitonmarx/talentmatch/internal/telemetry"
	"github.com/google/uuid"
)

// MatchBatchComputedEventType is the event type published after a fresh
// match batch has been computed for a job.
const MatchBatchComputedEventType = "match_batch.computed"

// FindMatches defines the interface for the FindMatches use case.
type FindMatches interface {
	Execute(ctx context.Context, job domain.Job, opts domain.MatchOptions) ([]domain.CandidateMatch, error)
}

// FindMatchesImpl is the implementation of the FindMatches use case. It
// orchestrates the full matching pipeline for one job: result cache lookup,
// job vectorization, concurrent candidate scoring, ranking and event
// publication.
type FindMatchesImpl struct {
	gateway      domain.EmbeddingGateway
	candidates   domain.CandidateSource
	resultCache  domain.CacheStore
	publisher    domain.MatchEventPublisher
	encoder      domain.EmbeddingTextEncoder
	timeProvider domain.CurrentTimeProvider
	logger       *log.Logger
	resultTTL    time.Duration
	workers      int
	dimension    int
	topic        string
	createUUID   func() uuid.UUID
}

// NewFindMatchesImpl creates a new instance of FindMatchesImpl.
func NewFindMatchesImpl(
	gateway domain.EmbeddingGateway,
	candidates domain.CandidateSource,
	resultCache domain.CacheStore,
	publisher domain.MatchEventPublisher,
	encoder domain.EmbeddingTextEncoder,
	timeProvider domain.CurrentTimeProvider,
	logger *log.Logger,
	resultTTL time.Duration,
	workers int,
	dimension int,
	topic string,
) FindMatchesImpl {
	if workers < 1 {
		workers = 1
	}
	return FindMatchesImpl{
		gateway:      gateway,
		candidates:   candidates,
		resultCache:  resultCache,
		publisher:    publisher,
		encoder:      encoder,
		timeProvider: timeProvider,
		logger:       logger,
		resultTTL:    resultTTL,
		workers:      workers,
		dimension:    dimension,
		topic:        topic,
		createUUID:   uuid.New,
	}
}

// Execute computes the ranked candidate matches for the given job.
func (fm FindMatchesImpl) Execute(ctx context.Context, job domain.Job, opts domain.MatchOptions) ([]domain.CandidateMatch, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	opts = opts.WithDefaults()
	if err := opts.Validate(); telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}
	if err := job.Validate(); telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}

	cacheKey := matchResultCacheKey(job, opts)
	if !opts.ForceRefresh {
		if matches, ok := fm.cachedResult(spanCtx, cacheKey); ok {
			telemetry.RecordErrorAndStatus(span, nil)
			return matches, nil
		}
	}

	jobVector, err := fm.embedJob(spanCtx, job)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}

	matches, err := fm.scoreCandidates(spanCtx, job, jobVector, opts)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}

	domain.SortMatches(matches)
	if len(matches) > opts.MaxResults {
		matches = matches[:opts.MaxResults]
	}

	fm.storeResult(spanCtx, cacheKey, matches)
	fm.publishBatchComputed(spanCtx, job.ID, matches)
	RecordMatchBatchComputed(spanCtx, len(matches))

	return matches, nil
}

// embedJob vectorizes the job posting. A failure here makes the whole
// matching call unavailable: without the job vector nothing can be scored.
func (fm FindMatchesImpl) embedJob(ctx context.Context, job domain.Job) ([]float64, error) {
	jobText, err := fm.encoder.EncodeJob(job)
	if err != nil {
		return nil, domain.NewMatchingUnavailableErr(err)
	}

	vector, err := fm.gateway.Embed(ctx, jobText)
	if err != nil {
		return nil, domain.NewMatchingUnavailableErr(err)
	}
	RecordLLMTokensEmbedding(ctx, vector.TotalTokens)
	return vector.Vector, nil
}

// scoreCandidates streams the job's candidate pool through a bounded worker
// pool. Candidates whose embedding cannot be obtained are skipped; a vector
// dimension mismatch or a source failure aborts the whole batch.
func (fm FindMatchesImpl) scoreCandidates(ctx context.Context, job domain.Job, jobVector []float64, opts domain.MatchOptions) ([]domain.CandidateMatch, error) {
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	profiles, errCh := fm.candidates.StreamCandidates(streamCtx, job.ID)
	now := fm.timeProvider.Now()

	var (
		mu       sync.Mutex
		matches  []domain.CandidateMatch
		fatalErr error
	)

	var wg sync.WaitGroup
	for range fm.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for profile := range profiles {
				match, err := fm.scoreCandidate(streamCtx, job, profile, jobVector, opts.Weights, now)
				if err != nil {
					mu.Lock()
					if fatalErr == nil {
						fatalErr = err
					}
					mu.Unlock()
					cancel()
					return
				}
				if match == nil || match.Score < *opts.Threshold {
					continue
				}
				mu.Lock()
				matches = append(matches, *match)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if fatalErr != nil {
		return nil, fatalErr
	}
	if err := <-errCh; err != nil {
		return nil, err
	}
	// The deadline is all-or-nothing: once the context expires no partial
	// ranking leaves this function.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

// scoreCandidate scores one candidate. A nil match with a nil error means the
// candidate was skipped.
func (fm FindMatchesImpl) scoreCandidate(ctx context.Context, job domain.Job, profile domain.CandidateProfile, jobVector []float64, weights domain.MatchWeights, now time.Time) (*domain.CandidateMatch, error) {
	vector, ok, err := fm.candidateVector(ctx, profile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	similarity, err := domain.Similarity(jobVector, vector)
	if err != nil {
		return nil, err
	}

	match := domain.ScoreCandidate(job, profile, similarity, weights, now)
	return &match, nil
}

// candidateVector resolves the embedding vector for one candidate: the
// profile's pre-computed vector when it matches the configured dimension,
// the gateway otherwise. Embedding failures skip the candidate.
func (fm FindMatchesImpl) candidateVector(ctx context.Context, profile domain.CandidateProfile) ([]float64, bool, error) {
	if len(profile.Embedding) == fm.dimension && fm.dimension > 0 {
		RecordProfileVectorUsed(ctx)
		return profile.Embedding, true, nil
	}

	text, err := fm.encoder.EncodeCandidate(profile)
	if err != nil {
		fm.logger.Printf("Skipping candidate %s: encoding failed: %v", profile.ID, err)
		RecordCandidateSkipped(ctx)
		return nil, false, nil
	}

	vector, err := fm.gateway.Embed(ctx, text)
	if err != nil {
		if domain.IsEmbeddingFailure(err) {
			fm.logger.Printf("Skipping candidate %s: embedding failed: %v", profile.ID, err)
			RecordCandidateSkipped(ctx)
			return nil, false, nil
		}
		return nil, false, err
	}
	RecordLLMTokensEmbedding(ctx, vector.TotalTokens)
	return vector.Vector, true, nil
}

// cachedResult looks up a previously computed batch. Cache failures are
// treated as misses.
func (fm FindMatchesImpl) cachedResult(ctx context.Context, key string) ([]domain.CandidateMatch, bool) {
	payload, found, err := fm.resultCache.Get(ctx, key)
	if err != nil {
		fm.logger.Printf("Match result cache lookup failed, computing directly: %v", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var matches []domain.CandidateMatch
	if err := json.Unmarshal(payload, &matches); err != nil {
		fm.logger.Printf("Discarding unreadable cached match result: %v", err)
		return nil, false
	}
	return matches, true
}

// storeResult caches a freshly computed batch, best-effort.
func (fm FindMatchesImpl) storeResult(ctx context.Context, key string, matches []domain.CandidateMatch) {
	payload, err := json.Marshal(matches)
	if err != nil {
		fm.logger.Printf("Failed to serialize match result for caching: %v", err)
		return
	}
	if err := fm.resultCache.SetWithTTL(ctx, key, payload, fm.resultTTL); err != nil {
		fm.logger.Printf("Failed to cache match result: %v", err)
	}
}

// publishBatchComputed emits the match_batch.computed event, best-effort.
func (fm FindMatchesImpl) publishBatchComputed(ctx context.Context, jobID uuid.UUID, matches []domain.CandidateMatch) {
	payload, err := json.Marshal(struct {
		JobID   uuid.UUID               `json:"job_id"`
		Matches []domain.CandidateMatch `json:"matches"`
	}{JobID: jobID, Matches: matches})
	if err != nil {
		fm.logger.Printf("Failed to serialize match batch event: %v", err)
		return
	}

	event := domain.MatchBatchEvent{
		ID:        fm.createUUID(),
		EventType: MatchBatchComputedEventType,
		Topic:     fm.topic,
		JobID:     jobID,
		Payload:   payload,
	}
	if err := fm.publisher.PublishEvent(ctx, event); err != nil {
		fm.logger.Printf("Failed to publish match batch event: %v", err)
	}
}

// matchResultCacheKey fingerprints the job content together with the scoring
// options so any change to either computes a fresh batch. ForceRefresh is
// deliberately excluded: a forced run refreshes the same key.
func matchResultCacheKey(job domain.Job, opts domain.MatchOptions) string {
	requirements, _ := json.Marshal(job.Requirements)
	skills, _ := json.Marshal(job.Skills)
	scoring, _ := json.Marshal(struct {
		Threshold  *float64            `json:"threshold"`
		MaxResults int                 `json:"max_results"`
		Weights    domain.MatchWeights `json:"weights"`
	}{opts.Threshold, opts.MaxResults, opts.Weights})

	return common.Fingerprint("match",
		job.ID.String(),
		job.Title,
		job.Description,
		string(requirements),
		string(skills),
		string(scoring),
	)
}

// InitFindMatches initializes the FindMatches use case and registers it in
// the dependency container.
type InitFindMatches struct {
	Gateway      domain.EmbeddingGateway     `resolve:""`
	Candidates   domain.CandidateSource      `resolve:""`
	Cache        domain.CacheStore           `resolve:""`
	Publisher    domain.MatchEventPublisher  `resolve:""`
	Encoder      domain.EmbeddingTextEncoder `resolve:""`
	TimeService  domain.CurrentTimeProvider  `resolve:""`
	Logger       *log.Logger                 `resolve:""`
	ResultTTL    time.Duration               `config:"MATCH_RESULT_CACHE_TTL" default:"1h"`
	Workers      int                         `config:"MATCH_WORKERS" default:"4"`
	Dimension    int                         `config:"EMBEDDING_DIMENSION" default:"768"`
	EventsTopic  string                      `config:"MATCH_EVENTS_TOPIC" default:"match-events"`
}

// Initialize initializes the FindMatchesImpl use case and registers it in the dependency container.
func (ifm InitFindMatches) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[FindMatches](NewFindMatchesImpl(
		ifm.Gateway,
		ifm.Candidates,
		ifm.Cache,
		ifm.Publisher,
		ifm.Encoder,
		ifm.TimeService,
		ifm.Logger,
		ifm.ResultTTL,
		ifm.Workers,
		ifm.Dimension,
		ifm.EventsTopic,
	))
	return ctx, nil
}
