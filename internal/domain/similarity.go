package domain

import (
	"github.com/cleitonmarx/talentmatch/internal/common"
)

// SimilarityResult carries the blended similarity score between two embedding
// vectors plus the two underlying measures it was blended from. Confidence
// expresses how much the two measures agree.
type SimilarityResult struct {
	Score               float64
	Confidence          float64
	Cosine              float64
	EuclideanNormalized float64
}

// Similarity computes a bounded similarity score between two embedding
// vectors. It blends cosine similarity with a normalized euclidean measure
// (1 / (1 + distance)) and reports the ratio between the two as confidence.
// Vectors of different length fail with DimensionMismatchErr.
func Similarity(a, b []float64) (SimilarityResult, error) {
	if len(a) != len(b) {
		return SimilarityResult{}, NewDimensionMismatchErr(len(a), len(b))
	}

	cosine, ok := common.CosineSimilarity(a, b)
	if !ok {
		// Zero-norm vector: no direction to compare against.
		cosine = 0
	}

	euclidean := 1 / (1 + common.EuclideanDistance(a, b))

	result := SimilarityResult{
		Cosine:              cosine,
		EuclideanNormalized: euclidean,
		Score:               (cosine + euclidean) / 2,
	}

	result.Confidence = agreement(cosine, euclidean)
	return result, nil
}

// agreement returns min/max of the two measures, defined as 1.0 when both are
// exactly zero so the degenerate case does not divide by zero.
func agreement(x, y float64) float64 {
	if x == 0 && y == 0 {
		return 1.0
	}
	lo, hi := x, y
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi == 0 {
		return 0
	}
	return lo / hi
}
