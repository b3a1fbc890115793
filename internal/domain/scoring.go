package domain

import (
	"strings"
	"time"
)

// scoring.go holds the pure structured-scoring functions. Each returns a
// ratio in [0, 1] and is deterministic for fixed inputs and a fixed now.

// SkillMatchRatio returns the share of required skills the candidate covers.
// An empty requirement set is trivially satisfied and scores 1.0.
func SkillMatchRatio(candidateSkills, requiredSkills []string) float64 {
	return overlapRatio(candidateSkills, requiredSkills)
}

// ExperienceMatchRatio compares the candidate's total years of experience
// against the required years, capped at 1.0. Zero required years scores 1.0.
func ExperienceMatchRatio(profile CandidateProfile, requiredYears float64, now time.Time) float64 {
	if requiredYears <= 0 {
		return 1.0
	}
	ratio := profile.TotalYearsExperience(now) / requiredYears
	if ratio > 1.0 {
		return 1.0
	}
	return ratio
}

// EducationMatchRatio returns the share of required qualifications the
// candidate holds. An empty requirement set scores 1.0.
func EducationMatchRatio(candidateQualifications, requiredQualifications []string) float64 {
	return overlapRatio(candidateQualifications, requiredQualifications)
}

// overlapRatio computes |candidate ∩ required| / |required| over normalized
// terms. Duplicate required terms count once.
func overlapRatio(candidate, required []string) float64 {
	requiredSet := normalizeTermSet(required)
	if len(requiredSet) == 0 {
		return 1.0
	}

	candidateSet := normalizeTermSet(candidate)
	overlap := 0
	for term := range requiredSet {
		if candidateSet[term] {
			overlap++
		}
	}
	return float64(overlap) / float64(len(requiredSet))
}

// normalizeTermSet lowercases and trims terms, dropping empties.
func normalizeTermSet(terms []string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, term := range terms {
		normalized := strings.ToLower(strings.TrimSpace(term))
		if normalized != "" {
			set[normalized] = true
		}
	}
	return set
}
