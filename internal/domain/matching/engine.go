package matching

import (
	"math"
	"sort"
)

const DefaultMinPercentage = 50

const (
	skillWeight       = 0.5
	personalityWeight = 0.3
	experienceWeight  = 0.2
)

// Match scores one candidate against one job. Both rank entry points go
// through here, so a pair scores the same regardless of ranking direction.
func Match(c CandidateProfile, j JobRequirement) (MatchResult, error) {
	if err := ValidateCandidate(c); err != nil {
		return MatchResult{}, err
	}
	if err := ValidateJob(j); err != nil {
		return MatchResult{}, err
	}
	return calculate(c, j), nil
}

func calculate(c CandidateProfile, j JobRequirement) MatchResult {
	skillScore, skillReasons := ScoreSkills(c.Skills, j.RequiredSkills)
	personalityScore, personalityReasons := scorePersonality(c.PersonalityScores, j.RequiredSkills.Soft)
	experienceScore, experienceReasons := ScoreExperience(c, j)

	total := float64(skillScore)*skillWeight +
		float64(personalityScore)*personalityWeight +
		float64(experienceScore)*experienceWeight

	reasons := make([]string, 0, len(skillReasons)+len(personalityReasons)+len(experienceReasons))
	reasons = append(reasons, skillReasons...)
	reasons = append(reasons, personalityReasons...)
	reasons = append(reasons, experienceReasons...)

	return MatchResult{
		CandidateID:     c.ID,
		JobID:           j.ID,
		MatchPercentage: clampInt(int(math.Round(total)), 0, 100),
		Subscores: Subscores{
			SkillMatch:       skillScore,
			PersonalityMatch: personalityScore,
			ExperienceMatch:  experienceScore,
		},
		Reasons: reasons,
	}
}

func RankJobsForCandidate(c CandidateProfile, jobs []JobRequirement, minPercentage int) ([]MatchResult, error) {
	if err := ValidateCandidate(c); err != nil {
		return nil, err
	}
	for _, j := range jobs {
		if err := ValidateJob(j); err != nil {
			return nil, err
		}
	}

	results := make([]MatchResult, 0, len(jobs))
	for _, j := range jobs {
		results = append(results, calculate(c, j))
	}
	return FilterAndSort(results, minPercentage), nil
}

func RankCandidatesForJob(j JobRequirement, candidates []CandidateProfile, minPercentage int) ([]MatchResult, error) {
	if err := ValidateJob(j); err != nil {
		return nil, err
	}
	for _, c := range candidates {
		if err := ValidateCandidate(c); err != nil {
			return nil, err
		}
	}

	results := make([]MatchResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, calculate(c, j))
	}
	return FilterAndSort(results, minPercentage), nil
}

// FilterAndSort drops results below minPercentage and orders the rest by
// descending match percentage. Equal percentages keep their input order.
func FilterAndSort(results []MatchResult, minPercentage int) []MatchResult {
	out := make([]MatchResult, 0, len(results))
	for _, r := range results {
		if r.MatchPercentage < minPercentage {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, k int) bool {
		return out[i].MatchPercentage > out[k].MatchPercentage
	})
	return out
}
