package matching

import (
	"math"
	"sort"
)

// personalityScale converts the per-trait 0-5 scale to a percentage.
const personalityScale = 20.0

var traitSoftSkills = map[Trait][]string{
	TraitExtraversion:      {"communication", "teamwork", "leadership"},
	TraitAgreeableness:     {"teamwork", "communication"},
	TraitConscientiousness: {"resilience", "responsibility"},
	TraitNeuroticism:       {"resilience"},
	TraitOpenness:          {"creativity", "learning ability"},
}

// traitOrder fixes iteration order over traitSoftSkills so reasons are stable.
var traitOrder = []Trait{
	TraitExtraversion,
	TraitAgreeableness,
	TraitConscientiousness,
	TraitNeuroticism,
	TraitOpenness,
}

// TraitsForSoftSkill lists the traits whose mapped soft skills contain skill.
func TraitsForSoftSkill(skill string) []Trait {
	k := normalizeSkill(skill)
	out := make([]Trait, 0, 2)
	for _, t := range traitOrder {
		for _, s := range traitSoftSkills[t] {
			if s == k {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// KnownTraits returns the trait keys accepted in PersonalityScores, sorted.
func KnownTraits() []Trait {
	out := make([]Trait, 0, len(traitSoftSkills))
	for t := range traitSoftSkills {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func ScorePersonality(scores PersonalityScores, requiredSoft []string) int {
	s, _ := scorePersonality(scores, requiredSoft)
	return s
}

// scorePersonality averages over the same distinct soft-skill set that
// ScoreSkills compares against.
func scorePersonality(scores PersonalityScores, requiredSoft []string) (int, []string) {
	keys, labels := requiredSet(requiredSoft)
	if scores == nil || len(keys) == 0 {
		return 0, nil
	}

	var sum float64
	reasons := make([]string, 0)
	for i, k := range keys {
		for _, t := range TraitsForSoftSkill(k) {
			v := scores[t]
			sum += v
			if v > 0 {
				reasons = append(reasons, "personality trait "+string(t)+" supports: "+labels[i])
			}
		}
	}

	pct := (sum / float64(len(keys))) * personalityScale
	return clampInt(int(math.Round(pct)), 0, 100), reasons
}
