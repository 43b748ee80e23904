package matching

import (
	"math"
	"strings"
)

const (
	technicalSkillWeight = 50.0
	softSkillWeight      = 30.0
)

// ScoreSkills scores the overlap between the candidate's skills and the job's
// required skills. Technical overlap is worth up to 50 points and soft-skill
// overlap up to 30. An empty requirement list contributes nothing.
func ScoreSkills(candidate Skills, required Skills) (int, []string) {
	techFrac, techMatched := overlap(candidate.Technical, required.Technical)
	softFrac, softMatched := overlap(candidate.Soft, required.Soft)

	reasons := make([]string, 0, len(techMatched)+len(softMatched))
	for _, s := range techMatched {
		reasons = append(reasons, "matches technical skill: "+s)
	}
	for _, s := range softMatched {
		reasons = append(reasons, "matches soft skill: "+s)
	}

	total := techFrac*technicalSkillWeight + softFrac*softSkillWeight
	return clampInt(int(math.Round(total)), 0, 100), reasons
}

// overlap returns |have ∩ want| / |want| over normalized labels together with
// the matched labels of want, in want order.
func overlap(have, want []string) (float64, []string) {
	wantKeys, wantLabels := requiredSet(want)
	if len(wantKeys) == 0 {
		return 0, nil
	}

	haveSet := make(map[string]struct{}, len(have))
	for _, h := range have {
		k := normalizeSkill(h)
		if k == "" {
			continue
		}
		haveSet[k] = struct{}{}
	}

	matched := make([]string, 0)
	for i, k := range wantKeys {
		if _, ok := haveSet[k]; ok {
			matched = append(matched, wantLabels[i])
		}
	}
	return float64(len(matched)) / float64(len(wantKeys)), matched
}

// requiredSet normalizes a requirement list into distinct non-blank keys,
// keeping the first label seen for each key in list order.
func requiredSet(want []string) (keys, labels []string) {
	seen := make(map[string]struct{}, len(want))
	keys = make([]string, 0, len(want))
	labels = make([]string, 0, len(want))
	for _, w := range want {
		k := normalizeSkill(w)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
		labels = append(labels, strings.TrimSpace(w))
	}
	return keys, labels
}

func normalizeSkill(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
