package matching

import "strings"

const (
	portfolioPoints       = 30
	clubExperiencePoints  = 20
	otherExperiencePoints = 20
	educationPoints       = 30
)

// ScoreExperience adds fixed points for each experience signal the candidate
// shows. There is no partial credit; the four terms sum to 100.
func ScoreExperience(c CandidateProfile, j JobRequirement) (int, []string) {
	score := 0
	reasons := make([]string, 0, 5)

	if len(c.PortfolioProjects) > 0 {
		score += portfolioPoints
		reasons = append(reasons, "has portfolio projects")
	}
	if hasText(c.ClubExperience) {
		score += clubExperiencePoints
		reasons = append(reasons, "has club experience")
	}
	if hasText(c.OtherExperience) {
		score += otherExperiencePoints
		reasons = append(reasons, "has other experience")
	}
	if educationMatches(j.RequiredEducation, c.EducationField, c.Department) {
		score += educationPoints
		reasons = append(reasons, "meets education requirement: "+strings.TrimSpace(j.RequiredEducation))
	}
	if experienceMatches(j.RequiredExperienceDescriptor, c) {
		reasons = append(reasons, "meets experience requirement")
	}

	return clampInt(score, 0, 100), reasons
}

func educationMatches(required string, fields ...string) bool {
	req := strings.ToLower(strings.TrimSpace(required))
	if req == "" {
		return false
	}
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if strings.Contains(f, req) || strings.Contains(req, f) {
			return true
		}
	}
	return false
}

func experienceMatches(descriptor string, c CandidateProfile) bool {
	d := strings.ToLower(strings.TrimSpace(descriptor))
	if d == "" {
		return false
	}

	texts := make([]string, 0, len(c.Experience)+2)
	if c.ClubExperience != nil {
		texts = append(texts, *c.ClubExperience)
	}
	if c.OtherExperience != nil {
		texts = append(texts, *c.OtherExperience)
	}
	for _, e := range c.Experience {
		texts = append(texts, e.Description)
	}

	for _, t := range texts {
		if strings.Contains(strings.ToLower(t), d) {
			return true
		}
	}
	return false
}

func hasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
