package matching

type Trait string

const (
	TraitExtraversion      Trait = "extraversion"
	TraitAgreeableness     Trait = "agreeableness"
	TraitConscientiousness Trait = "conscientiousness"
	TraitNeuroticism       Trait = "neuroticism"
	TraitOpenness          Trait = "openness"
)

// PersonalityScores holds Likert-scale (1-5) results of the personality
// assessment. A nil map means the candidate has not taken it.
type PersonalityScores map[Trait]float64

type Skills struct {
	Technical []string
	Soft      []string
}

type PortfolioProject struct {
	Title       string
	Description string
	URL         string
}

type ExperienceEntry struct {
	Company     string
	Position    string
	Description string
}

type CandidateProfile struct {
	ID                string
	Skills            Skills
	EducationField    string
	Department        string
	PortfolioProjects []PortfolioProject
	ClubExperience    *string
	OtherExperience   *string
	Experience        []ExperienceEntry
	PersonalityScores PersonalityScores
}

type JobRequirement struct {
	ID                           string
	Title                        string
	RequiredSkills               Skills
	RequiredEducation            string
	RequiredExperienceDescriptor string
}

type Subscores struct {
	SkillMatch       int
	PersonalityMatch int
	ExperienceMatch  int
}

type MatchResult struct {
	CandidateID     string
	JobID           string
	MatchPercentage int
	Subscores       Subscores
	Reasons         []string
}
