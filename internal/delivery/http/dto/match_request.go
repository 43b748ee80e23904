package dto

import (
	"errors"

	"job-match/internal/domain/matching"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type PortfolioProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"omitempty,url"`
}

type ExperienceEntryRequest struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Description string `json:"description"`
}

type CandidateRequest struct {
	ID                string                    `json:"id" validate:"required"`
	TechnicalSkills   []string                  `json:"technical_skills"`
	SoftSkills        []string                  `json:"soft_skills"`
	EducationField    string                    `json:"education_field"`
	Department        string                    `json:"department"`
	PortfolioProjects []PortfolioProjectRequest `json:"portfolio_projects" validate:"dive"`
	ClubExperience    *string                   `json:"club_experience"`
	OtherExperience   *string                   `json:"other_experience"`
	Experience        []ExperienceEntryRequest  `json:"experience"`
	PersonalityScores map[string]float64        `json:"personality_scores" validate:"omitempty,dive,keys,oneof=extraversion agreeableness conscientiousness neuroticism openness,endkeys,gte=0,lte=5"`
}

type JobRequest struct {
	ID                 string   `json:"id" validate:"required"`
	Title              string   `json:"title"`
	RequiredTechnical  []string `json:"required_technical"`
	RequiredSoft       []string `json:"required_soft"`
	RequiredEducation  string   `json:"required_education"`
	RequiredExperience string   `json:"required_experience"`
}

type MatchRequest struct {
	Candidate CandidateRequest `json:"candidate"`
	Job       JobRequest       `json:"job"`
}

type RankJobsRequest struct {
	Candidate     CandidateRequest `json:"candidate"`
	Jobs          []JobRequest     `json:"jobs" validate:"dive"`
	MinPercentage *int             `json:"min_percentage" validate:"omitempty,gte=0,lte=100"`
}

type RankCandidatesRequest struct {
	Job           JobRequest         `json:"job"`
	Candidates    []CandidateRequest `json:"candidates" validate:"dive"`
	MinPercentage *int               `json:"min_percentage" validate:"omitempty,gte=0,lte=100"`
}

type RefreshJobRequest struct {
	MinPercentage *int `json:"min_percentage" validate:"omitempty,gte=0,lte=100"`
}

func (r *MatchRequest) Validate() error          { return validate.Struct(r) }
func (r *RankJobsRequest) Validate() error       { return validate.Struct(r) }
func (r *RankCandidatesRequest) Validate() error { return validate.Struct(r) }
func (r *RefreshJobRequest) Validate() error     { return validate.Struct(r) }

// FieldError is one failed validation rule, addressed by its JSON-ish path.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationErrors flattens a validator error for the response body. Errors
// that did not come from the validator yield nil.
func ValidationErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Namespace(), Rule: fe.Tag()})
	}
	return out
}

func (r CandidateRequest) ToDomain() matching.CandidateProfile {
	portfolio := make([]matching.PortfolioProject, 0, len(r.PortfolioProjects))
	for _, p := range r.PortfolioProjects {
		portfolio = append(portfolio, matching.PortfolioProject{Title: p.Title, Description: p.Description, URL: p.URL})
	}
	experience := make([]matching.ExperienceEntry, 0, len(r.Experience))
	for _, e := range r.Experience {
		experience = append(experience, matching.ExperienceEntry{Company: e.Company, Position: e.Position, Description: e.Description})
	}

	var scores matching.PersonalityScores
	if r.PersonalityScores != nil {
		scores = make(matching.PersonalityScores, len(r.PersonalityScores))
		for k, v := range r.PersonalityScores {
			scores[matching.Trait(k)] = v
		}
	}

	return matching.CandidateProfile{
		ID:                r.ID,
		Skills:            matching.Skills{Technical: r.TechnicalSkills, Soft: r.SoftSkills},
		EducationField:    r.EducationField,
		Department:        r.Department,
		PortfolioProjects: portfolio,
		ClubExperience:    r.ClubExperience,
		OtherExperience:   r.OtherExperience,
		Experience:        experience,
		PersonalityScores: scores,
	}
}

func (r JobRequest) ToDomain() matching.JobRequirement {
	return matching.JobRequirement{
		ID:                           r.ID,
		Title:                        r.Title,
		RequiredSkills:               matching.Skills{Technical: r.RequiredTechnical, Soft: r.RequiredSoft},
		RequiredEducation:            r.RequiredEducation,
		RequiredExperienceDescriptor: r.RequiredExperience,
	}
}

func CandidatesToDomain(in []CandidateRequest) []matching.CandidateProfile {
	out := make([]matching.CandidateProfile, 0, len(in))
	for _, c := range in {
		out = append(out, c.ToDomain())
	}
	return out
}

func JobsToDomain(in []JobRequest) []matching.JobRequirement {
	out := make([]matching.JobRequirement, 0, len(in))
	for _, j := range in {
		out = append(out, j.ToDomain())
	}
	return out
}

// SeedRequest is the file payload for loading profiles into the store.
type SeedRequest struct {
	Candidates []CandidateRequest `json:"candidates" validate:"dive"`
	Jobs       []JobRequest       `json:"jobs" validate:"dive"`
}

func (r *SeedRequest) Validate() error { return validate.Struct(r) }
