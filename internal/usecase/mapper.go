package usecase

import (
	"job-match/internal/domain/matching"
	"job-match/internal/repository"
)

func candidateFromRepository(c repository.Candidate) matching.CandidateProfile {
	portfolio := make([]matching.PortfolioProject, 0, len(c.PortfolioProjects))
	for _, p := range c.PortfolioProjects {
		portfolio = append(portfolio, matching.PortfolioProject{Title: p.Title, Description: p.Description, URL: p.URL})
	}
	experience := make([]matching.ExperienceEntry, 0, len(c.Experience))
	for _, e := range c.Experience {
		experience = append(experience, matching.ExperienceEntry{Company: e.Company, Position: e.Position, Description: e.Description})
	}

	var scores matching.PersonalityScores
	if c.PersonalityScores != nil {
		scores = make(matching.PersonalityScores, len(c.PersonalityScores))
		for k, v := range c.PersonalityScores {
			scores[matching.Trait(k)] = v
		}
	}

	return matching.CandidateProfile{
		ID: c.ID,
		Skills: matching.Skills{
			Technical: c.TechnicalSkills,
			Soft:      c.SoftSkills,
		},
		EducationField:    c.EducationField,
		Department:        c.Department,
		PortfolioProjects: portfolio,
		ClubExperience:    c.ClubExperience,
		OtherExperience:   c.OtherExperience,
		Experience:        experience,
		PersonalityScores: scores,
	}
}

func jobFromRepository(j repository.JobRequirement) matching.JobRequirement {
	return matching.JobRequirement{
		ID:    j.ID,
		Title: j.Title,
		RequiredSkills: matching.Skills{
			Technical: j.RequiredTechnical,
			Soft:      j.RequiredSoft,
		},
		RequiredEducation:            j.RequiredEducation,
		RequiredExperienceDescriptor: j.RequiredExperience,
	}
}

func matchUpsertsFromResults(results []matching.MatchResult) []repository.JobMatchUpsert {
	out := make([]repository.JobMatchUpsert, 0, len(results))
	for _, r := range results {
		out = append(out, repository.JobMatchUpsert{
			CandidateID:      r.CandidateID,
			JobID:            r.JobID,
			MatchPercentage:  r.MatchPercentage,
			SkillMatch:       r.Subscores.SkillMatch,
			PersonalityMatch: r.Subscores.PersonalityMatch,
			ExperienceMatch:  r.Subscores.ExperienceMatch,
			Reasons:          r.Reasons,
		})
	}
	return out
}
