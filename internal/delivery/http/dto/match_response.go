package dto

import (
	"time"

	"job-match/internal/domain/match"
	"job-match/internal/domain/matching"
)

type MatchResultResponse struct {
	CandidateID      string   `json:"candidate_id"`
	JobID            string   `json:"job_id"`
	MatchPercentage  int      `json:"match_percentage"`
	SkillMatch       int      `json:"skill_match"`
	PersonalityMatch int      `json:"personality_match"`
	ExperienceMatch  int      `json:"experience_match"`
	Reasons          []string `json:"reasons"`
}

func FromMatchResult(r matching.MatchResult) MatchResultResponse {
	reasons := r.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return MatchResultResponse{
		CandidateID:      r.CandidateID,
		JobID:            r.JobID,
		MatchPercentage:  r.MatchPercentage,
		SkillMatch:       r.Subscores.SkillMatch,
		PersonalityMatch: r.Subscores.PersonalityMatch,
		ExperienceMatch:  r.Subscores.ExperienceMatch,
		Reasons:          reasons,
	}
}

func FromMatchResults(in []matching.MatchResult) []MatchResultResponse {
	out := make([]MatchResultResponse, 0, len(in))
	for _, r := range in {
		out = append(out, FromMatchResult(r))
	}
	return out
}

type RefreshJobResponse struct {
	EventID       string    `json:"event_id"`
	JobID         string    `json:"job_id"`
	MinPercentage *int      `json:"min_percentage,omitempty"`
	PublishedAt   time.Time `json:"published_at"`
}

func FromJobPublished(evt match.JobPublished) RefreshJobResponse {
	return RefreshJobResponse{
		EventID:       evt.EventID.String(),
		JobID:         evt.JobID,
		MinPercentage: evt.MinPercentage,
		PublishedAt:   evt.PublishedAt,
	}
}
