package matching

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func exampleCandidate() CandidateProfile {
	return CandidateProfile{
		ID: "cand-1",
		Skills: Skills{
			Technical: []string{"React", "Node.js"},
			Soft:      []string{"teamwork"},
		},
		EducationField:    "Computer Science",
		PortfolioProjects: []PortfolioProject{{Title: "Todo app"}},
	}
}

func exampleJob() JobRequirement {
	return JobRequirement{
		ID: "job-1",
		RequiredSkills: Skills{
			Technical: []string{"React", "TypeScript"},
			Soft:      []string{"teamwork", "leadership"},
		},
		RequiredEducation: "Computer Science",
	}
}

func strongCandidate(id string) CandidateProfile {
	return CandidateProfile{
		ID: id,
		Skills: Skills{
			Technical: []string{"Go", "PostgreSQL"},
			Soft:      []string{"teamwork", "communication"},
		},
		Department:        "Computer Science and Engineering",
		PortfolioProjects: []PortfolioProject{{Title: "matcher"}},
		ClubExperience:    strPtr("chess club treasurer"),
		OtherExperience:   strPtr(""),
		PersonalityScores: PersonalityScores{
			TraitExtraversion:  4,
			TraitAgreeableness: 4,
		},
	}
}

func backendJob(id string) JobRequirement {
	return JobRequirement{
		ID: id,
		RequiredSkills: Skills{
			Technical: []string{"go", "postgresql"},
			Soft:      []string{"teamwork", "communication"},
		},
		RequiredEducation: "computer science",
	}
}

func TestMatch_ExampleScenario(t *testing.T) {
	res, err := Match(exampleCandidate(), exampleJob())
	require.NoError(t, err)

	assert.Equal(t, "cand-1", res.CandidateID)
	assert.Equal(t, "job-1", res.JobID)
	assert.Equal(t, Subscores{SkillMatch: 40, PersonalityMatch: 0, ExperienceMatch: 60}, res.Subscores)
	assert.Equal(t, 32, res.MatchPercentage)
	assert.Equal(t, []string{
		"matches technical skill: React",
		"matches soft skill: teamwork",
		"has portfolio projects",
		"meets education requirement: Computer Science",
	}, res.Reasons)
}

func TestRankJobsForCandidate_ExampleBelowDefaultThreshold(t *testing.T) {
	out, err := RankJobsForCandidate(exampleCandidate(), []JobRequirement{exampleJob()}, DefaultMinPercentage)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NotNil(t, out)
}

func TestMatch_StrongCandidate(t *testing.T) {
	res, err := Match(strongCandidate("c"), backendJob("j"))
	require.NoError(t, err)

	assert.Equal(t, 80, res.Subscores.SkillMatch)
	assert.Equal(t, 100, res.Subscores.PersonalityMatch)
	assert.Equal(t, 80, res.Subscores.ExperienceMatch)
	assert.Equal(t, 86, res.MatchPercentage)
}

func TestMatch_Deterministic(t *testing.T) {
	c := strongCandidate("c")
	j := backendJob("j")

	first, err := Match(c, j)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Match(c, j)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMatch_DoesNotMutateInputs(t *testing.T) {
	c := strongCandidate("c")
	j := backendJob("j")
	tech := append([]string(nil), j.RequiredSkills.Technical...)

	_, err := Match(c, j)
	require.NoError(t, err)
	assert.Equal(t, tech, j.RequiredSkills.Technical)
	assert.Len(t, c.PersonalityScores, 2)
}

func TestMatch_Bounds(t *testing.T) {
	candidates := []CandidateProfile{
		{ID: "empty"},
		exampleCandidate(),
		strongCandidate("strong"),
		{
			ID:                "max-traits",
			PersonalityScores: PersonalityScores{TraitExtraversion: 5, TraitAgreeableness: 5, TraitConscientiousness: 5, TraitNeuroticism: 5, TraitOpenness: 5},
		},
	}
	jobs := []JobRequirement{
		{ID: "empty"},
		exampleJob(),
		backendJob("backend"),
		{ID: "soft-only", RequiredSkills: Skills{Soft: []string{"teamwork", "resilience"}}},
	}

	for _, c := range candidates {
		for _, j := range jobs {
			res, err := Match(c, j)
			require.NoError(t, err)
			for _, v := range []int{res.MatchPercentage, res.Subscores.SkillMatch, res.Subscores.PersonalityMatch, res.Subscores.ExperienceMatch} {
				assert.GreaterOrEqual(t, v, 0, "%s/%s", c.ID, j.ID)
				assert.LessOrEqual(t, v, 100, "%s/%s", c.ID, j.ID)
			}
		}
	}
}

func TestRank_Symmetry(t *testing.T) {
	c := strongCandidate("c")
	j := backendJob("j")

	byJobs, err := RankJobsForCandidate(c, []JobRequirement{j}, 0)
	require.NoError(t, err)
	byCandidates, err := RankCandidatesForJob(j, []CandidateProfile{c}, 0)
	require.NoError(t, err)

	require.Len(t, byJobs, 1)
	require.Len(t, byCandidates, 1)
	assert.Equal(t, byJobs[0], byCandidates[0])
}

func TestRankJobsForCandidate_ThresholdAndOrder(t *testing.T) {
	c := strongCandidate("c")
	jobs := []JobRequirement{
		exampleJob(),
		backendJob("backend-a"),
		{ID: "go-only", RequiredSkills: Skills{Technical: []string{"Go"}}, RequiredEducation: "Computer Science"},
		backendJob("backend-b"),
	}

	out, err := RankJobsForCandidate(c, jobs, 70)
	require.NoError(t, err)

	for _, r := range out {
		assert.GreaterOrEqual(t, r.MatchPercentage, 70)
	}
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].MatchPercentage, out[i].MatchPercentage)
	}

	require.Len(t, out, 2)
	assert.Equal(t, "backend-a", out[0].JobID)
	assert.Equal(t, "backend-b", out[1].JobID)
}

func TestRankCandidatesForJob_SortsDescending(t *testing.T) {
	j := backendJob("j")
	weak := exampleCandidate()
	weak.ID = "weak"
	candidates := []CandidateProfile{weak, strongCandidate("strong")}

	out, err := RankCandidatesForJob(j, candidates, 0)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "strong", out[0].CandidateID)
	assert.Equal(t, "weak", out[1].CandidateID)
}

func TestRank_EmptyInputs(t *testing.T) {
	out, err := RankJobsForCandidate(strongCandidate("c"), nil, DefaultMinPercentage)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	out, err = RankCandidatesForJob(backendJob("j"), []CandidateProfile{}, DefaultMinPercentage)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestRank_RejectsInvalidCandidate(t *testing.T) {
	bad := strongCandidate("bad")
	bad.PersonalityScores[TraitOpenness] = math.NaN()

	_, err := RankCandidatesForJob(backendJob("j"), []CandidateProfile{strongCandidate("ok"), bad}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestFilterAndSort_StableOnTies(t *testing.T) {
	in := []MatchResult{
		{JobID: "a", MatchPercentage: 60},
		{JobID: "b", MatchPercentage: 80},
		{JobID: "c", MatchPercentage: 60},
		{JobID: "d", MatchPercentage: 40},
		{JobID: "e", MatchPercentage: 80},
	}

	out := FilterAndSort(in, 50)

	ids := make([]string, 0, len(out))
	for _, r := range out {
		ids = append(ids, r.JobID)
	}
	assert.Equal(t, []string{"b", "e", "a", "c"}, ids)
	assert.Equal(t, "a", in[0].JobID)
}
