package matching

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidInput = errors.New("invalid matching input")

const (
	minTraitScore = 0
	maxTraitScore = 5
)

func ValidateCandidate(c CandidateProfile) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: candidate id is empty", ErrInvalidInput)
	}
	for t, v := range c.PersonalityScores {
		if _, ok := traitSoftSkills[t]; !ok {
			return fmt.Errorf("%w: candidate %s: unknown personality trait %q", ErrInvalidInput, c.ID, t)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: candidate %s: trait %s is not a finite number", ErrInvalidInput, c.ID, t)
		}
		if v < minTraitScore || v > maxTraitScore {
			return fmt.Errorf("%w: candidate %s: trait %s score %v outside [%d,%d]", ErrInvalidInput, c.ID, t, v, minTraitScore, maxTraitScore)
		}
	}
	return nil
}

func ValidateJob(j JobRequirement) error {
	if strings.TrimSpace(j.ID) == "" {
		return fmt.Errorf("%w: job id is empty", ErrInvalidInput)
	}
	return nil
}
