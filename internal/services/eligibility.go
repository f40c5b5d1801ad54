package services

import (
	"fmt"

	"github.com/skillpath/certificate-service/internal/models"
)

// Default certificate policy thresholds
const (
	DefaultCompletionThreshold = 1.0
	DefaultMinQuizForRequest   = 0.45
	DefaultMinQuizForAutoIssue = 0.90
)

// Policy holds the thresholds that decide whether a learner may get a certificate
type Policy struct {
	CompletionThreshold float64
	MinQuizForRequest   float64
	MinQuizForAutoIssue float64
}

// DefaultPolicy returns the platform's standard certificate policy
func DefaultPolicy() Policy {
	return Policy{
		CompletionThreshold: DefaultCompletionThreshold,
		MinQuizForRequest:   DefaultMinQuizForRequest,
		MinQuizForAutoIssue: DefaultMinQuizForAutoIssue,
	}
}

// Validate checks that every threshold is a ratio and that auto-issue is never easier than requesting
func (p Policy) Validate() error {
	thresholds := []struct {
		name  string
		value float64
	}{
		{"completion threshold", p.CompletionThreshold},
		{"minimum quiz average for request", p.MinQuizForRequest},
		{"minimum quiz average for auto-issue", p.MinQuizForAutoIssue},
	}
	for _, th := range thresholds {
		if th.value < 0 || th.value > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", th.name, th.value)
		}
	}
	if p.MinQuizForAutoIssue < p.MinQuizForRequest {
		return fmt.Errorf("minimum quiz average for auto-issue (%v) must not be lower than for request (%v)",
			p.MinQuizForAutoIssue, p.MinQuizForRequest)
	}
	return nil
}

// Evaluate maps a completion rate and quiz average to an eligibility outcome
//
// An incomplete course is ineligible whatever the quiz average. All comparisons are inclusive.
func (p Policy) Evaluate(completionRate, quizAverage float64) models.EligibilityOutcome {
	switch {
	case completionRate < p.CompletionThreshold:
		return models.EligibilityIneligible
	case quizAverage >= p.MinQuizForAutoIssue:
		return models.EligibilityAutoIssue
	case quizAverage >= p.MinQuizForRequest:
		return models.EligibilityRequestableApproval
	default:
		return models.EligibilityIneligible
	}
}
