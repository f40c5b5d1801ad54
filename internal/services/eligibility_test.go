package services

import (
	"testing"

	"github.com/skillpath/certificate-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPolicy_Evaluate(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name           string
		completionRate float64
		quizAverage    float64
		expected       models.EligibilityOutcome
	}{
		{name: "incomplete course with perfect quizzes", completionRate: 0.99, quizAverage: 1.0, expected: models.EligibilityIneligible},
		{name: "nothing done", completionRate: 0, quizAverage: 0, expected: models.EligibilityIneligible},
		{name: "auto-issue boundary is inclusive", completionRate: 1.0, quizAverage: 0.90, expected: models.EligibilityAutoIssue},
		{name: "perfect score", completionRate: 1.0, quizAverage: 1.0, expected: models.EligibilityAutoIssue},
		{name: "just below auto-issue", completionRate: 1.0, quizAverage: 0.89999, expected: models.EligibilityRequestableApproval},
		{name: "request boundary is inclusive", completionRate: 1.0, quizAverage: 0.45, expected: models.EligibilityRequestableApproval},
		{name: "just below request", completionRate: 1.0, quizAverage: 0.44999, expected: models.EligibilityIneligible},
		{name: "complete course without quizzes", completionRate: 1.0, quizAverage: 0, expected: models.EligibilityIneligible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, policy.Evaluate(tt.completionRate, tt.quizAverage))
		})
	}
}

func TestPolicy_Evaluate_IncompleteIsAlwaysIneligible(t *testing.T) {
	policy := DefaultPolicy()

	for completion := 0.0; completion < 1.0; completion += 0.05 {
		for quiz := 0.0; quiz <= 1.0; quiz += 0.05 {
			assert.Equal(t, models.EligibilityIneligible, policy.Evaluate(completion, quiz),
				"completion=%v quiz=%v", completion, quiz)
		}
	}
}

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name          string
		policy        Policy
		expectedError bool
	}{
		{name: "default policy", policy: DefaultPolicy(), expectedError: false},
		{name: "equal quiz thresholds", policy: Policy{CompletionThreshold: 1, MinQuizForRequest: 0.8, MinQuizForAutoIssue: 0.8}, expectedError: false},
		{name: "auto-issue below request", policy: Policy{CompletionThreshold: 1, MinQuizForRequest: 0.9, MinQuizForAutoIssue: 0.5}, expectedError: true},
		{name: "completion above one", policy: Policy{CompletionThreshold: 1.5, MinQuizForRequest: 0.45, MinQuizForAutoIssue: 0.9}, expectedError: true},
		{name: "negative request threshold", policy: Policy{CompletionThreshold: 1, MinQuizForRequest: -0.1, MinQuizForAutoIssue: 0.9}, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
