package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureMessageTotality(t *testing.T) {
	outcomes := []Outcome{
		OutcomeThrottled,
		OutcomeModelNotReady,
		OutcomeInvalidFormat,
		OutcomeUnknownError,
		Outcome("weird"), // 未登錄的結果退回通用訊息
		Outcome(""),
	}

	for _, outcome := range outcomes {
		msg := FailureMessage(outcome)
		assert.NotEmpty(t, msg, "outcome=%q", outcome)
	}
}

func TestFailureMessageDistinct(t *testing.T) {
	assert.NotEqual(t, FailureMessage(OutcomeThrottled), FailureMessage(OutcomeModelNotReady))
	assert.NotEqual(t, FailureMessage(OutcomeThrottled), FailureMessage(OutcomeInvalidFormat))
	assert.Equal(t, genericFailureMessage, FailureMessage(Outcome("weird")))
}
