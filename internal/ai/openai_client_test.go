package ai

import (
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
)

// Классификация статусов SDK фиксируется явно: терминальные переходят один в
// один, промежуточные и неизвестные сводятся к RunInProgress.
func TestMapRunStatus(t *testing.T) {
	cases := map[openai.RunStatus]RunStatus{
		openai.RunStatusQueued:         RunQueued,
		openai.RunStatusInProgress:     RunInProgress,
		openai.RunStatusCompleted:      RunCompleted,
		openai.RunStatusFailed:         RunFailed,
		openai.RunStatusCancelled:      RunCancelled,
		openai.RunStatusExpired:        RunExpired,
		openai.RunStatusIncomplete:     RunIncomplete,
		openai.RunStatusRequiresAction: RunInProgress,
		openai.RunStatusCancelling:     RunInProgress,
		openai.RunStatus("новый статус"): RunInProgress,
	}
	for in, want := range cases {
		assert.Equal(t, want, mapRunStatus(in), "status=%s", in)
	}
}

func TestMapRunStatusTerminality(t *testing.T) {
	// Опрос продолжается ровно до терминального статуса.
	assert.True(t, mapRunStatus(openai.RunStatusCompleted).Terminal())
	assert.True(t, mapRunStatus(openai.RunStatusFailed).Failure())
	assert.False(t, mapRunStatus(openai.RunStatusCancelling).Terminal())
	assert.False(t, mapRunStatus(openai.RunStatusRequiresAction).Terminal())
}
