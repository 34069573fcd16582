package session

import (
	"context"
	"testing"

	"QHSEAssistant/internal/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(stub *ai.StubClient) *Manager {
	return New(stub, "instruction de test", zap.NewNop().Sugar())
}

func TestOpenOrResumeEchoesHandle(t *testing.T) {
	stub := ai.NewStubClient()
	m := newTestManager(stub)

	id, err := m.OpenOrResume(context.Background(), "thread_prev")
	require.NoError(t, err)
	assert.Equal(t, "thread_prev", id)
	// Переданный handle доверяем как есть: ни одного удалённого вызова.
	assert.Equal(t, 0, stub.Calls)
}

func TestOpenOrResumeCreatesThread(t *testing.T) {
	stub := ai.NewStubClient()
	m := newTestManager(stub)

	id, err := m.OpenOrResume(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "thread_stub", id)
	assert.Equal(t, 1, stub.ThreadCalls)
}

func TestAppendUserMessagePartOrder(t *testing.T) {
	stub := ai.NewStubClient()
	m := newTestManager(stub)

	img := ai.ImageFilePart{FileID: "file_1"}
	require.NoError(t, m.AppendUserMessage(context.Background(), "th", "contexte chantier", img))

	require.Len(t, stub.LastParts, 3)
	assert.Equal(t, ai.TextPart{Text: "instruction de test"}, stub.LastParts[0])
	assert.Equal(t, ai.TextPart{Text: "contexte chantier"}, stub.LastParts[1])
	assert.Equal(t, img, stub.LastParts[2])
}

func TestAppendUserMessageSkipsEmptyParts(t *testing.T) {
	stub := ai.NewStubClient()
	m := newTestManager(stub)

	require.NoError(t, m.AppendUserMessage(context.Background(), "th", "  ", nil))
	require.Len(t, stub.LastParts, 1)
	assert.Equal(t, ai.TextPart{Text: "instruction de test"}, stub.LastParts[0])
}
