package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportsFirstMissingField(t *testing.T) {
	cfg := Defaults()

	var missing MissingError
	require.ErrorAs(t, cfg.Validate(), &missing)
	assert.Equal(t, "OPENAI_API_KEY", missing.Field)
	assert.Equal(t, "OPENAI_API_KEY manquante", missing.Error())

	cfg.OpenAIAPIKey = "sk-test"
	require.ErrorAs(t, cfg.Validate(), &missing)
	assert.Equal(t, "ASST_ID", missing.Field)

	cfg.AssistantID = "asst_test"
	require.ErrorAs(t, cfg.Validate(), &missing)
	assert.Equal(t, "VECTOR_STORE_ID", missing.Field)

	cfg.VectorStoreID = "vs_test"
	assert.NoError(t, cfg.Validate())
}

func TestDefaultsPollContract(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, time.Second, cfg.PollInterval())
	assert.Equal(t, 30*time.Second, cfg.RunDeadline())
}
