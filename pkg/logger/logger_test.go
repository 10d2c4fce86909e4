package logger

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeStructuredLogs(t *testing.T) { //nolint:paralleltest // mutates env and globals
	t.Setenv("UNSTRUCTURED_LOGS", "false")

	Initialize()

	require.NotNil(t, Get())
	assert.NotPanics(t, func() {
		Info("structured message", "key", "value")
	})
}

func TestInitializeUnstructuredLogs(t *testing.T) { //nolint:paralleltest // mutates env and globals
	t.Setenv("UNSTRUCTURED_LOGS", "true")

	Initialize()

	require.NotNil(t, Get())
	assert.NotPanics(t, func() {
		Infof("unstructured %s", "message")
	})
}

func TestInitializeDebugLevel(t *testing.T) { //nolint:paralleltest // mutates env and globals
	t.Setenv("UNSTRUCTURED_LOGS", "false")
	viper.Set("debug", true)
	t.Cleanup(func() { viper.Set("debug", false) })

	Initialize()

	require.NotNil(t, Get())
	assert.NotPanics(t, func() {
		Debug("debug message", "key", "value")
	})
}

func TestUnstructuredLogsEnvParsing(t *testing.T) { //nolint:paralleltest // mutates env
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{name: "true", value: "true", expected: true},
		{name: "one", value: "1", expected: true},
		{name: "false", value: "false", expected: false},
		{name: "garbage defaults to structured", value: "not-a-bool", expected: false},
		{name: "empty defaults to structured", value: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("UNSTRUCTURED_LOGS", tt.value)
			assert.Equal(t, tt.expected, unstructuredLogs())
		})
	}
}

func TestWithAttachesAttributes(t *testing.T) { //nolint:paralleltest // uses global logger
	Initialize()

	child := With("component", "test")
	require.NotNil(t, child)
	assert.NotPanics(t, func() {
		child.Info("message from child logger")
	})
}
