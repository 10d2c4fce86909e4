package grid

import (
	"testing"

	"github.com/hazelcast/hazelcast-go-client/serialization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGridValueScalarsPassThrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
	}{
		{name: "nil", value: nil},
		{name: "string", value: "hello"},
		{name: "bool", value: true},
		{name: "float", value: 42.5},
		{name: "int", value: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := toGridValue(tt.value)

			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestToGridValueObjectsBecomeJSON(t *testing.T) {
	t.Parallel()

	got, err := toGridValue(map[string]any{"city": "Oslo", "pop": 700000.0})

	require.NoError(t, err)
	jsonValue, ok := got.(serialization.JSON)
	require.True(t, ok, "objects must be stored as HazelcastJsonValue")
	assert.JSONEq(t, `{"city":"Oslo","pop":700000}`, string(jsonValue))
}

func TestToGridValueArraysBecomeJSON(t *testing.T) {
	t.Parallel()

	got, err := toGridValue([]any{"a", 1.0, true})

	require.NoError(t, err)
	jsonValue, ok := got.(serialization.JSON)
	require.True(t, ok)
	assert.JSONEq(t, `["a",1,true]`, string(jsonValue))
}

func TestFromGridValueDecodesJSON(t *testing.T) {
	t.Parallel()

	decoded := fromGridValue(serialization.JSON(`{"city":"Oslo"}`))

	assert.Equal(t, map[string]any{"city": "Oslo"}, decoded)
}

func TestFromGridValueKeepsInvalidJSONAsText(t *testing.T) {
	t.Parallel()

	decoded := fromGridValue(serialization.JSON(`not json at all`))

	assert.Equal(t, "not json at all", decoded)
}

func TestFromGridValuePassesScalarsThrough(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", fromGridValue("plain"))
	assert.Equal(t, int64(9), fromGridValue(int64(9)))
	assert.Nil(t, fromGridValue(nil))
}

func TestGridValueRoundTrip(t *testing.T) {
	t.Parallel()

	original := map[string]any{"name": "orders", "open": true}

	stored, err := toGridValue(original)
	require.NoError(t, err)

	assert.Equal(t, original, fromGridValue(stored))
}
