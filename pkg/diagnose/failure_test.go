package diagnose

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickyError struct{}

func (panickyError) Error() string { panic("Error() exploded") }

type silentError struct{}

func (silentError) Error() string { return "" }

type loopError struct{ msg string }

func (e *loopError) Error() string { return e.msg }
func (e *loopError) Unwrap() error { return e }

func TestFlattenNil(t *testing.T) {
	t.Parallel()

	assert.Empty(t, flatten(nil))
}

func TestFlattenSingleError(t *testing.T) {
	t.Parallel()

	layers := flatten(errors.New("plain failure"))

	require.Len(t, layers, 1)
	assert.Equal(t, "plain failure", layers[0].message)
	assert.Equal(t, "errorString", layers[0].typeTag)
}

func TestFlattenWrappedChain(t *testing.T) {
	t.Parallel()

	inner := errors.New("root cause")
	mid := fmt.Errorf("mid: %w", inner)
	outer := fmt.Errorf("outer: %w", mid)

	layers := flatten(outer)

	require.Len(t, layers, 3)
	assert.Equal(t, "outer: mid: root cause", layers[0].message)
	assert.Equal(t, "mid: root cause", layers[1].message)
	assert.Equal(t, "root cause", layers[2].message)
}

func TestFlattenJoinedErrors(t *testing.T) {
	t.Parallel()

	joined := errors.Join(errors.New("first"), errors.New("second"))

	layers := flatten(joined)

	require.Len(t, layers, 3)
	assert.Equal(t, "first", layers[1].message)
	assert.Equal(t, "second", layers[2].message)
}

func TestFlattenBoundsSelfReferentialChain(t *testing.T) {
	t.Parallel()

	layers := flatten(&loopError{msg: "loops forever"})

	assert.Len(t, layers, maxLayers)
}

func TestFlattenTruncatesToFirstLine(t *testing.T) {
	t.Parallel()

	err := errors.New("first line\n\tat com.hazelcast.spi.Invocation(Invocation.java:42)\nsecond line")

	layers := flatten(err)

	require.Len(t, layers, 1)
	assert.Equal(t, "first line", layers[0].message)
}

func TestFlattenSurvivesPanickingError(t *testing.T) {
	t.Parallel()

	var layers []layer
	assert.NotPanics(t, func() {
		layers = flatten(panickyError{})
	})
	require.Len(t, layers, 1)
	assert.Empty(t, layers[0].message)
	assert.Equal(t, "panickyError", layers[0].typeTag)
}

func TestPrimaryMessageSkipsEmptyLayers(t *testing.T) {
	t.Parallel()

	outer := fmt.Errorf("%w", errors.New("the real message"))
	layers := []layer{
		{message: "", typeTag: "silentError"},
		{message: "the real message", typeTag: "errorString"},
	}

	assert.Equal(t, "the real message", primaryMessage(layers))
	assert.Equal(t, "the real message", primaryMessage(flatten(outer)))
	assert.Empty(t, primaryMessage(nil))
}

func TestTypeTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "stdlib error", err: errors.New("x"), want: "errorString"},
		{name: "wrapped error", err: fmt.Errorf("x: %w", errors.New("y")), want: "wrapError"},
		{name: "value type", err: silentError{}, want: "silentError"},
		{name: "pointer type", err: &loopError{}, want: "loopError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, typeTag(tt.err))
		})
	}
}

func TestScrub(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain message untouched",
			in:   "Map 'users' does not exist",
			want: "Map 'users' does not exist",
		},
		{
			name: "stack frame remnant cut",
			in:   "boom at com.hazelcast.spi.impl.Invocation(Invocation.java:42)",
			want: "boom",
		},
		{
			name: "qualified exception reduced to class name",
			in:   "java.lang.ClassNotFoundException: example payload",
			want: "ClassNotFoundException: example payload",
		},
		{
			name: "hazelcast package path reduced",
			in:   "com.hazelcast.core.HazelcastException was thrown",
			want: "HazelcastException was thrown",
		},
		{
			name: "bare java.lang stripped",
			in:   "unexpected java.lang failure",
			want: "unexpected lang failure",
		},
		{
			name: "goroutine dump cut",
			in:   "worker crashed goroutine 12 [running]",
			want: "worker crashed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, scrub(tt.in))
		})
	}
}
