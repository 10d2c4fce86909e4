package diagnose

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hazelcast/hazelcast-go-client/hzerrors"
)

// failureInfo is the classified view of one failure: everything a rule
// needs to match and render.
type failureInfo struct {
	err       error
	operation string
	layers    []layer
	primary   string // first non-empty single-line message in the chain
	lower     string // lowercased primary
}

// rule pairs a predicate with its renderer. Rules are evaluated in order,
// first match wins; reordering changes which category claims messages that
// satisfy several predicates.
type rule struct {
	name   string
	match  func(f *failureInfo) bool
	render func(ctx context.Context, f *failureInfo, cluster StructureLister, listTimeout time.Duration) string
}

var rules = []rule{
	{name: "structure-not-found", match: matchStructureNotFound, render: renderStructureNotFound},
	{name: "connection", match: matchConnection, render: renderConnection},
	{name: "sql", match: matchSQL, render: renderSQL},
	{name: "serialization", match: matchSerialization, render: renderSerialization},
	{name: "timeout", match: matchTimeout, render: renderTimeout},
	{name: "generic", match: matchAny, render: renderGeneric},
}

func containsAny(s string, indicators []string) bool {
	for _, ind := range indicators {
		if strings.Contains(s, ind) {
			return true
		}
	}
	return false
}

// structureRefPattern recognizes a structure kind followed by a quoted name,
// e.g. "Map 'users'" or "Object 'orders'". Longer kind words come first so
// the submatch reports them whole.
var structureRefPattern = regexp.MustCompile(
	`(?i)\b(multimap|replicated ?map|map|queue|topic|set|list|ringbuffer|cache|mapping|distributed object|object|structure)\s+'([^']+)'`)

var quotedNamePattern = regexp.MustCompile(`'([^']+)'`)

func matchStructureNotFound(f *failureInfo) bool {
	if strings.Contains(f.lower, "does not exist") {
		return true
	}
	return strings.Contains(f.lower, "not found") && structureRefPattern.MatchString(f.primary)
}

// extractStructure pulls the kind word and quoted name out of the message.
// Best effort; either may come back empty.
func extractStructure(primary string) (kind, name string) {
	if m := structureRefPattern.FindStringSubmatch(primary); m != nil {
		return capitalize(m[1]), m[2]
	}
	if m := quotedNamePattern.FindStringSubmatch(primary); m != nil {
		return "Structure", m[1]
	}
	return "", ""
}

func capitalize(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func renderStructureNotFound(ctx context.Context, f *failureInfo, cluster StructureLister, listTimeout time.Duration) string {
	var b strings.Builder
	kind, name := extractStructure(f.primary)
	if name != "" {
		fmt.Fprintf(&b, "%s '%s' not found for operation '%s'.", kind, name, f.operation)
	} else {
		fmt.Fprintf(&b, "Structure not found for operation '%s'.", f.operation)
	}

	names, ok := listStructureNames(ctx, cluster, listTimeout)
	if !ok {
		return b.String()
	}
	if len(names) == 0 {
		b.WriteString(" No structures currently exist on the cluster.")
	} else {
		fmt.Fprintf(&b, " Existing structures: %s.", strings.Join(names, ", "))
	}
	return b.String()
}

var connectionIndicators = []string{
	"connection refused",
	"not connected",
	"client is not active",
	"client not active",
	"no connection",
	"connection reset",
	"connection closed",
	"broken pipe",
	"no such host",
}

func matchConnection(f *failureInfo) bool {
	if errors.Is(f.err, hzerrors.ErrClientNotActive) || errors.Is(f.err, hzerrors.ErrIO) {
		return true
	}
	return containsAny(f.lower, connectionIndicators)
}

func renderConnection(_ context.Context, f *failureInfo, _ StructureLister, _ time.Duration) string {
	if f.primary == "" {
		return fmt.Sprintf("Not connected to the cluster. Operation '%s' could not be completed.", f.operation)
	}
	return fmt.Sprintf("Not connected to the cluster. Operation '%s' could not be completed: %s", f.operation, f.primary)
}

func matchSQL(f *failureInfo) bool {
	if !strings.Contains(f.lower, "sql") {
		return false
	}
	return strings.Contains(f.lower, "error") || strings.Contains(f.lower, "syntax")
}

// renderSQL keeps the original message verbatim; callers rely on seeing the
// exact complaint, such as the offending token.
func renderSQL(_ context.Context, f *failureInfo, _ StructureLister, _ time.Duration) string {
	return fmt.Sprintf("SQL error during operation '%s': %s", f.operation, f.primary)
}

var serializationIndicators = []string{
	"classnotfoundexception",
	"serialization",
	"deserializ",
	"serializer",
}

// matchSerialization scans every layer, not just the primary message.
// Serialization failures often surface as a wrapped cause under a bland
// top-level message.
func matchSerialization(f *failureInfo) bool {
	if errors.Is(f.err, hzerrors.ErrHazelcastSerialization) {
		return true
	}
	for _, l := range f.layers {
		if containsAny(strings.ToLower(l.message), serializationIndicators) {
			return true
		}
	}
	return false
}

const serializationHint = "The value likely uses a type the cluster does not know; " +
	"store values as JSON with HazelcastJsonValue (serialization.JSON in the Go client)."

func renderSerialization(_ context.Context, f *failureInfo, _ StructureLister, _ time.Duration) string {
	if f.primary == "" {
		return fmt.Sprintf("Serialization error during operation '%s'. %s", f.operation, serializationHint)
	}
	return fmt.Sprintf("Serialization error during operation '%s': %s. %s", f.operation, f.primary, serializationHint)
}

var timeoutIndicators = []string{
	"timed out",
	"timeout",
	"deadline exceeded",
}

func matchTimeout(f *failureInfo) bool {
	if errors.Is(f.err, hzerrors.ErrTimeout) || errors.Is(f.err, context.DeadlineExceeded) {
		return true
	}
	return containsAny(f.lower, timeoutIndicators)
}

func renderTimeout(_ context.Context, f *failureInfo, _ StructureLister, _ time.Duration) string {
	if f.primary == "" {
		return fmt.Sprintf("Operation '%s' timed out.", f.operation)
	}
	return fmt.Sprintf("Operation '%s' timed out: %s", f.operation, f.primary)
}

func matchAny(_ *failureInfo) bool { return true }

func renderGeneric(_ context.Context, f *failureInfo, _ StructureLister, _ time.Duration) string {
	switch {
	case f.primary != "":
		return fmt.Sprintf("Operation '%s' failed: %s", f.operation, f.primary)
	case primaryTypeTag(f.layers) != "":
		return fmt.Sprintf("Operation '%s' failed: %s", f.operation, primaryTypeTag(f.layers))
	default:
		return fmt.Sprintf("Operation '%s' failed: unknown error", f.operation)
	}
}
