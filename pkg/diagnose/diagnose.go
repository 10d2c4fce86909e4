// Package diagnose translates raw data grid client failures into single
// human-readable diagnostic messages suitable for an LLM tool-caller or an
// end user.
//
// Translation is a stateless, ordered classification: each failure is
// flattened into a bounded sequence of (message, type tag) layers, then
// matched against a fixed list of rules (structure not found, connection,
// SQL, serialization, timeout, generic fallback). The first matching rule
// renders the message. The structure-not-found rule enriches its output by
// enumerating the structures that do exist, through an injected capability
// and under a short timeout, so a failed lookup costs the caller at most a
// few hundred milliseconds.
//
// Translate never panics and never returns an empty string, whatever the
// failure looks like.
package diagnose

import (
	"context"
	"sort"
	"strings"
	"time"
)

// StructureLister enumerates the distinct names of the distributed
// structures currently existing on the cluster. Implementations may block
// or fail; translation tolerates both.
type StructureLister interface {
	ListStructures(ctx context.Context) ([]string, error)
}

// DefaultListTimeout bounds the structure enumeration performed while
// rendering a structure-not-found diagnostic.
const DefaultListTimeout = 300 * time.Millisecond

// Translator converts failures into diagnostic messages. The zero value is
// ready to use.
type Translator struct {
	// ListTimeout overrides DefaultListTimeout when positive.
	ListTimeout time.Duration
}

// Translate classifies failure and renders the diagnostic for the first
// matching category. The operation name appears in every template; cluster
// may be nil, in which case structure-not-found diagnostics simply omit the
// listing. Safe for concurrent use.
func (t Translator) Translate(ctx context.Context, failure error, operation string, cluster StructureLister) string {
	if ctx == nil {
		ctx = context.Background()
	}

	layers := flatten(failure)
	info := &failureInfo{
		err:       failure,
		operation: operation,
		layers:    layers,
		primary:   primaryMessage(layers),
	}
	info.lower = strings.ToLower(info.primary)

	timeout := t.ListTimeout
	if timeout <= 0 {
		timeout = DefaultListTimeout
	}

	for _, r := range rules {
		if r.match(info) {
			return r.render(ctx, info, cluster, timeout)
		}
	}
	// The generic rule matches everything; this is unreachable.
	return renderGeneric(ctx, info, cluster, timeout)
}

// Translate classifies failure with the default settings. See
// Translator.Translate.
func Translate(ctx context.Context, failure error, operation string, cluster StructureLister) string {
	return Translator{}.Translate(ctx, failure, operation, cluster)
}

type listOutcome struct {
	names []string
	ok    bool
}

// listStructureNames runs the enumeration best-effort: bounded by timeout,
// shielded from panics, never an error to the caller. The returned names
// are distinct and sorted.
func listStructureNames(ctx context.Context, cluster StructureLister, timeout time.Duration) ([]string, bool) {
	if cluster == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// The lister runs on its own goroutine so a misbehaving implementation
	// that ignores ctx still cannot stall translation past the timeout.
	outcome := make(chan listOutcome, 1)
	go func() {
		defer func() {
			if recover() != nil {
				outcome <- listOutcome{}
			}
		}()
		names, err := cluster.ListStructures(ctx)
		if err != nil {
			outcome <- listOutcome{}
			return
		}
		outcome <- listOutcome{names: names, ok: true}
	}()

	select {
	case res := <-outcome:
		if !res.ok {
			return nil, false
		}
		return dedupeSorted(res.names), true
	case <-ctx.Done():
		return nil, false
	}
}

func dedupeSorted(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
