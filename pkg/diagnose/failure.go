package diagnose

import (
	"fmt"
	"regexp"
	"strings"
)

// maxLayers caps how many wrapped causes are inspected. Error chains from
// the client are shallow in practice; the cap keeps translation finite even
// on self-referential chains.
const maxLayers = 8

// layer is one step of a flattened failure chain: a single-line message and
// a short type tag usable as a last-resort label.
type layer struct {
	message string
	typeTag string
}

// flatten walks the failure's wrap chain (both single and joined unwrapping)
// breadth-first into a bounded sequence of layers. Messages are reduced to
// their first line and scrubbed of runtime internals.
func flatten(failure error) []layer {
	if failure == nil {
		return nil
	}
	var layers []layer
	queue := []error{failure}
	for len(queue) > 0 && len(layers) < maxLayers {
		err := queue[0]
		queue = queue[1:]
		if err == nil {
			continue
		}
		layers = append(layers, layer{
			message: scrub(firstLine(safeMessage(err))),
			typeTag: typeTag(err),
		})
		switch chain := err.(type) {
		case interface{ Unwrap() error }:
			queue = append(queue, chain.Unwrap())
		case interface{ Unwrap() []error }:
			queue = append(queue, chain.Unwrap()...)
		}
	}
	return layers
}

// primaryMessage returns the first non-empty layer message, or "" when
// every layer is silent.
func primaryMessage(layers []layer) string {
	for _, l := range layers {
		if l.message != "" {
			return l.message
		}
	}
	return ""
}

// primaryTypeTag returns the top layer's type tag, or "" for an empty chain.
func primaryTypeTag(layers []layer) string {
	if len(layers) == 0 {
		return ""
	}
	return layers[0].typeTag
}

// safeMessage calls err.Error() behind a recover guard. A panicking Error()
// must not escape translation.
func safeMessage(err error) (msg string) {
	defer func() {
		if recover() != nil {
			msg = ""
		}
	}()
	return strings.TrimSpace(err.Error())
}

// typeTag derives a short label from the error's concrete type: no package
// path, no pointer marker.
func typeTag(err error) string {
	tag := fmt.Sprintf("%T", err)
	tag = strings.TrimLeft(tag, "*")
	if i := strings.LastIndex(tag, "."); i >= 0 {
		tag = tag[i+1:]
	}
	return tag
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// frameMarkers are mid-line remnants of server-side stack traces. Member
// errors occasionally carry them even on the first line.
var frameMarkers = []string{" at com.", " at java.", " at sun.", "goroutine "}

// qualifiedTypePath matches fully qualified JVM type paths such as
// "java.lang.ClassNotFoundException" or "com.hazelcast.core.HazelcastException",
// keeping only the final segment.
var qualifiedTypePath = regexp.MustCompile(`\b(?:java|javax|jdk|sun|com|org)\.(?:[A-Za-z0-9_$]+\.)*([A-Za-z][A-Za-z0-9_$]*)`)

// scrub removes stack-frame markers and package-qualified runtime type paths
// from a message. Diagnostics surface to end users and LLM callers; internal
// paths carry no actionable signal there.
func scrub(s string) string {
	for _, marker := range frameMarkers {
		if i := strings.Index(s, marker); i >= 0 {
			s = s[:i]
		}
	}
	s = qualifiedTypePath.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}
