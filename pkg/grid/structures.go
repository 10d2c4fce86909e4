package grid

import (
	"sort"
	"strings"
)

// StructureInfo describes one distributed structure visible to the client.
type StructureInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// serviceKinds maps Hazelcast service names to the short kind labels used
// in tool output.
var serviceKinds = map[string]string{
	"hz:impl:mapService":              "map",
	"hz:impl:multiMapService":         "multimap",
	"hz:impl:replicatedMapService":    "replicated_map",
	"hz:impl:queueService":            "queue",
	"hz:impl:topicService":            "topic",
	"hz:impl:reliableTopicService":    "reliable_topic",
	"hz:impl:setService":              "set",
	"hz:impl:listService":             "list",
	"hz:impl:ringbufferService":       "ringbuffer",
	"hz:impl:cacheService":            "cache",
	"hz:impl:PNCounterService":        "pn_counter",
	"hz:impl:flakeIdGeneratorService": "flake_id_generator",
}

func kindForService(service string) string {
	if kind, ok := serviceKinds[service]; ok {
		return kind
	}
	name := strings.TrimPrefix(service, "hz:impl:")
	name = strings.TrimSuffix(name, "Service")
	if name == "" {
		return "unknown"
	}
	return strings.ToLower(name)
}

// internalStructure reports whether a structure belongs to Hazelcast itself
// rather than to user data. Internal names start with "__".
func internalStructure(name string) bool {
	return strings.HasPrefix(name, "__")
}

func sortStructures(infos []StructureInfo) {
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Name == infos[j].Name {
			return infos[i].Kind < infos[j].Kind
		}
		return infos[i].Name < infos[j].Name
	})
}
