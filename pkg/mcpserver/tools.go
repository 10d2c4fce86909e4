package mcpserver

import (
	"context"
	"time"

	"github.com/grid-tools/hazelcast-mcp/pkg/grid"
)

// GridOps is the surface of the grid client the tools depend on. It is
// satisfied by *grid.Client; tests substitute a stub. ListStructures doubles
// as the translator's enumeration capability.
type GridOps interface {
	MapGet(ctx context.Context, mapName, key string) (any, error)
	MapPut(ctx context.Context, mapName, key string, value any) (any, error)
	MapRemove(ctx context.Context, mapName, key string) (any, error)
	MapSize(ctx context.Context, mapName string) (int, error)
	QueueOffer(ctx context.Context, queueName string, value any) (bool, error)
	QueuePoll(ctx context.Context, queueName string, timeout time.Duration) (any, error)
	TopicPublish(ctx context.Context, topicName string, message any) error
	SQLExecute(ctx context.Context, query string, params ...any) (*grid.SQLResult, error)
	ListStructures(ctx context.Context) ([]string, error)
	DescribeStructures(ctx context.Context) ([]grid.StructureInfo, error)
	Info(ctx context.Context) (*grid.Info, error)
}

var _ GridOps = (*grid.Client)(nil)

// Tool names double as the operation names in diagnostics.
const (
	toolMapGet         = "map_get"
	toolMapPut         = "map_put"
	toolMapRemove      = "map_remove"
	toolMapSize        = "map_size"
	toolQueueOffer     = "queue_offer"
	toolQueuePoll      = "queue_poll"
	toolTopicPublish   = "topic_publish"
	toolSQLExecute     = "sql_execute"
	toolListStructures = "list_structures"
	toolClusterInfo    = "cluster_info"
)

func (s *Server) registerTools() {
	addTypedTool(s.server, toolMapSize,
		"Return the number of entries in a distributed map.",
		s.handleMapSize)
	addTypedTool(s.server, toolListStructures,
		"List the distributed structures (maps, queues, topics, ...) currently existing on the cluster.",
		s.handleListStructures)
	addTypedTool(s.server, toolClusterInfo,
		"Describe the cluster connection and the structures visible to this client.",
		s.handleClusterInfo)

	addRawTool(s.server, toolMapGet,
		"Read the value stored under a key in a distributed map.",
		CreateObjectSchema(
			"map_get arguments",
			map[string]string{
				"map": "Name of the distributed map",
				"key": "Entry key to read",
			},
			[]string{"map", "key"},
		),
		s.handleMapGet)

	addRawTool(s.server, toolMapPut,
		"Store a value under a key in a distributed map; objects and arrays are stored as HazelcastJsonValue. Returns the previous value.",
		CreateDynamicSchema([]FieldDef{
			{Name: "map", Type: "string", Description: "Name of the distributed map", Required: true},
			{Name: "key", Type: "string", Description: "Entry key to write", Required: true},
			{Name: "value", Description: "Value to store; any JSON", Required: true},
		}),
		s.handleMapPut)

	addRawTool(s.server, toolMapRemove,
		"Remove a key from a distributed map and return the value it held.",
		CreateObjectSchema(
			"map_remove arguments",
			map[string]string{
				"map": "Name of the distributed map",
				"key": "Entry key to remove",
			},
			[]string{"map", "key"},
		),
		s.handleMapRemove)

	addRawTool(s.server, toolQueueOffer,
		"Append a value to a distributed queue. Reports whether the queue accepted it.",
		CreateDynamicSchema([]FieldDef{
			{Name: "queue", Type: "string", Description: "Name of the distributed queue", Required: true},
			{Name: "value", Description: "Value to enqueue; any JSON", Required: true},
		}),
		s.handleQueueOffer)

	addRawTool(s.server, toolQueuePoll,
		"Take the head of a distributed queue, optionally waiting for an element to arrive.",
		CreateDynamicSchema([]FieldDef{
			{Name: "queue", Type: "string", Description: "Name of the distributed queue", Required: true},
			{Name: "timeout_seconds", Type: "number", Description: "How long to wait for an element; 0 returns immediately"},
		}),
		s.handleQueuePoll)

	addRawTool(s.server, toolTopicPublish,
		"Publish a message to every subscriber of a distributed topic.",
		CreateDynamicSchema([]FieldDef{
			{Name: "topic", Type: "string", Description: "Name of the distributed topic", Required: true},
			{Name: "message", Description: "Message to publish; any JSON", Required: true},
		}),
		s.handleTopicPublish)

	addRawTool(s.server, toolSQLExecute,
		"Execute a SQL statement against the cluster. Row sets are capped at the configured limit.",
		CreateDynamicSchema([]FieldDef{
			{Name: "query", Type: "string", Description: "SQL statement to execute", Required: true},
			{Name: "params", Type: "array", Description: "Positional statement parameters"},
		}),
		s.handleSQLExecute)
}
