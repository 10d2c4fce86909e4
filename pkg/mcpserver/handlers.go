package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/grid-tools/hazelcast-mcp/pkg/grid"
)

// maxPollWait caps queue_poll waits so a generous timeout argument cannot
// hold a tool call open indefinitely.
const maxPollWait = 30 * time.Second

// diagnose converts a grid failure into a user-facing ToolError, using the
// grid itself as the enumeration capability for not-found enrichment.
func (s *Server) diagnose(ctx context.Context, failure error, operation string) *ToolError {
	message := s.translator.Translate(ctx, failure, operation, s.grid)
	s.log.Debug("translated grid failure", "operation", operation, "diagnostic", message)
	return NewToolError(message)
}

type mapSizeArgs struct {
	Map string `json:"map" jsonschema:"Name of the distributed map"`
}

type mapSizeResult struct {
	Map  string `json:"map" jsonschema:"Name of the distributed map"`
	Size int    `json:"size" jsonschema:"Number of entries"`
}

func (s *Server) handleMapSize(ctx context.Context, args mapSizeArgs) (mapSizeResult, error) {
	if args.Map == "" {
		return mapSizeResult{}, ValidationError("map name is required")
	}
	size, err := s.grid.MapSize(ctx, args.Map)
	if err != nil {
		return mapSizeResult{}, s.diagnose(ctx, err, toolMapSize)
	}
	return mapSizeResult{Map: args.Map, Size: size}, nil
}

type listStructuresArgs struct{}

type structuresResult struct {
	Count      int                  `json:"count" jsonschema:"Number of structures"`
	Structures []grid.StructureInfo `json:"structures" jsonschema:"Structures currently existing on the cluster"`
}

func (s *Server) handleListStructures(ctx context.Context, _ listStructuresArgs) (structuresResult, error) {
	infos, err := s.grid.DescribeStructures(ctx)
	if err != nil {
		return structuresResult{}, s.diagnose(ctx, err, toolListStructures)
	}
	return structuresResult{Count: len(infos), Structures: infos}, nil
}

type clusterInfoArgs struct{}

func (s *Server) handleClusterInfo(ctx context.Context, _ clusterInfoArgs) (grid.Info, error) {
	info, err := s.grid.Info(ctx)
	if err != nil {
		return grid.Info{}, s.diagnose(ctx, err, toolClusterInfo)
	}
	return *info, nil
}

// mapKeyArgs is shared by the tools addressing a single map entry.
type mapKeyArgs struct {
	Map string `json:"map"`
	Key string `json:"key"`
}

func (a mapKeyArgs) validate() *ToolError {
	if a.Map == "" {
		return ValidationError("map name is required")
	}
	if a.Key == "" {
		return ValidationError("key is required")
	}
	return nil
}

// valueResult reports a value read from the grid; Found distinguishes a
// stored null from an absent entry as well as the grid allows.
type valueResult struct {
	Found bool `json:"found"`
	Value any  `json:"value"`
}

func (s *Server) handleMapGet(ctx context.Context, input []byte) ([]byte, error) {
	var args mapKeyArgs
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, ValidationError(fmt.Sprintf("invalid arguments: %v", err))
	}
	if verr := args.validate(); verr != nil {
		return nil, verr
	}
	value, err := s.grid.MapGet(ctx, args.Map, args.Key)
	if err != nil {
		return nil, s.diagnose(ctx, err, toolMapGet)
	}
	return json.Marshal(valueResult{Found: value != nil, Value: value})
}

type mapPutArgs struct {
	Map   string `json:"map"`
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type mapPutResult struct {
	Replaced bool `json:"replaced"`
	Previous any  `json:"previous,omitempty"`
}

func (s *Server) handleMapPut(ctx context.Context, input []byte) ([]byte, error) {
	var args mapPutArgs
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, ValidationError(fmt.Sprintf("invalid arguments: %v", err))
	}
	if verr := (mapKeyArgs{Map: args.Map, Key: args.Key}).validate(); verr != nil {
		return nil, verr
	}
	if args.Value == nil {
		return nil, ValidationError("value is required")
	}
	previous, err := s.grid.MapPut(ctx, args.Map, args.Key, args.Value)
	if err != nil {
		return nil, s.diagnose(ctx, err, toolMapPut)
	}
	return json.Marshal(mapPutResult{Replaced: previous != nil, Previous: previous})
}

func (s *Server) handleMapRemove(ctx context.Context, input []byte) ([]byte, error) {
	var args mapKeyArgs
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, ValidationError(fmt.Sprintf("invalid arguments: %v", err))
	}
	if verr := args.validate(); verr != nil {
		return nil, verr
	}
	removed, err := s.grid.MapRemove(ctx, args.Map, args.Key)
	if err != nil {
		return nil, s.diagnose(ctx, err, toolMapRemove)
	}
	return json.Marshal(valueResult{Found: removed != nil, Value: removed})
}

type queueOfferArgs struct {
	Queue string `json:"queue"`
	Value any    `json:"value"`
}

type queueOfferResult struct {
	Accepted bool `json:"accepted"`
}

func (s *Server) handleQueueOffer(ctx context.Context, input []byte) ([]byte, error) {
	var args queueOfferArgs
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, ValidationError(fmt.Sprintf("invalid arguments: %v", err))
	}
	if args.Queue == "" {
		return nil, ValidationError("queue name is required")
	}
	if args.Value == nil {
		return nil, ValidationError("value is required")
	}
	accepted, err := s.grid.QueueOffer(ctx, args.Queue, args.Value)
	if err != nil {
		return nil, s.diagnose(ctx, err, toolQueueOffer)
	}
	return json.Marshal(queueOfferResult{Accepted: accepted})
}

type queuePollArgs struct {
	Queue          string  `json:"queue"`
	TimeoutSeconds float64 `json:"timeout_seconds"`
}

func (s *Server) handleQueuePoll(ctx context.Context, input []byte) ([]byte, error) {
	var args queuePollArgs
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, ValidationError(fmt.Sprintf("invalid arguments: %v", err))
	}
	if args.Queue == "" {
		return nil, ValidationError("queue name is required")
	}
	if args.TimeoutSeconds < 0 {
		return nil, ValidationError("timeout_seconds cannot be negative")
	}
	wait := time.Duration(args.TimeoutSeconds * float64(time.Second))
	if wait > maxPollWait {
		wait = maxPollWait
	}
	value, err := s.grid.QueuePoll(ctx, args.Queue, wait)
	if err != nil {
		return nil, s.diagnose(ctx, err, toolQueuePoll)
	}
	return json.Marshal(valueResult{Found: value != nil, Value: value})
}

type topicPublishArgs struct {
	Topic   string `json:"topic"`
	Message any    `json:"message"`
}

type topicPublishResult struct {
	Published bool `json:"published"`
}

func (s *Server) handleTopicPublish(ctx context.Context, input []byte) ([]byte, error) {
	var args topicPublishArgs
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, ValidationError(fmt.Sprintf("invalid arguments: %v", err))
	}
	if args.Topic == "" {
		return nil, ValidationError("topic name is required")
	}
	if args.Message == nil {
		return nil, ValidationError("message is required")
	}
	if err := s.grid.TopicPublish(ctx, args.Topic, args.Message); err != nil {
		return nil, s.diagnose(ctx, err, toolTopicPublish)
	}
	return json.Marshal(topicPublishResult{Published: true})
}

type sqlExecuteArgs struct {
	Query  string `json:"query"`
	Params []any  `json:"params"`
}

func (s *Server) handleSQLExecute(ctx context.Context, input []byte) ([]byte, error) {
	var args sqlExecuteArgs
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, ValidationError(fmt.Sprintf("invalid arguments: %v", err))
	}
	if args.Query == "" {
		return nil, ValidationError("query is required")
	}
	result, err := s.grid.SQLExecute(ctx, args.Query, args.Params...)
	if err != nil {
		return nil, s.diagnose(ctx, err, toolSQLExecute)
	}
	return json.Marshal(result)
}
