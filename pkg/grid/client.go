// Package grid wraps the Hazelcast Go client with the narrow operation
// surface the MCP tools need: map, queue and topic access, SQL, and
// structure enumeration. Operations return the client's errors untouched;
// turning them into user-facing diagnostics is the caller's concern.
package grid

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/hazelcast/hazelcast-go-client"
	"github.com/hazelcast/hazelcast-go-client/logger"
	"github.com/hazelcast/hazelcast-go-client/types"
)

// Config holds the connection settings for one cluster.
type Config struct {
	// ClusterName is the name the members were started with.
	ClusterName string
	// Addresses lists member addresses in host:port form.
	Addresses []string
	// ClientName identifies this client on the cluster; optional.
	ClientName string
	// ConnectTimeout bounds each connection attempt.
	ConnectTimeout time.Duration
	// ConnectAttempts caps how many attempts Connect makes; 0 means
	// retry until ctx is done.
	ConnectAttempts uint
	// Unisocket disables smart routing.
	Unisocket bool
	// SQLMaxRows caps how many rows SQLExecute returns; 0 applies
	// DefaultSQLMaxRows.
	SQLMaxRows int
}

// DefaultSQLMaxRows bounds SQL result sets when Config.SQLMaxRows is unset.
const DefaultSQLMaxRows = 100

// Client is a connected Hazelcast client.
type Client struct {
	hz         *hazelcast.Client
	cfg        Config
	sqlMaxRows int
	log        *slog.Logger
}

// Connect starts a Hazelcast client and waits for the cluster connection,
// retrying with exponential backoff. The client log level is pinned to warn
// so client internals stay out of the server's output.
func Connect(ctx context.Context, cfg Config, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("no cluster addresses configured")
	}

	hzConfig := hazelcast.NewConfig()
	hzConfig.ClientName = cfg.ClientName
	hzConfig.Cluster.Name = cfg.ClusterName
	hzConfig.Cluster.Network.SetAddresses(cfg.Addresses...)
	hzConfig.Cluster.Unisocket = cfg.Unisocket
	hzConfig.Logger.Level = logger.WarnLevel
	if cfg.ConnectTimeout > 0 {
		hzConfig.Cluster.ConnectionStrategy.Timeout = types.Duration(cfg.ConnectTimeout)
	}

	start := func() (*hazelcast.Client, error) {
		return hazelcast.StartNewClientWithConfig(ctx, hzConfig)
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn("cluster connection failed, retrying",
				"cluster", cfg.ClusterName,
				"error", err,
				"next_attempt_in", next)
		}),
	}
	if cfg.ConnectAttempts > 0 {
		opts = append(opts, backoff.WithMaxTries(cfg.ConnectAttempts))
	}

	hzClient, err := backoff.Retry(ctx, start, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to cluster %q: %w", cfg.ClusterName, err)
	}

	maxRows := cfg.SQLMaxRows
	if maxRows <= 0 {
		maxRows = DefaultSQLMaxRows
	}

	log.Info("connected to cluster",
		"cluster", cfg.ClusterName,
		"addresses", cfg.Addresses,
		"client", hzClient.Name())

	return &Client{hz: hzClient, cfg: cfg, sqlMaxRows: maxRows, log: log}, nil
}

// MapGet returns the value stored under key, or nil when absent.
func (c *Client) MapGet(ctx context.Context, mapName, key string) (any, error) {
	m, err := c.hz.GetMap(ctx, mapName)
	if err != nil {
		return nil, err
	}
	value, err := m.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return fromGridValue(value), nil
}

// MapPut stores value under key and returns the previous value, if any.
func (c *Client) MapPut(ctx context.Context, mapName, key string, value any) (any, error) {
	stored, err := toGridValue(value)
	if err != nil {
		return nil, err
	}
	m, err := c.hz.GetMap(ctx, mapName)
	if err != nil {
		return nil, err
	}
	previous, err := m.Put(ctx, key, stored)
	if err != nil {
		return nil, err
	}
	return fromGridValue(previous), nil
}

// MapRemove deletes key and returns the value it held, if any.
func (c *Client) MapRemove(ctx context.Context, mapName, key string) (any, error) {
	m, err := c.hz.GetMap(ctx, mapName)
	if err != nil {
		return nil, err
	}
	removed, err := m.Remove(ctx, key)
	if err != nil {
		return nil, err
	}
	return fromGridValue(removed), nil
}

// MapSize returns the number of entries in the map.
func (c *Client) MapSize(ctx context.Context, mapName string) (int, error) {
	m, err := c.hz.GetMap(ctx, mapName)
	if err != nil {
		return 0, err
	}
	return m.Size(ctx)
}

// QueueOffer appends value to the queue. It reports false when the queue is
// full rather than blocking.
func (c *Client) QueueOffer(ctx context.Context, queueName string, value any) (bool, error) {
	stored, err := toGridValue(value)
	if err != nil {
		return false, err
	}
	q, err := c.hz.GetQueue(ctx, queueName)
	if err != nil {
		return false, err
	}
	return q.Add(ctx, stored)
}

// QueuePoll takes the head of the queue, waiting up to timeout when it is
// positive. A nil result means the queue was empty.
func (c *Client) QueuePoll(ctx context.Context, queueName string, timeout time.Duration) (any, error) {
	q, err := c.hz.GetQueue(ctx, queueName)
	if err != nil {
		return nil, err
	}
	var value any
	if timeout > 0 {
		value, err = q.PollWithTimeout(ctx, timeout)
	} else {
		value, err = q.Poll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return fromGridValue(value), nil
}

// TopicPublish sends message to every subscriber of the topic.
func (c *Client) TopicPublish(ctx context.Context, topicName string, message any) error {
	stored, err := toGridValue(message)
	if err != nil {
		return err
	}
	tp, err := c.hz.GetTopic(ctx, topicName)
	if err != nil {
		return err
	}
	return tp.Publish(ctx, stored)
}

// ListStructures enumerates the distinct names of user-visible distributed
// structures. It satisfies the translator's StructureLister capability.
func (c *Client) ListStructures(ctx context.Context) ([]string, error) {
	infos, err := c.DescribeStructures(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(infos))
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if _, dup := seen[info.Name]; dup {
			continue
		}
		seen[info.Name] = struct{}{}
		names = append(names, info.Name)
	}
	return names, nil
}

// DescribeStructures returns name and kind for every user-visible
// distributed structure, sorted by name.
func (c *Client) DescribeStructures(ctx context.Context) ([]StructureInfo, error) {
	objects, err := c.hz.GetDistributedObjectsInfo(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]StructureInfo, 0, len(objects))
	for _, obj := range objects {
		if internalStructure(obj.Name) {
			continue
		}
		infos = append(infos, StructureInfo{
			Name: obj.Name,
			Kind: kindForService(obj.ServiceName),
		})
	}
	sortStructures(infos)
	return infos, nil
}

// Info summarizes the connection and the structures on the cluster.
type Info struct {
	ClusterName string          `json:"cluster_name"`
	ClientName  string          `json:"client_name"`
	Addresses   []string        `json:"addresses"`
	Running     bool            `json:"running"`
	Structures  []StructureInfo `json:"structures"`
}

// Info reports the connection state and the current structure listing.
func (c *Client) Info(ctx context.Context) (*Info, error) {
	structures, err := c.DescribeStructures(ctx)
	if err != nil {
		return nil, err
	}
	return &Info{
		ClusterName: c.cfg.ClusterName,
		ClientName:  c.hz.Name(),
		Addresses:   c.cfg.Addresses,
		Running:     c.hz.Running(),
		Structures:  structures,
	}, nil
}

// Running reports whether the client still has an active cluster connection.
func (c *Client) Running() bool {
	return c.hz.Running()
}

// Shutdown disconnects the client. Safe to call once at process exit.
func (c *Client) Shutdown(ctx context.Context) error {
	c.log.Info("shutting down cluster client", "cluster", c.cfg.ClusterName)
	return c.hz.Shutdown(ctx)
}
