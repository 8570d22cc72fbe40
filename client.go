// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import (
	"sync"
	"sync/atomic"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Role distinguishes the two directions this core's routing logic
// diverges (spec §4.E): a producer assigns UAs outward to real
// partitions, a consumer propagates NotExists errors outward to
// subscriptions instead.
type Role int

const (
	// RoleProducer assigns unassigned messages to partitions as soon as
	// metadata makes one available (assignUAs).
	RoleProducer Role = iota

	// RoleConsumer surfaces a NotExists topic state as a consumer-visible
	// error instead (propagateNotExists).
	RoleConsumer
)

// LeaderQuery is invoked on its own goroutine to request a metadata
// refresh for a topic: by ApplyMetadata when the snapshot names a
// partition id outside the topic's current table, and by ScanAll for
// every topic with zero known partitions. A nil hook is a no-op.
type LeaderQuery func(c *Client, t *Topic)

// Client is the topic-metadata and partition-routing core: the Topic
// Registry, the broker pool index, and the delivery-report fan-out this
// module exposes to an embedding driver (spec §2, "Topic Registry" +
// "Broker Pool Index (external)"). It is the direct analog of the
// teacher's Publisher, generalized away from WRP/QoS specifics down to
// the metadata/routing layer beneath them.
type Client struct {
	// Role governs whether routing pushes UAs to partitions (producer) or
	// NotExists to subscriptions (consumer).
	Role Role

	// DefaultConfig supplies defaults for any field a caller of Create
	// leaves unset on a TopicConfig.
	DefaultConfig TopicConfig

	// Logger receives every log line this core emits. Defaults to a
	// logger that drops everything.
	Logger Logger

	// LeaderQuery is called by the scanner (spec §4.F) once per topic that
	// needs a refresh, outside of any lock, and by ApplyMetadata as
	// described on the LeaderQuery type.
	LeaderQuery LeaderQuery

	// mu is the client reader-writer lock (spec §5): guards topics and
	// brokers. Lock order is mu -> Topic.mu -> Partition.mu.
	mu     sync.RWMutex
	topics map[string]*Topic

	brokers *BrokerIndex

	blacklist Blacklist

	delivery deliveryBroadcaster

	terminating atomic.Bool
}

// NewClient constructs a Client ready to register topics. cfg supplies
// the default TopicConfig new topics inherit from; its Blacklist, once
// compiled, is the client-wide topic blacklist the Metadata Ingestor
// consults (spec: "topic_blacklist: pattern list (client-wide)").
func NewClient(role Role, cfg TopicConfig) (*Client, error) {
	if err := cfg.compile(); err != nil {
		return nil, err
	}

	c := &Client{
		Role:          role,
		DefaultConfig: cfg,
		Logger:        &nopLogger{},
		topics:        make(map[string]*Topic),
		brokers:       newBrokerIndex(),
		blacklist:     cfg.Blacklist,
	}
	return c, nil
}

// logf forwards a formatted log line to c.Logger, falling back to
// silence if none is set.
func (c *Client) logf(level kgo.LogLevel, msg string, args ...any) {
	if c.Logger == nil {
		return
	}
	c.Logger.Log(level, msg, args...)
}

// AddDeliveryListener registers fn to receive every DeliveryReport this
// client emits. The returned function removes the listener.
func (c *Client) AddDeliveryListener(fn func(*DeliveryReport)) func() {
	return c.delivery.AddListener(fn)
}

// Terminating reports whether Terminate has been called.
func (c *Client) Terminating() bool { return c.terminating.Load() }

// Terminate marks the client as shutting down. Once set, ApplyMetadata
// and MetadataNone apply no further metadata and the periodic scanner
// issues no further leader queries; it does not by itself tear down any
// topic.
func (c *Client) Terminate() {
	c.terminating.Store(true)
}

// BrokerByNodeID looks up a broker by node id under the client lock,
// matching spec invariant: "broker lookups by id must complete under the
// client lock before the topic lock is taken".
func (c *Client) BrokerByNodeID(id int32) (*Broker, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.brokers.findByNodeID(id)
}

// PutBroker registers or replaces a broker in the pool index.
func (c *Client) PutBroker(b *Broker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.brokers.put(b)
}

// RemoveBroker drops a broker from the pool index.
func (c *Client) RemoveBroker(id int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.brokers.remove(id)
}

// removeTopic unlinks t from the registry. Called by Topic.release once
// its refcount has reached zero; a no-op if t has already been removed or
// replaced by a newer handle of the same name.
func (c *Client) removeTopic(t *Topic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.topics[t.name]; ok && cur == t {
		delete(c.topics, t.name)
	}
}

// Topics returns a snapshot slice of every topic currently registered,
// each retained once more for the caller (the caller must release each
// one when done).
func (c *Client) Topics() []*Topic {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Topic, 0, len(c.topics))
	for _, t := range c.topics {
		out = append(out, t.retain())
	}
	return out
}
