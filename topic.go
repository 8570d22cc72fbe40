// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import (
	"sync"
	"sync/atomic"

	"github.com/twmb/franz-go/pkg/kgo"
)

// TopicState is one of the three states a Topic Handle can be in.
type TopicState int32

const (
	// StateUnknown is the initial state: no metadata seen yet, or the
	// last metadata seen has gone stale.
	StateUnknown TopicState = iota

	// StateExists means the most recent metadata confirmed >=1 partition.
	StateExists

	// StateNotExists means the most recent metadata confirmed absence.
	StateNotExists
)

// String returns the state's name, used in state-transition log lines.
func (s TopicState) String() string {
	switch s {
	case StateExists:
		return "exists"
	case StateNotExists:
		return "notexists"
	default:
		return "unknown"
	}
}

// Topic is a client's handle to one named topic: its configuration, its
// state machine, its partition table, and the UA and desired-partition
// buckets messages and subscriptions can sit in ahead of routing.
//
// Topic.mu is the "topic reader-writer lock" of spec §5; it guards every
// field below it. The global lock order is Client.mu -> Topic.mu ->
// Partition.mu (spec invariant 7).
type Topic struct {
	client *Client
	name   string
	config TopicConfig

	mu         sync.RWMutex
	state      TopicState
	partitions []*Partition            // dense, partitions[i].id == i
	ua         *Partition               // always non-nil while the topic is live
	desired    map[PartitionID]*Partition
	tsMetadata int64 // microseconds; monotonically non-decreasing

	refcnt    atomic.Int32
	published atomic.Bool
}

// newTopic constructs a Topic with its UA partition and returns it with
// refcnt == 1, the reference Create hands to its caller; the registry
// entry itself holds no reference. Callers must already hold c.mu
// (write) and are responsible for inserting it into c.topics.
func newTopic(c *Client, name string, cfg TopicConfig) *Topic {
	t := &Topic{
		client:  c,
		name:    name,
		config:  cfg,
		desired: make(map[PartitionID]*Partition),
	}
	t.ua = newPartition(t, PartitionUA)
	for _, id := range cfg.Desired {
		p := newPartition(t, id)
		p.flags |= flagDesired | flagUnknown
		t.desired[id] = p
	}
	t.refcnt.Store(1)
	return t
}

// Name returns the topic's name.
func (t *Topic) Name() string { return t.name }

// Opaque returns the application-supplied opaque pointer from the
// topic's configuration.
func (t *Topic) Opaque() any { return t.config.Opaque }

// State returns the topic's current state.
func (t *Topic) State() TopicState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// PartitionCount returns the number of numbered partitions currently in
// the table (not counting UA).
func (t *Topic) PartitionCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.partitions)
}

// setState transitions the topic to state, logging the change. Must be
// called with t.mu held (write). A no-op if state is unchanged.
func (t *Topic) setState(state TopicState) {
	if t.state == state {
		return
	}
	t.client.logf(kgo.LogLevelInfo, "topic %s changed state %s -> %s", t.name, t.state, state)
	t.state = state
}

// retain increments the topic's strong reference count and returns t,
// mirroring the C library's "find/get returns a fresh strong reference"
// discipline (spec §5).
func (t *Topic) retain() *Topic {
	t.refcnt.Add(1)
	return t
}

// release decrements the topic's reference count, tearing the topic down
// and unlinking it from the registry when the count reaches zero.
func (t *Topic) release() {
	if t.refcnt.Add(-1) > 0 {
		return
	}
	t.teardownPartitions()
	t.client.removeTopic(t)
}

// publish marks the topic as having an outstanding application-facing
// handle, taking the extra reference design note §9 describes ("the
// application holds one additional reference as long as app_handle is
// published"). A no-op if already published.
func (t *Topic) publish() {
	if t.published.CompareAndSwap(false, true) {
		t.retain()
	}
}

// unpublish releases the application-facing reference taken by publish,
// if one is outstanding.
func (t *Topic) unpublish() {
	if t.published.CompareAndSwap(true, false) {
		t.release()
	}
}

// partitionGet looks up a partition by id: PartitionUA returns the UA
// partition, an id within [0, partition_cnt) returns partitions[id], and
// anything else misses. createUAOnMiss additionally returns the UA
// partition when id is out of range, matching the original library's
// "get with UA fallback" used by a couple of callers that would rather
// route to UA than fail outright.
func (t *Topic) partitionGet(id PartitionID, createUAOnMiss bool) (*Partition, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.partitionGetLocked(id, createUAOnMiss)
}

// partitionGetLocked is partitionGet without its own locking; callers
// must already hold t.mu (read or write).
func (t *Topic) partitionGetLocked(id PartitionID, createUAOnMiss bool) (*Partition, bool) {
	if id == PartitionUA {
		return t.ua, t.ua != nil
	}
	if id >= 0 && int(id) < len(t.partitions) {
		return t.partitions[id], true
	}
	if createUAOnMiss {
		return t.ua, t.ua != nil
	}
	return nil, false
}

// desiredGetLocked returns the desired-set entry for id, if any. Callers
// must hold t.mu.
func (t *Topic) desiredGetLocked(id PartitionID) (*Partition, bool) {
	p, ok := t.desired[id]
	return p, ok
}

// desiredLinkLocked inserts p into the desired set. Callers must hold
// t.mu (write).
func (t *Topic) desiredLinkLocked(p *Partition) {
	t.desired[p.id] = p
}

// desiredUnlinkLocked removes p's id from the desired set without
// touching its flags. Callers must hold t.mu (write).
func (t *Topic) desiredUnlinkLocked(p *Partition) {
	delete(t.desired, p.id)
}

// desiredDelLocked removes id from the desired set entirely. Callers
// must hold t.mu (write).
func (t *Topic) desiredDelLocked(id PartitionID) {
	delete(t.desired, id)
}

// teardownPartitions moves every message from every partition (including
// UA and the desired set) into one queue and purges it outside of t.mu,
// avoiding the recursive-lock deadlock the original notes: a message can
// hold a reference back to its topic. Supplements spec.md, which omits
// this operation (original_source rd_kafka_topic_partitions_remove) -
// not named by any Non-goal.
func (t *Topic) teardownPartitions() []*Message {
	tmp := &MsgQueue{}

	t.mu.Lock()
	t.resizeLocked(0)

	for id, p := range t.desired {
		p.mu.Lock()
		p.xmitMsgq.MoveAll(tmp)
		p.msgq.MoveAll(tmp)
		p.mu.Unlock()
		delete(t.desired, id)
	}

	if t.ua != nil {
		t.ua.mu.Lock()
		t.ua.xmitMsgq.MoveAll(tmp)
		t.ua.msgq.MoveAll(tmp)
		t.ua.mu.Unlock()
		t.ua = nil
	}
	t.mu.Unlock()

	return tmp.Purge()
}

