// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import "sync"

// PartitionID identifies a partition within a topic. PartitionUA is the
// sentinel "unassigned" partition every topic carries in addition to its
// numbered partitions.
type PartitionID int32

// PartitionUA is the sentinel id of the unassigned-messages partition
// (spec: "UA"). It doubles as franz-go's own "let the partitioner
// decide" convention for kgo.Record.Partition.
const PartitionUA PartitionID = -1

// partitionFlag is a bitset of Partition state flags.
type partitionFlag uint8

const (
	// flagDesired marks a partition a consumer explicitly asked for by
	// id, whether or not it currently exists in the topic's table.
	flagDesired partitionFlag = 1 << iota

	// flagUnknown marks a partition currently sitting in Topic.desired
	// rather than Topic.partitions - i.e. the application wants it but
	// metadata hasn't confirmed it exists.
	flagUnknown
)

// Partition is a single numbered shard of a topic (or the UA sentinel
// partition). Ownership of its message queues is nominally external to
// this core (spec §1: "partition-level message queues ... only their
// queue-movement and error-enqueue operations are consumed"), but no
// other component in this standalone module supplies them, so Partition
// implements the minimal MsgQueue-backed version those operations need.
type Partition struct {
	// topic is a back-reference only - it does not keep the Topic alive
	// (design note §9: "Partition -> Topic is a back reference").
	topic *Topic
	id    PartitionID

	mu       sync.Mutex
	leader   *Broker
	flags    partitionFlag
	xmitMsgq *MsgQueue
	msgq     *MsgQueue
	errs     []ErrorKind // per-partition, consumer-visible error queue
}

// newPartition constructs a Partition for id within t. Callers must hold
// t.mu (write) when inserting the result into t.partitions/t.desired.
func newPartition(t *Topic, id PartitionID) *Partition {
	return &Partition{
		topic:    t,
		id:       id,
		xmitMsgq: &MsgQueue{},
		msgq:     &MsgQueue{},
	}
}

// ID returns the partition's id.
func (p *Partition) ID() PartitionID { return p.id }

// Leader returns the partition's current leader broker, or nil.
func (p *Partition) Leader() *Broker {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.leader
}

// brokerDelegate reassigns which broker the partition transmits to.
// Must be called under p.mu (spec §4.C: "must be called under the
// Partition lock").
func (p *Partition) brokerDelegate(b *Broker) {
	p.leader = b
}

// isDesired reports whether the DESIRED flag is set. Must be called
// under p.mu.
func (p *Partition) isDesired() bool { return p.flags&flagDesired != 0 }

// isUnknown reports whether the UNKNOWN flag is set. Must be called
// under p.mu.
func (p *Partition) isUnknown() bool { return p.flags&flagUnknown != 0 }

// enqueueError appends a consumer-visible error to the partition's error
// queue. Must be called under p.mu.
func (p *Partition) enqueueError(kind ErrorKind) {
	p.errs = append(p.errs, kind)
}

// Errors returns (and clears) the partition's queued errors, in order.
func (p *Partition) Errors() []ErrorKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.errs
	p.errs = nil
	return out
}

// purgeQueues drops every message currently queued on the partition
// without generating delivery reports for them. Callers that need
// reports must drain the queues (MoveAll/Purge) before calling this, or
// call it only after fully accounting for the messages. Must be called
// under p.mu.
func (p *Partition) purgeQueues() {
	p.xmitMsgq.Purge()
	p.msgq.Purge()
}
