// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import (
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Message is the envelope this core moves between partition queues. It
// wraps a franz-go *kgo.Record so Key/Value/Headers/Topic/Partition are
// the driver's own wire record rather than a parallel type - including
// kgo's convention that Record.Partition == -1 means "not yet assigned",
// which is exactly this core's UA sentinel (spec: "forced_partition_id").
type Message struct {
	Record *kgo.Record

	// Deadline is the point in time after which the periodic scanner
	// (§4.F) reports this message as KindMessageTimedOut if it is still
	// sitting in a partition queue.
	Deadline time.Time

	enqueuedAt time.Time
}

// ForcedPartition returns the message's requested destination partition,
// or PartitionUA if the application left routing up to the partitioner.
func (m *Message) ForcedPartition() PartitionID {
	if m.Record == nil {
		return PartitionUA
	}
	return PartitionID(m.Record.Partition)
}

// setForcedPartition stamps the record's Partition field, the same field
// franz-go's own ManualPartitioner reads.
func (m *Message) setForcedPartition(id PartitionID) {
	if m.Record != nil {
		m.Record.Partition = int32(id)
	}
}

// MsgQueue is an ordered FIFO queue of messages. It has no lock of its
// own: spec §5 assigns a single Partition lock to guard "its flags,
// leader, and queues" together, so callers are expected to hold the
// owning Partition's lock (or, for UA reassignment staging queues, a
// local/unshared queue) across any of these operations.
type MsgQueue struct {
	messages []*Message
}

// Len returns the number of queued messages.
func (q *MsgQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.messages)
}

// Enqueue appends m to the tail of the queue.
func (q *MsgQueue) Enqueue(m *Message) {
	q.messages = append(q.messages, m)
}

// MoveAll appends every message in q to the tail of dst, preserving
// order, and empties q. This is the "queue-movement operation" spec §6
// names (rd_kafka_toppar_move_msgs in the original).
func (q *MsgQueue) MoveAll(dst *MsgQueue) {
	if q.Len() == 0 {
		return
	}
	dst.messages = append(dst.messages, q.messages...)
	q.messages = nil
}

// Purge removes and returns every message currently queued, in order.
func (q *MsgQueue) Purge() []*Message {
	out := q.messages
	q.messages = nil
	return out
}

// AgeScan moves every message whose Deadline has passed into out,
// preserving relative order in both q (messages that remain) and out
// (messages that timed out). Returns the count moved.
func (q *MsgQueue) AgeScan(now time.Time, out *MsgQueue) int {
	if q.Len() == 0 {
		return 0
	}

	kept := q.messages[:0:0]
	moved := 0
	for _, m := range q.messages {
		if !m.Deadline.IsZero() && now.After(m.Deadline) {
			out.Enqueue(m)
			moved++
			continue
		}
		kept = append(kept, m)
	}
	q.messages = kept
	return moved
}
