// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import "github.com/twmb/franz-go/pkg/kgo"

// propagateNotExists notifies every desired partition's error queue that
// the topic doesn't exist. Consumer-role only; a no-op for producers.
// Takes t.mu (write) itself; propagateNotExistsLocked is the variant for
// callers already holding it.
//
// Grounded on rd_kafka_topic_propagate_notexists.
func (t *Topic) propagateNotExists() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.propagateNotExistsLocked()
}

func (t *Topic) propagateNotExistsLocked() {
	if t.client.Role != RoleConsumer {
		return
	}
	for _, p := range t.desired {
		p.mu.Lock()
		p.enqueueError(KindUnknownTopic)
		p.mu.Unlock()
	}
}

// assignUAs drains the UA partition's message queue and routes each
// message to a real partition via the topic's Partitioner, failing out
// any message that can't be placed. Producer-role only; a no-op for
// consumers. Takes t.mu (write) itself; assignUAsLocked is the variant
// for callers already holding it.
//
// Grounded on rd_kafka_topic_assign_uas.
func (t *Topic) assignUAs() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.assignUAsLocked()
}

func (t *Topic) assignUAsLocked() {
	if t.client.Role != RoleProducer {
		return
	}
	if t.ua == nil {
		t.client.logf(kgo.LogLevelDebug, "no UA partition available for %s", t.name)
		return
	}

	t.ua.mu.Lock()
	uas := &MsgQueue{}
	t.ua.msgq.MoveAll(uas)
	t.ua.mu.Unlock()

	total := uas.Len()
	if total == 0 {
		return
	}
	t.client.logf(kgo.LogLevelDebug, "partitioning %d unassigned messages in topic %s to %d partitions",
		total, t.name, len(t.partitions))

	failed := &MsgQueue{}
	for _, m := range uas.Purge() {
		forced := m.ForcedPartition()
		if forced != PartitionUA && int32(forced) >= int32(len(t.partitions)) && t.state != StateUnknown {
			failed.Enqueue(m)
			continue
		}
		if err := t.routeMessageLocked(m, forced); err != nil {
			failed.Enqueue(m)
		}
	}

	if n := failed.Len(); n > 0 {
		t.client.logf(kgo.LogLevelDebug, "%d/%d messages failed partitioning in topic %s", n, total, t.name)
		kind := KindUnknownPartition
		if t.state == StateNotExists {
			kind = KindUnknownTopic
		}
		t.client.drMsgq(t.name, PartitionUA, failed, kind)
	}
}

// routeMessageLocked assigns m to a partition: forced, if it names a
// valid one, otherwise the topic's Partitioner. Must be called with t.mu
// held (at least read).
func (t *Topic) routeMessageLocked(m *Message, forced PartitionID) error {
	id := forced
	if id == PartitionUA {
		partitioner := t.config.Partitioner
		if partitioner == nil {
			partitioner = DefaultPartitioner
		}
		pid, err := partitioner(t, m)
		if err != nil {
			return err
		}
		id = pid
	}

	p, ok := t.partitionGetLocked(id, false)
	if !ok {
		return ErrUnknownPartition
	}

	m.setForcedPartition(id)

	p.mu.Lock()
	p.msgq.Enqueue(m)
	p.mu.Unlock()
	return nil
}
