// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import "github.com/twmb/franz-go/pkg/kgo"

// leaderUpdateResult is the tri-state rd_kafka_topic_leader_update
// returns in the original: unknown (partition id doesn't exist),
// unchanged (same broker, nothing to do), or changed (delegate updated).
type leaderUpdateResult int

const (
	leaderUnknown leaderUpdateResult = iota - 1
	leaderUnchanged
	leaderChanged
)

// resize updates the number of numbered partitions a topic carries,
// migrating desired partitions in, moving excess partitions' messages to
// UA (or failing them out if UA is gone), and moving any still-desired
// partition that fell out of range back onto the desired list. Takes
// t.mu (write) itself; resizeLocked is the variant for callers already
// holding it. Returns true if the count changed.
//
// Grounded directly on rd_kafka_topic_partition_cnt_update; no Go example
// in the retrieval pack implements partition-table resizing, so this is
// a statement-for-statement port into Go idiom.
func (t *Topic) resize(n int32) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resizeLocked(n)
}

func (t *Topic) resizeLocked(n int32) bool {
	if int32(len(t.partitions)) == n {
		return false
	}

	t.client.logf(kgo.LogLevelInfo, "topic %s partition count changed from %d to %d",
		t.name, len(t.partitions), n)

	next := make([]*Partition, n)
	for i := int32(0); i < n; i++ {
		if i < int32(len(t.partitions)) {
			next[i] = t.partitions[i]
			continue
		}

		// New partition: promote it from the desired list if present.
		if p, ok := t.desiredGetLocked(PartitionID(i)); ok {
			p.mu.Lock()
			if p.isUnknown() {
				p.flags &^= flagUnknown
				t.desiredUnlinkLocked(p)
			}
			p.mu.Unlock()
			next[i] = p
			continue
		}

		next[i] = newPartition(t, PartitionID(i))
	}

	// Desired partitions still linked at this point are, by
	// construction, still missing from the new table (anything now known
	// was already unlinked above) - propagate a not-found error to each.
	for _, p := range t.desired {
		p.mu.Lock()
		p.enqueueError(KindUnknownPartition)
		p.mu.Unlock()
	}

	// Partitions dropped by a shrink: migrate their messages to UA, or
	// fail them out if UA itself is gone (topic teardown).
	for i := n; i < int32(len(t.partitions)); i++ {
		p := t.partitions[i]

		p.mu.Lock()
		p.brokerDelegate(nil)

		if t.ua != nil {
			t.ua.mu.Lock()
			p.xmitMsgq.MoveAll(t.ua.msgq)
			p.msgq.MoveAll(t.ua.msgq)
			t.ua.mu.Unlock()
		} else {
			dropped := &MsgQueue{}
			p.xmitMsgq.MoveAll(dropped)
			p.msgq.MoveAll(dropped)
			t.client.drMsgq(t.name, p.id, dropped, KindUnknownPartition)
		}
		p.purgeQueues()

		if p.isDesired() {
			p.flags |= flagUnknown
			t.desiredLinkLocked(p)
			if !t.client.Terminating() {
				p.enqueueError(KindUnknownPartition)
			}
		}
		p.mu.Unlock()
	}

	t.partitions = next
	return true
}

// leaderUpdate reassigns partition's leader broker. b == nil clears the
// leader. Must be called with t.mu held (at least read; Partition.mu is
// taken internally).
//
// Grounded on rd_kafka_topic_leader_update.
func (t *Topic) leaderUpdate(id PartitionID, b *Broker) leaderUpdateResult {
	p, ok := t.partitionGetLocked(id, false)
	if !ok {
		t.client.logf(kgo.LogLevelWarn, "topic %s: partition %d is unknown (partition_cnt %d)",
			t.name, id, len(t.partitions))
		return leaderUnknown
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if b == nil {
		hadLeader := p.leader != nil
		p.brokerDelegate(nil)
		if hadLeader {
			return leaderUnknown
		}
		return leaderUnchanged
	}

	if p.leader != nil {
		if p.leader == b {
			return leaderUnchanged
		}
		t.client.logf(kgo.LogLevelInfo, "topic %s [%d] migrated from broker %d to %d",
			t.name, id, p.leader.NodeID, b.NodeID)
	}

	p.brokerDelegate(b)
	return leaderChanged
}
