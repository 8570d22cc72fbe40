// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import (
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// PartitionMetadata is one partition entry from a Metadata response, the
// shape this core needs out of kmsg.MetadataResponseTopicPartition:
// just the id and the reported leader node.
type PartitionMetadata struct {
	ID       PartitionID
	LeaderID int32 // -1 means no leader reported
}

// TopicMetadata is one topic entry from a Metadata response, the shape
// this core needs out of kmsg.MetadataResponseTopic.
type TopicMetadata struct {
	Name       string
	ErrorCode  int16
	Partitions []PartitionMetadata
}

// ApplyMetadata ingests one topic's worth of a Metadata response (spec
// §4.D, the Metadata Ingestor). b is the broker that returned the
// response, used to look up each partition's leader by node id under the
// client lock before any topic lock is taken (spec invariant 4: "broker
// lookups by id must complete under the client lock before the topic
// lock is taken").
//
// Returns the number of changes applied (partition-count change plus
// per-partition leader changes), or ErrMetadataIgnored if the topic is
// blacklisted, not registered locally, or the error code is a transient
// one this core deliberately ignores (spec §4.D edge case, issue #513:
// LeaderNotAvailable with zero partitions).
//
// Grounded on rd_kafka_topic_metadata_update.
func (c *Client) ApplyMetadata(b *Broker, md TopicMetadata) (int, error) {
	if c.blacklist.matchAny(md.Name) {
		c.logf(kgo.LogLevelDebug, "ignoring blacklisted topic %q in metadata", md.Name)
		return 0, ErrMetadataIgnored
	}

	code := kerr.ErrorForCode(md.ErrorCode)
	if code == kerr.LeaderNotAvailable && len(md.Partitions) == 0 {
		c.logf(kgo.LogLevelDebug, "temporary error in metadata reply for topic %s: %v: ignoring", md.Name, code)
		return 0, ErrMetadataIgnored
	}

	t, ok := c.Find(md.Name)
	if !ok {
		return 0, ErrMetadataIgnored
	}
	defer t.release()

	// Resolve each partition's leader broker under the client lock,
	// before touching t.mu, preserving lock order.
	leaders := make([]*Broker, len(md.Partitions))
	for i, pm := range md.Partitions {
		if pm.LeaderID == -1 {
			continue
		}
		leaders[i], _ = c.BrokerByNodeID(pm.LeaderID)
	}

	if c.Terminating() {
		return 0, ErrMetadataIgnored
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	oldState := t.state
	t.tsMetadata = nowMicros()

	switch {
	case code == kerr.UnknownTopicOrPartition || code == kerr.UnknownServerError:
		t.setState(StateNotExists)
	case len(md.Partitions) > 0:
		t.setState(StateExists)
	}

	upd := 0
	if code == nil {
		if t.resizeLocked(int32(len(md.Partitions))) {
			upd++
		}
	}

	queryLeader := false
	for i, pm := range md.Partitions {
		switch t.leaderUpdate(pm.ID, leaders[i]) {
		case leaderUnknown:
			queryLeader = true
		case leaderChanged:
			upd++
		}
	}

	if code != nil && len(t.partitions) > 0 {
		for _, p := range t.partitions {
			p.mu.Lock()
			p.brokerDelegate(nil)
			p.mu.Unlock()
		}
	}

	if upd > 0 || t.state == StateNotExists {
		t.assignUAsLocked()
	}
	if oldState != t.state && t.state == StateNotExists {
		t.propagateNotExistsLocked()
	}

	if queryLeader && c.LeaderQuery != nil {
		go c.LeaderQuery(c, t.retain())
	}

	return upd, nil
}

// MetadataNone records that a Metadata response contained no information
// at all about t - the cluster has no knowledge of the topic.
//
// Grounded on rd_kafka_topic_metadata_none.
func (c *Client) MetadataNone(t *Topic) {
	if c.Terminating() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.tsMetadata = nowMicros()
	t.setState(StateNotExists)
	t.resizeLocked(0)
	t.assignUAsLocked()
	t.propagateNotExistsLocked()
}
