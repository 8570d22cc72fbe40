// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import (
	"errors"
	"hash/fnv"
	"math/rand"
)

// ErrNoPartitionAvailable is returned by a Partitioner when it cannot pick
// a destination partition (e.g. no partition currently has a leader).
var ErrNoPartitionAvailable = errors.New("ktopics: no partition available")

// Partitioner maps a message to a destination partition id. It is called
// with the topic lock already held (at least for reading) by the caller,
// matching the original's "Locks: rd_kafka_topic_*lock() must be held"
// contract on the routing path; it must not call back into any Topic or
// Client method that itself takes t.mu, and must not retain t beyond the
// call.
//
// A message carrying a ForcedPartition (Message.Record.Partition != UA) is
// never passed to the partitioner - the forced id is validated directly
// against partition_cnt by the caller (spec §4.G).
type Partitioner func(t *Topic, m *Message) (PartitionID, error)

// DefaultPartitioner selects a partition by consistent hashing of the
// message key when present, or uniformly at random across partitions that
// currently have a leader otherwise. This mirrors librdkafka's
// consistent_random default.
func DefaultPartitioner(t *Topic, m *Message) (PartitionID, error) {
	available := availablePartitions(t)
	if len(available) == 0 {
		return PartitionUA, ErrNoPartitionAvailable
	}

	if m.Record != nil && len(m.Record.Key) > 0 {
		idx := hashBytes(m.Record.Key, len(available))
		return available[idx], nil
	}

	idx := rand.Intn(len(available))
	return available[idx], nil
}

// availablePartitions returns the ids of every partition in t.partitions
// that currently has a leader. Callers must already hold t.mu (at least
// for reading).
func availablePartitions(t *Topic) []PartitionID {
	ids := make([]PartitionID, 0, len(t.partitions))
	for _, p := range t.partitions {
		p.mu.Lock()
		hasLeader := p.leader != nil
		p.mu.Unlock()
		if hasLeader {
			ids = append(ids, p.id)
		}
	}
	return ids
}

// hashBytes computes the FNV-1a hash of b and returns an index within
// bounds [0, n). Returns 0 if n <= 0. Lifted from the teacher's
// hashString, generalized from string to []byte since kgo.Record.Key is
// already a byte slice.
func hashBytes(b []byte, n int) int {
	if n <= 0 {
		return 0
	}

	h := fnv.New32a()
	h.Write(b)
	sum := h.Sum32()

	//nolint:gosec // G115: modulo ensures the result fits in int range
	return int(sum % uint32(n))
}
