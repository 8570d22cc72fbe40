// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import (
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// ScanAll walks every registered topic looking for: metadata that has
// gone stale, topics with zero known partitions that need a leader
// query, and messages that have timed out while waiting in a partition
// queue. Returns the number of messages timed out. Meant to be called
// periodically (spec §4.F - the original runs this once per main-loop
// tick).
//
// Grounded on rd_kafka_topic_scan_all. Design simplification: rather
// than the original's unlock/query/relock dance per topic, this takes a
// snapshot of the registry, releases c.mu, scans each topic, and fires
// the collected leader queries after the per-topic loop, since
// LeaderQuery must run without any lock held.
func (c *Client) ScanAll(now time.Time) int {
	c.mu.RLock()
	topics := make([]*Topic, 0, len(c.topics))
	for _, t := range c.topics {
		topics = append(topics, t.retain())
	}
	c.mu.RUnlock()

	totalTimedOut := 0
	var needsQuery []*Topic

	for _, t := range topics {
		timedOut, needsLeaderQuery := t.scan(now)
		totalTimedOut += timedOut
		if needsLeaderQuery {
			needsQuery = append(needsQuery, t.retain())
		}
		t.release()
	}

	if c.LeaderQuery != nil && !c.Terminating() {
		for _, t := range needsQuery {
			go func(t *Topic) {
				defer t.release()
				c.LeaderQuery(c, t)
			}(t)
		}
	} else {
		for _, t := range needsQuery {
			t.release()
		}
	}

	return totalTimedOut
}

// scan checks t for stale metadata and scans every partition's queues
// for timed-out messages, dispatching delivery reports for any it finds.
// Returns the number of messages timed out and whether t needs a leader
// query (zero known partitions).
func (t *Topic) scan(now time.Time) (timedOut int, needsLeaderQuery bool) {
	t.mu.Lock()

	refreshMs := t.config.MetadataRefreshIntervalMs
	if t.state != StateUnknown && refreshMs >= 0 {
		age := now.UnixMicro() - t.tsMetadata
		if age > refreshMs*1000*3 {
			t.client.logf(kgo.LogLevelDebug, "topic %s metadata information timed out (%dms old)",
				t.name, age/1000)
			t.setState(StateUnknown)
		}
	}

	needsLeaderQuery = len(t.partitions) == 0

	timedout := &MsgQueue{}
	tpcnt := 0

	scanPartition := func(p *Partition) {
		p.mu.Lock()
		did := p.xmitMsgq.AgeScan(now, timedout) > 0
		did = p.msgq.AgeScan(now, timedout) > 0 || did
		p.mu.Unlock()
		if did {
			tpcnt++
		}
	}

	if t.ua != nil {
		scanPartition(t.ua)
	}
	for _, p := range t.partitions {
		scanPartition(p)
	}

	t.mu.Unlock()

	if n := timedout.Len(); n > 0 {
		t.client.logf(kgo.LogLevelDebug, "%s: %d message(s) from %d partition(s) timed out", t.name, n, tpcnt)
		t.client.drMsgq(t.name, PartitionUA, timedout, KindMessageTimedOut)
		timedOut = n
	}

	return timedOut, needsLeaderQuery
}
