// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanAllTimesOutMessages(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, RoleProducer)
	topic, _, err := c.Create("device-events", nil)
	require.NoError(t, err)
	defer topic.release()

	topic.resize(1)

	now := time.Now()

	var reports []*DeliveryReport
	c.AddDeliveryListener(func(r *DeliveryReport) { reports = append(reports, r) })

	p, _ := topic.partitionGet(0, false)
	p.mu.Lock()
	p.msgq.Enqueue(&Message{Deadline: now.Add(-time.Second)})
	p.msgq.Enqueue(&Message{Deadline: now.Add(time.Hour)})
	p.mu.Unlock()

	n := c.ScanAll(now)
	assert.Equal(t, 1, n)
	require.Len(t, reports, 1)
	assert.Equal(t, KindMessageTimedOut, reports[0].Err)

	p.mu.Lock()
	remaining := p.msgq.Len()
	p.mu.Unlock()
	assert.Equal(t, 1, remaining, "the message still inside its deadline must stay queued")
}

func TestScanAllMarksStaleMetadataUnknown(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, RoleProducer)
	topic, _, err := c.Create("device-events", &TopicConfig{MetadataRefreshIntervalMs: 1})
	require.NoError(t, err)
	defer topic.release()

	topic.mu.Lock()
	topic.setState(StateExists)
	topic.tsMetadata = 0
	topic.mu.Unlock()

	c.ScanAll(time.Now())

	assert.Equal(t, StateUnknown, topic.State())
}

func TestScanAllRequestsLeaderQueryForEmptyTopics(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, RoleProducer)
	topic, _, err := c.Create("device-events", nil)
	require.NoError(t, err)
	defer topic.release()

	queried := make(chan string, 1)
	c.LeaderQuery = func(c *Client, t *Topic) {
		queried <- t.Name()
	}

	c.ScanAll(time.Now())

	select {
	case name := <-queried:
		assert.Equal(t, "device-events", name)
	case <-time.After(time.Second):
		t.Fatal("expected a leader query for a topic with zero partitions")
	}
}
