// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/twmb/franz-go/pkg/kgo"
)

func TestMessageForcedPartition(t *testing.T) {
	t.Parallel()

	m := &Message{Record: &kgo.Record{Partition: -1}}
	assert.Equal(t, PartitionUA, m.ForcedPartition())

	m.setForcedPartition(3)
	assert.Equal(t, PartitionID(3), m.ForcedPartition())

	nilRecord := &Message{}
	assert.Equal(t, PartitionUA, nilRecord.ForcedPartition())
}

func TestMsgQueueMoveAll(t *testing.T) {
	t.Parallel()

	src := &MsgQueue{}
	dst := &MsgQueue{}

	m1, m2 := &Message{}, &Message{}
	src.Enqueue(m1)
	src.Enqueue(m2)

	src.MoveAll(dst)
	assert.Equal(t, 0, src.Len())
	assert.Equal(t, 2, dst.Len())
	assert.Equal(t, []*Message{m1, m2}, dst.Purge())
}

func TestMsgQueueAgeScan(t *testing.T) {
	t.Parallel()

	now := time.Now()
	q := &MsgQueue{}
	fresh := &Message{Deadline: now.Add(time.Hour)}
	expired1 := &Message{Deadline: now.Add(-time.Minute)}
	expired2 := &Message{Deadline: now.Add(-time.Second)}
	noDeadline := &Message{}

	q.Enqueue(expired1)
	q.Enqueue(fresh)
	q.Enqueue(expired2)
	q.Enqueue(noDeadline)

	out := &MsgQueue{}
	n := q.AgeScan(now, out)

	assert.Equal(t, 2, n)
	assert.Equal(t, []*Message{expired1, expired2}, out.Purge())
	assert.Equal(t, []*Message{fresh, noDeadline}, q.Purge())
}

func TestMsgQueuePurge(t *testing.T) {
	t.Parallel()

	q := &MsgQueue{}
	q.Enqueue(&Message{})
	q.Enqueue(&Message{})

	out := q.Purge()
	assert.Len(t, out, 2)
	assert.Equal(t, 0, q.Len())
}
