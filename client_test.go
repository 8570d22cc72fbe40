// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRejectsInvalidDefaultConfig(t *testing.T) {
	t.Parallel()

	_, err := NewClient(RoleProducer, TopicConfig{CompressionCodec: "bogus"})
	assert.ErrorIs(t, err, ErrConfig)
}

func TestClientBrokerIndex(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, RoleProducer)

	_, ok := c.BrokerByNodeID(1)
	assert.False(t, ok)

	c.PutBroker(&Broker{NodeID: 1, Host: "broker-1"})
	b, ok := c.BrokerByNodeID(1)
	require.True(t, ok)
	assert.Equal(t, "broker-1", b.Host)

	c.RemoveBroker(1)
	_, ok = c.BrokerByNodeID(1)
	assert.False(t, ok)
}

func TestClientDeliveryListeners(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, RoleProducer)

	var got []*DeliveryReport
	remove := c.AddDeliveryListener(func(r *DeliveryReport) { got = append(got, r) })

	q := &MsgQueue{}
	q.Enqueue(&Message{})
	c.drMsgq("device-events", PartitionUA, q, KindMessageTimedOut)

	require.Len(t, got, 1)
	assert.Equal(t, "device-events", got[0].Topic)
	assert.Equal(t, KindMessageTimedOut, got[0].Err)

	remove()

	q2 := &MsgQueue{}
	q2.Enqueue(&Message{})
	c.drMsgq("device-events", PartitionUA, q2, KindMessageTimedOut)
	assert.Len(t, got, 1, "removed listener must not receive further reports")
}

func TestClientTerminate(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, RoleProducer)
	assert.False(t, c.Terminating())
	c.Terminate()
	assert.True(t, c.Terminating())
}

func TestClientTopicsSnapshot(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, RoleProducer)
	t1, _, err := c.Create("a", nil)
	require.NoError(t, err)
	t2, _, err := c.Create("b", nil)
	require.NoError(t, err)
	defer t1.release()
	defer t2.release()

	snap := c.Topics()
	assert.Len(t, snap, 2)
	for _, topic := range snap {
		topic.release()
	}
}
