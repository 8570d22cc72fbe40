// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, role Role) *Client {
	t.Helper()
	c, err := NewClient(role, TopicConfig{})
	require.NoError(t, err)
	return c
}

func TestClientCreateFindOrCreate(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, RoleProducer)

	t1, created, err := c.Create("device-events", nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "device-events", t1.Name())

	t2, created, err := c.Create("device-events", nil)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, t1, t2)
}

func TestClientCreateValidatesNameLength(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, RoleProducer)

	_, _, err := c.Create("", nil)
	assert.ErrorIs(t, err, ErrInvalidArg)

	tooLong := make([]byte, maxTopicNameLen+1)
	for i := range tooLong {
		tooLong[i] = 'a'
	}
	_, _, err = c.Create(string(tooLong), nil)
	assert.ErrorIs(t, err, ErrInvalidArg)
}

func TestClientFindMiss(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, RoleProducer)
	_, ok := c.Find("nonexistent")
	assert.False(t, ok)
}

func TestClientFindByProtocolString(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, RoleProducer)
	_, _, err := c.Create("device-events", nil)
	require.NoError(t, err)

	buf := make([]byte, 2+len("device-events"))
	binary.BigEndian.PutUint16(buf, uint16(len("device-events")))
	copy(buf[2:], "device-events")

	found, n, err := c.FindByProtocolString(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, "device-events", found.Name())
}

func TestClientFindByProtocolStringTruncated(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, RoleProducer)
	_, _, err := c.FindByProtocolString([]byte{0x00})
	assert.ErrorIs(t, err, ErrInvalidArg)
}

func TestTopicReleaseRemovesFromRegistry(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, RoleProducer)
	topic, _, err := c.Create("device-events", nil)
	require.NoError(t, err)

	topic.release()

	_, ok := c.Find("device-events")
	assert.False(t, ok)
}
