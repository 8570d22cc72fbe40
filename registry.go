// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import (
	"encoding/binary"
	"fmt"
)

const (
	minTopicNameLen = 1
	maxTopicNameLen = 512
)

// Find looks up an existing topic by name and, if found, returns a
// retained handle the caller must eventually release. It does not
// create one (spec §4.A: "find (no create)").
func (c *Client) Find(name string) (*Topic, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.topics[name]
	if !ok {
		return nil, false
	}
	return t.retain(), true
}

// FindByProtocolString looks up a topic whose name is encoded as a
// non-nullable Kafka protocol STRING - an int16 length prefix followed by
// that many bytes of UTF-8 - the wire shape topic names arrive in inside
// Metadata and Produce requests/responses (spec §4.A: "find_by_name
// variant taking a length-prefixed wire string directly, avoiding an
// intermediate allocation"). Returns the retained topic, the number of
// bytes consumed from b, and an error if b does not hold a complete
// protocol string.
func (c *Client) FindByProtocolString(b []byte) (*Topic, int, error) {
	name, n, err := decodeProtocolString(b)
	if err != nil {
		return nil, 0, err
	}

	t, ok := c.Find(name)
	if !ok {
		return nil, n, ErrUnknownTopic
	}
	return t, n, nil
}

// decodeProtocolString decodes a Kafka protocol non-nullable STRING:
// int16 big-endian length followed by that many UTF-8 bytes.
func decodeProtocolString(b []byte) (string, int, error) {
	if len(b) < 2 {
		return "", 0, fmt.Errorf("%w: truncated string length prefix", ErrInvalidArg)
	}
	n := int(int16(binary.BigEndian.Uint16(b)))
	if n < 0 {
		return "", 0, fmt.Errorf("%w: negative string length %d", ErrInvalidArg, n)
	}
	if len(b) < 2+n {
		return "", 0, fmt.Errorf("%w: truncated string body, want %d bytes", ErrInvalidArg, n)
	}
	return string(b[2 : 2+n]), 2 + n, nil
}

// Create finds or creates a topic named name, applying cfg over the
// client's DefaultConfig. Validates the name length (spec invariant:
// "1 <= len(name) <= 512") and the config before taking any lock that
// would need to be unwound. Returns (topic, created, error); created is
// false when an existing handle was returned instead.
func (c *Client) Create(name string, cfg *TopicConfig) (*Topic, bool, error) {
	if len(name) < minTopicNameLen || len(name) > maxTopicNameLen {
		return nil, false, fmt.Errorf("%w: topic name length %d outside [%d, %d]", ErrInvalidArg, len(name), minTopicNameLen, maxTopicNameLen)
	}

	merged := c.DefaultConfig
	if cfg != nil {
		merged = cfg.withDefaults(c.DefaultConfig)
	}
	if err := merged.compile(); err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.topics[name]; ok {
		return t.retain(), false, nil
	}

	t := newTopic(c, name, merged)
	c.topics[name] = t
	return t, true, nil
}
