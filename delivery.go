// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import (
	"github.com/xmidt-org/eventor"
)

// DeliveryReport is the asynchronous notification a producer receives
// when a message reaches a terminal state - delivered, or failed for one
// of the ErrorKind reasons this core classifies. This generalizes the
// teacher's WRP-specific PublishEvent into a transport-agnostic shape.
type DeliveryReport struct {
	// Topic is the name of the topic the message was queued against.
	Topic string

	// Partition is the partition the report was generated for: the dropped
	// partition's id when a shrink without a UA partition fails its
	// messages, and PartitionUA for UA routing failures and for every
	// timeout report from the periodic scanner, whichever queue the
	// message timed out of.
	Partition PartitionID

	// Message is the message the report describes.
	Message *Message

	// Err is the classification of what happened. KindNone means the
	// message was delivered successfully; any other value means it was
	// failed out of a queue without ever reaching a broker.
	Err ErrorKind
}

// deliveryBroadcaster fans a DeliveryReport out to every registered
// listener. It is the same shape as the teacher's
// eventor.Eventor[func(*PublishEvent)] field on Publisher.
type deliveryBroadcaster struct {
	listeners eventor.Eventor[func(*DeliveryReport)]
}

// AddListener registers fn to receive every DeliveryReport this client
// emits. The returned function removes the listener.
func (db *deliveryBroadcaster) AddListener(fn func(*DeliveryReport)) func() {
	return db.listeners.Add(fn)
}

// dispatch delivers report to every registered listener.
func (db *deliveryBroadcaster) dispatch(report *DeliveryReport) {
	db.listeners.Visit(func(listener func(*DeliveryReport)) {
		listener(report)
	})
}

// drMsgq drains every message in q and dispatches a DeliveryReport with
// the given error kind for each one, in order. This is spec §6's
// dr_msgq operation, generalized from "deliver to the application queue"
// to "fan out to registered listeners".
func (c *Client) drMsgq(topicName string, partition PartitionID, q *MsgQueue, kind ErrorKind) {
	for _, m := range q.Purge() {
		c.delivery.dispatch(&DeliveryReport{
			Topic:     topicName,
			Partition: partition,
			Message:   m,
			Err:       kind,
		})
	}
}
