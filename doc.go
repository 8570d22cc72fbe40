// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package ktopics implements the topic-metadata and partition-routing core
// of a Kafka client: a registry of Topic handles, their partition tables,
// and the routing logic that moves messages between the unassigned (UA)
// bucket and real partitions as cluster metadata arrives.
//
// # Overview
//
// A Client owns the Topic Registry and the broker pool index. Callers
// register topics with Create, feed Metadata responses through
// ApplyMetadata, and periodically call ScanAll to age out stale metadata
// and timed-out messages. The wire transport, the actual broker
// connections, and message serialization are all out of scope - this
// package only tracks what it's been told and decides where a message
// should go.
//
// # Quick Start
//
//	client, err := ktopics.NewClient(ktopics.RoleProducer, ktopics.TopicConfig{
//	    MetadataRefreshIntervalMs: 300_000,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	topic, created, err := client.Create("device-events", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Printf("topic %s (newly created: %t)", topic.Name(), created)
//
// # Partition Routing
//
// A message with no forced partition sits in the UA bucket until a
// metadata update changes the topic's partition count or leaders (or
// marks it NotExists). The topic's Partitioner (DefaultPartitioner by
// default) then assigns it; a message the Partitioner cannot place, for
// example because no partition has a leader, is failed with a delivery
// report:
//
//	client.DefaultConfig.Partitioner = ktopics.DefaultPartitioner
//
// Custom partitioners receive the topic and message and choose among
// currently-leadered partitions:
//
//	var stickyKey ktopics.Partitioner = func(t *ktopics.Topic, m *ktopics.Message) (ktopics.PartitionID, error) {
//	    // ...
//	}
//
// # Metadata Ingestion
//
// ApplyMetadata feeds one topic's worth of a Metadata response into the
// registry, updating partition counts and leaders and triggering UA
// reassignment or NotExists propagation as the topic's state changes:
//
//	n, err := client.ApplyMetadata(broker, ktopics.TopicMetadata{
//	    Name: "device-events",
//	    Partitions: []ktopics.PartitionMetadata{{ID: 0, LeaderID: 1}},
//	})
//
// # Delivery Reports
//
// Register a listener to learn when this core fails a message out of a
// queue (routing failure, partition loss, or timeout); it emits no
// reports for successful delivery:
//
//	client.AddDeliveryListener(func(r *ktopics.DeliveryReport) {
//	    if r.Err != ktopics.KindNone {
//	        log.Printf("delivery failed: %s", r.Err)
//	    }
//	})
//
// # Thread Safety
//
// Client, Topic, and Partition are all safe for concurrent use. Lock
// order across the three is fixed: Client, then Topic, then Partition -
// code that needs more than one must acquire them in that order.
package ktopics
