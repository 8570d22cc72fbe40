// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import (
	"fmt"
	"strings"
)

// Compression specifies the message compression codec a topic uses.
// Unlike the teacher's Compression enum (which never needs to inherit
// anything), this core's spec requires an Inherit sentinel: a topic
// created without an explicit codec resolves it from the client's
// default configuration at creation time.
type Compression string

const (
	// CompressionInherit resolves to the Client's DefaultConfig codec at
	// topic-creation time. It is the zero value.
	CompressionInherit Compression = ""

	// CompressionNone disables compression.
	CompressionNone Compression = "none"

	// CompressionGzip uses Gzip compression.
	CompressionGzip Compression = "gzip"

	// CompressionSnappy uses Snappy compression.
	CompressionSnappy Compression = "snappy"

	// CompressionLz4 uses LZ4 compression.
	CompressionLz4 Compression = "lz4"
)

var compressionTypes map[Compression]struct{}
var compressionList []string

func init() {
	list := []Compression{
		CompressionInherit,
		CompressionNone,
		CompressionGzip,
		CompressionSnappy,
		CompressionLz4,
	}

	compressionTypes = make(map[Compression]struct{})
	for _, c := range list {
		compressionTypes[c] = struct{}{}
		if c != CompressionInherit {
			compressionList = append(compressionList, string(c))
		}
	}
}

// validateCompression validates the Compression enum value.
func validateCompression(codec Compression) error {
	if _, ok := compressionTypes[codec]; ok {
		return nil
	}

	list := "'" + strings.Join(compressionList, "', '") + "'"
	return fmt.Errorf("%w: compression codec %q is invalid: must be %s or empty (Inherit)", ErrConfig, codec, list)
}

// TopicConfig is a topic's configuration (spec §6): partitioner,
// compression codec, an opaque application pointer, the consumer-side
// desired-partition set, the client-wide topic blacklist, the metadata
// refresh interval, and the broker-only auto-create-topics flag.
//
// A TopicConfig is copied into the Topic at construction time (spec §3:
// "Created by copy at handle construction") and is immutable thereafter
// except through explicit reconfiguration APIs, which are out of scope.
type TopicConfig struct {
	// Partitioner maps outbound messages to partitions. Nil resolves to
	// DefaultPartitioner at topic creation.
	Partitioner Partitioner

	// CompressionCodec selects the wire compression algorithm.
	// CompressionInherit resolves from the Client's DefaultConfig.
	CompressionCodec Compression

	// Opaque is an application-supplied pointer returned unmodified by
	// Topic.Opaque().
	Opaque any

	// Desired lists partition ids a consumer wants to subscribe to ahead
	// of metadata confirming they exist. Populated into Topic.desired at
	// construction, flagged UNKNOWN until metadata confirms them.
	Desired []PartitionID

	// Blacklist is the client-wide set of topic-name patterns to ignore
	// in metadata (spec: "topic_blacklist: pattern list (client-wide)").
	// Despite living on TopicConfig for parity with the spec's listing,
	// only the value on Client.DefaultConfig is consulted by the
	// Metadata Ingestor - see Client.blacklist.
	Blacklist Blacklist

	// MetadataRefreshIntervalMs controls the periodic scanner's staleness
	// check (spec §4.F): state reverts to Unknown once
	// now > ts_metadata + 3*MetadataRefreshIntervalMs. A negative value
	// disables the check entirely.
	MetadataRefreshIntervalMs int64

	// AutoCreateTopicsEnable has no effect in this core - it only
	// influences whether the broker itself creates a missing topic on
	// metadata request. Carried for parity with the spec's Config field
	// list.
	AutoCreateTopicsEnable bool
}

// validate validates static field combinations. It does not compile the
// blacklist - callers needing a match-ready config should call compile
// after validate succeeds.
func (tc *TopicConfig) validate() error {
	if err := validateCompression(tc.CompressionCodec); err != nil {
		return err
	}

	seen := make(map[PartitionID]struct{}, len(tc.Desired))
	for _, id := range tc.Desired {
		if id == PartitionUA {
			return fmt.Errorf("%w: desired partition set must not include the UA sentinel", ErrConfig)
		}
		if id < 0 {
			return fmt.Errorf("%w: desired partition id %d must be >= 0", ErrConfig, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: desired partition id %d listed more than once", ErrConfig, id)
		}
		seen[id] = struct{}{}
	}

	for i, p := range tc.Blacklist.Patterns {
		if err := p.validate(); err != nil {
			return fmt.Errorf("blacklist pattern %d: %w", i, err)
		}
	}

	return nil
}

// compile validates and compiles the config's blacklist patterns. Cheap
// to call once at Client construction; the compiled matchers live on the
// Blacklist value itself.
func (tc *TopicConfig) compile() error {
	if err := tc.validate(); err != nil {
		return err
	}
	return tc.Blacklist.compile()
}

// withDefaults returns a copy of tc with unset fields resolved from def
// (the Client's DefaultConfig). Used by Client.Create when a caller
// passes a partial TopicConfig, or none at all.
func (tc TopicConfig) withDefaults(def TopicConfig) TopicConfig {
	out := tc
	if out.Partitioner == nil {
		out.Partitioner = def.Partitioner
	}
	if out.Partitioner == nil {
		out.Partitioner = DefaultPartitioner
	}
	if out.CompressionCodec == CompressionInherit {
		out.CompressionCodec = def.CompressionCodec
	}
	if out.MetadataRefreshIntervalMs == 0 {
		out.MetadataRefreshIntervalMs = def.MetadataRefreshIntervalMs
	}
	return out
}
