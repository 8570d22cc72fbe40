// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import "errors"

// ErrorKind classifies an error surfaced to the application via a
// DeliveryReport or a per-partition error queue entry.
type ErrorKind int

const (
	// KindNone means no error; used as the zero value.
	KindNone ErrorKind = iota

	// KindUnknownTopic means the topic has been confirmed NotExists.
	KindUnknownTopic

	// KindUnknownPartition means the partition id is no longer present in
	// the table, or a forced partition id was out of range.
	KindUnknownPartition

	// KindMessageTimedOut means a message exceeded its deadline before
	// it could be handed off to a broker connection.
	KindMessageTimedOut

	// KindInvalidArg means topic creation was attempted with an invalid name.
	KindInvalidArg
)

// String returns the human-readable name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindUnknownTopic:
		return "unknown_topic"
	case KindUnknownPartition:
		return "unknown_partition"
	case KindMessageTimedOut:
		return "message_timed_out"
	case KindInvalidArg:
		return "invalid_arg"
	default:
		return "none"
	}
}

// topicError is an internal error type that carries an ErrorKind
// classification alongside a human-readable message, the same shape the
// teacher uses for metric-tagged errors.
type topicError struct {
	kind    ErrorKind
	message string
}

// Error implements the error interface.
func (e *topicError) Error() string { return e.message }

// Kind returns the error's classification.
func (e *topicError) Kind() ErrorKind { return e.kind }

// Is allows errors.Is to match topicError values by kind.
func (e *topicError) Is(target error) bool {
	t, ok := target.(*topicError)
	return ok && e.kind == t.kind
}

var (
	// ErrInvalidArg is returned synchronously by Create when the topic
	// name fails validation.
	ErrInvalidArg = &topicError{kind: KindInvalidArg, message: "invalid topic name"}

	// ErrUnknownTopic is delivered when a topic is confirmed NotExists.
	ErrUnknownTopic = &topicError{kind: KindUnknownTopic, message: "unknown topic"}

	// ErrUnknownPartition is delivered when a partition id is absent from
	// the table or a forced partition id is out of range.
	ErrUnknownPartition = &topicError{kind: KindUnknownPartition, message: "unknown partition"}

	// ErrMessageTimedOut is delivered when the periodic scanner ages a
	// message out of a partition queue.
	ErrMessageTimedOut = &topicError{kind: KindMessageTimedOut, message: "message timed out"}
)

// ErrConfig indicates a TopicConfig or Client configuration value failed
// validation. Analogous to the teacher's ErrValidation.
var ErrConfig = errors.New("ktopics: invalid configuration")

// ErrMetadataIgnored is the sentinel "unknown" return of ApplyMetadata:
// the snapshot was blacklisted, transient, or for a topic this client has
// never asked about, and was ignored without changing any state.
var ErrMetadataIgnored = errors.New("ktopics: metadata snapshot ignored")

// errorKind walks the error chain looking for a *topicError classification.
func errorKind(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var te *topicError
	if errors.As(err, &te) {
		return te.Kind()
	}
	return KindNone
}
