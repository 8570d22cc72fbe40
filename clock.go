// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import "time"

// nowMicros returns the current time as microseconds since the Unix
// epoch, the unit Topic.tsMetadata is kept in (spec: "ts_metadata:
// microseconds, monotonically non-decreasing").
func nowMicros() int64 {
	return time.Now().UnixMicro()
}
