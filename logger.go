// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import "github.com/twmb/franz-go/pkg/kgo"

// Logger is the logging interface accepted by Client. It is the same
// interface franz-go's kgo.Client accepts, so a single Logger
// implementation can be shared between this core and the driver that
// embeds it.
type Logger = kgo.Logger

// nopLogger, the default logger, drops everything.
type nopLogger struct{}

func (*nopLogger) Level() kgo.LogLevel { return kgo.LogLevelNone }
func (*nopLogger) Log(kgo.LogLevel, string, ...any) {
}
