// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern Pattern
		wantErr bool
	}{
		{"empty pattern", "", true},
		{"valid single wildcard", "__internal-*", false},
		{"multiple wildcards fails", "foo-*-bar-*", true},
		{"exact name", "device-events", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.pattern.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPatternCompile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pattern    Pattern
		wantAll    bool
		wantExact  string
		wantPrefix string
		wantSuffix string
		wantErr    bool
	}{
		{name: "catch-all pattern", pattern: "*", wantAll: true},
		{name: "exact match", pattern: "__consumer_offsets", wantExact: "__consumer_offsets"},
		{name: "prefix pattern", pattern: "__internal-*", wantPrefix: "__internal-"},
		{name: "suffix pattern", pattern: "*-compacted", wantSuffix: "-compacted"},
		{name: "contains pattern", pattern: "tmp-*-staging", wantPrefix: "tmp-", wantSuffix: "-staging"},
		{name: "escaped asterisk becomes exact", pattern: `star\*rating`, wantExact: "star*rating"},
		{name: "empty pattern fails", pattern: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := tt.pattern.compile()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAll, m.all)
			assert.Equal(t, tt.wantExact, m.exact)
			assert.Equal(t, tt.wantPrefix, m.prefix)
			assert.Equal(t, tt.wantSuffix, m.suffix)
		})
	}
}

func TestPatternMatcherMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		matcher *patternMatcher
		topic   string
		want    bool
	}{
		{"catch-all matches anything", &patternMatcher{all: true}, "anything", true},
		{"catch-all matches empty", &patternMatcher{all: true}, "", true},
		{"exact match success", &patternMatcher{isExact: true, exact: "__internal"}, "__internal", true},
		{"exact match fail", &patternMatcher{isExact: true, exact: "__internal"}, "other", false},
		{"empty exact never matches non-empty", &patternMatcher{isExact: true, exact: ""}, "anything", false},
		{"prefix match success", &patternMatcher{prefix: "tmp-"}, "tmp-staging", true},
		{"prefix match fail", &patternMatcher{prefix: "tmp-"}, "perm-staging", false},
		{"suffix match success", &patternMatcher{suffix: "-staging"}, "tmp-staging", true},
		{"contains match success", &patternMatcher{prefix: "tmp-", suffix: "-staging"}, "tmp-x-staging", true},
		{"contains match zero chars", &patternMatcher{prefix: "tmp-", suffix: "-staging"}, "tmp--staging", true},
		{"contains too short", &patternMatcher{prefix: "tmp-", suffix: "-staging"}, "tmp-staging", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.matcher.matches(tt.topic))
		})
	}
}

func TestBlacklistMatchAny(t *testing.T) {
	t.Parallel()

	bl := &Blacklist{Patterns: []Pattern{"__internal-*", "__consumer_offsets"}}
	require.NoError(t, bl.compile())

	assert.True(t, bl.matchAny("__internal-metrics"))
	assert.True(t, bl.matchAny("__consumer_offsets"))
	assert.False(t, bl.matchAny("device-events"))

	var nilBl *Blacklist
	assert.False(t, nilBl.matchAny("anything"))
}

func TestSplitWildcard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		wantPre  string
		wantStar string
		wantPost string
		wantOk   bool
	}{
		{input: "device-status", wantPre: "device-status", wantOk: true},
		{input: "device-*", wantPre: "device-", wantStar: "*", wantOk: true},
		{input: "device-*-online", wantPre: "device-", wantStar: "*", wantPost: "-online", wantOk: true},
		{input: `star\*rating`, wantPre: "star*rating", wantOk: true},
		{input: "foo-*--*-bar", wantOk: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			gotPre, gotStar, gotPost, gotOk := splitWildcard(tt.input)
			assert.Equal(t, tt.wantPre, gotPre)
			assert.Equal(t, tt.wantStar, gotStar)
			assert.Equal(t, tt.wantPost, gotPost)
			assert.Equal(t, tt.wantOk, gotOk)
		})
	}
}
