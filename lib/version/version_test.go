// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestBuildString(t *testing.T) {
	build := Build{Version: "1.2.3", Commit: "abc1234", BuildTime: "2026-01-01T00:00:00Z"}
	if got, want := build.String(), "1.2.3 (abc1234, 2026-01-01T00:00:00Z)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	build.Dirty = true
	if got, want := build.String(), "1.2.3 (abc1234-dirty, 2026-01-01T00:00:00Z)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFillFromBuildInfo(t *testing.T) {
	build := Build{Commit: "unknown", BuildTime: "unknown"}
	fillFromBuildInfo(&build, []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
		{Key: "GOOS", Value: "linux"},
	})

	if build.Commit != "0123456789ab" {
		t.Errorf("Commit = %q, want the first 12 characters", build.Commit)
	}
	if !build.Dirty {
		t.Error("Dirty = false, want true")
	}
	if build.BuildTime != "2026-03-04T05:06:07Z" {
		t.Errorf("BuildTime = %q", build.BuildTime)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Version) {
		t.Errorf("Full() = %q, want it to start with %q", full, Version)
	}
	if !strings.Contains(full, "\n  Platform: ") {
		t.Errorf("Full() = %q, want the platform line", full)
	}
}
