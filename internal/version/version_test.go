package version

import "testing"

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Version != "unknown" {
		t.Logf("Version is: %s (expected 'unknown' or version set via ldflags)", Version)
	}
}

func TestBuildInfo(t *testing.T) {
	if BuildTime == "" || GitCommit == "" {
		t.Error("build info variables should default to 'unknown'")
	}
}
