package buildinfo

import (
	"strings"
	"testing"
)

func TestResolvedPrefersStampedVersion(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.2.3"
	if got := Resolved(); got != "v1.2.3" {
		t.Errorf("Resolved() = %q, want v1.2.3", got)
	}
	if !strings.Contains(Template(), "v1.2.3") {
		t.Errorf("Template() = %q, missing version", Template())
	}
	if got := UserAgent(); got != "musicbox/v1.2.3" {
		t.Errorf("UserAgent() = %q", got)
	}
}
