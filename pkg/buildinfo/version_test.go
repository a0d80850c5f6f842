package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Commit
	Commit = "abc123"
	defer func() { Commit = old }()

	got := String()
	for _, want := range []string{"version: ", "commit: abc123", "built: "} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}

func TestTemplate(t *testing.T) {
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version ") {
		t.Errorf("Template() = %q", got)
	}
}

func TestGetKeepsLinkedVersion(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	if got := Get().Version; got != "v9.9.9" {
		t.Errorf("Get().Version = %q, want v9.9.9", got)
	}
}
